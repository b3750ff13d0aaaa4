package database

import "github.com/akyairhashvil/crewboard/internal/syncer"

var _ syncer.Backend = (*Database)(nil)
