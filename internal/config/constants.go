package config

import "time"

// View modes, ordered by window length.
const (
	ViewDay = iota
	ViewWeek
	ViewMonth
	ViewYear
)

// PixelsPerDay is the horizontal density for each view mode. Layout and
// pointer input both read this table.
var PixelsPerDay = map[int]int{
	ViewDay:   600,
	ViewWeek:  100,
	ViewMonth: 52,
	ViewYear:  7,
}

// Application settings.
const (
	AppName         = "crewboard"
	DBFileName      = "crewboard.db"
	LogFileName     = "crewboard.log"
	EnvPrefix       = "CREWBOARD"
	DefaultViewMode = "week"
	APITimeout      = 10 * time.Second
	SyncQueueSize   = 64
)
