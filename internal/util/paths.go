package util

import (
	"os"
	"path/filepath"
	"strings"
)

// DataDir is where the app keeps its database and log.
func DataDir(app string) string {
	if base := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); base != "" {
		return filepath.Join(base, app)
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".", app)
	}
	return filepath.Join(home, ".local", "share", app)
}

// ExportPath builds the default file name for an exported board window.
func ExportPath(dir, view, date, ext string) string {
	name := "board_" + view + "_" + date + "." + strings.TrimPrefix(ext, ".")
	return filepath.Join(dir, name)
}
