//go:build windows

package config

import (
	"os"
	"path/filepath"
)

func configSearchPaths() []string {
	local := os.Getenv("LOCALAPPDATA")
	programData := os.Getenv("ProgramData")
	return []string{
		"nomade-host.yaml",
		filepath.Join(local, "Nomade", "host.yaml"),
		filepath.Join(programData, "Nomade", "host.yaml"),
	}
}
