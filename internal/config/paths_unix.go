//go:build linux || darwin

package config

import (
	"os"
	"path/filepath"
)

func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	return []string{
		"nomade-host.yaml",
		filepath.Join(home, ".config", "nomade", "host.yaml"),
		"/etc/nomade/host.yaml",
	}
}
