//go:build linux

// Linux version query. Primary source is the uname version field (the
// same string `uname -v` prints); gopsutil's kernel version is the
// fallback when the syscall fails.
package platform

import (
	"context"

	"github.com/shirou/gopsutil/v3/host"
	"golang.org/x/sys/unix"
)

// queryVersion returns "Linux <uname version>".
func queryVersion(ctx context.Context) string {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err == nil {
		if v := unix.ByteSliceToString(uts.Version[:]); v != "" {
			return "Linux " + v
		}
	}

	// Fallback: kernel release via gopsutil (reads /proc/sys/kernel/osrelease)
	if v, err := host.KernelVersionWithContext(ctx); err == nil && v != "" {
		return "Linux " + v
	}

	return "Linux unknown"
}
