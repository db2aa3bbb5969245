//go:build darwin

// macOS version query via gopsutil host info (sw_vers product version).
package platform

import (
	"context"

	"github.com/shirou/gopsutil/v3/host"
)

// queryVersion returns "macOS <product version>".
func queryVersion(ctx context.Context) string {
	if info, err := host.InfoWithContext(ctx); err == nil && info.PlatformVersion != "" {
		return "macOS " + info.PlatformVersion
	}

	if v, err := host.KernelVersionWithContext(ctx); err == nil && v != "" {
		return "Darwin " + v
	}

	return "macOS unknown"
}
