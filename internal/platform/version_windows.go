//go:build windows

// Windows version query. Uses RtlGetVersion, which reports the true
// OS version regardless of application compatibility manifests.
package platform

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/host"
	"golang.org/x/sys/windows"
)

// queryVersion returns "Windows <major>.<minor>.<build>".
func queryVersion(ctx context.Context) string {
	if info := windows.RtlGetVersion(); info != nil && info.MajorVersion != 0 {
		return fmt.Sprintf("Windows %d.%d.%d",
			info.MajorVersion, info.MinorVersion, info.BuildNumber)
	}

	if v, err := host.KernelVersionWithContext(ctx); err == nil && v != "" {
		return "Windows " + v
	}

	return "Windows unknown"
}
