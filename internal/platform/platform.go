// Package platform answers the operating-system version query behind
// the getPlatformVersion method. Each supported OS has its own
// implementation selected at build time; all of them return a display
// string and never fail. The result is cached since the OS version
// does not change during a host session.
package platform

import (
	"context"
	"sync"
)

var (
	versionOnce   sync.Once
	versionCached string
)

// Version returns the OS version as "<OS-name> <version-string>",
// e.g. "Linux 5.15.0-76-generic". It always returns a string: when
// the underlying query fails, a degraded "<OS-name> unknown" value is
// returned instead of an error. Cached after the first call.
func Version(ctx context.Context) string {
	versionOnce.Do(func() {
		versionCached = queryVersion(ctx)
	})
	return versionCached
}
