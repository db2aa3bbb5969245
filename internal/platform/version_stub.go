//go:build !linux && !windows && !darwin

// Stub version query for platforms without a dedicated implementation.
// Returns a degraded but present string to keep every call answered.
package platform

import (
	"context"
	"runtime"
)

func queryVersion(_ context.Context) string {
	return runtime.GOOS + " unknown"
}
