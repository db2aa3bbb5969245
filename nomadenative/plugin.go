// Package nomadenative is the nomade_native host plugin. It registers
// the "nomade_native" method channel and serves getPlatformVersion,
// returning a human-readable operating-system version string.
package nomadenative

import (
	"context"

	"go.uber.org/zap"

	"github.com/nomade-app/nomade-native/channel"
	"github.com/nomade-app/nomade-native/internal/platform"
)

// ChannelName is the method channel this plugin serves. The name is
// fixed; callers on the other side of the channel address the plugin
// by it, exact and case-sensitive.
const ChannelName = "nomade_native"

// handlerFunc serves one named method.
type handlerFunc func(ctx context.Context, arguments interface{}) (interface{}, error)

// Plugin dispatches method calls on the nomade_native channel. It
// holds no state between calls.
type Plugin struct {
	handlers map[string]handlerFunc
	logger   *zap.Logger

	// versionFn is swappable for tests; platform.Version otherwise.
	versionFn func(ctx context.Context) string
}

// NewPlugin creates the plugin with its method table.
func NewPlugin(logger *zap.Logger) *Plugin {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Plugin{
		logger:    logger,
		versionFn: platform.Version,
	}
	p.handlers = map[string]handlerFunc{
		"getPlatformVersion": p.getPlatformVersion,
	}
	return p
}

// RegisterWithRegistrar constructs the plugin and installs it on the
// nomade_native channel. The registration lives for the host session;
// teardown is implicit in host shutdown.
func RegisterWithRegistrar(registrar *channel.Registrar) {
	p := NewPlugin(registrar.Logger())
	ch := channel.New(registrar.Messenger(), ChannelName, registrar.Logger())
	ch.HandleFunc(p.HandleMethod)
	p.logger.Info("Registered plugin channel", zap.String("channel", ChannelName))
}

// HandleMethod routes one inbound call by exact method-name match.
// Unknown names get the not-implemented reply; the channel layer
// guarantees a reply either way.
func (p *Plugin) HandleMethod(ctx context.Context, method string, arguments interface{}) (interface{}, error) {
	h, ok := p.handlers[method]
	if !ok {
		return nil, channel.ErrNotImplemented
	}
	return h(ctx, arguments)
}

// getPlatformVersion serves the one implemented method. Arguments are
// ignored; the reply is always a string, even when the underlying OS
// query degrades to a fallback.
func (p *Plugin) getPlatformVersion(ctx context.Context, _ interface{}) (interface{}, error) {
	return p.versionFn(ctx), nil
}
