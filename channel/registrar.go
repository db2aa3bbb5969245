package channel

import "go.uber.org/zap"

// Registrar is handed to a plugin at registration time. It carries the
// host runtime's messenger and logger; the plugin uses it to create
// its channels. The registrar itself holds no per-plugin state.
type Registrar struct {
	messenger BinaryMessenger
	logger    *zap.Logger
}

// NewRegistrar creates a registrar backed by the given messenger.
func NewRegistrar(messenger BinaryMessenger, logger *zap.Logger) *Registrar {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registrar{messenger: messenger, logger: logger}
}

// Messenger returns the host runtime's binary messenger.
func (r *Registrar) Messenger() BinaryMessenger { return r.messenger }

// Logger returns the host runtime's logger for plugin use.
func (r *Registrar) Logger() *zap.Logger { return r.logger }
