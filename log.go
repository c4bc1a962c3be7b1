package stepwise

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var engineLogger atomic.Pointer[zap.Logger]

func init() { engineLogger.Store(zap.NewNop()) }

// SetLogger replaces the logger used for reduction and solver tracing.
// A nil logger silences the engine again.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	engineLogger.Store(l.Named("stepwise"))
}

func lg() *zap.Logger { return engineLogger.Load() }
