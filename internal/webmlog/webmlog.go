// Package webmlog is the package-level logging point every other
// package in this module calls through: a package-level, cheaply
// checked logging call backed by zap.
package webmlog

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu      sync.RWMutex
	current *zap.Logger
)

func init() {
	l, err := zap.NewProduction()
	if err != nil {
		l = zap.NewNop()
	}
	current = l
}

// L returns the process-wide logger. Safe for concurrent use.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// SetDevelopment switches to a human-readable console logger, suitable
// for interactive debugging.
func SetDevelopment() error {
	l, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	mu.Lock()
	current = l
	mu.Unlock()
	return nil
}

// Set installs a caller-provided logger, primarily for tests that want
// to assert on emitted fields via an observer core.
func Set(l *zap.Logger) {
	mu.Lock()
	current = l
	mu.Unlock()
}

// Sync flushes any buffered log entries. Call before process exit.
func Sync() {
	_ = L().Sync()
}
