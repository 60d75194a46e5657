package logging

import (
	"sync"
)

// Factory hands out named child loggers of one root logger, so every
// component of a command logs through the same sinks.
type Factory struct {
	root    Logger
	loggers sync.Map // map[string]Logger
}

// NewFactory creates a Factory over root. A nil root uses the global logger.
func NewFactory(root Logger) *Factory {
	if root == nil {
		root = Global()
	}
	return &Factory{root: root}
}

// GetLogger returns the logger named name, creating it on first use.
func (f *Factory) GetLogger(name string) Logger {
	if v, ok := f.loggers.Load(name); ok {
		return v.(Logger)
	}

	logger := f.root.Named(name)
	actual, _ := f.loggers.LoadOrStore(name, logger)
	return actual.(Logger)
}

// Root returns the logger the factory derives from.
func (f *Factory) Root() Logger {
	return f.root
}
