package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// stderr is swapped in tests.
var stderr io.Writer = os.Stderr

// writerRegistry tracks every rotating file writer handed to a core so the
// process can close them on exit.
var (
	writerRegistry   []*lumberjack.Logger
	writerRegistryMu sync.Mutex
)

// newFileWriter returns a rotating writer for config.Director/config.FileName.
func newFileWriter(config Config) (*lumberjack.Logger, error) {
	if err := os.MkdirAll(config.Director, 0o755); err != nil {
		return nil, err
	}

	writer := &lumberjack.Logger{
		Filename:   filepath.Join(config.Director, config.FileName),
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
		Compress:   config.Compress,
		LocalTime:  true,
	}

	writerRegistryMu.Lock()
	writerRegistry = append(writerRegistry, writer)
	writerRegistryMu.Unlock()

	return writer, nil
}

// getWriteSyncer combines the terminal and file sinks selected by config.
// A file directory that cannot be created is skipped rather than failing
// logger construction.
func getWriteSyncer(config Config) zapcore.WriteSyncer {
	var sinks []zapcore.WriteSyncer

	if config.LogInTerminal {
		sinks = append(sinks, zapcore.AddSync(stderr))
	}

	if config.Director != "" {
		if fw, err := newFileWriter(config); err == nil {
			sinks = append(sinks, zapcore.AddSync(fw))
		}
	}

	switch len(sinks) {
	case 0:
		return nil
	case 1:
		return sinks[0]
	default:
		return zapcore.NewMultiWriteSyncer(sinks...)
	}
}

// CloseAllWriters closes all rotating file writers created so far.
func CloseAllWriters() error {
	writerRegistryMu.Lock()
	defer writerRegistryMu.Unlock()

	var lastErr error
	for _, w := range writerRegistry {
		if err := w.Close(); err != nil {
			lastErr = err
		}
	}
	writerRegistry = nil
	return lastErr
}
