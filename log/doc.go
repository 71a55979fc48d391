// Package log provides fast, structured logging based on Go's slog package.
//
// This package wraps Go's standard slog library with additional convenience
// functions and configuration options for simulator and tooling development.
//
// # Features
//
//   - Structured logging with key-value pairs
//   - A console handler with a slimmer default time format
//   - Configurable log levels, adjustable at runtime
//   - Testing utilities for log verification
//
// # Basic Usage
//
//	import "github.com/retroenv/sim8086/log"
//
//	func main() {
//		logger := log.New()
//
//		logger.Info("loaded program",
//			log.String("file", "boot.bin"),
//			log.Int("bytes", 512),
//		)
//
//		logger.Debug("memory read out of range",
//			log.String("address", "0x10000"),
//		)
//	}
//
// Custom configuration (level, output writer, handler, time format) goes
// through NewWithConfig and Config.
//
// # Log Levels
//
//   - Trace: finer-grained than Debug, for per-instruction tracing
//   - Debug: detailed diagnostic information
//   - Info: general operational messages
//   - Warn: warning conditions that don't halt operation
//   - Error: error conditions that may affect functionality
//   - Fatal: logs and then terminates the process
//
// # Testing Support
//
// NewTestLogger returns a Logger that writes through t.Log, so test output
// only surfaces for failing or verbose test runs.
//
// # Thread Safety
//
// All logging operations are thread-safe and can be used concurrently from
// multiple goroutines without external synchronization.
package log
