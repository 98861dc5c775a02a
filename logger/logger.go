// Package logger provides adapters for popular logger libraries to work with epochsync's Logger interface.
//
// The adapters allow you to use your existing logger with epochsync without writing boilerplate.
// Note that the standard library's slog.Logger already implements epochsync.Logger directly.
//
// Example with zap:
//
//	import (
//	    "epochsync"
//	    "epochsync/logger"
//	    "go.uber.org/zap"
//	)
//
//	func main() {
//	    zapLogger, _ := zap.NewProduction()
//	    vs := epochsync.New(epochsync.WithLogger(logger.NewZap(zapLogger)))
//	    // ...
//	}
package logger
