// Package logger provides structured logging for micscribe using zerolog.
//
// Loggers are component scoped and take structured fields as maps:
//
//	log := logger.Get("recorder")
//	log.Info("microphone permission granted", logger.Fields("status", "idle"))
//
// # Configuration
//
//	logger:
//	  level: "info"
//	  format: "console"
package logger
