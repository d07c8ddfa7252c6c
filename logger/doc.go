// Package logger provides structured logging for restkit using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers with structured fields.
//
//	log := logger.NewDefault("my-service")
//	log.Info("request sent", logger.Fields("status", 200))
package logger
