// Package logger provides structured logging for whisperd using zerolog.
//
// It supports JSON and console output, level configuration from config or
// environment, and component-scoped loggers with structured fields.
//
// # Usage
//
//	log := logger.WithComponent("scheduler")
//	log.Info("job admitted", logger.Fields("job_id", id, "path", "hot"))
package logger
