package logger

import (
	"go.uber.org/zap"
)

// Standard field names for structured logging across cs2ts.
const (
	FieldRunID       = "run_id"
	FieldComponent   = "component"
	FieldFile        = "file"
	FieldOutput      = "output"
	FieldDeclaration = "declaration"
	FieldMember      = "member"
	FieldCount       = "count"
	FieldDurationMS  = "duration_ms"
	FieldError       = "error"
	FieldPhase       = "phase"
	FieldWorkers     = "workers"
)

// ComponentLogger returns a named logger for a specific component.
//
// Example:
//
//	type Writer struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func NewWriter() *Writer {
//	    return &Writer{logger: logger.ComponentLogger("typegen.writer")}
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// RunLogger returns a component logger tagged with a generation run id
func RunLogger(component, runID string) *zap.SugaredLogger {
	return ComponentLogger(component).With(FieldRunID, runID)
}
