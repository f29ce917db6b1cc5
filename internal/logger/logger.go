// Package logger re-exports goLogger so internal packages share one import path.
package logger

import (
	pkglogger "github.com/Bparsons0904/goLogger"
)

type Logger = pkglogger.Logger

var (
	New                = pkglogger.New
	ContextWithTraceID = pkglogger.ContextWithTraceID
	TraceIDFromContext = pkglogger.TraceIDFromContext
)
