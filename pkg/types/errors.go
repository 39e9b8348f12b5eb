package types

import "errors"

// The registry reports expected failures as false or empty results. These
// errors are for the layers around it: configuration, scripts and the CLI.

// Configuration errors.
var (
	ErrOutputUnknown = errors.New("unknown output format")
	ErrLogFileEmpty  = errors.New("log file must not be empty when debug is enabled")

	ErrTraceExporterUnknown = errors.New("unknown trace exporter")
	ErrTraceFileEmpty       = errors.New("trace file must not be empty for the file exporter")
	ErrSampleRate           = errors.New("trace sample rate must be within [0, 1]")
)

// Script errors.
var (
	ErrUnknownOp     = errors.New("unknown operation")
	ErrUnknownKind   = errors.New("unknown entity kind")
	ErrUnknownName   = errors.New("name is not bound to a uid")
	ErrDuplicateName = errors.New("name is already bound")
	ErrMissingArg    = errors.New("missing argument")
	ErrInvalidArg    = errors.New("invalid argument")
	ErrExpectation   = errors.New("expectation failed")
	ErrEmptyScript   = errors.New("script has no steps")
	ErrUnsupportedOp = errors.New("operation not supported for kind")
)
