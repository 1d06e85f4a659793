package observe

import "errors"

var (
	ErrMissingServiceName     = errors.New("observe: service name is required")
	ErrInvalidSamplePct       = errors.New("observe: sample percentage must be between 0 and 1")
	ErrInvalidTracingExporter = errors.New("observe: invalid tracing exporter")
	ErrInvalidMetricsExporter = errors.New("observe: invalid metrics exporter")
	ErrInvalidLogLevel        = errors.New("observe: invalid log level")
)

var (
	// ErrNilObserver is returned when a nil Observer is passed in.
	ErrNilObserver = errors.New("observe: observer is nil")

	// ErrMissingOpName is returned when OpMeta.Name is empty.
	ErrMissingOpName = errors.New("observe: operation name is required")

	// ErrDuplicateSource is returned when a stats source is tracked twice.
	ErrDuplicateSource = errors.New("observe: stats source already tracked")
)
