package errors

// Common error codes
const (
	// System errors
	ErrInternal        ErrorCode = "internal_error"
	ErrInvalidArgument ErrorCode = "invalid_argument"

	// Configuration errors
	ErrInvalidConfig   ErrorCode = "invalid_configuration"
	ErrMissingConfig   ErrorCode = "missing_configuration"
	ErrBindFlags       ErrorCode = "bind_flags_failed"
	ErrReadConfig      ErrorCode = "read_config_failed"
	ErrInvalidLogLevel ErrorCode = "invalid_log_level"

	// Initialization errors
	ErrInitFailed     ErrorCode = "initialization_failed"
	ErrShutdownFailed ErrorCode = "shutdown_failed"

	// Collection errors
	ErrMetricUnavailable ErrorCode = "metric_unavailable"

	// Log analysis errors
	ErrFileUnreadable ErrorCode = "file_unreadable"

	// Reporting errors
	ErrMissingCredentials ErrorCode = "missing_credentials"
	ErrDeliveryFailed     ErrorCode = "delivery_failed"
	ErrHistoryCorrupt     ErrorCode = "history_corrupt"
	ErrPersistFailed      ErrorCode = "persist_failed"
)

// Common error messages
var errorMessages = map[ErrorCode]string{
	ErrInternal:           "Internal error occurred",
	ErrInvalidArgument:    "Invalid argument provided",
	ErrInvalidConfig:      "Invalid configuration",
	ErrMissingConfig:      "Missing configuration",
	ErrBindFlags:          "Failed to bind flags",
	ErrReadConfig:         "Failed to read configuration",
	ErrInvalidLogLevel:    "Invalid log level",
	ErrInitFailed:         "Initialization failed",
	ErrShutdownFailed:     "Shutdown failed",
	ErrMetricUnavailable:  "Metric unavailable",
	ErrFileUnreadable:     "Failed to read log file",
	ErrMissingCredentials: "Email credentials missing",
	ErrDeliveryFailed:     "Failed to send email",
	ErrHistoryCorrupt:     "History file is corrupt",
	ErrPersistFailed:      "Failed to persist history record",
}

// GetErrorMessage returns the message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}

	return string(code)
}
