package collector

import "codeberg.org/mutker/hostwatch/internal/errors"

const (
	ErrMetricUnavailable = errors.ErrMetricUnavailable

	ErrEmptySample  = errors.ErrorCode("collector_empty_sample")
	ErrNoSensor     = errors.ErrorCode("collector_no_temperature_sensor")
	ErrNoService    = errors.ErrorCode("collector_no_service_configured")
	ErrEmptyStatus  = errors.ErrorCode("collector_empty_service_status")
	ErrNoProcessRow = errors.ErrorCode("collector_no_process_info")
)
