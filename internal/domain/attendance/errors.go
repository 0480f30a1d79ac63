package attendance

import "errors"

var (
	ErrNotFound = errors.New("attendance record not found")
	// ErrSummaryImportUnsupported is returned for monthly summary imports,
	// which are expanded into daily rows by the INSERT_ATTENDANCE_DATA
	// database procedure rather than by this service.
	ErrSummaryImportUnsupported = errors.New("monthly attendance import requires the INSERT_ATTENDANCE_DATA procedure")
)
