package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidParams        ErrorCode = 102
	ErrCodeInsufficientData     ErrorCode = 103
	ErrCodeInvalidType          ErrorCode = 104
	ErrCodeInvalidPeriod        ErrorCode = 105
	ErrCodeMissingParameter     ErrorCode = 106
	ErrCodeInvalidDateRange     ErrorCode = 107

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound  ErrorCode = 200
	ErrCodeQueryFailed   ErrorCode = 201
	ErrCodeStoreFailed   ErrorCode = 202
	ErrCodeInvalidSeries ErrorCode = 203

	// Indicator errors (300-399)
	ErrCodeIndicatorCalculation ErrorCode = 300

	// Strategy errors (400-499)
	ErrCodeStrategyNotFound      ErrorCode = 400
	ErrCodeStrategyAlreadyExists ErrorCode = 401
	ErrCodeSignalGeneration      ErrorCode = 402

	// Simulation errors (500-599)
	ErrCodeSignalLengthMismatch ErrorCode = 500
	ErrCodeEmptyEquityCurve     ErrorCode = 501

	// Comparison errors (600-699)
	ErrCodeNoStrategies      ErrorCode = 600
	ErrCodeUnknownRankMetric ErrorCode = 601
	ErrCodeBatchCancelled    ErrorCode = 602
)
