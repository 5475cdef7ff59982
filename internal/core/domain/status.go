package domain

// ActionStatusType is the processing status shared by ledger actions.
type ActionStatusType string

const (
	StatusUnprocessed ActionStatusType = "UNPROCESSED"
	StatusProcessing  ActionStatusType = "PROCESSING"
	StatusProcessed   ActionStatusType = "PROCESSED"
	StatusCancelled   ActionStatusType = "CANCELLED"
	StatusError       ActionStatusType = "ERROR"
)

// UnprocessedTypes are the statuses a request may still be processed from.
// ERROR is included so that an operator can retry a failed request.
var UnprocessedTypes = []ActionStatusType{StatusUnprocessed, StatusProcessing, StatusError}

// UnprocessingTypes are the statuses a request may still be cancelled from.
var UnprocessingTypes = []ActionStatusType{StatusUnprocessed, StatusError}

// FinishTypes are the terminal statuses.
var FinishTypes = []ActionStatusType{StatusProcessed, StatusCancelled}

// IsUnprocessed reports whether the status still allows processing.
func (s ActionStatusType) IsUnprocessed() bool {
	return s == StatusUnprocessed || s == StatusProcessing || s == StatusError
}

// IsUnprocessing reports whether the status still allows cancellation.
// Note the asymmetry with Error transitions: an errored request can be
// retried or cancelled, but it cannot be errored twice.
func (s ActionStatusType) IsUnprocessing() bool {
	return s == StatusUnprocessed || s == StatusError
}

// IsFinish reports whether the status is terminal.
func (s ActionStatusType) IsFinish() bool {
	return s == StatusProcessed || s == StatusCancelled
}
