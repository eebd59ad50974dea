package model

// InvalidProjectError signals that a model or its metadata could not be loaded.
// The message carries the resolved path and the underlying cause.
type InvalidProjectError struct {
	Message string
}

func (e *InvalidProjectError) Error() string {
	return e.Message
}

// MissingArgumentError signals that a required argument was absent from a call.
type MissingArgumentError struct {
	Message string
}

func (e *MissingArgumentError) Error() string {
	return e.Message
}
