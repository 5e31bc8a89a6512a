package media

// ValidationError reports a malformed or incompatible request. It fails
// fast before any encoder backend is invoked and is never retried.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}
