package extract

// ExtractionError indicates the source page could not be parsed into
// structured content.
type ExtractionError struct {
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return "extraction error: " + e.Message + ": " + e.Cause.Error()
	}
	return "extraction error: " + e.Message
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
