package generate

// GenerationError indicates the model could not produce a usable page schema.
type GenerationError struct {
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return "generation error: " + e.Message + ": " + e.Cause.Error()
	}
	return "generation error: " + e.Message
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
