package util

type Envelope map[string]any

// Message wraps a human-readable status message; every error response and
// most success responses use this shape.
func Message(text string) Envelope {
	return Envelope{"message": text}
}
