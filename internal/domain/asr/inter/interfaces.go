package inter

import "context"

// Provider is a speech-to-text backend. The call is path-based: the caller
// writes the audio payload to a scoped temp file and hands over the path,
// matching the request shape of the hosted inference services.
type Provider interface {
	// Transcribe recognizes the speech in the audio file and returns the
	// recognized text with surrounding whitespace trimmed. An empty string
	// with a nil error is a valid outcome (silence / unintelligible audio).
	Transcribe(ctx context.Context, audioPath string) (string, error)

	// Name identifies the provider for logs.
	Name() string
}

// Config carries the provider-independent recognition settings.
type Config struct {
	Provider string
	Model    string
	BaseURL  string
	APIKey   string
	Timeout  int
}
