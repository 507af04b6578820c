package eventbus

// Check pipeline events. Observability only: no subscriber may influence the
// outcome of a request.
const (
	EventCheckReceived   = "check:received"
	EventCheckTranscoded = "check:transcoded"
	EventCheckResult     = "check:result"
	EventCheckError      = "check:error"
)

// CheckEventData describes one stage of an answer-check request.
type CheckEventData struct {
	CheckID    string `json:"check_id"`
	Filename   string `json:"filename,omitempty"`
	InputSize  int    `json:"input_size,omitempty"`
	OutputSize int    `json:"output_size,omitempty"`
	Text       string `json:"text,omitempty"`
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
}
