package dtos

// WebResponse ist die Hülle jeder JSON-Antwort. Details trägt Feldfehler oder gescheiterte Schritte.
type WebResponse[T any] struct {
	Message   string `json:"message"`
	Data      T      `json:"data"`
	Details   []any  `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// StepFailure ist ein Nebenschritt einer Weiterleitung, der nicht geklappt hat (HTTP 207).
type StepFailure struct {
	Step    string `json:"step"`
	Message string `json:"message"`
}
