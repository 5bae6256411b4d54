package dto

// Result is the uniform response envelope: either a successful payload
// or a human-readable failure message, never both.
type Result struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// Success wraps a payload in a successful envelope.
func Success(data any) Result {
	return Result{Success: true, Data: data}
}

// Fail wraps a failure message in an unsuccessful envelope.
func Fail(message string) Result {
	return Result{Success: false, Message: message}
}
