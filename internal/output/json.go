package output

import (
	"encoding/json"
	"io"
)

// ErrorCode represents a machine-readable error classification.
type ErrorCode string

// Error code constants, mirroring the pipeline error taxonomy: transport
// failures from the store or tracker, missing required input, and
// everything else.
const (
	ErrGeneral   ErrorCode = "GENERAL_ERROR"
	ErrTransport ErrorCode = "TRANSPORT_ERROR"
	ErrInput     ErrorCode = "INPUT_ERROR"
	ErrNotFound  ErrorCode = "NOT_FOUND"
)

// Exit code constants. Both pipelines exit 0 on success or an intentional
// skip and 1 on any error; the ErrorCode survives in the JSON envelope for
// machine consumers.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// ExitCodeForError maps an ErrorCode to its corresponding exit code.
func ExitCodeForError(code ErrorCode) int {
	if code == "" {
		return ExitSuccess
	}
	return ExitFailure
}

// successEnvelope is the JSON structure for successful responses.
type successEnvelope struct {
	OK      bool   `json:"ok"`
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

// errorEnvelope is the JSON structure for error responses.
type errorEnvelope struct {
	OK    bool      `json:"ok"`
	Error string    `json:"error"`
	Code  ErrorCode `json:"code"`
}

// writeJSONSuccess writes a success envelope to w.
func writeJSONSuccess(w io.Writer, data any, message string) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(successEnvelope{
		OK:      true,
		Data:    data,
		Message: message,
	})
}

// writeJSONError writes an error envelope to w.
func writeJSONError(w io.Writer, err error, code ErrorCode) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(errorEnvelope{
		OK:    false,
		Error: err.Error(),
		Code:  code,
	})
}
