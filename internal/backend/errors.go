package backend

import "fmt"

// APIError carries a server-reported business error: success:false, an
// error field, or a non-2xx status. The message is shown to the user
// verbatim when present.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

// errorEnvelope covers the error shapes the backend emits:
// {success:false, message}, {error} and FastAPI's {detail}.
type errorEnvelope struct {
	Success *bool  `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

func (e errorEnvelope) text() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Error != "":
		return e.Error
	default:
		return e.Detail
	}
}

func (e errorEnvelope) failed() bool {
	return (e.Success != nil && !*e.Success) || e.Error != ""
}
