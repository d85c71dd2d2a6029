package errors

import "net/http"

var ErrInvalidPayload = &Exception{
	Message:    "invalid JSON payload",
	StatusCode: http.StatusBadRequest,
}
