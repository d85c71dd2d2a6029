package errors

import "net/http"

var ErrConfiguration = &Exception{
	Message:    "invalid configuration",
	StatusCode: http.StatusInternalServerError,
}
