package errors

import "net/http"

var ErrStorageUnavailable = &Exception{
	Message:    "storage unavailable",
	StatusCode: http.StatusServiceUnavailable,
}
