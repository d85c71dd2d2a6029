package errors

import (
	"errors"
	"net/http"
)

// Exception is a sentinel error carrying the HTTP status the serve command
// answers with. Wrap it with fmt.Errorf("%w: ...") to add detail.
type Exception struct {
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

// StatusCode returns the status of the first Exception in err's chain, or
// 500 for storage driver errors and anything else unclassified.
func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
