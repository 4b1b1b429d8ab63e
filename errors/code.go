package errors

import (
	"net/http"
)

func BadRequest() Enricher { return WithCode(http.StatusBadRequest) }
func NotFound() Enricher   { return WithCode(http.StatusNotFound) }
func Conflict() Enricher   { return WithCode(http.StatusConflict) }

// IsNotFound reports whether err carries a 404 code.
func IsNotFound(err error) bool {
	cerr, ok := err.(Error)
	return ok && cerr.Code() == http.StatusNotFound
}
