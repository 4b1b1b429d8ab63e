package errors

import (
	"fmt"
)

// Error is an error carrying the HTTP status code it should surface
// with. Handlers unwrap it in a single place, the JSON formatter.
type Error interface {
	error

	Code() int
	Message() string
	Cause() error
}

// DefaultCode is used when no enricher sets one. 500, Internal Server
// Error.
var DefaultCode = 500

type codedError struct {
	code  int
	msg   string
	cause *codedError
}

func (err *codedError) Error() string {
	if err.cause == nil {
		return err.msg
	}

	return fmt.Sprintf("%s: %v", err.msg, err.cause)
}

func (err *codedError) Code() int { return err.code }

func (err *codedError) Message() string { return err.msg }

func (err *codedError) Cause() error {
	if err.cause == nil {
		return nil
	}
	return err.cause
}

// An Enricher decorates an error, typically with a code or a cause.
type Enricher func(error) error

// WithCode sets the HTTP code of the error, converting it to an Error
// when needed.
func WithCode(code int) Enricher {
	return func(err error) error {
		if err == nil {
			return nil
		}

		if cerr, ok := err.(*codedError); ok {
			cerr.code = code
			return cerr
		}

		return &codedError{
			msg:  err.Error(),
			code: code,
		}
	}
}

// WithCause attaches a cause. When the enriched error is not an Error
// yet, the cause's code is forwarded.
func WithCause(cause error) Enricher {
	var inner *codedError
	switch cause := cause.(type) {
	case *codedError:
		inner = cause
	default:
		inner = &codedError{msg: cause.Error(), code: DefaultCode}
	}

	return func(err error) error {
		if err == nil {
			return nil
		}

		if cerr, ok := err.(*codedError); ok {
			cerr.cause = inner
			return cerr
		}

		return &codedError{
			msg:   err.Error(),
			code:  inner.code,
			cause: inner,
		}
	}
}

// New builds an Error from a message and enrichers. Without enrichers the
// error carries DefaultCode.
func New(msg string, fs ...Enricher) error {
	var err error
	err = &codedError{
		msg:  msg,
		code: DefaultCode,
	}

	for _, f := range fs {
		err = f(err)
	}

	return err
}
