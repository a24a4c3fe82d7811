package lhttp

import (
	"fmt"
	"net/http"
)

type HttpError struct {
	Code    int
	Message string
	Err     error
}

func FromError(err error) *HttpError {
	if err == nil {
		return nil
	}

	// Own type
	if herr, ok := err.(*HttpError); ok {
		return herr
	}

	return &HttpError{Err: err}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("got code %d and message \"%s\"", e.Code, e.Message)
}

func (e *HttpError) Clone() *HttpError {
	if e == nil {
		return nil
	}
	return &HttpError{
		Code:    e.Code,
		Message: e.Message,
		Err:     e.Err,
	}
}

func (e *HttpError) IsNotFound() bool {
	return e != nil && e.Code == http.StatusNotFound
}
