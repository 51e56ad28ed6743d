package davclient

import (
	"errors"
	"fmt"
	"net/http"
)

type StatusError struct {
	Method  string
	Path    string
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if len(e.Message) == 0 {
		return fmt.Sprintf("status code not ok, method:%s, path:%s, code:%d", e.Method, e.Path, e.Code)
	}
	return fmt.Sprintf("status code not ok, method:%s, path:%s, code:%d, msg:%s", e.Method, e.Path, e.Code, e.Message)
}

func IsStatus(err error, code int) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	return se.Code == code
}

func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}
