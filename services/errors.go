package services

import "fmt"

// AppError is the error type every service returns. Handlers map it
// straight onto the HTTP response: code, user-facing message and the
// optional field-level data. The wrapped cause never reaches the client.
type AppError struct {
	HTTPCode int
	Message  string
	Data     interface{}
	Err      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newAppError(httpCode int, message string, cause error) *AppError {
	return &AppError{HTTPCode: httpCode, Message: message, Err: cause}
}

// newAppErrorWithData attaches structured detail, typically a
// field-name to message map for validation failures.
func newAppErrorWithData(httpCode int, message string, data interface{}, cause error) *AppError {
	return &AppError{HTTPCode: httpCode, Message: message, Data: data, Err: cause}
}
