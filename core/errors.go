package core

import (
	"errors"
	"fmt"
	"os"
)

// Status classifies the errors of svgtext. Values double as exit codes of
// command line tools.
type Status int

// Status codes
const (
	NOERROR   Status = 0
	EMISSING  Status = 122 // resource does not exist
	EINVALID  Status = 123 // validation failed
	ESYNTAX   Status = 124 // malformed input, e.g. a glyph specification
	EINTERNAL Status = 125 // internal error
)

var statusText = map[Status]string{
	NOERROR:   "OK",
	EMISSING:  "not found",
	EINVALID:  "invalid",
	ESYNTAX:   "syntax error",
	EINTERNAL: "internal error",
}

func (s Status) String() string {
	if text, ok := statusText[s]; ok {
		return text
	}
	return fmt.Sprintf("status %d", int(s))
}

// AppError is an error which carries a status and a message to show to
// users.
type AppError interface {
	error
	Status() Status
	UserMessage() string
}

// statusError decorates a cause with a status and a user message.
type statusError struct {
	cause  error
	status Status
	msg    string
}

func (e *statusError) Error() string {
	cause := e.cause.Error()
	if e.msg == "" || e.msg == cause {
		return fmt.Sprintf("[%d] %s", e.status, cause)
	}
	return fmt.Sprintf("[%d] %s: %s", e.status, e.msg, cause)
}

func (e *statusError) Unwrap() error       { return e.cause }
func (e *statusError) Status() Status      { return e.status }
func (e *statusError) UserMessage() string { return e.msg }

var _ AppError = (*statusError)(nil)

// decorate creates a status error. A nil cause is replaced by an error
// carrying the text of status.
func decorate(cause error, status Status, msg string) error {
	if cause == nil {
		cause = errors.New(status.String())
	}
	return &statusError{cause: cause, status: status, msg: msg}
}

// Error creates an error with a status and a user message.
func Error(status Status, format string, v ...any) error {
	return decorate(nil, status, fmt.Sprintf(format, v...))
}

// WrapError decorates err with a status and a user message. err may be nil.
func WrapError(err error, status Status, format string, v ...any) error {
	return decorate(err, status, fmt.Sprintf(format, v...))
}

// ErrorWithCode decorates err with a status. The user message is the text
// of the status.
func ErrorWithCode(err error, status Status) error {
	return decorate(err, status, status.String())
}

// Code returns the status of the outermost status error in err's chain:
// NOERROR for nil, EINTERNAL for errors without a status.
func Code(err error) Status {
	if err == nil {
		return NOERROR
	}
	var e AppError
	if errors.As(err, &e) {
		return e.Status()
	}
	return EINTERNAL
}

// IsSyntaxError is true for errors caused by malformed input.
func IsSyntaxError(err error) bool {
	return Code(err) == ESYNTAX
}

// UserMessage returns the message of err to show to users, or "" for nil.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e AppError
	if errors.As(err, &e) && e.UserMessage() != "" {
		return e.UserMessage()
	}
	return Code(err).String()
}

// UserError reports err on stderr.
func UserError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "[%d] %s\n", Code(err), UserMessage(err))
}
