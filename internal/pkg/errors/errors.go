package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindInvalidFormat       Kind = "INVALID_FORMAT"
	KindInvalidRange        Kind = "INVALID_RANGE"
	KindCrossesMidnight     Kind = "CROSSES_MIDNIGHT"
	KindSlotConflict        Kind = "SLOT_CONFLICT"
	KindResourceUnavailable Kind = "RESOURCE_UNAVAILABLE"
	KindNotFound            Kind = "NOT_FOUND"
	KindForbidden           Kind = "FORBIDDEN"
	KindInvalidState        Kind = "INVALID_STATE"
	KindDeadlinePassed      Kind = "DEADLINE_PASSED"

	KindBadRequest      Kind = "BAD_REQUEST"
	KindUnauthorized    Kind = "UNAUTHORIZED"
	KindTooManyRequests Kind = "TOO_MANY_REQUESTS"
	KindInternal        Kind = "INTERNAL_SERVER_ERROR"
)

var httpCodes = map[Kind]int{
	KindInvalidFormat:       http.StatusBadRequest,
	KindInvalidRange:        http.StatusBadRequest,
	KindCrossesMidnight:     http.StatusBadRequest,
	KindSlotConflict:        http.StatusConflict,
	KindResourceUnavailable: http.StatusUnprocessableEntity,
	KindNotFound:            http.StatusNotFound,
	KindForbidden:           http.StatusForbidden,
	KindInvalidState:        http.StatusConflict,
	KindDeadlinePassed:      http.StatusUnprocessableEntity,
	KindBadRequest:          http.StatusBadRequest,
	KindUnauthorized:        http.StatusUnauthorized,
	KindTooManyRequests:     http.StatusTooManyRequests,
	KindInternal:            http.StatusInternalServerError,
}

// CustomError is the only error shape that crosses the usecase boundary.
// ConflictID is set for SlotConflict when the conflicting booking is known.
type CustomError struct {
	Kind       Kind
	Code       int
	Message    string
	ConflictID string
	cause      error
}

func (e *CustomError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *CustomError) Unwrap() error {
	return e.cause
}

// Is matches any CustomError of the same kind, so callers can write
// errors.Is(err, errors.ErrSlotConflict).
func (e *CustomError) Is(target error) bool {
	var t *CustomError
	if !stderrors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrInvalidFormat       = &CustomError{Kind: KindInvalidFormat}
	ErrInvalidRange        = &CustomError{Kind: KindInvalidRange}
	ErrCrossesMidnight     = &CustomError{Kind: KindCrossesMidnight}
	ErrSlotConflict        = &CustomError{Kind: KindSlotConflict}
	ErrResourceUnavailable = &CustomError{Kind: KindResourceUnavailable}
	ErrNotFound            = &CustomError{Kind: KindNotFound}
	ErrForbidden           = &CustomError{Kind: KindForbidden}
	ErrInvalidState        = &CustomError{Kind: KindInvalidState}
	ErrDeadlinePassed      = &CustomError{Kind: KindDeadlinePassed}
	ErrInternal            = &CustomError{Kind: KindInternal}
)

func newError(kind Kind, msg string) *CustomError {
	return &CustomError{Kind: kind, Code: httpCodes[kind], Message: msg}
}

func InvalidFormat(msg string) error {
	return newError(KindInvalidFormat, msg)
}

func InvalidRange(msg string) error {
	return newError(KindInvalidRange, msg)
}

func CrossesMidnight(msg string) error {
	return newError(KindCrossesMidnight, msg)
}

func SlotConflict(bookingID string) error {
	e := newError(KindSlotConflict, "selected time overlaps with an existing booking")
	e.ConflictID = bookingID
	return e
}

func ResourceUnavailable(msg string) error {
	return newError(KindResourceUnavailable, msg)
}

func NotFound(msg string) error {
	return newError(KindNotFound, msg)
}

func Forbidden(msg string) error {
	return newError(KindForbidden, msg)
}

func InvalidState(msg string) error {
	return newError(KindInvalidState, msg)
}

func DeadlinePassed(msg string) error {
	return newError(KindDeadlinePassed, msg)
}

func BadRequest(msg string) error {
	return newError(KindBadRequest, msg)
}

func UnauthorizedError(msg string) error {
	return newError(KindUnauthorized, msg)
}

func TooManyRequests(msg string) error {
	return newError(KindTooManyRequests, msg)
}

func InternalServerError(msg string) error {
	return newError(KindInternal, msg)
}

// Wrap hides an infrastructure failure behind an opaque internal error
// while keeping the cause available to errors.Is/As and the logs.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	e := newError(KindInternal, msg)
	e.cause = err
	return e
}

func New(msg string) error {
	return stderrors.New(msg)
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// KindOf reports the kind of err, falling back to KindInternal for
// anything that is not a CustomError.
func KindOf(err error) Kind {
	var ce *CustomError
	if stderrors.As(err, &ce) {
		return ce.Kind
	}
	return KindInternal
}

// HTTPCode maps err to a response status.
func HTTPCode(err error) int {
	var ce *CustomError
	if stderrors.As(err, &ce) {
		if ce.Code != 0 {
			return ce.Code
		}
		if code, ok := httpCodes[ce.Kind]; ok {
			return code
		}
	}
	return http.StatusInternalServerError
}
