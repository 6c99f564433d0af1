package mberr

import (
	"fmt"
)

const (
	CodeNotFound        = "NOT_FOUND"
	CodeInvalidConfig   = "INVALID_CONFIG"
	CodeClone           = "CLONE_FAILED"
	CodeVendorNotFound  = "VENDOR_NOT_FOUND"
	CodeSlotIDCollision = "SLOT_ID_COLLISION"
	CodeInternalError   = "INTERNAL_ERROR"
)

var (
	// ErrNotFound is returned when a catalog entity is not found with the given id.
	ErrNotFound = New(CodeNotFound, "catalog entity not found with given id")

	// ErrInvalidConfig is returned when the mod configuration fails validation.
	ErrInvalidConfig = New(CodeInvalidConfig, "invalid mod configuration: some or all fields are invalid")

	// ErrClone is returned when the cloning facility rejects a clone request, either because
	// the clone source is unknown or because the new id already exists in the catalog.
	ErrClone = New(CodeClone, "failed to create item from clone")

	// ErrVendorNotFound is returned when the configured vendor does not resolve in the catalog.
	ErrVendorNotFound = New(CodeVendorNotFound, "vendor not found with given id")

	// ErrSlotIDCollision is returned when a derived slot id cannot be guaranteed unique.
	ErrSlotIDCollision = New(CodeSlotIDCollision, "derived slot id collides with an existing slot id")

	// ErrInternalError is returned when an unexpected internal error occurs.
	ErrInternalError = New(CodeInternalError, "internal error occurred")
)

type Extras map[string]interface{}

type MapbookError struct {
	ErrorCode string
	Message   string
	Extras    *Extras
}

func New(errorCode string, message string) *MapbookError {
	return &MapbookError{
		ErrorCode: errorCode,
		Message:   message,
	}
}

func (e MapbookError) Msg(format string, parts ...interface{}) *MapbookError {
	e.Message = fmt.Sprintf(format, parts...)
	return &e
}

func (e MapbookError) WithExtras(extras Extras) *MapbookError {
	e.Extras = &extras
	return &e
}

func NewInvalidViolations(violations interface{}) *MapbookError {
	// copy ErrInvalidConfig as e
	e := *ErrInvalidConfig
	e.Extras = &Extras{
		"violations": violations,
	}
	return &e
}

func (e *MapbookError) Error() string {
	return fmt.Sprintf("%s: %s", e.ErrorCode, e.Message)
}

// Is reports errors sharing the same error code as equal, so that derived errors
// created with Msg or WithExtras still match their sentinel.
func (e *MapbookError) Is(target error) bool {
	t, ok := target.(*MapbookError)
	if !ok {
		return false
	}
	return t.ErrorCode == e.ErrorCode
}
