package models

import "fmt"

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrTableLoad ErrorType = iota
	ErrResolve
	ErrRender
	ErrFileOp
	ErrSigning
	ErrTestPlan
	ErrInvalidConfig
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrTableLoad:
		return "TableLoad"
	case ErrResolve:
		return "Resolve"
	case ErrRender:
		return "Render"
	case ErrFileOp:
		return "FileOp"
	case ErrSigning:
		return "Signing"
	case ErrTestPlan:
		return "TestPlan"
	case ErrInvalidConfig:
		return "InvalidConfig"
	default:
		return "Unknown"
	}
}

// GenError represents an error during artifact or test-plan generation
type GenError struct {
	Type    ErrorType
	Subject string // dist, artifact or suite the error relates to
	Err     error
}

// Error implements the error interface
func (e *GenError) Error() string {
	if e.Subject != "" {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Subject, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *GenError) Unwrap() error {
	return e.Err
}
