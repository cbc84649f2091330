package domain

import (
	"fmt"
	"strings"
)

// Fault attaches a detail message and an optional cause to a sentinel error.
// errors.Is matches both the sentinel and anything in the cause chain.
type Fault struct {
	Sentinel error
	Detail   string
	Cause    error
}

// NewFault builds a Fault with a formatted detail.
func NewFault(sentinel error, format string, args ...any) *Fault {
	return &Fault{Sentinel: sentinel, Detail: fmt.Sprintf(format, args...)}
}

// WrapFault classifies cause under sentinel.
func WrapFault(sentinel, cause error, format string, args ...any) *Fault {
	return &Fault{Sentinel: sentinel, Detail: fmt.Sprintf(format, args...), Cause: cause}
}

func (f *Fault) Error() string {
	parts := make([]string, 0, 3)
	parts = append(parts, f.Sentinel.Error())
	if f.Detail != "" {
		parts = append(parts, f.Detail)
	}
	if f.Cause != nil {
		parts = append(parts, f.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

func (f *Fault) Unwrap() []error {
	if f.Cause == nil {
		return []error{f.Sentinel}
	}
	return []error{f.Sentinel, f.Cause}
}
