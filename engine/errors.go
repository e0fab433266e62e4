package engine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnresolvedAttribute reports an attribute or association name that
	// no override, reader capability, or reflected field could resolve.
	ErrUnresolvedAttribute = errors.New("attribute cannot be resolved on source object")

	// ErrNoSerializer reports that every serializer resolution strategy
	// failed for an associated object.
	ErrNoSerializer = errors.New("no serializer could be resolved for associated object")

	// ErrNoSideloadRoot reports an association that requests side-loading
	// outside any top-level call that established a collector.
	ErrNoSideloadRoot = errors.New("cannot include associations without a side-loading root")
)

// ConfigError is a fatal serialization-time configuration error. It wraps
// one of the sentinel errors above and carries the serializer and field it
// was detected at.
type ConfigError struct {
	// Serializer is the descriptor name the error was detected in.
	Serializer string
	// Field is the attribute or association source name, if any.
	Field string
	// Detail describes the specific failure.
	Detail string
	// Err is the sentinel category, matched with errors.Is.
	Err error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	var parts []string
	if e.Serializer != "" {
		parts = append(parts, "["+e.Serializer+"]")
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	msg := e.Err.Error()
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", e.Detail, msg)
	}

	if len(parts) > 0 {
		return strings.Join(parts, " ") + ": " + msg
	}

	return msg
}

// Unwrap returns the sentinel category.
func (e *ConfigError) Unwrap() error { return e.Err }

func configErr(serializer, field, detail string, err error) *ConfigError {
	return &ConfigError{Serializer: serializer, Field: field, Detail: detail, Err: err}
}
