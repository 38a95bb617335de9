package clients

import (
	"errors"
	"sort"
	"strings"
)

// ErrLoginExhausted: no se pudo generar un login libre tras maxTokenAttempts.
var ErrLoginExhausted = errors.New("could not generate a unique login")

// ValidationError enumera los problemas por campo (forma tipo DRF).
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
}
