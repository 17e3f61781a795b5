package common

import (
	"fmt"
	"strings"
)

type Optional[T any] struct {
	Value     T
	IsPresent bool
}

func (p *Optional[T]) String() string {
	if !p.IsPresent {
		return "[-]"
	}
	return fmt.Sprintf("[%v]", p.Value)
}

func NewOptional[T any](value T, isPresent bool) Optional[T] {
	return Optional[T]{Value: value, IsPresent: isPresent}
}

// NewOptionalString treats an empty (or blank) string as an absent value.
func NewOptionalString(value string) Optional[string] {
	return NewOptional(value, strings.TrimSpace(value) != "")
}

// ValueOr returns the wrapped value if present and fallback otherwise.
func (p Optional[T]) ValueOr(fallback T) T {
	if !p.IsPresent {
		return fallback
	}
	return p.Value
}
