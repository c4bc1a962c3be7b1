package stepwise

import (
	"errors"
	"fmt"
)

// ============================================================
// Error taxonomy
// ============================================================

var (
	// ErrWrongArgument is returned when a constructor receives a malformed value.
	ErrWrongArgument = errors.New("wrong argument")
	// ErrUncompatibleType is returned when a constructor receives a node of the wrong kind.
	ErrUncompatibleType = errors.New("uncompatible type")
	// ErrOutOfRangeArgument is returned for well-typed values outside the allowed set.
	ErrOutOfRangeArgument = errors.New("out of range argument")
	// ErrImpossibleAction is returned for semantically invalid requests on valid trees.
	ErrImpossibleAction = errors.New("impossible action")
	// ErrNonEvaluable is returned by Evaluate when a literal leaf is still unresolved.
	ErrNonEvaluable = errors.New("non evaluable")
)

func wrongArgument(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrWrongArgument, fmt.Sprintf(format, args...))
}

func uncompatibleType(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrUncompatibleType, fmt.Sprintf(format, args...))
}

func outOfRange(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrOutOfRangeArgument, fmt.Sprintf(format, args...))
}

func impossibleAction(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrImpossibleAction, fmt.Sprintf(format, args...))
}

func nonEvaluable(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNonEvaluable, fmt.Sprintf(format, args...))
}
