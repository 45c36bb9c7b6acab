package workflow

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrSlotUnresolved    = errors.New("slot unresolved")
	ErrGenerationFailure = errors.New("generation failure")
	ErrWriteFailure      = errors.New("write failure")
	ErrSlotConflict      = errors.New("slot already bound")
	ErrWorkflowMustBeSet = errors.New("workflow must be set")
	ErrContextMustBeSet  = errors.New("context must be set")
	ErrInvalidComponent  = errors.New("invalid component")
)

// SlotError reports a failure tied to a slot, and to the component that hit it once known.
type SlotError struct {
	Kind      error
	Cause     error
	Slot      Slot
	Component string
}

func (e *SlotError) Error() string {
	var sb strings.Builder
	if e.Component != "" {
		fmt.Fprintf(&sb, "component %s: ", e.Component)
	}
	fmt.Fprintf(&sb, "slot %q: %v", e.Slot, e.Kind)
	if e.Cause != nil {
		fmt.Fprintf(&sb, ": %v", e.Cause)
	}

	return sb.String()
}

func (e *SlotError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Cause}
}

// Unresolved returns the error of a slot read before being bound.
func Unresolved(slot Slot) error {
	return &SlotError{Kind: ErrSlotUnresolved, Slot: slot}
}

// GenerationFailure returns the error of a capability rejecting the value held by slot.
func GenerationFailure(slot Slot, format string, args ...interface{}) error {
	return &SlotError{Kind: ErrGenerationFailure, Slot: slot, Cause: errors.Errorf(format, args...)}
}

// WriteFailure returns the error of a file writer unable to persist the value held by slot.
func WriteFailure(slot Slot, cause error) error {
	return &SlotError{Kind: ErrWriteFailure, Slot: slot, Cause: cause}
}

// SlotOf returns the slot and component carried by err, if any.
func SlotOf(err error) (Slot, string, bool) {
	var se *SlotError
	if !errors.As(err, &se) {
		return "", "", false
	}

	return se.Slot, se.Component, true
}

// attribute decorates err with the component it was raised by. Errors which are not
// slot errors become generation failures of the component output slot.
func attribute(err error, component string, output Slot) error {
	var se *SlotError
	if !errors.As(err, &se) {
		return &SlotError{Kind: ErrGenerationFailure, Slot: output, Cause: err, Component: component}
	}
	if se.Component == "" {
		se.Component = component
	}

	return err
}
