package calculator

import (
	"fmt"
	"strings"

	"github.com/osse101/CraftCalc_Go/internal/domain"
)

// CycleError is returned when an item is reached again while it is still being
// expanded. Path runs from the requested item down to the repeated one.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: %s", domain.ErrMsgCircularDependency, strings.Join(e.Path, " -> "))
}

func (e *CycleError) Unwrap() error {
	return domain.ErrCircularDependency
}

// UnknownItemError is returned under UnknownAsError when an item has neither a
// recipe nor a raw material entry.
type UnknownItemError struct {
	Item string
	Path []string
}

func (e *UnknownItemError) Error() string {
	if len(e.Path) > 1 {
		return fmt.Sprintf("%s: '%s' (via %s)", domain.ErrMsgUnknownItem, e.Item, strings.Join(e.Path, " -> "))
	}
	return fmt.Sprintf("%s: '%s'", domain.ErrMsgUnknownItem, e.Item)
}

func (e *UnknownItemError) Unwrap() error {
	return domain.ErrUnknownItem
}

// StepLimitError reports that an expansion visited more than Limit nodes.
// Partial is true when a best-effort result was still produced.
type StepLimitError struct {
	Limit   int
	Partial bool
}

func (e *StepLimitError) Error() string {
	if e.Partial {
		return fmt.Sprintf("%s (limit %d); result is incomplete", domain.ErrMsgDepthExceeded, e.Limit)
	}
	return fmt.Sprintf("%s (limit %d)", domain.ErrMsgDepthExceeded, e.Limit)
}

func (e *StepLimitError) Unwrap() error {
	return domain.ErrDepthExceeded
}

// RequestError identifies which request of an aggregation failed
type RequestError struct {
	Index int
	Item  string
	Err   error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request %d (%s): %v", e.Index+1, e.Item, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
