package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Catalog errors
	ErrMsgItemNotFound   = "item not found"
	ErrMsgInvalidCatalog = "invalid catalog"

	// Expansion errors
	ErrMsgCircularDependency = "circular dependency detected"
	ErrMsgUnknownItem        = "item is neither a recipe nor a raw material"
	ErrMsgDepthExceeded      = "expansion step limit exceeded"
	ErrMsgQuantityOverflow   = "material total out of range"

	// Shopping list errors
	ErrMsgSessionNotFound = "shopping list session not found"
	ErrMsgInvalidSession  = "invalid session id"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Catalog errors
	ErrItemNotFound   = errors.New(ErrMsgItemNotFound)
	ErrInvalidCatalog = errors.New(ErrMsgInvalidCatalog)

	// Expansion errors
	ErrCircularDependency = errors.New(ErrMsgCircularDependency)
	ErrUnknownItem        = errors.New(ErrMsgUnknownItem)
	ErrDepthExceeded      = errors.New(ErrMsgDepthExceeded)
	ErrQuantityOverflow   = errors.New(ErrMsgQuantityOverflow)

	// Shopping list errors
	ErrSessionNotFound = errors.New(ErrMsgSessionNotFound)
	ErrInvalidSession  = errors.New(ErrMsgInvalidSession)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
