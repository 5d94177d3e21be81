package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgGenericServerError    = "Something went wrong"
	ErrMsgRequestCancelled      = "Request cancelled before the calculation finished"

	// Query and path parameter error messages
	ErrMsgMissingPathParam = "Missing %s path parameter"
	ErrMsgInvalidLimit     = "Invalid limit parameter"

	// Catalog error messages
	ErrMsgItemNotFound = "Item not found"
)

// Success messages for API responses
const (
	MsgItemAddedSuccess   = "Item added to shopping list"
	MsgItemRemovedSuccess = "Item removed from shopping list"
	MsgListClearedSuccess = "Shopping list cleared"
	MsgListDeletedSuccess = "Shopping list deleted"
)

// Search limits
const (
	DefaultSearchLimit = 25
	MaxSearchLimit     = 100
)
