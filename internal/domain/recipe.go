package domain

// DefaultOutputQty is used when a recipe omits output_qty or sets it to zero
const DefaultOutputQty = 1.0

// Recipe describes how one craft of an item is produced
type Recipe struct {
	Name        string             `json:"name"`
	OutputQty   float64            `json:"output_qty"`
	Inputs      map[string]float64 `json:"inputs"`
	Description string             `json:"description,omitempty"`
	ImagePath   string             `json:"local_image_path,omitempty"`
}

// ItemSummary is the listing view of a craftable item
type ItemSummary struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ImagePath   string `json:"image_path,omitempty"`
}

// MaterialAmount is one line of a bill of materials
type MaterialAmount struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// ShoppingListEntry is one requested item on a shopping list
type ShoppingListEntry struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

// ShoppingList is an ordered, session-scoped list of requested items
type ShoppingList struct {
	SessionID string              `json:"session_id"`
	Entries   []ShoppingListEntry `json:"entries"`
}
