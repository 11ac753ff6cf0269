package model

// MaxMenuItemNameLength bounds menu item names, matching the schema.
const MaxMenuItemNameLength = 100

// MenuItem represents a dish on the menu.
// Items are seeded through migrations; there is no mutation API for them.
type MenuItem struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       Cents    `json:"price"`
	ImageURL    string   `json:"image_url,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}
