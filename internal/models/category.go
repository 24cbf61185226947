package models

// DefaultCategoryColor is the hex color used when the client does not pick one.
const DefaultCategoryColor = "#64748b"

type Category struct {
	Name  string `json:"name" bson:"name"`
	Color string `json:"color" bson:"color"`
	Icon  string `json:"icon,omitempty" bson:"icon,omitempty"`
}
