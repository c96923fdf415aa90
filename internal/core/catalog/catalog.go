// Package catalog holds the static trip category reference data: the six
// task categories, their ordered sub-category options, and display labels.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownCategory is returned when a category tag is not one of the six known categories.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrInvalidSubCategory is returned when a sub-category is not an option of its category.
	ErrInvalidSubCategory = errors.New("invalid sub-category for category")
)

// Category is the top-level classification of a trip task.
type Category string

const (
	CategoryAccommodation Category = "accommodation"
	CategoryTransport     Category = "transport"
	CategoryActivities    Category = "activities"
	CategoryEssentials    Category = "essentials"
	CategoryClothing      Category = "clothing"
	CategoryPlaces        Category = "places"
)

// SubCategory is a second-level classification whose valid values depend on the Category.
type SubCategory string

// Option is a selectable sub-category value with its display label.
type Option struct {
	Value SubCategory `json:"value"`
	Label string      `json:"label"`
}

type entry struct {
	label   string
	icon    string
	options []Option
}

// order is the display order used by forms and listings.
var order = []Category{
	CategoryEssentials,
	CategoryClothing,
	CategoryAccommodation,
	CategoryTransport,
	CategoryActivities,
	CategoryPlaces,
}

var entries = map[Category]entry{
	CategoryClothing: {
		label: "Clothing Type",
		icon:  "👕",
		options: []Option{
			{Value: "dresses", Label: "Dresses"},
			{Value: "tops", Label: "Tops"},
			{Value: "bottoms", Label: "Bottoms (Pants/Skirts)"},
			{Value: "sleepwear", Label: "Sleepwear"},
			{Value: "swimwear", Label: "Swimwear"},
			{Value: "outerwear", Label: "Outerwear"},
			{Value: "undergarments", Label: "Undergarments"},
			{Value: "accessories", Label: "Accessories"},
			{Value: "formal", Label: "Formal Wear"},
			{Value: "casual", Label: "Casual Wear"},
		},
	},
	CategoryAccommodation: {
		label: "Accommodation Type",
		icon:  "🏨",
		options: []Option{
			{Value: "hotel", Label: "Hotel"},
			{Value: "hostel", Label: "Hostel"},
			{Value: "resort", Label: "Resort"},
			{Value: "apartment", Label: "Apartment"},
			{Value: "homestay", Label: "Homestay"},
			{Value: "camping", Label: "Camping"},
		},
	},
	CategoryTransport: {
		label: "Transport Type",
		icon:  "✈️",
		options: []Option{
			{Value: "flight", Label: "Flight"},
			{Value: "train", Label: "Train"},
			{Value: "bus", Label: "Bus"},
			{Value: "car-rental", Label: "Car Rental"},
			{Value: "taxi", Label: "Taxi"},
			{Value: "ferry", Label: "Ferry"},
		},
	},
	CategoryActivities: {
		label: "Activity Type",
		icon:  "🎯",
		options: []Option{
			{Value: "sightseeing", Label: "Sightseeing"},
			{Value: "adventure", Label: "Adventure Activities"},
			{Value: "cultural", Label: "Cultural Activities"},
			{Value: "food-tasting", Label: "Food & Dining"},
			{Value: "shopping", Label: "Shopping"},
			{Value: "relaxation", Label: "Relaxation"},
		},
	},
	CategoryPlaces: {
		label: "Place Type",
		icon:  "🗺️",
		options: []Option{
			{Value: "landmarks", Label: "Landmarks"},
			{Value: "museums", Label: "Museums"},
			{Value: "parks", Label: "Parks & Nature"},
			{Value: "beaches", Label: "Beaches"},
			{Value: "restaurants", Label: "Restaurants"},
			{Value: "markets", Label: "Markets"},
		},
	},
	CategoryEssentials: {
		label: "Essential Type",
		icon:  "🎒",
		options: []Option{
			{Value: "footwear", Label: "Footwear"},
			{Value: "electronics", Label: "Electronics"},
			{Value: "toiletries", Label: "Toiletries"},
			{Value: "documents", Label: "Documents"},
			{Value: "medicines", Label: "Medicines"},
			{Value: "accessories", Label: "Travel Accessories"},
		},
	},
}

// Categories returns all categories in display order.
func Categories() []Category {
	out := make([]Category, len(order))
	copy(out, order)
	return out
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	_, ok := entries[c]
	return ok
}

func (c Category) String() string { return string(c) }

// Title returns the capitalized category name, e.g. "Clothing".
func (c Category) Title() string {
	s := string(c)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseCategory converts a user supplied string into a Category.
// Matching ignores case and surrounding whitespace.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// Options returns the ordered sub-category options for c.
// The first option is the default when c is newly selected.
// Returns nil for an unknown category.
func Options(c Category) []Option {
	e, ok := entries[c]
	if !ok {
		return nil
	}
	out := make([]Option, len(e.options))
	copy(out, e.options)
	return out
}

// Label returns the display label for c, e.g. "Clothing Type".
func Label(c Category) string {
	return entries[c].label
}

// Icon returns the emoji used when rendering tasks of category c.
func Icon(c Category) string {
	return entries[c].icon
}

// Default returns the first sub-category option of c.
func Default(c Category) SubCategory {
	e, ok := entries[c]
	if !ok || len(e.options) == 0 {
		return ""
	}
	return e.options[0].Value
}

// Valid reports whether s is one of c's sub-category options.
func Valid(c Category, s SubCategory) bool {
	for _, opt := range entries[c].options {
		if opt.Value == s {
			return true
		}
	}
	return false
}

// SubCategoryLabel returns the display label of s within c, or s itself
// when it is not an option of c.
func SubCategoryLabel(c Category, s SubCategory) string {
	for _, opt := range entries[c].options {
		if opt.Value == s {
			return opt.Label
		}
	}
	return string(s)
}
