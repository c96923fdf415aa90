package catalog

import "fmt"

// Kind is a category together with a sub-category that is guaranteed to be
// one of the category's options. The zero value is an unset Kind.
type Kind struct {
	category Category
	sub      SubCategory
}

// NewKind validates the pair and returns a Kind.
// An empty sub-category selects the category's default option.
func NewKind(c Category, s SubCategory) (Kind, error) {
	if !c.IsValid() {
		return Kind{}, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	if s == "" {
		return DefaultKind(c), nil
	}
	if !Valid(c, s) {
		return Kind{}, fmt.Errorf("%w: %q is not a %s option", ErrInvalidSubCategory, s, c)
	}
	return Kind{category: c, sub: s}, nil
}

// DefaultKind returns c paired with its first sub-category option.
// Returns the zero Kind for an unknown category.
func DefaultKind(c Category) Kind {
	if !c.IsValid() {
		return Kind{}
	}
	return Kind{category: c, sub: Default(c)}
}

func (k Kind) Category() Category       { return k.category }
func (k Kind) SubCategory() SubCategory { return k.sub }
func (k Kind) IsZero() bool             { return k.category == "" }

// WithCategory switches to category c and selects c's first option.
// Re-selecting the current category or passing an unknown one leaves k
// unchanged.
func (k Kind) WithCategory(c Category) Kind {
	if !c.IsValid() || c == k.category {
		return k
	}
	return DefaultKind(c)
}

// WithSubCategory returns k with sub-category s, which must be valid for k's category.
func (k Kind) WithSubCategory(s SubCategory) (Kind, error) {
	return NewKind(k.category, s)
}

func (k Kind) String() string {
	if k.IsZero() {
		return ""
	}
	return string(k.category) + "/" + string(k.sub)
}
