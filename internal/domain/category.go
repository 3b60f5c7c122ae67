package domain

// Category is the numeric domain of the equations track.
type Category string

// Equations categories in rotation order.
const (
	CategoryInteger    Category = "integer"
	CategoryFraction   Category = "fraction"
	CategoryNegative   Category = "negative"
	CategoryPercentage Category = "percentage"
)

// CategoryOrder is the fixed cyclic rotation of the equations track.
var CategoryOrder = []Category{
	CategoryInteger,
	CategoryFraction,
	CategoryNegative,
	CategoryPercentage,
}

// Next returns the category that follows c in the rotation. Unknown
// categories restart the cycle at integer.
func (c Category) Next() Category {
	for i, cat := range CategoryOrder {
		if cat == c {
			return CategoryOrder[(i+1)%len(CategoryOrder)]
		}
	}
	return CategoryInteger
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	for _, cat := range CategoryOrder {
		if cat == c {
			return true
		}
	}
	return false
}
