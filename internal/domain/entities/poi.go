package entities

// Category is the closed set of groups a POI can belong to.
//
// Go Learning Note — Typed String Enums:
// Go has no enum keyword. A named string type plus a const block gives you
// most of the benefit: the compiler stops you from passing an arbitrary
// string where a Category is expected, and the values still marshal to
// readable JSON.
type Category string

const (
	CategoryNearbyPopular Category = "nearby-popular"
	CategoryBusiness      Category = "business"
	CategoryLeisure       Category = "leisure"
	CategorySightseeing   Category = "sightseeing"
)

// categoryOrder is the fixed display order of the category groups.
var categoryOrder = []Category{
	CategoryNearbyPopular,
	CategoryBusiness,
	CategoryLeisure,
	CategorySightseeing,
}

var categoryLabels = map[Category]string{
	CategoryNearbyPopular: "附近熱門",
	CategoryBusiness:      "商務",
	CategoryLeisure:       "休閒",
	CategorySightseeing:   "觀光",
}

// Categories returns every category in display order. The returned slice is a
// copy and may be modified by the caller.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// ParseCategory converts a raw string into a Category.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	return c, c.IsValid()
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the display name of the category.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// POI is a named destination from the static catalog. POIs are loaded once at
// startup and never mutated afterwards.
type POI struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Latitude    float64  `json:"lat"`
	Longitude   float64  `json:"lng"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
}

// Location returns the POI coordinates as a Location.
func (p POI) Location() Location {
	return NewLocation(p.Latitude, p.Longitude)
}
