package domain

// WeightUnit is the unit a catalog item's weight is declared in.
type WeightUnit string

const (
	UnitGram     WeightUnit = "g"
	UnitKilogram WeightUnit = "kg"
	UnitLiter    WeightUnit = "L"
)

// Category groups catalog items. Subcategories reference their parent by ID.
type Category struct {
	ID       string `bson:"_id,omitempty" json:"id"`
	Name     string `bson:"name" json:"name"`
	ParentID string `bson:"parent_id,omitempty" json:"parent_id,omitempty"`
}

// CatalogItem is a product offered by a store.
type CatalogItem struct {
	ID              string     `bson:"_id,omitempty" json:"id"`
	Name            string     `bson:"name" json:"name"`
	Description     string     `bson:"description,omitempty" json:"description,omitempty"`
	Price           float64    `bson:"price" json:"price"`
	DiscountPercent float64    `bson:"discount_percent,omitempty" json:"discount_percent,omitempty"`
	Weight          float64    `bson:"weight" json:"weight"`
	Unit            WeightUnit `bson:"unit" json:"unit"`
	Category        string     `bson:"category,omitempty" json:"category,omitempty"`
}

// Store is a wholesale supermarket in the catalog. Coordinates start out
// unset and are filled in once a geocoding lookup for Address succeeds.
type Store struct {
	ID          string        `bson:"_id,omitempty" json:"id"`
	Name        string        `bson:"name" json:"name"`
	Address     string        `bson:"address" json:"address"`
	Phone       string        `bson:"phone,omitempty" json:"phone,omitempty"`
	ImageURL    string        `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Coordinates *GeoPoint     `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
	Categories  []Category    `bson:"categories,omitempty" json:"categories,omitempty"`
	Items       []CatalogItem `bson:"items,omitempty" json:"items,omitempty"`
}
