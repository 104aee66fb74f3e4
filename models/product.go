package models

import (
	"math"
	"time"
)

// Category is the fixed set of product categories.
type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryAccessories Category = "Accessories"
	CategoryClothing    Category = "Clothing"
	CategoryBooks       Category = "Books"
	CategoryHome        Category = "Home"
	CategorySports      Category = "Sports"
	CategoryOther       Category = "Other"
)

var Categories = []Category{
	CategoryElectronics,
	CategoryAccessories,
	CategoryClothing,
	CategoryBooks,
	CategoryHome,
	CategorySports,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type Product struct {
	ProductID      string            `json:"productid" bson:"productid"`
	Name           string            `json:"name" bson:"name"`
	Description    string            `json:"description" bson:"description"`
	Price          float64           `json:"price" bson:"price"`
	OriginalPrice  float64           `json:"originalPrice,omitempty" bson:"originalPrice,omitempty"`
	Category       Category          `json:"category" bson:"category"`
	Brand          string            `json:"brand,omitempty" bson:"brand,omitempty"`
	Image          string            `json:"image" bson:"image"`
	Images         []string          `json:"images,omitempty" bson:"images,omitempty"`
	InStock        bool              `json:"inStock" bson:"inStock"`
	Quantity       int               `json:"quantity" bson:"quantity"`
	Rating         float64           `json:"rating" bson:"rating"`
	Reviews        int               `json:"reviews" bson:"reviews"`
	Featured       bool              `json:"featured" bson:"featured"`
	Tags           []string          `json:"tags,omitempty" bson:"tags,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty" bson:"specifications,omitempty"`
	Discount       int               `json:"discountPercentage" bson:"-"`
	CreatedAt      time.Time         `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt" bson:"updatedAt"`
}

// DiscountPercentage derives the discount from originalPrice vs price.
func (p *Product) DiscountPercentage() int {
	if p.OriginalPrice > p.Price && p.OriginalPrice > 0 {
		return int(math.Round((p.OriginalPrice - p.Price) / p.OriginalPrice * 100))
	}
	return 0
}
