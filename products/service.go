package products

import (
	"context"
	"time"

	"velora/apperr"
	"velora/models"
	"velora/store"
	"velora/utils"
)

// UpsertRequest is the admin payload for creating or updating a product.
type UpsertRequest struct {
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Price          float64           `json:"price"`
	OriginalPrice  float64           `json:"originalPrice"`
	Category       models.Category   `json:"category"`
	Brand          string            `json:"brand"`
	Image          string            `json:"image"`
	Images         []string          `json:"images"`
	InStock        bool              `json:"inStock"`
	Quantity       int               `json:"quantity"`
	Featured       bool              `json:"featured"`
	Tags           []string          `json:"tags"`
	Specifications map[string]string `json:"specifications"`
}

func (r *UpsertRequest) validate() error {
	if l := len(r.Name); l < 1 || l > 100 {
		return apperr.Validation("name", "name must be between 1 and 100 characters")
	}
	if l := len(r.Description); l < 1 || l > 500 {
		return apperr.Validation("description", "description must be between 1 and 500 characters")
	}
	if r.Price < 0 {
		return apperr.Validation("price", "price cannot be negative")
	}
	if r.OriginalPrice < 0 {
		return apperr.Validation("originalPrice", "original price cannot be negative")
	}
	if !r.Category.Valid() {
		return apperr.Validation("category", "invalid category")
	}
	if r.Quantity < 0 {
		return apperr.Validation("quantity", "quantity cannot be negative")
	}
	return nil
}

func (r *UpsertRequest) apply(p *models.Product) {
	p.Name = r.Name
	p.Description = r.Description
	p.Price = r.Price
	p.OriginalPrice = r.OriginalPrice
	p.Category = r.Category
	p.Brand = r.Brand
	p.Image = r.Image
	p.Images = r.Images
	p.InStock = r.InStock
	p.Quantity = r.Quantity
	p.Featured = r.Featured
	p.Tags = r.Tags
	p.Specifications = r.Specifications
	p.UpdatedAt = time.Now()
}

// Create inserts a new catalog product.
func Create(ctx context.Context, products store.ProductStore, req UpsertRequest) (*models.Product, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	p := &models.Product{
		ProductID: "p" + utils.GenerateRandomString(12),
		CreatedAt: time.Now(),
	}
	req.apply(p)

	if err := products.Insert(ctx, p); err != nil {
		return nil, err
	}
	p.Discount = p.DiscountPercentage()
	return p, nil
}

// Update replaces the mutable fields of an existing product. Rating and
// review counts accumulate separately and are preserved.
func Update(ctx context.Context, products store.ProductStore, id string, req UpsertRequest) (*models.Product, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	p, err := products.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.apply(p)

	if err := products.Replace(ctx, p); err != nil {
		return nil, err
	}
	p.Discount = p.DiscountPercentage()
	return p, nil
}

// Delete removes the product from the catalog. Cart and wishlist entries
// pointing at it are left in place and resolved lazily on read.
func Delete(ctx context.Context, products store.ProductStore, id string) error {
	return products.Delete(ctx, id)
}
