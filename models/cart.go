package models

import "time"

// CartItem is a single entry in a user's cart. At most one entry exists
// per product; repeated adds increment Quantity.
type CartItem struct {
	ProductID string    `json:"productid" bson:"productid"`
	Quantity  int       `json:"quantity" bson:"quantity"`
	AddedAt   time.Time `json:"addedAt" bson:"addedAt"`
}

// PopulatedCartItem is a cart entry joined with its current product record
// for display. Product is nil when the product has since been deleted.
type PopulatedCartItem struct {
	Product  *Product  `json:"product"`
	Quantity int       `json:"quantity"`
	AddedAt  time.Time `json:"addedAt"`
}
