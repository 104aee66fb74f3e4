package models

import "time"

// Role is the access level of a user account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) IsAdmin() bool { return r == RoleAdmin }

// Actor is the authenticated identity performing a request.
type Actor struct {
	UserID string
	Role   Role
}

type User struct {
	UserID        string     `json:"userid" bson:"userid"`
	Name          string     `json:"name" bson:"name"`
	Email         string     `json:"email" bson:"email"`
	PasswordHash  string     `json:"-" bson:"password_hash"`
	Role          Role       `json:"role" bson:"role"`
	Avatar        string     `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Cart          []CartItem `json:"cart" bson:"cart"`
	Wishlist      []string   `json:"wishlist" bson:"wishlist"`
	LastLogin     time.Time  `json:"lastLogin" bson:"lastLogin"`
	RefreshToken  string     `json:"-" bson:"refreshtoken,omitempty"`
	RefreshExpiry time.Time  `json:"-" bson:"refreshexp,omitempty"`
	CreatedAt     time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt" bson:"updatedAt"`
}
