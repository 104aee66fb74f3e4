package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"velora/apperr"
	"velora/models"
)

// In-memory implementations with the same atomicity contract as the Mongo
// stores. Used by tests; every mutation holds the store lock for its full
// read-modify-write, mirroring a single-document update.

// --- Products ---

type MemoryProducts struct {
	mu    sync.RWMutex
	items map[string]models.Product
}

func NewMemoryProducts() *MemoryProducts {
	return &MemoryProducts{items: make(map[string]models.Product)}
}

func (s *MemoryProducts) Insert(ctx context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[p.ProductID] = *p
	return nil
}

func (s *MemoryProducts) ByID(ctx context.Context, id string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.items[id]
	if !ok {
		return nil, apperr.NotFound("product", id)
	}
	return &p, nil
}

func (s *MemoryProducts) Replace(ctx context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[p.ProductID]; !ok {
		return apperr.NotFound("product", p.ProductID)
	}
	s.items[p.ProductID] = *p
	return nil
}

func (s *MemoryProducts) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return apperr.NotFound("product", id)
	}
	delete(s.items, id)
	return nil
}

func (s *MemoryProducts) List(ctx context.Context, f ProductFilter) ([]models.Product, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []models.Product
	for _, p := range s.items {
		if f.Category != "" && string(p.Category) != f.Category {
			continue
		}
		if f.MinPrice != nil && p.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.Price > *f.MaxPrice {
			continue
		}
		if f.Search != "" {
			term := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(p.Name), term) &&
				!strings.Contains(strings.ToLower(p.Description), term) {
				continue
			}
		}
		if f.Featured != nil && p.Featured != *f.Featured {
			continue
		}
		if f.InStock != nil && p.InStock != *f.InStock {
			continue
		}
		if len(f.Tags) > 0 && !hasAnyTag(p.Tags, f.Tags) {
			continue
		}
		matched = append(matched, p)
	}

	sortProducts(matched, f.Sort)
	total := int64(len(matched))
	return page(matched, f.Skip, f.Limit), total, nil
}

func hasAnyTag(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func sortProducts(products []models.Product, key string) {
	desc := strings.HasPrefix(key, "-")
	field := strings.TrimPrefix(key, "-")
	less := func(a, b models.Product) bool { return a.CreatedAt.After(b.CreatedAt) }
	switch field {
	case "name":
		less = func(a, b models.Product) bool { return a.Name < b.Name }
	case "price":
		less = func(a, b models.Product) bool { return a.Price < b.Price }
	case "rating":
		less = func(a, b models.Product) bool { return a.Rating < b.Rating }
	case "createdAt":
		less = func(a, b models.Product) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		desc = false
	}
	sort.SliceStable(products, func(i, j int) bool {
		if desc {
			return less(products[j], products[i])
		}
		return less(products[i], products[j])
	})
}

func (s *MemoryProducts) Categories(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool)
	var categories []string
	for _, p := range s.items {
		c := string(p.Category)
		if !seen[c] {
			seen[c] = true
			categories = append(categories, c)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

// --- Users ---

type MemoryUsers struct {
	mu    sync.Mutex
	items map[string]*models.User
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{items: make(map[string]*models.User)}
}

func (s *MemoryUsers) Insert(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *u
	s.items[u.UserID] = &clone
	return nil
}

func (s *MemoryUsers) ByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.items[id]
	if !ok {
		return nil, apperr.NotFound("user", id)
	}
	clone := *u
	clone.Cart = append([]models.CartItem(nil), u.Cart...)
	clone.Wishlist = append([]string(nil), u.Wishlist...)
	return &clone, nil
}

func (s *MemoryUsers) ByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.items {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("user", email)
}

func (s *MemoryUsers) All(ctx context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]models.User, 0, len(s.items))
	for _, u := range s.items {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].UserID < users[j].UserID })
	return users, nil
}

func (s *MemoryUsers) UpdateProfile(ctx context.Context, id string, patch ProfilePatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.items[id]
	if !ok {
		return apperr.NotFound("user", id)
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Avatar != nil {
		u.Avatar = *patch.Avatar
	}
	u.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryUsers) SetPassword(ctx context.Context, id, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.items[id]
	if !ok {
		return apperr.NotFound("user", id)
	}
	u.PasswordHash = hash
	u.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryUsers) SetLastLogin(ctx context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.items[id]
	if !ok {
		return apperr.NotFound("user", id)
	}
	u.LastLogin = at
	return nil
}

func (s *MemoryUsers) SetRefreshToken(ctx context.Context, id, hash string, expiry time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.items[id]
	if !ok {
		return apperr.NotFound("user", id)
	}
	u.RefreshToken = hash
	u.RefreshExpiry = expiry
	return nil
}

func (s *MemoryUsers) IncCartQuantity(ctx context.Context, userID, productID string, qty int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.items[userID]
	if !ok {
		return false, nil
	}
	for i := range u.Cart {
		if u.Cart[i].ProductID == productID {
			u.Cart[i].Quantity += qty
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryUsers) PushCartItem(ctx context.Context, userID string, item models.CartItem) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.items[userID]
	if !ok {
		return false, nil
	}
	for i := range u.Cart {
		if u.Cart[i].ProductID == item.ProductID {
			return false, nil
		}
	}
	u.Cart = append(u.Cart, item)
	return true, nil
}

func (s *MemoryUsers) PullCartItem(ctx context.Context, userID, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.items[userID]
	if !ok {
		return apperr.NotFound("user", userID)
	}
	kept := u.Cart[:0]
	for _, item := range u.Cart {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	u.Cart = kept
	return nil
}

func (s *MemoryUsers) ClearCart(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.items[userID]
	if !ok {
		return apperr.NotFound("user", userID)
	}
	u.Cart = []models.CartItem{}
	return nil
}

func (s *MemoryUsers) CartOf(ctx context.Context, userID string) ([]models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.items[userID]
	if !ok {
		return nil, apperr.NotFound("user", userID)
	}
	return append([]models.CartItem{}, u.Cart...), nil
}

func (s *MemoryUsers) PullWishlist(ctx context.Context, userID, productID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.items[userID]
	if !ok {
		return false, apperr.NotFound("user", userID)
	}
	for i, id := range u.Wishlist {
		if id == productID {
			u.Wishlist = append(u.Wishlist[:i], u.Wishlist[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryUsers) AddWishlist(ctx context.Context, userID, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.items[userID]
	if !ok {
		return apperr.NotFound("user", userID)
	}
	for _, id := range u.Wishlist {
		if id == productID {
			return nil
		}
	}
	u.Wishlist = append(u.Wishlist, productID)
	return nil
}

func (s *MemoryUsers) WishlistOf(ctx context.Context, userID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.items[userID]
	if !ok {
		return nil, apperr.NotFound("user", userID)
	}
	return append([]string{}, u.Wishlist...), nil
}

// --- Orders ---

type MemoryOrders struct {
	mu    sync.Mutex
	items map[string]*models.Order
}

func NewMemoryOrders() *MemoryOrders {
	return &MemoryOrders{items: make(map[string]*models.Order)}
}

func (s *MemoryOrders) Insert(ctx context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *o
	s.items[o.OrderID] = &clone
	return nil
}

func (s *MemoryOrders) ByID(ctx context.Context, id string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.items[id]
	if !ok {
		return nil, apperr.NotFound("order", id)
	}
	clone := *o
	clone.Items = append([]models.OrderItem(nil), o.Items...)
	return &clone, nil
}

func (s *MemoryOrders) Apply(ctx context.Context, id string, patch OrderPatch) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.items[id]
	if !ok {
		return nil, apperr.NotFound("order", id)
	}
	if patch.Status != nil {
		o.Status = *patch.Status
	}
	if patch.IsPaid != nil {
		o.IsPaid = *patch.IsPaid
	}
	if patch.PaidAt != nil {
		at := *patch.PaidAt
		o.PaidAt = &at
	}
	if patch.PaymentResult != nil {
		o.PaymentResult = patch.PaymentResult
	}
	if patch.IsDelivered != nil {
		o.IsDelivered = *patch.IsDelivered
	}
	if patch.DeliveredAt != nil {
		at := *patch.DeliveredAt
		o.DeliveredAt = &at
	}
	clone := *o
	return &clone, nil
}

func (s *MemoryOrders) List(ctx context.Context, f OrderFilter) ([]models.Order, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []models.Order
	for _, o := range s.items {
		if f.UserID != "" && o.UserID != f.UserID {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		matched = append(matched, *o)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	return page(matched, f.Skip, f.Limit), total, nil
}

func page[T any](items []T, skip, limit int64) []T {
	if skip >= int64(len(items)) {
		return []T{}
	}
	items = items[skip:]
	if limit > 0 && limit < int64(len(items)) {
		items = items[:limit]
	}
	return items
}
