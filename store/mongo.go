package store

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"velora/apperr"
	"velora/db"
	"velora/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Default stores backed by the shared MongoDB connection pool.
var (
	Users    UserStore    = &mongoUsers{}
	Products ProductStore = &mongoProducts{}
	Orders   OrderStore   = &mongoOrders{}
)

// --- Products ---

type mongoProducts struct{}

func (s *mongoProducts) Insert(ctx context.Context, p *models.Product) error {
	_, err := db.ProductCollection.InsertOne(ctx, p)
	return err
}

func (s *mongoProducts) ByID(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	err := db.ProductCollection.FindOne(ctx, bson.M{"productid": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("product", id)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *mongoProducts) Replace(ctx context.Context, p *models.Product) error {
	res, err := db.ProductCollection.ReplaceOne(ctx, bson.M{"productid": p.ProductID}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("product", p.ProductID)
	}
	return nil
}

func (s *mongoProducts) Delete(ctx context.Context, id string) error {
	res, err := db.ProductCollection.DeleteOne(ctx, bson.M{"productid": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("product", id)
	}
	return nil
}

func productSort(sort string) bson.D {
	field := strings.TrimPrefix(sort, "-")
	order := 1
	if strings.HasPrefix(sort, "-") {
		order = -1
	}
	switch field {
	case "name", "price", "rating", "createdAt":
		return bson.D{{Key: field, Value: order}}
	default:
		return bson.D{{Key: "createdAt", Value: -1}}
	}
}

func (s *mongoProducts) List(ctx context.Context, f ProductFilter) ([]models.Product, int64, error) {
	filter := bson.M{}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		filter["price"] = price
	}
	if f.Search != "" {
		filter["$or"] = []bson.M{
			regexFilter("name", f.Search),
			regexFilter("description", f.Search),
		}
	}
	if f.Featured != nil {
		filter["featured"] = *f.Featured
	}
	if f.InStock != nil {
		filter["inStock"] = *f.InStock
	}
	if len(f.Tags) > 0 {
		filter["tags"] = bson.M{"$in": f.Tags}
	}

	opts := options.Find().SetSort(productSort(f.Sort)).SetSkip(f.Skip).SetLimit(f.Limit)
	cursor, err := db.ProductCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}

	total, err := db.ProductCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (s *mongoProducts) Categories(ctx context.Context) ([]string, error) {
	raw, err := db.ProductCollection.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, err
	}
	categories := make([]string, 0, len(raw))
	for _, v := range raw {
		if c, ok := v.(string); ok {
			categories = append(categories, c)
		}
	}
	return categories, nil
}

// --- Users ---

type mongoUsers struct{}

func (s *mongoUsers) Insert(ctx context.Context, u *models.User) error {
	_, err := db.UserCollection.InsertOne(ctx, u)
	return err
}

func (s *mongoUsers) ByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("user", id)
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *mongoUsers) ByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("user", email)
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *mongoUsers) All(ctx context.Context) ([]models.User, error) {
	cursor, err := db.UserCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *mongoUsers) UpdateProfile(ctx context.Context, id string, patch ProfilePatch) error {
	set := bson.M{"updatedAt": time.Now()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.Avatar != nil {
		set["avatar"] = *patch.Avatar
	}
	return s.update(ctx, id, bson.M{"$set": set})
}

func (s *mongoUsers) SetPassword(ctx context.Context, id, hash string) error {
	return s.update(ctx, id, bson.M{"$set": bson.M{"password_hash": hash, "updatedAt": time.Now()}})
}

func (s *mongoUsers) SetLastLogin(ctx context.Context, id string, at time.Time) error {
	return s.update(ctx, id, bson.M{"$set": bson.M{"lastLogin": at}})
}

func (s *mongoUsers) SetRefreshToken(ctx context.Context, id, hash string, expiry time.Time) error {
	return s.update(ctx, id, bson.M{"$set": bson.M{"refreshtoken": hash, "refreshexp": expiry}})
}

func (s *mongoUsers) update(ctx context.Context, id string, update bson.M) error {
	res, err := db.UserCollection.UpdateOne(ctx, bson.M{"userid": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("user", id)
	}
	return nil
}

func (s *mongoUsers) IncCartQuantity(ctx context.Context, userID, productID string, qty int) (bool, error) {
	res, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID, "cart.productid": productID},
		bson.M{"$inc": bson.M{"cart.$.quantity": qty}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

func (s *mongoUsers) PushCartItem(ctx context.Context, userID string, item models.CartItem) (bool, error) {
	// Guarded push: only matches while no entry for the product exists,
	// so a concurrent push of the same product cannot duplicate it.
	res, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID, "cart.productid": bson.M{"$ne": item.ProductID}},
		bson.M{"$push": bson.M{"cart": item}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

func (s *mongoUsers) PullCartItem(ctx context.Context, userID, productID string) error {
	return s.update(ctx, userID, bson.M{"$pull": bson.M{"cart": bson.M{"productid": productID}}})
}

func (s *mongoUsers) ClearCart(ctx context.Context, userID string) error {
	return s.update(ctx, userID, bson.M{"$set": bson.M{"cart": []models.CartItem{}}})
}

func (s *mongoUsers) CartOf(ctx context.Context, userID string) ([]models.CartItem, error) {
	u, err := s.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.Cart == nil {
		return []models.CartItem{}, nil
	}
	return u.Cart, nil
}

func (s *mongoUsers) PullWishlist(ctx context.Context, userID, productID string) (bool, error) {
	res, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$pull": bson.M{"wishlist": productID}},
	)
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 0 {
		return false, apperr.NotFound("user", userID)
	}
	return res.ModifiedCount == 1, nil
}

func (s *mongoUsers) AddWishlist(ctx context.Context, userID, productID string) error {
	return s.update(ctx, userID, bson.M{"$addToSet": bson.M{"wishlist": productID}})
}

func (s *mongoUsers) WishlistOf(ctx context.Context, userID string) ([]string, error) {
	u, err := s.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.Wishlist == nil {
		return []string{}, nil
	}
	return u.Wishlist, nil
}

// --- Orders ---

type mongoOrders struct{}

func (s *mongoOrders) Insert(ctx context.Context, o *models.Order) error {
	_, err := db.OrderCollection.InsertOne(ctx, o)
	return err
}

func (s *mongoOrders) ByID(ctx context.Context, id string) (*models.Order, error) {
	var o models.Order
	err := db.OrderCollection.FindOne(ctx, bson.M{"orderid": id}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("order", id)
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *mongoOrders) Apply(ctx context.Context, id string, patch OrderPatch) (*models.Order, error) {
	set := bson.M{}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.IsPaid != nil {
		set["isPaid"] = *patch.IsPaid
	}
	if patch.PaidAt != nil {
		set["paidAt"] = *patch.PaidAt
	}
	if patch.PaymentResult != nil {
		set["paymentResult"] = patch.PaymentResult
	}
	if patch.IsDelivered != nil {
		set["isDelivered"] = *patch.IsDelivered
	}
	if patch.DeliveredAt != nil {
		set["deliveredAt"] = *patch.DeliveredAt
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var o models.Order
	err := db.OrderCollection.FindOneAndUpdate(ctx, bson.M{"orderid": id}, bson.M{"$set": set}, opts).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("order", id)
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *mongoOrders) List(ctx context.Context, f OrderFilter) ([]models.Order, int64, error) {
	filter := bson.M{}
	if f.UserID != "" {
		filter["userid"] = f.UserID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(f.Skip).
		SetLimit(f.Limit)
	cursor, err := db.OrderCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, 0, err
	}

	total, err := db.OrderCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// regexFilter builds a case-insensitive substring match for a field.
func regexFilter(field, term string) bson.M {
	return bson.M{field: bson.M{"$regex": regexp.QuoteMeta(term), "$options": "i"}}
}
