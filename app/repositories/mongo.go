package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/shashiranjanraj/kalaghar/app/models"
	"github.com/shashiranjanraj/kalaghar/pkg/metrics"
)

const (
	usersCollection    = "users"
	artworksCollection = "artworks"
	ordersCollection   = "orders"
)

// NewMongoStore wires repositories onto db. The client is disconnected by
// Store.Close.
func NewMongoStore(client *mongo.Client, db *mongo.Database) *Store {
	users := db.Collection(usersCollection)
	orders := db.Collection(ordersCollection)

	return &Store{
		Driver:   "mongo",
		Users:    &mongoUsers{col: users},
		Artworks: &mongoArtworks{col: db.Collection(artworksCollection)},
		Orders:   &mongoOrders{col: orders},
		ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
		migrate: func(ctx context.Context) error {
			return ensureIndexes(ctx, users, orders)
		},
		close: func(ctx context.Context) error {
			return client.Disconnect(ctx)
		},
	}
}

func ensureIndexes(ctx context.Context, users, orders *mongo.Collection) error {
	_, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}, {Key: "role", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("name_role_unique"),
	})
	if err != nil {
		return fmt.Errorf("users index: %w", err)
	}

	_, err = orders.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("created_at_desc"),
	})
	if err != nil {
		return fmt.Errorf("orders index: %w", err)
	}
	return nil
}

// objectID parses a hex id. Malformed ids can never match a document.
func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	return oid, err == nil
}

func mongoErr(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	}
	return err
}

// ─── Users ───────────────────────────────────────────────────────────────────

type userDoc struct {
	ID            primitive.ObjectID    `bson:"_id,omitempty"`
	Name          string                `bson:"name"`
	Email         string                `bson:"email,omitempty"`
	PasswordHash  string                `bson:"passwordHash"`
	Role          string                `bson:"role"`
	Status        string                `bson:"status"`
	Photo         string                `bson:"photo,omitempty"`
	Bio           string                `bson:"bio,omitempty"`
	PayoutMethod  string                `bson:"payoutMethod,omitempty"`
	PayoutDetails *models.PayoutDetails `bson:"payoutDetails,omitempty"`
	Notifications models.Notifications  `bson:"notifications"`
	Privacy       models.Privacy        `bson:"privacy"`
	CreatedAt     time.Time             `bson:"createdAt"`
	UpdatedAt     time.Time             `bson:"updatedAt"`
}

func toUserDoc(u *models.User) userDoc {
	return userDoc{
		Name:          u.Name,
		Email:         u.Email,
		PasswordHash:  u.PasswordHash,
		Role:          u.Role,
		Status:        u.Status,
		Photo:         u.Photo,
		Bio:           u.Bio,
		PayoutMethod:  u.PayoutMethod,
		PayoutDetails: u.PayoutDetails,
		Notifications: u.Notifications,
		Privacy:       u.Privacy,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func (d userDoc) model() *models.User {
	return &models.User{
		ID:            d.ID.Hex(),
		Name:          d.Name,
		Email:         d.Email,
		PasswordHash:  d.PasswordHash,
		Role:          d.Role,
		Status:        d.Status,
		Photo:         d.Photo,
		Bio:           d.Bio,
		PayoutMethod:  d.PayoutMethod,
		PayoutDetails: d.PayoutDetails,
		Notifications: d.Notifications,
		Privacy:       d.Privacy,
		CreatedAt:     d.CreatedAt.UTC(),
		UpdatedAt:     d.UpdatedAt.UTC(),
	}
}

// userSet translates a patch into a $set document.
func userSet(p models.UserPatch, now time.Time) bson.D {
	set := bson.D{{Key: "updatedAt", Value: now}}
	str := func(key string, v *string) {
		if v != nil {
			set = append(set, bson.E{Key: key, Value: *v})
		}
	}
	flag := func(key string, v *bool) {
		if v != nil {
			set = append(set, bson.E{Key: key, Value: *v})
		}
	}

	str("name", p.Name)
	str("email", p.Email)
	str("photo", p.Photo)
	str("bio", p.Bio)
	str("passwordHash", p.PasswordHash)
	str("role", p.Role)
	str("status", p.Status)

	if p.Payout != nil {
		n := p.Payout.Normalize()
		set = append(set,
			bson.E{Key: "payoutMethod", Value: n.Method},
			bson.E{Key: "payoutDetails", Value: n.Details},
		)
	}
	if n := p.Notifications; n != nil {
		flag("notifications.email", n.Email)
		flag("notifications.sms", n.SMS)
		flag("notifications.productUpdates", n.ProductUpdates)
	}
	if pv := p.Privacy; pv != nil {
		str("privacy.profileVisibility", pv.ProfileVisibility)
		flag("privacy.showSoldPrices", pv.ShowSoldPrices)
	}
	return set
}

type mongoUsers struct {
	col *mongo.Collection
}

func (r *mongoUsers) Create(ctx context.Context, u *models.User) error {
	defer metrics.ObserveStoreOp("mongo", usersCollection, "create", time.Now())

	u.CreatedAt = stamp()
	u.UpdatedAt = u.CreatedAt
	res, err := r.col.InsertOne(ctx, toUserDoc(u))
	if err != nil {
		return mongoErr(err)
	}
	u.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (r *mongoUsers) findOne(ctx context.Context, filter bson.D) (*models.User, error) {
	var d userDoc
	if err := r.col.FindOne(ctx, filter).Decode(&d); err != nil {
		return nil, mongoErr(err)
	}
	return d.model(), nil
}

func (r *mongoUsers) FindByID(ctx context.Context, id string) (*models.User, error) {
	defer metrics.ObserveStoreOp("mongo", usersCollection, "find", time.Now())

	oid, ok := objectID(id)
	if !ok {
		return nil, ErrNotFound
	}
	return r.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
}

func (r *mongoUsers) FindByLogin(ctx context.Context, name, role string) (*models.User, error) {
	defer metrics.ObserveStoreOp("mongo", usersCollection, "find", time.Now())

	return r.findOne(ctx, bson.D{{Key: "name", Value: name}, {Key: "role", Value: role}})
}

func (r *mongoUsers) All(ctx context.Context) ([]models.User, error) {
	defer metrics.ObserveStoreOp("mongo", usersCollection, "all", time.Now())

	cur, err := r.col.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]models.User, 0, len(docs))
	for _, d := range docs {
		out = append(out, *d.model())
	}
	return out, nil
}

func (r *mongoUsers) UpdateByID(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	defer metrics.ObserveStoreOp("mongo", usersCollection, "update", time.Now())

	oid, ok := objectID(id)
	if !ok {
		return nil, ErrNotFound
	}

	var d userDoc
	err := r.col.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: userSet(patch, stamp())}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&d)
	if err != nil {
		return nil, mongoErr(err)
	}
	return d.model(), nil
}

func (r *mongoUsers) DeleteByID(ctx context.Context, id string) error {
	defer metrics.ObserveStoreOp("mongo", usersCollection, "delete", time.Now())

	return deleteByHex(ctx, r.col, id)
}

func deleteByHex(ctx context.Context, col *mongo.Collection, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return nil
	}
	_, err := col.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	return err
}

// ─── Artworks ────────────────────────────────────────────────────────────────

type artworkDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Artist    string             `bson:"artist"`
	Price     int64              `bson:"price"`
	Image     string             `bson:"image"`
	Year      string             `bson:"year,omitempty"`
	Story     string             `bson:"story,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d artworkDoc) model() models.Artwork {
	return models.Artwork{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Artist:    d.Artist,
		Price:     d.Price,
		Image:     d.Image,
		Year:      d.Year,
		Story:     d.Story,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

type mongoArtworks struct {
	col *mongo.Collection
}

func (r *mongoArtworks) Create(ctx context.Context, a *models.Artwork) error {
	defer metrics.ObserveStoreOp("mongo", artworksCollection, "create", time.Now())

	a.CreatedAt = stamp()
	res, err := r.col.InsertOne(ctx, artworkDoc{
		Title:     a.Title,
		Artist:    a.Artist,
		Price:     a.Price,
		Image:     a.Image,
		Year:      a.Year,
		Story:     a.Story,
		CreatedAt: a.CreatedAt,
	})
	if err != nil {
		return err
	}
	a.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (r *mongoArtworks) FindByID(ctx context.Context, id string) (*models.Artwork, error) {
	defer metrics.ObserveStoreOp("mongo", artworksCollection, "find", time.Now())

	oid, ok := objectID(id)
	if !ok {
		return nil, ErrNotFound
	}
	var d artworkDoc
	if err := r.col.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&d); err != nil {
		return nil, mongoErr(err)
	}
	a := d.model()
	return &a, nil
}

func (r *mongoArtworks) All(ctx context.Context) ([]models.Artwork, error) {
	defer metrics.ObserveStoreOp("mongo", artworksCollection, "all", time.Now())

	cur, err := r.col.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []artworkDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]models.Artwork, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.model())
	}
	return out, nil
}

func (r *mongoArtworks) DeleteByID(ctx context.Context, id string) error {
	defer metrics.ObserveStoreOp("mongo", artworksCollection, "delete", time.Now())

	return deleteByHex(ctx, r.col, id)
}

// ─── Orders ──────────────────────────────────────────────────────────────────

type orderDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	ArtworkID    string             `bson:"artworkId"`
	ArtworkTitle string             `bson:"artworkTitle"`
	BuyerName    string             `bson:"buyerName"`
	Amount       int64              `bson:"amount"`
	Reference    string             `bson:"reference"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

func (d orderDoc) model() models.Order {
	return models.Order{
		ID:           d.ID.Hex(),
		ArtworkID:    d.ArtworkID,
		ArtworkTitle: d.ArtworkTitle,
		BuyerName:    d.BuyerName,
		Amount:       d.Amount,
		Reference:    d.Reference,
		CreatedAt:    d.CreatedAt.UTC(),
	}
}

type mongoOrders struct {
	col *mongo.Collection
}

func (r *mongoOrders) Create(ctx context.Context, o *models.Order) error {
	defer metrics.ObserveStoreOp("mongo", ordersCollection, "create", time.Now())

	o.CreatedAt = stamp()
	res, err := r.col.InsertOne(ctx, orderDoc{
		ArtworkID:    o.ArtworkID,
		ArtworkTitle: o.ArtworkTitle,
		BuyerName:    o.BuyerName,
		Amount:       o.Amount,
		Reference:    o.Reference,
		CreatedAt:    o.CreatedAt,
	})
	if err != nil {
		return err
	}
	o.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (r *mongoOrders) FindByID(ctx context.Context, id string) (*models.Order, error) {
	defer metrics.ObserveStoreOp("mongo", ordersCollection, "find", time.Now())

	oid, ok := objectID(id)
	if !ok {
		return nil, ErrNotFound
	}
	var d orderDoc
	if err := r.col.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&d); err != nil {
		return nil, mongoErr(err)
	}
	o := d.model()
	return &o, nil
}

func (r *mongoOrders) All(ctx context.Context) ([]models.Order, error) {
	defer metrics.ObserveStoreOp("mongo", ordersCollection, "all", time.Now())

	sort := bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}
	cur, err := r.col.Find(ctx, bson.D{}, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	var docs []orderDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]models.Order, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.model())
	}
	return out, nil
}

func (r *mongoOrders) DeleteByID(ctx context.Context, id string) error {
	defer metrics.ObserveStoreOp("mongo", ordersCollection, "delete", time.Now())

	return deleteByHex(ctx, r.col, id)
}
