package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/useraccounts/user-service/internal/core/domain"
)

const usersCollection = "users"

// UserRepository persists user accounts in MongoDB. The email uniqueness
// invariant lives in a unique index, so a lost check-then-insert race still
// surfaces as domain.ErrDuplicateEmail rather than a second account.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(usersCollection)}
}

// userDoc is the stored shape. password_hash never leaves this package
// except through FindByEmailWithSecret.
type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	FullName     string             `bson:"full_name"`
	BirthDate    *time.Time         `bson:"birth_date,omitempty"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	IsActive     bool               `bson:"is_active"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (d *userDoc) toSafeUser() *domain.SafeUser {
	var birth *time.Time
	if d.BirthDate != nil {
		utc := d.BirthDate.UTC()
		birth = &utc
	}
	return &domain.SafeUser{
		ID:        d.ID.Hex(),
		FullName:  d.FullName,
		BirthDate: birth,
		Email:     d.Email,
		Role:      domain.Role(d.Role),
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

// sortSpecs maps the public sort keys onto index-backed orderings. The _id
// tiebreaker keeps pagination deterministic when the primary key repeats.
var sortSpecs = map[domain.UserSort]bson.D{
	domain.SortCreatedAtAsc:  {{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}},
	domain.SortCreatedAtDesc: {{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}},
	domain.SortFullNameAsc:   {{Key: "full_name", Value: 1}, {Key: "_id", Value: 1}},
	domain.SortFullNameDesc:  {{Key: "full_name", Value: -1}, {Key: "_id", Value: -1}},
}

// Create inserts a new account and returns the stored projection.
func (r *UserRepository) Create(ctx context.Context, user domain.NewUser) (*domain.SafeUser, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := userDoc{
		FullName:     user.FullName,
		BirthDate:    user.BirthDate,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
		IsActive:     user.IsActive,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toSafeUser(), nil
}

// FindByEmail looks up an account by its normalized email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.SafeUser, error) {
	doc, err := r.findOne(ctx, bson.M{"email": email})
	if err != nil || doc == nil {
		return nil, err
	}
	return doc.toSafeUser(), nil
}

// FindByEmailWithSecret is the only lookup that exposes the password hash.
// It exists solely for the credential-check path of login.
func (r *UserRepository) FindByEmailWithSecret(ctx context.Context, email string) (*domain.UserWithSecret, error) {
	doc, err := r.findOne(ctx, bson.M{"email": email})
	if err != nil || doc == nil {
		return nil, err
	}
	return &domain.UserWithSecret{
		SafeUser:     *doc.toSafeUser(),
		PasswordHash: doc.PasswordHash,
	}, nil
}

// FindByID looks up an account by id. A syntactically invalid id is treated
// as absent, not as an error.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.SafeUser, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	doc, err := r.findOne(ctx, bson.M{"_id": oid})
	if err != nil || doc == nil {
		return nil, err
	}
	return doc.toSafeUser(), nil
}

// List returns one page of accounts ordered by the requested sort key.
// Pages beyond the collection size yield an empty slice, not an error.
func (r *UserRepository) List(ctx context.Context, params domain.ListParams) (domain.UserPage, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	sort, ok := sortSpecs[params.Sort]
	if !ok {
		sort = sortSpecs[domain.SortCreatedAtDesc]
	}

	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return domain.UserPage{}, fmt.Errorf("count users: %w", err)
	}

	opts := options.Find().
		SetSort(sort).
		SetSkip(int64(params.Page-1) * int64(params.Limit)).
		SetLimit(int64(params.Limit))

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return domain.UserPage{}, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	items := make([]domain.SafeUser, 0, params.Limit)
	for cur.Next(ctx) {
		var doc userDoc
		if err := cur.Decode(&doc); err != nil {
			return domain.UserPage{}, fmt.Errorf("decode user: %w", err)
		}
		items = append(items, *doc.toSafeUser())
	}
	if err := cur.Err(); err != nil {
		return domain.UserPage{}, fmt.Errorf("iterate users: %w", err)
	}

	return domain.NewUserPage(items, params, total), nil
}

// UpdatePartial applies the named fields and refreshes updated_at,
// returning the post-update projection. Nil when the id is absent or malformed.
func (r *UserRepository) UpdatePartial(ctx context.Context, id string, patch domain.UserPatch) (*domain.SafeUser, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.FullName != nil {
		set["full_name"] = *patch.FullName
	}
	if patch.BirthDate != nil {
		set["birth_date"] = *patch.BirthDate
	}
	return r.findOneAndSet(ctx, id, set)
}

// SetActive toggles the account's active flag and returns the full updated
// record. Same id-handling contract as UpdatePartial.
func (r *UserRepository) SetActive(ctx context.Context, id string, active bool) (*domain.SafeUser, error) {
	return r.findOneAndSet(ctx, id, bson.M{
		"is_active":  active,
		"updated_at": time.Now().UTC(),
	})
}

// DeleteByID removes an account, reporting whether a record was deleted.
func (r *UserRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	return res.DeletedCount == 1, nil
}

// EnsureIndexes creates the indexes the account invariants depend on. The
// unique email index is load-bearing: it closes the register race window.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "role", Value: 1}, {Key: "is_active", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*userDoc, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &doc, nil
}

func (r *UserRepository) findOneAndSet(ctx context.Context, id string, set bson.M) (*domain.SafeUser, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc userDoc
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return doc.toSafeUser(), nil
}
