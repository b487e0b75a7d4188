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

	"github.com/hrkit/leave-system/internal/core/domain"
	"github.com/hrkit/leave-system/internal/core/ports"
)

const leavesCollection = "leaves"

type LeaveRepository struct {
	coll *mongo.Collection
}

func NewLeaveRepository(db *mongo.Database) *LeaveRepository {
	return &LeaveRepository{coll: db.Collection(leavesCollection)}
}

type mongoLeave struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id"`
	Type      string             `bson:"type"`
	Date      time.Time          `bson:"date"`
	Reason    string             `bson:"reason,omitempty"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (ml *mongoLeave) toDomain() *domain.LeaveRequest {
	return &domain.LeaveRequest{
		ID:        ml.ID.Hex(),
		UserID:    ml.UserID.Hex(),
		Type:      domain.LeaveType(ml.Type),
		Date:      ml.Date.UTC(),
		Reason:    ml.Reason,
		Status:    domain.LeaveStatus(ml.Status),
		CreatedAt: ml.CreatedAt.UTC(),
		UpdatedAt: ml.UpdatedAt.UTC(),
	}
}

// Create inserts a new leave request. A duplicate (user_id, date) pair is
// rejected by the unique index and reported as domain.ErrLeaveConflict, which
// is what makes the admission check race-safe.
func (r *LeaveRepository) Create(ctx context.Context, l *domain.LeaveRequest) error {
	uid, err := primitive.ObjectIDFromHex(l.UserID)
	if err != nil {
		return fmt.Errorf("insert leave: bad user id %q", l.UserID)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoLeave{
		UserID:    uid,
		Type:      string(l.Type),
		Date:      l.Date,
		Reason:    l.Reason,
		Status:    string(l.Status),
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrLeaveConflict
		}
		return fmt.Errorf("insert leave: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		l.ID = oid.Hex()
	}
	return nil
}

func (r *LeaveRepository) FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*domain.LeaveRequest, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrLeaveNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ml mongoLeave
	if err := r.coll.FindOne(ctx, bson.M{"user_id": uid, "date": date}).Decode(&ml); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLeaveNotFound
		}
		return nil, fmt.Errorf("find leave by date: %w", err)
	}
	return ml.toDomain(), nil
}

// FindByID is scoped to userID so a request owned by someone else is
// indistinguishable from a missing one.
func (r *LeaveRepository) FindByID(ctx context.Context, id, userID string) (*domain.LeaveRequest, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrLeaveNotFound
	}
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrLeaveNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ml mongoLeave
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid, "user_id": uid}).Decode(&ml); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLeaveNotFound
		}
		return nil, fmt.Errorf("find leave by id: %w", err)
	}
	return ml.toDomain(), nil
}

// List returns one page ordered by date descending plus the total count.
func (r *LeaveRepository) List(ctx context.Context, filter ports.ListLeavesFilter) ([]*domain.LeaveRequest, int64, error) {
	uid, err := primitive.ObjectIDFromHex(filter.UserID)
	if err != nil {
		return nil, 0, domain.ErrLeaveNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"user_id": uid}
	if filter.Type != "" {
		query["type"] = string(filter.Type)
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count leaves: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list leaves: %w", err)
	}
	defer cur.Close(ctx)

	var items []*domain.LeaveRequest
	for cur.Next(ctx) {
		var ml mongoLeave
		if err := cur.Decode(&ml); err != nil {
			return nil, 0, fmt.Errorf("decode leave: %w", err)
		}
		items = append(items, ml.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("list leaves: %w", err)
	}

	return items, total, nil
}

// EnsureIndexes creates the unique (user_id, date) index. This index, not the
// service-level pre-check, is the source of truth for the one-leave-per-day
// invariant.
func (r *LeaveRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "type", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
