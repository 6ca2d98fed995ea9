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

	"github.com/abelab/crms/internal/core/domain"
)

const collectionReservations = "reservations"

// ReservationRepository implements ports.ReservationRepository using MongoDB.
type ReservationRepository struct {
	col *mongo.Collection
}

func NewReservationRepository(db *mongo.Database) *ReservationRepository {
	return &ReservationRepository{col: db.Collection(collectionReservations)}
}

type mongoReservation struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	StartAt   time.Time          `bson:"start_at"`
	FinishAt  time.Time          `bson:"finish_at"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (mr mongoReservation) toDomain() *domain.Reservation {
	return &domain.Reservation{
		ID:        mr.ID.Hex(),
		UserID:    mr.UserID,
		StartAt:   mr.StartAt.UTC(),
		FinishAt:  mr.FinishAt.UTC(),
		CreatedAt: mr.CreatedAt.UTC(),
		UpdatedAt: mr.UpdatedAt.UTC(),
	}
}

func (r *ReservationRepository) SelectByID(ctx context.Context, id string) (*domain.Reservation, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFoundReservation
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mr mongoReservation
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFoundReservation
		}
		return nil, fmt.Errorf("find reservation: %w", err)
	}
	return mr.toDomain(), nil
}

// FindAll returns every reservation ordered by start time.
func (r *ReservationRepository) FindAll(ctx context.Context) ([]*domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start_at", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find reservations: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoReservation
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode reservations: %w", err)
	}

	out := make([]*domain.Reservation, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *ReservationRepository) Insert(ctx context.Context, res *domain.Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoReservation{
		UserID:    res.UserID,
		StartAt:   res.StartAt,
		FinishAt:  res.FinishAt,
		CreatedAt: res.CreatedAt,
		UpdatedAt: res.UpdatedAt,
	}
	out, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert reservation: %w", err)
	}
	if oid, ok := out.InsertedID.(primitive.ObjectID); ok {
		res.ID = oid.Hex()
	}
	return nil
}

func (r *ReservationRepository) Update(ctx context.Context, res *domain.Reservation) error {
	oid, err := primitive.ObjectIDFromHex(res.ID)
	if err != nil {
		return domain.ErrNotFoundReservation
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"start_at":   res.StartAt,
		"finish_at":  res.FinishAt,
		"updated_at": res.UpdatedAt,
	}}
	out, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update reservation: %w", err)
	}
	if out.MatchedCount == 0 {
		return domain.ErrNotFoundReservation
	}
	return nil
}

func (r *ReservationRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFoundReservation
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	out, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete reservation: %w", err)
	}
	if out.DeletedCount == 0 {
		return domain.ErrNotFoundReservation
	}
	return nil
}

// EnsureIndexes creates the indexes used by owner lookups and the next-day
// scan.
func (r *ReservationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "start_at", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
