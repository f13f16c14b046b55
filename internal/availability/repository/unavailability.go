package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stagetime/pkg/config"
	mongotx "stagetime/pkg/db/mongo"
	"stagetime/pkg/model"
)

const (
	CollectionName = "Unavailability"
)

type UnavailabilityRepository interface {
	FindByOwnerAndDate(ctx context.Context, ownerID, date string) ([]*model.UnavailabilityEntry, error)
	ReplaceForDate(ctx context.Context, ownerID, date string, entries []*model.UnavailabilityEntry) error
	DeleteForDate(ctx context.Context, ownerID, date string) (int64, error)
	ListDatesInRange(ctx context.Context, ownerID, from, to string) ([]string, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoUnavailabilityRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoUnavailabilityRepository(cfg *config.Config) UnavailabilityRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoUnavailabilityRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo, cfg.TxnMaxAttempts),
	}
}

// withTimeout wraps the context with a timeout unless it is already bound
// to a transaction session, which must not be re-wrapped.
func (r *mongoUnavailabilityRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoUnavailabilityRepository) FindByOwnerAndDate(ctx context.Context, ownerID, date string) ([]*model.UnavailabilityEntry, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"owner_id": ownerID, "date": date}
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find unavailability entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*model.UnavailabilityEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode unavailability entries: %w", err)
	}

	return entries, nil
}

// ReplaceForDate removes every entry for (owner, date) and inserts the new
// ones. Callers run it inside a transaction so the swap is all-or-nothing.
func (r *mongoUnavailabilityRepository) ReplaceForDate(ctx context.Context, ownerID, date string, entries []*model.UnavailabilityEntry) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{"owner_id": ownerID, "date": date}
	if _, err := r.collection.DeleteMany(ctx, filter); err != nil {
		return fmt.Errorf("failed to clear unavailability for date: %w", err)
	}

	if len(entries) == 0 {
		return nil
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	docs := make([]any, 0, len(entries))
	for _, e := range entries {
		e.CreatedAt = now
		docs = append(docs, e)
	}

	result, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		return fmt.Errorf("failed to insert unavailability entries: %w", err)
	}

	for i, insertedID := range result.InsertedIDs {
		if oid, ok := insertedID.(primitive.ObjectID); ok {
			entries[i].ID = oid.Hex()
		}
	}
	return nil
}

func (r *mongoUnavailabilityRepository) DeleteForDate(ctx context.Context, ownerID, date string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{"owner_id": ownerID, "date": date}
	result, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to delete unavailability entries: %w", err)
	}

	return result.DeletedCount, nil
}

func (r *mongoUnavailabilityRepository) ListDatesInRange(ctx context.Context, ownerID, from, to string) ([]string, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"owner_id": ownerID,
		"date":     bson.M{"$gte": from, "$lte": to},
	}

	raw, err := r.collection.Distinct(ctx, "date", filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list unavailable dates: %w", err)
	}

	dates := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			dates = append(dates, s)
		}
	}
	// Canonical YYYY-MM-DD strings sort chronologically.
	sort.Strings(dates)

	return dates, nil
}

func (r *mongoUnavailabilityRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
