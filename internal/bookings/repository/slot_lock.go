package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"stagetime/pkg/config"
	"stagetime/pkg/model"
)

const (
	SlotLockCollectionName = "Slot_locks"
)

// SlotLockRepository holds short-lived advisory locks on (owner, date)
// partitions. Uniqueness on _id makes Create the acquire primitive; a TTL
// index on expires_at reaps locks from crashed holders.
type SlotLockRepository interface {
	Create(ctx context.Context, lock *model.SlotLock) (string, error)
	Delete(ctx context.Context, id string) error
}

type mongoSlotLockRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoSlotLockRepository(cfg *config.Config) SlotLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoSlotLockRepository{
		cfg:        cfg,
		collection: db.Collection(SlotLockCollectionName),
	}
}

func (r *mongoSlotLockRepository) Create(ctx context.Context, lock *model.SlotLock) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	lock.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	if _, err := r.collection.InsertOne(ctx, lock); err != nil {
		return "", err
	}

	return lock.ID, nil
}

func (r *mongoSlotLockRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to release slot lock: %w", err)
	}

	return nil
}
