package mongo

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"

	apperrors "stagetime/pkg/errors"
)

// TransactionFunc receives a session-bound context; repository calls made
// with it participate in the transaction.
type TransactionFunc func(ctx context.Context) error

type TransactionManager interface {
	ExecuteTransaction(ctx context.Context, fn TransactionFunc) error
}

type mongoTransactionManager struct {
	client      *mongo.Client
	maxAttempts int
}

func NewTransactionManager(client *mongo.Client, maxAttempts int) TransactionManager {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &mongoTransactionManager{
		client:      client,
		maxAttempts: maxAttempts,
	}
}

// ExecuteTransaction runs fn inside a Mongo transaction. Transient write
// conflicts are retried with fresh reads up to maxAttempts; after that the
// failure surfaces as CONCURRENT_MODIFICATION.
func (m *mongoTransactionManager) ExecuteTransaction(ctx context.Context, fn TransactionFunc) error {
	var lastErr error

	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		err := m.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if isTransient(err) {
			lastErr = err
			continue
		}
		if apperrors.IsAppError(err) {
			return err
		}
		return fmt.Errorf("transaction failed: %w", err)
	}

	return apperrors.Wrap(lastErr,
		apperrors.CodeConcurrentModification,
		"Operation conflicted with concurrent updates and was retried without success",
		http.StatusConflict,
	)
}

func (m *mongoTransactionManager) runOnce(ctx context.Context, fn TransactionFunc) error {
	session, err := m.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (any, error) {
		return nil, fn(sessCtx)
	})
	return err
}

func isTransient(err error) bool {
	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) {
		return serverErr.HasErrorLabel("TransientTransactionError") ||
			serverErr.HasErrorLabel("UnknownTransactionCommitResult")
	}
	return false
}
