// Package mongo provides the MongoDB implementation of the ledger event
// archive. Archived events are an append-only audit trail; the relational
// store in data/postgres remains the source of truth for balances.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fintrack-ledger/internal/domain/event"
)

const (
	// EventCollectionName is the name of the ledger event collection in MongoDB
	EventCollectionName = "ledger_events"
)

// EventRepository implements the event.Repository interface for MongoDB
type EventRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewEventRepository creates a new MongoDB event repository
func NewEventRepository(logger *slog.Logger, db *mongo.Database) event.Repository {
	return &EventRepository{
		db:     db,
		logger: logger,
	}
}

// Create archives a ledger event after checking for duplicates.
// Returns ErrDuplicateEvent if an event with the same event ID exists.
func (r *EventRepository) Create(ctx context.Context, ev *event.LedgerEvent) error {
	collection := r.db.Collection(EventCollectionName)

	// Check if the event was already archived
	existing, err := r.GetByEventID(ctx, ev.EventID)
	if err != nil && !errors.Is(err, event.ErrEventNotFound{}) {
		r.logger.Error("Failed to check for existing ledger event",
			"event_id", ev.EventID.String(),
			"error", err)
		return fmt.Errorf("failed to check for existing ledger event: %w", err)
	}

	if existing != nil {
		return event.ErrDuplicateEvent{EventID: ev.EventID}
	}

	now := time.Now().UTC()
	ev.ArchivedAt = &now

	_, err = collection.InsertOne(ctx, ev)
	if err != nil {
		r.logger.Error("Failed to archive ledger event",
			"event_id", ev.EventID.String(),
			"error", err)
		return fmt.Errorf("failed to archive ledger event: %w", err)
	}

	return nil
}

// GetByEventID retrieves an archived event by its event ID.
// Returns ErrEventNotFound if no event exists with the given ID.
func (r *EventRepository) GetByEventID(ctx context.Context, eventID uuid.UUID) (*event.LedgerEvent, error) {
	collection := r.db.Collection(EventCollectionName)

	filter := bson.M{"event_id": eventID}
	var ev event.LedgerEvent
	err := collection.FindOne(ctx, filter).Decode(&ev)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, event.ErrEventNotFound{EventID: eventID}
		}
		r.logger.Error("Failed to get ledger event",
			"event_id", eventID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get ledger event: %w", err)
	}

	return &ev, nil
}

// GetByAccountID retrieves paginated archived events for an account.
// Results are sorted by occurrence time in descending order (newest first).
func (r *EventRepository) GetByAccountID(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*event.LedgerEvent, error) {
	collection := r.db.Collection(EventCollectionName)

	filter := bson.M{"account_id": accountID}
	opts := options.Find().
		SetSort(bson.M{"occurred_at": -1}). // Sort by occurred_at in descending order
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to get ledger events",
			"account_id", accountID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get ledger events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []*event.LedgerEvent
	if err := cursor.All(ctx, &events); err != nil {
		r.logger.Error("Failed to decode ledger events",
			"account_id", accountID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to decode ledger events: %w", err)
	}

	return events, nil
}

// CountByAccountID counts the total number of archived events for an account
func (r *EventRepository) CountByAccountID(ctx context.Context, accountID uuid.UUID) (int64, error) {
	collection := r.db.Collection(EventCollectionName)

	filter := bson.M{"account_id": accountID}
	count, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		r.logger.Error("Failed to count ledger events",
			"account_id", accountID.String(),
			"error", err)
		return 0, fmt.Errorf("failed to count ledger events: %w", err)
	}

	return count, nil
}
