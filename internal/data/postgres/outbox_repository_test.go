package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/fintrack-ledger/internal/domain/outbox"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutboxRepository_Create(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &OutboxRepository{querier: mock, logger: logger}

	message := &outbox.Message{
		EventID:   uuid.New(),
		AccountID: uuid.New(),
		Payload:   json.RawMessage(`{"event_type":"transaction.created"}`),
		Status:    outbox.StatusPending,
		Attempts:  0,
		CreatedAt: time.Now(),
	}

	query := `
		INSERT INTO ledger_outbox \(event_id, account_id, payload, status, attempts, created_at\)
		VALUES \(\$1, \$2, \$3, \$4, \$5, \$6\)
		RETURNING id
	`

	mock.ExpectQuery(query).
		WithArgs(message.EventID, message.AccountID, message.Payload, message.Status, message.Attempts, message.CreatedAt).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))

	err = repo.Create(ctx, message)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), message.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_GetPending(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &OutboxRepository{querier: mock, logger: logger}

	query := `
		SELECT id, event_id, account_id, payload, status, attempts, created_at, last_attempt_at
		FROM ledger_outbox
		WHERE status = \$1
		ORDER BY created_at ASC
		LIMIT \$2
	`

	eventID := uuid.New()
	accountID := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "event_id", "account_id", "payload", "status", "attempts", "created_at", "last_attempt_at"}).
		AddRow(int64(1), eventID, accountID, json.RawMessage(`{}`), outbox.StatusPending, 0, now, (*time.Time)(nil))

	mock.ExpectQuery(query).WithArgs(outbox.StatusPending, 10).WillReturnRows(rows)

	messages, err := repo.GetPending(ctx, 10)
	assert.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, eventID, messages[0].EventID)
	assert.Equal(t, outbox.StatusPending, messages[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &OutboxRepository{querier: mock, logger: logger}

	query := `
		UPDATE ledger_outbox
		SET status = \$1, last_attempt_at = \$2
		WHERE id = \$3
	`

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(outbox.StatusProcessed, pgxmock.AnyArg(), int64(1)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.UpdateStatus(ctx, 1, outbox.StatusProcessed)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(outbox.StatusFailedToPublish, pgxmock.AnyArg(), int64(2)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.UpdateStatus(ctx, 2, outbox.StatusFailedToPublish)
		assert.ErrorIs(t, err, outbox.ErrMessageNotFound{ID: 2})
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOutboxRepository_Delete(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &OutboxRepository{querier: mock, logger: logger}

	query := `
		DELETE FROM ledger_outbox
		WHERE id = \$1
	`

	mock.ExpectExec(query).WithArgs(int64(7)).WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err = repo.Delete(ctx, 7)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
