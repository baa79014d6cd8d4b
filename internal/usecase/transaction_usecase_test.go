package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/gofintrack/internal/analytics"
	"github.com/iho/gofintrack/internal/domain"
	"github.com/iho/gofintrack/internal/usecase"
	"github.com/iho/gofintrack/internal/usecase/mocks"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type txDeps struct {
	txManager  *mocks.MockTransactionManager
	tx         *mocks.MockTransaction
	txRepo     *mocks.MockTransactionRepository
	outboxRepo *mocks.MockOutboxRepository
	versioner  *mocks.MockSnapshotVersioner
	retrier    *mocks.MockRetrier
	idGen      *mocks.MockIDGenerator
}

func newTxDeps(ctrl *gomock.Controller) *txDeps {
	d := &txDeps{
		txManager:  mocks.NewMockTransactionManager(ctrl),
		tx:         mocks.NewMockTransaction(ctrl),
		txRepo:     mocks.NewMockTransactionRepository(ctrl),
		outboxRepo: mocks.NewMockOutboxRepository(ctrl),
		versioner:  mocks.NewMockSnapshotVersioner(ctrl),
		retrier:    mocks.NewMockRetrier(ctrl),
		idGen:      mocks.NewMockIDGenerator(ctrl),
	}

	d.retrier.EXPECT().Retry(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, op func() error) error { return op() }).
		AnyTimes()

	return d
}

func (d *txDeps) useCase(now time.Time) *usecase.TransactionUseCase {
	return usecase.NewTransactionUseCase(
		d.txManager, d.txRepo, d.outboxRepo, d.versioner, d.retrier, d.idGen,
		fixedClock{now: now}, zerolog.Nop(),
	)
}

func validInput() usecase.CreateTransactionInput {
	return usecase.CreateTransactionInput{
		OwnerID:       "owner-1",
		Type:          domain.TransactionTypeExpense,
		Amount:        decimal.NewFromInt(120),
		Description:   "Dinner",
		Category:      "food",
		Date:          time.Date(2024, time.March, 3, 19, 0, 0, 0, time.UTC),
		PaymentMethod: domain.PaymentMethodCard,
	}
}

func TestTransactionUseCase_CreateTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("stores record and outbox event then bumps version", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		d := newTxDeps(ctrl)

		gomock.InOrder(
			d.idGen.EXPECT().Generate().Return("tx-1"),
			d.txManager.EXPECT().Begin(gomock.Any()).Return(d.tx, nil),
			d.txRepo.EXPECT().Create(gomock.Any(), d.tx, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ usecase.Transaction, record *domain.Transaction) error {
					assert.Equal(t, "tx-1", record.ID)
					assert.False(t, record.CreatedAt.IsZero())
					return nil
				}),
			d.idGen.EXPECT().Generate().Return("evt-1"),
			d.outboxRepo.EXPECT().Create(gomock.Any(), d.tx, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ usecase.Transaction, event *domain.OutboxEvent) error {
					assert.Equal(t, "evt-1", event.ID)
					assert.Equal(t, domain.EventTypeTransactionCreated, event.EventType)
					assert.Equal(t, "tx-1", event.AggregateID)
					assert.Equal(t, "owner-1", event.OwnerID)
					assert.Equal(t, "120", event.Payload["amount"])
					return nil
				}),
			d.tx.EXPECT().Commit(gomock.Any()).Return(nil),
			d.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
			d.versioner.EXPECT().Bump(gomock.Any(), "owner-1").Return(int64(2), nil),
		)

		record, err := d.useCase(time.Now()).CreateTransaction(ctx, validInput())

		require.NoError(t, err)
		assert.Equal(t, "tx-1", record.ID)
		assert.Equal(t, "Dinner", record.Description)
	})

	t.Run("validation error touches no storage", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		d := newTxDeps(ctrl)
		d.idGen.EXPECT().Generate().Return("tx-1")

		input := validInput()
		input.Category = "salary"

		_, err := d.useCase(time.Now()).CreateTransaction(ctx, input)

		assert.ErrorIs(t, err, domain.ErrInvalidCategory)
	})

	t.Run("repository failure rolls back", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		d := newTxDeps(ctrl)
		repoErr := errors.New("insert failed")

		d.idGen.EXPECT().Generate().Return("tx-1")
		d.txManager.EXPECT().Begin(gomock.Any()).Return(d.tx, nil)
		d.txRepo.EXPECT().Create(gomock.Any(), d.tx, gomock.Any()).Return(repoErr)
		d.tx.EXPECT().Rollback(gomock.Any()).Return(nil)

		_, err := d.useCase(time.Now()).CreateTransaction(ctx, validInput())

		assert.ErrorIs(t, err, repoErr)
	})

	t.Run("version bump failure does not fail the write", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		d := newTxDeps(ctrl)

		d.idGen.EXPECT().Generate().Return("id").Times(2)
		d.txManager.EXPECT().Begin(gomock.Any()).Return(d.tx, nil)
		d.txRepo.EXPECT().Create(gomock.Any(), d.tx, gomock.Any()).Return(nil)
		d.outboxRepo.EXPECT().Create(gomock.Any(), d.tx, gomock.Any()).Return(nil)
		d.tx.EXPECT().Commit(gomock.Any()).Return(nil)
		d.tx.EXPECT().Rollback(gomock.Any()).Return(nil)
		d.versioner.EXPECT().Bump(gomock.Any(), "owner-1").Return(int64(0), errors.New("redis down"))

		record, err := d.useCase(time.Now()).CreateTransaction(ctx, validInput())

		require.NoError(t, err)
		assert.NotNil(t, record)
	})

	t.Run("version bump failure evicts the current cached report", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		d := newTxDeps(ctrl)
		cache := mocks.NewMockCache(ctrl)
		now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

		d.idGen.EXPECT().Generate().Return("id").Times(2)
		d.txManager.EXPECT().Begin(gomock.Any()).Return(d.tx, nil)
		d.txRepo.EXPECT().Create(gomock.Any(), d.tx, gomock.Any()).Return(nil)
		d.outboxRepo.EXPECT().Create(gomock.Any(), d.tx, gomock.Any()).Return(nil)
		d.tx.EXPECT().Commit(gomock.Any()).Return(nil)
		d.tx.EXPECT().Rollback(gomock.Any()).Return(nil)
		gomock.InOrder(
			d.versioner.EXPECT().Bump(gomock.Any(), "owner-1").Return(int64(0), errors.New("bump failed")),
			d.versioner.EXPECT().Current(gomock.Any(), "owner-1").Return(int64(4), nil),
			cache.EXPECT().Delete(gomock.Any(), "report:owner-1:4:2024-03-10").Return(nil),
		)

		record, err := d.useCase(now).WithReportCache(cache).CreateTransaction(ctx, validInput())

		require.NoError(t, err)
		assert.NotNil(t, record)
	})
}

func TestTransactionUseCase_DeleteTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes and records event", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		d := newTxDeps(ctrl)
		stored := &domain.Transaction{ID: "tx-1", OwnerID: "owner-1"}

		d.txManager.EXPECT().Begin(gomock.Any()).Return(d.tx, nil)
		d.txRepo.EXPECT().Delete(gomock.Any(), d.tx, "owner-1", "tx-1").Return(stored, nil)
		d.idGen.EXPECT().Generate().Return("evt-1")
		d.outboxRepo.EXPECT().Create(gomock.Any(), d.tx, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ usecase.Transaction, event *domain.OutboxEvent) error {
				assert.Equal(t, domain.EventTypeTransactionDeleted, event.EventType)
				assert.Equal(t, "tx-1", event.AggregateID)
				return nil
			})
		d.tx.EXPECT().Commit(gomock.Any()).Return(nil)
		d.tx.EXPECT().Rollback(gomock.Any()).Return(nil)
		d.versioner.EXPECT().Bump(gomock.Any(), "owner-1").Return(int64(3), nil)

		require.NoError(t, d.useCase(time.Now()).DeleteTransaction(ctx, "owner-1", "tx-1"))
	})

	t.Run("missing record", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		d := newTxDeps(ctrl)

		d.txManager.EXPECT().Begin(gomock.Any()).Return(d.tx, nil)
		d.txRepo.EXPECT().Delete(gomock.Any(), d.tx, "owner-1", "nope").Return(nil, domain.ErrTransactionNotFound)
		d.tx.EXPECT().Rollback(gomock.Any()).Return(nil)

		err := d.useCase(time.Now()).DeleteTransaction(ctx, "owner-1", "nope")

		assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
	})

	t.Run("owner required", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		d := newTxDeps(ctrl)

		err := d.useCase(time.Now()).DeleteTransaction(ctx, "", "tx-1")

		assert.ErrorIs(t, err, domain.ErrMissingOwner)
	})
}

func TestTransactionUseCase_Browse(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := newTxDeps(ctrl)
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

	lunch := &domain.Transaction{
		ID: "a", Type: domain.TransactionTypeExpense, Category: "food", Description: "Lunch",
		Amount: decimal.NewFromInt(15), Date: now.Add(-time.Hour),
	}
	salary := &domain.Transaction{
		ID: "b", Type: domain.TransactionTypeIncome, Category: "salary", Description: "Payroll",
		Amount: decimal.NewFromInt(3000), Date: now.AddDate(0, 0, -1),
	}
	rent := &domain.Transaction{
		ID: "c", Type: domain.TransactionTypeExpense, Category: "rent", Description: "Rent",
		Amount: decimal.NewFromInt(900), Date: now.AddDate(0, -1, 0),
	}

	d.txRepo.EXPECT().ListByOwner(gomock.Any(), "owner-1").
		Return([]*domain.Transaction{lunch, salary, rent}, nil).Times(2)

	uc := d.useCase(now)

	result, err := uc.Browse(context.Background(), usecase.BrowseInput{OwnerID: "owner-1", Type: "expense", Sort: analytics.SortHighest})
	require.NoError(t, err)
	assert.Equal(t, []*domain.Transaction{rent, lunch}, result.Transactions)
	assert.Equal(t, []*domain.Transaction{lunch}, result.Groups.Today)
	assert.Equal(t, []*domain.Transaction{rent}, result.Groups.Older)

	categories, err := uc.Categories(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"food", "salary", "rent"}, categories)
}

func TestTransactionUseCase_SnapshotRequiresOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := newTxDeps(ctrl)

	_, err := d.useCase(time.Now()).Snapshot(context.Background(), "")

	assert.ErrorIs(t, err, domain.ErrMissingOwner)
}
