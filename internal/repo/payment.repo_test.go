package repo

import (
	"context"
	"math"
	"testing"

	"payment-gateway/internal/database"
	"payment-gateway/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.uber.org/zap"
)

func TestPaymentRepo_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("payments"),
		postgres.WithUsername("gateway"),
		postgres.WithPassword("gateway"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.Open(ctx, dsn, "payments", zap.NewNop())
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Migrate(ctx))

	r := NewPaymentRepo(db.DB())

	t.Run("unknown id is absent", func(t *testing.T) {
		p, err := r.FindById(ctx, uuid.New())
		require.NoError(t, err)
		require.Nil(t, p)
	})

	t.Run("create then find", func(t *testing.T) {
		want := samplePayment(domain.PaymentDeclined)
		require.NoError(t, r.CreatePayment(ctx, want))

		got, err := r.FindById(ctx, want.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Equal(t, want.ID, got.ID)
		require.Equal(t, want.Status, got.Status)
		require.Equal(t, want.CardNumberLastFour, got.CardNumberLastFour)
		require.Equal(t, want.ExpiryMonth, got.ExpiryMonth)
		require.Equal(t, want.ExpiryYear, got.ExpiryYear)
		require.Equal(t, want.Currency, got.Currency)
		require.Equal(t, want.Amount, got.Amount)
		require.True(t, want.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("second insert of an id is ignored", func(t *testing.T) {
		first := samplePayment(domain.PaymentRejected)
		require.NoError(t, r.CreatePayment(ctx, first))

		second := *first
		second.Status = domain.PaymentAuthorized
		require.NoError(t, r.CreatePayment(ctx, &second))

		got, err := r.FindById(ctx, first.ID)
		require.NoError(t, err)
		require.Equal(t, domain.PaymentRejected, got.Status)
	})

	t.Run("out of range expiry is stored", func(t *testing.T) {
		want := samplePayment(domain.PaymentRejected)
		want.ExpiryMonth, want.ExpiryYear = math.MaxInt32+1, 1<<40
		require.NoError(t, r.CreatePayment(ctx, want))

		got, err := r.FindById(ctx, want.ID)
		require.NoError(t, err)
		require.Equal(t, want.ExpiryMonth, got.ExpiryMonth)
		require.Equal(t, want.ExpiryYear, got.ExpiryYear)
	})

	t.Run("health reports up", func(t *testing.T) {
		require.Equal(t, "up", db.Health(ctx)["status"])
	})
}
