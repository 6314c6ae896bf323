package orders

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/supporta-app/supporta/internal/db"
)

func requireDatabase(t *testing.T) {
	t.Helper()
	if os.Getenv("DB_HOST") == "" {
		t.Skip("DB_HOST not set, skipping database test")
	}
	if db.Conn == nil {
		db.Init()
	}
}

// seedOrder inserts an order row in the given status, cleaned up after the test.
func seedOrder(t *testing.T, ctx context.Context, customerID, ownerID string, status Status) string {
	t.Helper()

	orderID := uuid.New().String()
	_, err := db.Conn.Exec(ctx,
		`INSERT INTO orders (id, product_id, product_name, customer_id, owner_id, quantity, total_price, status)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		orderID, uuid.New().String(), "Test Widget", customerID, ownerID, 2, 19.98, string(status),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = db.Conn.Exec(context.Background(), `DELETE FROM orders WHERE id = $1`, orderID)
	})
	return orderID
}

func TestCasOrderStatus_PriorStatusGuards(t *testing.T) {
	requireDatabase(t)
	ctx := context.Background()
	orderID := seedOrder(t, ctx, uuid.New().String(), uuid.New().String(), StatusReceived)

	ok, err := casOrderStatus(ctx, orderID, StatusReceived, StatusPaymentReceived)
	require.NoError(t, err)
	require.True(t, ok)

	// The same move again loses: the row already left Order Received
	ok, err = casOrderStatus(ctx, orderID, StatusReceived, StatusPaymentReceived)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = casOrderStatus(ctx, orderID, StatusPaymentReceived, StatusConfirmed)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestLookupCustomerOrder_OwningCustomerOnly(t *testing.T) {
	requireDatabase(t)
	ctx := context.Background()

	customerID := uuid.New().String()
	ownerID := uuid.New().String()
	orderID := seedOrder(t, ctx, customerID, ownerID, StatusReceived)

	gotOwner, gotStatus, err := lookupCustomerOrder(ctx, orderID, customerID)
	require.NoError(t, err)
	require.Equal(t, ownerID, gotOwner)
	require.Equal(t, string(StatusReceived), gotStatus)

	// Anyone else sees the order as missing
	_, _, err = lookupCustomerOrder(ctx, orderID, uuid.New().String())
	require.ErrorIs(t, err, pgx.ErrNoRows)

	_, _, err = lookupCustomerOrder(ctx, uuid.New().String(), customerID)
	require.ErrorIs(t, err, pgx.ErrNoRows)
}
