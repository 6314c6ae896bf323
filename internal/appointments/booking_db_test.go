package appointments

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
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

// seedService creates an owner and a bookable service, cleaned up after the test.
func seedService(t *testing.T, ctx context.Context) string {
	t.Helper()

	ownerID := uuid.New().String()
	serviceID := uuid.New().String()

	_, err := db.Conn.Exec(ctx,
		`INSERT INTO users (id, name, email, password, role) VALUES ($1, $2, $3, $4, $5)`,
		ownerID, "Test Owner", ownerID+"@example.com", "x", "entrepreneur",
	)
	require.NoError(t, err)

	_, err = db.Conn.Exec(ctx,
		`INSERT INTO services (id, owner_id, business_name, working_days, start_time, end_time, slot_interval)
         VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		serviceID, ownerID, "Test Salon", "mon,tue,wed", "09:00", "17:00", 60,
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = db.Conn.Exec(context.Background(), `DELETE FROM appointments WHERE service_id = $1`, serviceID)
		_, _ = db.Conn.Exec(context.Background(), `DELETE FROM services WHERE id = $1`, serviceID)
		_, _ = db.Conn.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, ownerID)
	})
	return serviceID
}

func TestInsertScheduled_OneWriterWinsPerSlot(t *testing.T) {
	requireDatabase(t)
	ctx := context.Background()
	serviceID := seedService(t, ctx)

	first := Appointment{
		ID:            uuid.New().String(),
		ServiceID:     serviceID,
		CustomerID:    uuid.New().String(),
		CustomerName:  "Alice",
		CustomerEmail: "alice@example.com",
		SlotTime:      "09:00",
		Status:        StatusScheduled,
		CreatedAt:     time.Now(),
	}
	ok, err := insertScheduled(ctx, first)
	require.NoError(t, err)
	require.True(t, ok)

	// Same (service, slot): the unique index rejects the second writer
	second := first
	second.ID = uuid.New().String()
	second.CustomerID = uuid.New().String()
	second.CustomerName = "Bob"
	second.CustomerEmail = "bob@example.com"
	ok, err = insertScheduled(ctx, second)
	require.NoError(t, err)
	require.False(t, ok)

	// A different slot is unaffected
	other := second
	other.ID = uuid.New().String()
	other.SlotTime = "10:00"
	ok, err = insertScheduled(ctx, other)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCancelScheduled_OwningCustomerOnly(t *testing.T) {
	requireDatabase(t)
	ctx := context.Background()
	serviceID := seedService(t, ctx)

	customerID := uuid.New().String()
	appt := Appointment{
		ID:            uuid.New().String(),
		ServiceID:     serviceID,
		CustomerID:    customerID,
		CustomerName:  "Alice",
		CustomerEmail: "alice@example.com",
		SlotTime:      "11:00",
		Status:        StatusScheduled,
		CreatedAt:     time.Now(),
	}
	ok, err := insertScheduled(ctx, appt)
	require.NoError(t, err)
	require.True(t, ok)

	// A stranger's cancel matches no row
	ok, err = cancelScheduled(ctx, appt.ID, uuid.New().String())
	require.NoError(t, err)
	require.False(t, ok)

	// The booking customer succeeds, exactly once
	ok, err = cancelScheduled(ctx, appt.ID, customerID)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = cancelScheduled(ctx, appt.ID, customerID)
	require.NoError(t, err)
	require.False(t, ok)

	// The cancelled row no longer holds the slot
	rebook := appt
	rebook.ID = uuid.New().String()
	rebook.CustomerID = uuid.New().String()
	ok, err = insertScheduled(ctx, rebook)
	require.NoError(t, err)
	require.True(t, ok)
}
