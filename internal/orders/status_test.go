package orders

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("Order Shipped")
	require.NoError(t, err)
	require.Equal(t, StatusShipped, s)

	_, err = ParseStatus("Shipped")
	require.Error(t, err)
}

func TestAdvance_SingleStepOnly(t *testing.T) {
	steps := []Status{StatusReceived, StatusPaymentReceived, StatusConfirmed, StatusShipped, StatusComplete}
	for i := 0; i < len(steps)-1; i++ {
		if err := Advance(steps[i], steps[i+1]); err != nil {
			t.Fatalf("expected %s -> %s to be legal: %v", steps[i], steps[i+1], err)
		}
	}

	// No skipping
	require.ErrorIs(t, Advance(StatusReceived, StatusShipped), ErrIllegalTransition)
	require.ErrorIs(t, Advance(StatusReceived, StatusConfirmed), ErrIllegalTransition)
	require.ErrorIs(t, Advance(StatusPaymentReceived, StatusComplete), ErrIllegalTransition)

	// No going backwards
	require.ErrorIs(t, Advance(StatusShipped, StatusConfirmed), ErrIllegalTransition)

	// Cancellation is not an advance target
	require.ErrorIs(t, Advance(StatusReceived, StatusCanceled), ErrIllegalTransition)
}

func TestAdvance_TerminalStates(t *testing.T) {
	for _, from := range []Status{StatusComplete, StatusCanceled} {
		for _, to := range []Status{StatusReceived, StatusPaymentReceived, StatusConfirmed, StatusShipped, StatusComplete, StatusCanceled} {
			if err := Advance(from, to); err == nil {
				t.Fatalf("expected %s -> %s to be rejected", from, to)
			}
		}
		require.True(t, Terminal(from))
	}
	require.False(t, Terminal(StatusShipped))
}

func TestCancelable(t *testing.T) {
	require.True(t, Cancelable(StatusReceived))
	require.True(t, Cancelable(StatusConfirmed))

	require.False(t, Cancelable(StatusPaymentReceived))
	require.False(t, Cancelable(StatusShipped))
	require.False(t, Cancelable(StatusComplete))
	require.False(t, Cancelable(StatusCanceled))
}

func TestCanTransition_UnknownState(t *testing.T) {
	require.False(t, CanTransition(Status("garbage"), StatusComplete))
}
