package appointments

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateSlots(t *testing.T) {
	slots, err := GenerateSlots("09:00", "11:00", 60)
	require.NoError(t, err)
	require.Equal(t, []string{"09:00", "10:00"}, slots)
}

func TestGenerateSlots_TrailingPartialDropped(t *testing.T) {
	// 90-minute window with 60-minute interval: 09:00 fits, 10:00 starts a
	// partial slot but is still before the end, 10:30 onward does not exist
	slots, err := GenerateSlots("09:00", "10:30", 60)
	require.NoError(t, err)
	require.Equal(t, []string{"09:00", "10:00"}, slots)
}

func TestGenerateSlots_StrictlyIncreasingNoDuplicates(t *testing.T) {
	slots, err := GenerateSlots("08:15", "17:00", 25)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	seen := map[string]bool{}
	for i, s := range slots {
		require.False(t, seen[s], "duplicate slot %s", s)
		seen[s] = true
		if i > 0 {
			require.Greater(t, s, slots[i-1], "slots must be strictly increasing")
		}
		require.Less(t, s, "17:00", "every slot must be before the end time")
	}
}

func TestGenerateSlots_Invalid(t *testing.T) {
	_, err := GenerateSlots("11:00", "09:00", 30)
	require.Error(t, err)

	_, err = GenerateSlots("09:00", "09:00", 30)
	require.Error(t, err)

	_, err = GenerateSlots("09:00", "10:00", 0)
	require.Error(t, err)

	_, err = GenerateSlots("9 AM", "10:00", 30)
	require.Error(t, err)
}

func TestAvailableSlots(t *testing.T) {
	candidates := []string{"09:00", "10:00", "11:00"}

	free := AvailableSlots(candidates, []string{"09:00"})
	require.Equal(t, []string{"10:00", "11:00"}, free)

	free = AvailableSlots(candidates, nil)
	require.Equal(t, candidates, free)

	free = AvailableSlots(candidates, []string{"09:00", "10:00", "11:00"})
	require.Empty(t, free)

	// Booked labels outside the candidate set are ignored
	free = AvailableSlots(candidates, []string{"08:00"})
	require.Equal(t, candidates, free)
}
