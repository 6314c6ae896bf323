package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateSchedule(t *testing.T) {
	msg, ok := validateSchedule("Mon, Wed, Fri", "09:00", "17:00", 30)
	require.True(t, ok, msg)

	// Full day names are accepted too
	_, ok = validateSchedule("Monday,Tuesday", "08:00", "12:00", 60)
	require.True(t, ok)

	_, ok = validateSchedule("", "09:00", "17:00", 30)
	require.False(t, ok)

	_, ok = validateSchedule("Mon, Someday", "09:00", "17:00", 30)
	require.False(t, ok)

	_, ok = validateSchedule("Mon", "17:00", "09:00", 30)
	require.False(t, ok)

	_, ok = validateSchedule("Mon", "09:00", "09:00", 30)
	require.False(t, ok)

	_, ok = validateSchedule("Mon", "9 AM", "17:00", 30)
	require.False(t, ok)

	_, ok = validateSchedule("Mon", "09:00", "17:00", 0)
	require.False(t, ok)
}
