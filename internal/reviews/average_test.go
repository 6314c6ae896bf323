package reviews

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAverageRating(t *testing.T) {
	require.Equal(t, 4.0, AverageRating([]int{5, 3, 4}))
	require.Equal(t, 0.0, AverageRating(nil))
	require.Equal(t, 0.0, AverageRating([]int{}))
	require.Equal(t, 5.0, AverageRating([]int{5}))

	// 3.666... rounds to one decimal
	require.Equal(t, 3.7, AverageRating([]int{5, 3, 3}))
	// 4.25 rounds half away from zero
	require.Equal(t, 4.3, AverageRating([]int{5, 5, 4, 3}))
}
