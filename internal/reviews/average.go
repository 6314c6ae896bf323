package reviews

import "math"

// AverageRating computes the arithmetic mean of ratings rounded to one
// decimal place. An empty set averages to 0.
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	mean := float64(sum) / float64(len(ratings))
	return math.Round(mean*10) / 10
}
