// Package stats holds the pure aggregation functions behind ratings, survey answers,
// game leaderboards and prompt popularity. Nothing here touches storage; callers feed
// it rows or SQL aggregates and get deterministic results back, including documented
// defaults for an empty population.
package stats

import (
	"math"
	"time"
)

const (
	MinRating = 1
	MaxRating = 5

	// NeutralAverage is reported when there is nothing to average, so comparisons never divide by zero.
	NeutralAverage = 3.0
	// NeutralRating is the most common value reported for an empty population.
	NeutralRating = 3

	// TrendingWindow is how long a click keeps contributing to a prompt's trending score.
	TrendingWindow = 24 * time.Hour
)

// Questions are the keys of the five-question survey, in validation order.
var Questions = [5]string{"q1", "q2", "q3", "q4", "q5"}

// QuestionStat is the class-wide mean for one survey question.
type QuestionStat struct {
	Average float64 `json:"average"`
	Total   int64   `json:"total"`
}

// InRange reports whether v is a valid 1..5 rating.
func InRange(v int) bool {
	return v >= MinRating && v <= MaxRating
}

// Average is the arithmetic mean of values, or NeutralAverage when empty.
func Average(values []int) float64 {
	if len(values) == 0 {
		return NeutralAverage
	}
	var sum int64
	for _, v := range values {
		sum += int64(v)
	}
	return float64(sum) / float64(len(values))
}

// AverageOf is Average for callers that already have a SQL SUM and COUNT.
func AverageOf(sum, count int64) float64 {
	if count <= 0 {
		return NeutralAverage
	}
	return float64(sum) / float64(count)
}

// Distribution counts values per rating. Every rating 1..5 is present as a key.
func Distribution(values []int) map[int]int64 {
	dist := emptyDistribution()
	for _, v := range values {
		if InRange(v) {
			dist[v]++
		}
	}
	return dist
}

// CompleteDistribution fills in the missing 1..5 keys of a GROUP BY result.
// Out-of-range keys are dropped.
func CompleteDistribution(partial map[int]int64) map[int]int64 {
	dist := emptyDistribution()
	for k, n := range partial {
		if InRange(k) {
			dist[k] += n
		}
	}
	return dist
}

// MostCommon returns the rating with the highest count. Ties go to the lowest rating;
// an all-zero distribution yields NeutralRating.
func MostCommon(dist map[int]int64) int {
	best, bestCount := NeutralRating, int64(0)
	for v := MinRating; v <= MaxRating; v++ {
		if dist[v] > bestCount {
			best, bestCount = v, dist[v]
		}
	}
	return best
}

// Count sums a distribution.
func Count(dist map[int]int64) int64 {
	var n int64
	for _, c := range dist {
		n += c
	}
	return n
}

// QuestionAverages computes the per-question mean over survey answers. Each answer
// row holds q1..q5 in order. Averages are rounded to two decimals; an empty input gives
// zero average and zero total for every question.
func QuestionAverages(rows [][5]int) map[string]QuestionStat {
	var sums [5]int64
	for _, r := range rows {
		for i, v := range r {
			sums[i] += int64(v)
		}
	}
	return QuestionAveragesFromSums(sums, int64(len(rows)))
}

// QuestionAveragesFromSums is QuestionAverages over SQL SUM(q1)..SUM(q5) and COUNT(*).
func QuestionAveragesFromSums(sums [5]int64, total int64) map[string]QuestionStat {
	out := make(map[string]QuestionStat, len(Questions))
	for i, q := range Questions {
		if total <= 0 {
			out[q] = QuestionStat{}
			continue
		}
		out[q] = QuestionStat{
			Average: Round(float64(sums[i])/float64(total), 2),
			Total:   total,
		}
	}
	return out
}

// RowAverage is the mean of one survey answer, rounded to two decimals.
func RowAverage(r [5]int) float64 {
	sum := 0
	for _, v := range r {
		sum += v
	}
	return Round(float64(sum)/float64(len(r)), 2)
}

// TrendingScore decays clicks linearly to zero over TrendingWindow since the last click.
// It is evaluated at read time against now; a prompt never clicked scores zero.
func TrendingScore(clicks int64, lastClickedAt *time.Time, now time.Time) float64 {
	if clicks <= 0 || lastClickedAt == nil {
		return 0
	}
	elapsed := now.Sub(*lastClickedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	factor := 1 - elapsed.Hours()/TrendingWindow.Hours()
	if factor <= 0 {
		return 0
	}
	return float64(clicks) * factor
}

// Round rounds half away from zero to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func emptyDistribution() map[int]int64 {
	dist := make(map[int]int64, MaxRating)
	for v := MinRating; v <= MaxRating; v++ {
		dist[v] = 0
	}
	return dist
}
