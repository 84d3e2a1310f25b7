package stats

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestLeaderboard_OneEntryPerPlayer(t *testing.T) {
	attempts := []Attempt{
		{ID: 1, Player: "A", Seconds: 50},
		{ID: 2, Player: "A", Seconds: 30},
		{ID: 3, Player: "B", Seconds: 40},
	}

	got := Rank(BestTimes(attempts), 10)
	want := []Entry{
		{Rank: 1, Player: "A", BestTime: 30},
		{Rank: 2, Player: "B", BestTime: 40},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("leaderboard mismatch (-want +got):\n%s", diff)
	}
}

func TestLeaderboard_Empty(t *testing.T) {
	got := Rank(BestTimes(nil), 0)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLeaderboard_TiesKeepFirstSubmissionOrder(t *testing.T) {
	attempts := []Attempt{
		{ID: 1, Player: "late-best", Seconds: 90},
		{ID: 2, Player: "early", Seconds: 25},
		{ID: 3, Player: "late-best", Seconds: 25},
	}

	got := Rank(BestTimes(attempts), 10)
	assert.Equal(t, "late-best", got[0].Player, "first attempt id 1 predates player early")
	assert.Equal(t, "early", got[1].Player)
	assert.Equal(t, 2, got[1].Rank)
}

func TestLeaderboard_Truncates(t *testing.T) {
	var attempts []Attempt
	for i := 0; i < 120; i++ {
		attempts = append(attempts, Attempt{ID: int64(i + 1), Player: fmt.Sprintf("p%03d", i), Seconds: 100 + i})
	}

	assert.Len(t, Rank(BestTimes(attempts), 3), 3)
	assert.Len(t, Rank(BestTimes(attempts), 0), DefaultLeaderboardLimit)
	assert.Len(t, Rank(BestTimes(attempts), 500), MaxLeaderboardLimit)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 50, ClampLimit(-1))
	assert.Equal(t, 7, ClampLimit(7))
	assert.Equal(t, 100, ClampLimit(101))
}
