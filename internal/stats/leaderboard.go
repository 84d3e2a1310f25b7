package stats

import "sort"

const (
	DefaultLeaderboardLimit = 50
	MaxLeaderboardLimit     = 100

	// MaxGameSeconds bounds a plausible game run; anything longer is corrupt input.
	MaxGameSeconds = 3600
)

// Attempt is one recorded game run.
type Attempt struct {
	ID      int64
	Player  string
	Seconds int
}

// PlayerBest is a player's fastest run. FirstID is the id of the player's first attempt and
// orders players that share a best time.
type PlayerBest struct {
	Player   string
	BestTime int
	FirstID  int64
}

// Entry is one leaderboard row.
type Entry struct {
	Rank     int    `json:"rank"`
	Player   string `json:"player"`
	BestTime int    `json:"best_time"`
}

// ClampLimit maps a caller supplied limit onto 1..MaxLeaderboardLimit, defaulting when unset.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLeaderboardLimit
	case limit > MaxLeaderboardLimit:
		return MaxLeaderboardLimit
	default:
		return limit
	}
}

// BestTimes keeps the minimum time per player and sorts fastest first.
func BestTimes(attempts []Attempt) []PlayerBest {
	byPlayer := make(map[string]*PlayerBest, len(attempts))
	for _, a := range attempts {
		pb, ok := byPlayer[a.Player]
		if !ok {
			byPlayer[a.Player] = &PlayerBest{Player: a.Player, BestTime: a.Seconds, FirstID: a.ID}
			continue
		}
		if a.Seconds < pb.BestTime {
			pb.BestTime = a.Seconds
		}
		if a.ID < pb.FirstID {
			pb.FirstID = a.ID
		}
	}

	out := make([]PlayerBest, 0, len(byPlayer))
	for _, pb := range byPlayer {
		out = append(out, *pb)
	}
	SortBest(out)
	return out
}

// SortBest orders by best time, then first attempt, then name.
func SortBest(best []PlayerBest) {
	sort.SliceStable(best, func(i, j int) bool {
		if best[i].BestTime != best[j].BestTime {
			return best[i].BestTime < best[j].BestTime
		}
		if best[i].FirstID != best[j].FirstID {
			return best[i].FirstID < best[j].FirstID
		}
		return best[i].Player < best[j].Player
	})
}

// Rank assigns ranks from 1 in the given order and truncates to limit.
// The input must already be sorted and hold one row per player.
func Rank(best []PlayerBest, limit int) []Entry {
	limit = ClampLimit(limit)
	if len(best) > limit {
		best = best[:limit]
	}
	entries := make([]Entry, 0, len(best))
	for i, pb := range best {
		entries = append(entries, Entry{Rank: i + 1, Player: pb.Player, BestTime: pb.BestTime})
	}
	return entries
}
