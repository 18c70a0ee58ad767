package screen

import "sort"

// Leaderboard returns the top n rows by call price, descending. The sort
// is stable, so ties keep their universe order. The input slice is not
// mutated.
func Leaderboard(rows []Row, n int) []Row {
	out := make([]Row, len(rows))
	copy(out, rows)

	sort.SliceStable(out, func(i, j int) bool { return out[i].CallPrice > out[j].CallPrice })

	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
