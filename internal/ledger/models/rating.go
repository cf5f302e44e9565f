package models

// RatingAggregate maintains a running integer average of 1-10 scores.
//
// # Invariant
//
// Average == Cumulative / Count (integer floor) whenever Count > 0. Apply is
// the only mutation path, so the invariant holds after every rating write.
type RatingAggregate struct {
	Cumulative int64
	Count      int64
	Average    int64
}

// RatingMin and RatingMax bound every score accepted by the ledger.
const (
	RatingMin = 1
	RatingMax = 10
)

// ValidRating reports whether the score is inside the accepted range.
func ValidRating(value int64) bool {
	return value >= RatingMin && value <= RatingMax
}

// Apply records a score, replacing any prior score from the same rater.
// A first-time rating increments Count; a re-rating adjusts the cumulative
// by the delta between the new and the previous value.
func (a *RatingAggregate) Apply(previous, value int64, first bool) {
	if first {
		a.Count++
	}
	a.Cumulative += value - previous
	a.Average = a.Cumulative / a.Count
}
