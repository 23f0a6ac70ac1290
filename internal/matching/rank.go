package matching

import "sort"

// DefaultLimit caps ranked results when callers pass no explicit limit.
const DefaultLimit = 10

// AvailabilityAvailable is the only availability status eligible for
// ranking. Anything else, including unknown values, is treated as
// unavailable rather than rejected.
const AvailabilityAvailable = "available"

// RankedMentor pairs a mentor with their compatibility result.
type RankedMentor struct {
	Mentor Mentor
	Result Result
}

// TopMatches scores every available mentor against the mentee and returns
// the best limit results, highest score first. Equal scores keep their input
// order. A non-positive limit means DefaultLimit. Neither input is mutated.
func (s *Scorer) TopMatches(mentee Mentee, mentors []Mentor, limit int) []RankedMentor {
	if limit <= 0 {
		limit = DefaultLimit
	}
	ranked := make([]RankedMentor, 0, len(mentors))
	for _, mentor := range mentors {
		if mentor.AvailabilityStatus != AvailabilityAvailable {
			continue
		}
		ranked = append(ranked, RankedMentor{Mentor: mentor, Result: s.Score(mentee, mentor)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Result.Score > ranked[j].Result.Score
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
