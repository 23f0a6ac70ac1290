package matching

import (
	"math"
	"strings"
)

// Factor weights. The four factors sum to at most 100, so the final clamp
// only guards against drift if weights are ever retuned.
const (
	topicsWeight            = 30.0
	careerExactWeight       = 20.0
	careerRelatedWeight     = 15.0
	concentrationWeight     = 10.0
	concentrationOpenCredit = 5.0
	semanticCap             = 40.0

	// DefaultSemanticMultiplier scales the semantic overlap ratio before
	// semanticCap is applied.
	DefaultSemanticMultiplier = 60.0
)

// undecidedConcentration is the intake form's "I don't know" option. Mentees
// who picked it get partial concentration credit against every mentor.
const undecidedConcentration = "i don't know"

// Quality bands, assigned from the clamped total score.
const (
	QualityExcellent = "Excellent Match"
	QualityGood      = "Good Match"
	QualityModerate  = "Moderate Match"
	QualityLow       = "Low Match"
)

// GeneralReason is returned when no factor produced an explanation.
const GeneralReason = "General mentorship available"

// genericTerms are too broad to justify a "Shared interests" explanation.
// They still count toward the semantic score.
var genericTerms = map[string]bool{
	"data":        true,
	"science":     true,
	"engineering": true,
	"technology":  true,
	"tech":        true,
}

// Mentee carries the profile fields compatibility scoring reads. Nil slices
// and empty strings are valid and simply earn no points.
type Mentee struct {
	AdvisingNeeds       []string
	CareersInterestedIn []string
	InfoConcentration   string
	Biography           string
	FieldInterests      []string
}

// Mentor carries the mentor side of a comparison. ID, Name and CalendlyLink
// are not scored; they ride along so ranked results identify the mentor.
type Mentor struct {
	ID                 string
	Name               string
	AdvisingTopics     []string
	CareerPursuing     string
	InfoConcentration  string
	Biography          string
	Experiences        string
	CalendlyLink       string
	AvailabilityStatus string
}

// Breakdown itemizes factor contributions, each rounded to one decimal.
type Breakdown struct {
	AdvisingTopics float64 `json:"advising_topics"`
	CareerPath     float64 `json:"career_path"`
	Concentration  float64 `json:"concentration"`
	Semantic       float64 `json:"semantic"`
}

// Result is one scored mentee/mentor comparison.
type Result struct {
	Score     float64   `json:"score"`
	Quality   string    `json:"quality"`
	Breakdown Breakdown `json:"breakdown"`
	Reasons   []string  `json:"reasons"`
}

// Config tunes a Scorer. The zero value selects the built-in thesaurus and
// DefaultSemanticMultiplier.
type Config struct {
	Thesaurus          map[string][]string
	SemanticMultiplier float64
}

// Scorer computes mentee/mentor compatibility. It holds no per-request state
// and is safe for concurrent use.
type Scorer struct {
	expander   *Expander
	multiplier float64
}

// NewScorer builds a Scorer from cfg.
func NewScorer(cfg Config) *Scorer {
	multiplier := cfg.SemanticMultiplier
	if multiplier <= 0 {
		multiplier = DefaultSemanticMultiplier
	}
	return &Scorer{
		expander:   NewExpander(cfg.Thesaurus),
		multiplier: multiplier,
	}
}

// Score compares one mentee against one mentor and returns the compatibility
// result. Scoring is deterministic: the same profiles always produce the
// same result. Missing or malformed fields cost points, never errors.
func (s *Scorer) Score(mentee Mentee, mentor Mentor) Result {
	reasons := make([]string, 0, 4)

	topicScore, reason := scoreTopics(mentee.AdvisingNeeds, mentor.AdvisingTopics)
	if reason != "" {
		reasons = append(reasons, reason)
	}

	careerScore, reason := scoreCareer(mentee.CareersInterestedIn, mentor.CareerPursuing)
	if reason != "" {
		reasons = append(reasons, reason)
	}

	concentrationScore, reason := scoreConcentration(mentee.InfoConcentration, mentor.InfoConcentration)
	if reason != "" {
		reasons = append(reasons, reason)
	}

	semanticScore, reason := s.scoreSemantic(mentee, mentor)
	if reason != "" {
		reasons = append(reasons, reason)
	}

	total := topicScore + careerScore + concentrationScore + semanticScore
	final := math.Max(0, math.Min(100, total))

	var quality string
	switch {
	case final >= 80:
		quality = QualityExcellent
	case final >= 60:
		quality = QualityGood
	case final >= 40:
		quality = QualityModerate
	default:
		quality = QualityLow
	}

	if len(reasons) == 0 {
		reasons = append(reasons, GeneralReason)
	}

	return Result{
		Score:   round1(final),
		Quality: quality,
		Breakdown: Breakdown{
			AdvisingTopics: round1(topicScore),
			CareerPath:     round1(careerScore),
			Concentration:  round1(concentrationScore),
			Semantic:       round1(semanticScore),
		},
		Reasons: reasons,
	}
}

// scoreTopics awards up to topicsWeight for overlap between what the mentee
// wants advice on and what the mentor offers, proportional to how many of
// the mentee's needs are covered.
func scoreTopics(needs, topics []string) (float64, string) {
	if len(needs) == 0 || len(topics) == 0 {
		return 0, ""
	}
	needSet := normalizeTerms(needs)
	matched := intersect(needSet, normalizeTerms(topics))
	score := float64(len(matched)) / float64(len(needSet)) * topicsWeight
	if len(matched) == 0 {
		return score, ""
	}
	return score, "Can help with: " + strings.Join(sortedTerms(matched), ", ")
}

// scoreCareer awards careerExactWeight when the mentor's pursued career
// matches one of the mentee's interests verbatim, or careerRelatedWeight on
// the first keyword-level overlap.
func scoreCareer(careers []string, pursuing string) (float64, string) {
	if len(careers) == 0 || pursuing == "" {
		return 0, ""
	}
	target := strings.ToLower(strings.TrimSpace(pursuing))
	lowered := make([]string, len(careers))
	for i, career := range careers {
		lowered[i] = strings.ToLower(strings.TrimSpace(career))
	}
	for _, career := range lowered {
		if career == target {
			return careerExactWeight, "Pursuing career in " + pursuing
		}
	}
	targetWords := Extract(target)
	for _, career := range lowered {
		if overlaps(Extract(career), targetWords) {
			return careerRelatedWeight, "Related career path: " + pursuing
		}
	}
	return 0, ""
}

// scoreConcentration awards concentrationWeight for the same concentration.
// A mentee who answered "I don't know" gets concentrationOpenCredit against
// everyone, and no explanation either way, since "same concentration: I
// don't know" reads as nonsense.
func scoreConcentration(menteeConcentration, mentorConcentration string) (float64, string) {
	if menteeConcentration == "" || mentorConcentration == "" {
		return 0, ""
	}
	mentee := strings.ToLower(strings.TrimSpace(menteeConcentration))
	mentor := strings.ToLower(strings.TrimSpace(mentorConcentration))
	switch {
	case mentee == mentor:
		if mentee == undecidedConcentration {
			return concentrationWeight, ""
		}
		return concentrationWeight, "Same concentration: " + mentorConcentration
	case mentee == undecidedConcentration:
		return concentrationOpenCredit, ""
	}
	return 0, ""
}

// scoreSemantic awards up to semanticCap for keyword overlap between the
// expanded interest vocabularies of both profiles. The ratio is taken
// against the mentee's vocabulary, so a chatty mentor biography cannot
// dilute the score.
func (s *Scorer) scoreSemantic(mentee Mentee, mentor Mentor) (float64, string) {
	menteeTerms := s.expander.Expand(union(
		Extract(mentee.Biography),
		Extract(strings.Join(mentee.FieldInterests, " ")),
	))

	mentorBase := union(Extract(mentor.Biography), Extract(mentor.Experiences))
	if mentor.CareerPursuing != "" {
		mentorBase = union(mentorBase, Extract(mentor.CareerPursuing))
	}
	mentorTerms := s.expander.Expand(mentorBase)

	if len(menteeTerms) == 0 || len(mentorTerms) == 0 {
		return 0, ""
	}
	overlap := intersect(menteeTerms, mentorTerms)
	if len(overlap) == 0 {
		return 0, ""
	}

	ratio := float64(len(overlap)) / float64(max(len(menteeTerms), 1))
	score := math.Min(ratio*s.multiplier, semanticCap)

	shared := make([]string, 0, len(overlap))
	for _, term := range sortedTerms(overlap) {
		if genericTerms[term] {
			continue
		}
		shared = append(shared, term)
		if len(shared) == 3 {
			break
		}
	}
	if len(shared) == 0 {
		return score, ""
	}
	return score, "Shared interests: " + strings.Join(shared, ", ")
}

// normalizeTerms lowercases and trims each entry into a set. Duplicates
// collapse, which also fixes the denominator for scoreTopics.
func normalizeTerms(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[strings.ToLower(strings.TrimSpace(item))] = true
	}
	return set
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
