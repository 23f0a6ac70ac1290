package matching

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// minKeywordLen drops tokens too short to carry signal ("a", "of", "ML").
// Short shorthand like "ml" re-enters keyword sets through the thesaurus.
const minKeywordLen = 3

// stopWords are tokens with no matching value: English function words plus
// the filler vocabulary that dominates mentorship profiles ("looking",
// "interested", "experience", ...).
var stopWords = map[string]bool{
	"i": true, "me": true, "my": true, "myself": true, "we": true, "our": true,
	"ours": true, "you": true, "your": true, "he": true, "she": true, "it": true,
	"they": true, "them": true, "what": true, "which": true, "who": true,
	"whom": true, "this": true, "that": true, "these": true, "those": true,
	"am": true, "is": true, "are": true, "was": true, "were": true, "be": true,
	"been": true, "being": true, "have": true, "has": true, "had": true,
	"having": true, "do": true, "does": true, "did": true, "doing": true,
	"a": true, "an": true, "the": true, "and": true, "but": true, "if": true,
	"or": true, "because": true, "as": true, "until": true, "while": true,
	"of": true, "at": true, "by": true, "for": true, "with": true, "about": true,
	"against": true, "between": true, "into": true, "through": true,
	"during": true, "before": true, "after": true, "above": true, "below": true,
	"to": true, "from": true, "up": true, "down": true, "in": true, "out": true,
	"on": true, "off": true, "over": true, "under": true, "again": true,
	"further": true, "then": true, "once": true, "here": true, "there": true,
	"when": true, "where": true, "why": true, "how": true, "all": true,
	"each": true, "few": true, "more": true, "most": true, "other": true,
	"some": true, "such": true, "no": true, "nor": true, "not": true,
	"only": true, "own": true, "same": true, "so": true, "than": true,
	"too": true, "very": true, "s": true, "t": true, "can": true, "will": true,
	"just": true, "don": true, "should": true, "now": true, "would": true,
	"could": true, "also": true, "really": true, "want": true, "looking": true,
	"interested": true, "help": true, "learn": true, "like": true, "get": true,
	"im": true, "i'm": true, "ive": true, "i've": true, "currently": true,
	"working": true, "work": true, "experience": true,
}

// Extract tokenizes free text into its significant keyword set. Text is
// lowercased and split on every rune that is not a letter or digit; stop
// words and tokens shorter than minKeywordLen runes are dropped. Empty or
// all-filler text yields an empty set.
func Extract(text string) map[string]bool {
	keywords := make(map[string]bool)
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, token := range tokens {
		if utf8.RuneCountInString(token) < minKeywordLen {
			continue
		}
		if stopWords[token] {
			continue
		}
		keywords[token] = true
	}
	return keywords
}

func union(a, b map[string]bool) map[string]bool {
	merged := make(map[string]bool, len(a)+len(b))
	for term := range a {
		merged[term] = true
	}
	for term := range b {
		merged[term] = true
	}
	return merged
}

func intersect(a, b map[string]bool) map[string]bool {
	if len(b) < len(a) {
		a, b = b, a
	}
	shared := make(map[string]bool)
	for term := range a {
		if b[term] {
			shared[term] = true
		}
	}
	return shared
}

func overlaps(a, b map[string]bool) bool {
	if len(b) < len(a) {
		a, b = b, a
	}
	for term := range a {
		if b[term] {
			return true
		}
	}
	return false
}

// sortedTerms flattens a keyword set into a lexicographically ordered slice
// so that explanations come out deterministic.
func sortedTerms(set map[string]bool) []string {
	terms := make([]string, 0, len(set))
	for term := range set {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}
