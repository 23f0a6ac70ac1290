package matching

// DefaultThesaurus returns the built-in synonym table mapping the shorthand
// students actually type to its longer forms. Values may be multi-word
// phrases; those participate in keyword sets as whole strings, so they only
// ever match terms introduced by expansion, never raw extracted tokens.
func DefaultThesaurus() map[string][]string {
	return map[string][]string{
		"ml":       {"machine learning", "deep learning", "ai", "artificial intelligence"},
		"ai":       {"artificial intelligence", "machine learning", "ml", "deep learning"},
		"ux":       {"user experience", "ui", "design", "user interface", "hci"},
		"ui":       {"user interface", "ux", "design", "user experience"},
		"pm":       {"product management", "product manager", "product"},
		"swe":      {"software engineering", "software engineer", "developer", "programming"},
		"ds":       {"data science", "data scientist", "analytics", "data analysis"},
		"quant":    {"quantitative", "finance", "trading", "quantitative finance"},
		"phd":      {"doctorate", "doctoral", "research", "academia", "academic"},
		"mba":      {"business", "management", "consulting"},
		"startup":  {"entrepreneurship", "founder", "business", "venture"},
		"research": {"academia", "academic", "phd", "graduate school"},
	}
}

// Expander widens keyword sets using a thesaurus table. Expansion is
// bidirectional and single-hop: input keywords pull in their synonyms, and
// input keywords that appear as someone's synonym pull in the owning key and
// its siblings. Terms added by expansion are never expanded further.
type Expander struct {
	synonyms map[string][]string
	// reverse maps each synonym back to the keys that list it.
	reverse map[string][]string
}

// NewExpander builds an Expander over table. A nil table selects
// DefaultThesaurus. The table is retained, not copied; callers must not
// mutate it afterwards.
func NewExpander(table map[string][]string) *Expander {
	if table == nil {
		table = DefaultThesaurus()
	}
	reverse := make(map[string][]string)
	for key, synonyms := range table {
		for _, synonym := range synonyms {
			reverse[synonym] = append(reverse[synonym], key)
		}
	}
	return &Expander{synonyms: table, reverse: reverse}
}

// Expand returns a new set holding every input keyword plus its single-hop
// expansions. The input set is never mutated, and the output is always a
// superset of the input.
func (e *Expander) Expand(keywords map[string]bool) map[string]bool {
	expanded := make(map[string]bool, len(keywords)*2)
	for keyword := range keywords {
		expanded[keyword] = true
	}
	for keyword := range keywords {
		for _, synonym := range e.synonyms[keyword] {
			expanded[synonym] = true
		}
		for _, key := range e.reverse[keyword] {
			expanded[key] = true
			for _, sibling := range e.synonyms[key] {
				expanded[sibling] = true
			}
		}
	}
	return expanded
}
