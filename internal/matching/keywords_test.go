package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "empty text",
			text: "",
			want: []string{},
		},
		{
			name: "whitespace only",
			text: "   \t\n  ",
			want: []string{},
		},
		{
			name: "stop words only",
			text: "I am really looking for some help with my work",
			want: []string{},
		},
		{
			name: "lowercases tokens",
			text: "Machine LEARNING Systems",
			want: []string{"machine", "learning", "systems"},
		},
		{
			name: "splits on punctuation",
			text: "cutting-edge, production-grade systems!",
			want: []string{"cutting", "edge", "production", "grade", "systems"},
		},
		{
			name: "drops short tokens",
			text: "ml and ai at f8",
			want: []string{},
		},
		{
			name: "keeps numeric tokens of three or more runes",
			text: "Fortune 500 at 42",
			want: []string{"fortune", "500"},
		},
		{
			name: "contractions collapse into stop words",
			text: "don't can't won't",
			want: []string{"won"},
		},
		{
			name: "filler vocabulary is dropped",
			text: "currently working on interesting problems, interested in distributed systems",
			want: []string{"interesting", "problems", "distributed", "systems"},
		},
		{
			name: "accented tokens count runes not bytes",
			text: "my résumé and café",
			want: []string{"résumé", "café"},
		},
		{
			name: "deduplicates repeated tokens",
			text: "design design design",
			want: []string{"design"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			assert.Len(t, got, len(tt.want))
			for _, keyword := range tt.want {
				assert.True(t, got[keyword], "expected keyword %q in %v", keyword, got)
			}
		})
	}
}

func TestExtractDeterministic(t *testing.T) {
	text := "Data scientist specializing in machine learning and NLP research"
	first := Extract(text)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Extract(text))
	}
}

func TestUnion(t *testing.T) {
	a := map[string]bool{"design": true, "research": true}
	b := map[string]bool{"research": true, "systems": true}

	merged := union(a, b)

	assert.Len(t, merged, 3)
	assert.True(t, merged["design"])
	assert.True(t, merged["research"])
	assert.True(t, merged["systems"])

	// Inputs stay untouched.
	assert.Len(t, a, 2)
	assert.Len(t, b, 2)
}

func TestIntersect(t *testing.T) {
	a := map[string]bool{"design": true, "research": true, "systems": true}
	b := map[string]bool{"research": true, "systems": true, "figma": true}

	shared := intersect(a, b)

	assert.Len(t, shared, 2)
	assert.True(t, shared["research"])
	assert.True(t, shared["systems"])

	assert.Empty(t, intersect(a, map[string]bool{}))
	assert.Empty(t, intersect(map[string]bool{}, b))
}

func TestOverlaps(t *testing.T) {
	a := map[string]bool{"design": true}

	assert.True(t, overlaps(a, map[string]bool{"design": true, "figma": true}))
	assert.False(t, overlaps(a, map[string]bool{"figma": true}))
	assert.False(t, overlaps(a, map[string]bool{}))
	assert.False(t, overlaps(map[string]bool{}, map[string]bool{}))
}

func TestSortedTerms(t *testing.T) {
	set := map[string]bool{"venture": true, "academia": true, "machine learning": true}

	assert.Equal(t, []string{"academia", "machine learning", "venture"}, sortedTerms(set))
	assert.Equal(t, []string{}, sortedTerms(map[string]bool{}))
}
