// internal/workers/data-access/search-mentors/handler_test.go
package searchmentors

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathmatch-workers/internal/common/logger"
)

// ==========================
// Test Setup
// ==========================

type capturedRequest struct {
	Path  string
	Query url.Values
	Body  []byte
}

func newTestHandler(t *testing.T, esStatus int, esBody string) (*Handler, *capturedRequest) {
	t.Helper()

	captured := &capturedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.Path = r.URL.Path
		captured.Query = r.URL.Query()
		captured.Body, _ = io.ReadAll(r.Body)

		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(esStatus)
		w.Write([]byte(esBody))
	}))
	t.Cleanup(server.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{server.URL}})
	require.NoError(t, err)

	handler := NewHandler(LoadConfig(), es, logger.NewTestLogger(t))
	return handler, captured
}

const twoHitResponse = `{
	"took": 4,
	"hits": {
		"total": {"value": 2},
		"max_score": 3.2,
		"hits": [
			{
				"_score": 3.2,
				"_source": {
					"id": "mentor-1",
					"name": "Chelsea Park",
					"concentration": "Data Science",
					"career": "Data Scientist",
					"topics": ["career advice"],
					"availability": "available"
				}
			},
			{
				"_score": 1.4,
				"_source": {
					"id": "mentor-2",
					"name": "Max Osei",
					"concentration": "Information Systems",
					"career": "Product Manager",
					"topics": ["internships"],
					"availability": "dnd"
				}
			}
		]
	}
}`

const emptyResponse = `{
	"took": 1,
	"hits": {"total": {"value": 0}, "max_score": null, "hits": []}
}`

// ==========================
// Search Tests
// ==========================

func TestExecute_ReturnsRankedHits(t *testing.T) {
	handler, captured := newTestHandler(t, http.StatusOK, twoHitResponse)

	output, err := handler.Execute(context.Background(), &Input{Query: "data science"})

	require.NoError(t, err)
	assert.Equal(t, "/mentors/_search", captured.Path)
	assert.Equal(t, int64(2), output.TotalHits)
	assert.Equal(t, 3.2, output.MaxScore)
	assert.Equal(t, int64(4), output.Took)

	require.Len(t, output.Hits, 2)
	assert.Equal(t, "mentor-1", output.Hits[0].MentorID)
	assert.Equal(t, "Chelsea Park", output.Hits[0].Name)
	assert.Equal(t, 3.2, output.Hits[0].Score)
	assert.Equal(t, []string{"career advice"}, output.Hits[0].Topics)
	assert.Equal(t, "mentor-2", output.Hits[1].MentorID)
	assert.Equal(t, 1.4, output.Hits[1].Score)
}

func TestExecute_BuildsMultiMatchQuery(t *testing.T) {
	handler, captured := newTestHandler(t, http.StatusOK, emptyResponse)

	_, err := handler.Execute(context.Background(), &Input{Query: "machine learning"})
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(captured.Body, &body))

	boolQuery := body["query"].(map[string]interface{})["bool"].(map[string]interface{})
	must := boolQuery["must"].([]interface{})
	multiMatch := must[0].(map[string]interface{})["multi_match"].(map[string]interface{})

	assert.Equal(t, "machine learning", multiMatch["query"])
	assert.Equal(t,
		[]interface{}{"name^2", "career", "concentration", "keywords"},
		multiMatch["fields"])

	// No availability was asked for, so no filter clause.
	_, hasFilter := boolQuery["filter"]
	assert.False(t, hasFilter)
}

func TestExecute_AvailabilityFilter(t *testing.T) {
	handler, captured := newTestHandler(t, http.StatusOK, emptyResponse)

	_, err := handler.Execute(context.Background(), &Input{
		Query:        "design",
		Availability: "available",
	})
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(captured.Body, &body))

	boolQuery := body["query"].(map[string]interface{})["bool"].(map[string]interface{})
	filter := boolQuery["filter"].([]interface{})
	term := filter[0].(map[string]interface{})["term"].(map[string]interface{})

	assert.Equal(t, "available", term["availability"])
}

func TestExecute_SizeHandling(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		wantSize string
	}{
		{"default when unset", 0, "10"},
		{"explicit size", 25, "25"},
		{"capped at fifty", 500, "50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, captured := newTestHandler(t, http.StatusOK, emptyResponse)

			_, err := handler.Execute(context.Background(), &Input{
				Query: "design",
				Size:  tt.size,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.wantSize, captured.Query.Get("size"))
		})
	}
}

func TestExecute_NoHits(t *testing.T) {
	handler, _ := newTestHandler(t, http.StatusOK, emptyResponse)

	output, err := handler.Execute(context.Background(), &Input{Query: "underwater basket weaving"})

	require.NoError(t, err)
	assert.NotNil(t, output.Hits)
	assert.Empty(t, output.Hits)
	assert.Equal(t, int64(0), output.TotalHits)
	assert.Equal(t, 0.0, output.MaxScore)
}

// ==========================
// Validation and Error Tests
// ==========================

func TestExecute_RequiresQuery(t *testing.T) {
	handler, _ := newTestHandler(t, http.StatusOK, emptyResponse)

	_, err := handler.Execute(context.Background(), &Input{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_SearchFailureIsRetryable(t *testing.T) {
	handler, _ := newTestHandler(t, http.StatusServiceUnavailable,
		`{"error":{"type":"search_phase_execution_exception"}}`)

	_, err := handler.Execute(context.Background(), &Input{Query: "design"})
	assert.ErrorIs(t, err, ErrSearchFailed)
}
