// internal/workers/data-access/search-mentors/handler.go
package searchmentors

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"pathmatch-workers/internal/common/logger"
)

const (
	TaskType = "search-mentors"

	// maxSize caps a single search page regardless of what the caller asks.
	maxSize = 50
)

var (
	ErrInvalidInput = errors.New("VALIDATION_ERROR")
	ErrSearchFailed = errors.New("SEARCH_ERROR")
)

type Handler struct {
	config *Config
	es     *elasticsearch.Client
	logger logger.Logger
}

func NewHandler(config *Config, es *elasticsearch.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		es:     es,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err), 0)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		errorCode := "UNKNOWN_ERROR"
		retries := int32(0)
		switch {
		case errors.Is(err, ErrInvalidInput):
			errorCode = "VALIDATION_ERROR"
		case errors.Is(err, ErrSearchFailed):
			errorCode = "SEARCH_ERROR"
			retries = 3
		}
		h.failJob(client, job, errorCode, err.Error(), retries)
		return
	}

	h.completeJob(client, job, output)
}

// esSearchResponse is the slice of the search reply this worker reads.
type esSearchResponse struct {
	Took int64 `json:"took"`
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		MaxScore float64 `json:"max_score"`
		Hits     []struct {
			Score  float64 `json:"_score"`
			Source struct {
				ID            string   `json:"id"`
				Name          string   `json:"name"`
				Concentration string   `json:"concentration"`
				Career        string   `json:"career"`
				Topics        []string `json:"topics"`
				Availability  string   `json:"availability"`
			} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.Query == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidInput)
	}

	size := input.Size
	if size <= 0 {
		size = h.config.DefaultSize
	}
	if size > maxSize {
		size = maxSize
	}

	body, err := json.Marshal(h.buildQuery(input))
	if err != nil {
		return nil, fmt.Errorf("%w: marshal query: %v", ErrSearchFailed, err)
	}

	req := esapi.SearchRequest{
		Index: []string{h.config.Index},
		Body:  bytes.NewReader(body),
		Size:  &size,
	}
	res, err := req.Do(ctx, h.es)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("%w: %s", ErrSearchFailed, res.String())
	}

	var parsed esSearchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrSearchFailed, err)
	}

	hits := make([]Hit, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		hits = append(hits, Hit{
			MentorID:      hit.Source.ID,
			Name:          hit.Source.Name,
			Concentration: hit.Source.Concentration,
			Career:        hit.Source.Career,
			Topics:        hit.Source.Topics,
			Availability:  hit.Source.Availability,
			Score:         hit.Score,
		})
	}

	h.logger.Info("mentor search executed", map[string]interface{}{
		"query":     input.Query,
		"totalHits": parsed.Hits.Total.Value,
		"returned":  len(hits),
		"took":      parsed.Took,
	})

	return &Output{
		Hits:      hits,
		TotalHits: parsed.Hits.Total.Value,
		MaxScore:  parsed.Hits.MaxScore,
		Took:      parsed.Took,
	}, nil
}

// buildQuery assembles the mentor directory search: free text ranked across
// the document fields, with name weighted up, optionally narrowed to one
// availability state.
func (h *Handler) buildQuery(input *Input) map[string]interface{} {
	boolQuery := map[string]interface{}{
		"must": []interface{}{
			map[string]interface{}{
				"multi_match": map[string]interface{}{
					"query":  input.Query,
					"fields": []string{"name^2", "career", "concentration", "keywords"},
					"type":   "best_fields",
				},
			},
		},
	}

	if input.Availability != "" {
		boolQuery["filter"] = []interface{}{
			map[string]interface{}{
				"term": map[string]interface{}{"availability": input.Availability},
			},
		}
	}

	return map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
	}
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string, _ int32) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
