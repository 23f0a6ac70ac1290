// internal/workers/data-access/index-mentor-search/handler.go
package indexmentorsearch

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"pathmatch-workers/internal/common/logger"
	"pathmatch-workers/internal/matching"
	"pathmatch-workers/internal/models"
)

const (
	TaskType = "index-mentor-search"
)

var (
	ErrInvalidInput   = errors.New("VALIDATION_ERROR")
	ErrMentorNotFound = errors.New("MENTOR_NOT_FOUND")
	ErrDatabaseFailed = errors.New("DATABASE_ERROR")
	ErrIndexFailed    = errors.New("INDEX_ERROR")
)

type Handler struct {
	config   *Config
	db       *sql.DB
	es       *elasticsearch.Client
	expander *matching.Expander
	logger   logger.Logger
}

func NewHandler(config *Config, db *sql.DB, es *elasticsearch.Client, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		db:       db,
		es:       es,
		expander: matching.NewExpander(config.Thesaurus),
		logger:   log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		case errors.Is(err, ErrMentorNotFound):
			errorCode = "MENTOR_NOT_FOUND"
		case errors.Is(err, ErrDatabaseFailed):
			errorCode = "DATABASE_ERROR"
			retries = 3
		case errors.Is(err, ErrIndexFailed):
			errorCode = "INDEX_ERROR"
			retries = 3
		}
		h.failJob(client, job, errorCode, err.Error(), retries)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.MentorID == "" {
		return nil, fmt.Errorf("%w: mentorId is required", ErrInvalidInput)
	}

	var (
		id, name, infoConcentration string
		advisingTopics              string
		careerPursuing, experiences string
		bio, availabilityStatus     string
	)
	err := h.db.QueryRowContext(ctx, `
		SELECT p.id, u.name, p.info_concentration, p.advising_topics,
		       p.career_pursuing, p.experiences, p.bio, p.availability_status
		FROM mentor_profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.id = $1`,
		input.MentorID).Scan(
		&id, &name, &infoConcentration, &advisingTopics,
		&careerPursuing, &experiences, &bio, &availabilityStatus,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: mentor %s", ErrMentorNotFound, input.MentorID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: mentor lookup failed: %v", ErrDatabaseFailed, err)
	}

	keywords := h.searchKeywords(bio, experiences, careerPursuing)

	doc := map[string]interface{}{
		"id":            id,
		"name":          name,
		"concentration": infoConcentration,
		"career":        careerPursuing,
		"topics":        models.DecodeStringList(advisingTopics),
		"availability":  availabilityStatus,
		"keywords":      keywords,
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal document: %v", ErrIndexFailed, err)
	}

	req := esapi.IndexRequest{
		Index:      h.config.Index,
		DocumentID: input.MentorID,
		Body:       bytes.NewReader(body),
		Refresh:    "true",
	}
	res, err := req.Do(ctx, h.es)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("%w: %s", ErrIndexFailed, res.String())
	}

	h.logger.Info("mentor indexed", map[string]interface{}{
		"mentorId":     input.MentorID,
		"index":        h.config.Index,
		"keywordCount": len(keywords),
	})

	return &Output{
		MentorID:     input.MentorID,
		Indexed:      true,
		KeywordCount: len(keywords),
	}, nil
}

// searchKeywords runs the free-text profile fields through the matching
// engine's extraction and synonym expansion, so searches for "phd" find the
// mentor whose bio only says "research".
func (h *Handler) searchKeywords(parts ...string) []string {
	set := h.expander.Expand(matching.Extract(strings.Join(parts, " ")))

	keywords := make([]string, 0, len(set))
	for term := range set {
		keywords = append(keywords, term)
	}
	sort.Strings(keywords)
	return keywords
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
