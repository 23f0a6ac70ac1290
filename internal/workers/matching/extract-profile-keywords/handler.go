// internal/workers/matching/extract-profile-keywords/handler.go
package extractprofilekeywords

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"pathmatch-workers/internal/common/logger"
	"pathmatch-workers/internal/matching"
)

const (
	TaskType = "extract-profile-keywords"
)

type Handler struct {
	config   *Config
	expander *matching.Expander
	logger   logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
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

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, "UNKNOWN_ERROR", err.Error(), 0)
		return
	}

	h.completeJob(client, job, output)
}

// execute extracts the keyword set of the text. Empty text yields an empty
// keyword list, not an error, so indexing flows can pass profiles with blank
// biographies straight through.
func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	base := matching.Extract(input.Text)

	keywords := base
	if input.Expand == nil || *input.Expand {
		keywords = h.expander.Expand(base)
	}

	sorted := make([]string, 0, len(keywords))
	for term := range keywords {
		sorted = append(sorted, term)
	}
	sort.Strings(sorted)

	h.logger.Info("keywords extracted", map[string]interface{}{
		"baseCount":     len(base),
		"expandedCount": len(sorted),
	})

	return &Output{
		Keywords:      sorted,
		BaseCount:     len(base),
		ExpandedCount: len(sorted),
	}, nil
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
