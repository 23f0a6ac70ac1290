// internal/workers/match/update-match-status/handler.go
package updatematchstatus

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"pathmatch-workers/internal/common/logger"
	"pathmatch-workers/internal/models"
)

const (
	TaskType = "update-match-status"
)

var (
	ErrInvalidInput       = errors.New("VALIDATION_ERROR")
	ErrInvalidMatchStatus = errors.New("INVALID_MATCH_STATUS")
	ErrMatchNotFound      = errors.New("MATCH_NOT_FOUND")
	ErrDatabaseFailed     = errors.New("DATABASE_ERROR")
)

type Handler struct {
	db     *sql.DB
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	return &Handler{
		db:     db,
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

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		errorCode := "UNKNOWN_ERROR"
		retries := int32(0)
		switch {
		case errors.Is(err, ErrInvalidInput):
			errorCode = "VALIDATION_ERROR"
		case errors.Is(err, ErrInvalidMatchStatus):
			errorCode = "INVALID_MATCH_STATUS"
		case errors.Is(err, ErrMatchNotFound):
			errorCode = "MATCH_NOT_FOUND"
		case errors.Is(err, ErrDatabaseFailed):
			errorCode = "DATABASE_ERROR"
			retries = 3
		}
		h.failJob(client, job, errorCode, err.Error(), retries)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.MatchID == "" {
		return nil, fmt.Errorf("%w: matchId is required", ErrInvalidInput)
	}
	if !models.ValidMatchStatuses[input.Status] {
		return nil, fmt.Errorf("%w: %q is not one of pending, confirmed, completed, cancelled",
			ErrInvalidMatchStatus, input.Status)
	}

	updatedAt := time.Now().UTC().Format(time.RFC3339)

	var mentorID string
	err := h.db.QueryRowContext(ctx, `
		UPDATE matches
		SET status = $2, updated_at = $3
		WHERE id = $1
		RETURNING mentor_id`,
		input.MatchID, input.Status, updatedAt).Scan(&mentorID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: match %s", ErrMatchNotFound, input.MatchID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: update failed: %v", ErrDatabaseFailed, err)
	}

	output := &Output{
		MatchID:   input.MatchID,
		Status:    input.Status,
		UpdatedAt: updatedAt,
	}

	// Confirmation is when the mentee gets the mentor's scheduling link. The
	// link living only on the mentor profile keeps it current.
	if input.Status == models.MatchStatusConfirmed {
		var calendlyLink string
		err := h.db.QueryRowContext(ctx, `
			SELECT calendly_link FROM mentor_profiles WHERE id = $1`,
			mentorID).Scan(&calendlyLink)
		if err != nil {
			h.logger.Warn("scheduling link lookup failed", map[string]interface{}{
				"matchId":  input.MatchID,
				"mentorId": mentorID,
				"error":    err,
			})
		} else {
			output.SchedulingURL = calendlyLink
		}
	}

	h.logger.Info("match status updated", map[string]interface{}{
		"matchId": input.MatchID,
		"status":  input.Status,
	})

	return output, nil
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
