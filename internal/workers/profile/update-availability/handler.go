// internal/workers/profile/update-availability/handler.go
package updateavailability

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"

	"pathmatch-workers/internal/common/logger"
	"pathmatch-workers/internal/models"
)

const (
	TaskType = "update-availability"

	mentorCachePrefix = "profile:mentor:"
)

var (
	ErrInvalidInput        = errors.New("VALIDATION_ERROR")
	ErrInvalidAvailability = errors.New("INVALID_AVAILABILITY")
	ErrMentorNotFound      = errors.New("MENTOR_NOT_FOUND")
	ErrDatabaseFailed      = errors.New("DATABASE_ERROR")
)

type Handler struct {
	config *Config
	db     *sql.DB
	redis  *redis.Client
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, redisClient *redis.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
		redis:  redisClient,
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
		case errors.Is(err, ErrInvalidAvailability):
			errorCode = "INVALID_AVAILABILITY"
		case errors.Is(err, ErrMentorNotFound):
			errorCode = "MENTOR_NOT_FOUND"
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
	if input.MentorID == "" {
		return nil, fmt.Errorf("%w: mentorId is required", ErrInvalidInput)
	}
	if !models.ValidAvailabilityStatuses[input.AvailabilityStatus] {
		return nil, fmt.Errorf("%w: %q is not one of available, dnd, unavailable",
			ErrInvalidAvailability, input.AvailabilityStatus)
	}

	updatedAt := time.Now().UTC().Format(time.RFC3339)

	result, err := h.db.ExecContext(ctx, `
		UPDATE mentor_profiles
		SET availability_status = $2, updated_at = $3
		WHERE id = $1`,
		input.MentorID, input.AvailabilityStatus, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: update failed: %v", ErrDatabaseFailed, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: rows affected: %v", ErrDatabaseFailed, err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: mentor %s", ErrMentorNotFound, input.MentorID)
	}

	if err := h.redis.Del(ctx, mentorCachePrefix+input.MentorID).Err(); err != nil {
		h.logger.Warn("cache invalidation failed", map[string]interface{}{
			"mentorId": input.MentorID,
			"error":    err,
		})
	}

	h.logger.Info("availability updated", map[string]interface{}{
		"mentorId":           input.MentorID,
		"availabilityStatus": input.AvailabilityStatus,
	})

	return &Output{
		MentorID:           input.MentorID,
		AvailabilityStatus: input.AvailabilityStatus,
		UpdatedAt:          updatedAt,
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
