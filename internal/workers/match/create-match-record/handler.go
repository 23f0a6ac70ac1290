// internal/workers/match/create-match-record/handler.go
package creatematchrecord

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	"pathmatch-workers/internal/common/logger"
	"pathmatch-workers/internal/common/metrics"
	"pathmatch-workers/internal/models"
)

const (
	TaskType = "create-match-record"
)

var (
	ErrInvalidInput   = errors.New("VALIDATION_ERROR")
	ErrDuplicateMatch = errors.New("DUPLICATE_MATCH")
	ErrDatabaseFailed = errors.New("DATABASE_ERROR")
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
		if errors.Is(err, ErrDatabaseFailed) {
			errorCode = "DATABASE_ERROR"
			retries = 3
		} else if errors.Is(err, ErrDuplicateMatch) {
			errorCode = "DUPLICATE_MATCH"
		} else if errors.Is(err, ErrInvalidInput) {
			errorCode = "VALIDATION_ERROR"
		}
		h.failJob(client, job, errorCode, err.Error(), retries)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.MentorID == "" || input.MenteeID == "" {
		return nil, fmt.Errorf("%w: mentorId and menteeId are required", ErrInvalidInput)
	}

	// A mentee asking for the same mentor twice is a duplicate, not a new
	// match. The original API answered 409 here.
	var exists bool
	err := h.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM matches
			WHERE mentor_id = $1 AND mentee_id = $2
		)`, input.MentorID, input.MenteeID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("%w: duplicate check failed: %v", ErrDatabaseFailed, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: match already exists for mentor %s and mentee %s",
			ErrDuplicateMatch, input.MentorID, input.MenteeID)
	}

	matchID := uuid.New().String()
	createdAt := time.Now().UTC().Format(time.RFC3339)

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO matches (
			id, mentor_id, mentee_id, compatibility_score,
			status, meeting_scheduled, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`,
		matchID,
		input.MentorID,
		input.MenteeID,
		input.CompatibilityScore,
		models.MatchStatusPending,
		false,
		createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: insert failed: %v", ErrDatabaseFailed, err)
	}

	metrics.MatchesCreated.Inc()

	// Audit entry is best effort; the match exists either way.
	auditDetailsJSON, err := json.Marshal(map[string]interface{}{
		"mentorId":           input.MentorID,
		"menteeId":           input.MenteeID,
		"compatibilityScore": input.CompatibilityScore,
	})
	if err != nil {
		h.logger.Warn("failed to marshal audit log details", map[string]interface{}{
			"error": err,
		})
		auditDetailsJSON = []byte("{}")
	}

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO audit_log (event_type, resource_type, resource_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		"match_created",
		"match",
		matchID,
		auditDetailsJSON,
		createdAt,
	)
	if err != nil {
		h.logger.Warn("audit log insert failed", map[string]interface{}{
			"error":   err,
			"matchId": matchID,
		})
	}

	h.logger.Info("match record created", map[string]interface{}{
		"matchId":            matchID,
		"mentorId":           input.MentorID,
		"menteeId":           input.MenteeID,
		"compatibilityScore": input.CompatibilityScore,
	})

	return &Output{
		MatchID:   matchID,
		Status:    models.MatchStatusPending,
		CreatedAt: createdAt,
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
