// internal/workers/profile/save-mentor-profile/handler.go
package savementorprofile

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
	"github.com/redis/go-redis/v9"

	"pathmatch-workers/internal/common/logger"
	"pathmatch-workers/internal/common/validation"
	"pathmatch-workers/internal/models"
)

const (
	TaskType = "save-mentor-profile"

	mentorCachePrefix = "profile:mentor:"
)

var (
	ErrInvalidInput        = errors.New("VALIDATION_ERROR")
	ErrInvalidAvailability = errors.New("INVALID_AVAILABILITY")
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
	if err := h.validate(input); err != nil {
		return nil, err
	}

	availability := input.AvailabilityStatus
	if availability == "" {
		availability = models.AvailabilityAvailable
	}

	var exists bool
	err := h.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM mentor_profiles WHERE user_id = $1
		)`, input.UserID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("%w: profile existence check failed: %v", ErrDatabaseFailed, err)
	}

	now := time.Now().UTC().Format(time.RFC3339)

	var mentorID string
	err = h.db.QueryRowContext(ctx, `
		INSERT INTO mentor_profiles (
			id, user_id, graduating_year, info_concentration, preferred_communication,
			advising_topics, career_pursuing, experiences, bio, calendly_link,
			availability_status, ratings_feedback, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)
		ON CONFLICT (user_id) DO UPDATE SET
			graduating_year = EXCLUDED.graduating_year,
			info_concentration = EXCLUDED.info_concentration,
			preferred_communication = EXCLUDED.preferred_communication,
			advising_topics = EXCLUDED.advising_topics,
			career_pursuing = EXCLUDED.career_pursuing,
			experiences = EXCLUDED.experiences,
			bio = EXCLUDED.bio,
			calendly_link = EXCLUDED.calendly_link,
			availability_status = EXCLUDED.availability_status,
			ratings_feedback = EXCLUDED.ratings_feedback,
			updated_at = EXCLUDED.updated_at
		RETURNING id`,
		uuid.New().String(),
		input.UserID,
		input.GraduatingYear,
		input.InfoConcentration,
		models.EncodeStringList(input.PreferredCommunication),
		models.EncodeStringList(input.AdvisingTopics),
		input.CareerPursuing,
		input.Experiences,
		input.Bio,
		input.CalendlyLink,
		availability,
		input.RatingsFeedback,
		now,
	).Scan(&mentorID)
	if err != nil {
		return nil, fmt.Errorf("%w: upsert failed: %v", ErrDatabaseFailed, err)
	}

	// The compatibility workers cache profiles by mentor id; a stale entry
	// would keep serving the old profile for up to the cache TTL.
	if err := h.redis.Del(ctx, mentorCachePrefix+mentorID).Err(); err != nil {
		h.logger.Warn("cache invalidation failed", map[string]interface{}{
			"mentorId": mentorID,
			"error":    err,
		})
	}

	h.logger.Info("mentor profile saved", map[string]interface{}{
		"mentorId": mentorID,
		"userId":   input.UserID,
		"created":  !exists,
	})

	return &Output{
		MentorID: mentorID,
		Created:  !exists,
	}, nil
}

func (h *Handler) validate(input *Input) error {
	if input.UserID == "" {
		return fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	if input.GraduatingYear < 2000 || input.GraduatingYear > 2100 {
		return fmt.Errorf("%w: graduatingYear %d out of range", ErrInvalidInput, input.GraduatingYear)
	}
	if input.AvailabilityStatus != "" && !models.ValidAvailabilityStatuses[input.AvailabilityStatus] {
		return fmt.Errorf("%w: %q", ErrInvalidAvailability, input.AvailabilityStatus)
	}
	if input.CalendlyLink != "" && !validation.ValidateURL(input.CalendlyLink) {
		return fmt.Errorf("%w: calendlyLink %q is not a valid URL", ErrInvalidInput, input.CalendlyLink)
	}
	return nil
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
