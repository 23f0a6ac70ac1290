// internal/workers/matching/calculate-compatibility/handler.go
package calculatecompatibility

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
	"pathmatch-workers/internal/common/metrics"
	"pathmatch-workers/internal/matching"
	"pathmatch-workers/internal/models"
)

const (
	TaskType = "calculate-compatibility"

	menteeCachePrefix = "profile:mentee:"
	mentorCachePrefix = "profile:mentor:"
)

var (
	ErrInvalidInput    = errors.New("VALIDATION_ERROR")
	ErrProfileNotFound = errors.New("PROFILE_NOT_FOUND")
	ErrDatabaseFailed  = errors.New("DATABASE_ERROR")
)

type Handler struct {
	config *Config
	db     *sql.DB
	redis  *redis.Client
	scorer *matching.Scorer
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, redisClient *redis.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
		redis:  redisClient,
		scorer: matching.NewScorer(matching.Config{
			Thesaurus:          config.Thesaurus,
			SemanticMultiplier: config.SemanticMultiplier,
		}),
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, "PARSE_ERROR").Inc()
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
		case errors.Is(err, ErrProfileNotFound):
			errorCode = "PROFILE_NOT_FOUND"
		case errors.Is(err, ErrDatabaseFailed):
			errorCode = "DATABASE_ERROR"
			retries = 3
		}
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()
		h.failJob(client, job, errorCode, err.Error(), retries)
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	mentee, err := h.resolveMentee(ctx, input)
	if err != nil {
		return nil, err
	}
	mentor, err := h.resolveMentor(ctx, input)
	if err != nil {
		return nil, err
	}

	result := h.scorer.Score(mentee, mentor)

	metrics.CompatibilityScores.Observe(result.Score)
	metrics.MatchQuality.WithLabelValues(result.Quality).Inc()

	h.logger.Info("compatibility calculated", map[string]interface{}{
		"menteeId": input.MenteeID,
		"mentorId": input.MentorID,
		"score":    result.Score,
		"quality":  result.Quality,
	})

	return &Output{
		MenteeID:  input.MenteeID,
		MentorID:  input.MentorID,
		Score:     result.Score,
		Quality:   result.Quality,
		Breakdown: result.Breakdown,
		Reasons:   result.Reasons,
	}, nil
}

func (h *Handler) resolveMentee(ctx context.Context, input *Input) (matching.Mentee, error) {
	if input.MenteeProfile != nil {
		p := input.MenteeProfile
		return matching.Mentee{
			AdvisingNeeds:       p.AdvisingNeeds,
			CareersInterestedIn: p.CareersInterestedIn,
			InfoConcentration:   p.InfoConcentration,
			Biography:           p.Bio,
			FieldInterests:      p.FieldInterests,
		}, nil
	}
	if input.MenteeID == "" {
		return matching.Mentee{}, fmt.Errorf("%w: menteeId or menteeProfile is required", ErrInvalidInput)
	}
	profile, err := h.getMenteeProfile(ctx, input.MenteeID)
	if err != nil {
		return matching.Mentee{}, err
	}
	return profile.MatchingMentee(), nil
}

func (h *Handler) resolveMentor(ctx context.Context, input *Input) (matching.Mentor, error) {
	if input.MentorProfile != nil {
		p := input.MentorProfile
		return matching.Mentor{
			ID:                 input.MentorID,
			Name:               p.Name,
			AdvisingTopics:     p.AdvisingTopics,
			CareerPursuing:     p.CareerPursuing,
			InfoConcentration:  p.InfoConcentration,
			Biography:          p.Bio,
			Experiences:        p.Experiences,
			CalendlyLink:       p.CalendlyLink,
			AvailabilityStatus: p.AvailabilityStatus,
		}, nil
	}
	if input.MentorID == "" {
		return matching.Mentor{}, fmt.Errorf("%w: mentorId or mentorProfile is required", ErrInvalidInput)
	}
	profile, err := h.getMentorProfile(ctx, input.MentorID)
	if err != nil {
		return matching.Mentor{}, err
	}
	return profile.MatchingMentor(), nil
}

func (h *Handler) getMenteeProfile(ctx context.Context, menteeID string) (*models.MenteeProfile, error) {
	cacheKey := menteeCachePrefix + menteeID
	if val, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
		var profile models.MenteeProfile
		if err := json.Unmarshal([]byte(val), &profile); err == nil {
			return &profile, nil
		}
	}

	row := h.db.QueryRowContext(ctx, `
		SELECT p.id, p.user_id, u.name, p.info_concentration,
		       p.advising_needs, p.careers_interested_in, p.field_interests, p.bio
		FROM mentee_profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.id = $1`, menteeID)

	var profile models.MenteeProfile
	var needs, careers, interests string
	err := row.Scan(&profile.ID, &profile.UserID, &profile.Name, &profile.InfoConcentration,
		&needs, &careers, &interests, &profile.Biography)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: mentee %s", ErrProfileNotFound, menteeID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: fetch mentee profile: %v", ErrDatabaseFailed, err)
	}

	profile.AdvisingNeeds = models.DecodeStringList(needs)
	profile.CareersInterestedIn = models.DecodeStringList(careers)
	profile.FieldInterests = models.DecodeStringList(interests)

	data, _ := json.Marshal(profile)
	h.redis.Set(ctx, cacheKey, data, h.config.CacheTTL)

	return &profile, nil
}

func (h *Handler) getMentorProfile(ctx context.Context, mentorID string) (*models.MentorProfile, error) {
	cacheKey := mentorCachePrefix + mentorID
	if val, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
		var profile models.MentorProfile
		if err := json.Unmarshal([]byte(val), &profile); err == nil {
			return &profile, nil
		}
	}

	row := h.db.QueryRowContext(ctx, `
		SELECT p.id, p.user_id, u.name, p.info_concentration, p.advising_topics,
		       p.career_pursuing, p.experiences, p.bio, p.calendly_link, p.availability_status
		FROM mentor_profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.id = $1`, mentorID)

	var profile models.MentorProfile
	var topics string
	err := row.Scan(&profile.ID, &profile.UserID, &profile.Name, &profile.InfoConcentration,
		&topics, &profile.CareerPursuing, &profile.Experiences, &profile.Biography,
		&profile.CalendlyLink, &profile.AvailabilityStatus)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: mentor %s", ErrProfileNotFound, mentorID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: fetch mentor profile: %v", ErrDatabaseFailed, err)
	}

	profile.AdvisingTopics = models.DecodeStringList(topics)

	data, _ := json.Marshal(profile)
	h.redis.Set(ctx, cacheKey, data, h.config.CacheTTL)

	return &profile, nil
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
