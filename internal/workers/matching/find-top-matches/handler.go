// internal/workers/matching/find-top-matches/handler.go
package findtopmatches

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
	TaskType = "find-top-matches"

	menteeCachePrefix = "profile:mentee:"
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

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	start := time.Now()
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

	duration := time.Since(start)
	if duration > 500*time.Millisecond {
		h.logger.Warn("slow ranking run", map[string]interface{}{
			"durationMs":   duration.Milliseconds(),
			"totalMentors": output.TotalMentors,
		})
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(duration.Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	mentee, err := h.resolveMentee(ctx, input)
	if err != nil {
		return nil, err
	}

	mentors, err := h.listMentors(ctx)
	if err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = h.config.DefaultLimit
	}

	ranked := h.scorer.TopMatches(mentee, mentors, limit)

	matches := make([]MatchCandidate, 0, len(ranked))
	for _, r := range ranked {
		metrics.CompatibilityScores.Observe(r.Result.Score)
		metrics.MatchQuality.WithLabelValues(r.Result.Quality).Inc()
		matches = append(matches, MatchCandidate{
			MentorID:          r.Mentor.ID,
			Name:              r.Mentor.Name,
			CareerPursuing:    r.Mentor.CareerPursuing,
			InfoConcentration: r.Mentor.InfoConcentration,
			CalendlyLink:      r.Mentor.CalendlyLink,
			Score:             r.Result.Score,
			Quality:           r.Result.Quality,
			Breakdown:         r.Result.Breakdown,
			Reasons:           r.Result.Reasons,
		})
	}

	h.logger.Info("top matches ranked", map[string]interface{}{
		"menteeId":     input.MenteeID,
		"totalMentors": len(mentors),
		"returned":     len(matches),
		"limit":        limit,
	})

	return &Output{
		MenteeID:     input.MenteeID,
		Matches:      matches,
		TotalMentors: len(mentors),
		Returned:     len(matches),
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

	cacheKey := menteeCachePrefix + input.MenteeID
	if val, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
		var profile models.MenteeProfile
		if err := json.Unmarshal([]byte(val), &profile); err == nil {
			return profile.MatchingMentee(), nil
		}
	}

	row := h.db.QueryRowContext(ctx, `
		SELECT p.id, p.user_id, u.name, p.info_concentration,
		       p.advising_needs, p.careers_interested_in, p.field_interests, p.bio
		FROM mentee_profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.id = $1`, input.MenteeID)

	var profile models.MenteeProfile
	var needs, careers, interests string
	err := row.Scan(&profile.ID, &profile.UserID, &profile.Name, &profile.InfoConcentration,
		&needs, &careers, &interests, &profile.Biography)
	if errors.Is(err, sql.ErrNoRows) {
		return matching.Mentee{}, fmt.Errorf("%w: mentee %s", ErrProfileNotFound, input.MenteeID)
	}
	if err != nil {
		return matching.Mentee{}, fmt.Errorf("%w: fetch mentee profile: %v", ErrDatabaseFailed, err)
	}

	profile.AdvisingNeeds = models.DecodeStringList(needs)
	profile.CareersInterestedIn = models.DecodeStringList(careers)
	profile.FieldInterests = models.DecodeStringList(interests)

	data, _ := json.Marshal(profile)
	h.redis.Set(ctx, cacheKey, data, h.config.CacheTTL)

	return profile.MatchingMentee(), nil
}

// listMentors loads every mentor row. Availability is not filtered here; the
// ranker decides eligibility so the totals reflect the whole pool.
func (h *Handler) listMentors(ctx context.Context) ([]matching.Mentor, error) {
	rows, err := h.db.QueryContext(ctx, `
		SELECT p.id, u.name, p.info_concentration, p.advising_topics,
		       p.career_pursuing, p.experiences, p.bio, p.calendly_link, p.availability_status
		FROM mentor_profiles p
		JOIN users u ON u.id = p.user_id`)
	if err != nil {
		return nil, fmt.Errorf("%w: list mentors: %v", ErrDatabaseFailed, err)
	}
	defer rows.Close()

	var mentors []matching.Mentor
	for rows.Next() {
		var m matching.Mentor
		var topics string
		if err := rows.Scan(&m.ID, &m.Name, &m.InfoConcentration, &topics,
			&m.CareerPursuing, &m.Experiences, &m.Biography, &m.CalendlyLink,
			&m.AvailabilityStatus); err != nil {
			return nil, fmt.Errorf("%w: scan mentor row: %v", ErrDatabaseFailed, err)
		}
		m.AdvisingTopics = models.DecodeStringList(topics)
		mentors = append(mentors, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate mentor rows: %v", ErrDatabaseFailed, err)
	}

	return mentors, nil
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
