// internal/workers/auth/logout-user/handler.go
package logoutuser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"pathmatch-workers/internal/common/auth"
	"pathmatch-workers/internal/common/logger"
)

const (
	TaskType = "logout-user"
)

var (
	ErrInvalidInput  = errors.New("VALIDATION_ERROR")
	ErrSessionFailed = errors.New("SESSION_ERROR")
)

type Handler struct {
	sessions *auth.SessionStore
	logger   logger.Logger
}

func NewHandler(config *Config, sessions *auth.SessionStore, log logger.Logger) *Handler {
	return &Handler{
		sessions: sessions,
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
		errorCode := "UNKNOWN_ERROR"
		retries := int32(0)
		switch {
		case errors.Is(err, ErrInvalidInput):
			errorCode = "VALIDATION_ERROR"
		case errors.Is(err, ErrSessionFailed):
			errorCode = "SESSION_ERROR"
			retries = 3
		}
		h.failJob(client, job, errorCode, err.Error(), retries)
		return
	}

	h.completeJob(client, job, output)
}

// execute revokes whatever tokens came in. Logging out a session that is
// already gone still reports success; logout is idempotent.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.AccessToken == "" && input.RefreshToken == "" {
		return nil, fmt.Errorf("%w: accessToken or refreshToken is required", ErrInvalidInput)
	}

	if err := h.sessions.Revoke(ctx, input.AccessToken, input.RefreshToken); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionFailed, err)
	}

	h.logger.Info("session revoked", nil)

	return &Output{LoggedOut: true}, nil
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
