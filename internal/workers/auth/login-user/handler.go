// internal/workers/auth/login-user/handler.go
package loginuser

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"pathmatch-workers/internal/common/auth"
	"pathmatch-workers/internal/common/logger"
	"pathmatch-workers/internal/models"
)

const (
	TaskType = "login-user"
)

var (
	ErrInvalidInput       = errors.New("VALIDATION_ERROR")
	ErrInvalidCredentials = errors.New("INVALID_CREDENTIALS")
	ErrDatabaseFailed     = errors.New("DATABASE_ERROR")
	ErrSessionFailed      = errors.New("SESSION_ERROR")
)

type Handler struct {
	db       *sql.DB
	sessions *auth.SessionStore
	logger   logger.Logger
}

func NewHandler(config *Config, db *sql.DB, sessions *auth.SessionStore, log logger.Logger) *Handler {
	return &Handler{
		db:       db,
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
		case errors.Is(err, ErrInvalidCredentials):
			errorCode = "INVALID_CREDENTIALS"
		case errors.Is(err, ErrDatabaseFailed):
			errorCode = "DATABASE_ERROR"
			retries = 3
		case errors.Is(err, ErrSessionFailed):
			errorCode = "SESSION_ERROR"
			retries = 3
		}
		h.failJob(client, job, errorCode, err.Error(), retries)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.NetID == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: netId and password are required", ErrInvalidInput)
	}

	var (
		userID       string
		netID        string
		role         models.Role
		passwordHash string
	)
	err := h.db.QueryRowContext(ctx, `
		SELECT id, net_id, role, password_hash
		FROM users
		WHERE net_id = $1`,
		input.NetID).Scan(&userID, &netID, &role, &passwordHash)
	if errors.Is(err, sql.ErrNoRows) {
		// Unknown user and wrong password read the same to the caller, so an
		// attacker cannot probe which NetIDs have accounts.
		return nil, fmt.Errorf("%w: netId or password incorrect", ErrInvalidCredentials)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: user lookup failed: %v", ErrDatabaseFailed, err)
	}

	if !auth.CheckPassword(passwordHash, input.Password) {
		return nil, fmt.Errorf("%w: netId or password incorrect", ErrInvalidCredentials)
	}

	session, err := h.sessions.Create(ctx, userID, netID, role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionFailed, err)
	}

	h.logger.Info("user logged in", map[string]interface{}{
		"userId": userID,
		"netId":  netID,
	})

	return &Output{
		UserID:       session.UserID,
		Role:         string(session.Role),
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		ExpiresAt:    session.ExpiresAt.UTC().Format(time.RFC3339),
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
