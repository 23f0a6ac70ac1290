// internal/workers/auth/register-user/handler.go
package registeruser

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

	"pathmatch-workers/internal/common/auth"
	"pathmatch-workers/internal/common/directory"
	"pathmatch-workers/internal/common/logger"
	"pathmatch-workers/internal/common/validation"
	"pathmatch-workers/internal/models"
)

const (
	TaskType = "register-user"

	minPasswordLength = 8
)

var (
	ErrInvalidInput         = errors.New("VALIDATION_ERROR")
	ErrDuplicateUser        = errors.New("DUPLICATE_USER")
	ErrDirectoryUnknownUser = errors.New("DIRECTORY_UNKNOWN_USER")
	ErrDatabaseFailed       = errors.New("DATABASE_ERROR")
)

// DirectoryService resolves a NetID against the campus directory.
type DirectoryService interface {
	Lookup(ctx context.Context, netID string) (*directory.Person, error)
}

type Handler struct {
	config    *Config
	db        *sql.DB
	directory DirectoryService
	logger    logger.Logger
}

// NewHandler wires the registration worker. A nil directory service disables
// NetID verification entirely.
func NewHandler(config *Config, db *sql.DB, directorySvc DirectoryService, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		db:        db,
		directory: directorySvc,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		case errors.Is(err, ErrDuplicateUser):
			errorCode = "DUPLICATE_USER"
		case errors.Is(err, ErrDirectoryUnknownUser):
			errorCode = "DIRECTORY_UNKNOWN_USER"
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

	var exists bool
	err := h.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM users
			WHERE net_id = $1 OR email = $2
		)`, input.NetID, input.Email).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("%w: duplicate check failed: %v", ErrDatabaseFailed, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: account with netId %s or email %s already exists",
			ErrDuplicateUser, input.NetID, input.Email)
	}

	name := input.Name
	if h.directory != nil {
		person, err := h.directory.Lookup(ctx, input.NetID)
		if errors.Is(err, directory.ErrNotFound) {
			return nil, fmt.Errorf("%w: netId %s not in campus directory",
				ErrDirectoryUnknownUser, input.NetID)
		}
		if err != nil {
			// A directory outage should not block registrations.
			h.logger.Warn("directory verification unavailable", map[string]interface{}{
				"netId": input.NetID,
				"error": err,
			})
		} else if person.DisplayName != "" {
			name = person.DisplayName
		}
	}

	passwordHash, err := auth.HashPassword(input.Password, h.config.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseFailed, err)
	}

	userID := uuid.New().String()
	createdAt := time.Now().UTC().Format(time.RFC3339)

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO users (
			id, net_id, email, name, role, password_hash, phone, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		userID,
		input.NetID,
		input.Email,
		name,
		input.Role,
		passwordHash,
		input.Phone,
		createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: insert failed: %v", ErrDatabaseFailed, err)
	}

	h.logger.Info("user registered", map[string]interface{}{
		"userId": userID,
		"netId":  input.NetID,
		"role":   input.Role,
	})

	return &Output{
		UserID: userID,
		NetID:  input.NetID,
		Role:   input.Role,
	}, nil
}

func (h *Handler) validate(input *Input) error {
	if input.NetID == "" || input.Email == "" || input.Password == "" || input.Name == "" || input.Role == "" {
		return fmt.Errorf("%w: netId, email, password, name and role are required", ErrInvalidInput)
	}
	if !validation.ValidateNetID(input.NetID) {
		return fmt.Errorf("%w: netId %q is not a valid NetID", ErrInvalidInput, input.NetID)
	}
	if !validation.ValidateEmail(input.Email) {
		return fmt.Errorf("%w: email %q is not a valid address", ErrInvalidInput, input.Email)
	}
	if len(input.Password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	if !models.ValidRoles[input.Role] {
		return fmt.Errorf("%w: role must be mentor or mentee", ErrInvalidInput)
	}
	if input.Phone != "" && !validation.ValidatePhone(input.Phone) {
		return fmt.Errorf("%w: phone %q is not a valid number", ErrInvalidInput, input.Phone)
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
