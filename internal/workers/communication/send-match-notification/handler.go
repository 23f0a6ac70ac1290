// internal/workers/communication/send-match-notification/handler.go
package sendmatchnotification

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"pathmatch-workers/internal/common/logger"
	"pathmatch-workers/internal/models"
)

const (
	TaskType = "send-match-notification"

	NotificationMatchCreated   = "match_created"
	NotificationMatchConfirmed = "match_confirmed"
)

var (
	ErrInvalidInput   = errors.New("VALIDATION_ERROR")
	ErrDatabaseFailed = errors.New("DATABASE_ERROR")
	ErrSendFailed     = errors.New("NOTIFICATION_ERROR")
)

// EmailSender is the slice of the SES client this worker needs.
type EmailSender interface {
	SendPlainEmail(ctx context.Context, from, to, subject, body string) error
}

// SMSSender is the slice of the SNS client this worker needs.
type SMSSender interface {
	PublishSMS(ctx context.Context, phoneNumber, message string) error
}

type notificationTemplate struct {
	subject string
	email   string
	sms     string
}

var templates = map[string]notificationTemplate{
	NotificationMatchCreated: {
		subject: "New mentorship match on PathMatch",
		email: "Hi {{recipientName}},\n\n" +
			"You have been matched with {{counterpartName}} (compatibility score {{score}}).\n" +
			"Open PathMatch to review the match and reach out.\n",
		sms: "PathMatch: new match with {{counterpartName}}, score {{score}}.",
	},
	NotificationMatchConfirmed: {
		subject: "Your mentorship match is confirmed",
		email: "Hi {{recipientName}},\n\n" +
			"{{counterpartName}} confirmed your match.\n" +
			"Schedule your first meeting here: {{schedulingUrl}}\n",
		sms: "PathMatch: {{counterpartName}} confirmed your match.",
	},
}

type Handler struct {
	config *Config
	db     *sql.DB
	email  EmailSender
	sms    SMSSender
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, email EmailSender, sms SMSSender, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
		email:  email,
		sms:    sms,
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
		case errors.Is(err, ErrDatabaseFailed):
			errorCode = "DATABASE_ERROR"
			retries = 3
		case errors.Is(err, ErrSendFailed):
			errorCode = "NOTIFICATION_ERROR"
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

	var email, phone, name string
	err := h.db.QueryRowContext(ctx, `
		SELECT email, phone, name FROM users WHERE id = $1`,
		input.RecipientID).Scan(&email, &phone, &name)
	if errors.Is(err, sql.ErrNoRows) {
		// A deleted account is not worth failing the whole flow over.
		h.logger.Warn("notification recipient not found", map[string]interface{}{
			"recipientId": input.RecipientID,
			"matchId":     input.MatchID,
		})
		return &Output{Skipped: true, SkipReason: "recipient not found"}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: recipient lookup failed: %v", ErrDatabaseFailed, err)
	}

	tmpl := templates[input.NotificationType]
	data := h.templateData(input, name)
	output := &Output{}

	if h.config.EmailEnabled && h.email != nil && email != "" {
		body := render(tmpl.email, data)
		if err := h.email.SendPlainEmail(ctx, h.config.FromEmail, email, tmpl.subject, body); err != nil {
			return nil, fmt.Errorf("%w: email send failed: %v", ErrSendFailed, err)
		}
		output.EmailSent = true
	}

	if h.shouldSendSMS(input, phone) {
		message := render(tmpl.sms, data)
		if err := h.sms.PublishSMS(ctx, phone, message); err != nil {
			// The email already went out. Failing here would re-send it on
			// retry, so a lost text is only logged.
			h.logger.Warn("sms send failed", map[string]interface{}{
				"recipientId": input.RecipientID,
				"matchId":     input.MatchID,
				"error":       err,
			})
		} else {
			output.SMSSent = true
		}
	}

	if !output.EmailSent && !output.SMSSent {
		output.Skipped = true
		output.SkipReason = "no delivery channel available"
	}

	h.logger.Info("notification processed", map[string]interface{}{
		"recipientId":      input.RecipientID,
		"notificationType": input.NotificationType,
		"emailSent":        output.EmailSent,
		"smsSent":          output.SMSSent,
		"skipped":          output.Skipped,
	})

	return output, nil
}

func (h *Handler) validate(input *Input) error {
	if input.RecipientID == "" || input.MatchID == "" {
		return fmt.Errorf("%w: recipientId and matchId are required", ErrInvalidInput)
	}
	if !models.ValidRoles[input.RecipientType] {
		return fmt.Errorf("%w: recipientType must be mentor or mentee", ErrInvalidInput)
	}
	if _, ok := templates[input.NotificationType]; !ok {
		return fmt.Errorf("%w: unknown notificationType %q", ErrInvalidInput, input.NotificationType)
	}
	return nil
}

// shouldSendSMS gates the noisy channel: SMS goes out only when enabled, the
// recipient has a phone on file, and the match scored high enough to matter.
func (h *Handler) shouldSendSMS(input *Input, phone string) bool {
	if !h.config.SMSEnabled || h.sms == nil || phone == "" {
		return false
	}
	return input.Metadata != nil && input.Metadata.Score >= h.config.SMSScoreThreshold
}

func (h *Handler) templateData(input *Input, recipientName string) map[string]string {
	counterpart := "your match"
	score := ""
	schedulingURL := ""
	if input.Metadata != nil {
		if input.RecipientType == string(models.RoleMentee) && input.Metadata.MentorName != "" {
			counterpart = input.Metadata.MentorName
		} else if input.RecipientType == string(models.RoleMentor) && input.Metadata.MenteeName != "" {
			counterpart = input.Metadata.MenteeName
		}
		score = strconv.FormatFloat(input.Metadata.Score, 'f', -1, 64)
		schedulingURL = input.Metadata.SchedulingURL
	}

	return map[string]string{
		"recipientName":   recipientName,
		"counterpartName": counterpart,
		"score":           score,
		"schedulingUrl":   schedulingURL,
		"matchId":         input.MatchID,
	}
}

func render(template string, data map[string]string) string {
	out := template
	for key, value := range data {
		out = strings.ReplaceAll(out, "{{"+key+"}}", value)
	}
	return out
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
