// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Validation and lookup failures. None of these retry: the input or the
	// referenced row is wrong, not the infrastructure.
	ErrCodeValidationFailed ErrorCode = "VALIDATION_ERROR"
	ErrCodeMentorNotFound   ErrorCode = "MENTOR_NOT_FOUND"
	ErrCodeMenteeNotFound   ErrorCode = "MENTEE_NOT_FOUND"
	ErrCodeUserNotFound     ErrorCode = "USER_NOT_FOUND"
	ErrCodeMatchNotFound    ErrorCode = "MATCH_NOT_FOUND"

	// Business rule violations.
	ErrCodeDuplicateMatch       ErrorCode = "DUPLICATE_MATCH"
	ErrCodeDuplicateUser        ErrorCode = "DUPLICATE_USER"
	ErrCodeInvalidAvailability  ErrorCode = "INVALID_AVAILABILITY"
	ErrCodeInvalidMatchStatus   ErrorCode = "INVALID_MATCH_STATUS"
	ErrCodeInvalidQueryName     ErrorCode = "INVALID_QUERY_NAME"
	ErrCodeInvalidCredentials   ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeSessionExpired       ErrorCode = "SESSION_EXPIRED"
	ErrCodeDirectoryUnknownUser ErrorCode = "DIRECTORY_UNKNOWN_USER"

	// Postgres.
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"
	ErrCodeDatabaseInsertFailed     ErrorCode = "DATABASE_INSERT_FAILED"

	// Redis.
	ErrCodeCacheOperationFailed ErrorCode = "CACHE_OPERATION_FAILED"

	// Elasticsearch.
	ErrCodeElasticsearchConnectionFailed ErrorCode = "ELASTICSEARCH_CONNECTION_FAILED"
	ErrCodeSearchQueryFailed             ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeSearchTimeout                 ErrorCode = "SEARCH_TIMEOUT"
	ErrCodeIndexNotFound                 ErrorCode = "INDEX_NOT_FOUND"
	ErrCodeIndexingFailed                ErrorCode = "INDEXING_FAILED"

	// Outbound services.
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeDirectoryLookupFailed  ErrorCode = "DIRECTORY_LOOKUP_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	if e.ErrorVariables != nil {
		for k, v := range e.ErrorVariables {
			vars[k] = v
		}
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewValidationError creates a non-retryable input validation error.
func NewValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Input validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMentorNotFoundError creates a non-retryable lookup error.
func NewMentorNotFoundError(mentorID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMentorNotFound,
		Message:   "Mentor profile not found",
		Details:   fmt.Sprintf("mentorId: %s", mentorID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMenteeNotFoundError creates a non-retryable lookup error.
func NewMenteeNotFoundError(menteeID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMenteeNotFound,
		Message:   "Mentee profile not found",
		Details:   fmt.Sprintf("menteeId: %s", menteeID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUserNotFoundError creates a non-retryable lookup error.
func NewUserNotFoundError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUserNotFound,
		Message:   "User account not found",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMatchNotFoundError creates a non-retryable lookup error.
func NewMatchNotFoundError(matchID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMatchNotFound,
		Message:   "Match record not found",
		Details:   fmt.Sprintf("matchId: %s", matchID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDuplicateMatchError creates a non-retryable duplicate pairing error.
func NewDuplicateMatchError(mentorID, menteeID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDuplicateMatch,
		Message:   "Match already exists for this mentor and mentee",
		Details:   fmt.Sprintf("mentorId: %s, menteeId: %s", mentorID, menteeID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDuplicateUserError creates a non-retryable duplicate account error.
func NewDuplicateUserError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDuplicateUser,
		Message:   "Account already registered",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidAvailabilityError creates a non-retryable enum validation error.
func NewInvalidAvailabilityError(status string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidAvailability,
		Message:   "Unknown availability status",
		Details:   fmt.Sprintf("availabilityStatus: %s", status),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidMatchStatusError creates a non-retryable enum validation error.
func NewInvalidMatchStatusError(status string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidMatchStatus,
		Message:   "Unknown match status",
		Details:   fmt.Sprintf("status: %s", status),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidQueryNameError creates a non-retryable unknown query error.
func NewInvalidQueryNameError(queryName string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidQueryName,
		Message:   "Unsupported query name",
		Details:   fmt.Sprintf("queryName: %s", queryName),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidCredentialsError creates a non-retryable authentication error.
// The details never distinguish a missing account from a wrong password.
func NewInvalidCredentialsError() *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidCredentials,
		Message:   "Invalid NetID or password",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionExpiredError creates a non-retryable session error.
func NewSessionExpiredError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionExpired,
		Message:   "Session missing or expired",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDirectoryUnknownUserError creates a non-retryable directory error.
func NewDirectoryUnknownUserError(netID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDirectoryUnknownUser,
		Message:   "NetID not present in the campus directory",
		Details:   fmt.Sprintf("netId: %s", netID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(queryName string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("queryName: %s, error: %s", queryName, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryTimeoutError creates a retryable query timeout error.
func NewQueryTimeoutError(queryName string) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryTimeout,
		Message:   "Database query timeout",
		Details:   fmt.Sprintf("queryName: %s", queryName),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseInsertFailedError creates a retryable database insert error.
func NewDatabaseInsertFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseInsertFailed,
		Message:   "Database insert operation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheOperationFailedError creates a retryable redis error.
func NewCacheOperationFailedError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheOperationFailed,
		Message:   "Cache operation failed",
		Details:   fmt.Sprintf("operation: %s, error: %s", operation, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewElasticsearchConnectionFailedError creates a retryable Elasticsearch connection error.
func NewElasticsearchConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeElasticsearchConnectionFailed,
		Message:   "Elasticsearch connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchQueryFailedError creates a retryable search query error.
func NewSearchQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchQueryFailed,
		Message:   "Elasticsearch query error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchTimeoutError creates a retryable search timeout error.
func NewSearchTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchTimeout,
		Message:   "Elasticsearch query timeout",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewIndexNotFoundError creates a non-retryable index not found error.
func NewIndexNotFoundError(indexName string) *StandardError {
	return &StandardError{
		Code:      ErrCodeIndexNotFound,
		Message:   "Elasticsearch index not found",
		Details:   fmt.Sprintf("indexName: %s", indexName),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewIndexingFailedError creates a retryable indexing error.
func NewIndexingFailedError(documentID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeIndexingFailed,
		Message:   "Document indexing failed",
		Details:   fmt.Sprintf("documentId: %s, error: %s", documentID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification send error.
func NewNotificationSendFailedError(notificationType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("type: %s, error: %s", notificationType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDirectoryLookupFailedError creates a retryable directory client error.
func NewDirectoryLookupFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDirectoryLookupFailed,
		Message:   "Campus directory lookup error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// Generic constructors

func NewBusinessRuleError(message, details string) *StandardError {
	return &StandardError{
		Code:      "BUSINESS_RULE_VIOLATION",
		Message:   message,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "EXTERNAL_SERVICE_ERROR",
		Message:   fmt.Sprintf("External service '%s' error", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewResourceNotFoundError(service, details string) *StandardError {
	return &StandardError{
		Code:      "RESOURCE_NOT_FOUND",
		Message:   fmt.Sprintf("Resource not found in '%s'", service),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewAuthenticationError(details string) *StandardError {
	return &StandardError{
		Code:      "AUTHENTICATION_FAILED",
		Message:   "Authentication with external service failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewTimeoutError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "TIMEOUT_ERROR",
		Message:   fmt.Sprintf("Service '%s' timeout", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes. The BPMN
// diagrams use the internal codes verbatim, so the mapping is the identity;
// it exists so a diagram rename never requires touching worker code.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeValidationFailed:              "VALIDATION_ERROR",
	ErrCodeMentorNotFound:                "MENTOR_NOT_FOUND",
	ErrCodeMenteeNotFound:                "MENTEE_NOT_FOUND",
	ErrCodeUserNotFound:                  "USER_NOT_FOUND",
	ErrCodeMatchNotFound:                 "MATCH_NOT_FOUND",
	ErrCodeDuplicateMatch:                "DUPLICATE_MATCH",
	ErrCodeDuplicateUser:                 "DUPLICATE_USER",
	ErrCodeInvalidAvailability:           "INVALID_AVAILABILITY",
	ErrCodeInvalidMatchStatus:            "INVALID_MATCH_STATUS",
	ErrCodeInvalidQueryName:              "INVALID_QUERY_NAME",
	ErrCodeInvalidCredentials:            "INVALID_CREDENTIALS",
	ErrCodeSessionExpired:                "SESSION_EXPIRED",
	ErrCodeDirectoryUnknownUser:          "DIRECTORY_UNKNOWN_USER",
	ErrCodeDatabaseConnectionFailed:      "DATABASE_CONNECTION_FAILED",
	ErrCodeQueryExecutionFailed:          "QUERY_EXECUTION_FAILED",
	ErrCodeQueryTimeout:                  "QUERY_TIMEOUT",
	ErrCodeDatabaseInsertFailed:          "DATABASE_INSERT_FAILED",
	ErrCodeCacheOperationFailed:          "CACHE_OPERATION_FAILED",
	ErrCodeElasticsearchConnectionFailed: "ELASTICSEARCH_CONNECTION_FAILED",
	ErrCodeSearchQueryFailed:             "SEARCH_QUERY_FAILED",
	ErrCodeSearchTimeout:                 "SEARCH_TIMEOUT",
	ErrCodeIndexNotFound:                 "INDEX_NOT_FOUND",
	ErrCodeIndexingFailed:                "INDEXING_FAILED",
	ErrCodeNotificationSendFailed:        "NOTIFICATION_SEND_FAILED",
	ErrCodeDirectoryLookupFailed:         "DIRECTORY_LOOKUP_FAILED",
}

// GetRetryCount returns the recommended retry count per error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeDatabaseInsertFailed,
		ErrCodeElasticsearchConnectionFailed,
		ErrCodeSearchQueryFailed,
		ErrCodeIndexingFailed,
		ErrCodeNotificationSendFailed:
		return 3 // Retryable technical errors

	case ErrCodeQueryTimeout,
		ErrCodeSearchTimeout,
		ErrCodeCacheOperationFailed,
		ErrCodeDirectoryLookupFailed:
		return 2 // Partial retry for timeouts and soft dependencies

	default:
		return 0 // Business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	// Check order matters: DIRECTORY_UNKNOWN_USER also contains "USER" and
	// SEARCH_QUERY_FAILED also contains "QUERY".
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "CREDENTIALS") || strings.Contains(codeStr, "SESSION"):
		return "AUTH"
	case strings.Contains(codeStr, "DIRECTORY"):
		return "DIRECTORY"
	case strings.Contains(codeStr, "SEARCH") || strings.Contains(codeStr, "INDEX"):
		return "SEARCH"
	case strings.Contains(codeStr, "MENTOR") || strings.Contains(codeStr, "MENTEE") || strings.Contains(codeStr, "USER"):
		return "PROFILE"
	case strings.Contains(codeStr, "MATCH"):
		return "MATCH"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "CACHE"):
		return "CACHE"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
