// internal/workers/profile/save-mentor-profile/handler_test.go
package savementorprofile

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathmatch-workers/internal/common/logger"
)

// ==========================
// Test Helpers
// ==========================

func newTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock, *miniredis.Miniredis) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	handler := NewHandler(&Config{}, db, rdb, logger.NewTestLogger(t))
	return handler, mock, mr
}

func validInput() *Input {
	return &Input{
		UserID:                 "user-1",
		GraduatingYear:         2026,
		InfoConcentration:      "Interactive Technologies",
		PreferredCommunication: []string{"email"},
		AdvisingTopics:         []string{"resume review", "interview prep"},
		CareerPursuing:         "Software Engineering",
		Bio:                    "Rising SWE, happy to review resumes.",
		CalendlyLink:           "https://calendly.com/chelsea",
		AvailabilityStatus:     "available",
	}
}

// ==========================
// Upsert Tests
// ==========================

func TestExecute_CreatesProfile(t *testing.T) {
	handler, mock, _ := newTestHandler(t)
	input := validInput()

	mock.ExpectQuery(`SELECT EXISTS`).WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`INSERT INTO mentor_profiles`).WithArgs(
		sqlmock.AnyArg(), // generated uuid
		"user-1",
		2026,
		"Interactive Technologies",
		`["email"]`,
		`["resume review","interview prep"]`,
		"Software Engineering",
		"",
		"Rising SWE, happy to review resumes.",
		"https://calendly.com/chelsea",
		"available",
		"",
		sqlmock.AnyArg(), // timestamp
	).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("mentor-1"))

	output, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, "mentor-1", output.MentorID)
	assert.True(t, output.Created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_UpdateInvalidatesCache(t *testing.T) {
	handler, mock, mr := newTestHandler(t)
	input := validInput()

	require.NoError(t, mr.Set("profile:mentor:mentor-7", `{"id":"mentor-7"}`))

	mock.ExpectQuery(`SELECT EXISTS`).WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`INSERT INTO mentor_profiles`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("mentor-7"))

	output, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, "mentor-7", output.MentorID)
	assert.False(t, output.Created)
	assert.False(t, mr.Exists("profile:mentor:mentor-7"), "stale cache entry must be deleted")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_DefaultsAvailability(t *testing.T) {
	handler, mock, _ := newTestHandler(t)
	input := validInput()
	input.AvailabilityStatus = ""

	mock.ExpectQuery(`SELECT EXISTS`).WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`INSERT INTO mentor_profiles`).WithArgs(
		sqlmock.AnyArg(), "user-1", 2026, "Interactive Technologies",
		`["email"]`, `["resume review","interview prep"]`, "Software Engineering",
		"", "Rising SWE, happy to review resumes.", "https://calendly.com/chelsea",
		"available", "", sqlmock.AnyArg(),
	).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("mentor-1"))

	_, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Validation Tests
// ==========================

func TestExecute_ValidationFailures(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	tests := []struct {
		name    string
		mutate  func(*Input)
		wantErr error
	}{
		{
			name:    "missing userId",
			mutate:  func(i *Input) { i.UserID = "" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "graduating year zero",
			mutate:  func(i *Input) { i.GraduatingYear = 0 },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "graduating year implausible",
			mutate:  func(i *Input) { i.GraduatingYear = 1980 },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown availability",
			mutate:  func(i *Input) { i.AvailabilityStatus = "busy" },
			wantErr: ErrInvalidAvailability,
		},
		{
			name:    "calendly link without scheme",
			mutate:  func(i *Input) { i.CalendlyLink = "calendly.com/chelsea" },
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)

			_, err := handler.Execute(context.Background(), input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ==========================
// Error Mapping Tests
// ==========================

func TestExecute_DatabaseError(t *testing.T) {
	handler, mock, _ := newTestHandler(t)

	mock.ExpectQuery(`SELECT EXISTS`).WithArgs("user-1").
		WillReturnError(errors.New("connection refused"))

	_, err := handler.Execute(context.Background(), validInput())
	assert.ErrorIs(t, err, ErrDatabaseFailed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
