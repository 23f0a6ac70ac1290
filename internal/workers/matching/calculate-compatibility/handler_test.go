// internal/workers/matching/calculate-compatibility/handler_test.go
package calculatecompatibility

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathmatch-workers/internal/common/logger"
	"pathmatch-workers/internal/models"
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

	handler := NewHandler(&Config{CacheTTL: time.Hour}, db, rdb, logger.NewTestLogger(t))
	return handler, mock, mr
}

// The fixture pair scores 45.0: topics 15 (one of two needs covered),
// career 20 (exact), concentration 10, semantic 0 (no biographies).
func snapshotInput() *Input {
	return &Input{
		MenteeID: "mentee-1",
		MentorID: "mentor-1",
		MenteeProfile: &MenteeSnapshot{
			AdvisingNeeds:       []string{"resume review", "interview prep"},
			CareersInterestedIn: []string{"software engineering"},
			InfoConcentration:   "interactive technologies",
		},
		MentorProfile: &MentorSnapshot{
			Name:              "Chelsea",
			AdvisingTopics:    []string{"resume review"},
			CareerPursuing:    "Software Engineering",
			InfoConcentration: "Interactive Technologies",
		},
	}
}

// ==========================
// Inline Snapshot Tests
// ==========================

func TestExecute_InlineSnapshots(t *testing.T) {
	handler, mock, _ := newTestHandler(t)

	output, err := handler.Execute(context.Background(), snapshotInput())
	require.NoError(t, err)

	assert.Equal(t, "mentee-1", output.MenteeID)
	assert.Equal(t, "mentor-1", output.MentorID)
	assert.Equal(t, 45.0, output.Score)
	assert.Equal(t, "Moderate Match", output.Quality)
	assert.Equal(t, 15.0, output.Breakdown.AdvisingTopics)
	assert.Equal(t, 20.0, output.Breakdown.CareerPath)
	assert.Equal(t, 10.0, output.Breakdown.Concentration)
	assert.Equal(t, 0.0, output.Breakdown.Semantic)
	assert.Equal(t, []string{
		"Can help with: resume review",
		"Pursuing career in Software Engineering",
		"Same concentration: Interactive Technologies",
	}, output.Reasons)

	// Snapshots must not touch the database.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_MissingIdentifiers(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	_, err := handler.Execute(context.Background(), &Input{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// ==========================
// Cache / Database Tests
// ==========================

func TestExecute_CacheHit(t *testing.T) {
	handler, mock, mr := newTestHandler(t)

	mentee, err := json.Marshal(models.MenteeProfile{
		ID:                  "mentee-1",
		UserID:              "user-1",
		AdvisingNeeds:       []string{"resume review", "interview prep"},
		CareersInterestedIn: []string{"software engineering"},
		InfoConcentration:   "interactive technologies",
	})
	require.NoError(t, err)
	mentor, err := json.Marshal(models.MentorProfile{
		ID:                 "mentor-1",
		UserID:             "user-2",
		Name:               "Chelsea",
		AdvisingTopics:     []string{"resume review"},
		CareerPursuing:     "Software Engineering",
		InfoConcentration:  "Interactive Technologies",
		AvailabilityStatus: "available",
	})
	require.NoError(t, err)
	require.NoError(t, mr.Set("profile:mentee:mentee-1", string(mentee)))
	require.NoError(t, mr.Set("profile:mentor:mentor-1", string(mentor)))

	output, err := handler.Execute(context.Background(), &Input{
		MenteeID: "mentee-1",
		MentorID: "mentor-1",
	})
	require.NoError(t, err)

	assert.Equal(t, 45.0, output.Score)
	assert.Equal(t, "Moderate Match", output.Quality)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_CacheMissQueriesPostgres(t *testing.T) {
	handler, mock, mr := newTestHandler(t)

	menteeRows := sqlmock.NewRows([]string{
		"id", "user_id", "name", "info_concentration",
		"advising_needs", "careers_interested_in", "field_interests", "bio",
	}).AddRow(
		"mentee-1", "user-1", "Jessica", "interactive technologies",
		`["resume review","interview prep"]`, `["software engineering"]`, `[]`, "",
	)
	mock.ExpectQuery(`FROM mentee_profiles`).WithArgs("mentee-1").WillReturnRows(menteeRows)

	mentorRows := sqlmock.NewRows([]string{
		"id", "user_id", "name", "info_concentration", "advising_topics",
		"career_pursuing", "experiences", "bio", "calendly_link", "availability_status",
	}).AddRow(
		"mentor-1", "user-2", "Chelsea", "Interactive Technologies", `["resume review"]`,
		"Software Engineering", "", "", "https://calendly.com/chelsea", "available",
	)
	mock.ExpectQuery(`FROM mentor_profiles`).WithArgs("mentor-1").WillReturnRows(mentorRows)

	output, err := handler.Execute(context.Background(), &Input{
		MenteeID: "mentee-1",
		MentorID: "mentor-1",
	})
	require.NoError(t, err)

	assert.Equal(t, 45.0, output.Score)
	assert.True(t, mr.Exists("profile:mentee:mentee-1"), "mentee profile should be cached after miss")
	assert.True(t, mr.Exists("profile:mentor:mentor-1"), "mentor profile should be cached after miss")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A broken cache must degrade to Postgres, not fail the job.
func TestExecute_CacheErrorFallsThroughToPostgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rdb, rmock := redismock.NewClientMock()
	rmock.ExpectGet("profile:mentee:mentee-1").SetErr(errors.New("connection refused"))
	rmock.Regexp().ExpectSet("profile:mentee:mentee-1", `.*`, time.Hour).SetVal("OK")
	rmock.ExpectGet("profile:mentor:mentor-1").SetErr(errors.New("connection refused"))
	rmock.Regexp().ExpectSet("profile:mentor:mentor-1", `.*`, time.Hour).SetVal("OK")

	handler := NewHandler(&Config{CacheTTL: time.Hour}, db, rdb, logger.NewTestLogger(t))

	menteeRows := sqlmock.NewRows([]string{
		"id", "user_id", "name", "info_concentration",
		"advising_needs", "careers_interested_in", "field_interests", "bio",
	}).AddRow(
		"mentee-1", "user-1", "Jessica", "interactive technologies",
		`["resume review","interview prep"]`, `["software engineering"]`, `[]`, "",
	)
	mock.ExpectQuery(`FROM mentee_profiles`).WithArgs("mentee-1").WillReturnRows(menteeRows)

	mentorRows := sqlmock.NewRows([]string{
		"id", "user_id", "name", "info_concentration", "advising_topics",
		"career_pursuing", "experiences", "bio", "calendly_link", "availability_status",
	}).AddRow(
		"mentor-1", "user-2", "Chelsea", "Interactive Technologies", `["resume review"]`,
		"Software Engineering", "", "", "https://calendly.com/chelsea", "available",
	)
	mock.ExpectQuery(`FROM mentor_profiles`).WithArgs("mentor-1").WillReturnRows(mentorRows)

	output, err := handler.Execute(context.Background(), &Input{
		MenteeID: "mentee-1",
		MentorID: "mentor-1",
	})
	require.NoError(t, err)

	assert.Equal(t, 45.0, output.Score)
	assert.NoError(t, rmock.ExpectationsWereMet())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_MalformedListColumnScoresZeroFactor(t *testing.T) {
	handler, mock, _ := newTestHandler(t)

	menteeRows := sqlmock.NewRows([]string{
		"id", "user_id", "name", "info_concentration",
		"advising_needs", "careers_interested_in", "field_interests", "bio",
	}).AddRow(
		"mentee-1", "user-1", "Jessica", "interactive technologies",
		`not a json array`, `["software engineering"]`, `[]`, "",
	)
	mock.ExpectQuery(`FROM mentee_profiles`).WithArgs("mentee-1").WillReturnRows(menteeRows)

	input := snapshotInput()
	input.MenteeProfile = nil

	output, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 0.0, output.Breakdown.AdvisingTopics)
	assert.Equal(t, 30.0, output.Score)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Error Mapping Tests
// ==========================

func TestExecute_ProfileNotFound(t *testing.T) {
	handler, mock, _ := newTestHandler(t)

	mock.ExpectQuery(`FROM mentee_profiles`).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err := handler.Execute(context.Background(), &Input{
		MenteeID: "ghost",
		MentorID: "mentor-1",
	})
	assert.ErrorIs(t, err, ErrProfileNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_DatabaseError(t *testing.T) {
	handler, mock, _ := newTestHandler(t)

	mock.ExpectQuery(`FROM mentee_profiles`).WithArgs("mentee-1").
		WillReturnError(errors.New("connection reset by peer"))

	_, err := handler.Execute(context.Background(), &Input{
		MenteeID: "mentee-1",
		MentorID: "mentor-1",
	})
	assert.ErrorIs(t, err, ErrDatabaseFailed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
