// internal/workers/data-access/query-postgresql/queries/registry_test.go
package queries

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathmatch-workers/internal/models"
)

// ==========================
// Test Setup
// ==========================

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// ==========================
// Profile Queries
// ==========================

func TestGetMentorProfile(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`FROM mentor_profiles`).
		WithArgs("mentor-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "name", "graduating_year", "info_concentration",
			"preferred_communication", "advising_topics", "career_pursuing",
			"experiences", "bio", "calendly_link", "availability_status",
		}).AddRow(
			"mentor-1", "user-3", "Chelsea Park", 2026, "Data Science",
			`["email","zoom"]`, `["career advice","grad school"]`, "Data Scientist",
			"Two research internships", "I love data work", "https://calendly.com/chelsea", "available",
		))

	data, rowCount, execTime, err := GetMentorProfile(context.Background(), db,
		map[string]interface{}{"mentorId": "mentor-1"})

	require.NoError(t, err)
	assert.Equal(t, 1, rowCount)
	assert.GreaterOrEqual(t, execTime, int64(0))

	result := data.(map[string]interface{})
	assert.Equal(t, "mentor-1", result["id"])
	assert.Equal(t, "Chelsea Park", result["name"])
	assert.Equal(t, 2026, result["graduatingYear"])
	assert.Equal(t, []string{"email", "zoom"}, result["preferredCommunication"])
	assert.Equal(t, []string{"career advice", "grad school"}, result["advisingTopics"])
	assert.Equal(t, "available", result["availabilityStatus"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMentorProfile_MissingParam(t *testing.T) {
	db, _ := newMockDB(t)

	_, _, _, err := GetMentorProfile(context.Background(), db, map[string]interface{}{})
	assert.ErrorIs(t, err, ErrMissingParam)
}

func TestGetMenteeProfile(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`FROM mentee_profiles`).
		WithArgs("mentee-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "name", "graduating_year", "info_concentration",
			"preferred_communication", "advising_needs", "careers_interested_in",
			"field_interests", "bio",
		}).AddRow(
			"mentee-1", "user-7", "Jordan Davies", 2028, "UX Design",
			`["email"]`, `["resumes","interview prep"]`, `["UX Designer"]`,
			`["design","research"]`, "Curious about design research",
		))

	data, rowCount, _, err := GetMenteeProfile(context.Background(), db,
		map[string]interface{}{"menteeId": "mentee-1"})

	require.NoError(t, err)
	assert.Equal(t, 1, rowCount)

	result := data.(map[string]interface{})
	assert.Equal(t, "mentee-1", result["id"])
	assert.Equal(t, []string{"resumes", "interview prep"}, result["advisingNeeds"])
	assert.Equal(t, []string{"UX Designer"}, result["careersInterestedIn"])
	assert.Equal(t, []string{"design", "research"}, result["fieldInterests"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAvailableMentors(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`WHERE p.availability_status = 'available'`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "info_concentration", "career_pursuing",
			"advising_topics", "calendly_link",
		}).
			AddRow("mentor-1", "Chelsea Park", "Data Science", "Data Scientist",
				`["career advice"]`, "https://calendly.com/chelsea").
			AddRow("mentor-2", "Max Osei", "Information Systems", "Product Manager",
				`["internships"]`, "https://calendly.com/max"))

	data, rowCount, _, err := ListAvailableMentors(context.Background(), db, nil)

	require.NoError(t, err)
	assert.Equal(t, 2, rowCount)

	results := data.([]map[string]interface{})
	require.Len(t, results, 2)
	assert.Equal(t, "Chelsea Park", results[0]["name"])
	assert.Equal(t, []string{"internships"}, results[1]["advisingTopics"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Match Queries
// ==========================

func TestListMatchesForUser_MenteeView(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`WHERE me.user_id = \$1`).
		WithArgs("user-7").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "mentor_id", "mentee_id", "compatibility_score", "status",
			"meeting_scheduled", "created_at", "counterpart_name",
		}).
			AddRow("match-2", "mentor-2", "mentee-1", 81.0, "confirmed", true,
				"2026-04-02T09:00:00Z", "Max Osei").
			AddRow("match-1", "mentor-1", "mentee-1", 72.5, "pending", false,
				"2026-03-28T15:30:00Z", "Chelsea Park"))

	data, rowCount, _, err := ListMatchesForUser(context.Background(), db,
		map[string]interface{}{"userId": "user-7", "role": "mentee"})

	require.NoError(t, err)
	assert.Equal(t, 2, rowCount)

	results := data.([]map[string]interface{})
	require.Len(t, results, 2)
	assert.Equal(t, "Max Osei", results[0]["counterpartName"])
	assert.Equal(t, 81.0, results[0]["compatibilityScore"])
	assert.Equal(t, "confirmed", results[0]["status"])
	assert.Equal(t, "Chelsea Park", results[1]["counterpartName"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListMatchesForUser_MentorView(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`WHERE mp.user_id = \$1`).
		WithArgs("user-3").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "mentor_id", "mentee_id", "compatibility_score", "status",
			"meeting_scheduled", "created_at", "counterpart_name",
		}).AddRow("match-1", "mentor-1", "mentee-1", 72.5, "pending", false,
			"2026-03-28T15:30:00Z", "Jordan Davies"))

	data, rowCount, _, err := ListMatchesForUser(context.Background(), db,
		map[string]interface{}{"userId": "user-3", "role": "mentor"})

	require.NoError(t, err)
	assert.Equal(t, 1, rowCount)

	results := data.([]map[string]interface{})
	assert.Equal(t, "Jordan Davies", results[0]["counterpartName"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListMatchesForUser_BadRole(t *testing.T) {
	db, _ := newMockDB(t)

	_, _, _, err := ListMatchesForUser(context.Background(), db,
		map[string]interface{}{"userId": "user-7", "role": "advisor"})
	assert.ErrorIs(t, err, ErrMissingParam)
}

// ==========================
// User Queries
// ==========================

func TestGetUserContact(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT id, net_id, email, phone, name, role`).
		WithArgs("user-7").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "net_id", "email", "phone", "name", "role",
		}).AddRow("user-7", "jd451", "jd451@example.edu", "+16075550100",
			"Jordan Davies", "mentee"))

	data, rowCount, _, err := GetUserContact(context.Background(), db,
		map[string]interface{}{"userId": "user-7"})

	require.NoError(t, err)
	assert.Equal(t, 1, rowCount)

	result := data.(map[string]interface{})
	assert.Equal(t, "jd451", result["netId"])
	assert.Equal(t, "+16075550100", result["phone"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Registry
// ==========================

func TestExecute_UnknownQueryType(t *testing.T) {
	db, _ := newMockDB(t)

	_, _, _, err := Execute(context.Background(), db,
		models.QueryType("listEverything"), nil)
	assert.ErrorIs(t, err, ErrUnknownQueryType)
}
