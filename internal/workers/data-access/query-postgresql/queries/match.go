// internal/workers/data-access/query-postgresql/queries/match.go
package queries

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pathmatch-workers/internal/models"
)

// ListMatchesForUser is the "my matches" view: every match involving the
// user, joined with the counterpart's display name, newest first. The role
// decides which side of the match the user sits on.
func ListMatchesForUser(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	userID, ok := params["userId"].(string)
	if !ok {
		return nil, 0, 0, ErrMissingParam
	}
	role, ok := params["role"].(string)
	if !ok {
		return nil, 0, 0, ErrMissingParam
	}

	var query string
	switch role {
	case string(models.RoleMentee):
		query = `
		SELECT m.id, m.mentor_id, m.mentee_id, m.compatibility_score, m.status,
		       m.meeting_scheduled, m.created_at, u.name AS counterpart_name
		FROM matches m
		JOIN mentee_profiles me ON me.id = m.mentee_id
		JOIN mentor_profiles mp ON mp.id = m.mentor_id
		JOIN users u ON u.id = mp.user_id
		WHERE me.user_id = $1
		ORDER BY m.created_at DESC`
	case string(models.RoleMentor):
		query = `
		SELECT m.id, m.mentor_id, m.mentee_id, m.compatibility_score, m.status,
		       m.meeting_scheduled, m.created_at, u.name AS counterpart_name
		FROM matches m
		JOIN mentor_profiles mp ON mp.id = m.mentor_id
		JOIN mentee_profiles me ON me.id = m.mentee_id
		JOIN users u ON u.id = me.user_id
		WHERE mp.user_id = $1
		ORDER BY m.created_at DESC`
	default:
		return nil, 0, 0, fmt.Errorf("%w: role must be mentor or mentee", ErrMissingParam)
	}

	start := time.Now()

	rows, err := db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	var results []map[string]interface{}
	for rows.Next() {
		var id, mentorID, menteeID, status, createdAt, counterpartName string
		var compatibilityScore float64
		var meetingScheduled bool
		if err := rows.Scan(&id, &mentorID, &menteeID, &compatibilityScore,
			&status, &meetingScheduled, &createdAt, &counterpartName); err != nil {
			return nil, 0, 0, err
		}
		results = append(results, map[string]interface{}{
			"id":                 id,
			"mentorId":           mentorID,
			"menteeId":           menteeID,
			"compatibilityScore": compatibilityScore,
			"status":             status,
			"meetingScheduled":   meetingScheduled,
			"createdAt":          createdAt,
			"counterpartName":    counterpartName,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return results, len(results), execTime, nil
}
