// internal/workers/data-access/query-postgresql/queries/profile.go
package queries

import (
	"context"
	"database/sql"
	"time"

	"pathmatch-workers/internal/models"
)

func GetMentorProfile(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	mentorID, ok := params["mentorId"].(string)
	if !ok {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	var id, userID, name, infoConcentration string
	var graduatingYear int
	var preferredCommunication, advisingTopics string
	var careerPursuing, experiences, bio, calendlyLink, availabilityStatus string

	err := db.QueryRowContext(ctx, `
		SELECT p.id, p.user_id, u.name, p.graduating_year, p.info_concentration,
		       p.preferred_communication, p.advising_topics, p.career_pursuing,
		       p.experiences, p.bio, p.calendly_link, p.availability_status
		FROM mentor_profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.id = $1`, mentorID).Scan(
		&id, &userID, &name,
		&graduatingYear, &infoConcentration,
		&preferredCommunication, &advisingTopics,
		&careerPursuing, &experiences, &bio,
		&calendlyLink, &availabilityStatus,
	)
	if err != nil {
		return nil, 0, 0, err
	}

	result := map[string]interface{}{
		"id":                     id,
		"userId":                 userID,
		"name":                   name,
		"graduatingYear":         graduatingYear,
		"infoConcentration":      infoConcentration,
		"preferredCommunication": models.DecodeStringList(preferredCommunication),
		"advisingTopics":         models.DecodeStringList(advisingTopics),
		"careerPursuing":         careerPursuing,
		"experiences":            experiences,
		"bio":                    bio,
		"calendlyLink":           calendlyLink,
		"availabilityStatus":     availabilityStatus,
	}

	execTime := time.Since(start).Milliseconds()
	return result, 1, execTime, nil
}

func GetMenteeProfile(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	menteeID, ok := params["menteeId"].(string)
	if !ok {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	var id, userID, name, infoConcentration string
	var graduatingYear int
	var preferredCommunication, advisingNeeds, careersInterestedIn, fieldInterests string
	var bio string

	err := db.QueryRowContext(ctx, `
		SELECT p.id, p.user_id, u.name, p.graduating_year, p.info_concentration,
		       p.preferred_communication, p.advising_needs, p.careers_interested_in,
		       p.field_interests, p.bio
		FROM mentee_profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.id = $1`, menteeID).Scan(
		&id, &userID, &name,
		&graduatingYear, &infoConcentration,
		&preferredCommunication, &advisingNeeds,
		&careersInterestedIn, &fieldInterests, &bio,
	)
	if err != nil {
		return nil, 0, 0, err
	}

	result := map[string]interface{}{
		"id":                     id,
		"userId":                 userID,
		"name":                   name,
		"graduatingYear":         graduatingYear,
		"infoConcentration":      infoConcentration,
		"preferredCommunication": models.DecodeStringList(preferredCommunication),
		"advisingNeeds":          models.DecodeStringList(advisingNeeds),
		"careersInterestedIn":    models.DecodeStringList(careersInterestedIn),
		"fieldInterests":         models.DecodeStringList(fieldInterests),
		"bio":                    bio,
	}

	execTime := time.Since(start).Milliseconds()
	return result, 1, execTime, nil
}

func ListAvailableMentors(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	start := time.Now()

	rows, err := db.QueryContext(ctx, `
		SELECT p.id, u.name, p.info_concentration, p.career_pursuing,
		       p.advising_topics, p.calendly_link
		FROM mentor_profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.availability_status = 'available'
		ORDER BY u.name`)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	var results []map[string]interface{}
	for rows.Next() {
		var id, name, infoConcentration, careerPursuing, advisingTopics, calendlyLink string
		if err := rows.Scan(&id, &name, &infoConcentration, &careerPursuing,
			&advisingTopics, &calendlyLink); err != nil {
			return nil, 0, 0, err
		}
		results = append(results, map[string]interface{}{
			"id":                id,
			"name":              name,
			"infoConcentration": infoConcentration,
			"careerPursuing":    careerPursuing,
			"advisingTopics":    models.DecodeStringList(advisingTopics),
			"calendlyLink":      calendlyLink,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return results, len(results), execTime, nil
}
