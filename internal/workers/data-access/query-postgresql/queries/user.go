// internal/workers/data-access/query-postgresql/queries/user.go
package queries

import (
	"context"
	"database/sql"
	"time"
)

func GetUserContact(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	userID, ok := params["userId"].(string)
	if !ok {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	var id, netID, email, phone, name, role string

	err := db.QueryRowContext(ctx, `
		SELECT id, net_id, email, phone, name, role
		FROM users
		WHERE id = $1`, userID).Scan(
		&id, &netID, &email, &phone, &name, &role,
	)
	if err != nil {
		return nil, 0, 0, err
	}

	result := map[string]interface{}{
		"id":    id,
		"netId": netID,
		"email": email,
		"phone": phone,
		"name":  name,
		"role":  role,
	}

	execTime := time.Since(start).Milliseconds()
	return result, 1, execTime, nil
}
