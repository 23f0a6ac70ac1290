// internal/workers/data-access/query-postgresql/models.go
package querypostgresql

type Input struct {
	QueryType string `json:"queryType"`
	MentorID  string `json:"mentorId,omitempty"`
	MenteeID  string `json:"menteeId,omitempty"`
	UserID    string `json:"userId,omitempty"`
	Role      string `json:"role,omitempty"`
}

type Output struct {
	Data               interface{} `json:"data"`
	RowCount           int         `json:"rowCount"`
	QueryExecutionTime int64       `json:"queryExecutionTime"` // milliseconds
}
