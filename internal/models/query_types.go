// internal/models/query_types.go
package models

// QueryType names a registered query the query-postgresql worker can run.
type QueryType string

const (
	QueryTypeGetMentorProfile     QueryType = "getMentorProfile"
	QueryTypeGetMenteeProfile     QueryType = "getMenteeProfile"
	QueryTypeListAvailableMentors QueryType = "listAvailableMentors"
	QueryTypeListMatchesForUser   QueryType = "listMatchesForUser"
	QueryTypeGetUserContact       QueryType = "getUserContact"
)
