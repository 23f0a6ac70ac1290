package models

import "encoding/json"

// DecodeStringList decodes a JSON text column holding a string array.
// Profiles written by older frontend builds occasionally carry malformed
// values; those decode to an empty list so a single bad field never costs a
// mentor their scoring run.
func DecodeStringList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil || items == nil {
		return []string{}
	}
	return items
}

// EncodeStringList encodes a string list for a JSON text column. A nil slice
// encodes as "[]".
func EncodeStringList(items []string) string {
	if items == nil {
		items = []string{}
	}
	data, _ := json.Marshal(items)
	return string(data)
}
