package utils

import (
	"encoding/json"
	"net/http"
)

// APIResponse is the envelope every endpoint answers with.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// PagedData builds the data payload for list endpoints: the items under their
// collection key plus the page, limit and total row count.
func PagedData(key string, items interface{}, page, limit int, total int64) map[string]interface{} {
	return map[string]interface{}{
		key:     items,
		"page":  page,
		"limit": limit,
		"total": total,
	}
}

// GetStringValue returns the value of a nullable string pointer or empty string if nil
func GetStringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
