package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateReferenceID returns an opaque reference for withdrawals and
// receipts. Uniqueness is enforced again at the database level.
func GenerateReferenceID() string {
	return "CHY-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
}

// GenerateRequestID returns a short id attached to every request for log
// correlation.
func GenerateRequestID() string {
	return uuid.New().String()
}
