package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewID generates a prefixed entity id, e.g. "album-4f9f…".
// The prefix makes ids self-describing in logs and foreign-key errors.
func NewID(prefix string) string {
	return prefix + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}
