package internal

import (
	"strings"

	"github.com/google/uuid"
)

const shortIdLength = 8

// NewShortId is the first block of a random uuid. Short enough to
// prefix every log line of a client.
func NewShortId() string {
	id, _, _ := strings.Cut(uuid.NewString(), "-")
	if len(id) > shortIdLength {
		return id[:shortIdLength]
	}
	return id
}
