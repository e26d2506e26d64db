package domain

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// RunID identifies one execution of a mapzone program.
type RunID string

// NewRunID generates a time-ordered run identifier.
func NewRunID() (RunID, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return RunID(id.String()), nil
}

// String returns the run id as a string.
func (id RunID) String() string {
	return string(id)
}
