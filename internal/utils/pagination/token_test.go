package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	journalDate := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2026, 3, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(journalDate, createdAt)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedJournalDate, decodedCreatedAt, err := DecodeToken(token)
	assert.NoError(t, err)
	assert.Equal(t, journalDate, decodedJournalDate)
	assert.Equal(t, createdAt, decodedCreatedAt)
}

func TestDecodeTokenInvalid(t *testing.T) {
	_, _, err := DecodeToken("not-base64!!")
	assert.Error(t, err)

	// Valid base64 but missing the separator.
	_, _, err = DecodeToken("aGVsbG8=")
	assert.Error(t, err)
}
