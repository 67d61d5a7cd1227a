package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	entryDate := time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC)

	token := EncodeToken(entryDate, 42)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedDate, decodedSeq, err := DecodeToken(token)
	assert.NoError(t, err)
	assert.Equal(t, entryDate, decodedDate)
	assert.Equal(t, int64(42), decodedSeq)
}

func TestEncodeToken_DropsTimeOfDay(t *testing.T) {
	token := EncodeToken(time.Date(2026, 5, 15, 14, 30, 45, 0, time.UTC), 7)

	decodedDate, _, err := DecodeToken(token)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC), decodedDate)
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	_, _, err = DecodeToken(base64.StdEncoding.EncodeToString([]byte("2026-05-15")))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	_, _, err = DecodeToken(base64.StdEncoding.EncodeToString([]byte("notadate|3")))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "entry date parse")

	_, _, err = DecodeToken(base64.StdEncoding.EncodeToString([]byte("2026-05-15|x")))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "seq parse")
}
