package storage

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeImagePayloadDataURL(t *testing.T) {
	raw := []byte{0x89, 0x50, 0x4e, 0x47}
	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)

	contentType, data, err := decodeImagePayload(payload)
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)
	assert.Equal(t, raw, data)
}

func TestDecodeImagePayloadBareBase64(t *testing.T) {
	raw := []byte{0xff, 0xd8, 0xff}

	contentType, data, err := decodeImagePayload(base64.StdEncoding.EncodeToString(raw))
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", contentType)
	assert.Equal(t, raw, data)
}

func TestDecodeImagePayloadErrors(t *testing.T) {
	t.Run("invalid base64", func(t *testing.T) {
		_, _, err := decodeImagePayload("not base64!!!")
		assert.Error(t, err)
	})

	t.Run("empty payload", func(t *testing.T) {
		_, _, err := decodeImagePayload("data:image/jpeg;base64,")
		assert.Error(t, err)
	})
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, ".png", extensionFor("image/png"))
	assert.Equal(t, ".webp", extensionFor("image/webp"))
	assert.Equal(t, ".jpg", extensionFor("image/jpeg"))
	assert.Equal(t, ".jpg", extensionFor("application/octet-stream"))
}
