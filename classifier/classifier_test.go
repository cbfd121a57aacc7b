package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeClassification(t *testing.T) {
	payload := `{"isDefect":true,"defectType":"Pothole","severity":"High","description":"Deep pothole in the right lane.","title":"Severe Pothole on Asphalt Road"}`

	result, err := decodeClassification(payload)
	require.NoError(t, err)
	assert.True(t, result.IsDefect)
	assert.Equal(t, "Pothole", result.DefectType)
	assert.Equal(t, "High", result.Severity)
	assert.Equal(t, "Severe Pothole on Asphalt Road", result.Title)
}

func TestDecodeClassificationFenced(t *testing.T) {
	// Some model responses arrive wrapped in markdown fences despite the
	// structured-output request.
	payload := "```json\n{\"isDefect\":false,\"defectType\":\"\",\"severity\":\"\",\"description\":\"\",\"title\":\"\"}\n```"

	result, err := decodeClassification(payload)
	require.NoError(t, err)
	assert.False(t, result.IsDefect)
}

func TestDecodeClassificationGarbage(t *testing.T) {
	_, err := decodeClassification("I could not analyze this image.")
	assert.Error(t, err)
}

func TestToDataURL(t *testing.T) {
	assert.Equal(t, "data:image/jpeg;base64,AAAA", toDataURL("AAAA"))
	assert.Equal(t, "data:image/png;base64,BBBB", toDataURL("data:image/png;base64,BBBB"))
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestNewDefaults(t *testing.T) {
	c, err := New(Config{APIKey: "test-key"})
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-flash", c.Model())
}
