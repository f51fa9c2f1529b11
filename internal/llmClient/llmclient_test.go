package llmclient

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	genai "google.golang.org/genai"
)

func analysisLikeSchema() *Schema {
	return &Schema{
		Type:  TypeObject,
		Order: []string{"score", "tags"},
		Properties: map[string]*Schema{
			"score": {Type: TypeInteger},
			"tags":  StringArray(),
		},
		Required: []string{"score", "tags"},
	}
}

func TestSchemaGenai(t *testing.T) {
	s := analysisLikeSchema().Genai()
	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, genai.TypeInteger, s.Properties["score"].Type)
	assert.Equal(t, genai.TypeArray, s.Properties["tags"].Type)
	assert.Equal(t, genai.TypeString, s.Properties["tags"].Items.Type)
	assert.Equal(t, []string{"score", "tags"}, s.Required)
	assert.Equal(t, []string{"score", "tags"}, s.PropertyOrdering)
}

func TestSchemaJSONSchema(t *testing.T) {
	m := analysisLikeSchema().JSONSchema()
	assert.Equal(t, "object", m["type"])
	assert.Equal(t, false, m["additionalProperties"])
	props := m["properties"].(map[string]any)
	tags := props["tags"].(map[string]any)
	assert.Equal(t, "array", tags["type"])
	assert.Equal(t, map[string]any{"type": "string"}, tags["items"])
}

func TestNewRejectsMissingKey(t *testing.T) {
	_, err := New(context.Background(), Settings{Provider: ProviderGemini})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	var perm *PermanentError
	assert.True(t, errors.As(err, &perm))

	_, err = New(context.Background(), Settings{Provider: ProviderOpenAI})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestNewUnknownProvider(t *testing.T) {
	_, err := New(context.Background(), Settings{Provider: "nope", APIKey: "k"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestNewFakeProvider(t *testing.T) {
	c, err := New(context.Background(), Settings{Provider: "FAKE"})
	require.NoError(t, err)
	assert.Equal(t, "FakeLLM", c.Name())
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	fake := NewFakeClient()
	c := Wrap(fake, WithLogging(log.New(&buf, "", 0)))

	out, err := c.GenerateText(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "fake suggestion", out)
	assert.Contains(t, buf.String(), "LLM text request (FakeLLM): 5 bytes")

	fake.Err = errors.New("boom")
	_, err = c.GenerateJSON(context.Background(), "p", nil)
	require.Error(t, err)
	assert.True(t, strings.Contains(buf.String(), "LLM json error (FakeLLM): boom"))
	assert.Equal(t, 2, fake.Calls())
}
