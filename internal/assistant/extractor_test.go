package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractParsesNameAndContacts(t *testing.T) {
	cm := &fakeChatModel{}
	cm.enqueue("  Jane Doe \n", nil)
	cm.enqueue("```json\n{\"email\": \"jane@x.com\", \"phone\": null, \"linkedin_url\": \"linkedin.com/in/jane\"}\n```", nil)

	p, err := NewExtractor(cm).Extract(context.Background(), "Jane Doe\njane@x.com\nexperience...")
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", p.Name)
	assert.Equal(t, "jane@x.com", p.Email)
	assert.Empty(t, p.Phone)
	assert.Equal(t, "linkedin.com/in/jane", p.LinkedIn)
}

func TestExtractFallsBackOnMalformedJSON(t *testing.T) {
	cm := &fakeChatModel{}
	cm.enqueue("Jane Doe", nil)
	cm.enqueue("I could not find any contact information, sorry!", nil)

	p, err := NewExtractor(cm).Extract(context.Background(), "resume text")
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", p.Name)
	assert.Empty(t, p.Email)
	assert.Empty(t, p.Phone)
	assert.Empty(t, p.LinkedIn)
}

func TestExtractToleratesNameFailure(t *testing.T) {
	cm := &fakeChatModel{}
	cm.enqueue("", errors.New("timeout"))
	cm.enqueue(`{"email": "j@x.com", "phone": "555-000-1111", "linkedin_url": null}`, nil)

	p, err := NewExtractor(cm).Extract(context.Background(), "resume text")
	require.NoError(t, err)

	assert.Empty(t, p.Name)
	assert.Equal(t, "j@x.com", p.Email)
	assert.Equal(t, "555-000-1111", p.Phone)
}

func TestExtractToleratesTotalFailure(t *testing.T) {
	cm := &fakeChatModel{}
	cm.enqueue("", errors.New("down"))
	cm.enqueue("", errors.New("down"))

	p, err := NewExtractor(cm).Extract(context.Background(), "resume text")
	require.NoError(t, err)
	assert.Equal(t, "", p.Name)
	assert.Equal(t, "", p.Email)
}

func TestExtractClipsLongResumes(t *testing.T) {
	cm := &fakeChatModel{}
	cm.enqueue("Jane", nil)
	cm.enqueue(`{"email": null, "phone": null, "linkedin_url": null}`, nil)

	long := strings.Repeat("x", 10_000)
	_, err := NewExtractor(cm).Extract(context.Background(), long)
	require.NoError(t, err)

	require.Len(t, cm.requests, 2)
	namePrompt := cm.requests[0][0].Content
	contactPrompt := cm.requests[1][0].Content
	assert.Less(t, len(namePrompt), 3000)
	assert.Less(t, len(contactPrompt), 4000)
}

func TestCleanJSON(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{`{"a":1}`, `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanJSON(tt.in))
	}
}
