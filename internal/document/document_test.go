package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPlainText(t *testing.T) {
	text, err := Extract("resume.txt", []byte("Jane Doe\nEngineer"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nEngineer", text)
}

func TestExtractExtensionIsCaseInsensitive(t *testing.T) {
	text, err := Extract("RESUME.TXT", []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
}

func TestExtractRejectsUnsupportedFormats(t *testing.T) {
	for _, name := range []string{"resume.exe", "resume.png", "resume", "archive.tar.gz"} {
		_, err := Extract(name, []byte("data"))
		assert.ErrorIs(t, err, ErrUnsupported, "filename %q", name)
	}
}

func TestExtractRejectsCorruptPDF(t *testing.T) {
	_, err := Extract("resume.pdf", []byte("definitely not a pdf"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnsupported)
}

func TestExtractorAdapter(t *testing.T) {
	text, err := Extractor{}.Text("a.txt", []byte("ok"))
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
}
