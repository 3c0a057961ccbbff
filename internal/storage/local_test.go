package storage

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_RoundTrip(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	rel, err := s.UploadFromBytes([]byte("%PDF-1.4"), "Dossier.PDF", "dossiers")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(rel, "dossiers/"))
	assert.True(t, strings.HasSuffix(rel, ".pdf"))
	assert.True(t, s.Exists(rel))

	f, err := s.Download(rel)
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	require.NoError(t, s.Delete(rel))
	assert.False(t, s.Exists(rel))
}

func TestLocalStorage_Upload(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	rel, err := s.Upload(strings.NewReader("a,b\n1,2\n"), "ledger.csv", "exports")
	require.NoError(t, err)
	assert.True(t, s.Exists(rel))
	assert.Equal(t, "text/csv", ContentTypeFor(rel))
}

func TestLocalStorage_ResolveRejectsEscapes(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	for _, p := range []string{"", "/", "   "} {
		_, err := s.Resolve(p)
		assert.ErrorIs(t, err, ErrInvalidPath, p)
	}

	full, err := s.Resolve("../../etc/passwd")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(full, s.basePath))
	assert.False(t, s.Exists("../../etc/passwd"))
}

func TestContentTypes(t *testing.T) {
	assert.Equal(t, "application/pdf", ContentTypeFor("x/y.PDF"))
	assert.Equal(t, "application/octet-stream", ContentTypeFor("x/y.bin"))
	assert.True(t, IsValidContentType("image/png"))
	assert.False(t, IsValidContentType("application/x-msdownload"))
}
