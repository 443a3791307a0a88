package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amaan1133/eagle/internal/apperrors"
)

func TestAllowed(t *testing.T) {
	cases := map[string]bool{
		"report.pdf":   true,
		"REPORT.PDF":   true,
		"sheet.xlsx":   true,
		"legacy.xls":   true,
		"memo.doc":     true,
		"memo.docx":    true,
		"notes.txt":    true,
		"data.csv":     true,
		"payload.exe":  false,
		"script.sh":    false,
		"image.png":    false,
		"noextension":  false,
		"archive.pdf.": false,
	}
	for filename, want := range cases {
		assert.Equal(t, want, Allowed(filename), filename)
	}
}

func TestSaveAndOpen(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	name, path, size, err := store.Save("report.pdf", strings.NewReader("content"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".pdf"))
	assert.NotEqual(t, "report.pdf", name)
	assert.EqualValues(t, 7, size)

	f, err := store.Open(path)
	require.NoError(t, err)
	defer f.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestSaveRejectsDisallowedExtension(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, _, _, err = store.Save("virus.exe", strings.NewReader("x"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestOpenRefusesPathOutsideStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(filepath.Join(dir, "uploads"))
	require.NoError(t, err)

	outside := filepath.Join(dir, "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("secret"), 0o600))

	_, err = store.Open(outside)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = store.Open(filepath.Join(dir, "uploads", "..", "secret.txt"))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRemoveMissingFileIsNoError(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Remove(filepath.Join("does", "not", "exist")))
}
