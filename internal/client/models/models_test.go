package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile_AuthorAndLabel(t *testing.T) {
	var nilProfile *Profile
	assert.Equal(t, "", nilProfile.Author())
	assert.Equal(t, "Authenticated User", nilProfile.Label())

	assert.Equal(t, "Alice", (&Profile{DisplayName: "Alice", Name: "alice"}).Author())
	assert.Equal(t, "alice", (&Profile{Name: "alice"}).Author())
	assert.Equal(t, "Authenticated User", (&Profile{}).Label())
}

func TestClaims_String(t *testing.T) {
	c := Claims{"name": "Alice", "exp": float64(10)}
	assert.Equal(t, "Alice", c.String("name"))
	assert.Equal(t, "", c.String("exp"))
	assert.Equal(t, "", c.String("missing"))
	assert.Equal(t, "", Claims(nil).String("name"))
}

func TestFormatKB(t *testing.T) {
	assert.Equal(t, "0.00", FormatKB(0))
	assert.Equal(t, "1.00", FormatKB(1024))
	assert.Equal(t, "1.50", FormatKB(1536))
}

func TestStatFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a":1}`), 0o600))

	f, err := StatFile(path)
	require.NoError(t, err)
	assert.Equal(t, "report.json", f.Name)
	assert.Equal(t, int64(7), f.Size)
	assert.Equal(t, "application/json", f.ContentType)
	assert.Equal(t, path, f.Path)

	noExt := filepath.Join(dir, "blob")
	require.NoError(t, os.WriteFile(noExt, []byte("x"), 0o600))
	f, err = StatFile(noExt)
	require.NoError(t, err)
	assert.Equal(t, "", f.ContentType)

	_, err = StatFile(dir)
	require.Error(t, err)

	_, err = StatFile(filepath.Join(dir, "missing"))
	require.Error(t, err)
}
