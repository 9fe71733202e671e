package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSeedForms(t *testing.T) {
	forms, err := Default()
	require.NoError(t, err)
	require.Len(t, forms, 5)

	// Seed order matters: records are created in list order.
	assert.Equal(t, "Jane", forms[0]["firstName"])
	assert.Equal(t, "Zap", forms[4]["firstName"])

	// Optional fields stay absent where the payload omits them.
	_, hasActive := forms[0]["isActive"]
	assert.False(t, hasActive)
	assert.Equal(t, false, forms[1]["isActive"])
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patients.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"firstName":"Bart","lastName":"Simpson","dob":"1980-04-01"}]`), 0o644))

	forms, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, forms, 1)
	assert.Equal(t, "Simpson", forms[0]["lastName"])
}

func TestLoadFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patients.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not":"a list"}`), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}
