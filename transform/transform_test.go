package transform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	doc := []byte(`
plugin: example:zerocrossing
output: counts
parameters:
  threshold: 0.25
stepSize: 512
blockSize: 1024
`)
	tr, err := Parse(doc)
	require.NoError(t, err)
	assert.Equal(t, "example:zerocrossing", tr.Plugin)
	assert.Equal(t, "counts", tr.Output)
	assert.Equal(t, float32(0.25), tr.Parameters["threshold"])
	assert.Equal(t, 512, tr.StepSize)
	assert.Equal(t, 1024, tr.BlockSize)
}

func TestParseMinimal(t *testing.T) {
	tr, err := Parse([]byte("plugin: example:power\n"))
	require.NoError(t, err)
	assert.Equal(t, "example:power", tr.Plugin)
	assert.Empty(t, tr.Output)
	assert.Zero(t, tr.StepSize)
	assert.Zero(t, tr.BlockSize)
}

func TestParseRejectsBadDocuments(t *testing.T) {
	_, err := Parse([]byte("{not yaml"))
	assert.Error(t, err)

	_, err = Parse([]byte("output: counts\n"))
	assert.Error(t, err, "missing plugin key must fail validation")
}

func TestValidate(t *testing.T) {
	assert.Error(t, (&Transform{}).Validate())
	assert.Error(t, (&Transform{Plugin: "p", StepSize: -1}).Validate())
	assert.Error(t, (&Transform{Plugin: "p", BlockSize: -1}).Validate())
	assert.Error(t, (&Transform{Plugin: "p", StepSize: 2048, BlockSize: 1024}).Validate())

	assert.NoError(t, (&Transform{Plugin: "p"}).Validate())
	assert.NoError(t, (&Transform{Plugin: "p", StepSize: 512}).Validate())
	assert.NoError(t, (&Transform{Plugin: "p", StepSize: 512, BlockSize: 512}).Validate())
}

func TestLoadAndEncodeRoundTrip(t *testing.T) {
	original := &Transform{
		Plugin:     "example:power",
		Output:     "power",
		Parameters: map[string]float32{"scale": 1},
		BlockSize:  2048,
	}
	encoded, err := original.Encode()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, encoded, 0o644))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
