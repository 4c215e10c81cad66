package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const endpointsHCL = `
endpoint "/" {
  requiredKeys = ["message", "version", "status"]
}

endpoint "/health" {
  requiredKeys = ["status"]
}
`

func TestGenerateFromPathReadsSingleFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "endpoints.hcl")
	require.NoError(t, os.WriteFile(file, []byte(endpointsHCL), 0o644))

	p := Probe{}
	require.NoError(t, p.GenerateFromPath(file))

	require.Len(t, p.Endpoints, 2)
	assert.Equal(t, "/", p.Endpoints[0].Path)
	assert.Equal(t, []string{"message", "version", "status"}, p.Endpoints[0].RequiredKeys)
	assert.Equal(t, "/health", p.Endpoints[1].Path)
	assert.Equal(t, []string{"status"}, p.Endpoints[1].RequiredKeys)
}

func TestGenerateFromPathReadsDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.hcl"), []byte(endpointsHCL), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.hcl"), []byte(`endpoint "/api/v1/agent" {
  requiredKeys = ["agent_name"]
}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0o644))

	p := Probe{}
	require.NoError(t, p.GenerateFromPath(dir))

	require.Len(t, p.Endpoints, 3)
	assert.Equal(t, "/api/v1/agent", p.Endpoints[2].Path)
}

func TestGenerateFromPathRejectsEmptyConfig(t *testing.T) {
	file := filepath.Join(t.TempDir(), "empty.hcl")
	require.NoError(t, os.WriteFile(file, []byte("# nothing here\n"), 0o644))

	p := Probe{}
	assert.ErrorContains(t, p.GenerateFromPath(file), "no endpoints configured")
}

func TestGenerateFromPathFailsOnMissingPath(t *testing.T) {
	p := Probe{}
	assert.Error(t, p.GenerateFromPath(filepath.Join(t.TempDir(), "missing.hcl")))
}

func TestGenerateFromPathFailsOnInvalidHCL(t *testing.T) {
	file := filepath.Join(t.TempDir(), "broken.hcl")
	require.NoError(t, os.WriteFile(file, []byte(`endpoint "/" {`), 0o644))

	p := Probe{}
	assert.ErrorContains(t, p.GenerateFromPath(file), "could not parse endpoint file")
}
