package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveEnvReadsPrefixedVariable(t *testing.T) {
	t.Setenv("AI_ALPHA_TEST_VALUE", "from-env")

	assert.Equal(t, "from-env", ResolveEnv("ENV:AI_ALPHA_TEST_VALUE"))
	assert.Equal(t, "literal", ResolveEnv("literal"))
}

func TestSetDefaultStringIfEmpty(t *testing.T) {
	assert.Equal(t, "fallback", SetDefaultStringIfEmpty("", "fallback", "field", "test"))
	assert.Equal(t, "set", SetDefaultStringIfEmpty("set", "fallback", "field", "test"))
}

func TestJoinURL(t *testing.T) {
	assert.Equal(t, "http://localhost:8000/", JoinURL("http://localhost:8000", "/"))
	assert.Equal(t, "http://localhost:8000/health", JoinURL("http://localhost:8000/", "/health"))
	assert.Equal(t, "http://localhost:8000/api/v1/agent", JoinURL("http://localhost:8000", "api/v1/agent"))
}
