package oafront

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	result := Version()
	assert.NotEmpty(t, result)
	assert.True(t, result == "dev" || strings.HasPrefix(result, "v"),
		"Version() should be 'dev' or start with 'v', got: %s", result)
}

func TestUserAgent(t *testing.T) {
	userAgent := UserAgent()

	parts := strings.SplitN(userAgent, "/", 2)
	require.Len(t, parts, 2)
	assert.Equal(t, "oafront", parts[0])
	assert.Equal(t, Version(), parts[1])
	assert.NotContains(t, userAgent, " ")
	assert.NotContains(t, userAgent, "\n")
}

func TestBuildInfo(t *testing.T) {
	result := BuildInfo()

	assert.Contains(t, result, "Version: "+Version())
	assert.Contains(t, result, "Commit: "+Commit())
	assert.Contains(t, result, "Go Version: "+runtime.Version())
	assert.Equal(t, 2, strings.Count(result, "\n"))
}
