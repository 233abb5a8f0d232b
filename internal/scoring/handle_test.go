package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := writeTestArtifact(t, []string{"opportunity_duration_days", "product_GTK 500"})

	handle := Load(dir)
	require.True(t, handle.Ready())
	assert.NoError(t, handle.Err())
	assert.False(t, handle.LoadedAt().IsZero())

	artifact, err := handle.Artifact()
	require.NoError(t, err)
	assert.Equal(t, "test-1", artifact.Version)
}

func TestLoad_FailureKeepsCause(t *testing.T) {
	handle := Load(t.TempDir())
	require.NotNil(t, handle)
	assert.False(t, handle.Ready())
	assert.True(t, handle.LoadedAt().IsZero())

	_, err := handle.Artifact()
	assert.ErrorIs(t, err, ErrModelNotLoaded)
	assert.Contains(t, err.Error(), PipelineFile)
}

func TestHandle_ZeroValue(t *testing.T) {
	var handle Handle
	assert.False(t, handle.Ready())
	assert.ErrorIs(t, handle.Err(), ErrModelNotLoaded)

	var nilHandle *Handle
	_, err := nilHandle.Artifact()
	assert.ErrorIs(t, err, ErrModelNotLoaded)

	assert.ErrorIs(t, NewHandle(nil).Err(), ErrModelNotLoaded)
}
