package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agriyield/domain/core"
)

func TestCategoryEncoderFirstObservationOrder(t *testing.T) {
	enc := NewCategoryEncoder("state")
	enc.Fit([]string{"Punjab", "Kerala", "Punjab", "Goa", "Kerala"})

	assert.Equal(t, []string{"Punjab", "Kerala", "Goa"}, enc.Classes)
	assert.Equal(t, 3, enc.Cardinality())

	code, seen, err := enc.Encode("Goa", UnseenFallback)
	require.NoError(t, err)
	assert.True(t, seen)
	assert.Equal(t, 2, code)
}

func TestCategoryEncoderUnseenFallback(t *testing.T) {
	enc := NewCategoryEncoder("state")
	enc.Fit([]string{"Punjab", "Kerala"})

	code, seen, err := enc.Encode("Atlantis", UnseenFallback)
	require.NoError(t, err)
	assert.False(t, seen)
	assert.Equal(t, FallbackCode, code)

	code, seen, err = enc.Encode("Atlantis", UnseenWarnFallback)
	require.NoError(t, err)
	assert.False(t, seen)
	assert.Equal(t, FallbackCode, code)
}

func TestCategoryEncoderUnseenReject(t *testing.T) {
	enc := NewCategoryEncoder("state")
	enc.Fit([]string{"Punjab"})

	_, _, err := enc.Encode("Atlantis", UnseenReject)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnseenCategory)
	assert.Contains(t, err.Error(), "state")
	assert.Contains(t, err.Error(), "Atlantis")
}

func TestParseUnseenPolicy(t *testing.T) {
	policy, err := ParseUnseenPolicy("")
	require.NoError(t, err)
	assert.Equal(t, UnseenFallback, policy)

	policy, err = ParseUnseenPolicy("reject")
	require.NoError(t, err)
	assert.Equal(t, UnseenReject, policy)

	_, err = ParseUnseenPolicy("explode")
	assert.Error(t, err)
}
