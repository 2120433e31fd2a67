package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateID(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := GenerateID()
		require.False(t, id.IsZero())
		_, dup := seen[id.String()]
		require.False(t, dup, "duplicate id %s", id)
		seen[id.String()] = struct{}{}
	}
}

func TestParseID(t *testing.T) {
	id := GenerateID()

	parsed, err := ParseID(id.String())
	require.NoError(t, err)
	assert.True(t, parsed.Equal(id))

	_, err = ParseID("not-a-uuid")
	assert.Error(t, err)

	_, err = ParseID("00000000-0000-0000-0000-000000000000")
	assert.Error(t, err)
}

func TestID_ZeroValue(t *testing.T) {
	var id ID
	assert.True(t, id.IsZero())
	assert.False(t, id.Equal(GenerateID()))
}
