package hashgate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeHashDeterministic(t *testing.T) {
	payload := map[string]any{"queues": []int{1, 2, 3}}

	h1, err := ComputeHash(payload)
	require.NoError(t, err)
	h2, err := ComputeHash(payload)
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
}

func TestComputeHashDiffers(t *testing.T) {
	h1, err := ComputeHash(map[string]int{"waiting": 3})
	require.NoError(t, err)
	h2, err := ComputeHash(map[string]int{"waiting": 4})
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestHasChanged(t *testing.T) {
	// client belum pernah polling: selalu dianggap berubah
	assert.True(t, HasChanged("", "abc"))

	assert.True(t, HasChanged("lama", "baru"))
	assert.False(t, HasChanged("sama", "sama"))
}
