package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidID(t *testing.T) {
	assert.True(t, validID("6f1c2a34-9a1e-4c57-8d4f-2b3c4d5e6f70"))
	assert.False(t, validID(""))
	assert.False(t, validID("court-a"))
	assert.False(t, validID("6f1c2a34-9a1e-4c57-8d4f"))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%\_off\\`, escapeLike(`50%_off\`))
}
