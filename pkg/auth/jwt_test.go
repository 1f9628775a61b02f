package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParse(t *testing.T) {
	p := NewTokenParser("secret")

	tok, err := p.Sign("user-1", "a@b.c", time.Minute)
	require.NoError(t, err)

	claims, err := p.ParseValidate(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Sub)
	assert.Equal(t, "a@b.c", claims.Email)
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := NewTokenParser("secret").Sign("user-1", "", time.Minute)
	require.NoError(t, err)

	_, err = NewTokenParser("other").ParseValidate(tok)
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	p := NewTokenParser("secret")
	tok, err := p.Sign("user-1", "", -time.Minute)
	require.NoError(t, err)

	_, err = p.ParseValidate(tok)
	assert.Error(t, err)
}

func TestParse_NoSubject(t *testing.T) {
	p := NewTokenParser("secret")
	tok, err := p.Sign("", "", time.Minute)
	require.NoError(t, err)

	_, err = p.ParseValidate(tok)
	assert.Error(t, err)
}

func TestParse_Garbage(t *testing.T) {
	_, err := NewTokenParser("secret").ParseValidate("not-a-token")
	assert.Error(t, err)
}
