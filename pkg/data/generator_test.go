package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUser(t *testing.T) {
	g := NewGenerator()

	user, err := g.User()
	require.NoError(t, err)

	assert.NotEmpty(t, user.FirstName)
	assert.NotEmpty(t, user.LastName)
	assert.Contains(t, user.Email, "@")
	assert.NotEmpty(t, user.Password)
	assert.NotEmpty(t, user.Phone)
	assert.NotEmpty(t, user.Address)
}

func TestGeneratedUsersDiffer(t *testing.T) {
	g := NewGenerator()

	first, err := g.User()
	require.NoError(t, err)
	second, err := g.User()
	require.NoError(t, err)

	assert.NotEqual(t, first.Email, second.Email)
}

func TestGenerateEmailAndPassword(t *testing.T) {
	g := NewGenerator()

	email, err := g.Email()
	require.NoError(t, err)
	assert.Contains(t, email, "@")

	password, err := g.Password()
	require.NoError(t, err)
	assert.NotEmpty(t, password)
}
