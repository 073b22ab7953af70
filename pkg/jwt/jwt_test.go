package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateYParse(t *testing.T) {
	tok, err := Generate("k", Identity{UserID: 3, Role: "tenant", TenantID: 11}, "estatedesk", 10)
	require.NoError(t, err)

	id, err := Parse("k", tok)
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: 3, Role: "tenant", TenantID: 11}, id)

	_, err = Parse("otra", tok)
	assert.Error(t, err, "firma incorrecta")
}

func TestParse_Expirado(t *testing.T) {
	tok, err := Generate("k", Identity{UserID: 1, Role: "staff"}, "estatedesk", -1)
	require.NoError(t, err)
	_, err = Parse("k", tok)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := Generate("", Identity{UserID: 1}, "x", 1)
	assert.Error(t, err)
	_, err = Parse("", "a.b.c")
	assert.Error(t, err)
}
