package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_CicloCompleto(t *testing.T) {
	ctx := context.Background()
	s := NewLocal(afero.NewMemMapFs(), "http://localhost:8080/storage/")
	p := "north/buildings/tower-a/lease (1).pdf"

	ok, err := s.Exists(ctx, p)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Put(ctx, p, strings.NewReader("%PDF-1.4"), 8, "application/pdf"))
	ok, err = s.Exists(ctx, p)
	require.NoError(t, err)
	assert.True(t, ok)

	rc, err := s.Open(ctx, p)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(body))

	u, err := s.URL(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/storage/north/buildings/tower-a/lease%20%281%29.pdf", u)

	require.NoError(t, s.Delete(ctx, p))
	require.NoError(t, s.Delete(ctx, p), "borrar dos veces no falla")
	ok, err = s.Exists(ctx, p)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCleanKey(t *testing.T) {
	k, err := cleanKey("/north//general/./a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "north/general/a.pdf", k)

	k, err = cleanKey("north/a..b.pdf")
	require.NoError(t, err)
	assert.Equal(t, "north/a..b.pdf", k)

	for _, bad := range []string{"", "/", "..", "../etc/passwd", "north/../../x"} {
		_, err := cleanKey(bad)
		assert.Error(t, err, bad)
	}
}
