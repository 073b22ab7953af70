package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estatedesk-api/internal/infrastructure/postgres"
)

func TestPrintStatus(t *testing.T) {
	var buf bytes.Buffer
	printStatus(&buf, []postgres.MigrationStatus{
		{Version: 1, Name: "init", Applied: true},
		{Version: 2, Name: "documents_index"},
	}, false)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Version"))
	assert.Contains(t, lines[1], "init")
	assert.Contains(t, lines[1], "Applied")
	assert.Contains(t, lines[2], "Pending")
}

func TestPrintStatus_Dirty(t *testing.T) {
	var buf bytes.Buffer
	printStatus(&buf, nil, true)
	assert.Contains(t, buf.String(), "dirty")
}

func TestRootCmd_Subcomandos(t *testing.T) {
	root := newRootCmd()
	for _, path := range [][]string{{"migrate", "up"}, {"migrate", "down"}, {"migrate", "status"}, {"staff", "create"}} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}
