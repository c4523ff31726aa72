package info

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/ftf/pkg/store"
	"tableflip.dev/ftf/pkg/week"
)

func TestInfo(t *testing.T) {
	t.Setenv("FTF_CONFIG_PATH", "")
	mem := store.NewMemory(&week.Week{ID: "2026-W03", Roles: []week.Role{{ID: "r"}}})

	var buf bytes.Buffer
	n := Info{
		Config:      store.StaticConfig("/tmp/ftf", store.BackendMemory),
		Persistence: mem,
		Out:         &buf,
	}
	require.NoError(t, n.Do(context.Background()))

	out := buf.String()
	assert.Contains(t, out, "FTF_CONFIG_PATH env var not set")
	assert.Contains(t, out, "/tmp/ftf")
	assert.Contains(t, out, "memory")
	assert.Contains(t, out, "2026-W03  1 roles, 0 goals")
}

func TestInfoEmpty(t *testing.T) {
	var buf bytes.Buffer
	n := Info{
		Config:      store.StaticConfig("/tmp/ftf", store.BackendMemory),
		Persistence: store.NewMemory(),
		Out:         &buf,
	}
	require.NoError(t, n.Do(context.Background()))
	assert.Contains(t, buf.String(), "no weeks")
}

func TestInfoNeedsPersistence(t *testing.T) {
	n := Info{Config: store.StaticConfig("", ""), Out: &bytes.Buffer{}}
	assert.Error(t, n.Do(context.Background()))
}
