package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"collide3d/internal/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dropScene = `
world:
  steps: 120
bodies:
  - name: ball
    shape: {kind: sphere, position: [0, 10, 0], radius: 1}
statics:
  - name: floor
    shape: {kind: plane, position: [0, 0, 0], normal: [0, 1, 0]}
`

func writeScene(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRunAllIsDeterministic(t *testing.T) {
	path := writeScene(t, "drop.yaml", dropScene)

	results, err := runAll(context.Background(), log.NewNop(), []string{path, path}, -1, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, uint64(120), results[0].Steps)
	assert.Equal(t, results[0].Digest, results[1].Digest)
	assert.GreaterOrEqual(t, results[0].Contacts, 1)
	assert.Equal(t, results[0].Contacts, results[1].Contacts)
}

func TestRunAllStepOverride(t *testing.T) {
	path := writeScene(t, "drop.yaml", dropScene)
	results, err := runAll(context.Background(), log.NewNop(), []string{path}, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), results[0].Steps)
	assert.Equal(t, 0, results[0].Contacts)
}

func TestRunAllReportsBadScene(t *testing.T) {
	good := writeScene(t, "drop.yaml", dropScene)
	bad := writeScene(t, "bad.yaml", "world: {time_step: -1}\n")
	_, err := runAll(context.Background(), log.NewNop(), []string{good, bad}, -1, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yaml")
}

func TestRunSceneHonoursCancel(t *testing.T) {
	path := writeScene(t, "drop.yaml", dropScene)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := runAll(ctx, log.NewNop(), []string{path}, -1, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
