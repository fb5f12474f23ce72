package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	out := filepath.Join(t.TempDir(), "schema.json")

	var opts options
	opts.Args.Output = out
	require.NoError(t, run(opts))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "#/$defs/Config", doc["$ref"])
	assert.Contains(t, doc["$defs"], "ExtractionConfig")

	t.Run("check up to date", func(t *testing.T) {
		o := opts
		o.Check = true
		require.NoError(t, run(o))
	})

	t.Run("check stale", func(t *testing.T) {
		stale := filepath.Join(t.TempDir(), "schema.json")
		require.NoError(t, os.WriteFile(stale, []byte(`{"$ref":"#/$defs/Old"}`), 0o600))
		o := options{Check: true}
		o.Args.Output = stale
		err := run(o)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is stale")
	})

	t.Run("check missing file", func(t *testing.T) {
		o := options{Check: true}
		o.Args.Output = filepath.Join(t.TempDir(), "nope.json")
		err := run(o)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read")
	})
}
