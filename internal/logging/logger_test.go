package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitJSONWritesComponentField(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	logger := Component("timeline")
	logger.Info().Int("events", 3).Msg("timeline loaded")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "timeline", entry["component"])
	require.Equal(t, "timeline loaded", entry["message"])
	require.EqualValues(t, 3, entry["events"])
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	require.Equal(t, "info", parseLevel("verbose").String())
	require.Equal(t, "warn", parseLevel("warning").String())
	require.Equal(t, "debug", parseLevel("debug").String())
}

func TestFromContextCarriesUserScope(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "json", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	base := Component("api")
	ctx := WithContext(context.Background(), WithUser(Component("timeline"), 7))
	logger := FromContext(ctx, base)
	logger.Info().Msg("scoped")
	require.Contains(t, buf.String(), `"user_id":7`)
	require.Contains(t, buf.String(), `"component":"timeline"`)

	buf.Reset()
	fallback := FromContext(context.Background(), base)
	fallback.Info().Msg("plain")
	require.NotContains(t, buf.String(), "user_id")
	require.Contains(t, buf.String(), `"component":"api"`)
}

func TestOpenFileCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "doula.log")
	f, err := OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	require.FileExists(t, path)
}
