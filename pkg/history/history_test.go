package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/joeblew999/plat-webfonts/pkg/db"
	"github.com/joeblew999/plat-webfonts/pkg/font"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecorder(t *testing.T) *Recorder {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "webfonts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	recorder, err := NewRecorder(database.SqlConn())
	require.NoError(t, err)
	return recorder
}

func TestRecorder(t *testing.T) {
	ctx := context.Background()
	recorder := newRecorder(t)

	recorder.Record(ctx, font.InstallEvent{RunID: "run-1", Type: font.EventRunStarted, Details: map[string]any{"fonts": 2}})
	recorder.Record(ctx, font.InstallEvent{RunID: "run-1", FontID: "inter", Type: font.EventFontInstalled, Details: map[string]any{"faces": 2}})
	recorder.Record(ctx, font.InstallEvent{RunID: "run-1", FontID: "roboto", Type: font.EventFontFailed})
	recorder.Record(ctx, font.InstallEvent{RunID: "run-2", Type: font.EventRunStarted})
	recorder.Flush()

	t.Run("Run", func(t *testing.T) {
		events, err := recorder.Run(ctx, "run-1")
		require.NoError(t, err)
		require.Len(t, events, 3)
		assert.Equal(t, font.EventRunStarted, events[0].Type)
		assert.Equal(t, "fonts=2", events[0].Details)
		assert.Equal(t, "inter", events[1].FontID)
		assert.Equal(t, "2", events[1].Fields().Get("faces"))
		assert.Empty(t, events[2].Details)
	})

	t.Run("ListNewestFirst", func(t *testing.T) {
		events, err := recorder.List(ctx, 10)
		require.NoError(t, err)
		require.Len(t, events, 4)
		assert.Equal(t, "run-2", events[0].RunID)
	})

	t.Run("ListLimit", func(t *testing.T) {
		events, err := recorder.List(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, events, 2)
	})
}
