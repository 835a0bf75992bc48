package history

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/joeblew999/plat-webfonts/internal/errorx"
	"github.com/joeblew999/plat-webfonts/internal/svc"
	"github.com/joeblew999/plat-webfonts/internal/types"
	"github.com/joeblew999/plat-webfonts/pkg/db"
	"github.com/joeblew999/plat-webfonts/pkg/font"
	eventlog "github.com/joeblew999/plat-webfonts/pkg/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServiceContext(t *testing.T) *svc.ServiceContext {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "webfonts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	recorder, err := eventlog.NewRecorder(database.SqlConn())
	require.NoError(t, err)
	return &svc.ServiceContext{History: recorder}
}

func TestListHistory(t *testing.T) {
	ctx := context.Background()
	svcCtx := newServiceContext(t)
	svcCtx.History.Record(ctx, font.InstallEvent{RunID: "run-1", Type: font.EventRunStarted, Details: map[string]any{"fonts": 1}})
	svcCtx.History.Record(ctx, font.InstallEvent{RunID: "run-1", FontID: "inter", Type: font.EventFontInstalled, Details: map[string]any{"faces": 2, "files": 2}})
	svcCtx.History.Flush()

	t.Run("NewestFirst", func(t *testing.T) {
		resp, err := NewListHistoryLogic(ctx, svcCtx).ListHistory(&types.ListHistoryRequest{Limit: 10})
		require.NoError(t, err)
		require.Equal(t, 2, resp.Count)
		assert.Equal(t, font.EventFontInstalled, resp.Events[0].Type)
		assert.Equal(t, map[string]string{"faces": "2", "files": "2"}, resp.Events[0].Details)
	})

	t.Run("RejectsBadLimit", func(t *testing.T) {
		for _, limit := range []int{0, -1, 501} {
			_, err := NewListHistoryLogic(ctx, svcCtx).ListHistory(&types.ListHistoryRequest{Limit: limit})
			var codeErr *errorx.CodeError
			require.ErrorAs(t, err, &codeErr)
			assert.Equal(t, http.StatusBadRequest, codeErr.Code)
		}
	})
}

func TestGetRun(t *testing.T) {
	ctx := context.Background()
	svcCtx := newServiceContext(t)
	svcCtx.History.Record(ctx, font.InstallEvent{RunID: "run-1", Type: font.EventRunStarted})
	svcCtx.History.Record(ctx, font.InstallEvent{RunID: "run-1", Type: font.EventRunFinished, Details: map[string]any{"succeeded": true}})
	svcCtx.History.Record(ctx, font.InstallEvent{RunID: "run-2", Type: font.EventRunStarted})
	svcCtx.History.Flush()

	resp, err := NewGetRunLogic(ctx, svcCtx).GetRun(&types.GetRunRequest{RunId: "run-1"})
	require.NoError(t, err)
	require.Equal(t, 2, resp.Count)
	assert.Equal(t, font.EventRunStarted, resp.Events[0].Type)
	assert.Equal(t, "true", resp.Events[1].Details["succeeded"])

	_, err = NewGetRunLogic(ctx, svcCtx).GetRun(&types.GetRunRequest{RunId: "missing"})
	var codeErr *errorx.CodeError
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, http.StatusNotFound, codeErr.Code)
}
