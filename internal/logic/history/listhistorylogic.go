// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package history

import (
	"context"

	"github.com/joeblew999/plat-webfonts/internal/errorx"
	"github.com/joeblew999/plat-webfonts/internal/svc"
	"github.com/joeblew999/plat-webfonts/internal/types"
	eventlog "github.com/joeblew999/plat-webfonts/pkg/history"

	"github.com/zeromicro/go-zero/core/logx"
)

const maxLimit = 500

type ListHistoryLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewListHistoryLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ListHistoryLogic {
	return &ListHistoryLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ListHistoryLogic) ListHistory(req *types.ListHistoryRequest) (resp *types.ListHistoryResponse, err error) {
	if req.Limit <= 0 || req.Limit > maxLimit {
		return nil, errorx.ErrBadRequest("limit must be between 1 and 500")
	}

	events, err := l.svcCtx.History.List(l.ctx, req.Limit)
	if err != nil {
		return nil, err
	}
	return toResponse(events), nil
}

func toResponse(events []eventlog.Event) *types.ListHistoryResponse {
	items := make([]types.HistoryItem, 0, len(events))
	for _, e := range events {
		fields := e.Fields()
		details := make(map[string]string, len(fields))
		for key := range fields {
			details[key] = fields.Get(key)
		}
		items = append(items, types.HistoryItem{
			Id:        e.ID,
			RunId:     e.RunID,
			FontId:    e.FontID,
			Type:      e.Type,
			Details:   details,
			Timestamp: e.Timestamp,
		})
	}
	return &types.ListHistoryResponse{
		Events: items,
		Count:  len(items),
	}
}
