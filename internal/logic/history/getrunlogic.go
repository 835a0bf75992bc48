// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package history

import (
	"context"

	"github.com/joeblew999/plat-webfonts/internal/errorx"
	"github.com/joeblew999/plat-webfonts/internal/svc"
	"github.com/joeblew999/plat-webfonts/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
)

type GetRunLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetRunLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetRunLogic {
	return &GetRunLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *GetRunLogic) GetRun(req *types.GetRunRequest) (resp *types.ListHistoryResponse, err error) {
	events, err := l.svcCtx.History.Run(l.ctx, req.RunId)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, errorx.ErrNotFound("run not found: " + req.RunId)
	}
	return toResponse(events), nil
}
