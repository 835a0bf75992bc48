// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package preload

import (
	"context"

	"github.com/joeblew999/plat-webfonts/internal/svc"
	"github.com/joeblew999/plat-webfonts/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
)

type InvalidatePreloadLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewInvalidatePreloadLogic(ctx context.Context, svcCtx *svc.ServiceContext) *InvalidatePreloadLogic {
	return &InvalidatePreloadLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *InvalidatePreloadLogic) InvalidatePreload() (resp *types.PreloadResponse, err error) {
	l.svcCtx.Preload.Invalidate()
	resp = current(l.svcCtx)
	l.Infow("preload markup recomputed",
		logx.Field("fonts", len(resp.Fonts)),
		logx.Field("format", resp.Format),
	)
	return resp, nil
}
