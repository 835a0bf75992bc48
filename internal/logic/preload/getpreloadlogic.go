// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package preload

import (
	"context"

	"github.com/joeblew999/plat-webfonts/internal/svc"
	"github.com/joeblew999/plat-webfonts/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
)

type GetPreloadLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetPreloadLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetPreloadLogic {
	return &GetPreloadLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *GetPreloadLogic) GetPreload() (resp *types.PreloadResponse, err error) {
	return current(l.svcCtx), nil
}

func current(svcCtx *svc.ServiceContext) *types.PreloadResponse {
	fonts := svcCtx.Fonts.Fonts()
	if fonts == nil {
		fonts = []string{}
	}
	return &types.PreloadResponse{
		Markup: svcCtx.Preload.Build(),
		Fonts:  fonts,
		Format: string(svcCtx.Fonts.Format()),
	}
}
