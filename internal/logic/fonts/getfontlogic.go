// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package fonts

import (
	"context"

	"github.com/joeblew999/plat-webfonts/internal/errorx"
	"github.com/joeblew999/plat-webfonts/internal/svc"
	"github.com/joeblew999/plat-webfonts/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
)

type GetFontLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetFontLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetFontLogic {
	return &GetFontLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *GetFontLogic) GetFont(req *types.GetFontRequest) (resp *types.FontItem, err error) {
	info, ok := l.svcCtx.Registry.Get(req.Filename)
	if !ok {
		return nil, errorx.ErrNotFound("font not found: " + req.Filename)
	}

	item := toFontItem(info)
	return &item, nil
}
