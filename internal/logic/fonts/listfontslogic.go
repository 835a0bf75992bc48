// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package fonts

import (
	"context"
	"time"

	"github.com/joeblew999/plat-webfonts/internal/svc"
	"github.com/joeblew999/plat-webfonts/internal/types"
	"github.com/joeblew999/plat-webfonts/pkg/font"

	"github.com/zeromicro/go-zero/core/logx"
)

type ListFontsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewListFontsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ListFontsLogic {
	return &ListFontsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ListFontsLogic) ListFonts() (resp *types.ListFontsResponse, err error) {
	// the CLI writes the registry from another process
	l.svcCtx.Registry.Reload()
	infos := l.svcCtx.Registry.List()

	items := make([]types.FontItem, 0, len(infos))
	for _, info := range infos {
		items = append(items, toFontItem(info))
	}

	return &types.ListFontsResponse{
		Fonts: items,
		Count: len(items),
	}, nil
}

func toFontItem(info font.FontInfo) types.FontItem {
	item := types.FontItem{
		Filename: info.Filename,
		Family:   info.Family,
		Weight:   info.Weight,
		Style:    info.Style,
		Format:   info.Format,
		Path:     info.Path,
		Size:     info.Size,
		Source:   info.Source,
	}
	if !info.InstalledAt.IsZero() {
		item.InstalledAt = info.InstalledAt.Format(time.RFC3339)
	}
	return item
}
