// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package catalog

import (
	"context"
	"errors"

	"github.com/joeblew999/plat-webfonts/internal/errorx"
	"github.com/joeblew999/plat-webfonts/internal/svc"
	"github.com/joeblew999/plat-webfonts/internal/types"
	"github.com/joeblew999/plat-webfonts/pkg/font"

	"github.com/zeromicro/go-zero/core/logx"
)

type SearchCatalogLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewSearchCatalogLogic(ctx context.Context, svcCtx *svc.ServiceContext) *SearchCatalogLogic {
	return &SearchCatalogLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *SearchCatalogLogic) SearchCatalog(req *types.SearchCatalogRequest) (resp *types.SearchCatalogResponse, err error) {
	catalog, err := l.svcCtx.Catalog.Fetch(l.ctx)
	if errors.Is(err, font.ErrCatalogUnavailable) {
		l.Errorf("fetch catalog: %v", err)
		return nil, errorx.ErrUnavailable("font catalog unavailable")
	}
	if err != nil {
		return nil, err
	}

	found := catalog.Search(req.Query)
	if req.Limit > 0 && len(found) > req.Limit {
		found = found[:req.Limit]
	}

	items := make([]types.CatalogItem, 0, len(found))
	for _, f := range found {
		items = append(items, types.CatalogItem{
			Id:             f.ID,
			Family:         f.Family,
			Category:       f.Category,
			Variants:       f.Variants,
			Subsets:        f.Subsets,
			DefaultVariant: f.DefaultVariant,
			DefaultSubset:  f.DefaultSubset,
		})
	}

	return &types.SearchCatalogResponse{
		Fonts: items,
		Count: len(items),
	}, nil
}
