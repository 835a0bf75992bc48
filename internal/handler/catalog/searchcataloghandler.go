// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package catalog

import (
	"net/http"

	"github.com/joeblew999/plat-webfonts/internal/logic/catalog"
	"github.com/joeblew999/plat-webfonts/internal/svc"
	"github.com/joeblew999/plat-webfonts/internal/types"
	"github.com/zeromicro/go-zero/rest/httpx"
)

func SearchCatalogHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.SearchCatalogRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		l := catalog.NewSearchCatalogLogic(r.Context(), svcCtx)
		resp, err := l.SearchCatalog(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
