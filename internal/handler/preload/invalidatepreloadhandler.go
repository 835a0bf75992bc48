// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package preload

import (
	"net/http"

	"github.com/joeblew999/plat-webfonts/internal/logic/preload"
	"github.com/joeblew999/plat-webfonts/internal/svc"
	"github.com/zeromicro/go-zero/rest/httpx"
)

func InvalidatePreloadHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := preload.NewInvalidatePreloadLogic(r.Context(), svcCtx)
		resp, err := l.InvalidatePreload()
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
