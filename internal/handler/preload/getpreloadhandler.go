// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package preload

import (
	"net/http"

	"github.com/joeblew999/plat-webfonts/internal/logic/preload"
	"github.com/joeblew999/plat-webfonts/internal/svc"
	"github.com/zeromicro/go-zero/rest/httpx"
)

func GetPreloadHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := preload.NewGetPreloadLogic(r.Context(), svcCtx)
		resp, err := l.GetPreload()
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
