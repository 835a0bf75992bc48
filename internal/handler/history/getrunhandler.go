// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package history

import (
	"net/http"

	"github.com/joeblew999/plat-webfonts/internal/logic/history"
	"github.com/joeblew999/plat-webfonts/internal/svc"
	"github.com/joeblew999/plat-webfonts/internal/types"
	"github.com/zeromicro/go-zero/rest/httpx"
)

func GetRunHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.GetRunRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		l := history.NewGetRunLogic(r.Context(), svcCtx)
		resp, err := l.GetRun(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
