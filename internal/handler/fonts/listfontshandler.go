// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package fonts

import (
	"net/http"

	"github.com/joeblew999/plat-webfonts/internal/logic/fonts"
	"github.com/joeblew999/plat-webfonts/internal/svc"
	"github.com/zeromicro/go-zero/rest/httpx"
)

func ListFontsHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := fonts.NewListFontsLogic(r.Context(), svcCtx)
		resp, err := l.ListFonts()
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
