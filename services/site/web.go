package site

import (
	"context"
	"embed"
	"html/template"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/funkyshop/storefront/lib/mycontext"
	"github.com/funkyshop/storefront/lib/myerrors"
	"github.com/funkyshop/storefront/lib/myhttp"
	"github.com/funkyshop/storefront/lib/mylog"
)

type webService struct {
	logger mylog.Logger
}

func NewService(logger mylog.Logger) *webService {
	return &webService{
		logger: logger,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	for path, p := range pages {
		router.HandleFunc(path, s.staticPage(p, http.StatusOK)).Methods("GET")
	}
	router.NotFoundHandler = s.staticPage(notFoundPage, http.StatusNotFound)
}

//go:embed templates
var templateFolder embed.FS

var pageTemplate *template.Template

func init() {
	pageTemplate = template.Must(template.ParseFS(templateFolder, "templates/page.html"))
}

func (s *webService) staticPage(p page, status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		err := pageTemplate.Execute(w, p)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInternalError(err))
		}
	}
}
