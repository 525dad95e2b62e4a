package shopping

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/funkyshop/storefront/lib/mycontext"
	"github.com/funkyshop/storefront/lib/myerrors"
	"github.com/funkyshop/storefront/lib/myhttp"
	"github.com/funkyshop/storefront/lib/mylog"
	"github.com/funkyshop/storefront/lib/mystore"
	"github.com/funkyshop/storefront/lib/mytime"
	"github.com/funkyshop/storefront/lib/myuuid"
	"github.com/funkyshop/storefront/services/orderflow"
)

type webService struct {
	service *service
	uuider  myuuid.UUIDer
	logger  mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(sessionStore mystore.Store[orderflow.FlowSession], nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger) *webService {
	return &webService{
		service: newService(sessionStore, nower, uuider, logger),
		uuider:  uuider,
		logger:  logger,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/shopping", s.shoppingPage()).Methods("GET")
	router.HandleFunc("/shopping", s.commitProductDraftPage()).Methods("POST")
	router.HandleFunc("/shopping/captcha", s.verifyCaptchaPage()).Methods("POST")
	router.HandleFunc("/shopping/pick/{index}", s.selectPopularPickPage()).Methods("POST")
}

//go:embed templates
var templateFolder embed.FS

var shoppingPageTemplate *template.Template

func init() {
	shoppingPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/shopping.html"))
}

func (s *webService) shoppingPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		sessionUID := orderflow.EnsureSessionUID(w, r, s.uuider)

		data, err := s.service.viewShoppingPage(c, sessionUID)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		s.renderPage(c, w, data)
	}
}

func (s *webService) selectPopularPickPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		sessionUID := orderflow.EnsureSessionUID(w, r, s.uuider)

		index, err := strconv.Atoi(mux.Vars(r)["index"])
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}

		err = s.service.selectPopularPick(c, sessionUID, index)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		http.Redirect(w, r, fmt.Sprintf("%s/shopping", myhttp.HostnameWithScheme(r)), http.StatusSeeOther)
	}
}

func (s *webService) verifyCaptchaPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		sessionUID := orderflow.EnsureSessionUID(w, r, s.uuider)

		err := r.ParseForm()
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}
		answer, err := strconv.Atoi(r.Form.Get("answer"))
		if err != nil {
			answer = -1 // a non-numeric guess is just a wrong guess
		}

		verified, err := s.service.verifyCaptcha(c, sessionUID, answer)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		if !verified {
			data, err := s.service.pageDataForForm(c, sessionUID, ProductForm{Quantity: 1}, "That answer is not correct. Try again!")
			if err != nil {
				errorWriter.WriteError(c, w, 3, err)
				return
			}
			s.renderPage(c, w, data)
			return
		}

		http.Redirect(w, r, fmt.Sprintf("%s/shopping", myhttp.HostnameWithScheme(r)), http.StatusSeeOther)
	}
}

func (s *webService) commitProductDraftPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		sessionUID := orderflow.EnsureSessionUID(w, r, s.uuider)

		form, err := productFormFromRequest(r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		result, err := s.service.commitProductDraft(c, sessionUID, form)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		if !result.OK {
			data, err := s.service.pageDataForForm(c, sessionUID, form, result.Notice)
			if err != nil {
				errorWriter.WriteError(c, w, 3, err)
				return
			}
			s.renderPage(c, w, data)
			return
		}

		http.Redirect(w, r, fmt.Sprintf("%s/shipping", myhttp.HostnameWithScheme(r)), http.StatusSeeOther)
	}
}

func (s *webService) renderPage(c context.Context, w http.ResponseWriter, data shoppingPageData) {
	errorWriter := myhttp.NewWriter(s.logger)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := shoppingPageTemplate.Execute(w, data)
	if err != nil {
		errorWriter.WriteError(c, w, 1, myerrors.NewInternalError(err))
	}
}
