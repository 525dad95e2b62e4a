package shipping

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
	"github.com/funkyshop/storefront/lib/mypublisher"
	"github.com/funkyshop/storefront/lib/mystore"
	"github.com/funkyshop/storefront/lib/mytime"
	"github.com/funkyshop/storefront/lib/myuuid"
	"github.com/funkyshop/storefront/services/orderevents"
	"github.com/funkyshop/storefront/services/orderflow"
	"github.com/funkyshop/storefront/services/orders"
)

type webService struct {
	service           *service
	uuider            myuuid.UUIDer
	logger            mylog.Logger
	codConfirmSeconds int
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(sessionStore mystore.Store[orderflow.FlowSession], orderStore mystore.Store[orders.Order], publisher mypublisher.Publisher, nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger, codConfirmSeconds int) *webService {
	return &webService{
		service:           newService(sessionStore, orderStore, publisher, nower, uuider, logger),
		uuider:            uuider,
		logger:            logger,
		codConfirmSeconds: codConfirmSeconds,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	err := s.service.publisher.CreateTopic(c, orderevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", orderevents.TopicName, err)
	}

	router.HandleFunc("/shipping", s.shippingPage()).Methods("GET")
	router.HandleFunc("/shipping/captcha", s.verifyCaptchaPage()).Methods("POST")
	router.HandleFunc("/shipping/cod", s.submitOrderPage(orders.PaymentMethodCOD)).Methods("POST")
	router.HandleFunc("/shipping/online", s.submitOrderPage(orders.PaymentMethodOnline)).Methods("POST")

	return nil
}

//go:embed templates
var templateFolder embed.FS

var (
	shippingPageTemplate     *template.Template
	codConfirmedPageTemplate *template.Template
)

func init() {
	shippingPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/shipping.html"))
	codConfirmedPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/cod_confirmed.html"))
}

func (s *webService) shippingPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		sessionUID := orderflow.EnsureSessionUID(w, r, s.uuider)

		data, found, err := s.service.viewShippingPage(c, sessionUID)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}
		if !found {
			// No product draft: the shopper skipped the shopping step.
			http.Redirect(w, r, fmt.Sprintf("%s/shopping", myhttp.HostnameWithScheme(r)), http.StatusSeeOther)
			return
		}

		s.renderPage(c, w, data)
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

		verified, err := s.service.verifyPaymentCaptcha(c, sessionUID, answer)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		if !verified {
			data, found, err := s.service.pageDataForForm(c, sessionUID, ShippingForm{}, "That answer is not correct. Try again!", nil)
			if err != nil {
				errorWriter.WriteError(c, w, 3, err)
				return
			}
			if !found {
				http.Redirect(w, r, fmt.Sprintf("%s/shopping", myhttp.HostnameWithScheme(r)), http.StatusSeeOther)
				return
			}
			s.renderPage(c, w, data)
			return
		}

		http.Redirect(w, r, fmt.Sprintf("%s/shipping", myhttp.HostnameWithScheme(r)), http.StatusSeeOther)
	}
}

func (s *webService) submitOrderPage(method orders.PaymentMethod) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		sessionUID := orderflow.EnsureSessionUID(w, r, s.uuider)

		form, err := shippingFormFromRequest(r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		result, err := s.service.submitOrder(c, sessionUID, form, method)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		if result.DraftMissing {
			http.Redirect(w, r, fmt.Sprintf("%s/shopping", myhttp.HostnameWithScheme(r)), http.StatusSeeOther)
			return
		}

		if !result.OK {
			data, found, err := s.service.pageDataForForm(c, sessionUID, form, result.Notice, result.FieldErrors)
			if err != nil {
				errorWriter.WriteError(c, w, 3, err)
				return
			}
			if !found {
				http.Redirect(w, r, fmt.Sprintf("%s/shopping", myhttp.HostnameWithScheme(r)), http.StatusSeeOther)
				return
			}
			s.renderPage(c, w, data)
			return
		}

		if method == orders.PaymentMethodOnline {
			http.Redirect(w, r, fmt.Sprintf("%s/payment-upload", myhttp.HostnameWithScheme(r)), http.StatusSeeOther)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err = codConfirmedPageTemplate.Execute(w, codConfirmedPageData{
			CustomerName:    result.Order.CustomerName,
			RedirectSeconds: s.codConfirmSeconds,
		})
		if err != nil {
			errorWriter.WriteError(c, w, 4, myerrors.NewInternalError(err))
		}
	}
}

func (s *webService) renderPage(c context.Context, w http.ResponseWriter, data shippingPageData) {
	errorWriter := myhttp.NewWriter(s.logger)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := shippingPageTemplate.Execute(w, data)
	if err != nil {
		errorWriter.WriteError(c, w, 1, myerrors.NewInternalError(err))
	}
}
