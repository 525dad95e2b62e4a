package paymentupload

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"

	"github.com/funkyshop/storefront/lib/myblob"
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
	service              *service
	uuider               myuuid.UUIDer
	logger               mylog.Logger
	uploadConfirmSeconds int
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(sessionStore mystore.Store[orderflow.FlowSession], orderStore mystore.Store[orders.Order], blobStore myblob.BlobStore, publisher mypublisher.Publisher, nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger, uploadConfirmSeconds int) *webService {
	return &webService{
		service:              newService(sessionStore, orderStore, blobStore, publisher, nower, logger),
		uuider:               uuider,
		logger:               logger,
		uploadConfirmSeconds: uploadConfirmSeconds,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	err := s.service.publisher.CreateTopic(c, orderevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", orderevents.TopicName, err)
	}

	router.HandleFunc("/payment-upload", s.uploadPage()).Methods("GET")
	router.HandleFunc("/payment-upload", s.confirmPaymentPage()).Methods("POST")

	return nil
}

//go:embed templates
var templateFolder embed.FS

var (
	uploadPageTemplate          *template.Template
	uploadConfirmedPageTemplate *template.Template
)

func init() {
	uploadPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/payment_upload.html"))
	uploadConfirmedPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/upload_confirmed.html"))
}

func (s *webService) uploadPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		sessionUID := orderflow.EnsureSessionUID(w, r, s.uuider)

		data, found, err := s.service.viewUploadPage(c, sessionUID)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}
		if !found {
			// No pending online order for this session.
			http.Redirect(w, r, fmt.Sprintf("%s/shopping", myhttp.HostnameWithScheme(r)), http.StatusSeeOther)
			return
		}

		s.renderPage(c, w, data)
	}
}

func (s *webService) confirmPaymentPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		sessionUID := orderflow.EnsureSessionUID(w, r, s.uuider)

		err := r.ParseMultipartForm(maxScreenshotBytes + 1024)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}

		file, header, err := r.FormFile("screenshot")
		if err != nil {
			s.renderNotice(c, w, r, sessionUID, noticeNoFile)
			return
		}
		defer file.Close()

		// Refused here, before a single byte goes to blob storage.
		contentType := header.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			s.renderNotice(c, w, r, sessionUID, noticeNotAnImage)
			return
		}
		if header.Size > maxScreenshotBytes {
			s.renderNotice(c, w, r, sessionUID, noticeTooLarge)
			return
		}

		data, err := io.ReadAll(file)
		if err != nil {
			errorWriter.WriteError(c, w, 2, myerrors.NewInvalidInputError(err))
			return
		}

		result, err := s.service.confirmPayment(c, sessionUID, filepath.Ext(header.Filename), contentType, data)
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		if result.RefMissing {
			http.Redirect(w, r, fmt.Sprintf("%s/shopping", myhttp.HostnameWithScheme(r)), http.StatusSeeOther)
			return
		}

		if !result.OK {
			s.renderNotice(c, w, r, sessionUID, result.Notice)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err = uploadConfirmedPageTemplate.Execute(w, uploadConfirmedPageData{
			CustomerName:    result.Order.CustomerName,
			TotalAmount:     result.Order.GetTotalPrice(),
			RedirectSeconds: s.uploadConfirmSeconds,
		})
		if err != nil {
			errorWriter.WriteError(c, w, 4, myerrors.NewInternalError(err))
		}
	}
}

func (s *webService) renderNotice(c context.Context, w http.ResponseWriter, r *http.Request, sessionUID string, notice string) {
	errorWriter := myhttp.NewWriter(s.logger)

	data, found, err := s.service.pageDataForNotice(c, sessionUID, notice)
	if err != nil {
		errorWriter.WriteError(c, w, 1, err)
		return
	}
	if !found {
		http.Redirect(w, r, fmt.Sprintf("%s/shopping", myhttp.HostnameWithScheme(r)), http.StatusSeeOther)
		return
	}

	s.renderPage(c, w, data)
}

func (s *webService) renderPage(c context.Context, w http.ResponseWriter, data uploadPageData) {
	errorWriter := myhttp.NewWriter(s.logger)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := uploadPageTemplate.Execute(w, data)
	if err != nil {
		errorWriter.WriteError(c, w, 1, myerrors.NewInternalError(err))
	}
}
