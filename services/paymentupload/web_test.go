package paymentupload

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/funkyshop/storefront/lib/myblob"
	"github.com/funkyshop/storefront/lib/mylog"
	"github.com/funkyshop/storefront/lib/mypublisher"
	"github.com/funkyshop/storefront/lib/mystore"
	"github.com/funkyshop/storefront/lib/mytime"
	"github.com/funkyshop/storefront/lib/myuuid"
	"github.com/funkyshop/storefront/services/orderflow"
	"github.com/funkyshop/storefront/services/orders"
)

func TestPaymentUploadService(t *testing.T) {

	t.Run("Get upload page without pending order redirects to shopping", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl)

		// when
		response := doGet(f.router)

		// then
		assert.Equal(t, 303, response.Code)
		assert.Equal(t, "http://localhost:8888/shopping", response.Header().Get("Location"))
	})

	t.Run("Get upload page shows the pending order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl)

		// given
		seedPendingOrder(f)

		// when
		response := doGet(f.router)

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), "456")
		assert.Contains(t, response.Body.String(), "Jane Doe")
		assert.Contains(t, response.Body.String(), "$25.98")
	})

	t.Run("Non-image upload is refused before reaching blob storage", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl)

		// given
		seedPendingOrder(f)

		// when
		response := doUpload(f.router, "receipt.pdf", "application/pdf", []byte("%PDF-1.4"))

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), noticeNotAnImage)
		assert.Empty(t, f.blobStore.Objects)
		order, _, _ := f.orderStore.Get(f.ctx, "456")
		assert.Equal(t, orders.PaymentStatusPending, order.PaymentStatus)
	})

	t.Run("Oversized image is refused before reaching blob storage", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl)

		// given
		seedPendingOrder(f)

		// when
		response := doUpload(f.router, "proof.png", "image/png", make([]byte, 6*1024*1024))

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), noticeTooLarge)
		assert.Empty(t, f.blobStore.Objects)
	})

	t.Run("Valid screenshot flips the order to Success and completes the flow", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl)

		// given
		seedPendingOrder(f)

		// when
		response := doUpload(f.router, "proof.png", "image/png", make([]byte, 1024))

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), "Payment Received")

		order, _, _ := f.orderStore.Get(f.ctx, "456")
		assert.Equal(t, orders.PaymentStatusSuccess, order.PaymentStatus)
		assert.Contains(t, order.PaymentScreenshotURL, "456_")
		assert.True(t, strings.HasSuffix(order.PaymentScreenshotURL, ".png"))
		assert.Len(t, f.blobStore.Objects, 1)

		session, _, _ := f.sessionStore.Get(f.ctx, "123")
		assert.Equal(t, orderflow.StatePaymentConfirmed, session.State)
		assert.Nil(t, session.ProductDraft)
		assert.Nil(t, session.OrderRef)
	})
}

type fixture struct {
	ctx          context.Context
	router       *mux.Router
	sessionStore *mystore.InMemoryStore[orderflow.FlowSession]
	orderStore   *mystore.InMemoryStore[orders.Order]
	blobStore    *myblob.InMemoryBlobStore
}

func doGet(router *mux.Router) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodGet, "/payment-upload", strings.NewReader(""))
	request.Host = "localhost:8888"
	request.AddCookie(&http.Cookie{Name: "storefront_session", Value: "123"})

	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	return response
}

func doUpload(router *mux.Router, filename string, contentType string, content []byte) *httptest.ResponseRecorder {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="screenshot"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, _ := writer.CreatePart(header)
	part.Write(content)
	writer.Close()

	request := httptest.NewRequest(http.MethodPost, "/payment-upload", body)
	request.Host = "localhost:8888"
	request.Header.Set("Content-Type", writer.FormDataContentType())
	request.AddCookie(&http.Cookie{Name: "storefront_session", Value: "123"})

	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	return response
}

func seedPendingOrder(f fixture) {
	session := orderflow.NewFlowSession("123", mytime.ExampleTime)
	session.State = orderflow.StateAwaitingPaymentProof
	session.ProductDraft = &orderflow.ProductDraft{
		SchemaVersion:     orderflow.SlotSchemaVersion,
		ProductName:       "Cosmic Coffee Mug",
		Quantity:          2,
		PricePerItemCents: 1299,
		TotalPriceCents:   2598,
	}
	session.OrderRef = &orderflow.OrderReference{
		SchemaVersion:    orderflow.SlotSchemaVersion,
		OrderUID:         "456",
		TotalAmountCents: 2598,
		CustomerName:     "Jane Doe",
	}
	f.sessionStore.Put(f.ctx, "123", session)

	f.orderStore.Put(f.ctx, "456", orders.Order{
		UID:               "456",
		ProductName:       "Cosmic Coffee Mug",
		Quantity:          2,
		PricePerItemCents: 1299,
		TotalPriceCents:   2598,
		CustomerName:      "Jane Doe",
		PaymentMethod:     orders.PaymentMethodOnline,
		PaymentStatus:     orders.PaymentStatusPending,
		PaymentID:         "PAY_1677542339000",
		CreatedAt:         mytime.ExampleTime,
	})
}

func setup(t *testing.T, ctrl *gomock.Controller) fixture {
	c := context.TODO()
	sessionStore, _, _ := mystore.NewInMemoryStore[orderflow.FlowSession](c)
	orderStore, _, _ := mystore.NewInMemoryStore[orders.Order](c)
	blobStore, _, _ := myblob.NewInMemoryBlobStore(c)
	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()
	uuider := myuuid.NewMockUUIDer(ctrl)
	uuider.EXPECT().Create().Return("123").AnyTimes()
	publisher := mypublisher.NewMockPublisher(ctrl)
	publisher.EXPECT().CreateTopic(gomock.Any(), "order").Return(nil)
	publisher.EXPECT().Publish(gomock.Any(), "order", gomock.Any()).Return(nil).AnyTimes()

	sut := NewService(sessionStore, orderStore, blobStore, publisher, nower, uuider, mylog.New("paymentupload"), 2)
	router := mux.NewRouter()
	err := sut.RegisterEndpoints(c, router)
	assert.NoError(t, err)

	return fixture{ctx: c, router: router, sessionStore: sessionStore, orderStore: orderStore, blobStore: blobStore}
}
