package shopping

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/funkyshop/storefront/lib/mylog"
	"github.com/funkyshop/storefront/lib/mystore"
	"github.com/funkyshop/storefront/lib/mytime"
	"github.com/funkyshop/storefront/lib/myuuid"
	"github.com/funkyshop/storefront/services/captcha"
	"github.com/funkyshop/storefront/services/orderflow"
)

func TestShoppingService(t *testing.T) {

	t.Run("Get shopping page", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _ := setup(t, ctrl)

		// when
		response := doRequest(router, http.MethodGet, "/shopping", nil)

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), "Shopping Paradise")
	})

	t.Run("Verify captcha with correct answer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, _ := setup(t, ctrl)

		// given
		seedSession(ctx, storer, false)

		// when
		response := doRequest(router, http.MethodPost, "/shopping/captcha", url.Values{"answer": {"5"}})

		// then
		assert.Equal(t, 303, response.Code)
		assert.Equal(t, "http://localhost:8888/shopping", response.Header().Get("Location"))
		session, _, _ := storer.Get(ctx, "123")
		assert.True(t, session.ShoppingGate.Verified)
	})

	t.Run("Verify captcha with wrong answer keeps the same challenge", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, _ := setup(t, ctrl)

		// given
		seedSession(ctx, storer, false)

		// when
		response := doRequest(router, http.MethodPost, "/shopping/captcha", url.Values{"answer": {"42"}})

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), "That answer is not correct")
		session, _, _ := storer.Get(ctx, "123")
		assert.False(t, session.ShoppingGate.Verified)
		assert.Equal(t, captcha.Challenge{A: 2, Op: captcha.OperatorAdd, B: 3, Expected: 5}, session.ShoppingGate.Challenge)
	})

	t.Run("Commit draft without captcha is refused", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, _ := setup(t, ctrl)

		// given
		seedSession(ctx, storer, false)

		// when
		response := doRequest(router, http.MethodPost, "/shopping",
			url.Values{"productName": {"Mug"}, "quantity": {"2"}, "pricePerItem": {"12.99"}})

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), noticeCaptchaRequired)
		session, _, _ := storer.Get(ctx, "123")
		assert.Nil(t, session.ProductDraft)
	})

	t.Run("Commit draft with missing details is refused", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, _ := setup(t, ctrl)

		// given
		seedSession(ctx, storer, true)

		// when
		response := doRequest(router, http.MethodPost, "/shopping",
			url.Values{"productName": {""}, "quantity": {"2"}, "pricePerItem": {"12.99"}})

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), noticeMissingDetails)
		session, _, _ := storer.Get(ctx, "123")
		assert.Nil(t, session.ProductDraft)
	})

	t.Run("Commit draft writes the product slot", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, _ := setup(t, ctrl)

		// given
		seedSession(ctx, storer, true)

		// when
		response := doRequest(router, http.MethodPost, "/shopping",
			url.Values{"productName": {"Mug"}, "quantity": {"2"}, "pricePerItem": {"12.99"}})

		// then
		assert.Equal(t, 303, response.Code)
		assert.Equal(t, "http://localhost:8888/shipping", response.Header().Get("Location"))
		session, _, _ := storer.Get(ctx, "123")
		assert.Equal(t, orderflow.StateAwaitingShippingInfo, session.State)
		assert.NotNil(t, session.ProductDraft)
		assert.Equal(t, "Mug", session.ProductDraft.ProductName)
		assert.Equal(t, 2, session.ProductDraft.Quantity)
		assert.Equal(t, 1299, session.ProductDraft.PricePerItemCents)
		assert.Equal(t, 2598, session.ProductDraft.TotalPriceCents)
	})

	t.Run("Popular pick resets the captcha gate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, _ := setup(t, ctrl)

		// given
		seedSession(ctx, storer, true)

		// when
		response := doRequest(router, http.MethodPost, "/shopping/pick/2", nil)

		// then
		assert.Equal(t, 303, response.Code)
		session, _, _ := storer.Get(ctx, "123")
		assert.False(t, session.ShoppingGate.Verified)
		assert.NotNil(t, session.Prefill)
		assert.Equal(t, "Cosmic Coffee Mug", session.Prefill.ProductName)
		assert.Equal(t, 1299, session.Prefill.PricePerItemCents)
	})
}

func doRequest(router *mux.Router, method string, target string, form url.Values) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}

	request := httptest.NewRequest(method, target, body)
	request.Host = "localhost:8888"
	if form != nil {
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	request.AddCookie(&http.Cookie{Name: "storefront_session", Value: "123"})

	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	return response
}

func seedSession(ctx context.Context, storer mystore.Store[orderflow.FlowSession], verified bool) {
	session := orderflow.NewFlowSession("123", mytime.ExampleTime)
	session.ShoppingGate.Challenge = captcha.Challenge{A: 2, Op: captcha.OperatorAdd, B: 3, Expected: 5}
	session.ShoppingGate.Verified = verified
	storer.Put(ctx, "123", session)
}

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *mux.Router, mystore.Store[orderflow.FlowSession], *mytime.MockNower) {
	c := context.TODO()
	storer, _, _ := mystore.NewInMemoryStore[orderflow.FlowSession](c)
	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()
	uuider := myuuid.NewMockUUIDer(ctrl)
	uuider.EXPECT().Create().Return("123").AnyTimes()

	sut := NewService(storer, nower, uuider, mylog.New("shopping"))
	router := mux.NewRouter()
	sut.RegisterEndpoints(c, router)

	return c, router, storer, nower
}
