package shipping

import (
	"context"
	"fmt"

	"github.com/funkyshop/storefront/lib/myerrors"
	"github.com/funkyshop/storefront/lib/mylog"
	"github.com/funkyshop/storefront/services/orderevents"
	"github.com/funkyshop/storefront/services/orderflow"
	"github.com/funkyshop/storefront/services/orders"
)

const (
	noticeInvalidDetails  = "Please fill in all shipping details correctly!"
	noticeCaptchaRequired = "Please complete the math captcha to proceed with payment."
	noticeOrderSaveFailed = "Failed to save your order. Please try again."
)

type submitResult struct {
	OK           bool
	DraftMissing bool
	Notice       string
	FieldErrors  map[string]string
	Order        orders.Order
}

func (s *service) viewShippingPage(c context.Context, sessionUID string) (shippingPageData, bool, error) {
	session, err := orderflow.GetOrCreate(c, s.sessionStore, sessionUID, s.nower.Now())
	if err != nil {
		return shippingPageData{}, false, err
	}
	if session.ProductDraft == nil {
		return shippingPageData{}, false, nil
	}

	data := shippingPageData{
		Draft:        *session.ProductDraft,
		TotalPrice:   orders.FormatPriceCents(session.ProductDraft.TotalPriceCents),
		PricePerItem: orders.FormatPriceCents(session.ProductDraft.PricePerItemCents),
		FieldErrors:  map[string]string{},
		Gate:         session.PaymentGate,
	}

	return data, true, nil
}

func (s *service) verifyPaymentCaptcha(c context.Context, sessionUID string, answer int) (bool, error) {
	now := s.nower.Now()

	verified := false
	err := s.sessionStore.RunInTransaction(c, func(c context.Context) error {
		session, err := orderflow.GetOrCreate(c, s.sessionStore, sessionUID, now)
		if err != nil {
			return err
		}

		verified = session.PaymentGate.SubmitAnswer(answer)
		session.LastModified = &now

		if err := s.sessionStore.Put(c, sessionUID, session); err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return false, err
	}

	s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Payment captcha answer for session %s -> verified=%t", sessionUID, verified)

	return verified, nil
}

// submitOrder turns the product draft plus shipping details into a persisted order.
// Preconditions (draft present, details valid, captcha verified) are checked inside the
// transaction so that a concurrent submit cannot slip past a half-updated session. The
// order insert and the order.placed event share the transaction.
func (s *service) submitOrder(c context.Context, sessionUID string, form ShippingForm, method orders.PaymentMethod) (submitResult, error) {
	now := s.nower.Now()

	result := submitResult{}
	err := s.sessionStore.RunInTransaction(c, func(c context.Context) error {
		session, err := orderflow.GetOrCreate(c, s.sessionStore, sessionUID, now)
		if err != nil {
			return err
		}

		if session.ProductDraft == nil {
			result = submitResult{DraftMissing: true}
			return nil
		}

		validation := validateShippingForm(form)
		if !validation.Valid() {
			result = submitResult{Notice: noticeInvalidDetails, FieldErrors: validation.FieldErrors}
			return nil
		}

		if !session.PaymentGate.Verified {
			result = submitResult{Notice: noticeCaptchaRequired, FieldErrors: map[string]string{}}
			return nil
		}

		if err := session.TransitionTo(orderflow.StateSubmittingOrder); err != nil {
			return myerrors.NewInvalidInputError(err)
		}

		draft := *session.ProductDraft
		order := orders.Order{
			UID:               s.uuider.Create(),
			ProductName:       draft.ProductName,
			Quantity:          draft.Quantity,
			PricePerItemCents: draft.PricePerItemCents,
			TotalPriceCents:   draft.TotalPriceCents,
			CustomerName:      form.CustomerName,
			Email:             form.Email,
			Phone:             form.Phone,
			Address:           form.Address,
			City:              form.City,
			State:             form.State,
			ZipCode:           form.ZipCode,
			PaymentMethod:     method,
			PaymentStatus:     orders.PaymentStatusPending,
			CreatedAt:         now,
		}
		if method == orders.PaymentMethodOnline {
			order.PaymentID = fmt.Sprintf("PAY_%d", now.UnixMilli())
		}

		if err := s.orderStore.Put(c, order.UID, order); err != nil {
			return myerrors.NewInternalError(err)
		}

		err = s.publisher.Publish(c, orderevents.TopicName, orderevents.OrderPlaced{
			OrderUID:        order.UID,
			PaymentMethod:   string(method),
			TotalPriceCents: order.TotalPriceCents,
		})
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		switch method {
		case orders.PaymentMethodCOD:
			// COD completes the flow here: consume the draft and both gates.
			session.ProductDraft = nil
			session.ShoppingGate.Reset()
			session.PaymentGate.Reset()
			if err := session.TransitionTo(orderflow.StateConfirmed); err != nil {
				return myerrors.NewInvalidInputError(err)
			}
		case orders.PaymentMethodOnline:
			// The draft stays until the payment proof is in: an abandoned upload must
			// be able to restart from shipping.
			session.OrderRef = &orderflow.OrderReference{
				SchemaVersion:    orderflow.SlotSchemaVersion,
				OrderUID:         order.UID,
				TotalAmountCents: order.TotalPriceCents,
				CustomerName:     order.CustomerName,
			}
			if err := session.TransitionTo(orderflow.StateAwaitingPaymentProof); err != nil {
				return myerrors.NewInvalidInputError(err)
			}
		}
		session.LastModified = &now

		if err := s.sessionStore.Put(c, sessionUID, session); err != nil {
			return myerrors.NewInternalError(err)
		}

		result = submitResult{OK: true, Order: order}
		return nil
	})
	if err != nil {
		// The transaction rolled back: no order, no event, session untouched. The
		// shopper keeps the filled-in form and can just retry.
		s.logger.Log(c, sessionUID, mylog.SeverityError, "Order submit failed for session %s: %s", sessionUID, err)
		return submitResult{Notice: noticeOrderSaveFailed, FieldErrors: map[string]string{}}, nil
	}

	if result.OK {
		s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Order %s created for session %s: %s, %s", result.Order.UID, sessionUID, method, result.Order.GetTotalPrice())
	}

	return result, nil
}

func (s *service) pageDataForForm(c context.Context, sessionUID string, form ShippingForm, notice string, fieldErrors map[string]string) (shippingPageData, bool, error) {
	data, found, err := s.viewShippingPage(c, sessionUID)
	if err != nil || !found {
		return data, found, err
	}

	data.Notice = notice
	data.Form = form
	if fieldErrors != nil {
		data.FieldErrors = fieldErrors
	}

	return data, true, nil
}
