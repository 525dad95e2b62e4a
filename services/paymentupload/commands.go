package paymentupload

import (
	"context"
	"fmt"

	"github.com/funkyshop/storefront/lib/myerrors"
	"github.com/funkyshop/storefront/lib/mylog"
	"github.com/funkyshop/storefront/services/orderevents"
	"github.com/funkyshop/storefront/services/orderflow"
	"github.com/funkyshop/storefront/services/orders"
)

func (s *service) viewUploadPage(c context.Context, sessionUID string) (uploadPageData, bool, error) {
	now := s.nower.Now()

	session, err := orderflow.GetOrCreate(c, s.sessionStore, sessionUID, now)
	if err != nil {
		return uploadPageData{}, false, err
	}
	if session.OrderRef == nil {
		return uploadPageData{}, false, nil
	}

	// A previous upload attempt that failed to record leaves the session in Failed.
	// The order reference is still there, so the shopper can just try again.
	if session.State == orderflow.StateFailed {
		if err := session.TransitionTo(orderflow.StateAwaitingPaymentProof); err != nil {
			return uploadPageData{}, false, myerrors.NewInternalError(err)
		}
		session.LastModified = &now
		if err := s.sessionStore.Put(c, sessionUID, session); err != nil {
			return uploadPageData{}, false, myerrors.NewInternalError(err)
		}
	}

	order, exists, err := s.orderStore.Get(c, session.OrderRef.OrderUID)
	if err != nil {
		return uploadPageData{}, false, myerrors.NewInternalError(err)
	}
	if !exists {
		return uploadPageData{}, false, myerrors.NewNotFoundError(fmt.Errorf("order %s not found", session.OrderRef.OrderUID))
	}

	data := uploadPageData{
		OrderUID:     order.UID,
		CustomerName: order.CustomerName,
		TotalAmount:  order.GetTotalPrice(),
		PaymentID:    order.PaymentID,
	}

	return data, true, nil
}

// confirmPayment stores the screenshot and flips the order to Success. The blob upload
// happens outside the transaction: a stray object in the bucket is harmless, a Success
// order without its screenshot is not.
func (s *service) confirmPayment(c context.Context, sessionUID string, ext string, contentType string, data []byte) (uploadResult, error) {
	now := s.nower.Now()

	session, err := orderflow.GetOrCreate(c, s.sessionStore, sessionUID, now)
	if err != nil {
		return uploadResult{}, err
	}
	if session.OrderRef == nil {
		return uploadResult{RefMissing: true}, nil
	}
	orderUID := session.OrderRef.OrderUID

	path := fmt.Sprintf("%s_%d%s", orderUID, now.UnixMilli(), ext)
	err = s.blobStore.Upload(c, path, contentType, data)
	if err != nil {
		s.logger.Log(c, sessionUID, mylog.SeverityError, "Screenshot upload failed for order %s: %s", orderUID, err)
		return uploadResult{Notice: noticeRecordFailed}, nil
	}
	screenshotURL := s.blobStore.PublicURL(path)

	result := uploadResult{}
	err = s.sessionStore.RunInTransaction(c, func(c context.Context) error {
		session, err := orderflow.GetOrCreate(c, s.sessionStore, sessionUID, now)
		if err != nil {
			return err
		}
		if session.OrderRef == nil {
			result = uploadResult{RefMissing: true}
			return nil
		}

		order, exists, err := s.orderStore.Get(c, session.OrderRef.OrderUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !exists {
			return myerrors.NewNotFoundError(fmt.Errorf("order %s not found", session.OrderRef.OrderUID))
		}

		order.PaymentScreenshotURL = screenshotURL
		order.PaymentStatus = orders.PaymentStatusSuccess
		order.LastModified = &now
		if err := s.orderStore.Put(c, order.UID, order); err != nil {
			return myerrors.NewInternalError(err)
		}

		err = s.publisher.Publish(c, orderevents.TopicName, orderevents.OrderPaymentConfirmed{
			OrderUID:      order.UID,
			ScreenshotURL: screenshotURL,
		})
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		// The flow is complete: consume both slots and both gates.
		session.ProductDraft = nil
		session.OrderRef = nil
		session.ShoppingGate.Reset()
		session.PaymentGate.Reset()
		if err := session.TransitionTo(orderflow.StatePaymentConfirmed); err != nil {
			return myerrors.NewInvalidInputError(err)
		}
		session.LastModified = &now

		if err := s.sessionStore.Put(c, sessionUID, session); err != nil {
			return myerrors.NewInternalError(err)
		}

		result = uploadResult{OK: true, Order: order}
		return nil
	})
	if err != nil {
		s.logger.Log(c, sessionUID, mylog.SeverityError, "Recording payment failed for order %s: %s", orderUID, err)
		s.markFailed(c, sessionUID)
		return uploadResult{Notice: noticeRecordFailed}, nil
	}

	if result.OK {
		s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Payment confirmed for order %s: %s", result.Order.UID, screenshotURL)
	}

	return result, nil
}

func (s *service) markFailed(c context.Context, sessionUID string) {
	now := s.nower.Now()

	// Best effort: when the store itself is down this fails too, which is fine.
	_ = s.sessionStore.RunInTransaction(c, func(c context.Context) error {
		session, err := orderflow.GetOrCreate(c, s.sessionStore, sessionUID, now)
		if err != nil {
			return err
		}
		if err := session.TransitionTo(orderflow.StateFailed); err != nil {
			return nil
		}
		session.LastModified = &now
		return s.sessionStore.Put(c, sessionUID, session)
	})
}

func (s *service) pageDataForNotice(c context.Context, sessionUID string, notice string) (uploadPageData, bool, error) {
	data, found, err := s.viewUploadPage(c, sessionUID)
	if err != nil || !found {
		return data, found, err
	}

	data.Notice = notice
	return data, true, nil
}
