package shopping

import (
	"context"
	"strings"

	"github.com/funkyshop/storefront/lib/myerrors"
	"github.com/funkyshop/storefront/lib/mylog"
	"github.com/funkyshop/storefront/services/orderflow"
	"github.com/funkyshop/storefront/services/orders"
)

const (
	noticeMissingDetails  = "Please fill in all product details before proceeding!"
	noticeCaptchaRequired = "Please complete the math captcha to proceed."
)

type commitResult struct {
	OK     bool
	Notice string
}

func (s *service) viewShoppingPage(c context.Context, sessionUID string) (shoppingPageData, error) {
	session, err := orderflow.GetOrCreate(c, s.sessionStore, sessionUID, s.nower.Now())
	if err != nil {
		return shoppingPageData{}, err
	}

	data := shoppingPageData{
		Form:         ProductForm{Quantity: 1},
		Gate:         session.ShoppingGate,
		PopularPicks: popularPicks,
	}
	if session.Prefill != nil {
		data.Form = ProductForm{
			ProductName:  session.Prefill.ProductName,
			Quantity:     session.Prefill.Quantity,
			PricePerItem: strings.TrimPrefix(orders.FormatPriceCents(session.Prefill.PricePerItemCents), "$"),
		}
		data.TotalPrice = orders.FormatPriceCents(session.Prefill.Quantity * session.Prefill.PricePerItemCents)
	}

	return data, nil
}

// selectPopularPick prefills the product form from one of the shortcuts and forcibly
// resets the captcha gate: verification is scoped to one product selection.
func (s *service) selectPopularPick(c context.Context, sessionUID string, index int) error {
	if index < 0 || index >= len(popularPicks) {
		return myerrors.NewInvalidInputErrorf("no popular pick with index %d", index)
	}
	pick := popularPicks[index]

	s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Popular pick %q selected for session %s", pick.Name, sessionUID)

	now := s.nower.Now()

	return s.sessionStore.RunInTransaction(c, func(c context.Context) error {
		session, err := orderflow.GetOrCreate(c, s.sessionStore, sessionUID, now)
		if err != nil {
			return err
		}

		session.Prefill = &orderflow.Prefill{
			ProductName:       pick.Name,
			Quantity:          1,
			PricePerItemCents: pick.PriceCents,
		}
		session.ShoppingGate.Reset()
		if err := session.TransitionTo(orderflow.StateDrafting); err != nil {
			return myerrors.NewInvalidInputError(err)
		}
		session.LastModified = &now

		if err := s.sessionStore.Put(c, sessionUID, session); err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
}

func (s *service) verifyCaptcha(c context.Context, sessionUID string, answer int) (bool, error) {
	now := s.nower.Now()

	verified := false
	err := s.sessionStore.RunInTransaction(c, func(c context.Context) error {
		session, err := orderflow.GetOrCreate(c, s.sessionStore, sessionUID, now)
		if err != nil {
			return err
		}

		verified = session.ShoppingGate.SubmitAnswer(answer)
		session.LastModified = &now

		if err := s.sessionStore.Put(c, sessionUID, session); err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return false, err
	}

	s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Captcha answer for session %s -> verified=%t", sessionUID, verified)

	return verified, nil
}

// commitProductDraft validates the product form and, once the captcha gate is verified,
// writes the product draft slot. On any failed precondition nothing is written.
func (s *service) commitProductDraft(c context.Context, sessionUID string, form ProductForm) (commitResult, error) {
	now := s.nower.Now()

	result := commitResult{}
	err := s.sessionStore.RunInTransaction(c, func(c context.Context) error {
		session, err := orderflow.GetOrCreate(c, s.sessionStore, sessionUID, now)
		if err != nil {
			return err
		}

		priceCents, priceErr := orders.ParsePriceCents(form.PricePerItem)
		if strings.TrimSpace(form.ProductName) == "" || priceErr != nil || priceCents <= 0 || form.Quantity <= 0 {
			result = commitResult{Notice: noticeMissingDetails}
			return nil
		}

		if !session.ShoppingGate.Verified {
			result = commitResult{Notice: noticeCaptchaRequired}
			return nil
		}

		session.ProductDraft = &orderflow.ProductDraft{
			SchemaVersion:     orderflow.SlotSchemaVersion,
			ProductName:       form.ProductName,
			Quantity:          form.Quantity,
			PricePerItemCents: priceCents,
			TotalPriceCents:   form.Quantity * priceCents,
		}
		session.Prefill = nil
		if err := session.TransitionTo(orderflow.StateAwaitingShippingInfo); err != nil {
			return myerrors.NewInvalidInputError(err)
		}
		session.LastModified = &now

		if err := s.sessionStore.Put(c, sessionUID, session); err != nil {
			return myerrors.NewInternalError(err)
		}

		result = commitResult{OK: true}
		return nil
	})
	if err != nil {
		return commitResult{}, err
	}

	if result.OK {
		s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Product draft committed for session %s: %q x %d", sessionUID, form.ProductName, form.Quantity)
	} else {
		s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Product draft refused for session %s: %s", sessionUID, result.Notice)
	}

	return result, nil
}

func (s *service) pageDataForForm(c context.Context, sessionUID string, form ProductForm, notice string) (shoppingPageData, error) {
	session, err := orderflow.GetOrCreate(c, s.sessionStore, sessionUID, s.nower.Now())
	if err != nil {
		return shoppingPageData{}, err
	}

	data := shoppingPageData{
		Notice:       notice,
		Form:         form,
		Gate:         session.ShoppingGate,
		PopularPicks: popularPicks,
	}
	if priceCents, err := orders.ParsePriceCents(form.PricePerItem); err == nil && form.Quantity > 0 {
		data.TotalPrice = orders.FormatPriceCents(form.Quantity * priceCents)
	}

	return data, nil
}
