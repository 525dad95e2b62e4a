package shipping

import (
	"net/http"

	formcodec "github.com/go-playground/form/v4"
	validatorcodec "github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/funkyshop/storefront/lib/myerrors"
	"github.com/funkyshop/storefront/services/captcha"
	"github.com/funkyshop/storefront/services/orderflow"
	"github.com/funkyshop/storefront/services/validation"
)

// ShippingForm is the seven-field aggregate the shopper fills in. All fields are
// required; email, phone and state additionally carry a format rule.
type ShippingForm struct {
	CustomerName string `form:"customerName" validate:"notblank"`
	Email        string `form:"email" validate:"notblank"`
	Phone        string `form:"phone" validate:"notblank"`
	Address      string `form:"address" validate:"notblank"`
	City         string `form:"city" validate:"notblank"`
	State        string `form:"state" validate:"notblank"`
	ZipCode      string `form:"zipCode" validate:"notblank"`
}

var validate *validatorcodec.Validate

func init() {
	validate = validatorcodec.New()
	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
}

func shippingFormFromRequest(r *http.Request) (ShippingForm, error) {
	err := r.ParseForm()
	if err != nil {
		return ShippingForm{}, myerrors.NewInvalidInputError(err)
	}

	form := ShippingForm{}
	err = formcodec.NewDecoder().Decode(&form, r.Form)
	if err != nil {
		return ShippingForm{}, myerrors.NewInvalidInputError(err)
	}

	return form, nil
}

// FormValidationResult distinguishes "not filled in" from "filled in but invalid": a
// field can be present and still carry a format error.
type FormValidationResult struct {
	AllFieldsFilled bool
	FieldErrors     map[string]string
}

func (r FormValidationResult) Valid() bool {
	return r.AllFieldsFilled && len(r.FieldErrors) == 0
}

func validateShippingForm(form ShippingForm) FormValidationResult {
	result := FormValidationResult{
		AllFieldsFilled: validate.Struct(form) == nil,
		FieldErrors:     map[string]string{},
	}

	for field, value := range map[string]string{
		"email": form.Email,
		"phone": form.Phone,
		"state": form.State,
	} {
		if msg := validation.GetValidationMessage(field, value); msg != "" {
			result.FieldErrors[field] = msg
		}
	}

	return result
}

type shippingPageData struct {
	Notice       string
	Draft        orderflow.ProductDraft
	TotalPrice   string
	PricePerItem string
	Form         ShippingForm
	FieldErrors  map[string]string
	Gate         captcha.Gate
}

type codConfirmedPageData struct {
	CustomerName    string
	RedirectSeconds int
}
