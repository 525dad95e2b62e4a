package shopping

import (
	"net/http"

	formcodec "github.com/go-playground/form/v4"

	"github.com/funkyshop/storefront/lib/myerrors"
	"github.com/funkyshop/storefront/services/captcha"
)

// ProductForm carries what the shopper typed into the product form. The price is kept
// as the raw string until it is parsed into cents.
type ProductForm struct {
	ProductName  string `form:"productName"`
	Quantity     int    `form:"quantity"`
	PricePerItem string `form:"pricePerItem"`
}

func productFormFromRequest(r *http.Request) (ProductForm, error) {
	err := r.ParseForm()
	if err != nil {
		return ProductForm{}, myerrors.NewInvalidInputError(err)
	}

	form := ProductForm{}
	err = formcodec.NewDecoder().Decode(&form, r.Form)
	if err != nil {
		return ProductForm{}, myerrors.NewInvalidInputError(err)
	}

	return form, nil
}

type PopularPick struct {
	Name       string
	PriceCents int
	Emoji      string
}

var popularPicks = []PopularPick{
	{Name: "Funky Art Prints", PriceCents: 2999, Emoji: "🎨"},
	{Name: "Rainbow Phone Case", PriceCents: 1599, Emoji: "📱"},
	{Name: "Cosmic Coffee Mug", PriceCents: 1299, Emoji: "☕"},
	{Name: "Super Long Cooling Fridge", PriceCents: 59999, Emoji: "🧊"},
}

type shoppingPageData struct {
	Notice       string
	Form         ProductForm
	TotalPrice   string
	Gate         captcha.Gate
	PopularPicks []PopularPick
}
