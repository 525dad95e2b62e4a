package site

type page struct {
	Title       string
	Heading     string
	Paragraphs  []string
	ShowShopCTA bool
}

var pages = map[string]page{
	"/": {
		Title:       "Shopping Paradise",
		Heading:     "🌈 Welcome to Shopping Paradise!",
		Paragraphs:  []string{"Pick a product, tell us where to ship it, and pay the way you like. Cash on delivery or online, your call."},
		ShowShopCTA: true,
	},
	"/contact": {
		Title:      "Contact Us",
		Heading:    "📞 Contact Us",
		Paragraphs: []string{"Questions about your order? We are happy to help.", "Email us at support@shopping-paradise.example and we will get back to you within one business day."},
	},
	"/privacy": {
		Title:      "Privacy Policy",
		Heading:    "🔒 Privacy Policy",
		Paragraphs: []string{"We only collect the details we need to ship your order: your name, address and contact information.", "We never sell your data and we never will."},
	},
	"/terms": {
		Title:      "Terms & Conditions",
		Heading:    "📜 Terms & Conditions",
		Paragraphs: []string{"By placing an order you agree to provide accurate shipping details.", "Prices are shown at checkout and do not change after your order is confirmed."},
	},
	"/refund": {
		Title:      "Refund Policy",
		Heading:    "💸 Refund Policy",
		Paragraphs: []string{"Not happy with your order? Let us know within 14 days of delivery and we will make it right.", "Refunds are issued to the original payment method within 5-7 business days."},
	},
	"/terms-of-service": {
		Title:      "Terms of Service",
		Heading:    "📄 Terms of Service",
		Paragraphs: []string{"Use of this shop is at your own discretion. We reserve the right to refuse orders that look fraudulent.", "Payment screenshots are verified manually before an online order ships."},
	},
	"/shipping-policy": {
		Title:      "Shipping Policy",
		Heading:    "🚚 Shipping Policy",
		Paragraphs: []string{"We ship across India. Orders are dispatched within 2 business days.", "Cash on delivery orders are confirmed by phone before dispatch."},
	},
}

var notFoundPage = page{
	Title:       "Page Not Found",
	Heading:     "🙈 404 - Page Not Found",
	Paragraphs:  []string{"The page you are looking for does not exist. Maybe it shipped without a forwarding address."},
	ShowShopCTA: true,
}
