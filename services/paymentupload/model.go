package paymentupload

import "github.com/funkyshop/storefront/services/orders"

// Screenshots larger than this are refused before anything is sent to blob storage.
const maxScreenshotBytes = 5 * 1024 * 1024

const (
	noticeNoFile       = "Please select a payment screenshot to upload."
	noticeNotAnImage   = "Please upload an image file"
	noticeTooLarge     = "Image size should be less than 5MB"
	noticeRecordFailed = "Failed to record your payment. Please try again."
)

type uploadPageData struct {
	Notice       string
	OrderUID     string
	CustomerName string
	TotalAmount  string
	PaymentID    string
}

type uploadConfirmedPageData struct {
	CustomerName    string
	TotalAmount     string
	RedirectSeconds int
}

type uploadResult struct {
	OK         bool
	RefMissing bool
	Notice     string
	Order      orders.Order
}
