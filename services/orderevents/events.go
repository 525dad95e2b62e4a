package orderevents

const (
	TopicName                 = "order"
	orderPlacedName           = TopicName + ".placed"
	orderPaymentConfirmedName = TopicName + ".payment.confirmed"
)

type OrderPlaced struct {
	OrderUID        string
	PaymentMethod   string
	TotalPriceCents int
}

func (e OrderPlaced) GetEventTypeName() string {
	return orderPlacedName
}

func (e OrderPlaced) GetAggregateName() string {
	return e.OrderUID
}

type OrderPaymentConfirmed struct {
	OrderUID      string
	ScreenshotURL string
}

func (e OrderPaymentConfirmed) GetEventTypeName() string {
	return orderPaymentConfirmedName
}

func (e OrderPaymentConfirmed) GetAggregateName() string {
	return e.OrderUID
}
