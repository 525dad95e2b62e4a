package orders

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "COD"
	PaymentMethodOnline PaymentMethod = "Online"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusSuccess PaymentStatus = "Success"
)

// Order is the persisted representation of one checkout attempt. It is created once
// with status Pending and updated at most once more (screenshot URL + Success) for the
// online path. Orders are never deleted.
type Order struct {
	UID                  string
	ProductName          string
	Quantity             int
	PricePerItemCents    int
	TotalPriceCents      int
	CustomerName         string
	Email                string
	Phone                string
	Address              string
	City                 string
	State                string
	ZipCode              string
	PaymentMethod        PaymentMethod
	PaymentStatus        PaymentStatus
	PaymentID            string
	PaymentScreenshotURL string
	CreatedAt            time.Time
	LastModified         *time.Time
}

func (o Order) Timestamp() string {
	return o.CreatedAt.Format("2006-01-02 15:04:05")
}

func (o Order) GetTotalPrice() string {
	return FormatPriceCents(o.TotalPriceCents)
}

func (o Order) GetPricePerItem() string {
	return FormatPriceCents(o.PricePerItemCents)
}

// ParsePriceCents converts a user-typed decimal amount such as "12.99" into integer
// cents, so that quantity times price stays exact. At most two decimals are accepted.
func ParsePriceCents(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty price")
	}

	wholePart := s
	fractionPart := ""
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		wholePart = s[:idx]
		fractionPart = s[idx+1:]
	}

	if len(fractionPart) > 2 {
		return 0, fmt.Errorf("price %q has more than two decimals", s)
	}
	for len(fractionPart) < 2 {
		fractionPart += "0"
	}
	if wholePart == "" {
		wholePart = "0"
	}

	whole, err := strconv.Atoi(wholePart)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	if whole < 0 {
		return 0, fmt.Errorf("price %q is negative", s)
	}

	fraction, err := strconv.Atoi(fractionPart)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", s)
	}

	return whole*100 + fraction, nil
}

func FormatPriceCents(cents int) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
