package orderflow

import (
	"fmt"
	"time"

	"github.com/funkyshop/storefront/services/captcha"
)

// SlotSchemaVersion is stamped on every slot written, so a future shape change can
// recognize and discard stale sessions.
const SlotSchemaVersion = 1

type WorkflowState int

const (
	StateDrafting WorkflowState = iota
	StateAwaitingShippingInfo
	StateSubmittingOrder
	StateConfirmed
	StateAwaitingPaymentProof
	StatePaymentConfirmed
	StateFailed
)

func (s WorkflowState) String() string {
	switch s {
	case StateDrafting:
		return "Drafting"
	case StateAwaitingShippingInfo:
		return "AwaitingShippingInfo"
	case StateSubmittingOrder:
		return "SubmittingOrder"
	case StateConfirmed:
		return "Confirmed"
	case StateAwaitingPaymentProof:
		return "AwaitingPaymentProof"
	case StatePaymentConfirmed:
		return "PaymentConfirmed"
	case StateFailed:
		return "Failed"
	}
	return "Unknown"
}

var allowedTransitions = map[WorkflowState][]WorkflowState{
	StateDrafting:             {StateDrafting, StateAwaitingShippingInfo},
	StateAwaitingShippingInfo: {StateSubmittingOrder, StateDrafting},
	StateSubmittingOrder:      {StateConfirmed, StateAwaitingPaymentProof, StateAwaitingShippingInfo, StateFailed},
	StateAwaitingPaymentProof: {StatePaymentConfirmed, StateFailed, StateDrafting},
	StateFailed:               {StateAwaitingShippingInfo, StateAwaitingPaymentProof, StateDrafting},
	StateConfirmed:            {StateDrafting},
	StatePaymentConfirmed:     {StateDrafting},
}

// ProductDraft is the shopper's in-progress selection, handed from the shopping step to
// the shipping step. The total is always derived, never edited independently.
type ProductDraft struct {
	SchemaVersion     int
	ProductName       string
	Quantity          int
	PricePerItemCents int
	TotalPriceCents   int
}

// OrderReference is handed from the shipping step (online path) to the payment-upload
// step.
type OrderReference struct {
	SchemaVersion    int
	OrderUID         string
	TotalAmountCents int
	CustomerName     string
}

// Prefill carries a popular-pick selection back into the shopping form. It is not the
// draft slot: the draft is only written after validation and captcha pass.
type Prefill struct {
	ProductName       string
	Quantity          int
	PricePerItemCents int
}

// FlowSession is the single record that carries one in-progress order through the
// shopping, shipping and payment-upload steps. It replaces ambient browser-local
// storage: the ProductDraft and OrderRef fields are the two durable slots, and State is
// the explicit workflow position.
type FlowSession struct {
	UID          string
	State        WorkflowState
	CreatedAt    time.Time
	LastModified *time.Time
	ShoppingGate captcha.Gate
	PaymentGate  captcha.Gate
	Prefill      *Prefill
	ProductDraft *ProductDraft
	OrderRef     *OrderReference
}

func NewFlowSession(uid string, createdAt time.Time) FlowSession {
	return FlowSession{
		UID:          uid,
		State:        StateDrafting,
		CreatedAt:    createdAt,
		ShoppingGate: captcha.NewGate(),
		PaymentGate:  captcha.NewGate(),
	}
}

func (s FlowSession) hasStaleSlots() bool {
	if s.ProductDraft != nil && s.ProductDraft.SchemaVersion != SlotSchemaVersion {
		return true
	}
	if s.OrderRef != nil && s.OrderRef.SchemaVersion != SlotSchemaVersion {
		return true
	}
	return false
}

// TransitionTo moves the workflow to the next state, refusing transitions that the
// state machine does not allow.
func (s *FlowSession) TransitionTo(next WorkflowState) error {
	for _, allowed := range allowedTransitions[s.State] {
		if next == allowed {
			s.State = next
			return nil
		}
	}
	return fmt.Errorf("invalid workflow transition %s -> %s", s.State, next)
}
