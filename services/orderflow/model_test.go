package orderflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/funkyshop/storefront/lib/mystore"
	"github.com/funkyshop/storefront/lib/mytime"
)

func TestWorkflowTransitions(t *testing.T) {
	t.Run("happy path COD", func(t *testing.T) {
		session := NewFlowSession("123", mytime.ExampleTime)

		assert.NoError(t, session.TransitionTo(StateAwaitingShippingInfo))
		assert.NoError(t, session.TransitionTo(StateSubmittingOrder))
		assert.NoError(t, session.TransitionTo(StateConfirmed))
	})

	t.Run("happy path online", func(t *testing.T) {
		session := NewFlowSession("123", mytime.ExampleTime)

		assert.NoError(t, session.TransitionTo(StateAwaitingShippingInfo))
		assert.NoError(t, session.TransitionTo(StateSubmittingOrder))
		assert.NoError(t, session.TransitionTo(StateAwaitingPaymentProof))
		assert.NoError(t, session.TransitionTo(StatePaymentConfirmed))
	})

	t.Run("failed submit is retryable", func(t *testing.T) {
		session := NewFlowSession("123", mytime.ExampleTime)
		session.State = StateSubmittingOrder

		assert.NoError(t, session.TransitionTo(StateFailed))
		assert.NoError(t, session.TransitionTo(StateAwaitingShippingInfo))
	})

	t.Run("invalid transition is refused", func(t *testing.T) {
		session := NewFlowSession("123", mytime.ExampleTime)

		err := session.TransitionTo(StatePaymentConfirmed)

		assert.Error(t, err)
		assert.Equal(t, StateDrafting, session.State)
	})
}

func TestGetOrCreate(t *testing.T) {
	c := context.TODO()
	store, cleanup, _ := mystore.NewInMemoryStore[FlowSession](c)
	defer cleanup()

	created, err := GetOrCreate(c, store, "123", mytime.ExampleTime)
	assert.NoError(t, err)
	assert.Equal(t, "123", created.UID)
	assert.Equal(t, StateDrafting, created.State)
	assert.False(t, created.ShoppingGate.Verified)

	// fetching again without intervening writes returns the identical session
	fetched, err := GetOrCreate(c, store, "123", mytime.ExampleTime)
	assert.NoError(t, err)
	assert.Equal(t, created, fetched)
}

func TestGetOrCreateRestartsCompletedFlow(t *testing.T) {
	c := context.TODO()
	store, cleanup, _ := mystore.NewInMemoryStore[FlowSession](c)
	defer cleanup()

	session := NewFlowSession("123", mytime.ExampleTime)
	session.State = StateConfirmed
	store.Put(c, "123", session)

	fetched, err := GetOrCreate(c, store, "123", mytime.ExampleTime)
	assert.NoError(t, err)
	assert.Equal(t, StateDrafting, fetched.State)
}

func TestGetOrCreateDiscardsStaleSchema(t *testing.T) {
	c := context.TODO()
	store, cleanup, _ := mystore.NewInMemoryStore[FlowSession](c)
	defer cleanup()

	session := NewFlowSession("123", mytime.ExampleTime)
	session.State = StateAwaitingShippingInfo
	session.ProductDraft = &ProductDraft{
		SchemaVersion: SlotSchemaVersion - 1,
		ProductName:   "Mug",
		Quantity:      1,
	}
	store.Put(c, "123", session)

	fetched, err := GetOrCreate(c, store, "123", mytime.ExampleTime)
	assert.NoError(t, err)
	assert.Equal(t, StateDrafting, fetched.State)
	assert.Nil(t, fetched.ProductDraft)
}
