package paymentupload

import (
	"github.com/funkyshop/storefront/lib/myblob"
	"github.com/funkyshop/storefront/lib/mylog"
	"github.com/funkyshop/storefront/lib/mypublisher"
	"github.com/funkyshop/storefront/lib/mystore"
	"github.com/funkyshop/storefront/lib/mytime"
	"github.com/funkyshop/storefront/services/orderflow"
	"github.com/funkyshop/storefront/services/orders"
)

type service struct {
	sessionStore mystore.Store[orderflow.FlowSession]
	orderStore   mystore.Store[orders.Order]
	blobStore    myblob.BlobStore
	publisher    mypublisher.Publisher
	nower        mytime.Nower
	logger       mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(sessionStore mystore.Store[orderflow.FlowSession], orderStore mystore.Store[orders.Order], blobStore myblob.BlobStore, publisher mypublisher.Publisher, nower mytime.Nower, logger mylog.Logger) *service {
	return &service{
		sessionStore: sessionStore,
		orderStore:   orderStore,
		blobStore:    blobStore,
		publisher:    publisher,
		nower:        nower,
		logger:       logger,
	}
}
