package shipping

import (
	"github.com/funkyshop/storefront/lib/mylog"
	"github.com/funkyshop/storefront/lib/mypublisher"
	"github.com/funkyshop/storefront/lib/mystore"
	"github.com/funkyshop/storefront/lib/mytime"
	"github.com/funkyshop/storefront/lib/myuuid"
	"github.com/funkyshop/storefront/services/orderflow"
	"github.com/funkyshop/storefront/services/orders"
)

type service struct {
	sessionStore mystore.Store[orderflow.FlowSession]
	orderStore   mystore.Store[orders.Order]
	publisher    mypublisher.Publisher
	nower        mytime.Nower
	uuider       myuuid.UUIDer
	logger       mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(sessionStore mystore.Store[orderflow.FlowSession], orderStore mystore.Store[orders.Order], publisher mypublisher.Publisher, nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger) *service {
	return &service{
		sessionStore: sessionStore,
		orderStore:   orderStore,
		publisher:    publisher,
		nower:        nower,
		uuider:       uuider,
		logger:       logger,
	}
}
