package shopping

import (
	"github.com/funkyshop/storefront/lib/mylog"
	"github.com/funkyshop/storefront/lib/mystore"
	"github.com/funkyshop/storefront/lib/mytime"
	"github.com/funkyshop/storefront/lib/myuuid"
	"github.com/funkyshop/storefront/services/orderflow"
)

type service struct {
	sessionStore mystore.Store[orderflow.FlowSession]
	nower        mytime.Nower
	uuider       myuuid.UUIDer
	logger       mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(sessionStore mystore.Store[orderflow.FlowSession], nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger) *service {
	return &service{
		sessionStore: sessionStore,
		nower:        nower,
		uuider:       uuider,
		logger:       logger,
	}
}
