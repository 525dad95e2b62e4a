package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/funkyshop/storefront/lib/myblob"
	"github.com/funkyshop/storefront/lib/mylog"
	"github.com/funkyshop/storefront/lib/mypublisher"
	"github.com/funkyshop/storefront/lib/mypubsub"
	"github.com/funkyshop/storefront/lib/myqueue"
	"github.com/funkyshop/storefront/lib/mystore"
	"github.com/funkyshop/storefront/lib/mytime"
	"github.com/funkyshop/storefront/lib/myuuid"
	"github.com/funkyshop/storefront/services/orderflow"
	"github.com/funkyshop/storefront/services/orders"
	"github.com/funkyshop/storefront/services/paymentupload"
	"github.com/funkyshop/storefront/services/shipping"
	"github.com/funkyshop/storefront/services/shopping"
	"github.com/funkyshop/storefront/services/site"
)

func main() {
	c := context.Background()

	router := mux.NewRouter()

	nower := mytime.RealNower{}
	uuider := myuuid.RealUUIDer{}

	sessionStore, sessionStoreCleanup, err := mystore.New[orderflow.FlowSession](c)
	if err != nil {
		log.Fatalf("Error creating session store: %s", err)
	}
	defer sessionStoreCleanup()

	orderStore, orderStoreCleanup, err := mystore.New[orders.Order](c)
	if err != nil {
		log.Fatalf("Error creating order store: %s", err)
	}
	defer orderStoreCleanup()

	blobStore, blobStoreCleanup, err := myblob.New(c)
	if err != nil {
		log.Fatalf("Error creating blob store: %s", err)
	}
	defer blobStoreCleanup()

	pubsub, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		log.Fatalf("Error creating pubsub: %s", err)
	}
	defer pubsubCleanup()

	queue, queueCleanup, err := myqueue.New(c)
	if err != nil {
		log.Fatalf("Error creating task queue: %s", err)
	}
	defer queueCleanup()

	publisher, publisherCleanup, err := mypublisher.New(c, pubsub, queue, nower)
	if err != nil {
		log.Fatalf("Error creating event publisher: %s", err)
	}
	defer publisherCleanup()
	publisher.RegisterEndpoints(c, router)

	shoppingService := shopping.NewService(sessionStore, nower, uuider, mylog.New("shopping"))
	shoppingService.RegisterEndpoints(c, router)

	shippingService := shipping.NewService(sessionStore, orderStore, publisher, nower, uuider, mylog.New("shipping"),
		secondsFromEnv("COD_CONFIRM_SECONDS", 5))
	err = shippingService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error starting shipping service: %s", err)
	}

	uploadService := paymentupload.NewService(sessionStore, orderStore, blobStore, publisher, nower, uuider, mylog.New("paymentupload"),
		secondsFromEnv("UPLOAD_CONFIRM_SECONDS", 2))
	err = uploadService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error starting payment-upload service: %s", err)
	}

	siteService := site.NewService(mylog.New("site"))
	siteService.RegisterEndpoints(c, router)

	startWebServerBlocking(router)
}

func secondsFromEnv(name string, defaultSeconds int) int {
	value := os.Getenv(name)
	if value == "" {
		return defaultSeconds
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds < 0 {
		return defaultSeconds
	}
	return seconds
}

func startWebServerBlocking(router *mux.Router) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting webserver on port %s (try http://localhost:%s)", port, port)
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), router)
	if err != nil {
		log.Fatalf("Error starting webserver on port %s: %s", port, err)
	}
}
