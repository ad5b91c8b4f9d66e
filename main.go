package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/shopbasket/lib/mylog"
	"github.com/MarcGrol/shopbasket/lib/mypublisher"
	"github.com/MarcGrol/shopbasket/lib/mypubsub"
	"github.com/MarcGrol/shopbasket/lib/myqueue"
	"github.com/MarcGrol/shopbasket/lib/myscheduler"
	"github.com/MarcGrol/shopbasket/lib/mystore"
	"github.com/MarcGrol/shopbasket/lib/mytime"
	"github.com/MarcGrol/shopbasket/lib/myuuid"
	"github.com/MarcGrol/shopbasket/services/basket"
	"github.com/MarcGrol/shopbasket/services/catalog"
	"github.com/MarcGrol/shopbasket/services/order"
	"github.com/MarcGrol/shopbasket/services/stuckorder"
	"github.com/MarcGrol/shopbasket/services/warmup"
)

func main() {
	c := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %s", err)
	}
	mylog.SetMinSeverity(cfg.logLevel)

	router := mux.NewRouter()
	nower := mytime.RealNower{}
	uuider := myuuid.RealUUIDer{}

	pubsub, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		log.Fatalf("Error creating pubsub: %s", err)
	}
	defer pubsubCleanup()

	queue, queueCleanup, err := myqueue.New(c)
	if err != nil {
		log.Fatalf("Error creating queue: %s", err)
	}
	defer queueCleanup()

	publisher, publisherCleanup, err := mypublisher.New(c, pubsub, queue, nower)
	if err != nil {
		log.Fatalf("Error creating publisher: %s", err)
	}
	defer publisherCleanup()
	publisher.RegisterEndpoints(c, router)

	scheduler, schedulerCleanup, err := myscheduler.New(c, queue, nower)
	if err != nil {
		log.Fatalf("Error creating scheduler: %s", err)
	}
	defer schedulerCleanup()
	scheduler.RegisterEndpoints(c, router)

	productStore, productStoreCleanup, err := mystore.New[catalog.Product](c)
	if err != nil {
		log.Fatalf("Error creating product store: %s", err)
	}
	defer productStoreCleanup()

	catalogService := catalog.NewService(productStore)
	catalogService.RegisterEndpoints(c, router)

	warmup.NewService(catalogService.Catalog()).RegisterEndpoints(c, router)

	basketStore, basketStoreCleanup, err := mystore.New[basket.Basket](c)
	if err != nil {
		log.Fatalf("Error creating basket store: %s", err)
	}
	defer basketStoreCleanup()

	basketService := basket.NewService(basketStore, catalogService.Catalog(), publisher, nower, uuider, cfg.siteID)
	err = basketService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering basket service: %s", err)
	}

	orderStore, orderStoreCleanup, err := mystore.New[order.Order](c)
	if err != nil {
		log.Fatalf("Error creating order store: %s", err)
	}
	defer orderStoreCleanup()

	stuckOrderService := stuckorder.NewService(orderStore, publisher, scheduler, nower)
	err = stuckOrderService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering stuck order service: %s", err)
	}

	if !cfg.onGoogleCloud {
		// in-memory stores start empty
		err = catalogService.Seed(c)
		if err != nil {
			log.Fatalf("Error seeding catalog: %s", err)
		}
		err = order.NewService(orderStore).Seed(c, nower.Now())
		if err != nil {
			log.Fatalf("Error seeding orders: %s", err)
		}
	}

	err = stuckOrderService.RegisterAgent(c, cfg.stuckOrderEvent, cfg.stuckOrderInterval, cfg.stuckOrderStart)
	if err != nil {
		log.Fatalf("Error registering stuck order agent: %s", err)
	}

	startWebServerBlocking(router, cfg.port)
}

func startWebServerBlocking(router *mux.Router, port string) {
	log.Printf("Starting webserver on port %s (try http://localhost:%s/api/basket/)", port, port)
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), router)
	if err != nil {
		log.Fatalf("Error starting webserver on port %s: %s", port, err)
	}
}
