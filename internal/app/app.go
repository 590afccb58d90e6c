package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter/catalog"
	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/adapter/identity"
	"github.com/niksmo/storefront/internal/adapter/kafka"
	"github.com/niksmo/storefront/internal/adapter/localcart"
	"github.com/niksmo/storefront/internal/adapter/notice"
	"github.com/niksmo/storefront/internal/adapter/orderapi"
	"github.com/niksmo/storefront/internal/adapter/storage"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type repositories struct {
	cart     storage.CartRepository
	profiles storage.ProfilesRepository
	orders   storage.OrdersRepository
	cakes    storage.CakeRequestsRepository
}

type streams struct {
	producer  kafka.OrderPlacedProducer
	statsProc *kafka.OrderStatsProcessor
	statsView *kafka.OrderStatsView
}

type services struct {
	cart     *service.Cart
	checkout service.Checkout
	session  *service.Session
	profiles service.Profiles
	orders   service.Orders
	cakes    service.CakeRequests
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	sqlDB      storage.SQLDB
	catalog    *catalog.Cache
	notifier   notice.LogNotifier
	orderSerde schema.Serde
	repos      repositories
	streams    streams
	services   services
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initStorage()
	app.initSerdes()
	app.initOutboundAdapters()
	app.initStreams()
	app.initCoreServices()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initStorage() {
	const op = "App.initStorage"

	sqlDB, err := storage.NewSQLDB(app.ctx, app.cfg.SQLDB)
	if err != nil {
		app.fallDown(op, err)
	}
	app.sqlDB = sqlDB

	app.repos.cart = storage.NewCartRepository(sqlDB)
	app.repos.profiles = storage.NewProfilesRepository(sqlDB)
	app.repos.orders = storage.NewOrdersRepository(sqlDB)
	app.repos.cakes = storage.NewCakeRequestsRepository(sqlDB)
}

func (app *App) initSerdes() {
	const op = "App.initSerdes"
	urls := app.cfg.Broker.SchemaRegistryURLs

	srClient, err := sr.NewClient(sr.URLs(urls...))
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)

	orderPlacedSS := app.cfg.Broker.Topics.OrderPlacedStream + "-value"
	orderSerde, err := schema.NewSerdeOrderPlacedV1(
		app.ctx,
		schema.SubjectOpt(orderPlacedSS),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.orderSerde = orderSerde
}

func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	app.catalog = catalog.NewCache(
		catalog.NewHTTPProvider(app.cfg.CatalogURL),
	)
	app.notifier = notice.NewLogNotifier()

	seedBrokers := app.cfg.Broker.SeedBrokers
	orderPlacedTopic := app.cfg.Broker.Topics.OrderPlacedStream

	cl, err := kafka.NewProducerClient(app.ctx, seedBrokers, orderPlacedTopic)
	if err != nil {
		app.fallDown(op, err)
	}

	producer, err := kafka.NewOrderPlacedProducer(
		kafka.ProducerClientOpt(cl),
		kafka.ProducerEncoderOpt(app.orderSerde),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.streams.producer = producer
}

func (app *App) initStreams() {
	const op = "App.initStreams"

	seedBrokers := app.cfg.Broker.SeedBrokers
	stream := app.cfg.Broker.Topics.OrderPlacedStream
	group := app.cfg.Broker.Topics.OrderStatsGroup

	statsProc, err := kafka.NewOrderStatsProc(
		seedBrokers, stream, group, app.orderSerde,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	statsView, err := kafka.NewOrderStatsView(seedBrokers, group)
	if err != nil {
		app.fallDown(op, err)
	}

	app.streams.statsProc = statsProc
	app.streams.statsView = statsView
}

func (app *App) initCoreServices() {
	cartStorage := localcart.NewFileStorage(app.cfg.CartFile)
	cart := service.NewCart(cartStorage)
	reconciler := service.NewReconciler(app.repos.cart, cart)

	identityProvider := identity.NewHTTPProvider(
		app.cfg.Auth.URL, app.cfg.Auth.APIKey,
	)
	orderPlacer := orderapi.NewHTTPClient(app.cfg.CheckoutURL)

	app.services.cart = cart
	app.services.checkout = service.NewCheckout(
		cart, app.catalog, orderPlacer, app.streams.producer, app.notifier,
	)
	app.services.session = service.NewSession(
		identityProvider, reconciler, app.repos.profiles, app.notifier,
	)
	app.services.profiles = service.NewProfiles(app.repos.profiles)
	app.services.orders = service.NewOrders(
		app.repos.orders, app.streams.statsView,
	)
	app.services.cakes = service.NewCakeRequests(
		app.repos.cakes, app.notifier,
	)
}

func (app *App) initInboundAdapters() {
	addr := app.cfg.HTTPServerAddr
	mux := http.NewServeMux()
	httphandler.RegisterProducts(mux, app.catalog)
	httphandler.RegisterCart(mux, app.services.cart)
	httphandler.RegisterCheckout(mux, app.services.checkout)
	httphandler.RegisterOrders(mux, app.services.orders)
	httphandler.RegisterProfiles(mux, app.services.profiles)
	httphandler.RegisterAuth(mux, app.services.session)
	httphandler.RegisterCakeRequests(mux, app.services.cakes)

	handler := httphandler.AllowJSON(mux)
	app.httpServer = httphandler.NewHTTPServer(addr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	var wg sync.WaitGroup
	wg.Add(1)
	go app.streams.statsProc.Run(app.ctx, stopFn, &wg)
	go app.streams.statsView.Run(app.ctx)
	go app.httpServer.Run(stopFn)
	wg.Wait()

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.streams.producer.Close()
	app.streams.statsProc.Close()
	app.sqlDB.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
