package main

import (
	"context"
	"log"
	"time"

	"fulfillment-service/internal/core/config"
	"fulfillment-service/internal/core/logger"
	"fulfillment-service/internal/core/server"
	"fulfillment-service/internal/core/store"
	orderadapter "fulfillment-service/internal/features/orders/adapters"
	orderservice "fulfillment-service/internal/features/orders/service"
	shipmentadapter "fulfillment-service/internal/features/shipments/adapters"
	shipmenthandler "fulfillment-service/internal/features/shipments/handler"
	shipmentservice "fulfillment-service/internal/features/shipments/service"
	trackingadapter "fulfillment-service/internal/features/tracking/adapters"
	"fulfillment-service/internal/features/tracking/ports"
	trackingservice "fulfillment-service/internal/features/tracking/service"

	"go.uber.org/zap"
)

// @title Fulfillment Service API
// @version 1.0
// @description Order fulfillment API: shipment lifecycle, live courier tracking and order fulfillment views.
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	// Initialize the document store and verify connectivity.
	redisStore, err := store.NewRedisAdapter(cfg.Redis.URL)
	if err != nil {
		l.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer redisStore.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisStore.Ping(pingCtx); err != nil {
		l.Fatal("Redis health check failed", zap.Error(err))
	}
	l.Info("Redis connection verified")

	// Initialize carrier adapters.
	carrierAdapters := []ports.CarrierAdapter{
		trackingadapter.NewCourierGuyAdapter(cfg.Couriers),
		trackingadapter.NewFastwayAdapter(cfg.Couriers),
		trackingadapter.NewAramexAdapter(cfg.Couriers),
		trackingadapter.NewDHLAdapter(cfg.Couriers),
		trackingadapter.NewPaxiAdapter(cfg.Couriers),
	}
	fetcher := trackingservice.NewTrackingFetcher(carrierAdapters)

	// Initialize the order mirror.
	orderRepo := orderadapter.NewRedisOrderRepository(redisStore)
	orderMirror := orderservice.NewOrderMirrorService(orderRepo)

	// Initialize the shipment service and handler.
	shipmentRepo := shipmentadapter.NewRedisShipmentRepository(redisStore)
	productInventory := shipmentadapter.NewRedisProductInventory(redisStore)
	shipmentSvc := shipmentservice.NewShipmentService(shipmentRepo, productInventory, fetcher, orderMirror)
	shipmentHdl := shipmenthandler.NewShipmentHandler(shipmentSvc)

	srv := server.New(cfg)

	shipmentHdl.RegisterRoutes(srv.App)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
