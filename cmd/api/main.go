package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"shophub/internal/config"
	"shophub/internal/db"
	"shophub/internal/httpserver"
	"shophub/internal/payment"
	productrepo "shophub/internal/repository/product"
	cartsvc "shophub/internal/service/cart"
	catalogsvc "shophub/internal/service/catalog"
	checkoutsvc "shophub/internal/service/checkout"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	productRepo := productrepo.NewPostgres(dbpool, logger)
	catalogService := catalogsvc.New(productRepo)
	cartStore := cartsvc.NewStore(logger)
	provider := payment.NewStripeClient(cfg.StripeSecretKey, logger)
	checkoutService := checkoutsvc.New(cartStore, provider, cfg.Currency, logger, func(c checkoutsvc.Completion) {
		logger.Printf("order completed session=%s intent=%s total=%s", c.SessionID, c.Confirmation.IntentID, c.Totals.GrandTotal)
	})

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Catalog:     catalogService,
		Carts:       cartStore,
		Checkout:    checkoutService,
		Provider:    provider,
		BearerToken: cfg.APIBearerToken,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
