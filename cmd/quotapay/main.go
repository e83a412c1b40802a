package main

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MikeRez0/quotapay/internal/adapter/auth"
	"github.com/MikeRez0/quotapay/internal/adapter/config"
	"github.com/MikeRez0/quotapay/internal/adapter/events"
	"github.com/MikeRez0/quotapay/internal/adapter/gateway"
	"github.com/MikeRez0/quotapay/internal/adapter/handler/http"
	"github.com/MikeRez0/quotapay/internal/adapter/logger"
	"github.com/MikeRez0/quotapay/internal/adapter/metrics"
	"github.com/MikeRez0/quotapay/internal/adapter/storage"
	"github.com/MikeRez0/quotapay/internal/adapter/storage/memory"
	"github.com/MikeRez0/quotapay/internal/adapter/storage/repository"
	"github.com/MikeRez0/quotapay/internal/adapter/vault"
	"github.com/MikeRez0/quotapay/internal/core/domain"
	"github.com/MikeRez0/quotapay/internal/core/port"
	"github.com/MikeRez0/quotapay/internal/core/service"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func main() {
	conf, err := config.NewConfig()
	if err != nil {
		fmt.Printf("config error:%s", err)
		os.Exit(1)
	}

	log := logger.NewLogger(conf.App)
	if log == nil {
		fmt.Printf("error creating log")
		os.Exit(1)
	}
	defer func() {
		err := log.Sync()
		if err != nil {
			fmt.Printf("log error: %s", err)
		}
	}()

	if err := run(conf, log); err != nil {
		log.Error("quotapay stopped", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(conf *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := newRepository(ctx, conf.Database, log)
	if err != nil {
		return err
	}
	defer closeRepo()

	secrets, err := vault.New(conf.Vault.Secret)
	if err != nil {
		return fmt.Errorf("vault: %w", err)
	}

	privateKey, err := gateway.LoadPrivateKey(conf.Gateway.PrivateKeyPath)
	if err != nil {
		return fmt.Errorf("merchant key: %w", err)
	}
	gatewayKey, err := gateway.LoadPublicKey(conf.Gateway.PublicKeyPath)
	if err != nil {
		return fmt.Errorf("gateway key: %w", err)
	}
	authenticator, err := gateway.NewAuthenticator(conf.Gateway.MchID, conf.Gateway.SerialNo,
		privateKey, gatewayKey, conf.Gateway.APIv3Key)
	if err != nil {
		return fmt.Errorf("gateway authenticator: %w", err)
	}
	gatewayClient := gateway.NewClient(conf.Gateway, authenticator, log.Named("Gateway"))

	tokenService, err := auth.New(conf.Auth.TokenSecret, conf.Auth.TokenDuration)
	if err != nil {
		return fmt.Errorf("token service: %w", err)
	}

	promMetrics := metrics.New()
	opts := []service.Option{
		service.WithMetrics(promMetrics),
		service.WithCatalog(domain.PlanCatalog{AmountOverrideFen: conf.Billing.TestPayFen}),
	}
	if len(conf.Events.Brokers) > 0 {
		publisher := events.NewPublisher(conf.Events, log.Named("Events"))
		defer func() {
			if err := publisher.Close(); err != nil {
				log.Warn("event publisher close error", zap.Error(err))
			}
		}()
		opts = append(opts, service.WithEventPublisher(publisher))
	}

	svc, err := service.NewService(repo, gatewayClient, authenticator, secrets, tokenService,
		log.Named("Service"), opts...)
	if err != nil {
		return fmt.Errorf("service: %w", err)
	}

	if conf.Database.ReconcileOnStart {
		if _, err := svc.Reconcile(ctx); err != nil {
			return fmt.Errorf("reconcile on start: %w", err)
		}
	}

	router, err := newRouter(conf, log, tokenService, svc, promMetrics)
	if err != nil {
		return err
	}

	server := &nethttp.Server{
		Addr:              conf.HTTP.HostString,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("address", conf.HTTP.HostString))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, nethttp.ErrServerClosed) {
			return fmt.Errorf("router serve error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newRepository returns the Postgres ledger when a DSN is configured and the in-memory one
// otherwise.
func newRepository(ctx context.Context, conf *config.Database, log *zap.Logger) (port.Repository, func(), error) {
	if conf.DSN == "" {
		log.Warn("DATABASE_URI is empty, using in-memory storage")
		return memory.NewStore(conf.LockTimeout), func() {}, nil
	}

	db, err := storage.NewDBStorage(ctx, conf)
	if err != nil {
		return nil, nil, fmt.Errorf("database error: %w", err)
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("database migration error: %w", err)
	}

	repo, err := repository.NewRepository(db)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("repository creating error: %w", err)
	}
	return repo, db.Close, nil
}

func newRouter(conf *config.Config, log *zap.Logger, tokens port.TokenService, svc port.Service,
	promMetrics *metrics.Metrics) (*http.Router, error) {
	notifyHandler, err := http.NewNotifyHandler(svc, log.Named("Notify handler"))
	if err != nil {
		return nil, fmt.Errorf("notify handler creating error: %w", err)
	}
	orderHandler, err := http.NewOrderHandler(svc, log.Named("Order handler"))
	if err != nil {
		return nil, fmt.Errorf("order handler creating error: %w", err)
	}
	quotaHandler, err := http.NewQuotaHandler(svc, log.Named("Quota handler"))
	if err != nil {
		return nil, fmt.Errorf("quota handler creating error: %w", err)
	}
	dealerHandler, err := http.NewDealerHandler(svc, log.Named("Dealer handler"))
	if err != nil {
		return nil, fmt.Errorf("dealer handler creating error: %w", err)
	}
	partnerHandler, err := http.NewPartnerHandler(svc, log.Named("Partner handler"))
	if err != nil {
		return nil, fmt.Errorf("partner handler creating error: %w", err)
	}

	router, err := http.NewRouter(conf.App, log.Named("Router"), tokens,
		notifyHandler, orderHandler, quotaHandler, dealerHandler, partnerHandler, promMetrics.Handler())
	if err != nil {
		return nil, fmt.Errorf("router creating error: %w", err)
	}
	return router, nil
}
