package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	grpcadapter "github.com/ulogs/wallet-backend/internal/adapter/grpc"
	"github.com/ulogs/wallet-backend/internal/adapter/repository/postgres"
	"github.com/ulogs/wallet-backend/internal/adapter/steemapi"
	"github.com/ulogs/wallet-backend/internal/adapter/steemconnect"
	"github.com/ulogs/wallet-backend/internal/config"
	"github.com/ulogs/wallet-backend/internal/domain"
	"github.com/ulogs/wallet-backend/internal/logging"
	"github.com/ulogs/wallet-backend/internal/metrics"
	"github.com/ulogs/wallet-backend/internal/usecase/balance"
	"github.com/ulogs/wallet-backend/internal/usecase/powerdown"
	"github.com/ulogs/wallet-backend/internal/usecase/powerup"
	"github.com/ulogs/wallet-backend/internal/usecase/username"
	"github.com/ulogs/wallet-backend/internal/usecase/validation"
)

// chainSource is everything the wallet reads from the chain state
type chainSource interface {
	domain.AccountRepository
	domain.GlobalPropertiesRepository
	domain.AccountLookup
}

// pgSource joins the two postgres repositories into one chainSource
type pgSource struct {
	*postgres.AccountRepository
	domain.GlobalPropertiesRepository
}

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.LogFormat, cfg.LogLevel)

	// 2. Select the balance source
	source, closeSource, err := newChainSource(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to initialize %s balance source: %v", cfg.BalanceSource, err)
	}
	defer closeSource()

	// 3. Signing service
	signer, err := steemconnect.NewClient(steemconnect.Config{
		App:             cfg.SteemConnect.App,
		BaseURL:         cfg.SteemConnect.Host,
		CallbackURL:     cfg.SteemConnect.CallbackURL,
		SignRedirectURL: cfg.SteemConnect.SignRedirectURL,
	})
	if err != nil {
		logger.Fatalf("failed to initialize signing client: %v", err)
	}

	// 4. Initialize Services (Use Cases)
	balanceService := balance.NewBalanceService(source, source)
	validations := validation.NewValidations(balanceService, username.NewValidator(source))
	powerUpService := powerup.NewPowerUpService(validations, signer)
	powerDownService := powerdown.NewPowerDownService(validations, signer)

	// 5. Metrics
	m := metrics.New()
	metricsServer := metrics.StartServer(cfg.MetricsAddr, m, logger)

	// 6. Start gRPC Server
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpcadapter.AuthInterceptor(cfg.APIToken),
			grpcadapter.SessionInterceptor(),
			grpcadapter.MetricsInterceptor(m),
			grpcadapter.LoggingInterceptor(logger),
		),
	)

	grpcadapter.RegisterWalletServiceServer(grpcServer, grpcadapter.NewServer(
		validations,
		powerUpService,
		powerDownService,
		m,
		logger,
	))

	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		logger.Fatalf("failed to listen on %s: %v", cfg.GRPCAddr, err)
	}

	go func() {
		logger.WithFields(logrus.Fields{
			"addr":     cfg.GRPCAddr,
			"source":   cfg.BalanceSource,
			"app":      signer.App(),
			"callback": signer.CallbackURL(),
		}).Info("gRPC server listening")
		if err := grpcServer.Serve(lis); err != nil {
			logger.Fatalf("failed to serve gRPC server: %v", err)
		}
	}()

	// Graceful shutdown
	waitForShutdown(grpcServer, metricsServer, logger)
}

// newChainSource builds the configured balance source and its cleanup func
func newChainSource(cfg config.Config, logger *logrus.Logger) (chainSource, func(), error) {
	switch cfg.BalanceSource {
	case config.SourcePostgres:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		db, err := postgres.NewDB(ctx, postgres.Config{
			DSN:             cfg.Postgres.DSN,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		})
		if err != nil {
			return nil, nil, err
		}

		source := pgSource{
			AccountRepository:          postgres.NewAccountRepository(db),
			GlobalPropertiesRepository: postgres.NewGlobalPropertiesRepository(db),
		}
		closeDB := func() {
			if err := db.Close(); err != nil {
				logger.Warnf("failed to close database: %v", err)
			}
		}
		return source, closeDB, nil

	default:
		client := steemapi.NewClient(cfg.Steem.RPCURL, cfg.Steem.Timeout, logger)
		return client, func() {}, nil
	}
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the servers
func waitForShutdown(grpcServer *grpclib.Server, metricsServer *metrics.Server, logger *logrus.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logger.Infof("received signal: %v, shutting down gracefully", sig)

	grpcServer.GracefulStop()
	logger.Info("gRPC server stopped")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := metricsServer.Stop(ctx); err != nil {
		logger.Warnf("failed to stop metrics server: %v", err)
	}
}
