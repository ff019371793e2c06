package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/disckocrip/retro-backend/internal/api"
	sessionapi "github.com/disckocrip/retro-backend/internal/api/session"
	submitapi "github.com/disckocrip/retro-backend/internal/api/submit"
	"github.com/disckocrip/retro-backend/internal/config"
	"github.com/disckocrip/retro-backend/internal/entity"
	"github.com/disckocrip/retro-backend/internal/integration/mail"
	"github.com/disckocrip/retro-backend/internal/pkg/validator"
	"github.com/disckocrip/retro-backend/internal/session"
	"github.com/disckocrip/retro-backend/internal/store"
	"go.uber.org/zap"
)

// connector is the delivery collaborator surface shared by the real SMTP
// connector and its mock.
type connector interface {
	Verify(ctx context.Context) error
	Submit(ctx context.Context, answers []string) (string, error)
}

const verifyTimeout = 30 * time.Second

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	timeline, err := entity.ComputeTimeline(entity.TimelineStart, entity.TimelineEnd)
	if err != nil {
		return nil, fmt.Errorf("compute timeline: %w", err)
	}

	// Open the local snapshot store and bring its schema up to date
	medium, err := store.OpenSQLite(cfg.StoreCfg.Path, cfg.StoreCfg.QuotaBytes)
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}
	snapshotStore := store.New(medium, logger)
	logger.Info("snapshot store opened",
		zap.String("path", cfg.StoreCfg.Path),
		zap.Int("quota_bytes", cfg.StoreCfg.QuotaBytes),
	)

	// Initialize the delivery connector (with mock support)
	var delivery connector
	if cfg.EnableMocks {
		logger.Info("Using mock mail connector")
		delivery = mail.NewMockConnector(logger)
	} else {
		mailConn, err := mail.NewConnector(cfg.MailCfg, logger)
		if err != nil {
			medium.Close()
			return nil, fmt.Errorf("initialize mail connector: %w", err)
		}
		delivery = mailConn
	}

	// Connectivity check is advisory: when it fails the server still comes
	// up and submissions fail at send time.
	verifyCtx, cancel := context.WithTimeout(ctx, verifyTimeout)
	if err := delivery.Verify(verifyCtx); err != nil {
		logger.Error("SMTP connectivity check failed, submissions will fail at send time", zap.Error(err))
	}
	cancel()

	// Initialize the session controller and restore persisted progress
	controller := session.NewController(
		snapshotStore,
		delivery,
		cfg.Catalog,
		entity.DefaultMoments(),
		timeline,
		cfg.SessionCfg.SaveDebounce,
		logger,
	)
	controller.Restore(ctx)
	logger.Info("session controller initialized")

	// Setup API handlers
	answerValidator := validator.NewValidator(cfg.Catalog)
	sessionHandler := sessionapi.NewHandler(controller, answerValidator)
	submitHandler := submitapi.NewHandler(delivery, answerValidator)

	// Setup router
	router := api.SetupRouter(sessionHandler, submitHandler, cfg.StaticDir, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server:     server,
		controller: controller,
		medium:     medium,
		logger:     logger,
	}, nil
}
