package queuemailercmd

import (
	"fmt"
	"sync"

	"go.lumeweb.com/queuemailer/config"
	"go.lumeweb.com/queuemailer/core"
	"go.lumeweb.com/queuemailer/db"
	"go.lumeweb.com/queuemailer/service"
	"go.uber.org/zap"
)

type app struct {
	ctx       core.Context
	mailer    *service.QueueMailer
	outbox    *service.Outbox
	templates *service.TemplateStoreDefault

	exitOnce sync.Once
	exitErr  error
}

func bootstrap(configFile string) (*app, error) {
	var opts []config.ManagerOption
	if configFile != "" {
		opts = append(opts, config.ManagerWithConfigFile(configFile))
	}

	cfg, err := config.NewManager(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	err = cfg.Init()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	logger := core.NewLogger(cfg)

	ctx, err := core.NewContext(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	_, dbOpts, err := db.NewDatabase(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, err = ctx.With(dbOpts...)
	if err != nil {
		return nil, err
	}

	m, outbox, mailerOpts, err := service.NewQueueMailerService(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create mailer: %w", err)
	}

	ctx, err = ctx.With(mailerOpts...)
	if err != nil {
		return nil, err
	}

	err = ctx.Startup()
	if err != nil {
		logger.Error("startup failed", zap.Error(err))
		_ = ctx.Exit()
		return nil, err
	}

	return &app{
		ctx:       ctx,
		mailer:    m,
		outbox:    outbox,
		templates: service.NewTemplateStore(ctx.DB()),
	}, nil
}

// shutdown runs the exit hooks, which flush anything still staged and close the database.
func (a *app) shutdown() error {
	a.exitOnce.Do(func() {
		a.exitErr = a.ctx.Exit()
		if a.exitErr != nil {
			a.ctx.Logger().Error("error during exit", zap.Error(a.exitErr))
		}
	})

	return a.exitErr
}
