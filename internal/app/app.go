package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/dayanaadylkhanova/health-exporter/internal/adapter/events"
	"github.com/dayanaadylkhanova/health-exporter/internal/adapter/mail"
	http_server "github.com/dayanaadylkhanova/health-exporter/internal/adapter/transport/http"
	"github.com/dayanaadylkhanova/health-exporter/internal/healthstore"
	"github.com/dayanaadylkhanova/health-exporter/internal/service"
	"github.com/dayanaadylkhanova/health-exporter/pkg/config"
	"go.uber.org/zap"
)

type AppInfo struct {
	Name      string
	BuildTime string
	Commit    string
	Release   string
}

type publisher interface {
	service.EventPublisher
	Close() error
}

type App struct {
	cfg  config.Config
	info *AppInfo
	log  *zap.Logger

	// queries started over HTTP run on this context, not the request's
	baseCtx    context.Context
	cancelBase context.CancelFunc

	health  *healthstore.Controller
	events  publisher
	session *service.Session
	server  *http_server.Server
}

func New(cfg config.Config, info *AppInfo, log *zap.Logger) (*App, error) {
	// 1) Health store
	src, err := openSource(cfg, log)
	if err != nil {
		return nil, err
	}
	hc := healthstore.NewController(src, log.Named("healthstore"), healthstore.WithBatchSize(cfg.QueryBatchSize))

	// 2) Mail + events
	mailer := mail.New(mail.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		DraftDir: cfg.MailDraftDir,
	}, log.Named("mail"))

	var pub publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		pub = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		log.Info("publishing export events", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))
	}

	// 3) Session
	baseCtx, cancel := context.WithCancel(context.Background())
	sess := service.NewSession(baseCtx, log.Named("session"), hc, mailer, pub, service.SessionConfig{
		Window:    cfg.QueryWindow,
		BatchSize: cfg.QueryBatchSize,
		Location:  cfg.Location(),
		MailFrom:  cfg.MailFrom,
		MailTo:    cfg.MailTo,
	})

	// 4) HTTP server (ports: SessionPort + TypesReaderPort)
	srv := http_server.NewServer(log.Named("http"), cfg.ListenAddr, sess, hc)

	return &App{
		cfg:        cfg,
		info:       info,
		log:        log,
		baseCtx:    baseCtx,
		cancelBase: cancel,
		health:     hc,
		events:     pub,
		session:    sess,
		server:     srv,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	if !a.health.IsHealthDataAvailable(ctx) {
		a.log.Warn("health data is not available yet; fetching stays disabled until it is")
	}

	// Start HTTP
	httpErrCh := make(chan error, 1)
	go func() { httpErrCh <- a.server.Start() }()

	var runErr error
	select {
	case <-ctx.Done():
		// graceful
		runErr = ErrAppShutdownNormal
	case err := <-httpErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server", zap.Error(err))
			runErr = ErrAppStartup
		} else {
			runErr = ErrAppShutdownNormal
		}
	}

	// Graceful shutdown
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), a.cfg.ShutdownWait)
	defer cancelShutdown()

	var errs []error
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, err)
	}
	a.cancelBase()
	a.session.Close()
	if err := a.health.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := a.events.Close(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 && errors.Is(runErr, ErrAppShutdownNormal) {
		a.log.Error("shutdown", zap.Error(errors.Join(errs...)))
		return ErrAppShutdownWithError
	}
	return runErr
}
