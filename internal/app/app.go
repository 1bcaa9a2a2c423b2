package app

import (
	"context"
	"log/slog"
	"time"

	httpapp "github.com/14kear/csi-portal/internal/app/http"
	"github.com/14kear/csi-portal/internal/config"
	"github.com/14kear/csi-portal/internal/csrf"
	"github.com/14kear/csi-portal/internal/email"
	"github.com/14kear/csi-portal/internal/handlers"
	"github.com/14kear/csi-portal/internal/middleware"
	"github.com/14kear/csi-portal/internal/repo/postgres"
	"github.com/14kear/csi-portal/internal/routes"
	"github.com/14kear/csi-portal/internal/scheduler"
	"github.com/14kear/csi-portal/internal/services"
	"github.com/14kear/csi-portal/internal/uploads"
	"github.com/14kear/csi-portal/migrations"
	sl "github.com/14kear/sso-prettyslog/slogpretty/errors"
	"github.com/go-redis/redis/v8"
)

const csrfSweepInterval = 5 * time.Minute

type App struct {
	log        *slog.Logger
	HTTPServer *httpapp.App
	Operations *services.Operations
	Scheduler  *scheduler.Scheduler
	storage    *postgres.Storage
	redis      *redis.Client
	cancel     context.CancelFunc
}

func NewApp(log *slog.Logger, cfg *config.Config) *App {
	storage, err := postgres.New(cfg.StoragePath)
	if err != nil {
		panic(err)
	}

	if cfg.AutoMigrate {
		if err := migrations.Up(storage.DB()); err != nil {
			panic(err)
		}
		log.Info("migrations applied")
	}

	templates, err := email.LoadTemplates()
	if err != nil {
		panic(err)
	}
	mailer, err := email.NewDispatcher(log, email.Config{
		Host:          cfg.SMTP.Host,
		Port:          cfg.SMTP.Port,
		Username:      cfg.SMTP.Username,
		Password:      cfg.SMTP.Password,
		From:          cfg.SMTP.From,
		BatchSize:     cfg.SMTP.BatchSize,
		RatePerSecond: cfg.SMTP.RatePerSecond,
	})
	if err != nil {
		panic(err)
	}

	fileStore, err := uploads.New(cfg.Uploads.Dir, cfg.Uploads.MaxSize, cfg.Uploads.AllowedTypes)
	if err != nil {
		panic(err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	a := &App{log: log, storage: storage, cancel: cancel}

	var csrfStore csrf.Store
	switch cfg.CSRF.Store {
	case "redis":
		a.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.CSRF.RedisAddr,
			Password: cfg.CSRF.RedisPass,
			DB:       cfg.CSRF.RedisDB,
		})
		if err := a.redis.Ping(ctx).Err(); err != nil {
			panic(err)
		}
		csrfStore = csrf.NewRedisStore(a.redis)
	default:
		memory := csrf.NewMemoryStore()
		go memory.RunSweeper(ctx, csrfSweepInterval)
		csrfStore = memory
	}
	csrfManager := csrf.NewManager(csrfStore, cfg.CSRF.TTL)

	audit := services.NewAudit(log, storage)
	usersService := services.NewUsers(log, storage, audit, cfg.Auth.Secret, cfg.Auth.AccessTTL)
	orgService := services.NewOrg(log, storage, audit)
	surveysService := services.NewSurveys(log, storage, storage, audit)
	responsesService := services.NewResponses(log, storage, storage, storage)
	approvalsService := services.NewApprovals(log, storage, mailer, templates, audit)
	operationsService := services.NewOperations(log, storage, storage, storage, mailer, templates, audit, services.OperationsConfig{
		BaseURL:    cfg.BaseURL,
		MaxRetries: cfg.Scheduler.MaxRetries,
		BatchLimit: cfg.Scheduler.BatchLimit,
		StaleAfter: cfg.Scheduler.StaleAfter,
	})
	reportsService := services.NewReports(log, storage, storage)
	uploadsService := services.NewUploads(log, storage, fileStore, audit)

	if cfg.Admin.Email != "" {
		if err := usersService.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			panic(err)
		}
	}

	if err := handlers.RegisterValidators(); err != nil {
		panic(err)
	}

	h := routes.Handlers{
		Auth:       handlers.NewAuthHandler(usersService, csrfManager),
		Users:      handlers.NewUsersHandler(usersService),
		Org:        handlers.NewOrgHandler(orgService),
		Surveys:    handlers.NewSurveysHandler(surveysService),
		Responses:  handlers.NewResponsesHandler(responsesService),
		Approvals:  handlers.NewApprovalsHandler(approvalsService),
		Audit:      handlers.NewAuditHandler(audit),
		Operations: handlers.NewOperationsHandler(operationsService),
		Reports:    handlers.NewReportsHandler(reportsService),
		Uploads:    handlers.NewUploadsHandler(uploadsService, fileStore.MaxSize()),
	}

	authMiddleware := middleware.NewAuthMiddleware(cfg.Auth.Secret, storage)
	a.HTTPServer = httpapp.NewApp(log, cfg, h, authMiddleware, csrfManager, audit)
	a.Operations = operationsService

	if cfg.Scheduler.Enabled {
		a.Scheduler, err = scheduler.New(log, operationsService, cfg.Scheduler.Interval)
		if err != nil {
			panic(err)
		}
	}

	return a
}

// Start launches background jobs. The HTTP server is run separately.
func (a *App) Start() {
	if a.Scheduler != nil {
		a.Scheduler.Start()
	}
}

func (a *App) Stop(ctx context.Context) error {
	if err := a.HTTPServer.Stop(ctx); err != nil {
		return err
	}
	if a.Scheduler != nil {
		a.Scheduler.Stop(ctx)
	}
	a.cancel()

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Warn("failed to close redis", sl.Err(err))
		}
	}
	return a.storage.Close()
}
