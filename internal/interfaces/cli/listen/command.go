package listen

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	ingestion "github.com/leaders-st/helpdesk/internal/application/ingestion/usecases"
	appnotification "github.com/leaders-st/helpdesk/internal/application/notification"
	sla "github.com/leaders-st/helpdesk/internal/application/sla/usecases"
	"github.com/leaders-st/helpdesk/internal/domain/mail"
	"github.com/leaders-st/helpdesk/internal/domain/ticket"
	"github.com/leaders-st/helpdesk/internal/infrastructure/cache"
	"github.com/leaders-st/helpdesk/internal/infrastructure/config"
	"github.com/leaders-st/helpdesk/internal/infrastructure/database"
	"github.com/leaders-st/helpdesk/internal/infrastructure/email"
	"github.com/leaders-st/helpdesk/internal/infrastructure/mailbox"
	"github.com/leaders-st/helpdesk/internal/infrastructure/migration"
	"github.com/leaders-st/helpdesk/internal/infrastructure/repository"
	"github.com/leaders-st/helpdesk/internal/infrastructure/scheduler"
	"github.com/leaders-st/helpdesk/internal/infrastructure/watermark"
	"github.com/leaders-st/helpdesk/internal/infrastructure/webhook"
	"github.com/leaders-st/helpdesk/internal/shared/db"
	"github.com/leaders-st/helpdesk/internal/shared/goroutine"
	"github.com/leaders-st/helpdesk/internal/shared/logger"
)

var autoMigrate bool

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Watch the support mailbox and run the SLA scanner",
		Long:  `Connect to the support mailbox over IMAP, turn inbound emails into tickets, and periodically scan open tickets for SLA warnings and overdue alerts.`,
		RunE:  run,
	}

	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Run database migrations on startup (not recommended for production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	log := logger.NewLogger()
	log.Infow("starting helpdesk listener", "mailbox", cfg.Mailbox.GetAddr(), "auto_migrate", autoMigrate)

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if autoMigrate {
		if err := migration.Run(database.Get()); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Infow("database migrations applied")
	}

	policy, err := ticket.NewSLAPolicy(
		cfg.SLA.HighDeadline,
		cfg.SLA.MediumDeadline,
		cfg.SLA.LowDeadline,
		cfg.SLA.WarningRatio,
	)
	if err != nil {
		return fmt.Errorf("invalid sla policy: %w", err)
	}

	ticketRepo := repository.NewTicketRepository(database.Get(), policy)
	notificationRepo := repository.NewNotificationRepository(database.Get())
	userRepo := repository.NewUserRepository(database.Get())
	txMgr := db.NewTransactionManager(database.Get())

	// Redis is an optional fast path for duplicate detection; the unique
	// index on message_id still holds without it.
	var seenCache *cache.MessageIDCache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		pingCancel()
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		seenCache = cache.NewMessageIDCache(redisClient, cache.DefaultSeenTTL)
		log.Infow("redis dedup cache enabled", "address", cfg.Redis.GetAddr())
	}

	var autoReplier ingestion.AutoReplier = email.NoopAutoReplier{}
	if cfg.AutoReply.Enabled {
		autoReplier = email.NewSMTPAutoReplier(&cfg.AutoReply, log)
		log.Infow("auto-reply enabled", "from", cfg.AutoReply.FromAddress)
	}

	slackClient := webhook.NewSlackClient(&cfg.Webhook, log)
	dispatcher := appnotification.NewDispatcher(notificationRepo, slackClient, log)

	filter := mail.NewFilter(cfg.Ingestion.InboxAddress, cfg.Ingestion.AllowedSenders, cfg.Ingestion.AllowedDomains)
	processUC := ingestion.NewProcessMessageUseCase(filter, ticketRepo, userRepo, dispatcher, seenCache, autoReplier, txMgr, log)

	store := watermark.NewFileStore(cfg.Ingestion.WatermarkPath)
	imapClient := mailbox.NewIMAPClient(&cfg.Mailbox, log)
	listener := mailbox.NewListener(imapClient, processUC, store, &cfg.Ingestion, log)

	scanUC := sla.NewScanTicketsUseCase(ticketRepo, userRepo, dispatcher, policy, txMgr, log)

	schedMgr, err := scheduler.NewSchedulerManager(log)
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	scanJob := scheduler.ScanJobFunc(func(ctx context.Context) error {
		_, err := scanUC.Execute(ctx)
		return err
	})
	if err := schedMgr.RegisterSLAJobs(scanJob, cfg.SLA.ScanPeriod); err != nil {
		return fmt.Errorf("failed to register sla scan job: %w", err)
	}
	schedMgr.Start()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listenerDone := make(chan error, 1)
	goroutine.SafeGo(log, "mailbox-listener", func() {
		listenerDone <- listener.Run(ctx)
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Infow("received signal, shutting down", "signal", sig.String())
	case err := <-listenerDone:
		// Run only returns on context cancellation, so this is unexpected.
		log.Errorw("mailbox listener exited", "error", err)
		if stopErr := schedMgr.Stop(); stopErr != nil {
			log.Errorw("failed to stop scheduler", "error", stopErr)
		}
		return err
	}

	cancel()
	if err := schedMgr.Stop(); err != nil {
		log.Errorw("failed to stop scheduler", "error", err)
	}

	select {
	case <-listenerDone:
	case <-time.After(30 * time.Second):
		log.Warnw("mailbox listener did not stop in time")
	}

	log.Infow("helpdesk listener exited gracefully")
	return nil
}
