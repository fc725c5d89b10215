package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/princinho/stonevitrine/client"
	"github.com/princinho/stonevitrine/jobs"
	"github.com/princinho/stonevitrine/logger"
	"github.com/princinho/stonevitrine/notify"
	"github.com/princinho/stonevitrine/routes"
	"github.com/princinho/stonevitrine/storage"
	"github.com/princinho/stonevitrine/utils"
	"github.com/princinho/stonevitrine/web"
	"github.com/spf13/cobra"
)

const (
	notifyTimeout   = 30 * time.Second
	shutdownTimeout = 15 * time.Second
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Short:   "Start the API server and the public pages",
	Example: "stonevitrine serve -e .env.production",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func serve() error {
	log := logger.App()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, closeStores, err := openStores(ctx)
	if err != nil {
		return err
	}
	defer closeStores()

	created, err := utils.SyncAdminUser(ctx, stores.Users, cfg.AdminUser, cfg.AdminPass, cfg.AdminPasswordSync)
	if err != nil {
		return err
	}
	if created {
		log.WithField("username", cfg.AdminUser).Info("admin user created")
	}

	uploader, err := storage.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer uploader.Close()

	notifier := newNotifier()
	dispatcher := notify.NewDispatcher(notifier, cfg.EmailUser, notifyTimeout)

	reporter := jobs.NewWeeklyReporter(stores, notifier, cfg.EmailUser)
	scheduler, err := jobs.StartScheduler(cfg.WeeklyReportSchedule, reporter)
	if err != nil {
		return err
	}

	deps := routes.Deps{
		Config:     cfg,
		Stores:     stores,
		Validator:  storage.NewImageValidator(cfg.MaxUploadBytes()),
		Uploader:   uploader,
		Dispatcher: dispatcher,
	}
	if cfg.WebEnabled {
		site, err := web.NewSite(client.New(cfg.APIBaseURL, 10*time.Second))
		if err != nil {
			return err
		}
		deps.Site = site
	}

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           routes.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("address", cfg.Address).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server shutdown failed")
	}
	<-scheduler.Stop().Done()
	dispatcher.Wait()
	return nil
}
