// Package cmd wires configuration, stores and collaborators into the
// server and the maintenance commands.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/princinho/stonevitrine/config"
	"github.com/princinho/stonevitrine/database"
	"github.com/princinho/stonevitrine/logger"
	"github.com/princinho/stonevitrine/notify"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

var (
	envFile string
	cfg     *config.Configuration

	rootCmd = &cobra.Command{
		Use:          "stonevitrine",
		Short:        "Showcase site and back-office API for a natural stone business",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var files []string
			if envFile != "" {
				files = append(files, envFile)
			}
			loaded, err := config.Load(files...)
			if err != nil {
				return err
			}
			cfg = loaded
			gin.SetMode(cfg.GinMode)
			return logger.Init(&logger.LogConfig{
				Level:  cfg.LogLevel,
				Format: cfg.LogFormat,
				Output: cfg.LogOutput,
				Path:   cfg.LogPath,
			})
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&envFile, "env", "e", "", "env file to load before reading the environment (default .env)")
	rootCmd.AddCommand(serveCmd, adminCmd, dashboardCmd, reportCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openStores returns the stores selected by STORE_DRIVER and a function
// releasing them.
func openStores(ctx context.Context) (*database.Stores, func(), error) {
	if cfg.StoreDriver == "memory" {
		logger.App().Warn("using in-memory store, data is lost on exit")
		return database.NewMemoryStores(), func() {}, nil
	}

	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return nil, nil, err
	}
	db := client.Database(cfg.DatabaseName)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}
	return database.NewMongoStores(db), disconnect(client), nil
}

func disconnect(client *mongo.Client) func() {
	return func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.App().WithError(err).Error("mongo disconnect failed")
		}
	}
}

func newNotifier() notify.Notifier {
	if !cfg.SMTPEnabled() {
		logger.App().Info("EMAIL_HOST/EMAIL_USER not set, notifications are logged only")
		return notify.LogNotifier{}
	}
	return notify.NewSMTPNotifier(notify.SMTPConfig{
		Host:     cfg.EmailHost,
		Port:     cfg.EmailPort,
		User:     cfg.EmailUser,
		Pass:     cfg.EmailPass,
		FromName: cfg.EmailFromName,
	})
}
