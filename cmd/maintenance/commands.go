package main

import (
	"fmt"

	"github.com/komunitech/komunitech/internal/application"
	"github.com/komunitech/komunitech/internal/config"
	"github.com/komunitech/komunitech/internal/config/db"
	"github.com/komunitech/komunitech/internal/cron"
	"github.com/komunitech/komunitech/internal/repository"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
	"k8s.io/client-go/kubernetes"
)

// env holds the connections the commands open lazily, so tests can swap in
// an in-memory database or a fake clientset.
type env struct {
	log    zerolog.Logger
	openDB func() (*gorm.DB, error)
	kube   func() (kubernetes.Interface, error)
}

func (e *env) services() (*application.Services, error) {
	gdb, err := e.openDB()
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return application.New(repository.NewRepositories(gdb), application.Options{
		Engagement: config.Engagement(),
		Logger:     e.log,
	}), nil
}

func newRootCmd(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:           "maintenance",
		Short:         "KomuniTech schema and retention maintenance",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newMigrateCmd(e),
		newPurgeNotificationsCmd(e),
		newPurgeAuditCmd(e),
		newInstallCronJobCmd(e),
		newUninstallCronJobCmd(e),
	)
	return root
}

func newMigrateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update tables and apply SQL migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			gdb, err := e.openDB()
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			if err := db.Migrate(gdb); err != nil {
				return fmt.Errorf("auto migrate: %w", err)
			}
			if err := db.RunSQLMigrations(gdb); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return nil
		},
	}
}

func newPurgeNotificationsCmd(e *env) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "purge-notifications",
		Short: "Delete notifications older than --days",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := e.services()
			if err != nil {
				return err
			}
			n, err := svc.Notification.PurgeOld(days)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d notifications older than %d days\n", n, days)
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 30, "retention in days")
	return cmd
}

func newPurgeAuditCmd(e *env) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "purge-audit",
		Short: "Delete audit log entries older than --days",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := e.services()
			if err != nil {
				return err
			}
			n, err := svc.Audit.PurgeOld(days)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d audit entries older than %d days\n", n, days)
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 365, "retention in days")
	return cmd
}

func newInstallCronJobCmd(e *env) *cobra.Command {
	var opts cron.PurgeJobOptions
	cmd := &cobra.Command{
		Use:   "install-cronjob",
		Short: "Create or update the Kubernetes CronJob that runs both purges",
		RunE: func(cmd *cobra.Command, args []string) error {
			cs, err := e.kube()
			if err != nil {
				return err
			}
			updated, err := cron.InstallPurgeCronJob(cmd.Context(), cs, opts, e.log)
			if err != nil {
				return err
			}
			verb := "created"
			if updated {
				verb = "updated"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s cronjob %s/%s\n", verb, opts.Namespace, cron.PurgeJobName)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.Namespace, "namespace", config.CronNamespace, "target namespace")
	f.StringVar(&opts.Schedule, "schedule", cron.DefaultSchedule, "cron schedule")
	f.StringVar(&opts.Image, "image", config.MaintenanceImage, "maintenance image")
	f.StringVar(&opts.EnvSecret, "env-secret", "", "secret exposed as environment to the job")
	f.IntVar(&opts.NotificationRetentionDays, "notification-days", config.NotificationRetentionDays, "notification retention in days")
	f.IntVar(&opts.AuditRetentionDays, "audit-days", config.AuditRetentionDays, "audit retention in days")
	return cmd
}

func newUninstallCronJobCmd(e *env) *cobra.Command {
	var namespace string
	cmd := &cobra.Command{
		Use:   "uninstall-cronjob",
		Short: "Delete the purge CronJob",
		RunE: func(cmd *cobra.Command, args []string) error {
			cs, err := e.kube()
			if err != nil {
				return err
			}
			return cron.DeletePurgeCronJob(cmd.Context(), cs, namespace, e.log)
		},
	}
	cmd.Flags().StringVar(&namespace, "namespace", config.CronNamespace, "target namespace")
	return cmd
}
