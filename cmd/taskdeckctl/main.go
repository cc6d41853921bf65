package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"taskdeck/internal/config"
	"taskdeck/internal/logging"
	"taskdeck/internal/store"
	"taskdeck/internal/tracker"
)

var rootCmd = &cobra.Command{
	Use:   "taskdeckctl",
	Short: "taskdeck administration utility",
}

func newTracker() (*tracker.Tracker, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, err
	}
	st, err := store.New(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	return tracker.New(st, log, tracker.Options{
		AdminEmail:      cfg.AdminEmail,
		OwnerOnlyRemove: cfg.OwnerOnlyRemove,
	}), nil
}

var createAdminCmd = func() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Bootstrap the system manager account",
		RunE: func(cmd *cobra.Command, args []string) error {
			trk, err := newTracker()
			if err != nil {
				return err
			}
			if err := trk.CreateAdmin(username, password); err != nil {
				return err
			}
			fmt.Println("Manager created successfully.")
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "manager username")
	cmd.Flags().StringVar(&password, "password", "", "manager password")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("password")
	return cmd
}()

var purgeDataCmd = &cobra.Command{
	Use:   "purge-data",
	Short: "Delete all persisted documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		trk, err := newTracker()
		if err != nil {
			return err
		}
		if err := trk.PurgeData(); err != nil {
			return err
		}
		fmt.Println("All data purged.")
		return nil
	},
}

func main() {
	rootCmd.AddCommand(createAdminCmd, purgeDataCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
