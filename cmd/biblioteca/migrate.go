package main

import (
	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/biblioteca/library/shell/config"
)

const logMsgSchemaReady = "event store schema is ready"

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the events table and its indexes if they do not exist",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadedConfig.Validate(); err != nil {
			return err
		}

		store, err := config.OpenEventStore(cmd.Context(), loadedConfig.Database, logger)
		if err != nil {
			return err
		}
		defer store.Close()

		if err = store.EnsureSchema(cmd.Context()); err != nil {
			return err
		}

		logger.Info(logMsgSchemaReady, logAttrAdapter, loadedConfig.Database.Adapter)

		return nil
	},
}
