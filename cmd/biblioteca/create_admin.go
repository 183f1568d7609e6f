package main

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/AntonStoeckl/biblioteca/library/core"
	"github.com/AntonStoeckl/biblioteca/library/features/command/registeruser"
	"github.com/AntonStoeckl/biblioteca/library/shell/auth"
	"github.com/AntonStoeckl/biblioteca/library/shell/config"
)

const (
	logMsgAdminCreated = "administrator created"
	logMsgAdminExists  = "an account with this email already exists"
	logAttrEmail       = "email"
	logAttrUserID      = "user_id"
)

var (
	adminEmail    string
	adminPassword string
	adminName     string
	adminSurname  string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Register an administrator account",
	Long: `Registers the first administrator, who can then grant roles through the API.

Example:
  biblioteca create-admin --email admin@biblioteca.test --password secreto --nombre Ana`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if err := loadedConfig.Validate(); err != nil {
			return err
		}

		store, err := config.OpenEventStore(ctx, loadedConfig.Database, logger)
		if err != nil {
			return err
		}
		defer store.Close()

		if err = store.EnsureSchema(ctx); err != nil {
			return err
		}

		userID, err := uuid.NewV7()
		if err != nil {
			return err
		}

		handler := registeruser.NewCommandHandler(store, auth.NewPasswordHasher(bcrypt.DefaultCost))
		command := registeruser.BuildCommand(
			userID.String(),
			adminEmail,
			adminPassword,
			core.RoleAdmin,
			core.Profile{FirstName: adminName, PaternalSurname: adminSurname},
			time.Now(),
		)

		if _, err = handler.Handle(ctx, command); err != nil {
			if errors.Is(err, core.ErrConflict) {
				logger.Warn(logMsgAdminExists, logAttrEmail, command.Email)
				return nil
			}

			return err
		}

		logger.Info(logMsgAdminCreated, logAttrEmail, command.Email, logAttrUserID, command.UserID)

		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "email of the administrator")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "initial password")
	createAdminCmd.Flags().StringVar(&adminName, "nombre", "Administrador", "first name")
	createAdminCmd.Flags().StringVar(&adminSurname, "apellido", "", "paternal surname")

	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
}
