package main

import (
	"agendamento/cmd/internal/config"
	"agendamento/cmd/internal/domain/database"
	"agendamento/cmd/internal/domain/database/repository"
	"os"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Prepare the agendamento database",
	Long:  "Create the tables, seed the default admin and manage accounts from the command line.",
}

func main() {
	rootCmd.AddCommand(initCmd, usersCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openRepo loads the configuration and returns a user repository over a
// migrated database.
func openRepo() (*repository.DefaultUserRepository, *gorm.DB) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load configuration: ", err)
	}

	db, err := database.Init(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to initialize database: ", err)
	}
	return repository.NewUserRepository(db), db
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
