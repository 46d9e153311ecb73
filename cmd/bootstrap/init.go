package main

import (
	"agendamento/cmd/internal/service"
	"fmt"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

var (
	adminName     string
	adminEmail    string
	adminPassword string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create tables and the default admin",
	Run:   runInit,
}

func init() {
	initCmd.Flags().StringVar(&adminName, "name", service.DefaultAdminName, "Admin display name")
	initCmd.Flags().StringVar(&adminEmail, "email", service.DefaultAdminEmail, "Admin email")
	initCmd.Flags().StringVar(&adminPassword, "password", service.DefaultAdminPassword, "Admin password")
}

func runInit(cmd *cobra.Command, args []string) {
	repo, db := openRepo()
	defer closeDB(db)

	created, err := service.EnsureAdmin(cmd.Context(), repo, adminName, adminEmail, adminPassword)
	if err != nil {
		log.Fatal("failed to create admin: ", err)
	}

	if !created {
		fmt.Println("Admin user already exists!")
		return
	}
	fmt.Println("Admin user created successfully!")
	fmt.Printf("Email: %s\n", adminEmail)
	fmt.Printf("Password: %s\n", adminPassword)
}
