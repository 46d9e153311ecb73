package main

import (
	"agendamento/cmd/internal/service"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage users",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	Run:   runUsersList,
}

var usersPromoteCmd = &cobra.Command{
	Use:   "promote [email]",
	Short: "Grant admin rights to a user",
	Args:  cobra.ExactArgs(1),
	Run:   runUsersPromote,
}

func init() {
	usersCmd.AddCommand(usersListCmd, usersPromoteCmd)
}

func runUsersList(cmd *cobra.Command, args []string) {
	repo, db := openRepo()
	defer closeDB(db)

	users, err := repo.FindAll(cmd.Context())
	if err != nil {
		log.Fatal("failed to list users: ", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tADMIN")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%t\n", u.ID, u.Name, u.Email, u.IsAdmin)
	}
	_ = w.Flush()
}

func runUsersPromote(cmd *cobra.Command, args []string) {
	repo, db := openRepo()
	defer closeDB(db)

	user, err := service.PromoteUser(cmd.Context(), repo, args[0])
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("User %s (id %d) is now an admin\n", user.Email, user.ID)
}
