// Command adduser creates one user record in the credential file without the
// server running. The password is read from the terminal without echo.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"labstock/internal/models"
	"labstock/internal/store"
)

func main() {
	usersFile := flag.String("users", "users.csv", "path to the credential file")
	role := flag.String("role", models.RoleStaff, "role for the new user (admin or staff)")
	flag.Parse()

	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Enter new username: ")
	username, err := reader.ReadString('\n')
	if err != nil {
		fmt.Fprintln(os.Stderr, "read username:", err)
		os.Exit(1)
	}
	username = strings.TrimSpace(username)
	if username == "" {
		fmt.Fprintln(os.Stderr, "username must not be empty")
		os.Exit(1)
	}

	fmt.Print("Enter password: ")
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		fmt.Fprintln(os.Stderr, "read password:", err)
		os.Exit(1)
	}

	users := store.NewUserStore(*usersFile)
	u, err := users.Create(username, string(pw), *role)
	if err != nil {
		fmt.Fprintln(os.Stderr, "could not create user:", err)
		os.Exit(1)
	}
	fmt.Printf("User %q created with role %s.\n", u.Username, u.Role)
}
