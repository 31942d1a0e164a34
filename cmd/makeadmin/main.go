// Command makeadmin promotes an existing user to admin by email, or
// lists all users. Users must have logged in at least once before they
// can be promoted.
//
// Usage:
//
//	makeadmin user@example.com
//	makeadmin -list
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"classtrack_go/config"
	"classtrack_go/database"
	"classtrack_go/models"
	"classtrack_go/store"
)

func main() {
	listUsers := flag.Bool("list", false, "list all users instead of promoting")
	flag.Parse()

	config.LoadConfig()
	database.Connect()
	defer database.Close()

	st := store.NewGormStore(database.GetDB())
	ctx := context.Background()

	if *listUsers {
		if err := runList(ctx, st); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		return
	}

	email := flag.Arg(0)
	if email == "" {
		fmt.Fprintln(os.Stderr, "Usage: makeadmin <email> | makeadmin -list")
		os.Exit(2)
	}

	if err := runPromote(ctx, st, email); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runPromote(ctx context.Context, st *store.Store, email string) error {
	user, err := st.Users.FindOne(ctx, store.Filter{"email": email})
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %q not found; they must log in at least once before being made an admin", email)
	}

	matched, err := st.Users.UpdateOne(ctx,
		store.Filter{"email": email},
		store.Updates{"role": models.RoleAdmin})
	if err != nil {
		return err
	}
	if matched == 0 {
		return fmt.Errorf("failed to update role for %q", email)
	}

	fmt.Printf("Promoted %s (%s) to admin\n", user.Name, email)
	return nil
}

func runList(ctx context.Context, st *store.Store) error {
	users, err := st.Users.FindMany(ctx, nil)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		fmt.Println("No users found.")
		return nil
	}

	fmt.Printf("%-30s %-35s %s\n", "NAME", "EMAIL", "ROLE")
	for _, u := range users {
		fmt.Printf("%-30s %-35s %s\n", u.Name, u.Email, u.Role)
	}
	return nil
}
