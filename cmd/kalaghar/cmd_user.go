package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/kalaghar/app/models"
	"github.com/shashiranjanraj/kalaghar/app/repositories"
	"github.com/shashiranjanraj/kalaghar/pkg/auth"
)

var userCreateFlags struct {
	name     string
	password string
	email    string
	role     string
}

// kalaghar user:create: bootstrap an account, typically the first Admin.
var userCreateCmd = &cobra.Command{
	Use:   "user:create",
	Short: "Create a user account directly in the store",
	Example: `  kalaghar user:create --name root --password 's3cret' --role Admin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := bootStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close(ctx) //nolint:errcheck

		u, err := createUser(ctx, store.Users, userCreateFlags.name, userCreateFlags.password,
			userCreateFlags.email, userCreateFlags.role)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s %q (id %s)\n", u.Role, u.Name, u.ID)
		return nil
	},
}

func init() {
	f := userCreateCmd.Flags()
	f.StringVar(&userCreateFlags.name, "name", "", "account name (required)")
	f.StringVar(&userCreateFlags.password, "password", "", "account password (required)")
	f.StringVar(&userCreateFlags.email, "email", "", "contact email")
	f.StringVar(&userCreateFlags.role, "role", models.RoleAdmin, "Visitor, Artist or Admin")
	_ = userCreateCmd.MarkFlagRequired("name")
	_ = userCreateCmd.MarkFlagRequired("password")
}

func createUser(ctx context.Context, users repositories.UserRepository, name, password, email, role string) (*models.User, error) {
	if !models.ValidRole(role) {
		return nil, fmt.Errorf("invalid role %q", role)
	}
	if name == "" || password == "" {
		return nil, errors.New("name and password are required")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := models.NewUser(name, email, role, hash)
	if err := users.Create(ctx, u); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, fmt.Errorf("a %s named %q already exists", role, name)
		}
		return nil, err
	}
	return u, nil
}
