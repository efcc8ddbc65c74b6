package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cashtrackr/cashtrackr-api/internal/models"
	"github.com/cashtrackr/cashtrackr-api/internal/repository"
	"github.com/cashtrackr/cashtrackr-api/internal/services"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gorm.io/gorm"
)

var (
	newUserName     string
	newUserEmail    string
	newUserPassword string
)

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create a confirmed account",
	Long: `Create an account that can log in immediately, without the email
confirmation step. The password is prompted for when --password is omitted.`,
	Example: `  cashtrackr create-user --name Juan --email juan@correo.com
  cashtrackr create-user -n Juan -e juan@correo.com -p password`,
	RunE: func(cmd *cobra.Command, args []string) error {
		password := newUserPassword
		if password == "" {
			fmt.Fprint(cmd.OutOrStdout(), "Password: ")
			var err error
			password, err = readPassword(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout())
		}

		_, db, err := bootstrap()
		if err != nil {
			return err
		}

		user, err := createUser(cmd.Context(), db, newUserName, newUserEmail, password)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "User %s created successfully with ID %d\n", user.Email, user.ID)
		return nil
	},
}

func init() {
	createUserCmd.Flags().StringVarP(&newUserName, "name", "n", "", "Display name (required)")
	createUserCmd.Flags().StringVarP(&newUserEmail, "email", "e", "", "Login email (required)")
	createUserCmd.Flags().StringVarP(&newUserPassword, "password", "p", "", "Password, prompted when omitted")
	createUserCmd.MarkFlagRequired("name")
	createUserCmd.MarkFlagRequired("email")
}

func createUser(ctx context.Context, db *gorm.DB, name, email, password string) (*models.User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email %q", email)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must have at least 8 characters")
	}

	authService := services.NewAuthService(repository.NewUserRepository(db), nil, nil, nil)
	user, err := authService.CreateConfirmedAccount(ctx, name, email, password)
	if errors.Is(err, services.ErrEmailInUse) {
		return nil, fmt.Errorf("user %s already exists", email)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	// pipes and tests
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
