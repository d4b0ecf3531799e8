package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/songvault/internal/auth"
	"github.com/mrlokans/songvault/internal/config"
	"github.com/mrlokans/songvault/internal/library"
)

// SetPasswordCommand replaces a user's password hash.
type SetPasswordCommand struct {
	UserID       int
	Password     string
	DatabasePath string
}

func NewSetPasswordCommand() *SetPasswordCommand {
	return &SetPasswordCommand{}
}

func (cmd *SetPasswordCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("set-password", flag.ExitOnError)

	fs.IntVar(&cmd.UserID, "id", 0, "Id of the user (required)")
	fs.StringVar(&cmd.Password, "password", "", "New password (required, min 12 characters)")
	fs.StringVar(&cmd.DatabasePath, "db", "", "Path to the library database file (defaults to DATABASE_PATH)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s set-password -id <user id> -password <password> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Replace a user's password. The password is stored as a bcrypt hash.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.UserID == 0 {
		return fmt.Errorf("required flag -id not provided")
	}
	if cmd.Password == "" {
		return fmt.Errorf("required flag -password not provided")
	}
	return nil
}

func (cmd *SetPasswordCommand) Run() error {
	cfg := config.NewConfig()

	passHash, err := auth.HashPassword(cmd.Password, cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(cfg, cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer closeStore()

	resp := store.UpdatePassword(cmd.UserID, passHash)
	switch resp.Status {
	case library.StatusSuccess:
		fmt.Printf("Updated password for user %d\n", cmd.UserID)
		return nil
	case library.StatusBadRequest:
		return fmt.Errorf("no user with id %d", cmd.UserID)
	default:
		return fmt.Errorf("store returned %s", resp.Status)
	}
}
