package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/songvault/internal/config"
	"github.com/mrlokans/songvault/internal/library"
)

// RemoveUserCommand removes a user and the user's entire library.
type RemoveUserCommand struct {
	UserID       int
	DatabasePath string
}

func NewRemoveUserCommand() *RemoveUserCommand {
	return &RemoveUserCommand{}
}

func (cmd *RemoveUserCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("remove-user", flag.ExitOnError)

	fs.IntVar(&cmd.UserID, "id", 0, "Id of the user to remove (required)")
	fs.StringVar(&cmd.DatabasePath, "db", "", "Path to the library database file (defaults to DATABASE_PATH)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s remove-user -id <user id> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Remove a user along with all of that user's songs, tags, tag types\n")
		fmt.Fprintf(os.Stderr, "and data entries. This cannot be undone.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.UserID == 0 {
		return fmt.Errorf("required flag -id not provided")
	}
	return nil
}

func (cmd *RemoveUserCommand) Run() error {
	cfg := config.NewConfig()

	store, closeStore, err := openStore(cfg, cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer closeStore()

	resp := store.RemoveUser(cmd.UserID)
	switch resp.Status {
	case library.StatusSuccess:
		fmt.Printf("Removed user %d and all library data\n", cmd.UserID)
		return nil
	case library.StatusBadRequest:
		return fmt.Errorf("no user with id %d", cmd.UserID)
	default:
		return fmt.Errorf("store returned %s", resp.Status)
	}
}
