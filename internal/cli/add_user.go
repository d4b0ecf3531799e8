package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/songvault/internal/auth"
	"github.com/mrlokans/songvault/internal/config"
	"github.com/mrlokans/songvault/internal/entities"
	"github.com/mrlokans/songvault/internal/library"
	"github.com/mrlokans/songvault/internal/utils"
)

// AddUserCommand creates a new user with an empty library.
type AddUserCommand struct {
	Username     string
	Password     string
	Admin        bool
	UserID       int
	DefaultColor string
	DatabasePath string
}

func NewAddUserCommand() *AddUserCommand {
	return &AddUserCommand{}
}

func (cmd *AddUserCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("add-user", flag.ExitOnError)

	fs.StringVar(&cmd.Username, "username", "", "Username for the new user (required)")
	fs.StringVar(&cmd.Password, "password", "", "Password for the new user (required, min 12 characters)")
	fs.BoolVar(&cmd.Admin, "admin", false, "Grant admin privileges")
	fs.IntVar(&cmd.UserID, "id", 0, "User id to assign (0 picks the next free id)")
	fs.StringVar(&cmd.DefaultColor, "color", "", "Color of the user's default tag type, e.g. #FF8800 (defaults to the configured color)")
	fs.StringVar(&cmd.DatabasePath, "db", "", "Path to the library database file (defaults to DATABASE_PATH)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s add-user -username <name> -password <password> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create a new user with empty song, tag and data collections and a\n")
		fmt.Fprintf(os.Stderr, "default tag type. The password is stored as a bcrypt hash.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.Username == "" {
		return fmt.Errorf("required flag -username not provided")
	}
	if cmd.Password == "" {
		return fmt.Errorf("required flag -password not provided")
	}
	return nil
}

func (cmd *AddUserCommand) Run() error {
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

	userID := cmd.UserID
	if userID == 0 {
		userID, err = nextFreeUserID(store)
		if err != nil {
			return err
		}
	}

	color := cfg.Library.DefaultTagTypeColor
	if cmd.DefaultColor != "" {
		color, err = utils.ParseColor(cmd.DefaultColor)
		if err != nil {
			return err
		}
	}

	resp := store.AddUser(
		entities.User{ID: userID, Username: cmd.Username, PassHash: passHash, Admin: cmd.Admin},
		entities.TagType{Color: color},
	)
	switch resp.Status {
	case library.StatusSuccess:
		fmt.Printf("Created user %q with id %d (default tag type color %s)\n",
			cmd.Username, resp.Result, utils.ColorToHexRGB(color))
		return nil
	case library.StatusBadRequest:
		return fmt.Errorf("user id %d or username %q is already taken", userID, cmd.Username)
	default:
		return fmt.Errorf("store returned %s", resp.Status)
	}
}
