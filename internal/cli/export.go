package cli

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/songvault/internal/config"
	"github.com/mrlokans/songvault/internal/library"
	"github.com/mrlokans/songvault/internal/utils"
)

// ExportCommand writes one user's entire library to a JSON snapshot file.
type ExportCommand struct {
	UserID       int
	OutputPath   string
	DatabasePath string
}

func NewExportCommand() *ExportCommand {
	return &ExportCommand{}
}

func (cmd *ExportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	fs.IntVar(&cmd.UserID, "id", 0, "Id of the user to export (required)")
	fs.StringVar(&cmd.OutputPath, "out", "", "Output file (defaults to <username>.json)")
	fs.StringVar(&cmd.DatabasePath, "db", "", "Path to the library database file (defaults to DATABASE_PATH)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export -id <user id> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Export a user's songs, tags, tag types and data entries to a JSON\n")
		fmt.Fprintf(os.Stderr, "snapshot that can be imported into another library database.\n\n")
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

func (cmd *ExportCommand) Run() error {
	cfg := config.NewConfig()

	store, closeStore, err := openStore(cfg, cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer closeStore()

	snap, err := library.ExportUser(store, cmd.UserID)
	if err != nil {
		return err
	}

	if cmd.OutputPath == "" {
		cmd.OutputPath = utils.SanitizeFilename(snap.User.Username) + ".json"
	}

	encoded, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := os.WriteFile(cmd.OutputPath, encoded, 0o600); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	fmt.Printf("Exported user %d (%d songs, %d tags) to %s\n",
		cmd.UserID, len(snap.Songs), len(snap.Tags), cmd.OutputPath)
	return nil
}
