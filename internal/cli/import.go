package cli

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/songvault/internal/config"
	"github.com/mrlokans/songvault/internal/library"
)

// ImportCommand recreates a user library from a JSON snapshot file.
type ImportCommand struct {
	SnapshotPath string
	DatabasePath string
}

func NewImportCommand() *ImportCommand {
	return &ImportCommand{}
}

func (cmd *ImportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)

	fs.StringVar(&cmd.SnapshotPath, "file", "", "Path to the snapshot file (required)")
	fs.StringVar(&cmd.DatabasePath, "db", "", "Path to the library database file (defaults to DATABASE_PATH)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import -file <snapshot.json> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import a user library snapshot produced by the export command.\n")
		fmt.Fprintf(os.Stderr, "The snapshot's user id and username must not be taken yet.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.SnapshotPath == "" {
		return fmt.Errorf("required flag -file not provided")
	}
	return nil
}

func (cmd *ImportCommand) Run() error {
	cfg := config.NewConfig()

	raw, err := os.ReadFile(cmd.SnapshotPath)
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}
	var snap library.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return fmt.Errorf("failed to decode snapshot: %w", err)
	}

	store, closeStore, err := openStore(cfg, cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := library.ImportUser(store, &snap); err != nil {
		return err
	}

	fmt.Printf("Imported user %q with id %d (%d songs, %d tags)\n",
		snap.User.Username, snap.User.ID, len(snap.Songs), len(snap.Tags))
	return nil
}
