package main

import (
	"fmt"
	"os"

	"github.com/mrlokans/songvault/internal/cli"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

type command interface {
	ParseFlags(args []string) error
	Run() error
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	name := os.Args[1]
	args := os.Args[2:]

	var cmd command
	switch name {
	case "add-user":
		cmd = cli.NewAddUserCommand()
	case "list-users":
		cmd = cli.NewListUsersCommand()
	case "remove-user":
		cmd = cli.NewRemoveUserCommand()
	case "set-password":
		cmd = cli.NewSetPasswordCommand()
	case "export":
		cmd = cli.NewExportCommand()
	case "import":
		cmd = cli.NewImportCommand()

	case "version":
		fmt.Printf("songvault %s (%s)\n", Version, Commit)
		return

	case "-h", "--help", "help":
		printUsage()
		return

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
		printUsage()
		os.Exit(1)
	}

	if err := cmd.ParseFlags(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  add-user      Create a new user with an empty library\n")
	fmt.Fprintf(os.Stderr, "  list-users    List all users and their library sizes\n")
	fmt.Fprintf(os.Stderr, "  remove-user   Remove a user and all library data\n")
	fmt.Fprintf(os.Stderr, "  set-password  Replace a user's password\n")
	fmt.Fprintf(os.Stderr, "  export        Export a user's library to a JSON snapshot\n")
	fmt.Fprintf(os.Stderr, "  import        Import a user library snapshot\n")
	fmt.Fprintf(os.Stderr, "  version       Print version information\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
