package cli

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/mrlokans/songvault/internal/config"
)

// ListUsersCommand prints every user together with library sizes.
type ListUsersCommand struct {
	DatabasePath string
}

func NewListUsersCommand() *ListUsersCommand {
	return &ListUsersCommand{}
}

func (cmd *ListUsersCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("list-users", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", "", "Path to the library database file (defaults to DATABASE_PATH)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s list-users [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List all users and the sizes of their libraries.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *ListUsersCommand) Run() error {
	cfg := config.NewConfig()

	store, closeStore, err := openStore(cfg, cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer closeStore()

	users := store.GetAllUsers()
	if !users.Succeeded() {
		return fmt.Errorf("failed to list users: store returned %s", users.Status)
	}

	ids := make([]int, 0, len(users.Result))
	for id := range users.Result {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tADMIN\tSONGS\tTAGS\tTAG TYPES\tDATA")
	for _, id := range ids {
		user := users.Result[id]
		songs := store.GetAllSongs(id)
		tags := store.GetAllTags(id)
		tagTypes := store.GetAllTagTypes(id)
		data := store.GetAllData(id)
		fmt.Fprintf(w, "%d\t%s\t%t\t%d\t%d\t%d\t%d\n",
			user.ID, user.Username, user.Admin,
			len(songs.Result), len(tags.Result), len(tagTypes.Result), len(data.Result))
	}
	return w.Flush()
}
