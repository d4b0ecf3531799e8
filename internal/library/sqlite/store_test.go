package sqlite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/songvault/internal/entities"
	"github.com/mrlokans/songvault/internal/library"
	"github.com/mrlokans/songvault/internal/library/librarytest"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := "./test_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	store, err := Open(dbPath, 0)
	require.NoError(t, err)

	t.Cleanup(func() {
		store.Close()
		os.Remove(dbPath)
	})
	return store
}

func TestConformance(t *testing.T) {
	librarytest.Run(t, func(t *testing.T) library.Store {
		return setupTestStore(t)
	})
}

func TestDataSurvivesReopen(t *testing.T) {
	dbPath := "./test_reopen.db"
	defer os.Remove(dbPath)

	store, err := Open(dbPath, 0)
	require.NoError(t, err)

	resp := store.AddUser(entities.User{ID: 1, Username: "ann", PassHash: "h"}, entities.TagType{Color: 3})
	require.Equal(t, library.StatusSuccess, resp.Status)
	require.Equal(t, library.StatusSuccess,
		store.PutSong(1, 10, entities.Song{Title: "x", Tags: entities.NewTagSet("rock")}).Status)
	require.Equal(t, library.StatusSuccess, store.PutData(1, "theme", "dark").Status)
	require.NoError(t, store.Close())

	reopened, err := Open(dbPath, 0)
	require.NoError(t, err)
	defer reopened.Close()

	user := reopened.GetUser(1)
	require.Equal(t, library.StatusSuccess, user.Status)
	require.NotNil(t, user.Result)
	assert.Equal(t, "ann", user.Result.Username)

	song := reopened.GetSong(1, 10)
	require.NotNil(t, song.Result)
	assert.Equal(t, "x", song.Result.Title)
	assert.Equal(t, entities.NewTagSet("rock"), song.Result.Tags)

	assert.Equal(t, 3, reopened.GetDefaultTagType(1).Result.Color)
	assert.Equal(t, "dark", *reopened.GetData(1, "theme").Result)
}

func TestClosedDatabaseSurfacesConnectionIssue(t *testing.T) {
	dbPath := "./test_closed.db"
	defer os.Remove(dbPath)

	store, err := Open(dbPath, 0)
	require.NoError(t, err)

	resp := store.AddUser(entities.User{ID: 1, Username: "ann"}, entities.TagType{})
	require.Equal(t, library.StatusSuccess, resp.Status)
	require.NoError(t, store.Close())

	// I/O failures become statuses, never raw errors through the envelope.
	assert.Equal(t, library.StatusConnectionIssue, store.GetSong(1, 10).Status)
	assert.Equal(t, library.StatusConnectionIssue, store.GetAllUsers().Status)
	assert.Equal(t, library.StatusConnectionIssue, store.PutData(1, "k", "v").Status)
	assert.Equal(t, library.StatusConnectionIssue, store.RemoveUser(1).Status)
}

func TestStatusTranslation(t *testing.T) {
	assert.Equal(t, library.StatusSuccess, statusFor(nil))
	assert.Equal(t, library.StatusBadRequest, statusFor(fmt.Errorf("user 7: %w", errBadRequest)))
	assert.Equal(t, library.StatusTimeout, statusFor(context.DeadlineExceeded))
	assert.Equal(t, library.StatusTimeout, statusFor(fmt.Errorf("query: %w", context.DeadlineExceeded)))
	assert.Equal(t, library.StatusConnectionIssue, statusFor(errors.New("disk I/O error")))
}

func TestVersionNeedsNoDatabase(t *testing.T) {
	store := setupTestStore(t)
	require.NoError(t, store.Close())

	resp := store.GetVersion()
	require.Equal(t, library.StatusSuccess, resp.Status)
	assert.Equal(t, library.Version, resp.Result)
}
