package library_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/songvault/internal/entities"
	"github.com/mrlokans/songvault/internal/library"
	"github.com/mrlokans/songvault/internal/library/memory"
)

func seedLibrary(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.New()

	resp := s.AddUser(entities.User{ID: 1, Username: "ann", PassHash: "hash", Admin: true}, entities.TagType{Color: 7})
	require.Equal(t, library.StatusSuccess, resp.Status)

	genre := "genre"
	require.Equal(t, library.StatusSuccess, s.PutTagType(1, "genre", entities.TagType{Color: 2}).Status)
	require.Equal(t, library.StatusSuccess, s.PutTag(1, "rock", entities.Tag{Type: &genre}).Status)
	require.Equal(t, library.StatusSuccess,
		s.PutSong(1, 10, entities.Song{Title: "x", Duration: 100, Tags: entities.NewTagSet("rock", "live")}).Status)
	require.Equal(t, library.StatusSuccess, s.PutData(1, "theme", "dark").Status)
	return s
}

func TestExportUser(t *testing.T) {
	s := seedLibrary(t)

	snap, err := library.ExportUser(s, 1)
	require.NoError(t, err)

	assert.Equal(t, library.Version, snap.Version)
	assert.Equal(t, "ann", snap.User.Username)
	assert.True(t, snap.User.Admin)
	assert.Equal(t, "hash", snap.PassHash)
	assert.Equal(t, entities.TagType{Color: 7}, snap.DefaultTagType)
	assert.Len(t, snap.Songs, 1)
	assert.Len(t, snap.Tags, 2) // "rock" plus the materialized "live"
	assert.Equal(t, map[string]entities.TagType{"genre": {Color: 2}}, snap.TagTypes)
	assert.Equal(t, map[string]string{"theme": "dark"}, snap.Data)
}

func TestExportUnknownUser(t *testing.T) {
	s := memory.New()

	_, err := library.ExportUser(s, 42)
	assert.ErrorIs(t, err, library.ErrUnknownUser)
}

func TestImportRoundTrip(t *testing.T) {
	source := seedLibrary(t)
	snap, err := library.ExportUser(source, 1)
	require.NoError(t, err)

	dest := memory.New()
	require.NoError(t, library.ImportUser(dest, snap))

	user := dest.GetUser(1)
	require.NotNil(t, user.Result)
	assert.Equal(t, "ann", user.Result.Username)
	assert.True(t, user.Result.Admin)
	assert.Equal(t, "hash", *dest.GetPassHash(1).Result)
	assert.Equal(t, 7, dest.GetDefaultTagType(1).Result.Color)

	song := dest.GetSong(1, 10)
	require.NotNil(t, song.Result)
	assert.Equal(t, "x", song.Result.Title)
	assert.Equal(t, entities.NewTagSet("rock", "live"), song.Result.Tags)

	// The imported tag type keeps its own color instead of being
	// re-materialized from the default.
	assert.Equal(t, 2, dest.GetTagType(1, "genre").Result.Color)
	assert.Equal(t, snap.Tags, dest.GetAllTags(1).Result)
	assert.Equal(t, "dark", *dest.GetData(1, "theme").Result)
}

func TestImportRejectsTakenID(t *testing.T) {
	source := seedLibrary(t)
	snap, err := library.ExportUser(source, 1)
	require.NoError(t, err)

	assert.Error(t, library.ImportUser(source, snap))
}

func TestImportRejectsVersionMismatch(t *testing.T) {
	snap := &library.Snapshot{Version: "0.9"}
	assert.Error(t, library.ImportUser(memory.New(), snap))
}
