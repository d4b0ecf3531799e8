// Package librarytest provides the contract conformance suite for library
// store backends. Every backend runs the same suite so that the in-memory
// reference and the persistent adapters are interchangeable.
package librarytest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/songvault/internal/entities"
	"github.com/mrlokans/songvault/internal/library"
)

// Factory returns a fresh, empty store for one conformance subtest.
type Factory func(t *testing.T) library.Store

// Run exercises the full store contract against the backend produced by
// the factory.
func Run(t *testing.T, newStore Factory) {
	t.Run("Version", func(t *testing.T) {
		s := newStore(t)
		resp := s.GetVersion()
		require.Equal(t, library.StatusSuccess, resp.Status)
		assert.Equal(t, library.Version, resp.Result)
	})

	t.Run("AddUser", testAddUser(newStore))
	t.Run("AddUserDuplicate", testAddUserDuplicate(newStore))
	t.Run("UnknownUserRetrievals", testUnknownUserRetrievals(newStore))
	t.Run("UnknownUserMutations", testUnknownUserMutations(newStore))
	t.Run("Songs", testSongs(newStore))
	t.Run("SongTimestamps", testSongTimestamps(newStore))
	t.Run("SongTagMaterialization", testSongTagMaterialization(newStore))
	t.Run("SongsByTags", testSongsByTags(newStore))
	t.Run("Tags", testTags(newStore))
	t.Run("TagTypeMaterialization", testTagTypeMaterialization(newStore))
	t.Run("RemoveTagCascade", testRemoveTagCascade(newStore))
	t.Run("TagTypes", testTagTypes(newStore))
	t.Run("RemoveTagTypeCascade", testRemoveTagTypeCascade(newStore))
	t.Run("DefaultTagType", testDefaultTagType(newStore))
	t.Run("Data", testData(newStore))
	t.Run("UserUpdates", testUserUpdates(newStore))
	t.Run("RemoveUser", testRemoveUser(newStore))
	t.Run("RemovalIdempotence", testRemovalIdempotence(newStore))
}

func addUser(t *testing.T, s library.Store, id int, username string, color int) {
	t.Helper()
	resp := s.AddUser(entities.User{ID: id, Username: username, PassHash: "hash-" + username}, entities.TagType{Color: color})
	require.Equal(t, library.StatusSuccess, resp.Status)
	require.Equal(t, id, resp.Result)
}

func strPtr(s string) *string { return &s }

func testAddUser(newStore Factory) func(*testing.T) {
	return func(t *testing.T) {
		s := newStore(t)
		addUser(t, s, 1, "ann", 7)

		user := s.GetUser(1)
		require.Equal(t, library.StatusSuccess, user.Status)
		require.NotNil(t, user.Result)
		assert.Equal(t, "ann", user.Result.Username)
		assert.False(t, user.Result.Admin)

		byName := s.GetUserByUsername("ann")
		require.Equal(t, library.StatusSuccess, byName.Status)
		require.NotNil(t, byName.Result)
		assert.Equal(t, 1, byName.Result.ID)

		all := s.GetAllUsers()
		require.Equal(t, library.StatusSuccess, all.Status)
		assert.Len(t, all.Result, 1)

		hash := s.GetPassHash(1)
		require.Equal(t, library.StatusSuccess, hash.Status)
		require.NotNil(t, hash.Result)
		assert.Equal(t, "hash-ann", *hash.Result)

		// Fresh collections plus the seeded default tag type.
		assert.Empty(t, s.GetAllSongs(1).Result)
		assert.Empty(t, s.GetAllTags(1).Result)
		assert.Empty(t, s.GetAllData(1).Result)

		def := s.GetDefaultTagType(1)
		require.Equal(t, library.StatusSuccess, def.Status)
		require.NotNil(t, def.Result)
		assert.Equal(t, 7, def.Result.Color)

		types := s.GetAllTagTypes(1)
		require.Equal(t, library.StatusSuccess, types.Status)
		assert.Equal(t, map[string]entities.TagType{"": {Color: 7}}, types.Result)
	}
}

func testAddUserDuplicate(newStore Factory) func(*testing.T) {
	return func(t *testing.T) {
		s := newStore(t)
		addUser(t, s, 1, "ann", 0)

		dupID := s.AddUser(entities.User{ID: 1, Username: "someone"}, entities.TagType{})
		assert.Equal(t, library.StatusBadRequest, dupID.Status)

		dupName := s.AddUser(entities.User{ID: 2, Username: "ann"}, entities.TagType{})
		assert.Equal(t, library.StatusBadRequest, dupName.Status)

		all := s.GetAllUsers()
		require.Equal(t, library.StatusSuccess, all.Status)
		assert.Len(t, all.Result, 1)
		assert.Equal(t, "ann", all.Result[1].Username)
	}
}

func testUnknownUserRetrievals(newStore Factory) func(*testing.T) {
	return func(t *testing.T) {
		s := newStore(t)

		// A missing user is an absence, not an error.
		assert.Equal(t, library.OK[*entities.TagType](nil), s.GetDefaultTagType(99))
		assert.Equal(t, library.OK(false), s.HasSong(99, 1))
		assert.Equal(t, library.OK[*entities.Song](nil), s.GetSong(99, 1))
		assert.Equal(t, library.OK(map[int]entities.Song{}), s.GetAllSongs(99))
		assert.Equal(t, library.OK(map[int]entities.Song{}), s.GetSongsByTags(99, nil, nil))
		assert.Equal(t, library.OK(false), s.HasTag(99, "rock"))
		assert.Equal(t, library.OK[*entities.Tag](nil), s.GetTag(99, "rock"))
		assert.Equal(t, library.OK(map[string]entities.Tag{}), s.GetAllTags(99))
		assert.Equal(t, library.OK(false), s.HasTagType(99, "genre"))
		assert.Equal(t, library.OK[*entities.TagType](nil), s.GetTagType(99, "genre"))
		assert.Equal(t, library.OK(map[string]entities.TagType{}), s.GetAllTagTypes(99))
		assert.Equal(t, library.OK(false), s.HasData(99, "k"))
		assert.Equal(t, library.OK[*string](nil), s.GetData(99, "k"))
		assert.Equal(t, library.OK(map[string]string{}), s.GetAllData(99))
		assert.Equal(t, library.OK[*entities.User](nil), s.GetUser(99))
		assert.Equal(t, library.OK[*entities.User](nil), s.GetUserByUsername("nobody"))
		assert.Equal(t, library.OK[*string](nil), s.GetPassHash(99))
	}
}

func testUnknownUserMutations(newStore Factory) func(*testing.T) {
	return func(t *testing.T) {
		s := newStore(t)

		responses := []library.Response[library.Unit]{
			s.SetDefaultTagType(99, entities.TagType{Color: 1}),
			s.PutSong(99, 1, entities.Song{Title: "x"}),
			s.RemoveSong(99, 1),
			s.PutTag(99, "rock", entities.Tag{}),
			s.RemoveTag(99, "rock"),
			s.PutTagType(99, "genre", entities.TagType{Color: 1}),
			s.RemoveTagType(99, "genre"),
			s.PutData(99, "k", "v"),
			s.RemoveData(99, "k"),
			s.UpdateUsername(99, "name"),
			s.UpdatePassword(99, "hash"),
			s.UpdatePrivileges(99, true),
			s.RemoveUser(99),
		}
		for i, resp := range responses {
			assert.Equalf(t, library.StatusBadRequest, resp.Status, "mutation %d on unknown user", i)
		}
	}
}

func testSongs(newStore Factory) func(*testing.T) {
	return func(t *testing.T) {
		s := newStore(t)
		addUser(t, s, 1, "ann", 0)

		track := 3
		release := time.Date(2019, time.June, 21, 0, 0, 0, 0, time.UTC)
		song := entities.Song{
			FileName:    "albatross.flac",
			Title:       "Albatross",
			Duration:    203,
			TrackNum:    &track,
			ReleaseDate: &release,
			PlayCount:   12,
			Tags:        entities.NewTagSet("rock"),
		}
		require.Equal(t, library.StatusSuccess, s.PutSong(1, 10, song).Status)

		has := s.HasSong(1, 10)
		require.Equal(t, library.StatusSuccess, has.Status)
		assert.True(t, has.Result)

		got := s.GetSong(1, 10)
		require.Equal(t, library.StatusSuccess, got.Status)
		require.NotNil(t, got.Result)
		assert.Equal(t, "Albatross", got.Result.Title)
		assert.Equal(t, "albatross.flac", got.Result.FileName)
		assert.Equal(t, 203, got.Result.Duration)
		require.NotNil(t, got.Result.TrackNum)
		assert.Equal(t, 3, *got.Result.TrackNum)
		require.NotNil(t, got.Result.ReleaseDate)
		assert.True(t, release.Equal(*got.Result.ReleaseDate))
		assert.Equal(t, 12, got.Result.PlayCount)
		assert.Equal(t, entities.NewTagSet("rock"), got.Result.Tags)

		// Overwrite by id.
		song.Title = "Albatross (Remaster)"
		require.Equal(t, library.StatusSuccess, s.PutSong(1, 10, song).Status)
		assert.Equal(t, "Albatross (Remaster)", s.GetSong(1, 10).Result.Title)
		assert.Len(t, s.GetAllSongs(1).Result, 1)

		require.Equal(t, library.StatusSuccess, s.RemoveSong(1, 10).Status)
		assert.False(t, s.HasSong(1, 10).Result)
		assert.Nil(t, s.GetSong(1, 10).Result)
	}
}

func testSongTimestamps(newStore Factory) func(*testing.T) {
	return func(t *testing.T) {
		s := newStore(t)
		addUser(t, s, 1, "ann", 0)

		before := time.Now()
		require.Equal(t, library.StatusSuccess, s.PutSong(1, 10, entities.Song{Title: "First"}).Status)

		first := s.GetSong(1, 10).Result
		require.NotNil(t, first)
		assert.False(t, first.CreateDate.IsZero(), "create date is set on first write")
		assert.False(t, first.ModifyDate.IsZero(), "modify date is set on every write")
		assert.WithinDuration(t, before, first.CreateDate, 5*time.Second)

		require.Equal(t, library.StatusSuccess, s.PutSong(1, 10, entities.Song{Title: "Second"}).Status)
		second := s.GetSong(1, 10).Result
		require.NotNil(t, second)
		assert.WithinDuration(t, first.CreateDate, second.CreateDate, time.Second,
			"create date survives overwrites")
		assert.False(t, second.ModifyDate.Before(first.ModifyDate))

		// A caller-supplied create date is honored on first write so that
		// snapshots restore cleanly.
		supplied := time.Date(2020, time.January, 2, 3, 4, 5, 0, time.UTC)
		require.Equal(t, library.StatusSuccess, s.PutSong(1, 11, entities.Song{Title: "Old", CreateDate: supplied}).Status)
		restored := s.GetSong(1, 11).Result
		require.NotNil(t, restored)
		assert.WithinDuration(t, supplied, restored.CreateDate, time.Second)
	}
}

func testSongTagMaterialization(newStore Factory) func(*testing.T) {
	return func(t *testing.T) {
		s := newStore(t)
		addUser(t, s, 1, "ann", 1)

		require.Equal(t, library.StatusSuccess,
			s.PutTag(1, "rock", entities.Tag{Description: strPtr("guitars")}).Status)
		require.Equal(t, library.StatusSuccess,
			s.PutSong(1, 10, entities.Song{Title: "x", Tags: entities.NewTagSet("rock", "new")}).Status)

		// The unseen name appears as a typeless, descriptionless tag.
		created := s.GetTag(1, "new")
		require.Equal(t, library.StatusSuccess, created.Status)
		require.NotNil(t, created.Result)
		assert.Nil(t, created.Result.Type)
		assert.Nil(t, created.Result.Description)

		// The existing tag is untouched.
		existing := s.GetTag(1, "rock")
		require.NotNil(t, existing.Result)
		require.NotNil(t, existing.Result.Description)
		assert.Equal(t, "guitars", *existing.Result.Description)

		assert.Len(t, s.GetAllTags(1).Result, 2)
	}
}

func testSongsByTags(newStore Factory) func(*testing.T) {
	return func(t *testing.T) {
		s := newStore(t)
		addUser(t, s, 1, "ann", 0)

		put := func(id int, tags ...string) {
			require.Equal(t, library.StatusSuccess,
				s.PutSong(1, id, entities.Song{Title: "song", Tags: entities.NewTagSet(tags...)}).Status)
		}
		put(1, "a")
		put(2, "a", "b")
		put(3, "b")
		put(4)

		ids := func(resp library.Response[map[int]entities.Song]) []int {
			require.Equal(t, library.StatusSuccess, resp.Status)
			var out []int
			for id := range resp.Result {
				out = append(out, id)
			}
			return out
		}

		assert.ElementsMatch(t, []int{1, 2, 3, 4}, ids(s.GetSongsByTags(1, nil, nil)))
		assert.ElementsMatch(t, []int{1, 2}, ids(s.GetSongsByTags(1, entities.NewTagSet("a"), nil)))
		assert.ElementsMatch(t, []int{1}, ids(s.GetSongsByTags(1, entities.NewTagSet("a"), entities.NewTagSet("b"))))
		assert.ElementsMatch(t, []int{2}, ids(s.GetSongsByTags(1, entities.NewTagSet("a", "b"), nil)))
		assert.ElementsMatch(t, []int{1, 4}, ids(s.GetSongsByTags(1, nil, entities.NewTagSet("b"))))
		assert.Empty(t, ids(s.GetSongsByTags(1, entities.NewTagSet("missing"), nil)))
	}
}

func testTags(newStore Factory) func(*testing.T) {
	return func(t *testing.T) {
		s := newStore(t)
		addUser(t, s, 1, "ann", 0)

		tag := entities.Tag{Type: nil, Description: strPtr("loud")}
		require.Equal(t, library.StatusSuccess, s.PutTag(1, "rock", tag).Status)

		has := s.HasTag(1, "rock")
		require.Equal(t, library.StatusSuccess, has.Status)
		assert.True(t, has.Result)

		got := s.GetTag(1, "rock")
		require.Equal(t, library.StatusSuccess, got.Status)
		require.NotNil(t, got.Result)
		assert.Nil(t, got.Result.Type)
		require.NotNil(t, got.Result.Description)
		assert.Equal(t, "loud", *got.Result.Description)

		// Overwrite by name.
		require.Equal(t, library.StatusSuccess,
			s.PutTag(1, "rock", entities.Tag{Description: strPtr("updated")}).Status)
		assert.Equal(t, "updated", *s.GetTag(1, "rock").Result.Description)
		assert.Len(t, s.GetAllTags(1).Result, 1)
	}
}

func testTagTypeMaterialization(newStore Factory) func(*testing.T) {
	return func(t *testing.T) {
		s := newStore(t)
		addUser(t, s, 1, "ann", 42)

		require.Equal(t, library.StatusSuccess,
			s.PutTag(1, "rock", entities.Tag{Type: strPtr("genre")}).Status)

		// The unseen type name is created as a copy of the current default.
		created := s.GetTagType(1, "genre")
		require.Equal(t, library.StatusSuccess, created.Status)
		require.NotNil(t, created.Result)
		assert.Equal(t, 42, created.Result.Color)

		// It is a copy, not a reference: changing the default afterward
		// leaves it untouched.
		require.Equal(t, library.StatusSuccess, s.SetDefaultTagType(1, entities.TagType{Color: 99}).Status)
		assert.Equal(t, 42, s.GetTagType(1, "genre").Result.Color)

		// A tag whose type already exists creates nothing new.
		require.Equal(t, library.StatusSuccess,
			s.PutTagType(1, "mood", entities.TagType{Color: 5}).Status)
		require.Equal(t, library.StatusSuccess,
			s.PutTag(1, "mellow", entities.Tag{Type: strPtr("mood")}).Status)
		assert.Equal(t, 5, s.GetTagType(1, "mood").Result.Color)
	}
}

func testRemoveTagCascade(newStore Factory) func(*testing.T) {
	return func(t *testing.T) {
		s := newStore(t)
		addUser(t, s, 1, "ann", 0)
		addUser(t, s, 2, "ben", 0)

		require.Equal(t, library.StatusSuccess,
			s.PutSong(1, 10, entities.Song{Title: "x", Tags: entities.NewTagSet("rock", "live")}).Status)
		require.Equal(t, library.StatusSuccess,
			s.PutSong(1, 11, entities.Song{Title: "y", Tags: entities.NewTagSet("rock")}).Status)
		require.Equal(t, library.StatusSuccess,
			s.PutSong(2, 10, entities.Song{Title: "z", Tags: entities.NewTagSet("rock")}).Status)

		require.Equal(t, library.StatusSuccess, s.RemoveTag(1, "rock").Status)

		assert.False(t, s.HasTag(1, "rock").Result)
		for id, song := range s.GetAllSongs(1).Result {
			assert.Falsef(t, song.Tags.Contains("rock"), "song %d still carries the removed tag", id)
		}
		assert.Equal(t, entities.NewTagSet("live"), s.GetSong(1, 10).Result.Tags)

		// The sibling user's library is untouched.
		assert.True(t, s.HasTag(2, "rock").Result)
		assert.True(t, s.GetSong(2, 10).Result.Tags.Contains("rock"))
	}
}

func testTagTypes(newStore Factory) func(*testing.T) {
	return func(t *testing.T) {
		s := newStore(t)
		addUser(t, s, 1, "ann", 1)

		require.Equal(t, library.StatusSuccess,
			s.PutTagType(1, "genre", entities.TagType{Color: 0xFF0000}).Status)

		has := s.HasTagType(1, "genre")
		require.Equal(t, library.StatusSuccess, has.Status)
		assert.True(t, has.Result)

		got := s.GetTagType(1, "genre")
		require.Equal(t, library.StatusSuccess, got.Status)
		require.NotNil(t, got.Result)
		assert.Equal(t, 0xFF0000, got.Result.Color)

		all := s.GetAllTagTypes(1)
		require.Equal(t, library.StatusSuccess, all.Status)
		assert.Equal(t, map[string]entities.TagType{
			"":      {Color: 1},
			"genre": {Color: 0xFF0000},
		}, all.Result)

		// Overwrite by name.
		require.Equal(t, library.StatusSuccess,
			s.PutTagType(1, "genre", entities.TagType{Color: 0x00FF00}).Status)
		assert.Equal(t, 0x00FF00, s.GetTagType(1, "genre").Result.Color)
	}
}

func testRemoveTagTypeCascade(newStore Factory) func(*testing.T) {
	return func(t *testing.T) {
		s := newStore(t)
		addUser(t, s, 1, "ann", 1)
		addUser(t, s, 2, "ben", 1)

		require.Equal(t, library.StatusSuccess,
			s.PutTagType(1, "genre", entities.TagType{Color: 2}).Status)
		require.Equal(t, library.StatusSuccess,
			s.PutTag(1, "rock", entities.Tag{Type: strPtr("genre"), Description: strPtr("guitars")}).Status)
		require.Equal(t, library.StatusSuccess,
			s.PutTag(1, "jazz", entities.Tag{Type: strPtr("genre")}).Status)
		require.Equal(t, library.StatusSuccess,
			s.PutTagType(2, "genre", entities.TagType{Color: 2}).Status)
		require.Equal(t, library.StatusSuccess,
			s.PutTag(2, "rock", entities.Tag{Type: strPtr("genre")}).Status)

		require.Equal(t, library.StatusSuccess, s.RemoveTagType(1, "genre").Status)

		assert.False(t, s.HasTagType(1, "genre").Result)
		for name, tag := range s.GetAllTags(1).Result {
			assert.Nilf(t, tag.Type, "tag %q still references the removed type", name)
		}
		// Descriptions survive the cascade; only the type is cleared.
		require.NotNil(t, s.GetTag(1, "rock").Result.Description)
		assert.Equal(t, "guitars", *s.GetTag(1, "rock").Result.Description)

		// A cleared type is "no type", not "default type": it stays nil
		// regardless of later default changes.
		require.Equal(t, library.StatusSuccess, s.SetDefaultTagType(1, entities.TagType{Color: 9}).Status)
		assert.Nil(t, s.GetTag(1, "rock").Result.Type)

		// The sibling user's tags are untouched.
		require.NotNil(t, s.GetTag(2, "rock").Result.Type)
		assert.Equal(t, "genre", *s.GetTag(2, "rock").Result.Type)
	}
}

func testDefaultTagType(newStore Factory) func(*testing.T) {
	return func(t *testing.T) {
		s := newStore(t)
		addUser(t, s, 1, "ann", 3)

		// Replaceable, never absent.
		require.Equal(t, library.StatusSuccess, s.SetDefaultTagType(1, entities.TagType{Color: 8}).Status)
		def := s.GetDefaultTagType(1)
		require.Equal(t, library.StatusSuccess, def.Status)
		require.NotNil(t, def.Result)
		assert.Equal(t, 8, def.Result.Color)

		// Writing the reserved empty name is the same operation.
		require.Equal(t, library.StatusSuccess, s.PutTagType(1, "", entities.TagType{Color: 4}).Status)
		assert.Equal(t, 4, s.GetDefaultTagType(1).Result.Color)

		// Removing the default is rejected and leaves it in place.
		assert.Equal(t, library.StatusBadRequest, s.RemoveTagType(1, "").Status)
		require.NotNil(t, s.GetDefaultTagType(1).Result)
		assert.Equal(t, 4, s.GetDefaultTagType(1).Result.Color)
	}
}

func testData(newStore Factory) func(*testing.T) {
	return func(t *testing.T) {
		s := newStore(t)
		addUser(t, s, 1, "ann", 0)

		require.Equal(t, library.StatusSuccess, s.PutData(1, "theme", "dark").Status)
		require.Equal(t, library.StatusSuccess, s.PutData(1, "lang", "en").Status)

		has := s.HasData(1, "theme")
		require.Equal(t, library.StatusSuccess, has.Status)
		assert.True(t, has.Result)

		got := s.GetData(1, "theme")
		require.Equal(t, library.StatusSuccess, got.Status)
		require.NotNil(t, got.Result)
		assert.Equal(t, "dark", *got.Result)

		// Overwrite by key.
		require.Equal(t, library.StatusSuccess, s.PutData(1, "theme", "light").Status)
		assert.Equal(t, "light", *s.GetData(1, "theme").Result)

		all := s.GetAllData(1)
		require.Equal(t, library.StatusSuccess, all.Status)
		assert.Equal(t, map[string]string{"theme": "light", "lang": "en"}, all.Result)

		require.Equal(t, library.StatusSuccess, s.RemoveData(1, "theme").Status)
		assert.False(t, s.HasData(1, "theme").Result)
		assert.Nil(t, s.GetData(1, "theme").Result)
	}
}

func testUserUpdates(newStore Factory) func(*testing.T) {
	return func(t *testing.T) {
		s := newStore(t)
		addUser(t, s, 1, "ann", 0)
		addUser(t, s, 2, "ben", 0)

		require.Equal(t, library.StatusSuccess, s.UpdateUsername(1, "anna").Status)
		assert.Equal(t, "anna", s.GetUser(1).Result.Username)
		assert.Equal(t, 1, s.GetUserByUsername("anna").Result.ID)
		assert.Nil(t, s.GetUserByUsername("ann").Result)

		// Usernames stay unique across the store.
		assert.Equal(t, library.StatusBadRequest, s.UpdateUsername(1, "ben").Status)
		assert.Equal(t, "anna", s.GetUser(1).Result.Username)
		// Renaming to the current name is a no-op, not a conflict.
		assert.Equal(t, library.StatusSuccess, s.UpdateUsername(1, "anna").Status)

		require.Equal(t, library.StatusSuccess, s.UpdatePassword(1, "new-hash").Status)
		assert.Equal(t, "new-hash", *s.GetPassHash(1).Result)

		require.Equal(t, library.StatusSuccess, s.UpdatePrivileges(1, true).Status)
		assert.True(t, s.GetUser(1).Result.Admin)
		require.Equal(t, library.StatusSuccess, s.UpdatePrivileges(1, false).Status)
		assert.False(t, s.GetUser(1).Result.Admin)
	}
}

func testRemoveUser(newStore Factory) func(*testing.T) {
	return func(t *testing.T) {
		s := newStore(t)
		addUser(t, s, 1, "ann", 1)
		addUser(t, s, 2, "ben", 1)

		require.Equal(t, library.StatusSuccess,
			s.PutSong(1, 10, entities.Song{Title: "x", Tags: entities.NewTagSet("rock")}).Status)
		require.Equal(t, library.StatusSuccess, s.PutData(1, "k", "v").Status)
		require.Equal(t, library.StatusSuccess,
			s.PutSong(2, 20, entities.Song{Title: "y", Tags: entities.NewTagSet("jazz")}).Status)
		require.Equal(t, library.StatusSuccess, s.PutData(2, "k", "v").Status)

		require.Equal(t, library.StatusSuccess, s.RemoveUser(1).Status)

		// All four collections are gone and the user is absent.
		assert.Nil(t, s.GetUser(1).Result)
		assert.Empty(t, s.GetAllSongs(1).Result)
		assert.Empty(t, s.GetAllTags(1).Result)
		assert.Empty(t, s.GetAllTagTypes(1).Result)
		assert.Empty(t, s.GetAllData(1).Result)
		assert.Nil(t, s.GetDefaultTagType(1).Result)

		// Follow-up mutations treat the user as unknown.
		assert.Equal(t, library.StatusBadRequest, s.PutData(1, "k", "v").Status)

		// The sibling user is untouched.
		require.NotNil(t, s.GetUser(2).Result)
		assert.Len(t, s.GetAllSongs(2).Result, 1)
		assert.Len(t, s.GetAllTags(2).Result, 1)
		assert.Len(t, s.GetAllData(2).Result, 1)

		// The freed id and username can be reused and start empty.
		addUser(t, s, 1, "ann", 6)
		assert.Empty(t, s.GetAllSongs(1).Result)
		assert.Equal(t, 6, s.GetDefaultTagType(1).Result.Color)
	}
}

func testRemovalIdempotence(newStore Factory) func(*testing.T) {
	return func(t *testing.T) {
		s := newStore(t)
		addUser(t, s, 1, "ann", 0)

		require.Equal(t, library.StatusSuccess,
			s.PutSong(1, 10, entities.Song{Title: "x", Tags: entities.NewTagSet("rock")}).Status)
		require.Equal(t, library.StatusSuccess, s.PutTagType(1, "genre", entities.TagType{Color: 1}).Status)
		require.Equal(t, library.StatusSuccess, s.PutData(1, "k", "v").Status)

		// Removing twice reports success both times with no state change
		// between the calls.
		for i := 0; i < 2; i++ {
			assert.Equal(t, library.StatusSuccess, s.RemoveSong(1, 10).Status)
			assert.Equal(t, library.StatusSuccess, s.RemoveTag(1, "rock").Status)
			assert.Equal(t, library.StatusSuccess, s.RemoveTagType(1, "genre").Status)
			assert.Equal(t, library.StatusSuccess, s.RemoveData(1, "k").Status)

			assert.Empty(t, s.GetAllSongs(1).Result)
			assert.Empty(t, s.GetAllTags(1).Result)
			assert.Empty(t, s.GetAllData(1).Result)
			assert.Len(t, s.GetAllTagTypes(1).Result, 1) // only the default remains
		}
	}
}
