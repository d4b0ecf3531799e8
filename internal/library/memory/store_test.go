package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/songvault/internal/entities"
	"github.com/mrlokans/songvault/internal/library"
	"github.com/mrlokans/songvault/internal/library/librarytest"
)

func TestConformance(t *testing.T) {
	librarytest.Run(t, func(t *testing.T) library.Store {
		return New()
	})
}

func TestReturnedValuesAreCopies(t *testing.T) {
	s := New()
	resp := s.AddUser(entities.User{ID: 1, Username: "ann"}, entities.TagType{Color: 1})
	require.Equal(t, library.StatusSuccess, resp.Status)
	require.Equal(t, library.StatusSuccess,
		s.PutSong(1, 10, entities.Song{Title: "x", Tags: entities.NewTagSet("rock")}).Status)

	// Mutating a retrieved song must not leak into the store.
	got := s.GetSong(1, 10)
	require.NotNil(t, got.Result)
	got.Result.Tags.Add("smuggled")
	got.Result.Title = "changed"

	fresh := s.GetSong(1, 10)
	assert.Equal(t, "x", fresh.Result.Title)
	assert.Equal(t, entities.NewTagSet("rock"), fresh.Result.Tags)

	// Same for bulk retrievals.
	all := s.GetAllSongs(1)
	all.Result[10].Tags.Add("smuggled")
	assert.Equal(t, entities.NewTagSet("rock"), s.GetSong(1, 10).Result.Tags)

	// And for the song handed in: later caller mutations must not be seen.
	song := entities.Song{Title: "y", Tags: entities.NewTagSet("jazz")}
	require.Equal(t, library.StatusSuccess, s.PutSong(1, 11, song).Status)
	song.Tags.Add("late")
	assert.Equal(t, entities.NewTagSet("jazz"), s.GetSong(1, 11).Result.Tags)
}

func TestConcurrentUsersDoNotInterfere(t *testing.T) {
	s := New()
	const users = 4
	for i := 1; i <= users; i++ {
		resp := s.AddUser(entities.User{ID: i, Username: fmt.Sprintf("user%d", i)}, entities.TagType{})
		require.Equal(t, library.StatusSuccess, resp.Status)
	}

	var wg sync.WaitGroup
	for i := 1; i <= users; i++ {
		userID := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 100; n++ {
				s.PutSong(userID, n, entities.Song{Title: "t", Tags: entities.NewTagSet("a", "b")})
				s.GetSongsByTags(userID, entities.NewTagSet("a"), nil)
				s.RemoveTag(userID, "a")
				s.GetAllSongs(userID)
			}
		}()
	}
	wg.Wait()

	for i := 1; i <= users; i++ {
		assert.Len(t, s.GetAllSongs(i).Result, 100)
	}
}
