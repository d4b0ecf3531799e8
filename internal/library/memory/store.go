// Package memory provides the in-memory reference implementation of the
// library store contract.
//
// State lives entirely in process memory and is lost on restart, which makes
// this backend unsuitable for production. It exists as the executable
// reference for contract conformance tests and for local development.
package memory

import (
	"sync"
	"time"

	"github.com/mrlokans/songvault/internal/entities"
	"github.com/mrlokans/songvault/internal/library"
)

// Store keeps a registry of users plus four independent per-user mappings.
// A single store-wide lock keeps every mutation atomic with respect to its
// cascades; scale is small enough that finer locking is not worth it here.
type Store struct {
	mu sync.RWMutex

	users    map[int]entities.User
	songs    map[int]map[int]entities.Song
	tags     map[int]map[string]entities.Tag
	tagTypes map[int]map[string]entities.TagType
	data     map[int]map[string]string

	now func() time.Time
}

var _ library.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		users:    make(map[int]entities.User),
		songs:    make(map[int]map[int]entities.Song),
		tags:     make(map[int]map[string]entities.Tag),
		tagTypes: make(map[int]map[string]entities.TagType),
		data:     make(map[int]map[string]string),
		now:      time.Now,
	}
}

// GetVersion retrieves the library version of this store.
func (s *Store) GetVersion() library.Response[string] {
	return library.OK(library.Version)
}

// GetDefaultTagType retrieves the tag type used when a tag has no type.
func (s *Store) GetDefaultTagType(userID int) library.Response[*entities.TagType] {
	return s.GetTagType(userID, "")
}

// SetDefaultTagType replaces the tag type used when a tag has no type.
func (s *Store) SetDefaultTagType(userID int, tagType entities.TagType) library.Response[library.Unit] {
	return s.PutTagType(userID, "", tagType)
}

// HasSong checks whether the user has a song with the given id.
func (s *Store) HasSong(userID, songID int) library.Response[bool] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.songs[userID][songID]
	return library.OK(ok)
}

// GetSong retrieves the song with the given id.
func (s *Store) GetSong(userID, songID int) library.Response[*entities.Song] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	song, ok := s.songs[userID][songID]
	if !ok {
		return library.OK[*entities.Song](nil)
	}
	clone := song.Clone()
	return library.OK(&clone)
}

// GetAllSongs retrieves all of the user's songs keyed by song id.
func (s *Store) GetAllSongs(userID int) library.Response[map[int]entities.Song] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	songs := make(map[int]entities.Song, len(s.songs[userID]))
	for id, song := range s.songs[userID] {
		songs[id] = song.Clone()
	}
	return library.OK(songs)
}

// GetSongsByTags retrieves the songs whose tag set is a superset of
// includeTags and disjoint from excludeTags.
func (s *Store) GetSongsByTags(userID int, includeTags, excludeTags entities.TagSet) library.Response[map[int]entities.Song] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	songs := make(map[int]entities.Song)
	for id, song := range s.songs[userID] {
		if song.Tags.ContainsAll(includeTags) && !song.Tags.ContainsAny(excludeTags) {
			songs[id] = song.Clone()
		}
	}
	return library.OK(songs)
}

// PutSong inserts or overwrites the song with the given id and materializes
// any tag names the user does not have yet as typeless tags.
func (s *Store) PutSong(userID, songID int, song entities.Song) library.Response[library.Unit] {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return library.Fail[library.Unit](library.StatusBadRequest)
	}

	stored := song.Clone()
	if stored.Tags == nil {
		stored.Tags = entities.TagSet{}
	}
	now := s.now()
	if previous, ok := s.songs[userID][songID]; ok {
		stored.CreateDate = previous.CreateDate
	} else if stored.CreateDate.IsZero() {
		stored.CreateDate = now
	}
	stored.ModifyDate = now
	s.songs[userID][songID] = stored

	for name := range stored.Tags {
		if _, ok := s.tags[userID][name]; !ok {
			s.tags[userID][name] = entities.Tag{}
		}
	}
	return library.OK(library.Unit{})
}

// RemoveSong removes the song with the given id.
func (s *Store) RemoveSong(userID, songID int) library.Response[library.Unit] {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return library.Fail[library.Unit](library.StatusBadRequest)
	}
	delete(s.songs[userID], songID)
	return library.OK(library.Unit{})
}

// HasTag checks whether the user has a tag with the given name.
func (s *Store) HasTag(userID int, tagName string) library.Response[bool] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.tags[userID][tagName]
	return library.OK(ok)
}

// GetTag retrieves the tag with the given name.
func (s *Store) GetTag(userID int, tagName string) library.Response[*entities.Tag] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tag, ok := s.tags[userID][tagName]
	if !ok {
		return library.OK[*entities.Tag](nil)
	}
	clone := tag.Clone()
	return library.OK(&clone)
}

// GetAllTags retrieves all of the user's tags keyed by tag name.
func (s *Store) GetAllTags(userID int) library.Response[map[string]entities.Tag] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tags := make(map[string]entities.Tag, len(s.tags[userID]))
	for name, tag := range s.tags[userID] {
		tags[name] = tag.Clone()
	}
	return library.OK(tags)
}

// PutTag inserts or overwrites the tag with the given name. An unseen type
// name is materialized as a copy of the user's current default tag type.
func (s *Store) PutTag(userID int, tagName string, tag entities.Tag) library.Response[library.Unit] {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return library.Fail[library.Unit](library.StatusBadRequest)
	}

	s.tags[userID][tagName] = tag.Clone()

	if tag.Type != nil {
		if _, ok := s.tagTypes[userID][*tag.Type]; !ok {
			s.tagTypes[userID][*tag.Type] = s.tagTypes[userID][""]
		}
	}
	return library.OK(library.Unit{})
}

// RemoveTag removes the tag with the given name and strips it from every
// song of the same user.
func (s *Store) RemoveTag(userID int, tagName string) library.Response[library.Unit] {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return library.Fail[library.Unit](library.StatusBadRequest)
	}

	delete(s.tags[userID], tagName)

	for id, song := range s.songs[userID] {
		if song.Tags.Contains(tagName) {
			song.Tags.Remove(tagName)
			s.songs[userID][id] = song
		}
	}
	return library.OK(library.Unit{})
}

// HasTagType checks whether the user has a tag type with the given name.
func (s *Store) HasTagType(userID int, tagTypeName string) library.Response[bool] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.tagTypes[userID][tagTypeName]
	return library.OK(ok)
}

// GetTagType retrieves the tag type with the given name.
func (s *Store) GetTagType(userID int, tagTypeName string) library.Response[*entities.TagType] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tagType, ok := s.tagTypes[userID][tagTypeName]
	if !ok {
		return library.OK[*entities.TagType](nil)
	}
	return library.OK(&tagType)
}

// GetAllTagTypes retrieves all of the user's tag types keyed by name.
func (s *Store) GetAllTagTypes(userID int) library.Response[map[string]entities.TagType] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tagTypes := make(map[string]entities.TagType, len(s.tagTypes[userID]))
	for name, tagType := range s.tagTypes[userID] {
		tagTypes[name] = tagType
	}
	return library.OK(tagTypes)
}

// PutTagType inserts or overwrites the tag type with the given name.
func (s *Store) PutTagType(userID int, tagTypeName string, tagType entities.TagType) library.Response[library.Unit] {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return library.Fail[library.Unit](library.StatusBadRequest)
	}
	s.tagTypes[userID][tagTypeName] = tagType
	return library.OK(library.Unit{})
}

// RemoveTagType removes the tag type with the given name and clears the type
// of every tag of the same user that referenced it. The default tag type
// cannot be removed.
func (s *Store) RemoveTagType(userID int, tagTypeName string) library.Response[library.Unit] {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return library.Fail[library.Unit](library.StatusBadRequest)
	}
	if tagTypeName == "" {
		return library.Fail[library.Unit](library.StatusBadRequest)
	}

	delete(s.tagTypes[userID], tagTypeName)

	for name, tag := range s.tags[userID] {
		if tag.Type != nil && *tag.Type == tagTypeName {
			tag.Type = nil
			s.tags[userID][name] = tag
		}
	}
	return library.OK(library.Unit{})
}

// HasData checks whether the user has a data entry with the given key.
func (s *Store) HasData(userID int, key string) library.Response[bool] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.data[userID][key]
	return library.OK(ok)
}

// GetData retrieves the data entry value with the given key.
func (s *Store) GetData(userID int, key string) library.Response[*string] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[userID][key]
	if !ok {
		return library.OK[*string](nil)
	}
	return library.OK(&value)
}

// GetAllData retrieves all of the user's data entries keyed by key.
func (s *Store) GetAllData(userID int) library.Response[map[string]string] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data := make(map[string]string, len(s.data[userID]))
	for key, value := range s.data[userID] {
		data[key] = value
	}
	return library.OK(data)
}

// PutData inserts or overwrites the data entry with the given key.
func (s *Store) PutData(userID int, key, value string) library.Response[library.Unit] {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return library.Fail[library.Unit](library.StatusBadRequest)
	}
	s.data[userID][key] = value
	return library.OK(library.Unit{})
}

// RemoveData removes the data entry with the given key.
func (s *Store) RemoveData(userID int, key string) library.Response[library.Unit] {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return library.Fail[library.Unit](library.StatusBadRequest)
	}
	delete(s.data[userID], key)
	return library.OK(library.Unit{})
}

// GetUser retrieves the user with the given id.
func (s *Store) GetUser(userID int) library.Response[*entities.User] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	if !ok {
		return library.OK[*entities.User](nil)
	}
	return library.OK(&user)
}

// GetUserByUsername retrieves the user with the given username.
func (s *Store) GetUserByUsername(username string) library.Response[*entities.User] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Username == username {
			user := user
			return library.OK(&user)
		}
	}
	return library.OK[*entities.User](nil)
}

// GetAllUsers retrieves all users keyed by user id.
func (s *Store) GetAllUsers() library.Response[map[int]entities.User] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make(map[int]entities.User, len(s.users))
	for id, user := range s.users {
		users[id] = user
	}
	return library.OK(users)
}

// GetPassHash retrieves the user's stored password hash.
func (s *Store) GetPassHash(userID int) library.Response[*string] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	if !ok {
		return library.OK[*string](nil)
	}
	return library.OK(&user.PassHash)
}

// AddUser creates a new user with empty collections and the given default
// tag type. The id and username must both be free.
func (s *Store) AddUser(user entities.User, defaultTagType entities.TagType) library.Response[int] {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; ok {
		return library.Fail[int](library.StatusBadRequest)
	}
	for _, existing := range s.users {
		if existing.Username == user.Username {
			return library.Fail[int](library.StatusBadRequest)
		}
	}

	s.users[user.ID] = user
	s.songs[user.ID] = make(map[int]entities.Song)
	s.tags[user.ID] = make(map[string]entities.Tag)
	s.tagTypes[user.ID] = map[string]entities.TagType{"": defaultTagType}
	s.data[user.ID] = make(map[string]string)

	return library.OK(user.ID)
}

// UpdateUsername changes the user's username.
func (s *Store) UpdateUsername(userID int, username string) library.Response[library.Unit] {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return library.Fail[library.Unit](library.StatusBadRequest)
	}
	for id, existing := range s.users {
		if id != userID && existing.Username == username {
			return library.Fail[library.Unit](library.StatusBadRequest)
		}
	}
	user.Username = username
	s.users[userID] = user
	return library.OK(library.Unit{})
}

// UpdatePassword replaces the user's stored password hash.
func (s *Store) UpdatePassword(userID int, passHash string) library.Response[library.Unit] {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return library.Fail[library.Unit](library.StatusBadRequest)
	}
	user.PassHash = passHash
	s.users[userID] = user
	return library.OK(library.Unit{})
}

// UpdatePrivileges changes the user's admin flag.
func (s *Store) UpdatePrivileges(userID int, admin bool) library.Response[library.Unit] {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return library.Fail[library.Unit](library.StatusBadRequest)
	}
	user.Admin = admin
	s.users[userID] = user
	return library.OK(library.Unit{})
}

// RemoveUser removes the user and all four of that user's collections.
func (s *Store) RemoveUser(userID int) library.Response[library.Unit] {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return library.Fail[library.Unit](library.StatusBadRequest)
	}
	delete(s.users, userID)
	delete(s.songs, userID)
	delete(s.tags, userID)
	delete(s.tagTypes, userID)
	delete(s.data, userID)
	return library.OK(library.Unit{})
}
