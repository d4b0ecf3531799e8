package library

import "github.com/mrlokans/songvault/internal/entities"

// Version identifies the schema and feature set implemented by a Store.
// Callers may branch on it to detect incompatible backends.
const Version = "1.0"

// Store is the operation contract every library backend must satisfy.
//
// Every operation is scoped to a single user (the first argument, unless
// noted) and returns a Response. The envelope contract:
//
//   - Retrieval operations never mutate and always return StatusSuccess; a
//     missing user or item yields a nil/empty result.
//   - Mutating operations (Put*, Set*, Update*) on an unknown user return
//     StatusBadRequest and perform no mutation.
//   - Removal operations on an unknown user return StatusBadRequest; on a
//     valid user with a missing item they are idempotent no-ops returning
//     StatusSuccess.
//   - StatusConnectionIssue and StatusTimeout are reserved for backends with
//     external I/O.
//
// Implementations must preserve these invariants after every mutation:
//
//  1. Every existing user has exactly one default tag type, stored under the
//     empty-string name. It is seeded by AddUser, replaceable via
//     SetDefaultTagType, and never absent; RemoveTagType refuses to delete it.
//  2. PutSong materializes any tag name on the song that is not yet in the
//     user's tag collection as a Tag with no type and no description.
//  3. PutTag with a non-nil type name not yet in the user's tag type
//     collection creates that tag type as a copy of the current default.
//  4. RemoveTag also strips the name from every song of the same user.
//  5. RemoveTagType also sets every tag of the same user that referenced it
//     to have no type. "No type" is distinct from "default type": a nil type
//     falls back to the current default at read time, it is not a copy.
//  6. RemoveUser drops all four of the user's collections; no partial
//     cascade is observable by any single caller.
//
// Each mutation is atomic with respect to its cascades, and iteration order
// of returned maps is unspecified.
type Store interface {
	// GetVersion retrieves the library Version of this store.
	GetVersion() Response[string]

	// GetDefaultTagType retrieves the tag type used when a tag has no type.
	GetDefaultTagType(userID int) Response[*entities.TagType]

	// SetDefaultTagType replaces the tag type used when a tag has no type.
	SetDefaultTagType(userID int, tagType entities.TagType) Response[Unit]

	// HasSong checks whether the user has a song with the given id.
	HasSong(userID, songID int) Response[bool]

	// GetSong retrieves the song with the given id.
	GetSong(userID, songID int) Response[*entities.Song]

	// GetAllSongs retrieves all of the user's songs keyed by song id.
	GetAllSongs(userID int) Response[map[int]entities.Song]

	// GetSongsByTags retrieves the songs whose tag set contains every name
	// in includeTags and none of the names in excludeTags. An empty set
	// imposes no constraint on its axis.
	GetSongsByTags(userID int, includeTags, excludeTags entities.TagSet) Response[map[int]entities.Song]

	// PutSong inserts or overwrites the song with the given id. The song's
	// create date is set on first write and preserved on overwrite; the
	// modify date is set on every write. New tag names on the song are added
	// to the user's tag collection with no type and no description.
	PutSong(userID, songID int, song entities.Song) Response[Unit]

	// RemoveSong removes the song with the given id.
	RemoveSong(userID, songID int) Response[Unit]

	// HasTag checks whether the user has a tag with the given name.
	HasTag(userID int, tagName string) Response[bool]

	// GetTag retrieves the tag with the given name.
	GetTag(userID int, tagName string) Response[*entities.Tag]

	// GetAllTags retrieves all of the user's tags keyed by tag name.
	GetAllTags(userID int) Response[map[string]entities.Tag]

	// PutTag inserts or overwrites the tag with the given name. If the tag's
	// type names a tag type the user does not have yet, that tag type is
	// created as a copy of the user's current default tag type.
	PutTag(userID int, tagName string, tag entities.Tag) Response[Unit]

	// RemoveTag removes the tag with the given name and strips that name
	// from every song of the same user.
	RemoveTag(userID int, tagName string) Response[Unit]

	// HasTagType checks whether the user has a tag type with the given name.
	HasTagType(userID int, tagTypeName string) Response[bool]

	// GetTagType retrieves the tag type with the given name.
	GetTagType(userID int, tagTypeName string) Response[*entities.TagType]

	// GetAllTagTypes retrieves all of the user's tag types keyed by name,
	// including the default under the empty-string name.
	GetAllTagTypes(userID int) Response[map[string]entities.TagType]

	// PutTagType inserts or overwrites the tag type with the given name.
	// Writing the empty-string name is equivalent to SetDefaultTagType.
	PutTagType(userID int, tagTypeName string, tagType entities.TagType) Response[Unit]

	// RemoveTagType removes the tag type with the given name and sets every
	// tag of the same user that referenced it to have no type. Removing the
	// default tag type (the empty-string name) is rejected with
	// StatusBadRequest; replace it via SetDefaultTagType instead.
	RemoveTagType(userID int, tagTypeName string) Response[Unit]

	// HasData checks whether the user has a data entry with the given key.
	HasData(userID int, key string) Response[bool]

	// GetData retrieves the data entry value with the given key.
	GetData(userID int, key string) Response[*string]

	// GetAllData retrieves all of the user's data entries keyed by key.
	GetAllData(userID int) Response[map[string]string]

	// PutData inserts or overwrites the data entry with the given key.
	PutData(userID int, key, value string) Response[Unit]

	// RemoveData removes the data entry with the given key.
	RemoveData(userID int, key string) Response[Unit]

	// GetUser retrieves the user with the given id.
	GetUser(userID int) Response[*entities.User]

	// GetUserByUsername retrieves the user with the given username.
	GetUserByUsername(username string) Response[*entities.User]

	// GetAllUsers retrieves all users keyed by user id.
	GetAllUsers() Response[map[int]entities.User]

	// GetPassHash retrieves the user's stored password hash. The hash is an
	// opaque string; hashing and verification are the caller's concern.
	GetPassHash(userID int) Response[*string]

	// AddUser creates a new user along with empty song, tag and data
	// collections and a tag type collection seeded with defaultTagType as
	// the default. Fails with StatusBadRequest if the id or username is
	// already taken. On success the result is the new user's id.
	AddUser(user entities.User, defaultTagType entities.TagType) Response[int]

	// UpdateUsername changes the user's username. Fails with
	// StatusBadRequest if the new username is taken by another user.
	UpdateUsername(userID int, username string) Response[Unit]

	// UpdatePassword replaces the user's stored password hash.
	UpdatePassword(userID int, passHash string) Response[Unit]

	// UpdatePrivileges changes the user's admin flag.
	UpdatePrivileges(userID int, admin bool) Response[Unit]

	// RemoveUser removes the user and all four of that user's collections.
	RemoveUser(userID int) Response[Unit]
}
