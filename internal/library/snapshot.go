package library

import (
	"errors"
	"fmt"

	"github.com/mrlokans/songvault/internal/entities"
)

// ErrUnknownUser is returned when a snapshot operation targets a user id the
// store does not have.
var ErrUnknownUser = errors.New("unknown user")

// Snapshot is a complete copy of one user's library, suitable for moving a
// library between backends. Modify dates are refreshed when a snapshot is
// imported; create dates are preserved.
type Snapshot struct {
	Version        string                      `json:"version"`
	User           entities.User               `json:"user"`
	PassHash       string                      `json:"pass_hash"`
	DefaultTagType entities.TagType            `json:"default_tag_type"`
	Songs          map[int]entities.Song       `json:"songs"`
	Tags           map[string]entities.Tag     `json:"tags"`
	TagTypes       map[string]entities.TagType `json:"tag_types"`
	Data           map[string]string           `json:"data"`
}

// ExportUser copies the user's entire library out of the store.
func ExportUser(store Store, userID int) (*Snapshot, error) {
	user := store.GetUser(userID)
	if err := check("get user", user.Status); err != nil {
		return nil, err
	}
	if user.Result == nil {
		return nil, fmt.Errorf("export user %d: %w", userID, ErrUnknownUser)
	}

	passHash := store.GetPassHash(userID)
	if err := check("get password hash", passHash.Status); err != nil {
		return nil, err
	}
	defaultTagType := store.GetDefaultTagType(userID)
	if err := check("get default tag type", defaultTagType.Status); err != nil {
		return nil, err
	}
	songs := store.GetAllSongs(userID)
	if err := check("get songs", songs.Status); err != nil {
		return nil, err
	}
	tags := store.GetAllTags(userID)
	if err := check("get tags", tags.Status); err != nil {
		return nil, err
	}
	tagTypes := store.GetAllTagTypes(userID)
	if err := check("get tag types", tagTypes.Status); err != nil {
		return nil, err
	}
	data := store.GetAllData(userID)
	if err := check("get data entries", data.Status); err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Version:  Version,
		User:     *user.Result,
		Songs:    songs.Result,
		Tags:     tags.Result,
		TagTypes: tagTypes.Result,
		Data:     data.Result,
	}
	if passHash.Result != nil {
		snap.PassHash = *passHash.Result
	}
	if defaultTagType.Result != nil {
		snap.DefaultTagType = *defaultTagType.Result
	}
	// The default is carried separately; keep the map to named entries only.
	delete(snap.TagTypes, "")
	return snap, nil
}

// ImportUser recreates the snapshot's user and library in the store. The
// user id and username must both be free.
func ImportUser(store Store, snap *Snapshot) error {
	if snap.Version != Version {
		return fmt.Errorf("snapshot version %q is not supported (want %q)", snap.Version, Version)
	}

	user := snap.User
	user.PassHash = snap.PassHash
	if err := check("add user", store.AddUser(user, snap.DefaultTagType).Status); err != nil {
		return err
	}

	// Tag types first so that tags do not materialize them as default
	// copies, then tags, then songs.
	for name, tagType := range snap.TagTypes {
		if name == "" {
			continue
		}
		if err := check("put tag type "+name, store.PutTagType(user.ID, name, tagType).Status); err != nil {
			return err
		}
	}
	for name, tag := range snap.Tags {
		if err := check("put tag "+name, store.PutTag(user.ID, name, tag).Status); err != nil {
			return err
		}
	}
	for songID, song := range snap.Songs {
		if err := check(fmt.Sprintf("put song %d", songID), store.PutSong(user.ID, songID, song).Status); err != nil {
			return err
		}
	}
	for key, value := range snap.Data {
		if err := check("put data entry "+key, store.PutData(user.ID, key, value).Status); err != nil {
			return err
		}
	}
	return nil
}

func check(op string, status Status) error {
	if status != StatusSuccess {
		return fmt.Errorf("%s: store returned %s", op, status)
	}
	return nil
}
