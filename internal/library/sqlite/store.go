// Package sqlite provides the SQLite-backed persistent implementation of
// the library store contract.
//
// Every operation runs inside a transaction with a bounded deadline, so a
// cascade is never partially visible and a wedged database surfaces as a
// time_out status instead of hanging the caller. Driver failures are
// translated into the connection_issue status rather than leaking raw
// errors through the envelope.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	driver "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/songvault/internal/entities"
	"github.com/mrlokans/songvault/internal/library"
)

// DefaultTimeout bounds a single store operation when no explicit timeout
// is configured.
const DefaultTimeout = 5 * time.Second

// errBadRequest marks contract violations inside a transaction; it is
// translated to StatusBadRequest at the envelope boundary.
var errBadRequest = errors.New("bad request")

// Store is a library.Store backed by a SQLite database file.
type Store struct {
	db      *gorm.DB
	timeout time.Duration
}

var _ library.Store = (*Store)(nil)

// Open connects to the database at path, migrating the schema if needed.
// opTimeout bounds each store operation; zero means DefaultTimeout.
func Open(path string, opTimeout time.Duration) (*Store, error) {
	db, err := gorm.Open(driver.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(&userRow{}, &songRow{}, &tagRow{}, &tagTypeRow{}, &dataRow{})
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	if opTimeout <= 0 {
		opTimeout = DefaultTimeout
	}
	return &Store{db: db, timeout: opTimeout}, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) read(fn func(tx *gorm.DB) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return fn(s.db.WithContext(ctx))
}

func (s *Store) write(fn func(tx *gorm.DB) error) library.Response[library.Unit] {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	err := s.db.WithContext(ctx).Transaction(fn)
	return library.Response[library.Unit]{Status: statusFor(err)}
}

func statusFor(err error) library.Status {
	switch {
	case err == nil:
		return library.StatusSuccess
	case errors.Is(err, errBadRequest):
		return library.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return library.StatusTimeout
	default:
		log.Printf("sqlite store: %v", err)
		return library.StatusConnectionIssue
	}
}

func requireUser(tx *gorm.DB, userID int) error {
	var count int64
	if err := tx.Model(&userRow{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("user %d: %w", userID, errBadRequest)
	}
	return nil
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
	var count int64
	err := s.read(func(tx *gorm.DB) error {
		return tx.Model(&songRow{}).
			Where("user_id = ? AND song_id = ?", userID, songID).
			Count(&count).Error
	})
	if err != nil {
		return library.Fail[bool](statusFor(err))
	}
	return library.OK(count > 0)
}

// GetSong retrieves the song with the given id.
func (s *Store) GetSong(userID, songID int) library.Response[*entities.Song] {
	var row songRow
	err := s.read(func(tx *gorm.DB) error {
		return tx.Where("user_id = ? AND song_id = ?", userID, songID).First(&row).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return library.OK[*entities.Song](nil)
	}
	if err != nil {
		return library.Fail[*entities.Song](statusFor(err))
	}
	song, err := row.toSong()
	if err != nil {
		return library.Fail[*entities.Song](statusFor(err))
	}
	return library.OK(&song)
}

// GetAllSongs retrieves all of the user's songs keyed by song id.
func (s *Store) GetAllSongs(userID int) library.Response[map[int]entities.Song] {
	return s.songsWhere(userID, nil, nil)
}

// GetSongsByTags retrieves the songs whose tag set is a superset of
// includeTags and disjoint from excludeTags.
func (s *Store) GetSongsByTags(userID int, includeTags, excludeTags entities.TagSet) library.Response[map[int]entities.Song] {
	return s.songsWhere(userID, includeTags, excludeTags)
}

func (s *Store) songsWhere(userID int, includeTags, excludeTags entities.TagSet) library.Response[map[int]entities.Song] {
	var rows []songRow
	err := s.read(func(tx *gorm.DB) error {
		return tx.Where("user_id = ?", userID).Find(&rows).Error
	})
	if err != nil {
		return library.Fail[map[int]entities.Song](statusFor(err))
	}

	songs := make(map[int]entities.Song, len(rows))
	for _, row := range rows {
		song, err := row.toSong()
		if err != nil {
			return library.Fail[map[int]entities.Song](statusFor(err))
		}
		if song.Tags.ContainsAll(includeTags) && !song.Tags.ContainsAny(excludeTags) {
			songs[row.SongID] = song
		}
	}
	return library.OK(songs)
}

// PutSong inserts or overwrites the song with the given id and materializes
// any tag names the user does not have yet as typeless tags.
func (s *Store) PutSong(userID, songID int, song entities.Song) library.Response[library.Unit] {
	return s.write(func(tx *gorm.DB) error {
		if err := requireUser(tx, userID); err != nil {
			return err
		}

		if song.Tags == nil {
			song.Tags = entities.TagSet{}
		}
		now := time.Now()
		var previous songRow
		err := tx.Where("user_id = ? AND song_id = ?", userID, songID).First(&previous).Error
		switch {
		case err == nil:
			song.CreateDate = previous.CreateDate
		case errors.Is(err, gorm.ErrRecordNotFound):
			if song.CreateDate.IsZero() {
				song.CreateDate = now
			}
		default:
			return err
		}
		song.ModifyDate = now

		row, err := newSongRow(userID, songID, song)
		if err != nil {
			return err
		}
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
			return err
		}

		for name := range song.Tags {
			tag := tagRow{UserID: userID, Name: name}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&tag).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// RemoveSong removes the song with the given id.
func (s *Store) RemoveSong(userID, songID int) library.Response[library.Unit] {
	return s.write(func(tx *gorm.DB) error {
		if err := requireUser(tx, userID); err != nil {
			return err
		}
		return tx.Where("user_id = ? AND song_id = ?", userID, songID).Delete(&songRow{}).Error
	})
}

// HasTag checks whether the user has a tag with the given name.
func (s *Store) HasTag(userID int, tagName string) library.Response[bool] {
	var count int64
	err := s.read(func(tx *gorm.DB) error {
		return tx.Model(&tagRow{}).
			Where("user_id = ? AND name = ?", userID, tagName).
			Count(&count).Error
	})
	if err != nil {
		return library.Fail[bool](statusFor(err))
	}
	return library.OK(count > 0)
}

// GetTag retrieves the tag with the given name.
func (s *Store) GetTag(userID int, tagName string) library.Response[*entities.Tag] {
	var row tagRow
	err := s.read(func(tx *gorm.DB) error {
		return tx.Where("user_id = ? AND name = ?", userID, tagName).First(&row).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return library.OK[*entities.Tag](nil)
	}
	if err != nil {
		return library.Fail[*entities.Tag](statusFor(err))
	}
	tag := row.toTag()
	return library.OK(&tag)
}

// GetAllTags retrieves all of the user's tags keyed by tag name.
func (s *Store) GetAllTags(userID int) library.Response[map[string]entities.Tag] {
	var rows []tagRow
	err := s.read(func(tx *gorm.DB) error {
		return tx.Where("user_id = ?", userID).Find(&rows).Error
	})
	if err != nil {
		return library.Fail[map[string]entities.Tag](statusFor(err))
	}
	tags := make(map[string]entities.Tag, len(rows))
	for _, row := range rows {
		tags[row.Name] = row.toTag()
	}
	return library.OK(tags)
}

// PutTag inserts or overwrites the tag with the given name. An unseen type
// name is materialized as a copy of the user's current default tag type.
func (s *Store) PutTag(userID int, tagName string, tag entities.Tag) library.Response[library.Unit] {
	return s.write(func(tx *gorm.DB) error {
		if err := requireUser(tx, userID); err != nil {
			return err
		}

		row := tagRow{UserID: userID, Name: tagName, Type: tag.Type, Description: tag.Description}
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
			return err
		}

		if tag.Type != nil {
			var count int64
			err := tx.Model(&tagTypeRow{}).
				Where("user_id = ? AND name = ?", userID, *tag.Type).
				Count(&count).Error
			if err != nil {
				return err
			}
			if count == 0 {
				var def tagTypeRow
				if err := tx.Where("user_id = ? AND name = ?", userID, "").First(&def).Error; err != nil {
					return err
				}
				copied := tagTypeRow{UserID: userID, Name: *tag.Type, Color: def.Color}
				if err := tx.Create(&copied).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// RemoveTag removes the tag with the given name and strips it from every
// song of the same user.
func (s *Store) RemoveTag(userID int, tagName string) library.Response[library.Unit] {
	return s.write(func(tx *gorm.DB) error {
		if err := requireUser(tx, userID); err != nil {
			return err
		}
		if err := tx.Where("user_id = ? AND name = ?", userID, tagName).Delete(&tagRow{}).Error; err != nil {
			return err
		}

		var rows []songRow
		if err := tx.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
			return err
		}
		for _, row := range rows {
			song, err := row.toSong()
			if err != nil {
				return err
			}
			if !song.Tags.Contains(tagName) {
				continue
			}
			song.Tags.Remove(tagName)
			updated, err := newSongRow(userID, row.SongID, song)
			if err != nil {
				return err
			}
			err = tx.Model(&songRow{}).
				Where("user_id = ? AND song_id = ?", userID, row.SongID).
				Update("tags", updated.Tags).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// HasTagType checks whether the user has a tag type with the given name.
func (s *Store) HasTagType(userID int, tagTypeName string) library.Response[bool] {
	var count int64
	err := s.read(func(tx *gorm.DB) error {
		return tx.Model(&tagTypeRow{}).
			Where("user_id = ? AND name = ?", userID, tagTypeName).
			Count(&count).Error
	})
	if err != nil {
		return library.Fail[bool](statusFor(err))
	}
	return library.OK(count > 0)
}

// GetTagType retrieves the tag type with the given name.
func (s *Store) GetTagType(userID int, tagTypeName string) library.Response[*entities.TagType] {
	var row tagTypeRow
	err := s.read(func(tx *gorm.DB) error {
		return tx.Where("user_id = ? AND name = ?", userID, tagTypeName).First(&row).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return library.OK[*entities.TagType](nil)
	}
	if err != nil {
		return library.Fail[*entities.TagType](statusFor(err))
	}
	tagType := row.toTagType()
	return library.OK(&tagType)
}

// GetAllTagTypes retrieves all of the user's tag types keyed by name.
func (s *Store) GetAllTagTypes(userID int) library.Response[map[string]entities.TagType] {
	var rows []tagTypeRow
	err := s.read(func(tx *gorm.DB) error {
		return tx.Where("user_id = ?", userID).Find(&rows).Error
	})
	if err != nil {
		return library.Fail[map[string]entities.TagType](statusFor(err))
	}
	tagTypes := make(map[string]entities.TagType, len(rows))
	for _, row := range rows {
		tagTypes[row.Name] = row.toTagType()
	}
	return library.OK(tagTypes)
}

// PutTagType inserts or overwrites the tag type with the given name.
func (s *Store) PutTagType(userID int, tagTypeName string, tagType entities.TagType) library.Response[library.Unit] {
	return s.write(func(tx *gorm.DB) error {
		if err := requireUser(tx, userID); err != nil {
			return err
		}
		row := tagTypeRow{UserID: userID, Name: tagTypeName, Color: tagType.Color}
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error
	})
}

// RemoveTagType removes the tag type with the given name and clears the
// type of every tag of the same user that referenced it. The default tag
// type cannot be removed.
func (s *Store) RemoveTagType(userID int, tagTypeName string) library.Response[library.Unit] {
	return s.write(func(tx *gorm.DB) error {
		if err := requireUser(tx, userID); err != nil {
			return err
		}
		if tagTypeName == "" {
			return fmt.Errorf("default tag type cannot be removed: %w", errBadRequest)
		}
		if err := tx.Where("user_id = ? AND name = ?", userID, tagTypeName).Delete(&tagTypeRow{}).Error; err != nil {
			return err
		}
		return tx.Model(&tagRow{}).
			Where("user_id = ? AND type = ?", userID, tagTypeName).
			Update("type", nil).Error
	})
}

// HasData checks whether the user has a data entry with the given key.
func (s *Store) HasData(userID int, key string) library.Response[bool] {
	var count int64
	err := s.read(func(tx *gorm.DB) error {
		return tx.Model(&dataRow{}).
			Where("user_id = ? AND key = ?", userID, key).
			Count(&count).Error
	})
	if err != nil {
		return library.Fail[bool](statusFor(err))
	}
	return library.OK(count > 0)
}

// GetData retrieves the data entry value with the given key.
func (s *Store) GetData(userID int, key string) library.Response[*string] {
	var row dataRow
	err := s.read(func(tx *gorm.DB) error {
		return tx.Where("user_id = ? AND key = ?", userID, key).First(&row).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return library.OK[*string](nil)
	}
	if err != nil {
		return library.Fail[*string](statusFor(err))
	}
	return library.OK(&row.Value)
}

// GetAllData retrieves all of the user's data entries keyed by key.
func (s *Store) GetAllData(userID int) library.Response[map[string]string] {
	var rows []dataRow
	err := s.read(func(tx *gorm.DB) error {
		return tx.Where("user_id = ?", userID).Find(&rows).Error
	})
	if err != nil {
		return library.Fail[map[string]string](statusFor(err))
	}
	data := make(map[string]string, len(rows))
	for _, row := range rows {
		data[row.Key] = row.Value
	}
	return library.OK(data)
}

// PutData inserts or overwrites the data entry with the given key.
func (s *Store) PutData(userID int, key, value string) library.Response[library.Unit] {
	return s.write(func(tx *gorm.DB) error {
		if err := requireUser(tx, userID); err != nil {
			return err
		}
		row := dataRow{UserID: userID, Key: key, Value: value}
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error
	})
}

// RemoveData removes the data entry with the given key.
func (s *Store) RemoveData(userID int, key string) library.Response[library.Unit] {
	return s.write(func(tx *gorm.DB) error {
		if err := requireUser(tx, userID); err != nil {
			return err
		}
		return tx.Where("user_id = ? AND key = ?", userID, key).Delete(&dataRow{}).Error
	})
}

// GetUser retrieves the user with the given id.
func (s *Store) GetUser(userID int) library.Response[*entities.User] {
	var row userRow
	err := s.read(func(tx *gorm.DB) error {
		return tx.Where("id = ?", userID).First(&row).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return library.OK[*entities.User](nil)
	}
	if err != nil {
		return library.Fail[*entities.User](statusFor(err))
	}
	user := row.toUser()
	return library.OK(&user)
}

// GetUserByUsername retrieves the user with the given username.
func (s *Store) GetUserByUsername(username string) library.Response[*entities.User] {
	var row userRow
	err := s.read(func(tx *gorm.DB) error {
		return tx.Where("username = ?", username).First(&row).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return library.OK[*entities.User](nil)
	}
	if err != nil {
		return library.Fail[*entities.User](statusFor(err))
	}
	user := row.toUser()
	return library.OK(&user)
}

// GetAllUsers retrieves all users keyed by user id.
func (s *Store) GetAllUsers() library.Response[map[int]entities.User] {
	var rows []userRow
	err := s.read(func(tx *gorm.DB) error {
		return tx.Find(&rows).Error
	})
	if err != nil {
		return library.Fail[map[int]entities.User](statusFor(err))
	}
	users := make(map[int]entities.User, len(rows))
	for _, row := range rows {
		users[row.ID] = row.toUser()
	}
	return library.OK(users)
}

// GetPassHash retrieves the user's stored password hash.
func (s *Store) GetPassHash(userID int) library.Response[*string] {
	var row userRow
	err := s.read(func(tx *gorm.DB) error {
		return tx.Where("id = ?", userID).First(&row).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return library.OK[*string](nil)
	}
	if err != nil {
		return library.Fail[*string](statusFor(err))
	}
	return library.OK(&row.PassHash)
}

// AddUser creates a new user with empty collections and the given default
// tag type. The id and username must both be free.
func (s *Store) AddUser(user entities.User, defaultTagType entities.TagType) library.Response[int] {
	resp := s.write(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&userRow{}).
			Where("id = ? OR username = ?", user.ID, user.Username).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("user id or username already taken: %w", errBadRequest)
		}

		row := userRow{ID: user.ID, Username: user.Username, PassHash: user.PassHash, Admin: user.Admin}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		def := tagTypeRow{UserID: user.ID, Name: "", Color: defaultTagType.Color}
		return tx.Create(&def).Error
	})
	if !resp.Succeeded() {
		return library.Fail[int](resp.Status)
	}
	return library.OK(user.ID)
}

// UpdateUsername changes the user's username.
func (s *Store) UpdateUsername(userID int, username string) library.Response[library.Unit] {
	return s.write(func(tx *gorm.DB) error {
		if err := requireUser(tx, userID); err != nil {
			return err
		}
		var count int64
		err := tx.Model(&userRow{}).
			Where("username = ? AND id <> ?", username, userID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("username %q already taken: %w", username, errBadRequest)
		}
		return tx.Model(&userRow{}).Where("id = ?", userID).Update("username", username).Error
	})
}

// UpdatePassword replaces the user's stored password hash.
func (s *Store) UpdatePassword(userID int, passHash string) library.Response[library.Unit] {
	return s.write(func(tx *gorm.DB) error {
		if err := requireUser(tx, userID); err != nil {
			return err
		}
		return tx.Model(&userRow{}).Where("id = ?", userID).Update("pass_hash", passHash).Error
	})
}

// UpdatePrivileges changes the user's admin flag.
func (s *Store) UpdatePrivileges(userID int, admin bool) library.Response[library.Unit] {
	return s.write(func(tx *gorm.DB) error {
		if err := requireUser(tx, userID); err != nil {
			return err
		}
		return tx.Model(&userRow{}).Where("id = ?", userID).Update("admin", admin).Error
	})
}

// RemoveUser removes the user and all four of that user's collections in
// one transaction.
func (s *Store) RemoveUser(userID int) library.Response[library.Unit] {
	return s.write(func(tx *gorm.DB) error {
		if err := requireUser(tx, userID); err != nil {
			return err
		}
		if err := tx.Where("id = ?", userID).Delete(&userRow{}).Error; err != nil {
			return err
		}
		for _, model := range []interface{}{&songRow{}, &tagRow{}, &tagTypeRow{}, &dataRow{}} {
			if err := tx.Where("user_id = ?", userID).Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
