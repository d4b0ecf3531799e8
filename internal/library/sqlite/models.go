package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mrlokans/songvault/internal/entities"
)

// Row models are private to this package; the rest of the codebase only
// sees the entities types. Every row is scoped by user id so that cascades
// and removals stay within one user's library.

type userRow struct {
	ID       int    `gorm:"primaryKey;autoIncrement:false"`
	Username string `gorm:"uniqueIndex;size:100"`
	PassHash string `gorm:"size:100"`
	Admin    bool
}

type songRow struct {
	UserID      int `gorm:"primaryKey;autoIncrement:false;index"`
	SongID      int `gorm:"primaryKey;autoIncrement:false"`
	FileName    string
	Title       string
	Duration    int
	TrackNum    *int
	ReleaseDate *time.Time
	CreateDate  time.Time
	ModifyDate  time.Time
	PlayCount   int
	Tags        string // JSON array of tag names
}

type tagRow struct {
	UserID      int    `gorm:"primaryKey;autoIncrement:false;index"`
	Name        string `gorm:"primaryKey;size:100"`
	Type        *string
	Description *string
}

type tagTypeRow struct {
	UserID int    `gorm:"primaryKey;autoIncrement:false;index"`
	Name   string `gorm:"primaryKey;size:100"` // "" is the user's default
	Color  int
}

type dataRow struct {
	UserID int    `gorm:"primaryKey;autoIncrement:false;index"`
	Key    string `gorm:"primaryKey;size:255"`
	Value  string
}

func (userRow) TableName() string    { return "users" }
func (songRow) TableName() string    { return "songs" }
func (tagRow) TableName() string     { return "tags" }
func (tagTypeRow) TableName() string { return "tag_types" }
func (dataRow) TableName() string    { return "data_entries" }

func newSongRow(userID, songID int, song entities.Song) (songRow, error) {
	tags, err := json.Marshal(song.Tags)
	if err != nil {
		return songRow{}, fmt.Errorf("failed to encode tag set: %w", err)
	}
	return songRow{
		UserID:      userID,
		SongID:      songID,
		FileName:    song.FileName,
		Title:       song.Title,
		Duration:    song.Duration,
		TrackNum:    song.TrackNum,
		ReleaseDate: song.ReleaseDate,
		CreateDate:  song.CreateDate,
		ModifyDate:  song.ModifyDate,
		PlayCount:   song.PlayCount,
		Tags:        string(tags),
	}, nil
}

func (r songRow) toSong() (entities.Song, error) {
	var tags entities.TagSet
	if err := json.Unmarshal([]byte(r.Tags), &tags); err != nil {
		return entities.Song{}, fmt.Errorf("failed to decode tag set of song %d: %w", r.SongID, err)
	}
	return entities.Song{
		FileName:    r.FileName,
		Title:       r.Title,
		Duration:    r.Duration,
		TrackNum:    r.TrackNum,
		ReleaseDate: r.ReleaseDate,
		CreateDate:  r.CreateDate,
		ModifyDate:  r.ModifyDate,
		PlayCount:   r.PlayCount,
		Tags:        tags,
	}, nil
}

func (r userRow) toUser() entities.User {
	return entities.User{ID: r.ID, Username: r.Username, PassHash: r.PassHash, Admin: r.Admin}
}

func (r tagRow) toTag() entities.Tag {
	return entities.Tag{Type: r.Type, Description: r.Description}
}

func (r tagTypeRow) toTagType() entities.TagType {
	return entities.TagType{Color: r.Color}
}
