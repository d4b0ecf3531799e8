// Package entities defines the value records stored in a user's music
// library: users, songs, tags, tag types and free-form data entries.
//
// Records are plain values with no behavior beyond identity by key.
// References between them (song to tag, tag to tag type) are held by name
// only and resolve at read time, so a dangling name is legal.
package entities

import "time"

// User is an account that owns an independent library of songs, tags,
// tag types and data entries.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	PassHash string `json:"-"` // opaque to the store, hidden from JSON
	Admin    bool   `json:"admin"`
}

// Song is a single library entry, keyed by a user-scoped numeric id.
// Tags holds tag names, not Tag entries.
type Song struct {
	FileName    string     `json:"file_name"`
	Title       string     `json:"title"`
	Duration    int        `json:"duration"` // seconds
	TrackNum    *int       `json:"track_num,omitempty"`
	ReleaseDate *time.Time `json:"release_date,omitempty"`
	CreateDate  time.Time  `json:"create_date"`
	ModifyDate  time.Time  `json:"modify_date"`
	PlayCount   int        `json:"play_count"`
	Tags        TagSet     `json:"tags"`
}

// Clone returns an independent copy of the song.
func (s Song) Clone() Song {
	clone := s
	clone.Tags = s.Tags.Clone()
	if s.TrackNum != nil {
		n := *s.TrackNum
		clone.TrackNum = &n
	}
	if s.ReleaseDate != nil {
		t := *s.ReleaseDate
		clone.ReleaseDate = &t
	}
	return clone
}

// Tag is a named label attachable to songs, keyed by a user-scoped unique
// name. A nil Type means "fall back to whatever the user's default tag type
// currently is" at read time; it is not a copy of the default.
type Tag struct {
	Type        *string `json:"type,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Clone returns an independent copy of the tag.
func (t Tag) Clone() Tag {
	clone := t
	if t.Type != nil {
		v := *t.Type
		clone.Type = &v
	}
	if t.Description != nil {
		v := *t.Description
		clone.Description = &v
	}
	return clone
}

// TagType is a named category for tags, keyed by a user-scoped unique name.
// The entry under the empty-string name is the user's default tag type.
type TagType struct {
	Color int `json:"color"`
}

// DataEntry is an arbitrary user-scoped key/value string pair for
// client-defined metadata, unrelated to songs or tags.
type DataEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
