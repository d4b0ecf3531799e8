package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagSetMembership(t *testing.T) {
	s := NewTagSet("rock", "live")

	assert.True(t, s.Contains("rock"))
	assert.False(t, s.Contains("jazz"))

	s.Add("jazz")
	assert.True(t, s.Contains("jazz"))

	s.Remove("jazz")
	assert.False(t, s.Contains("jazz"))

	// Removing an absent name is a no-op.
	s.Remove("jazz")
	assert.Len(t, s, 2)
}

func TestTagSetContainsAll(t *testing.T) {
	s := NewTagSet("a", "b", "c")

	assert.True(t, s.ContainsAll(nil))
	assert.True(t, s.ContainsAll(NewTagSet()))
	assert.True(t, s.ContainsAll(NewTagSet("a")))
	assert.True(t, s.ContainsAll(NewTagSet("a", "c")))
	assert.False(t, s.ContainsAll(NewTagSet("a", "d")))
	assert.False(t, NewTagSet().ContainsAll(NewTagSet("a")))
}

func TestTagSetContainsAny(t *testing.T) {
	s := NewTagSet("a", "b")

	assert.False(t, s.ContainsAny(nil))
	assert.False(t, s.ContainsAny(NewTagSet("x", "y")))
	assert.True(t, s.ContainsAny(NewTagSet("x", "b")))
	assert.False(t, NewTagSet().ContainsAny(NewTagSet("a")))
}

func TestTagSetClone(t *testing.T) {
	s := NewTagSet("a")
	clone := s.Clone()
	clone.Add("b")

	assert.False(t, s.Contains("b"))
	assert.True(t, clone.Contains("a"))

	var nilSet TagSet
	assert.Nil(t, nilSet.Clone())
}

func TestTagSetJSON(t *testing.T) {
	s := NewTagSet("b", "a", "c")

	encoded, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, `["a","b","c"]`, string(encoded))

	var decoded TagSet
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, s, decoded)

	require.NoError(t, json.Unmarshal([]byte(`[]`), &decoded))
	assert.Empty(t, decoded)

	assert.Error(t, json.Unmarshal([]byte(`"not-an-array"`), &decoded))
}

func TestSongClone(t *testing.T) {
	track := 5
	song := Song{Title: "x", TrackNum: &track, Tags: NewTagSet("a")}

	clone := song.Clone()
	*clone.TrackNum = 6
	clone.Tags.Add("b")

	assert.Equal(t, 5, *song.TrackNum)
	assert.False(t, song.Tags.Contains("b"))
}

func TestTagClone(t *testing.T) {
	typ := "genre"
	tag := Tag{Type: &typ}

	clone := tag.Clone()
	*clone.Type = "mood"

	assert.Equal(t, "genre", *tag.Type)
	assert.Nil(t, clone.Description)
}
