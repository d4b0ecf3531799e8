// Command generate_demo creates a demo library database with sample users
// and songs for local development.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/mrlokans/songvault/internal/auth"
	"github.com/mrlokans/songvault/internal/entities"
	"github.com/mrlokans/songvault/internal/library"
	"github.com/mrlokans/songvault/internal/library/sqlite"
)

const defaultDemoDatabasePath = "./demo/demo.db"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	store, err := sqlite.Open(*dbPath, 0)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.Close()

	for _, user := range demoUsers() {
		seedUser(store, user)
	}

	log.Println("Demo database generated successfully!")
}

type demoUser struct {
	user     entities.User
	password string
	defColor int
	tagTypes map[string]entities.TagType
	tags     map[string]entities.Tag
	songs    map[int]entities.Song
	data     map[string]string
}

func seedUser(store library.Store, demo demoUser) {
	passHash, err := auth.HashPassword(demo.password, 10)
	if err != nil {
		log.Fatalf("Failed to hash password for %s: %v", demo.user.Username, err)
	}
	demo.user.PassHash = passHash

	resp := store.AddUser(demo.user, entities.TagType{Color: demo.defColor})
	if !resp.Succeeded() {
		log.Fatalf("Failed to create user %s: store returned %s", demo.user.Username, resp.Status)
	}

	for name, tagType := range demo.tagTypes {
		if r := store.PutTagType(demo.user.ID, name, tagType); !r.Succeeded() {
			log.Fatalf("Failed to create tag type %s: store returned %s", name, r.Status)
		}
	}
	for name, tag := range demo.tags {
		if r := store.PutTag(demo.user.ID, name, tag); !r.Succeeded() {
			log.Fatalf("Failed to create tag %s: store returned %s", name, r.Status)
		}
	}
	for id, song := range demo.songs {
		if r := store.PutSong(demo.user.ID, id, song); !r.Succeeded() {
			log.Fatalf("Failed to create song %d: store returned %s", id, r.Status)
		}
	}
	for key, value := range demo.data {
		if r := store.PutData(demo.user.ID, key, value); !r.Succeeded() {
			log.Fatalf("Failed to create data entry %s: store returned %s", key, r.Status)
		}
	}

	log.Printf("Seeded user %q (id %d) with %d songs", demo.user.Username, demo.user.ID, len(demo.songs))
}

func demoUsers() []demoUser {
	genre := "genre"
	mood := "mood"
	track := func(n int) *int { return &n }
	date := func(year int, month time.Month, day int) *time.Time {
		t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		return &t
	}
	desc := func(s string) *string { return &s }

	return []demoUser{
		{
			user:     entities.User{ID: 1, Username: "demo", Admin: true},
			password: "demo-password-1",
			defColor: 0xFFFFFF,
			tagTypes: map[string]entities.TagType{
				"genre": {Color: 0x2E86C1},
				"mood":  {Color: 0x28B463},
			},
			tags: map[string]entities.Tag{
				"rock":    {Type: &genre, Description: desc("Guitar driven")},
				"ambient": {Type: &genre},
				"calm":    {Type: &mood},
			},
			songs: map[int]entities.Song{
				1: {
					FileName:    "echoes.flac",
					Title:       "Echoes",
					Duration:    1412,
					TrackNum:    track(1),
					ReleaseDate: date(1971, time.October, 30),
					PlayCount:   42,
					Tags:        entities.NewTagSet("rock"),
				},
				2: {
					FileName:    "weightless.ogg",
					Title:       "Weightless",
					Duration:    480,
					ReleaseDate: date(2011, time.November, 11),
					PlayCount:   17,
					Tags:        entities.NewTagSet("ambient", "calm"),
				},
				3: {
					FileName: "unreleased-take-3.wav",
					Title:    "Unreleased (Take 3)",
					Duration: 205,
					Tags:     entities.NewTagSet("rock", "demo-take"),
				},
			},
			data: map[string]string{
				"player.volume":  "0.8",
				"player.shuffle": "false",
			},
		},
		{
			user:     entities.User{ID: 2, Username: "listener"},
			password: "listener-pass-1",
			defColor: 0xAAAAAA,
			tags: map[string]entities.Tag{
				"podcasts": {},
			},
			songs: map[int]entities.Song{
				1: {
					FileName: "episode-001.mp3",
					Title:    "Episode 1",
					Duration: 3600,
					Tags:     entities.NewTagSet("podcasts"),
				},
			},
		},
	}
}
