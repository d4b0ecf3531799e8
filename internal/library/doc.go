// Package library defines the storage contract for per-user music library
// metadata and the response envelope shared by all backends.
//
// # Architecture
//
// The storage layer is organized into backend sub-packages behind one
// interface:
//
//	library/
//	├── store.go        # Store interface, contract and cascade invariants
//	├── response.go     # Response envelope and Status outcomes
//	├── snapshot.go     # Per-user export/import snapshots
//	├── memory/         # In-memory reference backend (dev and tests)
//	├── sqlite/         # SQLite-backed persistent backend (gorm)
//	└── librarytest/    # Contract conformance suite run by every backend
//
// Backends are selected once at process start and never mixed at runtime.
// Callers branch on Response.Status rather than Go errors; see the Status
// constants for the taxonomy.
//
// # Usage
//
//	store := memory.New()
//	resp := store.AddUser(entities.User{ID: 1, Username: "ann"}, entities.TagType{Color: 0xFFFFFF})
//	if !resp.Succeeded() {
//		// handle resp.Status
//	}
//	songs := store.GetSongsByTags(1, entities.NewTagSet("rock"), nil)
package library
