package views

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Overboard/AskMinstrel/internal/catalog"
	"github.com/Overboard/AskMinstrel/internal/shared"
)

func testArtist(id string) catalog.FullArtist {
	return catalog.FullArtist{
		ID:         id,
		Name:       "Artist " + id,
		Genres:     []string{"jazz", "vocal"},
		Images:     []catalog.Image{{URL: "https://img.example/" + id + "-lg", Width: 640}, {URL: "https://img.example/" + id + "-sm", Width: 64}},
		Popularity: 61,
	}
}

func testAlbum(id string) catalog.SimpleAlbum {
	return catalog.SimpleAlbum{
		ID:          id,
		Name:        "Album " + id,
		Artists:     []catalog.ArtistRef{{ID: "A1", Type: "artist", Name: "Norah Jones"}},
		ReleaseDate: "2002-02-26",
		Images:      []catalog.Image{{URL: "https://img.example/" + id}},
	}
}

func TestSearchRecords(t *testing.T) {
	t.Run("Artist Page", func(t *testing.T) {
		page := &catalog.ArtistPage{Items: []catalog.FullArtist{testArtist("A1"), testArtist("A2")}, Total: 2}

		records, err := SearchRecords(page)
		if err != nil {
			t.Fatalf("expected records, got %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("expected 2 records, got %d", len(records))
		}

		rec := records[0]
		for _, key := range []string{"id", "name", "genres", "images"} {
			if _, ok := rec[key]; !ok {
				t.Errorf("artist search record missing %q", key)
			}
		}
		if len(rec) != 4 {
			t.Errorf("artist search record should have exactly 4 fields, got %d", len(rec))
		}
		if rec["images"] != "https://img.example/A1-lg" {
			t.Errorf("images should flatten to the first URL, got %v", rec["images"])
		}
	})

	t.Run("Preserves Source Order", func(t *testing.T) {
		var items []catalog.FullArtist
		for i := 0; i < 7; i++ {
			items = append(items, testArtist(fmt.Sprintf("A%d", i)))
		}
		page := &catalog.ArtistPage{Items: items, Total: len(items)}

		records, err := SearchRecords(page)
		if err != nil {
			t.Fatal(err)
		}
		if len(records) != len(items) {
			t.Fatalf("expected %d records, got %d", len(items), len(records))
		}
		for i, rec := range records {
			want := fmt.Sprintf("A%d", i)
			if rec["id"] != want {
				t.Errorf("record %d: expected id %s, got %v", i, want, rec["id"])
			}
		}
	})

	t.Run("Album Page Flattens Nested Artist", func(t *testing.T) {
		page := &catalog.AlbumPage{Items: []catalog.SimpleAlbum{testAlbum("B1")}}

		records, err := SearchRecords(page)
		if err != nil {
			t.Fatal(err)
		}

		artist, ok := records[0]["artists"].(Record)
		if !ok {
			t.Fatalf("expected nested artist record, got %T", records[0]["artists"])
		}
		if artist["id"] != "A1" || artist["type"] != "artist" || artist["name"] != "Norah Jones" {
			t.Errorf("unexpected nested artist %v", artist)
		}
		if records[0]["release_date"] != "2002-02-26" {
			t.Errorf("unexpected release_date %v", records[0]["release_date"])
		}
	})

	t.Run("Full Track Page", func(t *testing.T) {
		page := &catalog.FullTrackPage{Items: []catalog.FullTrack{{
			ID:      "T1",
			Name:    "Yesterday",
			Artists: []catalog.ArtistRef{{ID: "A9", Type: "artist", Name: "The Beatles"}},
			Album:   catalog.AlbumRef{ID: "B9", Type: "album", Name: "Help!"},
		}}}

		records, err := SearchRecords(page)
		if err != nil {
			t.Fatal(err)
		}
		rec := records[0]
		if len(rec) != 4 {
			t.Errorf("full-track search record should have 4 fields, got %d", len(rec))
		}
		album, ok := rec["album"].(Record)
		if !ok || album["id"] != "B9" {
			t.Errorf("expected album reference, got %v", rec["album"])
		}
	})

	t.Run("Album Track Listing Uses Sub Track Fields", func(t *testing.T) {
		page := &catalog.SimpleTrackPage{Items: []catalog.SimpleTrack{{
			ID:          "T2",
			Name:        "Come Away With Me",
			DiscNumber:  1,
			TrackNumber: 4,
			DurationMS:  198040,
		}}}

		records, err := SearchRecords(page)
		if err != nil {
			t.Fatal(err)
		}
		rec := records[0]
		for _, key := range []string{"id", "name", "disc_number", "track_number", "duration_ms"} {
			if _, ok := rec[key]; !ok {
				t.Errorf("sub-track record missing %q", key)
			}
		}
		if _, ok := rec["album"]; ok {
			t.Error("sub-track record should not carry an album field")
		}
	})

	t.Run("Empty Image Collection Flattens To Null", func(t *testing.T) {
		artist := testArtist("A1")
		artist.Images = nil
		page := &catalog.ArtistPage{Items: []catalog.FullArtist{artist}}

		records, err := SearchRecords(page)
		if err != nil {
			t.Fatalf("empty collection must not error: %v", err)
		}
		if records[0]["images"] != nil {
			t.Errorf("empty collection should flatten to nil, got %v", records[0]["images"])
		}
	})

	t.Run("Unsupported Page Type", func(t *testing.T) {
		if _, err := SearchRecords(&catalog.SearchResult{}); !errors.Is(err, shared.ErrUnsupportedModel) {
			t.Errorf("expected ErrUnsupportedModel, got %v", err)
		}
		if _, err := SearchRecords(42); !errors.Is(err, shared.ErrUnsupportedModel) {
			t.Errorf("expected ErrUnsupportedModel, got %v", err)
		}
	})

	t.Run("Record Without ID Is Malformed", func(t *testing.T) {
		page := &catalog.ArtistPage{Items: []catalog.FullArtist{{Name: "Nameless"}}}
		if _, err := SearchRecords(page); !errors.Is(err, shared.ErrMalformedResult) {
			t.Errorf("expected ErrMalformedResult, got %v", err)
		}
	})

	t.Run("Record Without Name Is Malformed", func(t *testing.T) {
		page := &catalog.ArtistPage{Items: []catalog.FullArtist{{ID: "A1"}}}
		if _, err := SearchRecords(page); !errors.Is(err, shared.ErrMalformedResult) {
			t.Errorf("expected ErrMalformedResult, got %v", err)
		}
	})
}

func TestDetailRecord(t *testing.T) {
	t.Run("Artist", func(t *testing.T) {
		artist := testArtist("A1")
		rec, err := DetailRecord(&artist)
		if err != nil {
			t.Fatal(err)
		}

		for _, key := range []string{"id", "name", "popularity", "genres", "images"} {
			if _, ok := rec[key]; !ok {
				t.Errorf("artist detail missing %q", key)
			}
		}
		if rec["popularity"] != 61 {
			t.Errorf("expected popularity 61, got %v", rec["popularity"])
		}
	})

	t.Run("Album", func(t *testing.T) {
		album := &catalog.FullAlbum{
			ID:          "B1",
			Name:        "Come Away With Me",
			Popularity:  74,
			Genres:      []string{"jazz"},
			ReleaseDate: "2002-02-26",
			TotalTracks: 14,
			Label:       "Blue Note",
			Artists:     []catalog.ArtistRef{{ID: "A1", Type: "artist", Name: "Norah Jones"}},
			Images:      []catalog.Image{{URL: "https://img.example/B1"}},
		}

		rec, err := DetailRecord(album)
		if err != nil {
			t.Fatal(err)
		}
		if len(rec) != 9 {
			t.Errorf("album detail should have 9 fields, got %d", len(rec))
		}
		if rec["label"] != "Blue Note" || rec["total_tracks"] != 14 {
			t.Errorf("unexpected album detail %v", rec)
		}
	})

	t.Run("Track", func(t *testing.T) {
		track := &catalog.FullTrack{
			ID:          "T1",
			Name:        "Yesterday",
			Popularity:  80,
			DiscNumber:  1,
			TrackNumber: 13,
			Artists:     []catalog.ArtistRef{{ID: "A9", Type: "artist", Name: "The Beatles"}},
			Album:       catalog.AlbumRef{ID: "B9", Type: "album", Name: "Help!"},
			DurationMS:  125666,
		}

		rec, err := DetailRecord(track)
		if err != nil {
			t.Fatal(err)
		}
		if len(rec) != 8 {
			t.Errorf("track detail should have 8 fields, got %d", len(rec))
		}
		if rec["duration_ms"] != 125666 {
			t.Errorf("unexpected duration %v", rec["duration_ms"])
		}
	})

	t.Run("Audio Features", func(t *testing.T) {
		features := &catalog.AudioFeatures{ID: "T1", Danceability: 0.33, Energy: 0.18, Valence: 0.32}

		rec, err := DetailRecord(features)
		if err != nil {
			t.Fatal(err)
		}
		if len(rec) != 3 {
			t.Errorf("audio features detail should have 3 fields, got %d", len(rec))
		}
		if _, ok := rec["id"]; ok {
			t.Error("audio features detail should not expose the track id")
		}
		if rec["valence"] != 0.32 {
			t.Errorf("unexpected valence %v", rec["valence"])
		}
	})

	t.Run("Unsupported Model", func(t *testing.T) {
		if _, err := DetailRecord(&catalog.SimpleTrack{ID: "T", Name: "n"}); !errors.Is(err, shared.ErrUnsupportedModel) {
			t.Errorf("expected ErrUnsupportedModel, got %v", err)
		}
	})

	t.Run("Missing Reference Fields Map To Null", func(t *testing.T) {
		track := &catalog.FullTrack{
			ID:      "T1",
			Name:    "Untitled",
			Artists: []catalog.ArtistRef{{ID: "A1"}},
			Album:   catalog.AlbumRef{ID: "B1"},
		}

		rec, err := DetailRecord(track)
		if err != nil {
			t.Fatal(err)
		}
		artist := rec["artists"].(Record)
		if artist["id"] != "A1" {
			t.Errorf("reference id is required, got %v", artist["id"])
		}
		if artist["type"] != nil || artist["name"] != nil {
			t.Errorf("absent reference fields should be null, got %v", artist)
		}
	})
}
