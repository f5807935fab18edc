package formatter

import (
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cineniche/cinectl/internal/models"
	mocks "github.com/cineniche/cinectl/internal/testing"
)

func testListing() *Listing {
	return &Listing{
		Name: "Drama",
		Movies: []models.Movie{
			{ShowID: "s1", Type: "Movie", Title: "Foo", Director: "Ann Lee", Cast: "Bob Actor", Country: "USA", ReleaseYear: 2019, Rating: "PG-13", Duration: "98 min", Genre: "Action,Drama"},
			{ShowID: "s3", Type: "Movie", Title: "Baz", Director: "Ann Lee", ReleaseYear: 2020, Genre: "Drama"},
		},
	}
}

func TestExportToCSV(t *testing.T) {
	t.Run("Writes Header And One Row Per Movie", func(t *testing.T) {
		data, err := ExportToCSV(testListing())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		if err != nil {
			t.Fatalf("failed to parse CSV: %v", err)
		}
		if len(records) != 3 {
			t.Fatalf("expected header plus 2 rows, got %d", len(records))
		}
		if records[0][0] != "ShowID" || records[0][2] != "Title" {
			t.Errorf("unexpected header: %v", records[0])
		}
		if records[1][2] != "Foo" || records[1][6] != "2019" {
			t.Errorf("unexpected first row: %v", records[1])
		}
	})

	t.Run("Empty Listing Yields Header Only", func(t *testing.T) {
		data, err := ExportToCSV(&Listing{Name: "Empty"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		records, _ := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		if len(records) != 1 {
			t.Errorf("expected header only, got %d rows", len(records))
		}
	})
}

func TestExportToMarkdown(t *testing.T) {
	t.Run("Includes Heading Count And Rows", func(t *testing.T) {
		data, err := ExportToMarkdown(testListing(), "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		text := string(data)
		if !strings.Contains(text, "# Drama") {
			t.Error("expected listing heading")
		}
		if !strings.Contains(text, "**Titles**: 2") {
			t.Error("expected title count")
		}
		if !strings.Contains(text, "1. Foo (2019) - Ann Lee [Action,Drama]") {
			t.Errorf("unexpected row formatting:\n%s", text)
		}
	})

	t.Run("Includes Poster When Given", func(t *testing.T) {
		data, _ := ExportToMarkdown(testListing(), "poster.jpg")
		if !strings.Contains(string(data), "![Poster](poster.jpg)") {
			t.Error("expected poster image reference")
		}
	})
}

func TestExportToText(t *testing.T) {
	data, err := ExportToText(testListing())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := string(data)
	if !strings.Contains(text, "Listing: Drama") {
		t.Error("expected listing name")
	}
	if !strings.Contains(text, "2. Baz (2020)") {
		t.Errorf("unexpected text output:\n%s", text)
	}
}

func TestPosterURL(t *testing.T) {
	url := PosterURL("https://posters.cineniche.test/images/", "The Great Escape")
	want := "https://posters.cineniche.test/images/The%20Great%20Escape.jpg"
	if url != want {
		t.Errorf("expected %q, got %q", want, url)
	}
}

func TestDownloadImage(t *testing.T) {
	t.Run("Returns Body Bytes", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("image-bytes"))
		}))
		defer server.Close()

		data, err := DownloadImage(server.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != "image-bytes" {
			t.Errorf("unexpected payload: %q", data)
		}
	})

	t.Run("Rejects Empty URL", func(t *testing.T) {
		if _, err := DownloadImage(""); err == nil {
			t.Error("expected error for empty URL")
		}
	})

	t.Run("Rejects Non-OK Status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		if _, err := DownloadImage(server.URL); err == nil {
			t.Error("expected error for 404")
		}
	})
}

func TestWriteCSVExport(t *testing.T) {
	t.Run("Writes Movie And Metadata Files", func(t *testing.T) {
		dir := t.TempDir()
		base := filepath.Join(dir, "drama")

		result, err := WriteCSVExport(testListing(), base)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		mocks.AssertFileExists(t, result.MoviesFile)
		mocks.AssertFileExists(t, result.MetadataFile)

		metadata := mocks.MustReadFile(t, result.MetadataFile)
		if !strings.Contains(metadata, `"titles": 2`) {
			t.Errorf("unexpected metadata: %s", metadata)
		}
	})

	t.Run("Derives Base From Listing Name", func(t *testing.T) {
		dir := t.TempDir()
		listing := testListing()
		listing.Name = "Top Picks"

		t.Chdir(dir)

		result, err := WriteCSVExport(listing, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if filepath.Base(result.MoviesFile) != "top_picks_movies.csv" {
			t.Errorf("unexpected derived name: %s", result.MoviesFile)
		}
	})
}
