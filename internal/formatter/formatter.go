// package formatter provides functions to export catalog listings to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cineniche/cinectl/internal/models"
	"github.com/cineniche/cinectl/internal/shared"
)

// Listing is a named group of movies being exported, typically a genre or a
// search result set.
type Listing struct {
	Name   string
	Movies []models.Movie
}

// ExportToCSV converts a Listing to CSV format with columns: ShowID, Type, Title, Director, Cast, Country, ReleaseYear, Rating, Duration, Genre
func ExportToCSV(listing *Listing) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ShowID", "Type", "Title", "Director", "Cast", "Country", "ReleaseYear", "Rating", "Duration", "Genre"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, movie := range listing.Movies {
		record := []string{
			movie.ShowID,
			movie.Type,
			movie.Title,
			movie.Director,
			movie.Cast,
			movie.Country,
			strconv.Itoa(movie.ReleaseYear),
			movie.Rating,
			movie.Duration,
			movie.Genre,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a Listing to Markdown format with optional poster image
func ExportToMarkdown(listing *Listing, imageFilename string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", listing.Name))

	if imageFilename != "" {
		buf.WriteString(fmt.Sprintf("![Poster](%s)\n\n", imageFilename))
	}

	buf.WriteString(fmt.Sprintf("**Titles**: %d\n\n", len(listing.Movies)))

	buf.WriteString("## Titles\n\n")
	for i, movie := range listing.Movies {
		yearPart := ""
		if movie.ReleaseYear > 0 {
			yearPart = fmt.Sprintf(" (%d)", movie.ReleaseYear)
		}
		directorPart := ""
		if movie.Director != "" {
			directorPart = fmt.Sprintf(" - %s", movie.Director)
		}
		buf.WriteString(fmt.Sprintf("%d. %s%s%s [%s]\n", i+1, movie.Title, yearPart, directorPart, movie.Genre))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a Listing to plain text format
func ExportToText(listing *Listing) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Listing: %s\n", listing.Name))
	buf.WriteString(fmt.Sprintf("Titles: %d\n\n", len(listing.Movies)))

	for i, movie := range listing.Movies {
		buf.WriteString(fmt.Sprintf("%d. %s (%d)\n", i+1, movie.Title, movie.ReleaseYear))
	}

	return buf.Bytes(), nil
}

// PosterURL builds the poster image URL for a movie title against the given
// asset base, matching how the catalog hosts its artwork.
func PosterURL(assetBase, title string) string {
	return strings.TrimSuffix(assetBase, "/") + "/" + url.PathEscape(title) + ".jpg"
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// ToMetadataJSON generates a JSON representation of a single movie
func ToMetadataJSON(movie models.Movie) ([]byte, error) {
	return shared.MarshalJSON(movie, true)
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	MoviesFile   string
	MetadataFile string
}

// WriteCSVExport exports a listing to CSV with an accompanying metadata JSON file.
//
// Creates {base}_movies.csv and {base}_metadata.json under the base filepath.
func WriteCSVExport(listing *Listing, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = shared.NormalizeTitleKey(listing.Name)
		baseFilepath = strings.ReplaceAll(baseFilepath, " ", "_")
	}

	if dir := filepath.Dir(baseFilepath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	csvData, err := ExportToCSV(listing)
	if err != nil {
		return nil, err
	}

	moviesFile := baseFilepath + "_movies.csv"
	if err := os.WriteFile(moviesFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadata := struct {
		Name       string    `json:"name"`
		Titles     int       `json:"titles"`
		ExportedAt time.Time `json:"exported_at"`
	}{Name: listing.Name, Titles: len(listing.Movies), ExportedAt: time.Now().UTC()}

	metadataData, err := shared.MarshalJSON(metadata, true)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{MoviesFile: moviesFile, MetadataFile: metadataFile}, nil
}
