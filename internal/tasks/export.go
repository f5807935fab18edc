package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cineniche/cinectl/internal/formatter"
	"github.com/cineniche/cinectl/internal/models"
	"github.com/cineniche/cinectl/internal/shared"
	"golang.org/x/time/rate"
)

// BulkExportOpts contains configuration for bulk genre exports.
type BulkExportOpts struct {
	Format         string                                                  // Export format: json, csv, markdown, txt
	OutputDir      string                                                  // Base output directory (default: cineniche_export_{epoch})
	NumWorkers     int                                                     // Concurrent workers (default: 5)
	RateLimit      float64                                                 // Poster downloads per second (default: 5)
	GetPosterImage func(ctx context.Context, title string) (string, error) // Optional poster fetcher, returns a local filename
}

// ListingExportResult records the outcome of exporting one genre listing.
type ListingExportResult struct {
	Genre   string   `json:"genre"`
	Titles  int      `json:"titles"`
	Files   []string `json:"files,omitempty"`
	Success bool     `json:"success"`
	Error   error    `json:"-"`
}

// BulkExportResult summarizes a bulk export run.
type BulkExportResult struct {
	TotalListings   int
	SuccessCount    int
	FailedCount     int
	OutputDirectory string
	Results         []ListingExportResult
}

type listingExportJob struct {
	genre   string
	listing *formatter.Listing
}

// BulkExport exports one listing per genre concurrently with rate limiting
// and progress tracking.
//
// The catalog is fetched once and partitioned locally; the rate limiter only
// gates poster downloads, which hit the asset host. Partial failures are
// recorded per listing and a manifest file summarizes the run.
func (e *CatalogEngine) BulkExport(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	genres []string,
	opts BulkExportOpts,
) (*BulkExportResult, error) {
	if e.service == nil {
		return nil, fmt.Errorf("%w: catalog service not initialized", shared.ErrServiceUnavailable)
	}

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("cineniche_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}
	if opts.Format == "" {
		opts.Format = "csv"
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	e.sendProgress(prog, fetchCatalogUpdate(1, 1))
	movies, err := e.service.Movies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}

	if len(genres) == 0 {
		genres = collectGenres(movies)
	}

	result := &BulkExportResult{
		TotalListings:   len(genres),
		OutputDirectory: opts.OutputDir,
		Results:         make([]ListingExportResult, 0, len(genres)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan listingExportJob, len(genres))
	results := make(chan ListingExportResult, len(genres))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, limiter, opts)
	}

	for i, genre := range genres {
		listing := &formatter.Listing{Name: genre, Movies: byGenre(movies, genre)}
		jobs <- listingExportJob{genre: genre, listing: listing}
		e.sendProgress(prog, exportingListingUpdate(i+1, len(genres), genre))
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)
		if res.Success {
			result.SuccessCount++
			e.sendProgress(prog, exportCompletedUpdate(completed, len(genres), res.Genre, len(res.Files)))
		} else {
			result.FailedCount++
			e.sendProgress(prog, exportFailedUpdate(completed, len(genres), res.Genre, res.Error))
		}
	}

	if err := writeManifest(result, opts); err != nil {
		return result, fmt.Errorf("export finished but manifest failed: %w", err)
	}

	return result, nil
}

// exportWorker drains the job channel, writing one listing per job.
func (e *CatalogEngine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan listingExportJob,
	results chan<- ListingExportResult,
	limiter *rate.Limiter,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			results <- ListingExportResult{Genre: job.genre, Success: false, Error: ctx.Err()}
			continue
		default:
		}

		files, err := e.exportListing(ctx, job.listing, limiter, opts)
		results <- ListingExportResult{
			Genre:   job.genre,
			Titles:  len(job.listing.Movies),
			Files:   files,
			Success: err == nil,
			Error:   err,
		}
	}
}

// exportListing writes one listing in the configured format.
func (e *CatalogEngine) exportListing(ctx context.Context, listing *formatter.Listing, limiter *rate.Limiter, opts BulkExportOpts) ([]string, error) {
	base := filepath.Join(opts.OutputDir, slugify(listing.Name))

	imageFilename := ""
	if opts.GetPosterImage != nil && len(listing.Movies) > 0 {
		if err := limiter.Wait(ctx); err != nil {
			return nil, err
		}
		filename, err := opts.GetPosterImage(ctx, listing.Movies[0].Title)
		if err == nil {
			imageFilename = filename
		}
	}

	switch opts.Format {
	case "csv":
		res, err := formatter.WriteCSVExport(listing, base)
		if err != nil {
			return nil, err
		}
		return []string{res.MoviesFile, res.MetadataFile}, nil
	case "json":
		data, err := shared.MarshalJSON(listing, true)
		if err != nil {
			return nil, err
		}
		path := base + ".json"
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("failed to write JSON export: %w", err)
		}
		return []string{path}, nil
	case "markdown", "md":
		data, err := formatter.ExportToMarkdown(listing, imageFilename)
		if err != nil {
			return nil, err
		}
		path := base + ".md"
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("failed to write Markdown export: %w", err)
		}
		return []string{path}, nil
	case "txt", "text":
		data, err := formatter.ExportToText(listing)
		if err != nil {
			return nil, err
		}
		path := base + ".txt"
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("failed to write text export: %w", err)
		}
		return []string{path}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported export format %q", shared.ErrInvalidFlag, opts.Format)
	}
}

// writeManifest records the run summary next to the exported files.
func writeManifest(result *BulkExportResult, opts BulkExportOpts) error {
	manifest := struct {
		ExportedAt    time.Time             `json:"exported_at"`
		Format        string                `json:"format"`
		TotalListings int                   `json:"total_listings"`
		SuccessCount  int                   `json:"success_count"`
		FailedCount   int                   `json:"failed_count"`
		Listings      []ListingExportResult `json:"listings"`
	}{
		ExportedAt:    time.Now().UTC(),
		Format:        opts.Format,
		TotalListings: result.TotalListings,
		SuccessCount:  result.SuccessCount,
		FailedCount:   result.FailedCount,
		Listings:      result.Results,
	}

	data, err := shared.MarshalJSON(manifest, true)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(opts.OutputDir, "manifest.json"), data, 0644)
}

func collectGenres(movies []models.Movie) []string {
	seen := make(map[string]struct{})
	var genres []string
	for _, movie := range movies {
		for _, genre := range movie.Genres() {
			if _, ok := seen[genre]; !ok {
				seen[genre] = struct{}{}
				genres = append(genres, genre)
			}
		}
	}
	return genres
}

func byGenre(movies []models.Movie, genre string) []models.Movie {
	var matches []models.Movie
	for _, movie := range movies {
		if movie.MatchesGenre(genre) {
			matches = append(matches, movie)
		}
	}
	return matches
}

func slugify(name string) string {
	return strings.ReplaceAll(shared.NormalizeTitleKey(name), " ", "_")
}
