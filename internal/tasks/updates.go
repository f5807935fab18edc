package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchCatalog Phase = iota
	WriteCache
	FetchSession
	FetchRecommendations
	ExportListing
)

func (p Phase) String() string {
	switch p {
	case FetchCatalog:
		return "fetch_catalog"
	case WriteCache:
		return "write_cache"
	case FetchSession:
		return "fetch_session"
	case FetchRecommendations:
		return "fetch_recommendations"
	case ExportListing:
		return "export_listing"
	default:
		return ""
	}
}

func fetchCatalogUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchCatalog,
		Step:    step,
		Total:   total,
		Message: "Fetching catalog from CineNiche...",
	}
}

func writeCacheUpdate(step, total, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteCache,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Caching %d titles locally...", count),
	}
}

func fetchSessionUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSession,
		Step:    step,
		Total:   total,
		Message: "Checking session...",
	}
}

func fetchRecommendationsUpdate(step, total, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchRecommendations,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetching recommendations and ratings for %d titles...", count),
	}
}

func exportingListingUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportListing,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Exporting: %s...", step, total, name),
	}
}

func exportCompletedUpdate(step, total int, name string, filesCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportListing,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d files)", step, total, name, filesCount),
	}
}

func exportFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportListing,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}
