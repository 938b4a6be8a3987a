package textract

import (
	"context"
	"fmt"
	"log/slog"
)

// MaxResultPages bounds pagination per job so a misbehaving upstream that keeps
// returning continuation tokens cannot stall a worker forever.
const MaxResultPages = 10

// WarningIncompleteResults is appended to the aggregated warnings when the page
// cap was hit while a continuation token remained.
const WarningIncompleteResults = "INCOMPLETE_RESULTS_MAX_PAGES"

// PageFetcher fetches one page of expense-analysis results for a job.
// An empty nextToken requests the first page.
type PageFetcher interface {
	FetchResultsPage(ctx context.Context, jobID, nextToken string) (ResultPage, error)
}

// CollectResults walks a job's result pages and aggregates documents, warnings
// and metadata into one JobResult. The job status is taken from the first page
// that reports something other than IN_PROGRESS.
func CollectResults(ctx context.Context, fetcher PageFetcher, jobID string, logger *slog.Logger) (*JobResult, error) {
	if logger == nil {
		logger = slog.Default()
	}

	result := &JobResult{Status: JobStatusNotStarted}
	nextToken := ""
	pagesFetched := 0

	for pagesFetched < MaxResultPages {
		pagesFetched++
		logger.Debug("textract.results.page", "job_id", jobID, "page", pagesFetched, "has_token", nextToken != "")

		page, err := fetcher.FetchResultsPage(ctx, jobID, nextToken)
		if err != nil {
			logger.Error("textract.results.fetch_failed", "job_id", jobID, "page", pagesFetched, "error", err)
			return nil, fmt.Errorf("fetch results page %d: %w", pagesFetched, err)
		}

		if result.Status == JobStatusNotStarted || result.Status == JobStatusInProgress {
			result.Status = page.Status
		}
		result.Documents = append(result.Documents, page.Documents...)
		result.Warnings = append(result.Warnings, page.Warnings...)
		if result.PageCount == 0 {
			result.PageCount = page.PageCount
		}
		if result.ModelVersion == "" {
			result.ModelVersion = page.ModelVersion
		}

		if page.NextToken == "" {
			nextToken = ""
			break
		}
		nextToken = page.NextToken
	}

	if nextToken != "" {
		logger.Warn("textract.results.page_cap_reached",
			"job_id", jobID, "pages_fetched", pagesFetched, "max_pages", MaxResultPages)
		result.Warnings = append(result.Warnings, Warning{
			ErrorCode: WarningIncompleteResults,
			Pages:     []int32{int32(pagesFetched)},
		})
	}

	logger.Info("textract.results.collected",
		"job_id", jobID, "status", result.Status,
		"documents", len(result.Documents), "pages_fetched", pagesFetched)
	return result, nil
}
