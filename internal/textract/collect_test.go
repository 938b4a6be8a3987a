package textract

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	pages map[string]ResultPage
	err   error
	calls int
}

func (f *fakeFetcher) FetchResultsPage(_ context.Context, _, nextToken string) (ResultPage, error) {
	f.calls++
	if f.err != nil {
		return ResultPage{}, f.err
	}
	page, ok := f.pages[nextToken]
	if !ok {
		return ResultPage{}, fmt.Errorf("unexpected token %q", nextToken)
	}
	return page, nil
}

func docWithVendor(name string) ExpenseDocument {
	return ExpenseDocument{SummaryFields: []Field{{Type: "VENDOR_NAME", Value: name, Confidence: 90}}}
}

func TestCollectResultsSinglePage(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]ResultPage{
		"": {
			Status:       JobStatusSucceeded,
			Documents:    []ExpenseDocument{docWithVendor("Acme Corp")},
			PageCount:    2,
			ModelVersion: "1.0",
		},
	}}

	result, err := CollectResults(context.Background(), fetcher, "job-1", nil)
	require.NoError(t, err)

	assert.Equal(t, JobStatusSucceeded, result.Status)
	assert.Len(t, result.Documents, 1)
	assert.Equal(t, int32(2), result.PageCount)
	assert.Equal(t, "1.0", result.ModelVersion)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, 1, fetcher.calls)
}

func TestCollectResultsFollowsTokens(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]ResultPage{
		"": {
			Status:    JobStatusSucceeded,
			Documents: []ExpenseDocument{docWithVendor("First")},
			NextToken: "t1",
			PageCount: 3,
		},
		"t1": {
			Status:    JobStatusSucceeded,
			Documents: []ExpenseDocument{docWithVendor("Second")},
			NextToken: "t2",
			Warnings:  []Warning{{ErrorCode: "UNSUPPORTED_DOCUMENT", Pages: []int32{2}}},
		},
		"t2": {
			Status:    JobStatusSucceeded,
			Documents: []ExpenseDocument{docWithVendor("Third")},
		},
	}}

	result, err := CollectResults(context.Background(), fetcher, "job-2", nil)
	require.NoError(t, err)

	assert.Len(t, result.Documents, 3)
	assert.Equal(t, int32(3), result.PageCount)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "UNSUPPORTED_DOCUMENT", result.Warnings[0].ErrorCode)
	assert.Equal(t, 3, fetcher.calls)
}

func TestCollectResultsStatusFromFirstSettledPage(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]ResultPage{
		"":   {Status: JobStatusInProgress, NextToken: "t1"},
		"t1": {Status: JobStatusSucceeded, Documents: []ExpenseDocument{docWithVendor("Acme")}},
	}}

	result, err := CollectResults(context.Background(), fetcher, "job-3", nil)
	require.NoError(t, err)
	assert.Equal(t, JobStatusSucceeded, result.Status)
}

func TestCollectResultsPageCap(t *testing.T) {
	pages := make(map[string]ResultPage)
	token := ""
	for i := 0; i < MaxResultPages+5; i++ {
		next := fmt.Sprintf("t%d", i+1)
		pages[token] = ResultPage{
			Status:    JobStatusSucceeded,
			Documents: []ExpenseDocument{docWithVendor(fmt.Sprintf("Doc %d", i))},
			NextToken: next,
		}
		token = next
	}
	fetcher := &fakeFetcher{pages: pages}

	result, err := CollectResults(context.Background(), fetcher, "job-4", nil)
	require.NoError(t, err)

	assert.Equal(t, MaxResultPages, fetcher.calls)
	assert.Len(t, result.Documents, MaxResultPages)
	require.NotEmpty(t, result.Warnings)
	last := result.Warnings[len(result.Warnings)-1]
	assert.Equal(t, WarningIncompleteResults, last.ErrorCode)
}

func TestCollectResultsFetchError(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("throttled")}

	_, err := CollectResults(context.Background(), fetcher, "job-5", nil)
	assert.ErrorContains(t, err, "throttled")
}

func TestParseJobStatus(t *testing.T) {
	assert.Equal(t, JobStatusSucceeded, ParseJobStatus("SUCCEEDED"))
	assert.Equal(t, JobStatusSucceeded, ParseJobStatus("PARTIAL_SUCCESS"))
	assert.Equal(t, JobStatusFailed, ParseJobStatus("FAILED"))
	assert.Equal(t, JobStatusInProgress, ParseJobStatus("IN_PROGRESS"))
	assert.Equal(t, JobStatusUnknown, ParseJobStatus("SOMETHING_ELSE"))
}

func TestJobStatusTerminal(t *testing.T) {
	assert.True(t, JobStatusSucceeded.Terminal())
	assert.True(t, JobStatusFailed.Terminal())
	assert.False(t, JobStatusInProgress.Terminal())
	assert.False(t, JobStatusUnknown.Terminal())
}
