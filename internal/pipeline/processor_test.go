package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoice-insights/invoice-insights/constants"
	"github.com/invoice-insights/invoice-insights/internal/entity"
	"github.com/invoice-insights/invoice-insights/internal/parse"
	"github.com/invoice-insights/invoice-insights/internal/repository"
	"github.com/invoice-insights/invoice-insights/internal/textract"
)

type fakeRepo struct {
	repository.InvoiceRepository

	invoice  *entity.Invoice
	statuses []constants.InvoiceStatus
	parsed   *repository.ParsedUpdate
	jobID    string
}

func (f *fakeRepo) GetByID(_ context.Context, _ uuid.UUID) (*entity.Invoice, error) {
	if f.invoice == nil {
		return nil, errors.New("not found")
	}
	return f.invoice, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, _ uuid.UUID, status constants.InvoiceStatus) error {
	f.statuses = append(f.statuses, status)
	return nil
}

func (f *fakeRepo) UpdateTextractJob(_ context.Context, _ uuid.UUID, jobID string) error {
	f.jobID = jobID
	return nil
}

func (f *fakeRepo) UpdateParsedData(_ context.Context, _ uuid.UUID, upd repository.ParsedUpdate) error {
	f.parsed = &upd
	f.statuses = append(f.statuses, upd.Status)
	return nil
}

type fakeAnalyzer struct {
	startErr error
	status   textract.JobStatus
	docs     []textract.ExpenseDocument
}

func (f *fakeAnalyzer) StartExpenseAnalysis(_ context.Context, _, _, _ string) (string, error) {
	if f.startErr != nil {
		return "", f.startErr
	}
	return "job-1", nil
}

func (f *fakeAnalyzer) FetchResultsPage(_ context.Context, _, _ string) (textract.ResultPage, error) {
	return textract.ResultPage{Status: f.status, Documents: f.docs}, nil
}

func uploadedInvoice() *entity.Invoice {
	key := "invoices/test.pdf"
	bucket := "test-bucket"
	return &entity.Invoice{
		ID:               uuid.New(),
		OriginalFilename: "test.pdf",
		S3Bucket:         &bucket,
		S3Key:            &key,
		Status:           constants.StatusUploaded,
	}
}

func newTestProcessor(repo *fakeRepo, analyzer *fakeAnalyzer) *Processor {
	return NewProcessor(repo, analyzer, time.Millisecond, time.Second, nil)
}

func TestProcessInvoiceSuccess(t *testing.T) {
	repo := &fakeRepo{invoice: uploadedInvoice()}
	analyzer := &fakeAnalyzer{
		status: textract.JobStatusSucceeded,
		docs: []textract.ExpenseDocument{{
			SummaryFields: []textract.Field{
				{Type: "Vendor Name", Value: "Acme Corp", Confidence: 99},
				{Type: "Total", Value: "$1,234.56", Confidence: 98},
				{Type: "Date", Value: "04/05/2023", Confidence: 97},
			},
		}},
	}

	err := newTestProcessor(repo, analyzer).ProcessInvoice(context.Background(), repo.invoice.ID)
	require.NoError(t, err)

	assert.Equal(t, "job-1", repo.jobID)
	require.NotNil(t, repo.parsed)
	assert.Equal(t, constants.StatusProcessed, repo.parsed.Status)
	require.NotNil(t, repo.parsed.VendorName)
	assert.Equal(t, "Acme Corp", *repo.parsed.VendorName)
	require.NotNil(t, repo.parsed.TotalAmount)
	assert.InDelta(t, 1234.56, *repo.parsed.TotalAmount, 0.001)
	require.NotNil(t, repo.parsed.CurrencyCode)
	assert.Equal(t, "USD", *repo.parsed.CurrencyCode)
	require.NotNil(t, repo.parsed.InvoiceDate)
	assert.Equal(t, "2023-05-04", repo.parsed.InvoiceDate.Format("2006-01-02"))

	var diag parse.Diagnostics
	require.NoError(t, json.Unmarshal(repo.parsed.ParsedDataDetail, &diag))
	assert.Len(t, diag.SummaryFieldsDetected, 3)

	assert.Equal(t, constants.StatusProcessing, repo.statuses[0])
	assert.Equal(t, constants.StatusProcessed, repo.statuses[len(repo.statuses)-1])
}

func TestProcessInvoiceNothingUsable(t *testing.T) {
	repo := &fakeRepo{invoice: uploadedInvoice()}
	analyzer := &fakeAnalyzer{status: textract.JobStatusSucceeded}

	err := newTestProcessor(repo, analyzer).ProcessInvoice(context.Background(), repo.invoice.ID)
	require.NoError(t, err)

	require.NotNil(t, repo.parsed)
	assert.Equal(t, constants.StatusParsingFailed, repo.parsed.Status)
	assert.Nil(t, repo.parsed.VendorName)
}

func TestProcessInvoiceSubmissionFailure(t *testing.T) {
	repo := &fakeRepo{invoice: uploadedInvoice()}
	analyzer := &fakeAnalyzer{startErr: errors.New("throttled")}

	err := newTestProcessor(repo, analyzer).ProcessInvoice(context.Background(), repo.invoice.ID)
	require.Error(t, err)

	assert.Equal(t, constants.StatusTextractSubmitFail, repo.statuses[len(repo.statuses)-1])
	assert.Nil(t, repo.parsed)
}

func TestProcessInvoiceAnalysisFailed(t *testing.T) {
	repo := &fakeRepo{invoice: uploadedInvoice()}
	analyzer := &fakeAnalyzer{status: textract.JobStatusFailed}

	err := newTestProcessor(repo, analyzer).ProcessInvoice(context.Background(), repo.invoice.ID)
	require.Error(t, err)

	assert.Equal(t, constants.StatusTextractFailed, repo.statuses[len(repo.statuses)-1])
}

func TestProcessInvoiceMissingDocument(t *testing.T) {
	inv := uploadedInvoice()
	inv.S3Key = nil
	repo := &fakeRepo{invoice: inv}

	err := newTestProcessor(repo, &fakeAnalyzer{}).ProcessInvoice(context.Background(), inv.ID)
	require.Error(t, err)

	assert.Equal(t, constants.StatusS3UploadFailed, repo.statuses[len(repo.statuses)-1])
}
