package invoices

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/invoice-insights/invoice-insights/constants"
	"github.com/invoice-insights/invoice-insights/internal/async"
	"github.com/invoice-insights/invoice-insights/internal/common"
	"github.com/invoice-insights/invoice-insights/internal/entity"
	"github.com/invoice-insights/invoice-insights/internal/repository"
	"github.com/invoice-insights/invoice-insights/internal/storage"
)

// Service owns the invoice lifecycle: ingestion, lookups, user edits, deletion.
// Parsing happens in the background; Upload returns as soon as the document is
// stored and queued.
type Service struct {
	repo   repository.InvoiceRepository
	store  *storage.ObjectStore
	queue  async.Queue
	logger *slog.Logger
}

func NewService(repo repository.InvoiceRepository, store *storage.ObjectStore, queue async.Queue, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, store: store, queue: queue, logger: logger}
}

// Upload registers the invoice, stores its document, and queues it for
// processing. The returned invoice is in status uploaded.
func (s *Service) Upload(ctx context.Context, filename string, body io.Reader) (*entity.Invoice, error) {
	if !constants.IsAllowedExt(filename) {
		return nil, common.InvalidInputErrorf("unsupported file type %q", filename)
	}

	inv, err := s.repo.Create(ctx, filename)
	if err != nil {
		return nil, err
	}

	key, err := s.store.Upload(ctx, inv.ID, filename, body)
	if err != nil {
		if uerr := s.repo.UpdateStatus(ctx, inv.ID, constants.StatusS3UploadFailed); uerr != nil {
			s.logger.Error("invoices.status_update_failed", "invoice_id", inv.ID, "error", uerr)
		}
		return nil, common.WrapError(err, "store document")
	}

	if err := s.repo.UpdateS3Details(ctx, inv.ID, s.store.Bucket(), key); err != nil {
		return nil, err
	}

	if err := s.queue.Enqueue(ctx, async.Job{
		InvoiceID:   inv.ID,
		SubmittedAt: time.Now().UTC(),
	}); err != nil {
		s.logger.Error("invoices.enqueue_failed", "invoice_id", inv.ID, "error", err)
	}

	s.logger.Info("invoices.uploaded",
		"invoice_id", inv.ID,
		"req_id", common.RequestIDFromContext(ctx))
	return s.repo.GetByID(ctx, inv.ID)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	return s.repo.GetByID(ctx, id)
}

// DocumentURL returns a presigned link for the invoice's stored document.
func (s *Service) DocumentURL(ctx context.Context, id uuid.UUID) (string, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if inv.S3Key == nil || *inv.S3Key == "" {
		return "", common.NotFoundError("invoice has no stored document")
	}
	return s.store.PresignGet(ctx, *inv.S3Key)
}

func (s *Service) List(ctx context.Context, filter entity.InvoiceFilter) ([]*entity.Invoice, error) {
	return s.repo.List(ctx, filter)
}

// UpdateFields applies user edits to the editable columns. Currency codes and
// categories are validated before anything reaches the database.
func (s *Service) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*entity.Invoice, error) {
	v := common.NewValidator()
	if val, ok := fields["vendor_name"].(string); ok {
		v.Field("vendor_name", val, common.Required, common.MaxLen(255))
	}
	if val, ok := fields["invoice_id"].(string); ok {
		v.Field("invoice_id", val, common.MaxLen(100))
	}
	if val, ok := fields["currency_code"].(string); ok {
		v.Field("currency_code", val, common.CurrencyCode)
	}
	if err := v.Error(); err != nil {
		return nil, err
	}
	if v, ok := fields["user_category"].(string); ok && v != "" {
		cat, known := constants.Canonicalize(v)
		if !known {
			return nil, common.InvalidInputErrorf("unknown category %q", v)
		}
		fields["user_category"] = string(cat)
	}
	for _, dateField := range []string{"invoice_date", "due_date"} {
		if v, ok := fields[dateField].(string); ok {
			t, err := time.Parse("2006-01-02", v)
			if err != nil {
				return nil, common.InvalidInputErrorf("%s must be YYYY-MM-DD", dateField)
			}
			fields[dateField] = t
		}
	}
	return s.repo.UpdateFields(ctx, id, fields)
}

// Reprocess re-queues a stored invoice through the parsing pipeline.
func (s *Service) Reprocess(ctx context.Context, id uuid.UUID) error {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if inv.S3Key == nil || *inv.S3Key == "" {
		return common.InvalidInputError("invoice has no stored document to reprocess")
	}
	return s.queue.Enqueue(ctx, async.Job{
		InvoiceID:   id,
		SubmittedAt: time.Now().UTC(),
	})
}

// Delete removes the stored document first, then the row. A failed S3 delete
// aborts so the object is never orphaned silently.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if inv.S3Key != nil && *inv.S3Key != "" {
		if err := s.store.Delete(ctx, *inv.S3Key); err != nil {
			return fmt.Errorf("delete stored document: %w", err)
		}
	}
	return s.repo.Delete(ctx, id)
}
