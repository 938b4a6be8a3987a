package async

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Job is one invoice handed to the background pipeline.
type Job struct {
	InvoiceID   uuid.UUID
	SubmittedAt time.Time
	TraceID     string
}

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context)
}
