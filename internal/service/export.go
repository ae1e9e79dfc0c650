package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kingrain94/tenant-items-api/internal/tenant"
)

// ExportQueue hands export requests to the export worker.
type ExportQueue interface {
	SendExportMessage(ctx context.Context, schema, exportID string, requestedBy int64) error
}

type ExportService struct {
	queue ExportQueue
}

func NewExportService(queue ExportQueue) *ExportService {
	return &ExportService{queue: queue}
}

// Request enqueues a snapshot of the request tenant's items and returns the export id.
func (s *ExportService) Request(ctx context.Context, requestedBy int64) (string, error) {
	schema := requestSchema(ctx)
	if schema == "" {
		return "", tenant.ErrEmptySchema
	}

	exportID := uuid.NewString()
	if err := s.queue.SendExportMessage(ctx, schema, exportID, requestedBy); err != nil {
		return "", fmt.Errorf("failed to enqueue export: %w", err)
	}
	return exportID, nil
}
