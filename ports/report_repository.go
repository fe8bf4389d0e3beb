// Package ports declares the interfaces the application depends on; adapters
// provide the implementations.
package ports

import (
	"context"

	"driftscope/domain/core"
	"driftscope/domain/drift"
)

// ReportRepository persists drift reports for downstream consumers. The
// engine never requires persistence; this is the collaborator boundary.
type ReportRepository interface {
	Save(ctx context.Context, record *drift.ReportRecord) error
	GetByID(ctx context.Context, id core.ReportID) (*drift.ReportRecord, error)
	ListRecent(ctx context.Context, limit int) ([]*drift.ReportRecord, error)
}
