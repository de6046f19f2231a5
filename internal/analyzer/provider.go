package analyzer

import (
	"context"

	"github.com/Bahjat/aeo-audit/internal/model"
)

// AuditProvider defines the contract for any audit engine.
type AuditProvider interface {
	Audit(ctx context.Context, targetURL string) (*model.AuditReport, error)
}
