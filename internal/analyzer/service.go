package analyzer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Bahjat/aeo-audit/internal/model"
	"github.com/Bahjat/aeo-audit/internal/platform/errs"
	"github.com/Bahjat/aeo-audit/internal/platform/metrics"
	"github.com/Bahjat/aeo-audit/internal/platform/requestid"
)

// Service runs audits through an AuditProvider, logging and recording
// the outcome of each.
type Service struct {
	provider AuditProvider
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// NewService creates a Service backed by the given provider. m may be nil.
func NewService(provider AuditProvider, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{provider: provider, logger: logger, metrics: m}
}

// Audit delegates to the provider and logs the outcome.
func (s *Service) Audit(ctx context.Context, targetURL string) (*model.AuditReport, error) {
	logger := s.logger.With("url", targetURL, "request_id", requestid.FromContext(ctx))
	start := time.Now()

	result, err := s.provider.Audit(ctx, targetURL)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = &errs.AppError{
				Kind:    errs.Timeout,
				Message: "Audit timed out. The target URL may be slow to respond.",
				Cause:   err,
			}
		}

		attrs := []any{"error", err}
		var appErr *errs.AppError
		if errors.As(err, &appErr) {
			attrs = append(attrs, "kind", appErr.Kind.String())
			if appErr.UpstreamStatus != 0 {
				attrs = append(attrs, "target_status", appErr.UpstreamStatus)
			}
		}
		logger.Error("audit failed", attrs...)
		s.record(outcome(err), start)
		return nil, err
	}

	s.record(metrics.OutcomeSuccess, start)
	logger.Info("audit complete",
		"report_id", result.ID,
		"global_score", result.GlobalScore,
		"fixes", len(result.Fixes),
		"quick_wins", len(result.QuickWins),
		"duration", time.Since(start).String(),
	)
	return result, nil
}

func (s *Service) record(outcome string, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.AuditsTotal.WithLabelValues(outcome).Inc()
	s.metrics.AuditDuration.Observe(time.Since(start).Seconds())
}

func outcome(err error) string {
	var appErr *errs.AppError
	if !errors.As(err, &appErr) {
		return metrics.OutcomeError
	}
	switch appErr.Kind {
	case errs.InvalidInput:
		return metrics.OutcomeInvalidInput
	case errs.Unreachable:
		return metrics.OutcomeUnreachable
	case errs.Timeout:
		return metrics.OutcomeTimeout
	default:
		return metrics.OutcomeError
	}
}
