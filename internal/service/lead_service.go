package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/launch-watch/internal/domain"
	"github.com/spec-kit/launch-watch/internal/events"
	"github.com/spec-kit/launch-watch/internal/observability"
	"github.com/spec-kit/launch-watch/internal/repository"
	apperrors "github.com/spec-kit/launch-watch/pkg/util/errorutil"
)

// LeadService appends lead records to the configured sheet.
type LeadService struct {
	sheet      repository.LeadSheet
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	now        func() time.Time
}

// LeadDependencies encapsulates collaborators for the lead service.
type LeadDependencies struct {
	Sheet      repository.LeadSheet
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
	Clock      func() time.Time
}

// NewLeadService builds the service.
func NewLeadService(deps LeadDependencies) *LeadService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &LeadService{
		sheet:      deps.Sheet,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
		now:        clock,
	}
}

// Append normalises lead and writes it as one row. Event delivery problems are logged and never
// turn a stored row into a failure.
func (s *LeadService) Append(ctx context.Context, lead domain.Lead) (domain.Lead, error) {
	now := s.now()
	normalized := domain.NormalizeLead(lead, now)

	if err := s.sheet.Append(ctx, normalized.Row()); err != nil {
		s.logger.Error("append lead failed", zap.String("sheet", s.sheet.Name()), zap.Error(err))
		return domain.Lead{}, apperrors.NewStoreError(err)
	}
	s.metrics.RecordLeadAppended(s.sheet.Name())

	if s.dispatcher != nil {
		if err := s.dispatcher.Publish(ctx, events.NewLeadAppended(s.sheet.Name(), normalized, now)); err != nil {
			s.logger.Warn("publish lead event failed", zap.Error(err))
		}
	}
	return normalized, nil
}

// Count returns the number of rows in the sheet.
func (s *LeadService) Count(ctx context.Context) (int64, error) {
	n, err := s.sheet.Count(ctx)
	if err != nil {
		return 0, apperrors.NewStoreError(err)
	}
	return n, nil
}

// SheetName reports which sheet the service writes to.
func (s *LeadService) SheetName() string {
	return s.sheet.Name()
}

// Ping checks the sheet backend.
func (s *LeadService) Ping(ctx context.Context) error {
	return s.sheet.Ping(ctx)
}
