package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/launch-watch/internal/domain"
	"github.com/spec-kit/launch-watch/internal/events"
	"github.com/spec-kit/launch-watch/internal/observability"
	"github.com/spec-kit/launch-watch/internal/repository"
	apperrors "github.com/spec-kit/launch-watch/pkg/util/errorutil"
)

var fixedNow = time.Date(2025, time.March, 4, 5, 6, 7, 890_000_000, time.UTC)

func newTestService(sheet repository.LeadSheet, d events.Dispatcher) *LeadService {
	return NewLeadService(LeadDependencies{
		Sheet:      sheet,
		Dispatcher: d,
		Metrics:    observability.NewMetrics("test"),
		Logger:     zap.NewNop(),
		Clock:      func() time.Time { return fixedNow },
	})
}

type failingSheet struct {
	*repository.MemorySheet
}

func (failingSheet) Append(ctx context.Context, row domain.Row) error {
	return errors.New("sheet locked")
}

func TestAppendFullPayloadKeepsValues(t *testing.T) {
	ctx := context.Background()
	sheet := repository.NewMemorySheet("Sheet1")
	svc := newTestService(sheet, nil)

	_, err := svc.Append(ctx, domain.Lead{
		Timestamp:     "2024-01-01T00:00:00.000Z",
		FullName:      "Test User",
		Email:         "test@example.com",
		Phone:         "1234567890",
		Role:          "investor",
		TermsAccepted: "Yes",
	})
	require.NoError(t, err)

	rows, err := sheet.Rows(ctx, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.Row{"2024-01-01T00:00:00.000Z", "Test User", "test@example.com", "1234567890", "investor", "Yes"}, rows[0])
}

func TestAppendEmptyPayloadUsesDefaults(t *testing.T) {
	ctx := context.Background()
	sheet := repository.NewMemorySheet("Sheet1")
	svc := newTestService(sheet, nil)

	got, err := svc.Append(ctx, domain.Lead{})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-04T05:06:07.890Z", got.Timestamp)

	rows, err := sheet.Rows(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.Row{"2025-03-04T05:06:07.890Z", "", "", "", "", "No"}, rows[0])
}

func TestAppendIsNotIdempotent(t *testing.T) {
	ctx := context.Background()
	sheet := repository.NewMemorySheet("Sheet1")
	svc := newTestService(sheet, nil)
	lead := domain.Lead{FullName: "Same", Email: "same@example.com"}

	_, err := svc.Append(ctx, lead)
	require.NoError(t, err)
	_, err = svc.Append(ctx, lead)
	require.NoError(t, err)

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestAppendStoreErrorIsDomainError(t *testing.T) {
	svc := newTestService(failingSheet{repository.NewMemorySheet("Sheet1")}, nil)

	_, err := svc.Append(context.Background(), domain.Lead{FullName: "x"})
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, apperrors.CodeStoreUnavailable, de.Code)
	assert.Contains(t, de.Diagnostic(), "sheet locked")
}

type recordingForwarder struct {
	events []events.Event
	accept bool
}

func (f *recordingForwarder) Enqueue(e events.Event) bool {
	f.events = append(f.events, e)
	return f.accept
}

func TestAppendPublishesEventThroughNotificationService(t *testing.T) {
	d := events.NewInMemoryDispatcher()
	fwd := &recordingForwarder{accept: true}
	NewNotificationService(d, zap.NewNop(), fwd).RegisterHandlers()

	svc := newTestService(repository.NewMemorySheet("Sheet1"), d)
	_, err := svc.Append(context.Background(), domain.Lead{FullName: "Event User"})
	require.NoError(t, err)

	require.Len(t, fwd.events, 1)
	e := fwd.events[0]
	assert.Equal(t, events.EventLeadAppended, e.Type)
	assert.Equal(t, "Sheet1", e.Sheet)
	assert.Equal(t, "Event User", e.Payload.(events.LeadAppendedPayload).FullName)
}

func TestAppendSucceedsWhenEventHandlerFails(t *testing.T) {
	d := events.NewInMemoryDispatcher()
	d.Subscribe(events.EventLeadAppended, func(ctx context.Context, e events.Event) error {
		return errors.New("handler failed")
	})
	sheet := repository.NewMemorySheet("Sheet1")
	svc := newTestService(sheet, d)

	_, err := svc.Append(context.Background(), domain.Lead{})
	require.NoError(t, err)

	n, err := sheet.Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestNotificationServiceWithoutForwarder(t *testing.T) {
	d := events.NewInMemoryDispatcher()
	NewNotificationService(d, zap.NewNop(), nil).RegisterHandlers()

	err := d.Publish(context.Background(), events.Event{Type: events.EventLeadAppended})
	assert.NoError(t, err)
}

func TestNotificationServiceDropsWhenQueueFull(t *testing.T) {
	d := events.NewInMemoryDispatcher()
	fwd := &recordingForwarder{accept: false}
	NewNotificationService(d, zap.NewNop(), fwd).RegisterHandlers()

	err := d.Publish(context.Background(), events.Event{Type: events.EventLeadAppended, ID: "x"})
	assert.NoError(t, err)
	assert.Len(t, fwd.events, 1)
}
