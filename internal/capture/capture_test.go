package capture

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/spec-kit/launch-watch/internal/api/dto"
	"github.com/spec-kit/launch-watch/internal/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var fixedNow = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func TestFormFromValues(t *testing.T) {
	values := url.Values{
		"fullName": {"Test User"},
		"email":    {"test@example.com"},
		"phone":    {"1234567890"},
		"role":     {"investor"},
		"terms":    {"on"},
	}

	form := FormFromValues(values)
	assert.Equal(t, Form{FullName: "Test User", Email: "test@example.com", Phone: "1234567890", Role: "investor", Terms: true}, form)

	assert.Equal(t, domain.Lead{
		Timestamp:     "2024-01-01T00:00:00.000Z",
		FullName:      "Test User",
		Email:         "test@example.com",
		Phone:         "1234567890",
		Role:          "investor",
		TermsAccepted: "Yes",
	}, form.Lead(fixedNow))
}

func TestFormUncheckedTermsIsNo(t *testing.T) {
	lead := FormFromValues(url.Values{}).Lead(fixedNow)

	assert.Equal(t, domain.Row{"2024-01-01T00:00:00.000Z", "", "", "", "", "No"}, lead.Row())
}

type capturedRequest struct {
	method      string
	contentType string
	body        dto.LeadRequest
}

func newEndpoint(t *testing.T, status int, reply string) (*httptest.Server, func() []capturedRequest) {
	t.Helper()
	var mu sync.Mutex
	var got []capturedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_, _ = io.WriteString(w, dto.ProbeMessage)
			return
		}
		var body dto.LeadRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		mu.Lock()
		got = append(got, capturedRequest{method: r.Method, contentType: r.Header.Get("Content-Type"), body: body})
		mu.Unlock()
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return srv, func() []capturedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]capturedRequest(nil), got...)
	}
}

func TestClientSubmitDelivered(t *testing.T) {
	srv, got := newEndpoint(t, http.StatusOK, `{"status":"success","message":"Lead saved successfully"}`)
	client := NewClient(ClientConfig{EndpointURL: srv.URL, HTTPClient: srv.Client(), RequestTimeout: time.Second})

	lead := Form{FullName: "Test User", Terms: true}.Lead(fixedNow)
	result := client.Submit(context.Background(), lead)

	require.NoError(t, result.Err)
	assert.Equal(t, OutcomeDelivered, result.Outcome)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	require.NotNil(t, result.Response)
	assert.Equal(t, dto.MessageLeadSaved, result.Response.Message)

	requests := got()
	require.Len(t, requests, 1)
	req := requests[0]
	assert.Equal(t, http.MethodPost, req.method)
	assert.Equal(t, "application/json", req.contentType)
	assert.Equal(t, dto.LeadRequest{Timestamp: "2024-01-01T00:00:00.000Z", FullName: "Test User", Terms: "Yes"}, req.body)
}

func TestClientSubmitRejectedOnErrorEnvelope(t *testing.T) {
	// Apps-Script style endpoints answer 200 even when the append failed.
	srv, _ := newEndpoint(t, http.StatusOK, `{"status":"error","message":"sheet not found"}`)
	client := NewClient(ClientConfig{EndpointURL: srv.URL, HTTPClient: srv.Client()})

	result := client.Submit(context.Background(), domain.Lead{})

	assert.Equal(t, OutcomeRejected, result.Outcome)
	assert.ErrorContains(t, result.Err, "sheet not found")
	assert.False(t, result.OK())
}

func TestClientSubmitRejectedOnHTTPError(t *testing.T) {
	srv, _ := newEndpoint(t, http.StatusInternalServerError, `oops`)
	client := NewClient(ClientConfig{EndpointURL: srv.URL, HTTPClient: srv.Client()})

	result := client.Submit(context.Background(), domain.Lead{})

	assert.Equal(t, OutcomeRejected, result.Outcome)
	assert.Nil(t, result.Response)
	assert.Equal(t, http.StatusInternalServerError, result.StatusCode)
}

func TestClientSubmitDeliveredWithoutJSONBody(t *testing.T) {
	srv, _ := newEndpoint(t, http.StatusOK, `<html>ok</html>`)
	client := NewClient(ClientConfig{EndpointURL: srv.URL, HTTPClient: srv.Client()})

	assert.Equal(t, OutcomeDelivered, client.Submit(context.Background(), domain.Lead{}).Outcome)
}

func TestClientSubmitFailedOnTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	httpClient := srv.Client()
	srv.Close()

	client := NewClient(ClientConfig{EndpointURL: endpoint, HTTPClient: httpClient})
	result := client.Submit(context.Background(), domain.Lead{})

	assert.Equal(t, OutcomeFailed, result.Outcome)
	assert.Error(t, result.Err)
}

func TestClientUnconfiguredSimulatesWithoutIO(t *testing.T) {
	for _, endpoint := range []string{"", "   ", PlaceholderEndpoint} {
		client := NewClient(ClientConfig{EndpointURL: endpoint, FallbackDelay: 20 * time.Millisecond})
		assert.False(t, client.Configured())

		start := time.Now()
		result := client.Submit(context.Background(), domain.Lead{})

		assert.Equal(t, OutcomeSimulated, result.Outcome)
		assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	}
}

func TestClientUnconfiguredHonoursCancel(t *testing.T) {
	client := NewClient(ClientConfig{FallbackDelay: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := client.Submit(ctx, domain.Lead{})

	assert.Equal(t, OutcomeFailed, result.Outcome)
	assert.ErrorIs(t, result.Err, context.Canceled)
}

func TestClientProbe(t *testing.T) {
	srv, got := newEndpoint(t, http.StatusOK, "")
	client := NewClient(ClientConfig{EndpointURL: srv.URL, HTTPClient: srv.Client()})

	text, err := client.Probe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dto.ProbeMessage, text)
	assert.Empty(t, got())

	_, err = NewClient(ClientConfig{}).Probe(context.Background())
	assert.Error(t, err)
}

type stubSubmitter struct {
	result  Result
	release chan struct{}
	calls   atomic.Int64
	leads   chan domain.Lead
}

func (s *stubSubmitter) Submit(ctx context.Context, lead domain.Lead) Result {
	s.calls.Add(1)
	if s.leads != nil {
		s.leads <- lead
	}
	if s.release != nil {
		<-s.release
	}
	return s.result
}

func TestControllerAlwaysSucceedMasksFailures(t *testing.T) {
	for _, outcome := range []Outcome{OutcomeDelivered, OutcomeSimulated, OutcomeRejected, OutcomeFailed} {
		c := NewController(&stubSubmitter{result: Result{Outcome: outcome}}, WithClock(clock))

		fb := c.Submit(context.Background(), Form{FullName: "x"})

		assert.Equal(t, Notification{Kind: NotificationSuccess, Message: MessageSubscribed}, fb.Notification, outcome.String())
		assert.True(t, fb.ResetForm)
		assert.Equal(t, outcome, fb.Result.Outcome)
	}
}

func TestControllerReportFailures(t *testing.T) {
	ok := NewController(&stubSubmitter{result: Result{Outcome: OutcomeDelivered}}, WithPolicy(PolicyReportFailures))
	fb := ok.Submit(context.Background(), Form{})
	assert.Equal(t, NotificationSuccess, fb.Notification.Kind)
	assert.True(t, fb.ResetForm)

	for _, outcome := range []Outcome{OutcomeRejected, OutcomeFailed} {
		c := NewController(&stubSubmitter{result: Result{Outcome: outcome}}, WithPolicy(PolicyReportFailures))
		fb := c.Submit(context.Background(), Form{FullName: "keep me"})
		assert.Equal(t, Notification{Kind: NotificationError, Message: MessageSubscribeFailed}, fb.Notification)
		assert.False(t, fb.ResetForm)
	}
}

func TestControllerButtonBusyWhileInFlight(t *testing.T) {
	stub := &stubSubmitter{
		result:  Result{Outcome: OutcomeDelivered},
		release: make(chan struct{}),
		leads:   make(chan domain.Lead, 2),
	}
	c := NewController(stub, WithClock(clock))
	assert.Equal(t, Button{Label: LabelIdle}, c.Button())

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Submit(context.Background(), Form{FullName: "dup"})
		}()
	}
	<-stub.leads
	<-stub.leads

	assert.Equal(t, Button{Label: LabelBusy, Disabled: true}, c.Button())
	assert.EqualValues(t, 2, stub.calls.Load(), "no submission lock")

	close(stub.release)
	wg.Wait()
	assert.Equal(t, Button{Label: LabelIdle}, c.Button())
}

func TestControllerUnconfiguredResolvesToSuccessWithinDelay(t *testing.T) {
	delay := 30 * time.Millisecond
	c := NewController(NewClient(ClientConfig{FallbackDelay: delay}), WithClock(clock))

	start := time.Now()
	fb := c.Submit(context.Background(), Form{FullName: "Demo", Email: "demo@example.com"})
	elapsed := time.Since(start)

	assert.Equal(t, MessageSubscribed, fb.Notification.Message)
	assert.True(t, fb.ResetForm)
	assert.Equal(t, OutcomeSimulated, fb.Result.Outcome)
	assert.GreaterOrEqual(t, elapsed, delay)
	assert.Less(t, elapsed, delay+time.Second)
}

func TestControllerSubmitContact(t *testing.T) {
	c := NewController(&stubSubmitter{}, WithContactDelay(5*time.Millisecond))

	fb := c.SubmitContact(context.Background())
	assert.Equal(t, Notification{Kind: NotificationSuccess, Message: MessageContactReceived}, fb.Notification)
	assert.True(t, fb.ResetForm)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fb = NewController(&stubSubmitter{}, WithContactDelay(time.Hour)).SubmitContact(ctx)
	assert.Equal(t, NotificationError, fb.Notification.Kind)
}

func TestWait(t *testing.T) {
	assert.NoError(t, Wait(context.Background(), 0))
	assert.NoError(t, Wait(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Wait(ctx, 0), context.Canceled)
}
