package capture

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Messages shown to visitors.
const (
	MessageSubscribed      = "Successfully subscribed to NCR Launch Watch!"
	MessageSubscribeFailed = "We couldn't save your details. Please try again."
	MessageContactReceived = "Thank you for your message. We'll get back to you soon!"
)

// Submit button labels.
const (
	LabelIdle = "Subscribe"
	LabelBusy = "Subscribing..."
)

// Policy decides what a visitor sees when a submission is not delivered.
type Policy int

const (
	// PolicyAlwaysSucceed shows success and resets the form whatever the outcome.
	PolicyAlwaysSucceed Policy = iota
	// PolicyReportFailures shows an error and keeps the form values on rejected or failed results.
	PolicyReportFailures
)

// NotificationKind styles a notification.
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification is the toast shown after a submission.
type Notification struct {
	Kind    NotificationKind
	Message string
}

// Feedback is what the page should do once a submission settles.
type Feedback struct {
	Notification Notification
	ResetForm    bool
	Result       Result
}

// Button is the state of the submit control.
type Button struct {
	Label    string
	Disabled bool
}

// Controller applies the UX policy around a Submitter. It holds no submission lock: concurrent and
// duplicate submissions all go through.
type Controller struct {
	submitter    Submitter
	policy       Policy
	contactDelay time.Duration
	now          func() time.Time
	logger       *zap.Logger
	inFlight     atomic.Int64
}

// ControllerOption customises a Controller.
type ControllerOption func(*Controller)

// WithPolicy sets the failure policy.
func WithPolicy(p Policy) ControllerOption {
	return func(c *Controller) { c.policy = p }
}

// WithContactDelay sets the simulated contact form delay.
func WithContactDelay(d time.Duration) ControllerOption {
	return func(c *Controller) { c.contactDelay = d }
}

// WithClock overrides time.Now for lead timestamps.
func WithClock(now func() time.Time) ControllerOption {
	return func(c *Controller) { c.now = now }
}

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) ControllerOption {
	return func(c *Controller) { c.logger = l }
}

// NewController builds a controller with PolicyAlwaysSucceed by default.
func NewController(submitter Submitter, opts ...ControllerOption) *Controller {
	c := &Controller{
		submitter:    submitter,
		policy:       PolicyAlwaysSucceed,
		contactDelay: DefaultFallbackDelay,
		now:          time.Now,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Button reports the submit control state.
func (c *Controller) Button() Button {
	if c.inFlight.Load() > 0 {
		return Button{Label: LabelBusy, Disabled: true}
	}
	return Button{Label: LabelIdle}
}

// Submit turns form into a lead, submits it and maps the result through the policy.
func (c *Controller) Submit(ctx context.Context, form Form) Feedback {
	c.inFlight.Add(1)
	defer c.inFlight.Add(-1)

	lead := form.Lead(c.now())
	result := c.submitter.Submit(ctx, lead)
	c.logger.Info("lead submission settled",
		zap.String("outcome", result.Outcome.String()),
		zap.Int("status", result.StatusCode),
		zap.Error(result.Err))

	if result.OK() || c.policy == PolicyAlwaysSucceed {
		return Feedback{
			Notification: Notification{Kind: NotificationSuccess, Message: MessageSubscribed},
			ResetForm:    true,
			Result:       result,
		}
	}
	return Feedback{
		Notification: Notification{Kind: NotificationError, Message: MessageSubscribeFailed},
		ResetForm:    false,
		Result:       result,
	}
}

// SubmitContact simulates the contact form: nothing is sent anywhere.
func (c *Controller) SubmitContact(ctx context.Context) Feedback {
	c.inFlight.Add(1)
	defer c.inFlight.Add(-1)

	if err := Wait(ctx, c.contactDelay); err != nil {
		return Feedback{
			Notification: Notification{Kind: NotificationError, Message: MessageSubscribeFailed},
			Result:       Result{Outcome: OutcomeFailed, Err: err},
		}
	}
	return Feedback{
		Notification: Notification{Kind: NotificationSuccess, Message: MessageContactReceived},
		ResetForm:    true,
		Result:       Result{Outcome: OutcomeSimulated},
	}
}
