package contact

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"shuttersbysenators.com/web/internal/observability"
)

// Submission is an accepted form.
type Submission struct {
	ID          string
	Kind        Kind
	Contact     *ContactForm
	Quote       *QuoteRequest
	SubmittedAt time.Time
}

// Submitter accepts validated forms.
type Submitter interface {
	SubmitContact(ctx context.Context, form ContactForm) (Submission, error)
	SubmitQuote(ctx context.Context, req QuoteRequest) (Submission, error)
}

// OutboxDeps configures an Outbox. Every field is optional.
type OutboxDeps struct {
	Clock       func() time.Time
	IDGenerator func() string
	Logger      *zap.Logger
	Capacity    int
}

const defaultOutboxCapacity = 500

// Outbox is an in-memory Submitter keeping the most recent submissions.
type Outbox struct {
	mu       sync.Mutex
	items    []Submission
	capacity int
	clock    func() time.Time
	newID    func() string
	logger   *zap.Logger
}

var _ Submitter = (*Outbox)(nil)

// NewOutbox wires deps into an Outbox.
func NewOutbox(deps OutboxDeps) *Outbox {
	o := &Outbox{
		capacity: deps.Capacity,
		clock:    deps.Clock,
		newID:    deps.IDGenerator,
		logger:   deps.Logger,
	}
	if o.capacity <= 0 {
		o.capacity = defaultOutboxCapacity
	}
	if o.clock == nil {
		o.clock = time.Now
	}
	if o.newID == nil {
		o.newID = func() string { return ulid.Make().String() }
	}
	return o
}

// SubmitContact normalizes, validates and stores form.
func (o *Outbox) SubmitContact(ctx context.Context, form ContactForm) (Submission, error) {
	form = form.Normalize()
	if err := form.Validate(); err != nil {
		return Submission{}, err
	}
	return o.store(ctx, Submission{Kind: KindContact, Contact: &form})
}

// SubmitQuote normalizes, validates and stores req.
func (o *Outbox) SubmitQuote(ctx context.Context, req QuoteRequest) (Submission, error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return Submission{}, err
	}
	return o.store(ctx, Submission{Kind: KindQuote, Quote: &req})
}

func (o *Outbox) store(ctx context.Context, s Submission) (Submission, error) {
	if err := ctx.Err(); err != nil {
		return Submission{}, err
	}
	o.mu.Lock()
	s.ID = o.newID()
	s.SubmittedAt = o.clock().UTC()
	if len(o.items) == o.capacity {
		o.items = append(o.items[:0], o.items[1:]...)
	}
	o.items = append(o.items, s)
	o.mu.Unlock()

	o.log(ctx).Info("form submitted",
		zap.String("submission_id", s.ID),
		zap.String("kind", string(s.Kind)),
	)
	return s, nil
}

func (o *Outbox) log(ctx context.Context) *zap.Logger {
	if o.logger != nil {
		return o.logger
	}
	return observability.FromContext(ctx)
}

// ErrSubmissionNotFound is returned by Get for unknown ids.
var ErrSubmissionNotFound = errors.New("contact: submission not found")

// Get returns the submission with id.
func (o *Outbox) Get(id string) (Submission, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, s := range o.items {
		if s.ID == id {
			return s, nil
		}
	}
	return Submission{}, ErrSubmissionNotFound
}

// Submissions returns stored submissions, oldest first.
func (o *Outbox) Submissions() []Submission {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]Submission(nil), o.items...)
}
