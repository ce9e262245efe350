// Package leads hands lead-capture payloads to an external submission
// handler. The ROI engine never depends on the outcome of a submission.
package leads

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iwvelando/roi-forecast/pkg/constants"
)

// ErrIncomplete is returned for payloads without a name or any contact channel.
var ErrIncomplete = errors.New("lead is incomplete")

// Contact holds the ways to reach a lead.
type Contact struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Payload is what the lead-capture form submits.
type Payload struct {
	Name    string  `json:"name"`
	Contact Contact `json:"contact"`
	Company string  `json:"company,omitempty"`
	Context string  `json:"context"` // free text: what the lead needs
	Preset  string  `json:"preset,omitempty"`
}

// Lead is an accepted payload with its identity.
type Lead struct {
	ID         uuid.UUID `json:"id"`
	ReceivedAt time.Time `json:"receivedAt"`
	Payload
}

// Submitter forwards leads to wherever they are handled.
type Submitter interface {
	Submit(ctx context.Context, lead Lead) error
}

// Accept trims the payload, checks that it can be followed up and assigns an
// ID. Field-level validation belongs to the form, not here.
func Accept(p Payload, now time.Time) (Lead, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Contact.Email = strings.TrimSpace(p.Contact.Email)
	p.Contact.Phone = strings.TrimSpace(p.Contact.Phone)
	p.Company = strings.TrimSpace(p.Company)
	p.Context = strings.TrimSpace(p.Context)

	if p.Name == "" {
		return Lead{}, fmt.Errorf("%w: name is required", ErrIncomplete)
	}
	if p.Contact.Email == "" && p.Contact.Phone == "" {
		return Lead{}, fmt.Errorf("%w: an email or phone number is required", ErrIncomplete)
	}
	return Lead{ID: uuid.New(), ReceivedAt: now.UTC(), Payload: p}, nil
}

// LogSubmitter records leads in the application log.
type LogSubmitter struct {
	logger *zap.Logger
}

// NewLogSubmitter creates a submitter that only logs.
func NewLogSubmitter(logger *zap.Logger) *LogSubmitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSubmitter{logger: logger}
}

// Submit implements Submitter.
func (s *LogSubmitter) Submit(_ context.Context, lead Lead) error {
	s.logger.Info("lead received",
		zap.String("op", "leads.LogSubmitter.Submit"),
		zap.String("id", lead.ID.String()),
		zap.String("name", lead.Name),
		zap.String("email", lead.Contact.Email),
		zap.String("company", lead.Company),
		zap.String("preset", lead.Preset),
	)
	return nil
}

// Options selects and configures a submitter.
type Options struct {
	Sink       string
	Path       string
	WebhookURL string
	Timeout    time.Duration
}

// Open builds the submitter named by opts.Sink. The returned close function
// releases any resources and is never nil.
func Open(logger *zap.Logger, opts Options) (Submitter, func() error, error) {
	noop := func() error { return nil }
	switch opts.Sink {
	case "", constants.LeadSinkLog:
		return NewLogSubmitter(logger), noop, nil
	case constants.LeadSinkSQLite:
		sink, err := OpenSQLite(opts.Path)
		if err != nil {
			return nil, noop, err
		}
		return sink, sink.Close, nil
	case constants.LeadSinkWebhook:
		hook, err := NewWebhookSubmitter(opts.WebhookURL, opts.Timeout)
		if err != nil {
			return nil, noop, err
		}
		return hook, noop, nil
	}
	return nil, noop, fmt.Errorf("unsupported lead sink %q", opts.Sink)
}
