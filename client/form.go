// Package client is the booking form: it checks a draft with the shared rules,
// posts it to the booking endpoint, reports the outcome and opens the
// pre-filled WhatsApp chat.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/rizfc/restaurant-site/deeplink"
	"github.com/rizfc/restaurant-site/models"
	"github.com/rizfc/restaurant-site/schema"
)

const (
	BookingsPath = "/api/bookings"

	SuccessTitle       = "Booking Request Sent!"
	SuccessDescription = "We have received your booking details."
	FailureTitle       = "Booking Failed"
	GenericFailure     = "Failed to create booking"
)

// ErrSubmitPending is returned when the form already has a request in flight.
var ErrSubmitPending = errors.New("a booking submission is already in progress")

// Notifier shows toast style notifications.
type Notifier interface {
	Success(title, description string)
	Failure(title, description string)
}

// Opener opens a URL in a new browsing context.
type Opener interface {
	Open(url string) error
}

// SubmitError is a failed submission as reported to the visitor.
type SubmitError struct {
	Status  int // 0 when no response arrived
	Message string
	Err     error
}

func (e *SubmitError) Error() string { return e.Message }

func (e *SubmitError) Unwrap() error { return e.Err }

type Form struct {
	BaseURL        string
	HTTPClient     *http.Client
	WhatsAppNumber string
	Notifier       Notifier
	Opener         Opener

	inFlight atomic.Bool
}

func NewForm(baseURL, whatsAppNumber string, n Notifier, o Opener) *Form {
	return &Form{
		BaseURL:        strings.TrimRight(baseURL, "/"),
		HTTPClient:     http.DefaultClient,
		WhatsAppNumber: whatsAppNumber,
		Notifier:       n,
		Opener:         o,
	}
}

// Pending reports whether a submission is in flight.
func (f *Form) Pending() bool {
	return f.inFlight.Load()
}

// Submit sends the draft once. An invalid draft returns a
// *schema.ValidationError without any request or notification. On success the
// visitor is notified and the booking chat link is opened exactly once.
func (f *Form) Submit(ctx context.Context, d schema.Draft) (*models.Booking, error) {
	if !f.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSubmitPending
	}
	defer f.inFlight.Store(false)

	d = schema.Normalize(d)
	if err := schema.Validate(d); err != nil {
		return nil, err
	}

	booking, err := f.post(ctx, d)
	if err != nil {
		f.Notifier.Failure(FailureTitle, err.Error())
		return nil, err
	}

	f.Notifier.Success(SuccessTitle, SuccessDescription)

	link := deeplink.BookingURL(f.WhatsAppNumber, d)
	if err := f.Opener.Open(link); err != nil {
		return booking, fmt.Errorf("open %s: %w", link, err)
	}
	return booking, nil
}

func (f *Form) post(ctx context.Context, d schema.Draft) (*models.Booking, error) {
	body, err := json.Marshal(d)
	if err != nil {
		return nil, &SubmitError{Message: GenericFailure, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.BaseURL+BookingsPath, bytes.NewReader(body))
	if err != nil {
		return nil, &SubmitError{Message: GenericFailure, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	httpClient := f.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, &SubmitError{Message: GenericFailure, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &SubmitError{Status: resp.StatusCode, Message: GenericFailure, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &SubmitError{Status: resp.StatusCode, Message: errorMessage(raw)}
	}

	var booking models.Booking
	if err := json.Unmarshal(raw, &booking); err != nil {
		return nil, &SubmitError{Status: resp.StatusCode, Message: GenericFailure, Err: err}
	}
	return &booking, nil
}

func errorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || strings.TrimSpace(body.Message) == "" {
		return GenericFailure
	}
	return body.Message
}
