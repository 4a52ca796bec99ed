// Package booking performs the slot reservation cycle: an atomic conditional
// state transition in storage followed by a best-effort confirmation email.
package booking

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/medibook/booking-api/internal/notify"
	"github.com/medibook/booking-api/internal/observability/metrics"
	"github.com/medibook/booking-api/internal/slots"
	"github.com/medibook/booking-api/pkg/logging"
)

var bookingTracer = otel.Tracer("medibook.internal.booking")

// SlotBooker is the slice of the slot store the orchestrator depends on.
type SlotBooker interface {
	Book(ctx context.Context, slotID int64) error
	GetDetails(ctx context.Context, slotID int64) (*slots.SlotDetail, error)
}

// Service books slots and notifies the user. The storage commit is
// authoritative; the email is advisory. A booking is never rolled back
// because its notification failed.
type Service struct {
	store   SlotBooker
	mailer  notify.EmailSender
	metrics *metrics.BookingMetrics
	logger  *logging.Logger
}

// NewService constructs a booking service. metrics may be nil.
func NewService(store SlotBooker, mailer notify.EmailSender, m *metrics.BookingMetrics, logger *logging.Logger) *Service {
	if store == nil {
		panic("booking: slot store required")
	}
	if mailer == nil {
		mailer = notify.NewStubEmailSender(logger)
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{store: store, mailer: mailer, metrics: m, logger: logger}
}

// Book reserves the slot and, on success, sends a confirmation to
// notifyAddress. The returned error is nil on success, slots.ErrAlreadyBooked
// or slots.ErrNotFound for normal negative outcomes, and wraps
// slots.ErrUnavailable on storage faults.
func (s *Service) Book(ctx context.Context, slotID int64, notifyAddress string) error {
	ctx, span := bookingTracer.Start(ctx, "booking.book",
		trace.WithAttributes(attribute.Int64("medibook.slot_id", slotID)))
	defer span.End()

	if err := s.store.Book(ctx, slotID); err != nil {
		span.RecordError(err)
		switch {
		case errors.Is(err, slots.ErrAlreadyBooked):
			s.metrics.ObserveBooking("conflict")
		case errors.Is(err, slots.ErrNotFound):
			s.metrics.ObserveBooking("not_found")
		default:
			s.metrics.ObserveBooking("error")
		}
		return err
	}

	s.metrics.ObserveBooking("confirmed")
	s.logger.Info("slot booked", "slot_id", slotID)

	if notifyAddress != "" {
		s.sendConfirmation(ctx, slotID, notifyAddress)
	}
	return nil
}

// sendConfirmation is best-effort: a failed detail lookup falls back to
// placeholder values and a failed send is only logged. The booking has
// already committed by the time this runs.
func (s *Service) sendConfirmation(ctx context.Context, slotID int64, to string) {
	detail, err := s.store.GetDetails(ctx, slotID)
	if err != nil {
		s.logger.Warn("failed to load slot details for confirmation", "error", err, "slot_id", slotID)
		detail = &slots.SlotDetail{
			Doctor:  "Doctor",
			Clinic:  "Clinic",
			Address: "Address not available",
		}
	}

	if err := s.mailer.Send(ctx, notify.ConfirmationEmail(to, detail)); err != nil {
		s.metrics.ObserveConfirmation("failed")
		s.logger.Warn("confirmation email failed", "error", err, "slot_id", slotID, "to", to)
		return
	}
	s.metrics.ObserveConfirmation("sent")
}
