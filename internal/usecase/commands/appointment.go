package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/patas-felizes/grooming-api/internal/domain/appointment"
	"github.com/patas-felizes/grooming-api/internal/domain/subscription"
	"github.com/patas-felizes/grooming-api/internal/pkg/clock"
	"github.com/patas-felizes/grooming-api/internal/pkg/errs"
	"github.com/patas-felizes/grooming-api/internal/pkg/patch"
	"github.com/patas-felizes/grooming-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrAppointmentNotFound  = errs.New("appointment not found")
	ErrSubscriptionNotFound = errs.New("subscription not found")
	ErrServiceNotFound      = errs.New("service not found")
	ErrCreditsExhausted     = errs.New("no credits remaining")
	ErrInvalidRecurrence    = errs.New("recurrence weeks must be positive")
)

type CreateAppointmentRequest struct {
	LocationID         uuid.UUID
	ClientID           *uuid.UUID
	PetID              *uuid.UUID
	PetNames           []string
	Date               time.Time
	StartMinutes       int
	DurationMinutes    int // 0 derives from services
	ServiceIDs         []uuid.UUID
	DiscountOffCents   *int64
	DiscountPercentOff *float64
	SubscriptionID     *uuid.UUID
	Notes              string
}

// ConflictWarning names the overlapping booking so a human can confirm
// the override. It never blocks the write.
type ConflictWarning struct {
	AppointmentID   uuid.UUID
	PetName         string
	StartMinutes    int
	DurationMinutes int
}

type CreateResult struct {
	AppointmentID uuid.UUID
	TotalCents    int64
	Conflict      *ConflictWarning
}

type IterationFailure struct {
	Week    int
	Date    time.Time
	Message string
}

type CreatedAppointment struct {
	AppointmentID uuid.UUID
	Date          time.Time
	Conflict      *ConflictWarning
}

// BatchResult reports "K of N created": iteration failures never roll
// back the weeks that already succeeded.
type BatchResult struct {
	RequestedWeeks int
	PlannedWeeks   int
	Created        []CreatedAppointment
	Failures       []IterationFailure
}

type UpdateAppointmentRequest struct {
	Date               *time.Time
	StartMinutes       *int
	DurationMinutes    *int
	PetNames           []string
	ServiceIDs         []uuid.UUID
	DiscountOffCents   *int64
	DiscountPercentOff *float64
	ClearDiscount      bool
	Notes              *string
}

type AppointmentCommands interface {
	Create(ctx context.Context, req CreateAppointmentRequest) (*CreateResult, error)
	CreateRecurring(ctx context.Context, req CreateAppointmentRequest, weeks int) (*BatchResult, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateAppointmentRequest) (*CreateResult, error)
	Delete(ctx context.Context, id uuid.UUID) (refundedCredit bool, err error)
}

type appointmentCommandsImpl struct {
	uow       shared.UnitOfWork
	publisher shared.EventPublisher
	clock     clock.Clock
}

func NewAppointmentCommands(uow shared.UnitOfWork, publisher shared.EventPublisher, clk clock.Clock) AppointmentCommands {
	return &appointmentCommandsImpl{uow: uow, publisher: publisher, clock: clk}
}

func (uc *appointmentCommandsImpl) Create(ctx context.Context, req CreateAppointmentRequest) (*CreateResult, error) {
	services, err := uc.resolveServices(ctx, req.ServiceIDs)
	if err != nil {
		return nil, err
	}

	agg, err := uc.buildAppointment(req, services, req.Date)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	var warning *ConflictWarning
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		warning, err = findConflict(ctx, tx, agg)
		if err != nil {
			return err
		}
		if err := tx.Appointments().Create(ctx, tx.DB(), agg); err != nil {
			return err
		}
		if req.SubscriptionID != nil {
			if cerr := tx.Subscriptions().ConsumeCredit(ctx, tx.DB(), *req.SubscriptionID); cerr != nil {
				return markCreditErr(cerr)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, shared.EventAppointmentCreated, agg.ID(), agg.LocationID())

	return &CreateResult{
		AppointmentID: agg.ID(),
		TotalCents:    agg.TotalCents(),
		Conflict:      warning,
	}, nil
}

// CreateRecurring expands a weekly repeat into at most `weeks`
// appointments. For subscription-backed requests the count is clamped
// to the remaining credits once, up front; the clamp is a soft bound
// and is deliberately not re-validated per iteration.
func (uc *appointmentCommandsImpl) CreateRecurring(ctx context.Context, req CreateAppointmentRequest, weeks int) (*BatchResult, error) {
	if weeks <= 0 {
		return nil, ErrInvalidRecurrence
	}

	services, err := uc.resolveServices(ctx, req.ServiceIDs)
	if err != nil {
		return nil, err
	}

	planned := weeks
	if req.SubscriptionID != nil {
		snap, err := uc.uow.CommandReads().SubscriptionByID(ctx, *req.SubscriptionID)
		if err != nil {
			return nil, errs.Mark(err, ErrSubscriptionNotFound)
		}
		remaining := snap.TotalCredits - snap.UsedCredits
		if remaining < planned {
			planned = remaining
		}
	}

	result := &BatchResult{RequestedWeeks: weeks, PlannedWeeks: planned}

	for week := 0; week < planned; week++ {
		date := req.Date.AddDate(0, 0, 7*week)

		agg, err := uc.buildAppointment(req, services, date)
		if err != nil {
			result.Failures = append(result.Failures, IterationFailure{Week: week + 1, Date: date, Message: err.Error()})
			continue
		}

		var warning *ConflictWarning
		err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			warning, err = findConflict(ctx, tx, agg)
			if err != nil {
				return err
			}
			if err := tx.Appointments().Create(ctx, tx.DB(), agg); err != nil {
				return err
			}
			if req.SubscriptionID != nil {
				if cerr := tx.Subscriptions().ConsumeCredit(ctx, tx.DB(), *req.SubscriptionID); cerr != nil {
					return markCreditErr(cerr)
				}
			}
			return nil
		})
		if err != nil {
			result.Failures = append(result.Failures, IterationFailure{Week: week + 1, Date: date, Message: err.Error()})
			if errors.Is(err, ErrCreditsExhausted) {
				// A concurrent consumer drained the grant after the
				// upfront clamp; stop generating further weeks.
				break
			}
			continue
		}

		result.Created = append(result.Created, CreatedAppointment{
			AppointmentID: agg.ID(),
			Date:          date,
			Conflict:      warning,
		})
		uc.publish(ctx, shared.EventAppointmentCreated, agg.ID(), agg.LocationID())
	}

	return result, nil
}

func (uc *appointmentCommandsImpl) Update(ctx context.Context, id uuid.UUID, req UpdateAppointmentRequest) (*CreateResult, error) {
	var services []appointment.ServiceLine
	if req.ServiceIDs != nil {
		var err error
		services, err = uc.resolveServices(ctx, req.ServiceIDs)
		if err != nil {
			return nil, err
		}
	}

	var (
		agg     *appointment.Appointment
		warning *ConflictWarning
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().AppointmentByID(ctx, id)
		if err != nil {
			return errs.Mark(err, ErrAppointmentNotFound)
		}
		agg, err = reconstructAppointment(snap)
		if err != nil {
			return err
		}

		if req.Date != nil || req.StartMinutes != nil || req.DurationMinutes != nil {
			date := patch.Coalesce(req.Date, agg.Date())
			start := patch.Coalesce(req.StartMinutes, agg.StartMinutes())
			duration := patch.Coalesce(req.DurationMinutes, 0)
			if err := agg.Reschedule(date, start, duration); err != nil {
				return errs.Mark(err, errs.ErrDomainValidation)
			}
		}
		if len(req.PetNames) > 0 {
			if perr := agg.SetPetName(appointment.MergePetNames(req.PetNames)); perr != nil {
				return errs.Mark(perr, errs.ErrDomainValidation)
			}
		}
		if req.ServiceIDs != nil {
			agg.SetServices(services)
		}
		if req.ClearDiscount {
			agg.SetDiscount(nil)
		} else if d, derr := buildDiscount(req.DiscountOffCents, req.DiscountPercentOff); derr != nil {
			return errs.Mark(derr, errs.ErrDomainValidation)
		} else if d != nil {
			agg.SetDiscount(d)
		}
		if req.Notes != nil {
			agg.SetNotes(*req.Notes)
		}

		warning, err = findConflict(ctx, tx, agg)
		if err != nil {
			return err
		}
		return tx.Appointments().Update(ctx, tx.DB(), agg)
	})
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, shared.EventAppointmentUpdated, agg.ID(), agg.LocationID())

	return &CreateResult{
		AppointmentID: agg.ID(),
		TotalCents:    agg.TotalCents(),
		Conflict:      warning,
	}, nil
}

func (uc *appointmentCommandsImpl) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	refunded := false
	var locationID uuid.UUID

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().AppointmentByID(ctx, id)
		if err != nil {
			return errs.Mark(err, ErrAppointmentNotFound)
		}
		locationID = snap.LocationID

		if err := tx.Appointments().Delete(ctx, tx.DB(), id); err != nil {
			return err
		}
		if snap.SubscriptionID != nil {
			if err := tx.Subscriptions().RefundCredit(ctx, tx.DB(), *snap.SubscriptionID); err != nil {
				return err
			}
			refunded = true
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	uc.publish(ctx, shared.EventAppointmentDeleted, id, locationID)
	return refunded, nil
}

func (uc *appointmentCommandsImpl) buildAppointment(req CreateAppointmentRequest, services []appointment.ServiceLine, date time.Time) (*appointment.Appointment, error) {
	discount, err := buildDiscount(req.DiscountOffCents, req.DiscountPercentOff)
	if err != nil {
		return nil, err
	}

	// Several pets on one request share a single appointment with a
	// merged display name; the pet reference only survives for a
	// single-pet booking.
	petName := appointment.MergePetNames(req.PetNames)
	petID := req.PetID
	if len(req.PetNames) > 1 {
		petID = nil
	}

	return appointment.NewAppointment(appointment.NewAppointmentParams{
		LocationID:      req.LocationID,
		ClientID:        req.ClientID,
		PetID:           petID,
		PetName:         petName,
		Date:            date,
		StartMinutes:    req.StartMinutes,
		DurationMinutes: req.DurationMinutes,
		Services:        services,
		Discount:        discount,
		SubscriptionID:  req.SubscriptionID,
		Notes:           req.Notes,
	})
}

func (uc *appointmentCommandsImpl) resolveServices(ctx context.Context, ids []uuid.UUID) ([]appointment.ServiceLine, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	reads := uc.uow.CommandReads()
	lines := make([]appointment.ServiceLine, 0, len(ids))
	for _, id := range ids {
		snap, err := reads.ServiceByID(ctx, id)
		if err != nil {
			return nil, errs.Mark(err, ErrServiceNotFound)
		}
		lines = append(lines, appointment.ServiceLine{
			ServiceID:       snap.ID,
			Name:            snap.Name,
			PriceCents:      snap.PriceCents,
			DurationMinutes: snap.DurationMinutes,
		})
	}
	return lines, nil
}

func (uc *appointmentCommandsImpl) publish(ctx context.Context, eventType shared.EventType, subjectID, locationID uuid.UUID) {
	e := shared.Event{
		Type:       eventType,
		SubjectID:  subjectID,
		LocationID: locationID,
		OccurredAt: uc.clock.Now(),
	}
	if err := uc.publisher.Publish(ctx, e); err != nil {
		slog.Warn("event publish failed", "type", string(eventType), "subject_id", subjectID, "error", err.Error())
	}
}

func findConflict(ctx context.Context, tx shared.Tx, agg *appointment.Appointment) (*ConflictWarning, error) {
	slots, err := tx.Reads().SlotsByLocationAndDate(ctx, agg.LocationID(), agg.Date())
	if err != nil {
		return nil, err
	}
	hit := appointment.FindConflict(agg.Slot(), slots)
	if hit == nil {
		return nil, nil
	}
	return &ConflictWarning{
		AppointmentID:   hit.ID,
		PetName:         hit.PetName,
		StartMinutes:    hit.StartMinutes,
		DurationMinutes: hit.DurationMinutes,
	}, nil
}

func markCreditErr(err error) error {
	if errors.Is(err, subscription.ErrCreditsExhausted) {
		return errs.Mark(err, ErrCreditsExhausted)
	}
	return err
}
