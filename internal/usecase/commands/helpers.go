package commands

import (
	"github.com/patas-felizes/grooming-api/internal/domain/appointment"
	"github.com/patas-felizes/grooming-api/internal/usecase/shared"
)

func buildDiscount(offCents *int64, percentOff *float64) (*appointment.Discount, error) {
	switch {
	case offCents != nil:
		d, err := appointment.NewFixedDiscount(*offCents)
		if err != nil {
			return nil, err
		}
		return &d, nil
	case percentOff != nil:
		d, err := appointment.NewPercentageDiscount(*percentOff)
		if err != nil {
			return nil, err
		}
		return &d, nil
	default:
		return nil, nil
	}
}

func reconstructAppointment(snap *shared.AppointmentSnapshot) (*appointment.Appointment, error) {
	discount, err := buildDiscount(snap.DiscountOffCents, snap.DiscountPercentOff)
	if err != nil {
		return nil, err
	}

	var extra *appointment.ExtraCharge
	if snap.ExtraDescription != nil && snap.ExtraAmountCents != nil {
		var method *appointment.PaymentMethod
		if snap.ExtraMethod != nil {
			m := appointment.PaymentMethod(*snap.ExtraMethod)
			method = &m
		}
		e := appointment.ReconstructExtraCharge(*snap.ExtraDescription, *snap.ExtraAmountCents, snap.ExtraPaid, method)
		extra = &e
	}

	var method *appointment.PaymentMethod
	if snap.Method != nil {
		m := appointment.PaymentMethod(*snap.Method)
		method = &m
	}

	return appointment.Reconstruct(
		snap.ID, snap.LocationID,
		snap.ClientID, snap.PetID,
		snap.PetName,
		snap.Date,
		snap.StartMinutes, snap.DurationMinutes,
		snap.Services,
		extra,
		discount,
		snap.TotalCents,
		snap.Paid,
		method,
		snap.SubscriptionID,
		snap.Notes,
		snap.CreatedAt, snap.UpdatedAt,
	), nil
}
