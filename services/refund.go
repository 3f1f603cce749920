package services

import (
	"fmt"
	"math"
	"time"

	"lashbook-backend/utils"
)

// Cancellations qualify for an automatic refund only this many hours
// before the appointment.
const RefundCutoffHours = 48

type RefundEligibility struct {
	Eligible              bool   `json:"eligible"`
	HoursUntilAppointment int    `json:"hoursUntilAppointment"`
	Reason                string `json:"reason,omitempty"`
}

// CheckRefundEligibility combines the appointment's calendar date and
// "15:04" clock time into one instant and applies the 48-hour rule.
// Pure function; the caller is responsible for invoking the payment
// provider and updating the payment record.
func CheckRefundEligibility(appointmentDate time.Time, appointmentTime string, now time.Time) RefundEligibility {
	instant := utils.CombineDateTime(appointmentDate, appointmentTime)
	hours := instant.Sub(now).Hours()
	floored := int(math.Floor(hours))

	if hours >= RefundCutoffHours {
		return RefundEligibility{Eligible: true, HoursUntilAppointment: floored}
	}

	return RefundEligibility{
		Eligible:              false,
		HoursUntilAppointment: floored,
		Reason: fmt.Sprintf("Appointment is %d hours away; cancellations qualify for a refund only %d or more hours in advance",
			floored, RefundCutoffHours),
	}
}
