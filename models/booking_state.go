package models

import "fmt"

// Phase is the lifecycle state of a booking. Each phase stands for exactly one
// reachable (status, paymentStatus) pair; any other pair is rejected.
type Phase string

const (
	PhaseAwaitingPayment       Phase = "awaiting_payment"
	PhaseAwaitingVerification  Phase = "awaiting_verification"
	PhaseConfirmed             Phase = "confirmed"
	PhaseCompleted             Phase = "completed"
	PhaseCancelled             Phase = "cancelled"
	PhaseCancelledInReview     Phase = "cancelled_in_review"
	PhaseCancelledAfterPayment Phase = "cancelled_after_payment"
	PhaseRejected              Phase = "rejected"
)

type statePair struct {
	Status        string
	PaymentStatus string
}

var phasePairs = map[Phase]statePair{
	PhaseAwaitingPayment:       {StatusPending, PaymentPending},
	PhaseAwaitingVerification:  {StatusPending, PaymentPendingVerification},
	PhaseConfirmed:             {StatusConfirmed, PaymentCompleted},
	PhaseCompleted:             {StatusCompleted, PaymentCompleted},
	PhaseCancelled:             {StatusCancelled, PaymentPending},
	PhaseCancelledInReview:     {StatusCancelled, PaymentPendingVerification},
	PhaseCancelledAfterPayment: {StatusCancelled, PaymentCompleted},
	PhaseRejected:              {StatusCancelled, PaymentFailed},
}

var pairPhases = func() map[statePair]Phase {
	m := make(map[statePair]Phase, len(phasePairs))
	for p, pair := range phasePairs {
		m[pair] = p
	}
	return m
}()

// PhaseOf maps a stored pair to its phase.
func PhaseOf(status, paymentStatus string) (Phase, error) {
	p, ok := pairPhases[statePair{status, paymentStatus}]
	if !ok {
		return "", fmt.Errorf("unreachable booking state (%q, %q)", status, paymentStatus)
	}
	return p, nil
}

// Status is the booking status of the phase.
func (p Phase) Status() string { return phasePairs[p].Status }

// PaymentStatus is the payment status of the phase.
func (p Phase) PaymentStatus() string { return phasePairs[p].PaymentStatus }

func (p Phase) IsValid() bool {
	_, ok := phasePairs[p]
	return ok
}

func (p Phase) IsCancelled() bool {
	return p.Status() == StatusCancelled
}

// IsTerminal reports whether only an admin override can move the booking on.
func (p Phase) IsTerminal() bool {
	return p == PhaseCompleted || p.IsCancelled()
}
