package booking

import (
	"fmt"

	"swatrental/models"
	"swatrental/utils"
)

// Trigger is an event that may move a booking between phases.
type Trigger string

const (
	TriggerInitializePayment Trigger = "initializePayment"
	TriggerGatewayApproved   Trigger = "gatewayApproved"
	TriggerReceiptUploaded   Trigger = "receiptUploaded"
	TriggerBankApproved      Trigger = "bankApproved"
	TriggerBankRejected      Trigger = "bankRejected"
	TriggerCancel            Trigger = "cancel"
)

type transitionKey struct {
	from    models.Phase
	trigger Trigger
}

var transitions = map[transitionKey]models.Phase{
	{models.PhaseAwaitingPayment, TriggerInitializePayment}: models.PhaseAwaitingPayment,

	{models.PhaseAwaitingPayment, TriggerGatewayApproved}: models.PhaseConfirmed,

	{models.PhaseAwaitingPayment, TriggerReceiptUploaded}:      models.PhaseAwaitingVerification,
	{models.PhaseAwaitingVerification, TriggerReceiptUploaded}: models.PhaseAwaitingVerification,

	{models.PhaseAwaitingVerification, TriggerBankApproved}: models.PhaseConfirmed,
	{models.PhaseAwaitingVerification, TriggerBankRejected}: models.PhaseRejected,
	{models.PhaseAwaitingPayment, TriggerBankApproved}:      models.PhaseConfirmed,
	{models.PhaseAwaitingPayment, TriggerBankRejected}:      models.PhaseRejected,

	{models.PhaseAwaitingPayment, TriggerCancel}:      models.PhaseCancelled,
	{models.PhaseAwaitingVerification, TriggerCancel}: models.PhaseCancelledInReview,
	{models.PhaseConfirmed, TriggerCancel}:            models.PhaseCancelledAfterPayment,
}

// Replays that leave the booking untouched and succeed.
var noops = map[transitionKey]bool{
	{models.PhaseConfirmed, TriggerGatewayApproved}:    true,
	{models.PhaseCancelled, TriggerCancel}:             true,
	{models.PhaseCancelledInReview, TriggerCancel}:     true,
	{models.PhaseCancelledAfterPayment, TriggerCancel}: true,
	{models.PhaseRejected, TriggerCancel}:              true,
}

// Step is the outcome of applying a trigger.
type Step struct {
	To models.Phase
	// Write is false for an idempotent replay; nothing must be persisted.
	Write bool
}

// Next applies trigger to a booking in phase from.
func Next(from models.Phase, trigger Trigger) (Step, error) {
	key := transitionKey{from, trigger}
	if noops[key] {
		return Step{To: from}, nil
	}
	to, ok := transitions[key]
	if !ok {
		return Step{}, utils.NewError(utils.KindInvalidTransition,
			fmt.Sprintf("cannot %s a booking that is %s", trigger, describePhase(from)))
	}
	return Step{To: to, Write: true}, nil
}

// OverrideTarget resolves an admin-requested pair to its phase.
func OverrideTarget(status, paymentStatus string) (models.Phase, error) {
	phase, err := models.PhaseOf(status, paymentStatus)
	if err != nil {
		return "", utils.WrapError(utils.KindValidation,
			fmt.Sprintf("status %q with payment status %q is not a valid booking state", status, paymentStatus), err)
	}
	return phase, nil
}

func describePhase(p models.Phase) string {
	return fmt.Sprintf("%s (payment %s)", p.Status(), p.PaymentStatus())
}
