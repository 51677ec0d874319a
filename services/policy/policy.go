// Package policy holds the single authorization table consulted by every
// catalog, booking and payment operation.
package policy

import (
	"swatrental/models"
	"swatrental/utils"
)

type Action string

const (
	CarCreate Action = "car:create"
	CarUpdate Action = "car:update"
	CarDelete Action = "car:delete"

	BookingCreate   Action = "booking:create"
	BookingRead     Action = "booking:read"
	BookingCancel   Action = "booking:cancel"
	BookingOverride Action = "booking:override"
	BookingDelete   Action = "booking:delete"

	PaymentInitialize Action = "payment:initialize"
	ReceiptUpload     Action = "payment:receipt"
	BankVerify        Action = "payment:bank_verify"
	PaymentStatusRead Action = "payment:status"

	UserList Action = "user:list"
)

type rule int

const (
	anyAuthenticated rule = iota
	ownerOnly
	ownerOrAdmin
	adminOnly
)

var rules = map[Action]rule{
	CarCreate:         adminOnly,
	CarUpdate:         adminOnly,
	CarDelete:         adminOnly,
	BookingCreate:     anyAuthenticated,
	BookingRead:       ownerOrAdmin,
	BookingCancel:     ownerOrAdmin,
	BookingOverride:   adminOnly,
	BookingDelete:     adminOnly,
	PaymentInitialize: ownerOnly,
	ReceiptUpload:     ownerOnly,
	BankVerify:        adminOnly,
	PaymentStatusRead: ownerOrAdmin,
	UserList:          adminOnly,
}

// Resource describes what an action touches. OwnerID is empty for catalog entries.
type Resource struct {
	OwnerID string
}

// Owned is the resource of a booking owned by userID.
func Owned(userID string) Resource {
	return Resource{OwnerID: userID}
}

type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision { return Decision{Allowed: true} }

func deny(reason string) Decision { return Decision{Reason: reason} }

// Decide evaluates action for actor against res.
func Decide(actor models.Actor, action Action, res Resource) Decision {
	if actor.ID == "" {
		return deny("Not authenticated")
	}
	r, ok := rules[action]
	if !ok {
		return deny("Unknown action")
	}

	owner := res.OwnerID != "" && res.OwnerID == actor.ID
	switch r {
	case anyAuthenticated:
		return allow()
	case ownerOnly:
		if owner {
			return allow()
		}
		return deny("Not authorized")
	case ownerOrAdmin:
		if owner || actor.IsAdmin() {
			return allow()
		}
		return deny("Not authorized")
	case adminOnly:
		if actor.IsAdmin() {
			return allow()
		}
		return deny("Admin access required")
	}
	return deny("Not authorized")
}

// Authorize is Decide translated to a Forbidden error.
func Authorize(actor models.Actor, action Action, res Resource) error {
	if d := Decide(actor, action, res); !d.Allowed {
		return utils.Forbidden(d.Reason)
	}
	return nil
}
