// Package auth holds the role-based authorization policy. The policy
// is a pure function of the acting session, the attempted action and
// the owner of the touched resource; it performs no I/O.
package auth

import (
	"cafe-system/internal/models"
)

// Action enumerates the mutations and reads gated by the policy.
type Action string

const (
	ActionViewOrder      Action = "view_order"
	ActionPlaceOrder     Action = "place_order"
	ActionAddLine        Action = "add_line"
	ActionEditComment    Action = "edit_comment"
	ActionSetLineStatus  Action = "set_line_status"
	ActionSetPaid        Action = "set_paid"
	ActionViewOpenOrders Action = "view_open_orders"
	ActionEditProfile    Action = "edit_profile"
	ActionChangeRole     Action = "change_role"
	ActionEditCatalog    Action = "edit_catalog"
)

// Can reports whether the actor may perform action on a resource
// owned by resourceOwner. For actions without an owned resource
// (catalog edits, open-order listings) resourceOwner is ignored.
func Can(actor models.Session, action Action, resourceOwner string) bool {
	switch actor.Role {
	case models.RoleCustomer:
		return canCustomer(actor, action, resourceOwner)
	case models.RoleEmployee:
		return canStaff(actor, action, resourceOwner, false)
	case models.RoleManager:
		return canStaff(actor, action, resourceOwner, true)
	default:
		return false
	}
}

// canCustomer: customers act only on what they own.
func canCustomer(actor models.Session, action Action, resourceOwner string) bool {
	owned := resourceOwner != "" && resourceOwner == actor.Login

	switch action {
	case ActionViewOrder, ActionPlaceOrder, ActionAddLine, ActionEditComment, ActionEditProfile:
		return owned
	default:
		return false
	}
}

func canStaff(actor models.Session, action Action, resourceOwner string, manager bool) bool {
	switch action {
	case ActionViewOrder, ActionPlaceOrder, ActionAddLine, ActionEditComment,
		ActionSetLineStatus, ActionSetPaid, ActionViewOpenOrders:
		return true
	case ActionEditProfile:
		// Employees edit only their own profile; managers edit anyone's.
		return manager || resourceOwner == actor.Login
	case ActionChangeRole, ActionEditCatalog:
		return manager
	default:
		return false
	}
}
