package domain

import (
	"court-booking-service/internal/pkg/errors"
	"fmt"
)

type Role int

const (
	RoleUnknown Role = iota
	RoleUser
	RoleFacilityOwner
	RoleAdmin
	// RoleSystem is never issued to a caller; it marks transitions made by
	// the elapsed-booking sweep.
	RoleSystem
)

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleFacilityOwner:
		return "facility_owner"
	case RoleAdmin:
		return "admin"
	case RoleSystem:
		return "system"
	default:
		return "unknown"
	}
}

// ParseRole accepts only the roles the identity provider issues.
func ParseRole(s string) (Role, error) {
	switch s {
	case "user":
		return RoleUser, nil
	case "facility_owner":
		return RoleFacilityOwner, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return RoleUnknown, errors.UnauthorizedError(fmt.Sprintf("unknown role %q", s))
	}
}

type Actor struct {
	ID   string
	Role Role
}

var SystemActor = Actor{ID: "system", Role: RoleSystem}

// CanCancel reports whether actor may cancel a booking owned by userID at a
// facility owned by facilityOwnerID.
func (a Actor) CanCancel(userID, facilityOwnerID string) bool {
	switch a.Role {
	case RoleUser:
		return a.ID == userID
	case RoleFacilityOwner:
		return a.ID == userID || a.ID == facilityOwnerID
	case RoleAdmin, RoleSystem:
		return true
	default:
		return false
	}
}

// CanRead follows the same ownership rule as CanCancel.
func (a Actor) CanRead(userID, facilityOwnerID string) bool {
	return a.CanCancel(userID, facilityOwnerID)
}

// CanManage covers completion, no-show and check-in/out, which belong to
// the facility owner and admins only.
func (a Actor) CanManage(facilityOwnerID string) bool {
	switch a.Role {
	case RoleFacilityOwner:
		return a.ID == facilityOwnerID
	case RoleAdmin, RoleSystem:
		return true
	default:
		return false
	}
}

// IsStaff is true for roles whose cancellations are not bound by the user
// cancellation cutoff.
func (a Actor) IsStaff(facilityOwnerID string) bool {
	return a.CanManage(facilityOwnerID)
}
