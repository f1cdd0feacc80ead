package model

import "fmt"

// Role identifies the principal kind carried by a token.
type Role int

const (
	// RoleAdmin is a clinic administrator.
	RoleAdmin Role = iota + 1
	// RoleDoctor is a treating doctor.
	RoleDoctor
	// RolePatient is a patient.
	RolePatient
)

// Roles lists every role in login lookup order.
var Roles = []Role{RoleAdmin, RoleDoctor, RolePatient}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleDoctor:
		return "doctor"
	case RolePatient:
		return "patient"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// ParseRole converts a claim value back into a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "admin":
		return RoleAdmin, nil
	case "doctor":
		return RoleDoctor, nil
	case "patient":
		return RolePatient, nil
	default:
		return 0, fmt.Errorf("unknown role %q", s)
	}
}
