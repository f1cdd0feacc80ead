package model

import "strings"

// Specialties enumerates the doctor specialties the clinic accepts.
var Specialties = []string{
	"Cardiology",
	"Neurology",
	"Pediatrics",
	"Orthopedics",
	"Dermatology",
}

// CanonicalSpecialty matches s case-insensitively against Specialties
// and returns the canonical spelling.
func CanonicalSpecialty(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, sp := range Specialties {
		if strings.EqualFold(sp, s) {
			return sp, true
		}
	}
	return "", false
}
