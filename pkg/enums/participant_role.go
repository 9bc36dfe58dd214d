package enums

import "fmt"

// ParticipantRole distinguishes the two sides of a contract or review.
type ParticipantRole string

const (
	ParticipantCreator ParticipantRole = "creator"
	ParticipantBrand   ParticipantRole = "brand"
)

var validParticipantRoles = []ParticipantRole{
	ParticipantCreator,
	ParticipantBrand,
}

// String implements fmt.Stringer.
func (r ParticipantRole) String() string {
	return string(r)
}

// IsValid reports whether the value is known.
func (r ParticipantRole) IsValid() bool {
	for _, candidate := range validParticipantRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// Counterpart returns the opposite side.
func (r ParticipantRole) Counterpart() ParticipantRole {
	if r == ParticipantCreator {
		return ParticipantBrand
	}
	return ParticipantCreator
}

// ParseParticipantRole converts raw input into a ParticipantRole.
func ParseParticipantRole(value string) (ParticipantRole, error) {
	for _, candidate := range validParticipantRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid participant role %q", value)
}
