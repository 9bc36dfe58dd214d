package enums

import "fmt"

// CreatorTier is the follower-count bracket a creator falls into. The tier
// fixes the creator's guaranteed monthly income.
type CreatorTier string

const (
	CreatorTier1 CreatorTier = "tier1"
	CreatorTier2 CreatorTier = "tier2"
	CreatorTier3 CreatorTier = "tier3"
)

var validCreatorTiers = []CreatorTier{
	CreatorTier1,
	CreatorTier2,
	CreatorTier3,
}

// String implements fmt.Stringer.
func (t CreatorTier) String() string {
	return string(t)
}

// IsValid reports whether the value is known.
func (t CreatorTier) IsValid() bool {
	for _, candidate := range validCreatorTiers {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseCreatorTier converts raw input into a CreatorTier.
func ParseCreatorTier(value string) (CreatorTier, error) {
	for _, candidate := range validCreatorTiers {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid creator tier %q", value)
}
