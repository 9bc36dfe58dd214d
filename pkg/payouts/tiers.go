package payouts

import (
	"github.com/shopspring/decimal"

	"github.com/creatorvault/creatorvault-backend/pkg/enums"
)

// MinimumFollowers is the onboarding eligibility floor. Callers reject
// creators below it; ClassifyTier itself stays total and never errors.
const MinimumFollowers = 10_000

const (
	tier2Threshold = 50_000
	tier3Threshold = 200_000
)

var (
	tier1Income = decimal.NewFromInt(500)
	tier2Income = decimal.NewFromInt(1000)
	tier3Income = decimal.NewFromInt(2000)
)

// ClassifyTier maps a follower count onto a tier and its fixed guaranteed
// monthly income. Both values must always be persisted together.
func ClassifyTier(followers int) (enums.CreatorTier, decimal.Decimal) {
	switch {
	case followers >= tier3Threshold:
		return enums.CreatorTier3, tier3Income
	case followers >= tier2Threshold:
		return enums.CreatorTier2, tier2Income
	default:
		return enums.CreatorTier1, tier1Income
	}
}
