package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/mkowalczyk/timesheet-api/internal/constants"
)

// GenerateCampaignNumber generates a random display number in
// [CampaignNumberMin, CampaignNumberMax]. Uniqueness is enforced by the
// database; callers retry on collision.
func GenerateCampaignNumber() (int, error) {
	span := int64(constants.CampaignNumberMax - constants.CampaignNumberMin + 1)
	n, err := rand.Int(rand.Reader, big.NewInt(span))
	if err != nil {
		return 0, fmt.Errorf("failed to generate campaign number: %w", err)
	}
	return constants.CampaignNumberMin + int(n.Int64()), nil
}
