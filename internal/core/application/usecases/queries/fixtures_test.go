package queries_test

import (
	"testing"

	"pricing/internal/adapters/out/snapshot"

	"github.com/stretchr/testify/require"
)

const zonesYAML = `
zones:
  - {code: local, type: local, countries: [PL], postalRanges: ["00-001..04-999"], priority: 100}
  - {code: dach, type: eu-west, countries: [DE, AT, CH], priority: 80}
  - {code: domestic, type: domestic, countries: [PL], priority: 50}
  - {code: legacy, type: world, countries: [GL], active: false}
carriers:
  - {code: inpost, name: InPost, volumetricDivisor: "6000", maxWeightKg: "25", services: [standard, economy], currency: PLN}
  - {code: dpd, name: DPD Polska, maxWeightKg: "31.5", zones: [local, domestic], currency: PLN}
  - {code: fedex, name: FedEx, currency: USD, active: false}
`

func newHolder(t *testing.T) *snapshot.Holder {
	t.Helper()
	s, err := snapshot.ParseYAML([]byte(zonesYAML), "queries-v1")
	require.NoError(t, err)
	return snapshot.NewHolder(s)
}
