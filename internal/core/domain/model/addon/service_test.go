package addon_test

import (
	"testing"

	"pricing/internal/core/domain/model/addon"
	"pricing/internal/core/domain/model/kernel"
	"pricing/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults_Price(t *testing.T) {
	declared, err := kernel.NewMoney(decimal.NewFromInt(400), "PLN")
	require.NoError(t, err)

	want := map[string]string{
		addon.CodeInsurance: "4.00 PLN",
		addon.CodeCOD:       "11.00 PLN",
		addon.CodeSMS:       "0.50 PLN",
		addon.CodeSaturday:  "15.00 PLN",
		addon.CodeSignature: "3.00 PLN",
	}
	services := addon.Defaults("PLN")
	require.Len(t, services, len(want))

	for _, s := range services {
		t.Run(s.Code(), func(t *testing.T) {
			price, err := s.Price(declared, decimal.RequireFromString("2.5"))
			require.NoError(t, err)
			assert.Equal(t, want[s.Code()], price.String())
		})
	}
}

func TestService_PerKgAndMinimum(t *testing.T) {
	s, err := addon.NewService(addon.ServiceParams{
		Code: "Heavy", Method: addon.MethodPerKg, Amount: decimal.RequireFromString("0.40"),
		MinCharge: decimal.NewFromInt(2), Currency: "PLN",
	})
	require.NoError(t, err)
	assert.Equal(t, "heavy", s.Code())
	assert.Equal(t, "heavy", s.Name())

	zero := kernel.ZeroMoney("PLN")

	price, err := s.Price(zero, decimal.NewFromInt(20))
	require.NoError(t, err)
	assert.Equal(t, "8.00 PLN", price.String())

	price, err = s.Price(zero, decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.Equal(t, "2.00 PLN", price.String())
}

func TestNewService_Invalid(t *testing.T) {
	_, err := addon.NewService(addon.ServiceParams{
		Method: "weekly", Amount: decimal.NewFromInt(-1),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestService_NotConstructed(t *testing.T) {
	_, err := addon.Service{}.Price(kernel.ZeroMoney("PLN"), decimal.Zero)
	require.ErrorIs(t, err, addon.ErrServiceIsNotConstructed)
}
