package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"pricing/internal/core/domain/model/kernel"
	"pricing/internal/core/domain/model/rulecontext"
	"pricing/internal/core/domain/services"
	"pricing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCustomerRepository struct{ mock.Mock }

func (m *MockCustomerRepository) Get(ctx context.Context, id string) (rulecontext.CustomerSnapshot, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(rulecontext.CustomerSnapshot), args.Error(1)
}

func newFactory(repo *MockCustomerRepository) services.ContextFactory {
	warsaw := time.FixedZone("CEST", 2*60*60)
	clock := func() time.Time { return time.Date(2026, time.July, 15, 1, 30, 0, 0, warsaw) }
	if repo == nil {
		return services.NewContextFactory(nil, clock, nil)
	}
	return services.NewContextFactory(repo, clock, nil)
}

func baseContext(t *testing.T, f services.ContextFactory) rulecontext.Context {
	t.Helper()
	weight, err := kernel.NewWeight(dec("2.5"))
	require.NoError(t, err)
	dims, err := kernel.NewDimensions(dec("30"), dec("20"), dec("15"))
	require.NoError(t, err)
	rc, err := f.Create(weight, dims, kernel.ServiceExpress, "domestic", pln(t, "42.00"))
	require.NoError(t, err)
	return rc
}

func TestContextFactory_Create(t *testing.T) {
	f := newFactory(nil)

	rc := baseContext(t, f)

	assert.Equal(t, time.Date(2026, time.July, 14, 23, 30, 0, 0, time.UTC), rc.CalculationDate())
	assert.Equal(t, kernel.SeasonSummer, rc.Season())
	assert.Equal(t, "42.00 PLN", rc.BasePrice().String())
	_, hasCustomer := rc.Customer()
	assert.False(t, hasCustomer)
}

func TestContextFactory_WithCustomer(t *testing.T) {
	t.Run("found customer is attached to a copy", func(t *testing.T) {
		ctx := t.Context()
		repo := new(MockCustomerRepository)
		repo.On("Get", ctx, "acme").Return(rulecontext.CustomerSnapshot{Tier: rulecontext.TierGold}, nil).Once()
		f := newFactory(repo)
		base := baseContext(t, f)

		enriched, warnings, err := f.WithCustomer(ctx, base, " acme ")

		require.NoError(t, err)
		assert.Empty(t, warnings)
		snapshot, ok := enriched.Customer()
		require.True(t, ok)
		assert.Equal(t, "acme", snapshot.ID)
		assert.Equal(t, rulecontext.TierGold, snapshot.Tier)
		_, baseHasCustomer := base.Customer()
		assert.False(t, baseHasCustomer)
		repo.AssertExpectations(t)
	})

	t.Run("unknown customer is a warning", func(t *testing.T) {
		ctx := t.Context()
		repo := new(MockCustomerRepository)
		repo.On("Get", ctx, "ghost").
			Return(rulecontext.CustomerSnapshot{}, errs.NewObjectNotFoundError("customer", "ghost")).Once()
		f := newFactory(repo)

		enriched, warnings, err := f.WithCustomer(ctx, baseContext(t, f), "ghost")

		require.NoError(t, err)
		require.Len(t, warnings, 1)
		assert.Contains(t, warnings[0], "ghost")
		assert.Equal(t, "ghost", enriched.CustomerID())
		_, ok := enriched.Customer()
		assert.False(t, ok)
	})

	t.Run("repository failure is returned", func(t *testing.T) {
		ctx := t.Context()
		repo := new(MockCustomerRepository)
		repo.On("Get", ctx, "acme").Return(rulecontext.CustomerSnapshot{}, errors.New("connection reset")).Once()
		f := newFactory(repo)

		_, _, err := f.WithCustomer(ctx, baseContext(t, f), "acme")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection reset")
	})

	t.Run("no customer id leaves the context alone", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		f := newFactory(repo)
		base := baseContext(t, f)

		got, warnings, err := f.WithCustomer(t.Context(), base, "")

		require.NoError(t, err)
		assert.Nil(t, warnings)
		assert.Equal(t, base, got)
		repo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("no repository is a warning", func(t *testing.T) {
		f := newFactory(nil)

		got, warnings, err := f.WithCustomer(t.Context(), baseContext(t, f), "acme")

		require.NoError(t, err)
		assert.Len(t, warnings, 1)
		assert.Equal(t, "acme", got.CustomerID())
	})
}
