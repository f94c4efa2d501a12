package commands_test

import (
	"context"
	"testing"

	"pricing/internal/core/application/usecases/commands"
	"pricing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func optionCarriers(options []commands.CarrierOption) []string {
	codes := make([]string, len(options))
	for i, o := range options {
		codes[i] = o.Carrier
	}
	return codes
}

func TestCompareCarriersCommandHandler_Handle_AllActiveCarriers(t *testing.T) {
	cmd, err := commands.NewCompareCarriersCommand(domesticRequest("", "2.5"), nil)
	require.NoError(t, err)

	h := commands.NewCompareCarriersCommandHandler(newPricer(t, commands.ShipmentPricerDeps{}), 2)
	resp, err := h.Handle(t.Context(), cmd)
	require.NoError(t, err)

	assert.Equal(t, []string{"inpost", "dpd", "dhl"}, optionCarriers(resp.Options))
	for _, o := range resp.Options {
		assert.True(t, o.Available, o.Carrier)
	}
	assertMoney(t, "16.59", resp.Options[0].Quote.Total)
	assertMoney(t, "18.44", resp.Options[1].Quote.Total)
	assertMoney(t, "22.13", resp.Options[2].Quote.Total)

	require.NotNil(t, resp.Summary)
	assert.Equal(t, "inpost", resp.Summary.Cheapest)
	assert.Equal(t, "dhl", resp.Summary.MostExpensive)
	assertMoney(t, "19.05", resp.Summary.Average)
	assertMoney(t, "5.54", resp.Summary.SavingsPotential)
	assert.Empty(t, resp.Warnings)
}

func TestCompareCarriersCommandHandler_Handle_UnavailableCarriers(t *testing.T) {
	cmd, err := commands.NewCompareCarriersCommand(domesticRequest("", "26"), []string{"ups", "inpost", "dpd", "dhl"})
	require.NoError(t, err)

	h := commands.NewCompareCarriersCommandHandler(newPricer(t, commands.ShipmentPricerDeps{}), 0)
	resp, err := h.Handle(t.Context(), cmd)
	require.NoError(t, err)

	assert.Equal(t, []string{"dhl", "dpd", "inpost", "ups"}, optionCarriers(resp.Options))
	assertMoney(t, "22.13", resp.Options[0].Quote.Total)
	assertMoney(t, "40.19", resp.Options[1].Quote.BasePrice)
	assertMoney(t, "49.43", resp.Options[1].Quote.Total)

	inpost, ups := resp.Options[2], resp.Options[3]
	assert.False(t, inpost.Available)
	assert.Nil(t, inpost.Quote)
	assert.Equal(t, errs.KindCapacity, inpost.ErrorKind)
	assert.NotEmpty(t, inpost.Reason)
	assert.False(t, ups.Available)
	assert.Equal(t, errs.KindNotFound, ups.ErrorKind)

	require.NotNil(t, resp.Summary)
	assert.Equal(t, "dhl", resp.Summary.Cheapest)
	assert.Equal(t, "dpd", resp.Summary.MostExpensive)
	assertMoney(t, "35.78", resp.Summary.Average)
	assertMoney(t, "27.30", resp.Summary.SavingsPotential)
}

func TestCompareCarriersCommandHandler_Handle_NothingAvailable(t *testing.T) {
	cmd, err := commands.NewCompareCarriersCommand(domesticRequest("", "2.5"), []string{"ups", "gls"})
	require.NoError(t, err)

	resp, err := commands.NewCompareCarriersCommandHandler(newPricer(t, commands.ShipmentPricerDeps{}), 0).
		Handle(t.Context(), cmd)
	require.NoError(t, err)
	assert.Equal(t, []string{"gls", "ups"}, optionCarriers(resp.Options))
	assert.Nil(t, resp.Summary)
}

func TestCompareCarriersCommandHandler_Handle_Canceled(t *testing.T) {
	cmd, err := commands.NewCompareCarriersCommand(domesticRequest("", "2.5"), []string{"dpd", "dhl"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err = commands.NewCompareCarriersCommandHandler(newPricer(t, commands.ShipmentPricerDeps{}), 0).Handle(ctx, cmd)
	require.ErrorIs(t, err, context.Canceled)
}

func TestCompareCarriersCommandHandler_Handle_NotConstructed(t *testing.T) {
	h := commands.NewCompareCarriersCommandHandler(newPricer(t, commands.ShipmentPricerDeps{}), 0)
	_, err := h.Handle(t.Context(), commands.CompareCarriersCommand{})
	require.ErrorIs(t, err, commands.ErrCompareCarriersCommandIsNotConstructed)
}
