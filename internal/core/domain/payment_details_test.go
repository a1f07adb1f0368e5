package domain_test

import (
	"testing"

	"github.com/gestorlab/freela_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentDetails_UpdatesNeverAliasTheOriginal(t *testing.T) {
	original := domain.NewPaymentDetails()
	original = original.WithPartnerReceipt("p1", decimal.NewFromInt(50), decimal.NewFromInt(200))

	updated := original.WithPartnerReceipt("p1", decimal.NewFromInt(200), decimal.NewFromInt(200))

	// The original ledger must be untouched by the update.
	require.Contains(t, original.Partners, "p1")
	assert.True(t, decimal.NewFromInt(50).Equal(original.Partners["p1"].AmountReceived))
	assert.Equal(t, domain.PartialPaid, original.Partners["p1"].Status)

	assert.True(t, decimal.NewFromInt(200).Equal(updated.Partners["p1"].AmountReceived))
	assert.Equal(t, domain.Paid, updated.Partners["p1"].Status)
}

func TestPaymentDetails_WithClientPayment(t *testing.T) {
	budget := decimal.NewFromInt(1000)

	pd := domain.NewPaymentDetails().WithClientPayment(decimal.NewFromInt(400), budget)
	assert.Equal(t, domain.PartialPaid, pd.Client.Status)

	pd = pd.WithClientPayment(decimal.NewFromInt(1000), budget)
	assert.Equal(t, domain.Paid, pd.Client.Status)

	pd = pd.WithClientPayment(decimal.Zero, budget)
	assert.Equal(t, domain.Unpaid, pd.Client.Status)
}

func TestPaymentDetails_ClientLedgerRoundTrip(t *testing.T) {
	budget := decimal.NewFromInt(1000)

	// Ledger state before a payment is recorded: 300 of 1000 paid.
	before := domain.NewPaymentDetails().WithClientPayment(decimal.RequireFromString("300.00"), budget)

	// Recording a 400 payment re-derives the ledger from the new history sum;
	// deleting it re-derives from the restored sum and lands exactly where it
	// started, decimals included.
	recorded := before.WithClientPayment(decimal.RequireFromString("700.00"), budget)
	assert.Equal(t, domain.PartialPaid, recorded.Client.Status)
	assert.True(t, decimal.NewFromInt(700).Equal(recorded.Client.AmountPaid))

	restored := recorded.WithClientPayment(decimal.RequireFromString("300.00"), budget)
	assert.Equal(t, before.Client.Status, restored.Client.Status)
	assert.True(t, before.Client.AmountPaid.Equal(restored.Client.AmountPaid))
	require.Equal(t, before.Client.AmountPaid.String(), restored.Client.AmountPaid.String())
}

func TestPaymentDetails_WithoutPartner(t *testing.T) {
	pd := domain.NewPaymentDetails().
		WithPartnerReceipt("p1", decimal.NewFromInt(50), decimal.NewFromInt(100)).
		WithPartnerReceipt("p2", decimal.NewFromInt(10), decimal.NewFromInt(100))

	trimmed := pd.WithoutPartner("p1")
	assert.NotContains(t, trimmed.Partners, "p1")
	assert.Contains(t, trimmed.Partners, "p2")
	assert.Contains(t, pd.Partners, "p1")
}
