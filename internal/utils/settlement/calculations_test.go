package settlement_test

import (
	"testing"

	"github.com/gestorlab/freela_backend/internal/apperrors"
	"github.com/gestorlab/freela_backend/internal/core/domain"
	"github.com/gestorlab/freela_backend/internal/utils/settlement"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestResolveCommission(t *testing.T) {
	tests := []struct {
		name           string
		base           string
		commissionType domain.CommissionType
		value          string
		want           string
		wantErr        bool
	}{
		{name: "percentage of base", base: "900", commissionType: domain.CommissionPercentage, value: "20", want: "180"},
		{name: "fixed ignores base", base: "900", commissionType: domain.CommissionFixed, value: "150", want: "150"},
		{name: "fixed ignores zero base", base: "0", commissionType: domain.CommissionFixed, value: "150", want: "150"},
		{name: "zero percentage", base: "900", commissionType: domain.CommissionPercentage, value: "0", want: "0"},
		{name: "negative value rejected", base: "900", commissionType: domain.CommissionPercentage, value: "-5", wantErr: true},
		{name: "unknown type rejected", base: "900", commissionType: domain.CommissionType("bogus"), value: "5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := settlement.ResolveCommission(dec(tt.base), tt.commissionType, dec(tt.value))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.True(t, dec(tt.want).Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func newProject(ownerID string, budget, platformPct string) domain.Project {
	return domain.Project{
		ProjectID:                 "proj-1",
		OwnerID:                   ownerID,
		Budget:                    dec(budget),
		PlatformCommissionPercent: dec(platformPct),
		PaymentDetails:            domain.NewPaymentDetails(),
	}
}

func newShare(partnerID string, commissionType domain.CommissionType, value string) domain.ProjectShare {
	return domain.ProjectShare{
		ShareID:         "share-" + partnerID,
		ProjectID:       "proj-1",
		PartnerID:       partnerID,
		CommissionType:  commissionType,
		CommissionValue: dec(value),
		Permissions:     domain.PermissionRead,
		PaymentStatus:   domain.Unpaid,
		AmountPaid:      decimal.Zero,
	}
}

func TestCompute_OwnerResidual(t *testing.T) {
	// budget=1000, platform=10% -> fee=100, net=900.
	// One partner at 20% -> 180. Owner residual = 720.
	project := newProject("owner", "1000", "10")
	shares := []domain.ProjectShare{newShare("partner", domain.CommissionPercentage, "20")}

	s, err := settlement.Compute(project, shares, map[string]string{"partner": "Ana"}, "owner")
	require.NoError(t, err)

	assert.True(t, dec("100").Equal(s.PlatformFee), "platform fee: %s", s.PlatformFee)
	assert.True(t, dec("900").Equal(s.NetAmountAfterPlatform))
	assert.True(t, dec("720").Equal(s.YourTotalToReceive))
	assert.True(t, decimal.Zero.Equal(s.YourAmountReceived))
	assert.True(t, dec("720").Equal(s.YourRemainingToReceive))

	require.Len(t, s.PartnersCommissions, 1)
	assert.Equal(t, "partner", s.PartnersCommissions[0].PartnerID)
	assert.Equal(t, "Ana", s.PartnersCommissions[0].PartnerName)
	assert.True(t, dec("180").Equal(s.PartnersCommissions[0].ExpectedAmount))
}

func TestCompute_PartnerViewer(t *testing.T) {
	project := newProject("owner", "1000", "10")
	share := newShare("partner", domain.CommissionPercentage, "20")
	share.AmountPaid = dec("50")

	s, err := settlement.Compute(project, []domain.ProjectShare{share}, nil, "partner")
	require.NoError(t, err)

	assert.True(t, dec("180").Equal(s.YourTotalToReceive))
	assert.True(t, dec("50").Equal(s.YourAmountReceived))
	assert.True(t, dec("130").Equal(s.YourRemainingToReceive))
}

func TestCompute_FixedCommissionIndependentOfNet(t *testing.T) {
	project := newProject("owner", "1000", "10")
	shares := []domain.ProjectShare{newShare("partner", domain.CommissionFixed, "150")}

	s, err := settlement.Compute(project, shares, nil, "partner")
	require.NoError(t, err)
	assert.True(t, dec("150").Equal(s.YourTotalToReceive))
}

func TestCompute_SplitSumsToNet(t *testing.T) {
	project := newProject("owner", "1234.56", "7.5")
	shares := []domain.ProjectShare{
		newShare("p1", domain.CommissionPercentage, "12.5"),
		newShare("p2", domain.CommissionFixed, "200"),
		newShare("p3", domain.CommissionPercentage, "33.33"),
	}

	s, err := settlement.Compute(project, shares, nil, "owner")
	require.NoError(t, err)

	sum := s.OwnerExpectedProfit
	for _, pc := range s.PartnersCommissions {
		sum = sum.Add(pc.ExpectedAmount)
	}
	assert.True(t, s.NetAmountAfterPlatform.Equal(sum), "partners + owner residual must equal net, got %s vs %s", sum, s.NetAmountAfterPlatform)
}

func TestCompute_ZeroBudgetAllZero(t *testing.T) {
	project := newProject("owner", "0", "10")
	shares := []domain.ProjectShare{newShare("partner", domain.CommissionPercentage, "20")}

	s, err := settlement.Compute(project, shares, nil, "owner")
	require.NoError(t, err)
	assert.True(t, s.PlatformFee.IsZero())
	assert.True(t, s.NetAmountAfterPlatform.IsZero())
	assert.True(t, s.YourTotalToReceive.IsZero())
}

func TestCompute_OverPaymentSurfacesNegativeRemaining(t *testing.T) {
	project := newProject("owner", "1000", "0")
	project.PaymentDetails = project.PaymentDetails.WithOwnerReceipt(dec("1100"), dec("1000"))

	s, err := settlement.Compute(project, nil, nil, "owner")
	require.NoError(t, err)
	assert.True(t, dec("-100").Equal(s.YourRemainingToReceive))
	assert.Equal(t, domain.Paid, project.PaymentDetails.Owner.Status)
}

func TestCompute_NonStakeholderIsInternalFault(t *testing.T) {
	project := newProject("owner", "1000", "0")

	_, err := settlement.Compute(project, nil, nil, "stranger")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInternal)
}

func TestCompute_OwnerOverrideFieldsIgnored(t *testing.T) {
	override := domain.CommissionFixed
	project := newProject("owner", "1000", "10")
	project.OwnerCommissionType = &override
	project.OwnerCommissionValue = dec("999")
	shares := []domain.ProjectShare{newShare("partner", domain.CommissionPercentage, "20")}

	s, err := settlement.Compute(project, shares, nil, "owner")
	require.NoError(t, err)
	// Residual rule wins over the stored override.
	assert.True(t, dec("720").Equal(s.YourTotalToReceive))
}

func TestStatusForAmount(t *testing.T) {
	expected := dec("720")
	assert.Equal(t, domain.Unpaid, domain.StatusForAmount(decimal.Zero, expected))
	assert.Equal(t, domain.Unpaid, domain.StatusForAmount(dec("-10"), expected))
	assert.Equal(t, domain.PartialPaid, domain.StatusForAmount(dec("0.01"), expected))
	assert.Equal(t, domain.PartialPaid, domain.StatusForAmount(dec("719.99"), expected))
	assert.Equal(t, domain.Paid, domain.StatusForAmount(dec("720"), expected))
	assert.Equal(t, domain.Paid, domain.StatusForAmount(dec("800"), expected))
}
