package settlement

import (
	"fmt"

	"github.com/gestorlab/freela_backend/internal/apperrors"
	"github.com/gestorlab/freela_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// ResolveCommission computes the amount a commission entitles its holder to,
// given the base it applies against.
//
//	percentage: base * value / 100
//	fixed:      value, independent of base
func ResolveCommission(base decimal.Decimal, commissionType domain.CommissionType, value decimal.Decimal) (decimal.Decimal, error) {
	if value.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: commission value must not be negative, got %s", apperrors.ErrValidation, value.String())
	}
	switch commissionType {
	case domain.CommissionPercentage:
		return base.Mul(value).Div(oneHundred), nil
	case domain.CommissionFixed:
		return value, nil
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown commission type %q", apperrors.ErrValidation, commissionType)
	}
}

// PlatformFee computes the cut the platform takes off the top of a budget.
func PlatformFee(budget, platformCommissionPercent decimal.Decimal) decimal.Decimal {
	return budget.Mul(platformCommissionPercent).Div(oneHundred)
}

// Compute derives the full settlement for one project as seen by viewerID.
// Every caller that presents financials (detail, listing, dashboard, receipt
// registration) goes through this function; the arithmetic lives nowhere else.
//
// partnerNames resolves partner IDs to display names for the breakdown list;
// entries may be missing, in which case the name is left empty.
//
// The caller must have verified that viewerID is a stakeholder (owner or
// share holder); a non-stakeholder viewer is a programming error and surfaces
// as an internal fault.
func Compute(project domain.Project, shares []domain.ProjectShare, partnerNames map[string]string, viewerID string) (domain.Settlement, error) {
	platformFee := PlatformFee(project.Budget, project.PlatformCommissionPercent)
	netAfterPlatform := project.Budget.Sub(platformFee)

	totalPartnerCommissions := decimal.Zero
	partnersCommissions := make([]domain.PartnerCommission, 0, len(shares))
	var viewerShareExpected *decimal.Decimal
	var viewerShare *domain.ProjectShare

	for i := range shares {
		share := shares[i]
		expected, err := ResolveCommission(netAfterPlatform, share.CommissionType, share.CommissionValue)
		if err != nil {
			return domain.Settlement{}, fmt.Errorf("resolving commission for partner %s: %w", share.PartnerID, err)
		}
		totalPartnerCommissions = totalPartnerCommissions.Add(expected)
		partnersCommissions = append(partnersCommissions, domain.PartnerCommission{
			PartnerID:      share.PartnerID,
			PartnerName:    partnerNames[share.PartnerID],
			ExpectedAmount: expected,
			Share:          share,
		})
		if share.PartnerID == viewerID {
			viewerShareExpected = &expected
			viewerShare = &shares[i]
		}
	}

	// The owner's entitlement is always the residual after the platform and
	// all partners are paid out. The stored owner-commission override fields
	// are intentionally not consulted here.
	ownerExpectedProfit := netAfterPlatform.Sub(totalPartnerCommissions)

	result := domain.Settlement{
		PlatformFee:            platformFee,
		NetAmountAfterPlatform: netAfterPlatform,
		OwnerExpectedProfit:    ownerExpectedProfit,
		PartnersCommissions:    partnersCommissions,
	}

	switch {
	case project.OwnerID == viewerID:
		result.YourTotalToReceive = ownerExpectedProfit
		result.YourAmountReceived = project.PaymentDetails.Owner.AmountReceived
	case viewerShare != nil:
		result.YourTotalToReceive = *viewerShareExpected
		result.YourAmountReceived = viewerShare.AmountPaid
	default:
		return domain.Settlement{}, fmt.Errorf("%w: settlement computed for non-stakeholder %s on project %s", apperrors.ErrInternal, viewerID, project.ProjectID)
	}

	// May go negative on over-payment; the sign is surfaced, not clamped.
	result.YourRemainingToReceive = result.YourTotalToReceive.Sub(result.YourAmountReceived)

	return result, nil
}
