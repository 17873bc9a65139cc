package compensation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	compensationdto "github.com/LavaJover/shvark-commission-service/internal/usecase/dto/compensation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlaceMember inserts a new INACTIVE member into a free slot of the placement tree.
// The sponsor must be the parent or one of its ancestors. Placement counts of the
// whole chain are updated and the chain is re-matched, since the counts feed the
// 2:1 qualification.
func (uc *DefaultCompensationUsecase) PlaceMember(ctx context.Context, input *compensationdto.PlaceMemberInput) (*domain.Member, error) {
	start := time.Now()
	defer uc.observe("place_member", start)

	if err := validatePlacementInput(input); err != nil {
		return nil, err
	}

	var placed *domain.Member
	err := uc.withChainLock(ctx, func() error {
		member, links, err := uc.preparePlacement(ctx, input)
		if err != nil {
			return err
		}
		if err := uc.MemberRepo.CreateMember(ctx, member); err != nil {
			return fmt.Errorf("create member %s: %w", member.ID, err)
		}
		placed = member
		uc.Logger.Info("member placed",
			"member_id", member.ID,
			"parent_id", member.ParentID,
			"position", member.Position,
			"sponsor_id", member.SponsorID,
		)

		if member.IsRoot() {
			return nil
		}

		for i, link := range links {
			link := link
			_, err := uc.updateMember(ctx, link.MemberID, "placement_counts", func(m *domain.Member, c *change) error {
				direct := m.ID == member.SponsorID
				switch {
				case link.Side == domain.PositionLeft && direct:
					m.LeftDirectCount++
				case link.Side == domain.PositionLeft:
					m.LeftCount++
				case direct:
					m.RightDirectCount++
				default:
					m.RightCount++
				}
				return nil
			})
			if err != nil {
				return partialCascade("placement counts", i+1, err)
			}
		}

		applied := len(links) + 1
		if err := uc.recheckDirectMatch(ctx, member.SponsorID); err != nil {
			return partialCascade("direct match recheck", applied, err)
		}
		if err := uc.runMatchingWalk(ctx, member.ParentID, 0); err != nil {
			return partialCascade("binary matching", applied, err)
		}
		return nil
	})
	if err != nil {
		uc.recordError("place_member")
		return nil, err
	}
	return placed, nil
}

// preparePlacement validates the slot and sponsor against the current tree and
// builds the new member with the placement chain it will be counted in.
func (uc *DefaultCompensationUsecase) preparePlacement(ctx context.Context, input *compensationdto.PlaceMemberInput) (*domain.Member, []ChainLink, error) {
	memberID := input.MemberID
	if memberID == "" {
		memberID = uuid.New().String()
	} else if _, err := uc.MemberRepo.GetMemberByID(ctx, memberID); err == nil {
		return nil, nil, domain.ErrMemberExists
	} else if !errors.Is(err, domain.ErrMemberNotFound) {
		return nil, nil, err
	}

	percentage := input.Percentage
	if percentage.IsZero() {
		percentage = hundred
	}
	now := uc.now()
	member := &domain.Member{
		ID:              memberID,
		Position:        domain.PositionTop,
		Status:          domain.StatusInactive,
		PVBalance:       decimal.Zero,
		Percentage:      percentage,
		SecurityDeposit: input.SecurityDeposit,
		SDRPercentage:   input.SDRPercentage,
		Loan: domain.Loan{
			TotalGiven:     input.LoanAmount,
			TotalPending:   input.LoanAmount,
			TotalCollected: decimal.Zero,
			Percentage:     input.LoanPercentage,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.ParentID == "" {
		return member, nil, nil
	}

	parent, err := uc.MemberRepo.GetMemberByID(ctx, input.ParentID)
	if err != nil {
		return nil, nil, fmt.Errorf("load parent %s: %w", input.ParentID, err)
	}
	if _, err := uc.MemberRepo.GetChild(ctx, parent.ID, input.Side); err == nil {
		return nil, nil, fmt.Errorf("%s slot of %s: %w", input.Side, parent.ID, domain.ErrSlotOccupied)
	} else if !errors.Is(err, domain.ErrMemberNotFound) {
		return nil, nil, err
	}

	upper, err := uc.resolveAncestors(ctx, parent)
	if err != nil {
		return nil, nil, err
	}
	links := append([]ChainLink{{MemberID: parent.ID, Side: input.Side}}, upper...)

	sponsorSide := domain.Position("")
	for _, link := range links {
		if link.MemberID == input.SponsorID {
			sponsorSide = link.Side
			break
		}
	}
	if sponsorSide == "" {
		return nil, nil, fmt.Errorf("sponsor %s above %s: %w", input.SponsorID, parent.ID, domain.ErrSponsorNotInTree)
	}

	member.ParentID = parent.ID
	member.Position = input.Side
	member.SponsorID = input.SponsorID
	member.SponsorSide = sponsorSide
	return member, links, nil
}

func validatePlacementInput(input *compensationdto.PlaceMemberInput) error {
	if input == nil {
		return domain.ErrInvalidMember
	}
	if input.ParentID == "" {
		if input.SponsorID != "" {
			return fmt.Errorf("root member cannot have a sponsor: %w", domain.ErrSponsorNotInTree)
		}
	} else {
		if !input.Side.IsSide() {
			return domain.ErrInvalidSide
		}
		if input.SponsorID == "" {
			return fmt.Errorf("sponsor is required below the root: %w", domain.ErrInvalidMember)
		}
	}
	for _, v := range []decimal.Decimal{input.LoanAmount, input.LoanPercentage, input.SecurityDeposit, input.SDRPercentage} {
		if v.IsNegative() {
			return domain.ErrInvalidAmount
		}
	}
	if input.Percentage.IsNegative() || input.Percentage.GreaterThan(hundred) ||
		input.LoanPercentage.GreaterThan(hundred) {
		return domain.ErrInvalidAmount
	}
	return nil
}
