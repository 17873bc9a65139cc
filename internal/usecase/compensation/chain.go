package compensation

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
)

// ChainLink is one placement ancestor of an origin member. Side is the subtree
// of the ancestor the origin sits in.
type ChainLink struct {
	MemberID string
	Side     domain.Position
}

// resolveAncestors returns the placement ancestors of origin bottom-up, ending at
// the root. The whole chain is loaded before any write so that a missing member
// aborts the walk without partial application.
func (uc *DefaultCompensationUsecase) resolveAncestors(ctx context.Context, origin *domain.Member) ([]ChainLink, error) {
	var links []ChainLink
	seen := map[string]struct{}{origin.ID: {}}

	current := origin
	for !current.IsRoot() {
		if !current.Position.IsSide() {
			return nil, fmt.Errorf("member %s has position %q under parent %s: %w", current.ID, current.Position, current.ParentID, domain.ErrInvalidSide)
		}
		parent, err := uc.MemberRepo.GetMemberByID(ctx, current.ParentID)
		if err != nil {
			return nil, fmt.Errorf("resolve placement chain of %s: %w", origin.ID, err)
		}
		if _, ok := seen[parent.ID]; ok {
			return nil, fmt.Errorf("placement chain of %s: %w", origin.ID, domain.ErrCycleDetected)
		}
		seen[parent.ID] = struct{}{}

		links = append(links, ChainLink{MemberID: parent.ID, Side: current.Position})
		current = parent
	}
	return links, nil
}

// resolveActiveSponsors walks the recruiter chain from the purchaser's sponsor and
// returns up to limit active sponsors. Inactive sponsors are passed through.
func (uc *DefaultCompensationUsecase) resolveActiveSponsors(ctx context.Context, origin *domain.Member, limit int) ([]*domain.Member, error) {
	var sponsors []*domain.Member
	seen := map[string]struct{}{origin.ID: {}}

	sponsorID := origin.SponsorID
	for sponsorID != "" && len(sponsors) < limit {
		if _, ok := seen[sponsorID]; ok {
			return nil, fmt.Errorf("sponsor chain of %s: %w", origin.ID, domain.ErrCycleDetected)
		}
		seen[sponsorID] = struct{}{}

		sponsor, err := uc.MemberRepo.GetMemberByID(ctx, sponsorID)
		if err != nil {
			return nil, fmt.Errorf("resolve sponsor chain of %s: %w", origin.ID, err)
		}
		if sponsor.Status.IsActive() {
			sponsors = append(sponsors, sponsor)
		}
		sponsorID = sponsor.SponsorID
	}
	return sponsors, nil
}
