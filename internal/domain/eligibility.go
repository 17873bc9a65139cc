package domain

// Mentor eligibility is a one-way transition: once a flag is set it is never cleared.
// The Evaluate* functions are pure; callers persist the resulting flag.

type Eligibility int

const (
	Ineligible Eligibility = iota
	Eligible
	// already flagged on an earlier event
	AlreadyEligible
)

func (e Eligibility) Pays() bool {
	return e != Ineligible
}

// EvaluateMentorL1 decides the level-1 override for a sponsor.
func EvaluateMentorL1(sponsor *Member) Eligibility {
	if sponsor.IsMatchingMentorL1 {
		return AlreadyEligible
	}
	if sponsor.Status.AtLeastGold() && sponsor.IsDirectMatch && sponsor.Is21Pass {
		return Eligible
	}
	return Ineligible
}

// RecruitLeg is a direct recruit together with that recruit's own direct recruits.
type RecruitLeg struct {
	Recruit  *Member
	Children []*Member
}

// EvaluateMentorL2 decides the level-2 override for a grand-sponsor given its direct
// recruits. Each side needs a GOLD+ recruit that itself has a GOLD+ direct recruit on
// both of its sides. Only direct recruitment legs are inspected.
func EvaluateMentorL2(grandSponsor *Member, legs []RecruitLeg) Eligibility {
	if grandSponsor.IsMatchingMentorL2 {
		return AlreadyEligible
	}
	if qualifiedLeg(legs, PositionLeft) && qualifiedLeg(legs, PositionRight) {
		return Eligible
	}
	return Ineligible
}

func qualifiedLeg(legs []RecruitLeg, side Position) bool {
	for _, leg := range legs {
		if leg.Recruit.SponsorSide != side || !leg.Recruit.Status.AtLeastGold() {
			continue
		}
		var left, right bool
		for _, c := range leg.Children {
			if !c.Status.AtLeastGold() {
				continue
			}
			switch c.SponsorSide {
			case PositionLeft:
				left = true
			case PositionRight:
				right = true
			}
		}
		if left && right {
			return true
		}
	}
	return false
}

// HasDirectMatch reports whether at least one direct recruit sits on each side.
// Recruit status does not matter.
func HasDirectMatch(recruits []*Member) bool {
	var left, right bool
	for _, r := range recruits {
		switch r.SponsorSide {
		case PositionLeft:
			left = true
		case PositionRight:
			right = true
		}
	}
	return left && right
}

func CountActive(members []*Member) int {
	n := 0
	for _, m := range members {
		if m.Status.IsActive() {
			n++
		}
	}
	return n
}

// RecruitTree is a member's active direct recruits and their active direct counts.
type RecruitTree struct {
	ActiveDirects int
	// active direct count per active direct recruit
	DirectsOfDirects []int
}

// EvaluateRepurchaseGroup applies the repurchase eligibility groups:
// group 1 is open, group 2 needs minDirects active direct recruits,
// group 3 also needs minDirects of those recruits to have minDirects active recruits.
func EvaluateRepurchaseGroup(group EligibilityGroup, tree RecruitTree, minDirects int) bool {
	switch group {
	case GroupOpen:
		return true
	case GroupDirects:
		return tree.ActiveDirects >= minDirects
	case GroupDirectsOfDirects:
		if tree.ActiveDirects < minDirects {
			return false
		}
		qualified := 0
		for _, n := range tree.DirectsOfDirects {
			if n >= minDirects {
				qualified++
			}
		}
		return qualified >= minDirects
	}
	return false
}
