package domain

import "errors"

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidMember    = errors.New("invalid member id")
	ErrInvalidTier      = errors.New("invalid tier")
	ErrInvalidSide      = errors.New("invalid side")
	ErrInvalidScope     = errors.New("invalid power scope")
	ErrInvalidCategory  = errors.New("category has no income wallet")
	ErrSlotOccupied     = errors.New("placement slot already occupied")
	ErrSponsorNotInTree = errors.New("sponsor is not an upline of the placement parent")
	ErrMemberExists     = errors.New("member already exists")

	ErrMemberNotFound = errors.New("member not found")
	ErrBatchNotFound  = errors.New("payout batch not found")

	ErrVersionConflict = errors.New("member was modified concurrently")
	ErrLockTimeout     = errors.New("failed to acquire chain lock")
	ErrPartialCascade  = errors.New("cascade partially applied")
	ErrDuplicateEvent  = errors.New("event already processed")
	ErrCycleDetected   = errors.New("cycle detected in member chain")
)
