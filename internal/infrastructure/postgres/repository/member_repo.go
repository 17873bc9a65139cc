package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/postgres/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DefaultMemberRepository struct {
	DB *gorm.DB
}

func NewDefaultMemberRepository(db *gorm.DB) *DefaultMemberRepository {
	return &DefaultMemberRepository{DB: db}
}

var walletColumns = map[domain.WalletType]string{
	domain.WalletMatching:   "matching_wallet",
	domain.WalletHold:       "hold_wallet",
	domain.WalletUpgrade:    "upgrade_wallet",
	domain.WalletFranchise:  "franchise_wallet",
	domain.WalletRepurchase: "repurchase_wallet",
}

func (r *DefaultMemberRepository) GetMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	var model models.MemberModel
	if err := r.DB.WithContext(ctx).First(&model, "id = ?", memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("member %s: %w", memberID, domain.ErrMemberNotFound)
		}
		return nil, err
	}
	return mappers.ToDomainMember(&model), nil
}

func (r *DefaultMemberRepository) GetDirectRecruits(ctx context.Context, sponsorID string) ([]*domain.Member, error) {
	var memberModels []models.MemberModel
	if err := r.DB.WithContext(ctx).
		Where("sponsor_id = ?", sponsorID).
		Order("created_at ASC").
		Find(&memberModels).Error; err != nil {
		return nil, err
	}
	return toDomainMembers(memberModels), nil
}

func (r *DefaultMemberRepository) GetChild(ctx context.Context, parentID string, side domain.Position) (*domain.Member, error) {
	var model models.MemberModel
	err := r.DB.WithContext(ctx).
		Where("parent_id = ? AND position = ?", parentID, string(side)).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	return mappers.ToDomainMember(&model), nil
}

func (r *DefaultMemberRepository) CreateMember(ctx context.Context, member *domain.Member) error {
	model := mappers.ToGORMMember(member)
	if err := r.DB.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrMemberExists
		}
		return err
	}
	return nil
}

func (r *DefaultMemberRepository) SaveMember(ctx context.Context, member *domain.Member, entries []*domain.WalletTransaction) error {
	tx := r.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	var committed bool
	defer func() {
		if !committed {
			if err := tx.Rollback().Error; err != nil && !errors.Is(err, gorm.ErrInvalidTransaction) {
				slog.Error("failed to rollback member transaction", "member_id", member.ID, "error", err)
			}
		}
	}()

	version, updatedAt, err := saveMemberTx(tx, member, entries)
	if err != nil {
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit member %s: %w", member.ID, err)
	}
	committed = true

	member.Version = version
	member.UpdatedAt = updatedAt
	return nil
}

// saveMemberTx performs the versioned row update and appends the ledger entries.
// It returns the new version without touching member, so a rolled back caller
// keeps a consistent in-memory copy.
func saveMemberTx(tx *gorm.DB, member *domain.Member, entries []*domain.WalletTransaction) (int64, time.Time, error) {
	model := mappers.ToGORMMember(member)
	model.Version = member.Version + 1
	model.UpdatedAt = time.Now()

	res := tx.Model(&models.MemberModel{}).
		Where("id = ? AND version = ?", member.ID, member.Version).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if res.Error != nil {
		return 0, time.Time{}, fmt.Errorf("failed to update member %s: %w", member.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, time.Time{}, fmt.Errorf("member %s at version %d: %w", member.ID, member.Version, domain.ErrVersionConflict)
	}

	if len(entries) > 0 {
		entryModels := make([]*models.WalletTransactionModel, 0, len(entries))
		for _, entry := range entries {
			entryModels = append(entryModels, mappers.ToGORMWalletTransaction(entry))
		}
		if err := tx.Create(&entryModels).Error; err != nil {
			return 0, time.Time{}, fmt.Errorf("failed to append ledger of %s: %w", member.ID, err)
		}
	}
	return model.Version, model.UpdatedAt, nil
}

func (r *DefaultMemberRepository) FindMembersWithWallet(
	ctx context.Context,
	wallet domain.WalletType,
	minAmount decimal.Decimal,
	afterID string,
	limit int,
) ([]*domain.Member, error) {
	column, ok := walletColumns[wallet]
	if !ok {
		return nil, fmt.Errorf("unknown wallet %q", wallet)
	}

	var memberModels []models.MemberModel
	if err := r.DB.WithContext(ctx).
		Where(column+" >= ? AND "+column+" > 0", minAmount).
		Where("id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Find(&memberModels).Error; err != nil {
		return nil, err
	}
	return toDomainMembers(memberModels), nil
}

func (r *DefaultMemberRepository) FindMembersWithDeposit(ctx context.Context, afterID string, limit int) ([]*domain.Member, error) {
	var memberModels []models.MemberModel
	if err := r.DB.WithContext(ctx).
		Where("security_deposit > 0 AND sdr_percentage > 0").
		Where("id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Find(&memberModels).Error; err != nil {
		return nil, err
	}
	return toDomainMembers(memberModels), nil
}

func (r *DefaultMemberRepository) GetTransactions(ctx context.Context, memberID string) ([]*domain.WalletTransaction, error) {
	var txModels []models.WalletTransactionModel
	if err := r.DB.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("created_at ASC").
		Find(&txModels).Error; err != nil {
		return nil, err
	}

	txs := make([]*domain.WalletTransaction, 0, len(txModels))
	for i := range txModels {
		txs = append(txs, mappers.ToDomainWalletTransaction(&txModels[i]))
	}
	return txs, nil
}

func toDomainMembers(memberModels []models.MemberModel) []*domain.Member {
	members := make([]*domain.Member, 0, len(memberModels))
	for i := range memberModels {
		members = append(members, mappers.ToDomainMember(&memberModels[i]))
	}
	return members
}
