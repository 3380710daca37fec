package repository

import (
	"context"
	"errors"

	"github.com/zaylabs/dryclean-api/internal/domain/entity"
	domainRepo "github.com/zaylabs/dryclean-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type receiptSequenceRepository struct {
	db *gorm.DB
}

// NewReceiptSequenceRepository creates a new receipt sequence repository
func NewReceiptSequenceRepository(db *gorm.DB) domainRepo.ReceiptSequenceRepository {
	return &receiptSequenceRepository{db: db}
}

// Next uses SELECT ... FOR UPDATE so concurrent bookings for one branch queue
// on the counter row until the holder commits.
func (r *receiptSequenceRepository) Next(ctx context.Context, branchCode string, highest func(ctx context.Context) (int, error)) (int, error) {
	db := conn(ctx, r.db)

	seq, err := r.lock(db, branchCode)
	if err != nil {
		return 0, err
	}
	if seq == nil {
		start, err := highest(ctx)
		if err != nil {
			return 0, err
		}
		seed := entity.ReceiptSequence{BranchCode: branchCode, LastNumber: start}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
			return 0, err
		}
		// Another booking may have seeded the row first; lock whichever won.
		if seq, err = r.lock(db, branchCode); err != nil {
			return 0, err
		}
		if seq == nil {
			return 0, errors.New("receipt sequence row missing after seeding")
		}
	}

	next := seq.LastNumber + 1
	err = db.Model(&entity.ReceiptSequence{}).
		Where("branch_code = ?", branchCode).
		Update("last_number", next).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}

func (r *receiptSequenceRepository) lock(db *gorm.DB, branchCode string) (*entity.ReceiptSequence, error) {
	var seq entity.ReceiptSequence
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&seq, "branch_code = ?", branchCode).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &seq, nil
}
