// internal/repository/seat_allocation.go
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/equitylearn/entitlements/internal/domain"
	"github.com/equitylearn/entitlements/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SeatAllocationRepositoryIface interface {
	Create(ctx context.Context, seat *model.SeatAllocation) error
	FindBySubscriptionAndUser(ctx context.Context, subID, userID uuid.UUID) (*model.SeatAllocation, error)
	Update(ctx context.Context, seat *model.SeatAllocation) error
	CountActive(ctx context.Context, subID uuid.UUID) (int64, error)
	FindActiveBySubscription(ctx context.Context, subID uuid.UUID) ([]*model.SeatAllocation, error)
	DeleteBySubscriptions(ctx context.Context, subIDs []uuid.UUID) (int64, error)
}

type SeatAllocationRepository struct {
	db *gorm.DB
}

func NewSeatAllocationRepository(db *gorm.DB) *SeatAllocationRepository {
	return &SeatAllocationRepository{db: db}
}

// Create inserts a new allocation row. A unique-violation on the
// (subscription_id, user_id) index means another request won the race; it is
// surfaced as domain.ErrSeatConflict so the caller can re-read and converge.
func (r *SeatAllocationRepository) Create(ctx context.Context, seat *model.SeatAllocation) error {
	if seat.ID == uuid.Nil {
		seat.ID = uuid.New()
	}
	if seat.AllocatedAt.IsZero() {
		seat.AllocatedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(seat).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSeatConflict
		}
		return fmt.Errorf("creating seat allocation: %w", err)
	}
	return nil
}

func (r *SeatAllocationRepository) FindBySubscriptionAndUser(ctx context.Context, subID, userID uuid.UUID) (*model.SeatAllocation, error) {
	var seat model.SeatAllocation
	if err := r.db.WithContext(ctx).
		First(&seat, "subscription_id = ? AND user_id = ?", subID, userID).Error; err != nil {
		return nil, notFound(err, domain.ErrSeatNotFound)
	}
	return &seat, nil
}

func (r *SeatAllocationRepository) Update(ctx context.Context, seat *model.SeatAllocation) error {
	if err := r.db.WithContext(ctx).Save(seat).Error; err != nil {
		return fmt.Errorf("updating seat allocation: %w", err)
	}
	return nil
}

func (r *SeatAllocationRepository) CountActive(ctx context.Context, subID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.SeatAllocation{}).
		Where("subscription_id = ? AND status = ?", subID, model.SeatActive).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting active seats: %w", err)
	}
	return count, nil
}

func (r *SeatAllocationRepository) FindActiveBySubscription(ctx context.Context, subID uuid.UUID) ([]*model.SeatAllocation, error) {
	var seats []*model.SeatAllocation
	if err := r.db.WithContext(ctx).
		Where("subscription_id = ? AND status = ?", subID, model.SeatActive).
		Find(&seats).Error; err != nil {
		return nil, fmt.Errorf("finding active seats: %w", err)
	}
	return seats, nil
}

func (r *SeatAllocationRepository) DeleteBySubscriptions(ctx context.Context, subIDs []uuid.UUID) (int64, error) {
	if len(subIDs) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Where("subscription_id IN ?", subIDs).Delete(&model.SeatAllocation{})
	if result.Error != nil {
		return 0, fmt.Errorf("deleting seat allocations: %w", result.Error)
	}
	return result.RowsAffected, nil
}
