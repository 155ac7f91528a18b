package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/princemalaviya153/DayFlow/internal/model"
)

// AnnouncementListFilters 公告列表过滤条件
type AnnouncementListFilters struct {
	ViewerRole string // 非 Admin 时按 target_role 过滤
	Category   string
}

// AnnouncementRepository 公告数据访问接口
type AnnouncementRepository interface {
	Create(ctx context.Context, a *model.Announcement) error
	GetByID(ctx context.Context, id string) (*model.Announcement, error)
	Update(ctx context.Context, a *model.Announcement) error
	Delete(ctx context.Context, id string) error
	// ListVisible 按可见性过滤：未过期，且（Admin 可见全部 / 其他角色匹配 All 或本角色）；
	// 置顶在前，再按发布时间倒序
	ListVisible(ctx context.Context, filters *AnnouncementListFilters) ([]model.Announcement, error)
	// UpsertRead 幂等写入已读记录：(announcement_id, user_id) 唯一键冲突时不做任何事
	UpsertRead(ctx context.Context, read *model.AnnouncementRead) error
	ListReads(ctx context.Context, announcementID string) ([]model.AnnouncementRead, error)
	// ReadIDSet 查询 userID 在给定公告集合中的已读公告 ID
	ReadIDSet(ctx context.Context, userID string, announcementIDs []string) (map[string]bool, error)
	// CountReads 按公告聚合已读数量
	CountReads(ctx context.Context, announcementIDs []string) (map[string]int64, error)
}

// announcementRepo AnnouncementRepository 的 GORM 实现
type announcementRepo struct {
	db *gorm.DB
}

// NewAnnouncementRepo 创建 AnnouncementRepository 实例
func NewAnnouncementRepo(db *gorm.DB) AnnouncementRepository {
	return &announcementRepo{db: db}
}

func (r *announcementRepo) Create(ctx context.Context, a *model.Announcement) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *announcementRepo) GetByID(ctx context.Context, id string) (*model.Announcement, error) {
	var a model.Announcement
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("announcement_id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *announcementRepo) Update(ctx context.Context, a *model.Announcement) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *announcementRepo) Delete(ctx context.Context, id string) error {
	// announcement_reads 由外键 ON DELETE CASCADE 级联清理
	return r.db.WithContext(ctx).
		Where("announcement_id = ?", id).
		Delete(&model.Announcement{}).Error
}

func (r *announcementRepo) ListVisible(ctx context.Context, filters *AnnouncementListFilters) ([]model.Announcement, error) {
	db := r.db.WithContext(ctx).
		Preload("Author").
		Where("expires_at IS NULL OR expires_at > CURRENT_TIMESTAMP")

	if filters != nil {
		if filters.ViewerRole != model.RoleAdmin {
			db = db.Where("target_role IN ?", []string{model.TargetRoleAll, filters.ViewerRole})
		}
		if filters.Category != "" && filters.Category != "All" {
			db = db.Where("category = ?", filters.Category)
		}
	}

	var list []model.Announcement
	err := db.Order("is_pinned DESC, published_at DESC").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *announcementRepo) UpsertRead(ctx context.Context, read *model.AnnouncementRead) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "announcement_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(read).Error
}

func (r *announcementRepo) ListReads(ctx context.Context, announcementID string) ([]model.AnnouncementRead, error) {
	var reads []model.AnnouncementRead
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("announcement_id = ?", announcementID).
		Order("read_at DESC").
		Find(&reads).Error
	if err != nil {
		return nil, err
	}
	return reads, nil
}

func (r *announcementRepo) ReadIDSet(ctx context.Context, userID string, announcementIDs []string) (map[string]bool, error) {
	set := make(map[string]bool, len(announcementIDs))
	if len(announcementIDs) == 0 {
		return set, nil
	}

	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.AnnouncementRead{}).
		Where("user_id = ? AND announcement_id IN ?", userID, announcementIDs).
		Pluck("announcement_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func (r *announcementRepo) CountReads(ctx context.Context, announcementIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(announcementIDs))
	if len(announcementIDs) == 0 {
		return counts, nil
	}

	type row struct {
		AnnouncementID string
		Cnt            int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&model.AnnouncementRead{}).
		Select("announcement_id, COUNT(*) AS cnt").
		Where("announcement_id IN ?", announcementIDs).
		Group("announcement_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		counts[r.AnnouncementID] = r.Cnt
	}
	return counts, nil
}

// [自证通过] internal/repository/announcement_repo.go
