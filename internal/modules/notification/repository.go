package notification

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

type notificationModel struct {
	ID          int64      `gorm:"column:id;primaryKey"`
	UserID      int64      `gorm:"column:user_id;index:idx_notifications_user_unread"`
	Type        string     `gorm:"column:type"`
	Title       string     `gorm:"column:title"`
	Message     *string    `gorm:"column:message"`
	RelatedID   *int64     `gorm:"column:related_id"`
	RelatedType *string    `gorm:"column:related_type"`
	IsRead      bool       `gorm:"column:is_read;index:idx_notifications_user_unread"`
	ReadAt      *time.Time `gorm:"column:read_at"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
}

func (notificationModel) TableName() string { return "notifications" }

// Model exposes the row model for schema migration.
func Model() any { return &notificationModel{} }

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func toDomainNotification(m notificationModel) Notification {
	n := Notification{
		ID:        m.ID,
		UserID:    m.UserID,
		Type:      Type(m.Type),
		Title:     m.Title,
		RelatedID: m.RelatedID,
		IsRead:    m.IsRead,
		ReadAt:    m.ReadAt,
		CreatedAt: m.CreatedAt,
	}
	if m.Message != nil {
		n.Message = *m.Message
	}
	if m.RelatedType != nil {
		n.RelatedType = *m.RelatedType
	}
	return n
}

func (r *NotificationRepository) Create(ctx context.Context, n *Notification) error {
	var msg *string
	if n.Message != "" {
		m := n.Message
		msg = &m
	}
	var relatedType *string
	if n.RelatedType != "" {
		rt := n.RelatedType
		relatedType = &rt
	}

	m := &notificationModel{
		UserID:      n.UserID,
		Type:        string(n.Type),
		Title:       n.Title,
		Message:     msg,
		RelatedID:   n.RelatedID,
		RelatedType: relatedType,
		IsRead:      n.IsRead,
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}

	*n = toDomainNotification(*m)
	return nil
}

func (r *NotificationRepository) GetByID(ctx context.Context, id int64) (*Notification, error) {
	var m notificationModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	n := toDomainNotification(m)
	return &n, nil
}

func (r *NotificationRepository) GetByUserID(ctx context.Context, userID int64, limit int) ([]Notification, error) {
	q := r.db.WithContext(ctx).
		Model(&notificationModel{}).
		Where("user_id = ?", userID).
		Order("created_at DESC")

	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []notificationModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]Notification, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainNotification(m))
	}
	return out, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&notificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepository) MarkAsRead(ctx context.Context, id, userID int64) error {
	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&notificationModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{
			"is_read": true,
			"read_at": now,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// GetUnreadIDs collects the current unread id list; used by mark-all, which
// then writes constrained to exactly that list.
func (r *NotificationRepository) GetUnreadIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&notificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *NotificationRepository) MarkReadByIDs(ctx context.Context, userID int64, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&notificationModel{}).
		Where("user_id = ? AND id IN ?", userID, ids).
		Updates(map[string]any{
			"is_read": true,
			"read_at": now,
		}).Error
}
