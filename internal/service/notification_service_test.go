package service

import (
	"context"
	"testing"

	"careerpilot-be/internal/model"
	"careerpilot-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNotifRepo struct {
	types   map[string]*model.NotificationType
	created []*model.Notification
}

func (r *stubNotifRepo) CreateNotification(ctx context.Context, n *model.Notification) error {
	r.created = append(r.created, n)
	return nil
}

func (r *stubNotifRepo) GetNotificationsByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	return nil, 0, nil
}

func (r *stubNotifRepo) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return 0, nil
}

func (r *stubNotifRepo) MarkAsRead(ctx context.Context, id uuid.UUID) error { return nil }

func (r *stubNotifRepo) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error { return nil }

func (r *stubNotifRepo) GetNotificationTypeByCode(ctx context.Context, code string) (*model.NotificationType, error) {
	if t, ok := r.types[code]; ok {
		return t, nil
	}
	return nil, assert.AnError
}

type stubDelivery struct {
	sent []model.Notification
}

func (d *stubDelivery) Send(userID uuid.UUID, notification model.Notification) {
	d.sent = append(d.sent, notification)
}

func TestHandleEventBuildsAndDeliversNotification(t *testing.T) {
	userID := uuid.New()
	resumeID := uuid.New()

	repo := &stubNotifRepo{types: map[string]*model.NotificationType{
		"RESUME_ANALYZED": {
			Code:        "RESUME_ANALYZED",
			DisplayName: "Resume Analyzed",
			Template:    "Your resume \"{title}\" is ready",
			IsActive:    true,
		},
	}}
	delivery := &stubDelivery{}
	svc := NewNotificationService(repo, nil, delivery, nopLogger{})

	evt := events.NewEvent("events.RESUME_ANALYZED", map[string]interface{}{
		"user_id":     userID.String(),
		"title":       "Staff Engineer CV",
		"entity_type": "resume",
		"entity_id":   resumeID.String(),
	})

	err := svc.handleEvent(context.Background(), evt)
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	n := repo.created[0]
	assert.Equal(t, userID, n.UserID)
	assert.Equal(t, "RESUME_ANALYZED", n.TypeCode)
	assert.Equal(t, `Your resume "Staff Engineer CV" is ready`, n.Message)
	assert.Equal(t, "resume", n.EntityType)
	require.NotNil(t, n.EntityID)
	assert.Equal(t, resumeID, *n.EntityID)

	require.Len(t, delivery.sent, 1)
	assert.Equal(t, n.ID, delivery.sent[0].ID)
}

func TestHandleEventDropsUnknownType(t *testing.T) {
	repo := &stubNotifRepo{types: map[string]*model.NotificationType{}}
	delivery := &stubDelivery{}
	svc := NewNotificationService(repo, nil, delivery, nopLogger{})

	evt := events.NewEvent("events.SOMETHING_ELSE", map[string]interface{}{
		"user_id": uuid.New().String(),
	})

	err := svc.handleEvent(context.Background(), evt)
	require.NoError(t, err, "unknown event types are dropped, not retried")
	assert.Empty(t, repo.created)
	assert.Empty(t, delivery.sent)
}

func TestHandleEventIgnoresInactiveType(t *testing.T) {
	repo := &stubNotifRepo{types: map[string]*model.NotificationType{
		"USER_LOGIN": {Code: "USER_LOGIN", Template: "You logged in", IsActive: false},
	}}
	delivery := &stubDelivery{}
	svc := NewNotificationService(repo, nil, delivery, nopLogger{})

	evt := events.NewEvent("events.USER_LOGIN", map[string]interface{}{
		"user_id": uuid.New().String(),
	})

	err := svc.handleEvent(context.Background(), evt)
	require.NoError(t, err)
	assert.Empty(t, repo.created)
}

func TestHandleEventRequiresUserID(t *testing.T) {
	repo := &stubNotifRepo{types: map[string]*model.NotificationType{
		"USER_LOGIN": {Code: "USER_LOGIN", Template: "You logged in", IsActive: true},
	}}
	svc := NewNotificationService(repo, nil, &stubDelivery{}, nopLogger{})

	evt := events.NewEvent("events.USER_LOGIN", map[string]interface{}{})

	err := svc.handleEvent(context.Background(), evt)
	require.NoError(t, err)
	assert.Empty(t, repo.created)
}
