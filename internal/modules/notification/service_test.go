package notification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, n *Notification) error {
	args := m.Called(ctx, n)
	if n != nil && args.Error(0) == nil {
		n.ID = 701 // simulate DB insert
		n.CreatedAt = time.Now()
	}
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Notification), args.Error(1)
}

func (m *MockRepository) GetByUserID(ctx context.Context, userID int64, limit int) ([]Notification, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Notification), args.Error(1)
}

func (m *MockRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) MarkAsRead(ctx context.Context, id, userID int64) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockRepository) GetUnreadIDs(ctx context.Context, userID int64) ([]int64, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockRepository) MarkReadByIDs(ctx context.Context, userID int64, ids []int64) error {
	args := m.Called(ctx, userID, ids)
	return args.Error(0)
}

type MockPusher struct {
	mock.Mock
}

func (m *MockPusher) SendToUser(userID int64, message any) bool {
	args := m.Called(userID, message)
	return args.Bool(0)
}

func TestCreate_PushesRealtimeEvent(t *testing.T) {
	mockRepo := new(MockRepository)
	mockPusher := new(MockPusher)

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockPusher.On("SendToUser", int64(11), mock.MatchedBy(func(msg any) bool {
		ev, ok := msg.(realtimeEvent)
		return ok && ev.Event == "notification.created" && ev.Notification.ID == 701
	})).Return(true)

	service := NewService(mockRepo, mockPusher)

	n := &Notification{
		UserID: 11,
		Type:   TypeNewProposal,
		Title:  "Nova proposta recebida",
	}
	err := service.Create(context.Background(), n)

	assert.NoError(t, err)
	assert.Equal(t, int64(701), n.ID)
	mockPusher.AssertExpectations(t)
}

func TestCreate_OfflineRecipientStillPersisted(t *testing.T) {
	mockRepo := new(MockRepository)
	mockPusher := new(MockPusher)

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockPusher.On("SendToUser", int64(11), mock.Anything).Return(false)

	service := NewService(mockRepo, mockPusher)

	err := service.Create(context.Background(), &Notification{
		UserID: 11,
		Type:   TypeWorkStarted,
		Title:  "Serviço iniciado",
	})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestMarkAsRead_Success(t *testing.T) {
	mockRepo := new(MockRepository)
	mockPusher := new(MockPusher)

	readAt := time.Now()
	mockRepo.On("MarkAsRead", mock.Anything, int64(5), int64(11)).Return(nil)
	mockRepo.On("GetByID", mock.Anything, int64(5)).Return(&Notification{
		ID:     5,
		UserID: 11,
		IsRead: true,
		ReadAt: &readAt,
	}, nil)
	mockPusher.On("SendToUser", int64(11), mock.MatchedBy(func(msg any) bool {
		ev, ok := msg.(realtimeEvent)
		return ok && ev.Event == "notification.read"
	})).Return(true)

	service := NewService(mockRepo, mockPusher)

	n, err := service.MarkAsRead(context.Background(), 5, 11)

	assert.NoError(t, err)
	assert.True(t, n.IsRead)
	assert.NotNil(t, n.ReadAt)
	mockPusher.AssertExpectations(t)
}

func TestMarkAsRead_NotOwnedReturnsNotFound(t *testing.T) {
	mockRepo := new(MockRepository)

	mockRepo.On("MarkAsRead", mock.Anything, int64(5), int64(99)).Return(ErrNotificationNotFound)

	service := NewService(mockRepo, nil)

	_, err := service.MarkAsRead(context.Background(), 5, 99)

	assert.ErrorIs(t, err, ErrNotFound)
	mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestMarkAllAsRead_UsesSnapshotIDList(t *testing.T) {
	mockRepo := new(MockRepository)

	ids := []int64{1, 2, 3}
	mockRepo.On("GetUnreadIDs", mock.Anything, int64(11)).Return(ids, nil)
	mockRepo.On("MarkReadByIDs", mock.Anything, int64(11), ids).Return(nil)

	service := NewService(mockRepo, nil)

	marked, err := service.MarkAllAsRead(context.Background(), 11)

	assert.NoError(t, err)
	assert.Equal(t, 3, marked)
	mockRepo.AssertExpectations(t)
}

func TestMarkAllAsRead_NothingUnread(t *testing.T) {
	mockRepo := new(MockRepository)

	mockRepo.On("GetUnreadIDs", mock.Anything, int64(11)).Return([]int64{}, nil)

	service := NewService(mockRepo, nil)

	marked, err := service.MarkAllAsRead(context.Background(), 11)

	assert.NoError(t, err)
	assert.Equal(t, 0, marked)
	mockRepo.AssertNotCalled(t, "MarkReadByIDs", mock.Anything, mock.Anything, mock.Anything)
}

func TestNotifyProposalReceived_BuildsPortugueseNotification(t *testing.T) {
	mockRepo := new(MockRepository)

	var captured *Notification
	mockRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(1).(*Notification)
	}).Return(nil)

	service := NewService(mockRepo, nil)

	err := service.NotifyProposalReceived(context.Background(), 11, 3, 501, 80)

	assert.NoError(t, err)
	assert.Equal(t, TypeNewProposal, captured.Type)
	assert.Equal(t, int64(11), captured.UserID)
	assert.Equal(t, "proposal", captured.RelatedType)
	assert.Equal(t, int64(501), *captured.RelatedID)
	assert.Contains(t, captured.Message, "80.00")
}

func TestList_ClampsLimit(t *testing.T) {
	mockRepo := new(MockRepository)

	mockRepo.On("GetByUserID", mock.Anything, int64(11), 50).Return([]Notification{}, nil)

	service := NewService(mockRepo, nil)

	_, err := service.List(context.Background(), 11, 500)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
