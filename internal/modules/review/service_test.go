package review

import (
	"context"
	"testing"

	"angoconnect/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	args := m.Called(ctx, rv)
	if rv != nil && args.Error(0) == nil {
		rv.ID = 601 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockReviewRepository) ExistsForRequest(ctx context.Context, requestID int64) (bool, error) {
	args := m.Called(ctx, requestID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) GetByProfessionalID(ctx context.Context, professionalID int64, limit int) ([]domain.Review, error) {
	args := m.Called(ctx, professionalID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) GetByID(ctx context.Context, id int64) (*domain.ServiceRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceRequest), args.Error(1)
}

type MockProfessionalRepository struct {
	mock.Mock
}

func (m *MockProfessionalRepository) ApplyRating(ctx context.Context, professionalUserID int64, rating int) error {
	args := m.Called(ctx, professionalUserID, rating)
	return args.Error(0)
}

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) NotifyNewReview(ctx context.Context, professionalID, reviewID int64, rating int) error {
	args := m.Called(ctx, professionalID, reviewID, rating)
	return args.Error(0)
}

func completedRequest() *domain.ServiceRequest {
	professionalID := int64(42)
	return &domain.ServiceRequest{
		ID:             3,
		ClientID:       11,
		ProfessionalID: &professionalID,
		Status:         domain.RequestCompleted,
	}
}

func TestCreateReview_Success(t *testing.T) {
	mockReviews := new(MockReviewRepository)
	mockRequests := new(MockRequestRepository)
	mockProfessionals := new(MockProfessionalRepository)
	mockNotifs := new(MockNotificationSender)

	mockRequests.On("GetByID", mock.Anything, int64(3)).Return(completedRequest(), nil)
	mockReviews.On("ExistsForRequest", mock.Anything, int64(3)).Return(false, nil)
	mockReviews.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockProfessionals.On("ApplyRating", mock.Anything, int64(42), 5).Return(nil)
	mockNotifs.On("NotifyNewReview", mock.Anything, int64(42), int64(601), 5).Return(nil)

	service := NewService(mockReviews, mockRequests, mockProfessionals, mockNotifs)

	rv, err := service.CreateReview(context.Background(), 11, CreateReviewRequest{
		ServiceRequestID: 3,
		Rating:           5,
		Comment:          "Excelente trabalho",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(42), rv.ProfessionalID)
	mockProfessionals.AssertExpectations(t)
	mockNotifs.AssertExpectations(t)
}

func TestCreateReview_NotOwner(t *testing.T) {
	mockReviews := new(MockReviewRepository)
	mockRequests := new(MockRequestRepository)

	mockRequests.On("GetByID", mock.Anything, int64(3)).Return(completedRequest(), nil)

	service := NewService(mockReviews, mockRequests, nil, nil)

	_, err := service.CreateReview(context.Background(), 99, CreateReviewRequest{
		ServiceRequestID: 3,
		Rating:           4,
	})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateReview_RequestNotCompleted(t *testing.T) {
	mockReviews := new(MockReviewRepository)
	mockRequests := new(MockRequestRepository)

	professionalID := int64(42)
	mockRequests.On("GetByID", mock.Anything, int64(3)).Return(&domain.ServiceRequest{
		ID:             3,
		ClientID:       11,
		ProfessionalID: &professionalID,
		Status:         domain.RequestInProgress,
	}, nil)

	service := NewService(mockReviews, mockRequests, nil, nil)

	_, err := service.CreateReview(context.Background(), 11, CreateReviewRequest{
		ServiceRequestID: 3,
		Rating:           4,
	})

	assert.ErrorIs(t, err, ErrNotCompleted)
	mockReviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateReview_AlreadyReviewed(t *testing.T) {
	mockReviews := new(MockReviewRepository)
	mockRequests := new(MockRequestRepository)

	mockRequests.On("GetByID", mock.Anything, int64(3)).Return(completedRequest(), nil)
	mockReviews.On("ExistsForRequest", mock.Anything, int64(3)).Return(true, nil)

	service := NewService(mockReviews, mockRequests, nil, nil)

	_, err := service.CreateReview(context.Background(), 11, CreateReviewRequest{
		ServiceRequestID: 3,
		Rating:           4,
	})

	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestCreateReview_InvalidRating(t *testing.T) {
	service := NewService(new(MockReviewRepository), new(MockRequestRepository), nil, nil)

	_, err := service.CreateReview(context.Background(), 11, CreateReviewRequest{
		ServiceRequestID: 3,
		Rating:           6,
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateReview_RequestNotFound(t *testing.T) {
	mockReviews := new(MockReviewRepository)
	mockRequests := new(MockRequestRepository)

	mockRequests.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(mockReviews, mockRequests, nil, nil)

	_, err := service.CreateReview(context.Background(), 11, CreateReviewRequest{
		ServiceRequestID: 404,
		Rating:           4,
	})

	assert.ErrorIs(t, err, ErrNotFound)
}
