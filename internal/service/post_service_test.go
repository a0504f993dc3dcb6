package service

import (
	"context"
	"testing"

	"devconnector/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPostRepository is a mock of the PostRepository interface
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context) ([]*models.Post, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) Like(ctx context.Context, userID, postID uint) error {
	args := m.Called(ctx, userID, postID)
	return args.Error(0)
}

func (m *MockPostRepository) Unlike(ctx context.Context, userID, postID uint) error {
	args := m.Called(ctx, userID, postID)
	return args.Error(0)
}

func (m *MockPostRepository) Likes(ctx context.Context, postID uint) ([]models.Like, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).([]models.Like), args.Error(1)
}

func (m *MockPostRepository) AddComment(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockPostRepository) GetComment(ctx context.Context, postID, commentID uint) (*models.Comment, error) {
	args := m.Called(ctx, postID, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockPostRepository) RemoveComment(ctx context.Context, postID, commentID uint) error {
	args := m.Called(ctx, postID, commentID)
	return args.Error(0)
}

func (m *MockPostRepository) Comments(ctx context.Context, postID uint) ([]models.Comment, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).([]models.Comment), args.Error(1)
}

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCreatePostSnapshotsAuthor(t *testing.T) {
	postRepo := new(MockPostRepository)
	userRepo := new(MockUserRepository)
	svc := NewPostService(postRepo, userRepo)
	ctx := context.Background()

	author := &models.User{ID: 7, Name: "Ann", Avatar: "https://example.com/ann.png"}
	userRepo.On("GetByID", mock.Anything, uint(7)).Return(author, nil)
	postRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Post) bool {
		return p.Name == "Ann" && p.Avatar == author.Avatar && p.Text == "hello"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Post).ID = 42
	}).Return(nil)
	postRepo.On("GetByID", mock.Anything, uint(42)).Return(&models.Post{
		ID: 42, UserID: 7, Text: "hello", Name: "Ann",
		Likes: []models.Like{}, Comments: []models.Comment{},
	}, nil)

	post, err := svc.CreatePost(ctx, CreatePostInput{UserID: 7, Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, uint(42), post.ID)
	assert.Empty(t, post.Likes)
	postRepo.AssertExpectations(t)
}

func TestCreatePostRequiresText(t *testing.T) {
	svc := NewPostService(new(MockPostRepository), new(MockUserRepository))

	_, err := svc.CreatePost(context.Background(), CreatePostInput{UserID: 1, Text: "   "})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, models.CodeValidation, appErr.Code)
}

func TestDeletePostAuthorOnly(t *testing.T) {
	postRepo := new(MockPostRepository)
	svc := NewPostService(postRepo, new(MockUserRepository))
	ctx := context.Background()

	postRepo.On("GetByID", mock.Anything, uint(5)).Return(&models.Post{ID: 5, UserID: 1}, nil)

	err := svc.DeletePost(ctx, 2, 5)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, models.CodeForbidden, appErr.Code)
	postRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeletePostByAuthor(t *testing.T) {
	postRepo := new(MockPostRepository)
	svc := NewPostService(postRepo, new(MockUserRepository))
	ctx := context.Background()

	postRepo.On("GetByID", mock.Anything, uint(5)).Return(&models.Post{ID: 5, UserID: 1}, nil)
	postRepo.On("Delete", mock.Anything, uint(5)).Return(nil)

	require.NoError(t, svc.DeletePost(ctx, 1, 5))
	postRepo.AssertExpectations(t)
}

func TestUnlikeWithoutLikeConflicts(t *testing.T) {
	postRepo := new(MockPostRepository)
	svc := NewPostService(postRepo, new(MockUserRepository))
	ctx := context.Background()

	postRepo.On("GetByID", mock.Anything, uint(3)).Return(&models.Post{ID: 3, UserID: 9}, nil)
	postRepo.On("IsLiked", mock.Anything, uint(1), uint(3)).Return(false, nil)

	_, err := svc.UnlikePost(ctx, 1, 3)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, models.CodeConflict, appErr.Code)
	assert.Equal(t, "post has not been liked", appErr.Message)
}

func TestUnlikeAfterLikeSucceeds(t *testing.T) {
	postRepo := new(MockPostRepository)
	svc := NewPostService(postRepo, new(MockUserRepository))
	ctx := context.Background()

	postRepo.On("GetByID", mock.Anything, uint(3)).Return(&models.Post{ID: 3, UserID: 9}, nil)
	postRepo.On("IsLiked", mock.Anything, uint(1), uint(3)).Return(true, nil)
	postRepo.On("Unlike", mock.Anything, uint(1), uint(3)).Return(nil)
	postRepo.On("Likes", mock.Anything, uint(3)).Return([]models.Like{}, nil)

	likes, err := svc.UnlikePost(ctx, 1, 3)
	require.NoError(t, err)
	assert.Empty(t, likes)
}

func TestRemoveCommentOwnership(t *testing.T) {
	postRepo := new(MockPostRepository)
	svc := NewPostService(postRepo, new(MockUserRepository))
	ctx := context.Background()

	postRepo.On("GetByID", mock.Anything, uint(3)).Return(&models.Post{ID: 3, UserID: 9}, nil)
	postRepo.On("GetComment", mock.Anything, uint(3), uint(8)).Return(&models.Comment{
		ID: 8, PostID: 3, UserID: 2, Text: "not yours",
	}, nil)

	_, err := svc.RemoveComment(ctx, 1, 3, 8)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, models.CodeForbidden, appErr.Code)
}

func TestAddCommentSnapshotsAuthor(t *testing.T) {
	postRepo := new(MockPostRepository)
	userRepo := new(MockUserRepository)
	svc := NewPostService(postRepo, userRepo)
	ctx := context.Background()

	postRepo.On("GetByID", mock.Anything, uint(3)).Return(&models.Post{ID: 3, UserID: 9}, nil)
	userRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.User{
		ID: 1, Name: "Ann", Avatar: "https://example.com/ann.png",
	}, nil)
	postRepo.On("AddComment", mock.Anything, mock.MatchedBy(func(c *models.Comment) bool {
		return c.Name == "Ann" && c.PostID == 3 && c.Text == "nice"
	})).Return(nil)
	postRepo.On("Comments", mock.Anything, uint(3)).Return([]models.Comment{
		{ID: 11, PostID: 3, UserID: 1, Text: "nice", Name: "Ann"},
	}, nil)

	comments, err := svc.AddComment(ctx, AddCommentInput{UserID: 1, PostID: 3, Text: "nice"})
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "Ann", comments[0].Name)
}
