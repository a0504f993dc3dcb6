package service

import (
	"context"
	"testing"

	"devconnector/internal/database"
	"devconnector/internal/models"
	"devconnector/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type profileTestEnv struct {
	db       *gorm.DB
	users    repository.UserRepository
	profiles *ProfileService
	posts    *PostService
}

func newProfileEnv(t *testing.T) *profileTestEnv {
	t.Helper()
	db, err := database.OpenTestDB()
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	postRepo := repository.NewPostRepository(db)

	return &profileTestEnv{
		db:       db,
		users:    userRepo,
		profiles: NewProfileService(profileRepo, userRepo, db),
		posts:    NewPostService(postRepo, userRepo),
	}
}

func (e *profileTestEnv) createUser(t *testing.T, email string) *models.User {
	t.Helper()
	user := &models.User{Name: "Test User", Email: email, Password: "hash"}
	require.NoError(t, e.users.Create(context.Background(), user))
	return user
}

func TestUpsertProfileCreatesThenReplaces(t *testing.T) {
	env := newProfileEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "ann@example.com")

	first, err := env.profiles.UpsertProfile(ctx, UpsertProfileInput{
		UserID:  user.ID,
		Status:  "Developer",
		Skills:  "Go, SQL, Redis",
		Company: "Acme",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "SQL", "Redis"}, first.Skills)

	// Second upsert replaces skills entirely and clears omitted fields.
	second, err := env.profiles.UpsertProfile(ctx, UpsertProfileInput{
		UserID: user.ID,
		Status: "Manager",
		Skills: "Python",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, []string{"Python"}, second.Skills)
	assert.Empty(t, second.Company)

	got, err := env.profiles.GetOwnProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Python"}, got.Skills)
}

func TestUpsertProfileValidation(t *testing.T) {
	env := newProfileEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "bob@example.com")

	_, err := env.profiles.UpsertProfile(ctx, UpsertProfileInput{UserID: user.ID, Skills: "Go"})
	require.Error(t, err)

	_, err = env.profiles.UpsertProfile(ctx, UpsertProfileInput{UserID: user.ID, Status: "Developer", Skills: " , ,"})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, models.CodeValidation, appErr.Code)
}

func TestAddRemoveExperienceRestoresProfile(t *testing.T) {
	env := newProfileEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "carol@example.com")

	_, err := env.profiles.UpsertProfile(ctx, UpsertProfileInput{
		UserID: user.ID, Status: "Developer", Skills: "Go",
	})
	require.NoError(t, err)

	before, err := env.profiles.GetOwnProfile(ctx, user.ID)
	require.NoError(t, err)

	after, err := env.profiles.AddExperience(ctx, AddExperienceInput{
		UserID:  user.ID,
		Title:   "Engineer",
		Company: "Acme",
		From:    "2020-01-01",
		Current: true,
	})
	require.NoError(t, err)
	require.Len(t, after.Experience, len(before.Experience)+1)

	restored, err := env.profiles.RemoveExperience(ctx, user.ID, after.Experience[0].ID)
	require.NoError(t, err)
	assert.Len(t, restored.Experience, len(before.Experience))
}

func TestAddExperienceDateValidation(t *testing.T) {
	env := newProfileEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "dave@example.com")

	_, err := env.profiles.UpsertProfile(ctx, UpsertProfileInput{
		UserID: user.ID, Status: "Developer", Skills: "Go",
	})
	require.NoError(t, err)

	_, err = env.profiles.AddExperience(ctx, AddExperienceInput{
		UserID: user.ID, Title: "Engineer", Company: "Acme",
	})
	require.Error(t, err)

	_, err = env.profiles.AddExperience(ctx, AddExperienceInput{
		UserID: user.ID, Title: "Engineer", Company: "Acme", From: "not-a-date",
	})
	require.Error(t, err)

	// RFC 3339 timestamps also parse.
	_, err = env.profiles.AddExperience(ctx, AddExperienceInput{
		UserID: user.ID, Title: "Engineer", Company: "Acme", From: "2020-01-01T00:00:00Z",
	})
	require.NoError(t, err)
}

func TestAddEducationRequiredFields(t *testing.T) {
	env := newProfileEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "erin@example.com")

	_, err := env.profiles.UpsertProfile(ctx, UpsertProfileInput{
		UserID: user.ID, Status: "Student or Learning", Skills: "Go",
	})
	require.NoError(t, err)

	_, err = env.profiles.AddEducation(ctx, AddEducationInput{
		UserID: user.ID, School: "State", Degree: "BSc", From: "2015-09-01",
	})
	require.Error(t, err) // field of study missing

	profile, err := env.profiles.AddEducation(ctx, AddEducationInput{
		UserID: user.ID, School: "State", Degree: "BSc",
		FieldOfStudy: "Computer Science", From: "2015-09-01", To: "2019-06-01",
	})
	require.NoError(t, err)
	require.Len(t, profile.Education, 1)
	require.NotNil(t, profile.Education[0].To)
}

func TestDeleteAccountCascades(t *testing.T) {
	env := newProfileEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "frank@example.com")
	other := env.createUser(t, "grace@example.com")

	_, err := env.profiles.UpsertProfile(ctx, UpsertProfileInput{
		UserID: user.ID, Status: "Developer", Skills: "Go",
	})
	require.NoError(t, err)
	_, err = env.profiles.AddExperience(ctx, AddExperienceInput{
		UserID: user.ID, Title: "Engineer", Company: "Acme", From: "2020-01-01",
	})
	require.NoError(t, err)

	post, err := env.posts.CreatePost(ctx, CreatePostInput{UserID: user.ID, Text: "goodbye"})
	require.NoError(t, err)
	_, err = env.posts.LikePost(ctx, other.ID, post.ID)
	require.NoError(t, err)
	_, err = env.posts.AddComment(ctx, AddCommentInput{UserID: other.ID, PostID: post.ID, Text: "bye"})
	require.NoError(t, err)

	require.NoError(t, env.profiles.DeleteAccount(ctx, user.ID))

	// Everything owned by the user is gone, including rows under posts.
	_, err = env.profiles.GetOwnProfile(ctx, user.ID)
	require.Error(t, err)
	_, err = env.posts.GetPost(ctx, post.ID)
	require.Error(t, err)
	_, err = env.users.GetByID(ctx, user.ID)
	require.Error(t, err)

	var likeCount, commentCount, expCount int64
	require.NoError(t, env.db.Model(&models.Like{}).Count(&likeCount).Error)
	require.NoError(t, env.db.Model(&models.Comment{}).Count(&commentCount).Error)
	require.NoError(t, env.db.Model(&models.Experience{}).Count(&expCount).Error)
	assert.Zero(t, likeCount)
	assert.Zero(t, commentCount)
	assert.Zero(t, expCount)

	// The other user survives.
	survivor, err := env.users.GetByID(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, other.ID, survivor.ID)
}

func TestDeleteAccountWithoutProfile(t *testing.T) {
	env := newProfileEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "henry@example.com")

	require.NoError(t, env.profiles.DeleteAccount(ctx, user.ID))

	_, err := env.users.GetByID(ctx, user.ID)
	require.Error(t, err)
}
