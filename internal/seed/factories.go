// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"devconnector/internal/models"
	"devconnector/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	statuses = []string{
		"Developer", "Junior Developer", "Senior Developer", "Manager",
		"Student or Learning", "Instructor or Teacher", "Intern", "Other",
	}

	skillPool = []string{
		"JavaScript", "TypeScript", "Go", "Python", "Ruby", "Rust", "Java",
		"HTML", "CSS", "React", "Vue", "Angular", "Node.js", "PostgreSQL",
		"MongoDB", "Redis", "Docker", "Kubernetes", "AWS", "GraphQL",
	}

	degrees = []string{
		"BSc Computer Science", "BA Mathematics", "MSc Software Engineering",
		"Certificate", "Bootcamp Graduate", "PhD Computer Science",
	}

	fields = []string{
		"Computer Science", "Software Engineering", "Mathematics",
		"Information Systems", "Web Development", "Data Science",
	}
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db *gorm.DB
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db}
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	email := gofakeit.Email()
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		Name:     gofakeit.Name(),
		Email:    email,
		Password: string(hashedPassword),
		Avatar:   validation.GravatarURL(email),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return user, nil
}

// CreateProfile constructs and persists a profile for the given user,
// including a couple of experience and education entries.
func (f *Factory) CreateProfile(user *models.User, overrides ...func(*models.Profile)) (*models.Profile, error) {
	profile := &models.Profile{
		UserID:         user.ID,
		Company:        gofakeit.Company(),
		Website:        gofakeit.URL(),
		Location:       fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr()),
		Status:         pick(statuses),
		Skills:         pickN(skillPool, 3+rand.Intn(4)),
		Bio:            gofakeit.Sentence(12),
		GithubUsername: strings.ToLower(gofakeit.Username()),
		Social: models.SocialLinks{
			Twitter:  fmt.Sprintf("https://twitter.com/%s", gofakeit.Username()),
			Linkedin: fmt.Sprintf("https://linkedin.com/in/%s", gofakeit.Username()),
		},
	}

	for i := 0; i < 1+rand.Intn(2); i++ {
		from := gofakeit.DateRange(
			time.Now().AddDate(-8, 0, 0), time.Now().AddDate(-1, 0, 0))
		profile.Experience = append(profile.Experience, models.Experience{
			Title:       gofakeit.JobTitle(),
			Company:     gofakeit.Company(),
			Location:    gofakeit.City(),
			From:        from,
			Current:     i == 0,
			Description: gofakeit.Sentence(10),
		})
	}

	from := gofakeit.DateRange(
		time.Now().AddDate(-10, 0, 0), time.Now().AddDate(-4, 0, 0))
	to := from.AddDate(4, 0, 0)
	profile.Education = append(profile.Education, models.Education{
		School:       fmt.Sprintf("%s University", gofakeit.City()),
		Degree:       pick(degrees),
		FieldOfStudy: pick(fields),
		From:         from,
		To:           &to,
		Description:  gofakeit.Sentence(8),
	})

	for _, override := range overrides {
		override(profile)
	}

	if err := f.db.Create(profile).Error; err != nil {
		return nil, fmt.Errorf("creating profile: %w", err)
	}
	return profile, nil
}

// CreatePost constructs and persists a post authored by the given user.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		UserID: user.ID,
		Text:   gofakeit.Paragraph(1, 2, 8, " "),
		Name:   user.Name,
		Avatar: user.Avatar,
	}

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}
	return post, nil
}

func pick(options []string) string {
	return options[rand.Intn(len(options))]
}

func pickN(options []string, n int) []string {
	shuffled := make([]string, len(options))
	copy(shuffled, options)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}
