package seed

import (
	"fmt"
	"log"
	"math/rand"

	"devconnector/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Seeder populates the database with a realistic developer community:
// users with profiles, posts, likes and comments.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a new Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{
		db:      db,
		factory: NewFactory(db),
	}
}

// ClearAll removes all seeded data. Child tables go first to satisfy
// foreign keys.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	tables := []any{
		&models.Like{}, &models.Comment{}, &models.Post{},
		&models.Experience{}, &models.Education{}, &models.Profile{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Unscoped().Where("1 = 1").Delete(table).Error; err != nil {
			return fmt.Errorf("clearing table %T: %w", table, err)
		}
	}
	return nil
}

// SeedCommunity creates numUsers users, gives most of them profiles and
// spreads numPosts posts among them with random likes and comments.
func (s *Seeder) SeedCommunity(numUsers, numPosts int) error {
	log.Printf("Seeding %d users...", numUsers)
	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return err
		}
		users = append(users, user)

		// Roughly four out of five users fill in a profile.
		if rand.Intn(5) != 0 {
			if _, err := s.factory.CreateProfile(user); err != nil {
				return err
			}
		}
	}

	log.Printf("Seeding %d posts...", numPosts)
	for i := 0; i < numPosts; i++ {
		author := users[rand.Intn(len(users))]
		post, err := s.factory.CreatePost(author)
		if err != nil {
			return err
		}

		// Random likes from distinct users.
		for _, liker := range pickUsers(users, rand.Intn(6)) {
			like := models.Like{PostID: post.ID, UserID: liker.ID}
			if err := s.db.Create(&like).Error; err != nil {
				return fmt.Errorf("creating like: %w", err)
			}
		}

		// A few comments.
		for _, commenter := range pickUsers(users, rand.Intn(4)) {
			comment := models.Comment{
				PostID: post.ID,
				UserID: commenter.ID,
				Text:   gofakeit.Sentence(8 + rand.Intn(10)),
				Name:   commenter.Name,
				Avatar: commenter.Avatar,
			}
			if err := s.db.Create(&comment).Error; err != nil {
				return fmt.Errorf("creating comment: %w", err)
			}
		}
	}

	log.Println("Seeding complete")
	return nil
}

// pickUsers returns up to n distinct users.
func pickUsers(users []*models.User, n int) []*models.User {
	if n > len(users) {
		n = len(users)
	}
	idx := rand.Perm(len(users))[:n]
	picked := make([]*models.User, 0, n)
	for _, i := range idx {
		picked = append(picked, users[i])
	}
	return picked
}
