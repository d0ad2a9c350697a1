package jsonfiledb

import (
	"time"

	"github.com/google/uuid"

	"github.com/tshims/kazi/core/user"
)

// userRecord is the on-disk shape of a user. The bcrypt hash is stored as
// the "password" field of the document.
type userRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	LastLogin time.Time `json:"lastLogin,omitempty"`
}

func newUserRecord(usr user.User) userRecord {
	return userRecord{
		ID:        usr.ID,
		Name:      usr.Name,
		Email:     usr.Email,
		Password:  string(usr.PasswordHash),
		Role:      string(usr.Role),
		CreatedAt: usr.CreatedAt,
		LastLogin: usr.LastLogin,
	}
}

func (rec userRecord) toUser() user.User {
	return user.User{
		ID:           rec.ID,
		Name:         rec.Name,
		Email:        rec.Email,
		Role:         user.Role(rec.Role),
		PasswordHash: []byte(rec.Password),
		CreatedAt:    rec.CreatedAt,
		LastLogin:    rec.LastLogin,
	}
}

type userRepository struct {
	db *DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) CheckEmailUniqueness(email string) error {
	return repo.db.view(func(doc *document) error {
		for _, rec := range doc.Users {
			if rec.Email == email {
				return user.ErrEmailExists
			}
		}
		return nil
	})
}

func (repo *userRepository) CreateUser(usr user.User) (user.User, error) {
	usr.ID = uuid.New().String()
	err := repo.db.update(func(doc *document) error {
		doc.Users = append(doc.Users, newUserRecord(usr))
		return nil
	})
	if err != nil {
		return user.User{}, err
	}
	return usr, nil
}

func (repo *userRepository) QueryAllUsers() ([]user.User, error) {
	var users []user.User
	err := repo.db.view(func(doc *document) error {
		users = make([]user.User, 0, len(doc.Users))
		for _, rec := range doc.Users {
			users = append(users, rec.toUser())
		}
		return nil
	})
	return users, err
}

func (repo *userRepository) GetUserByID(id string) (user.User, error) {
	var usr user.User
	err := repo.db.view(func(doc *document) error {
		for _, rec := range doc.Users {
			if rec.ID == id {
				usr = rec.toUser()
				return nil
			}
		}
		return user.ErrNotFound
	})
	return usr, err
}

func (repo *userRepository) GetUserByEmail(email string) (user.User, error) {
	var usr user.User
	err := repo.db.view(func(doc *document) error {
		for _, rec := range doc.Users {
			if rec.Email == email {
				usr = rec.toUser()
				return nil
			}
		}
		return user.ErrNotFound
	})
	return usr, err
}

func (repo *userRepository) FilterUsersByRole(role user.Role) ([]user.User, error) {
	var users []user.User
	err := repo.db.view(func(doc *document) error {
		for _, rec := range doc.Users {
			if rec.Role == string(role) {
				users = append(users, rec.toUser())
			}
		}
		return nil
	})
	return users, err
}

func (repo *userRepository) SetLastLogin(usr user.User) (user.User, error) {
	usr.LastLogin = time.Now().UTC()
	err := repo.db.update(func(doc *document) error {
		for i, rec := range doc.Users {
			if rec.ID == usr.ID {
				doc.Users[i].LastLogin = usr.LastLogin
				return nil
			}
		}
		return user.ErrNotFound
	})
	if err != nil {
		return user.User{}, err
	}
	return usr, nil
}
