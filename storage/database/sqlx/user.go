package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/tshims/kazi/core/user"
)

type dbUser struct {
	ID           string       `db:"id"`
	Name         string       `db:"name"`
	Email        string       `db:"email"`
	PasswordHash []byte       `db:"password_hash"`
	Role         string       `db:"role"`
	CreatedAt    time.Time    `db:"created_at"`
	LastLogin    sql.NullTime `db:"last_login"`
}

func (u dbUser) toUser() user.User {
	usr := user.User{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         user.Role(u.Role),
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
	if u.LastLogin.Valid {
		usr.LastLogin = u.LastLogin.Time
	}
	return usr
}

func toUsers(rows []dbUser) []user.User {
	users := make([]user.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toUser())
	}
	return users
}

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to user.ErrNotFound
func (repo *userRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return user.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo *userRepository) CheckEmailUniqueness(email string) error {
	var exists bool
	err := repo.db.Get(&exists, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email)
	if err != nil {
		return errors.Wrap(err, "checking email uniqueness")
	}
	if exists {
		return user.ErrEmailExists
	}
	return nil
}

func (repo *userRepository) CreateUser(usr user.User) (user.User, error) {
	usr.ID = uuid.New().String()
	_, err := repo.db.Exec(
		`INSERT INTO users (id, name, email, password_hash, role, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		usr.ID, usr.Name, usr.Email, usr.PasswordHash, usr.Role, usr.CreatedAt,
	)
	if err != nil {
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo *userRepository) QueryAllUsers() ([]user.User, error) {
	var rows []dbUser
	if err := repo.db.Select(&rows, `SELECT * FROM users`); err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	return toUsers(rows), nil
}

func (repo *userRepository) GetUserByID(id string) (user.User, error) {
	var row dbUser
	if err := repo.db.Get(&row, `SELECT * FROM users WHERE id = $1`, id); err != nil {
		return user.User{}, repo.trapNoRowsErr(err, "getting user by id")
	}
	return row.toUser(), nil
}

func (repo *userRepository) GetUserByEmail(email string) (user.User, error) {
	var row dbUser
	if err := repo.db.Get(&row, `SELECT * FROM users WHERE email = $1`, email); err != nil {
		return user.User{}, repo.trapNoRowsErr(err, "getting user by email")
	}
	return row.toUser(), nil
}

func (repo *userRepository) FilterUsersByRole(role user.Role) ([]user.User, error) {
	var rows []dbUser
	if err := repo.db.Select(&rows, `SELECT * FROM users WHERE role = $1`, role); err != nil {
		return nil, errors.Wrap(err, "filtering users by role")
	}
	return toUsers(rows), nil
}

func (repo *userRepository) SetLastLogin(usr user.User) (user.User, error) {
	usr.LastLogin = time.Now().UTC()
	res, err := repo.db.Exec(`UPDATE users SET last_login = $1 WHERE id = $2`, usr.LastLogin, usr.ID)
	if err != nil {
		return user.User{}, errors.Wrap(err, "setting last login")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.User{}, user.ErrNotFound
	}
	return usr, nil
}
