package user

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLRepository stores users via database/sql. The queries use $N
// placeholders and RETURNING, which both the SQLite driver and the pgx
// stdlib driver accept, so the same repository serves either backend.
type SQLRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	insertUserQuery = `
		INSERT INTO users (username, first_name, last_name, phone_number, email, hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	getUserByUsernameQuery = `
		SELECT id, username, first_name, last_name, phone_number, email, hash
		FROM users
		WHERE username = $1
	`
	getUserByIDQuery = `
		SELECT id, username, first_name, last_name, phone_number, email, hash
		FROM users
		WHERE id = $1
	`
)

func NewSQLRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Create(user User) (User, error) {
	var id int
	err := r.db.QueryRow(
		insertUserQuery,
		user.Username,
		user.FirstName,
		user.LastName,
		user.PhoneNumber,
		user.Email,
		user.Hash,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return User{}, ErrUsernameExists
		}
		return User{}, err
	}

	user.ID = id
	return user, nil
}

func (r *SQLRepository) GetByUsername(username string) (User, error) {
	return scanUser(r.db.QueryRow(getUserByUsernameQuery, username))
}

func (r *SQLRepository) GetByID(id int) (User, error) {
	return scanUser(r.db.QueryRow(getUserByIDQuery, id))
}

func scanUser(scanner rowScanner) (User, error) {
	user := User{}
	err := scanner.Scan(
		&user.ID,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.PhoneNumber,
		&user.Email,
		&user.Hash,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}

	return user, nil
}

// isUniqueViolation recognizes a duplicate-key insert failure from either
// backend: SQLSTATE 23505 from Postgres, the constraint message from SQLite.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
