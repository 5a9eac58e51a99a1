package postgres

import (
	"database/sql"
	"fmt"
	"strings"

	"supernova/internal/logger"
	"supernova/internal/repository/db"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// GetUserByUsername retrieves a user by username, case-insensitively
func (p *PostgresDB) GetUserByUsername(username string) (*db.User, error) {
	query := `SELECT id, username, email, password_hash, created_at FROM users WHERE LOWER(username) = LOWER($1)`
	return p.scanUser(p.conn.QueryRow(query, username))
}

// GetUserByEmail retrieves a user by email, case-insensitively
func (p *PostgresDB) GetUserByEmail(email string) (*db.User, error) {
	query := `SELECT id, username, email, password_hash, created_at FROM users WHERE LOWER(email) = LOWER($1)`
	return p.scanUser(p.conn.QueryRow(query, email))
}

func (p *PostgresDB) scanUser(row *sql.Row) (*db.User, error) {
	var user db.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, db.ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return &user, nil
}

// CreateUser stores a new user with an already-hashed password. The
// case-insensitive unique indexes turn duplicate usernames and emails into
// db.ErrUsernameTaken / db.ErrEmailTaken.
func (p *PostgresDB) CreateUser(username, email, passwordHash string) (*db.User, error) {
	userID := uuid.New().String()

	query := `
	INSERT INTO users (id, username, email, password_hash)
	VALUES ($1, $2, $3, $4)
	RETURNING created_at
	`

	var user db.User
	user.ID = userID
	user.Username = username
	user.Email = email
	err := p.conn.QueryRow(query, userID, username, email, passwordHash).Scan(&user.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			if strings.Contains(pqErr.Constraint, "email") {
				return nil, db.ErrEmailTaken
			}
			return nil, db.ErrUsernameTaken
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{"username": username, "user_id": userID}).Info("Created new user")

	return &user, nil
}
