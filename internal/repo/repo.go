package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

var ErrNotFound = errors.New("not found")

// Analysis is a stored calculation: the request and the result as sent to the client.
type Analysis struct {
	ID        string          `json:"id"`
	UserID    int             `json:"user_id"`
	Tool      string          `json:"tool"`
	Method    string          `json:"method,omitempty"`
	Input     json.RawMessage `json:"input"`
	Result    json.RawMessage `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}

type UserRepository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetByLogin(ctx context.Context, login string) (int, string, error)
}

type AnalysisRepository interface {
	SaveAnalysis(ctx context.Context, a Analysis) (string, error)
	// ListAnalyses returns the newest analyses of a user first. A non-empty
	// tool restricts the list to that tool before the limit applies.
	ListAnalyses(ctx context.Context, userID int, tool string, limit int) ([]Analysis, error)
	GetAnalysis(ctx context.Context, userID int, id string) (Analysis, error)
}

type Repository interface {
	UserRepository
	AnalysisRepository
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id       SERIAL PRIMARY KEY,
	login    TEXT UNIQUE NOT NULL,
	email    TEXT NOT NULL,
	password TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS analyses (
	id         UUID PRIMARY KEY,
	user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	tool       TEXT NOT NULL,
	method     TEXT NOT NULL DEFAULT '',
	input      JSONB NOT NULL,
	result     JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS analyses_user_created ON analyses (user_id, created_at DESC);
`

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Open connects to PostgreSQL. TLS is required unless the DSN says otherwise.
// withSSLMode defaults a connection string to sslmode=require. Both URL
// and keyword/value forms are accepted; an explicit sslmode is kept.
func withSSLMode(connStr string) string {
	if strings.Contains(connStr, "sslmode=") {
		return connStr
	}
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		sep := "?"
		if strings.Contains(connStr, "?") {
			sep = "&"
		}
		return connStr + sep + "sslmode=require"
	}
	return strings.TrimSpace(connStr + " sslmode=require")
}

func Open(ctx context.Context, connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", withSSLMode(connStr))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

func (r *PostgresRepository) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

func (r *PostgresRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, err
}

// GetByLogin returns the id and password hash. Unknown logins give id 0 and no error.
func (r *PostgresRepository) GetByLogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"
	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, "", nil
		}
		return 0, "", err
	}
	return id, hash, nil
}

func (r *PostgresRepository) SaveAnalysis(ctx context.Context, a Analysis) (string, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	query := `INSERT INTO analyses (id, user_id, tool, method, input, result)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.db.ExecContext(ctx, query, a.ID, a.UserID, a.Tool, a.Method, []byte(a.Input), []byte(a.Result)); err != nil {
		return "", err
	}
	return a.ID, nil
}

func (r *PostgresRepository) ListAnalyses(ctx context.Context, userID int, tool string, limit int) ([]Analysis, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	query := `SELECT id, user_id, tool, method, input, result, created_at
		FROM analyses WHERE user_id=$1 AND ($2 = '' OR tool = $2)
		ORDER BY created_at DESC LIMIT $3`
	rows, err := r.db.QueryContext(ctx, query, userID, tool, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Analysis{}
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetAnalysis(ctx context.Context, userID int, id string) (Analysis, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Analysis{}, ErrNotFound
	}
	query := `SELECT id, user_id, tool, method, input, result, created_at
		FROM analyses WHERE user_id=$1 AND id=$2`
	a, err := scanAnalysis(r.db.QueryRowContext(ctx, query, userID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Analysis{}, ErrNotFound
	}
	return a, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(s scanner) (Analysis, error) {
	var a Analysis
	var input, result []byte
	if err := s.Scan(&a.ID, &a.UserID, &a.Tool, &a.Method, &input, &result, &a.CreatedAt); err != nil {
		return Analysis{}, err
	}
	a.Input = json.RawMessage(input)
	a.Result = json.RawMessage(result)
	return a, nil
}
