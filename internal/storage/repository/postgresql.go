// Package repository реализует хранилище данных на основе PostgreSQL:
// учёт дневного использования запросов (usage_tracking) и зеркало
// состояния подписок (subscribers).
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/magabrotheeeer/chef-ai/internal/models"
)

// ErrNoConnectionString строка подключения к базе не задана.
var ErrNoConnectionString = errors.New("database connection string is empty")

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
// База обязательна: без неё сервис не запускается.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"
	if storageConnectionString == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrNoConnectionString)
	}

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// NewWithDB оборачивает уже открытое соединение.
func NewWithDB(db *sql.DB) *Storage {
	return &Storage{DB: db}
}

// Close закрывает пул соединений.
func (s *Storage) Close() error {
	return s.DB.Close()
}

// CheckDatabaseReady проверяет, что миграции применены и таблица usage_tracking существует.
func (s *Storage) CheckDatabaseReady(ctx context.Context) error {
	const op = "storage.CheckDatabaseReady"
	var exists bool
	err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'usage_tracking'
    )`).Scan(&exists)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, models.ErrDataStore, err)
	}
	if !exists {
		return fmt.Errorf("%s: %w: required table usage_tracking missing", op, models.ErrDataStore)
	}
	return nil
}
