package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mc-theer/ticketd/internal/domain"
)

// uniqueViolation — код PostgreSQL для нарушения уникальности.
const uniqueViolation = "23505"

// CategoryRepo — репозиторий для работы с категориями тикетов.
//
// Title уникален без учёта регистра (уникальный индекс по LOWER(title)) —
// это разрешает гонку двух воркеров, одновременно создающих одну и ту же
// категорию по подсказке AI.
type CategoryRepo struct {
	pool *pgxpool.Pool
}

// NewCategoryRepo создаёт новый CategoryRepo.
func NewCategoryRepo(pool *pgxpool.Pool) *CategoryRepo {
	return &CategoryRepo{pool: pool}
}

// Create создаёт новую категорию.
// Возвращает ErrAlreadyExists при конфликте уникальности title.
func (r *CategoryRepo) Create(ctx context.Context, category *domain.Category) error {
	if category.UUID == uuid.Nil {
		category.UUID = uuid.New()
	}
	category.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO ticket_categories (uuid, title, description, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.pool.QueryRow(ctx, query,
		category.UUID,
		category.Title,
		nullString(category.Description),
		category.CreatedAt,
	).Scan(&category.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrAlreadyExists
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByTitle возвращает категорию по названию без учёта регистра.
func (r *CategoryRepo) GetByTitle(ctx context.Context, title string) (*domain.Category, error) {
	query := `
		SELECT id, uuid, title, description, created_at
		FROM ticket_categories
		WHERE LOWER(title) = LOWER($1)
	`
	return r.scanCategory(r.pool.QueryRow(ctx, query, title))
}

// GetOrCreate возвращает категорию по названию, создавая её при отсутствии.
// Конфликт уникальности при вставке означает, что категорию успел создать
// конкурентный воркер — в этом случае она просто перечитывается.
func (r *CategoryRepo) GetOrCreate(ctx context.Context, title string) (*domain.Category, error) {
	category, err := r.GetByTitle(ctx, title)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	category = &domain.Category{Title: title}
	err = r.Create(ctx, category)
	if errors.Is(err, ErrAlreadyExists) {
		return r.GetByTitle(ctx, title)
	}
	if err != nil {
		return nil, err
	}
	return category, nil
}

// List возвращает все категории.
func (r *CategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	query := `
		SELECT id, uuid, title, description, created_at
		FROM ticket_categories
		ORDER BY title ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		category, err := r.scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *category)
	}
	return categories, rows.Err()
}

// EnsureDefaults создаёт базовый набор категорий, если их ещё нет.
// Вызывается при старте API.
func (r *CategoryRepo) EnsureDefaults(ctx context.Context) error {
	for _, def := range domain.DefaultCategories {
		category, err := r.GetByTitle(ctx, def.Title)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}

		category = &domain.Category{Title: def.Title, Description: def.Description}
		if err := r.Create(ctx, category); err != nil && !errors.Is(err, ErrAlreadyExists) {
			return fmt.Errorf("ensure category %q: %w", def.Title, err)
		}
	}
	return nil
}

// --- Helpers ---

func (r *CategoryRepo) scanCategory(row pgx.Row) (*domain.Category, error) {
	var category domain.Category
	var description *string

	err := row.Scan(
		&category.ID,
		&category.UUID,
		&category.Title,
		&description,
		&category.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan category: %w", err)
	}

	if description != nil {
		category.Description = *description
	}
	return &category, nil
}
