package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/tablebook/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RestaurantRepository interface {
	List(ctx context.Context) ([]domain.Restaurant, error)
	GetByID(ctx context.Context, id int64) (*domain.Restaurant, error)
	GetByOwner(ctx context.Context, ownerID int64) (*domain.Restaurant, error)
}

type PGRestaurantRepository struct {
	db *pgxpool.Pool
}

func NewRestaurantRepository(db *pgxpool.Pool) RestaurantRepository {
	return &PGRestaurantRepository{db: db}
}

const restaurantColumns = `id, owner_id, name, location, description, phone, email, is_active`

func (r *PGRestaurantRepository) List(ctx context.Context) ([]domain.Restaurant, error) {
	rows, err := r.db.Query(ctx, `SELECT `+restaurantColumns+` FROM restaurants WHERE is_active ORDER BY name`)
	if err != nil {
		return nil, unavailable("list restaurants", err)
	}
	defer rows.Close()

	restaurants := make([]domain.Restaurant, 0)
	for rows.Next() {
		var rest domain.Restaurant
		if err := rows.Scan(&rest.ID, &rest.OwnerID, &rest.Name, &rest.Location, &rest.Description, &rest.Phone, &rest.Email, &rest.IsActive); err != nil {
			return nil, unavailable("scan restaurant", err)
		}
		restaurants = append(restaurants, rest)
	}
	return restaurants, rows.Err()
}

func (r *PGRestaurantRepository) GetByID(ctx context.Context, id int64) (*domain.Restaurant, error) {
	return r.get(ctx, `SELECT `+restaurantColumns+` FROM restaurants WHERE id=$1`, id)
}

func (r *PGRestaurantRepository) GetByOwner(ctx context.Context, ownerID int64) (*domain.Restaurant, error) {
	return r.get(ctx, `SELECT `+restaurantColumns+` FROM restaurants WHERE owner_id=$1`, ownerID)
}

func (r *PGRestaurantRepository) get(ctx context.Context, query string, arg any) (*domain.Restaurant, error) {
	row := r.db.QueryRow(ctx, query, arg)
	var rest domain.Restaurant
	if err := row.Scan(&rest.ID, &rest.OwnerID, &rest.Name, &rest.Location, &rest.Description, &rest.Phone, &rest.Email, &rest.IsActive); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRestaurantNotFound
		}
		return nil, unavailable("get restaurant", err)
	}
	return &rest, nil
}

var _ RestaurantRepository = (*PGRestaurantRepository)(nil)
