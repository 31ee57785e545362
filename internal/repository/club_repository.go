package repository

import (
	"context"

	"clubportal/internal/csvstore"
	"clubportal/internal/model"
)

// ClubRepository defines club persistence operations.
type ClubRepository interface {
	Create(ctx context.Context, club *model.Club) (int64, error)
	FindByID(ctx context.Context, id int64) (*model.Club, error)
	FindByName(ctx context.Context, name string) (*model.Club, error)
	List(ctx context.Context) ([]model.Club, error)
	Update(ctx context.Context, id int64, changes csvstore.Row) error
	Delete(ctx context.Context, id int64) error
}

type clubRepository struct {
	clubs *Table[model.Club]
}

// NewClubRepository creates a new club repository.
func NewClubRepository(store *csvstore.Store) ClubRepository {
	return &clubRepository{clubs: NewTable[model.Club](store, "clubs")}
}

// Create adds a club; names are unique.
func (r *clubRepository) Create(ctx context.Context, club *model.Club) (int64, error) {
	return r.clubs.InsertUnique(ctx, "name", club)
}

func (r *clubRepository) FindByID(ctx context.Context, id int64) (*model.Club, error) {
	return r.clubs.Get(ctx, id)
}

func (r *clubRepository) FindByName(ctx context.Context, name string) (*model.Club, error) {
	return r.clubs.First(ctx, func(c *model.Club) bool { return c.Name == name })
}

func (r *clubRepository) List(ctx context.Context) ([]model.Club, error) {
	return r.clubs.List(ctx)
}

func (r *clubRepository) Update(ctx context.Context, id int64, changes csvstore.Row) error {
	return r.clubs.Update(ctx, id, changes)
}

func (r *clubRepository) Delete(ctx context.Context, id int64) error {
	return r.clubs.Delete(ctx, id)
}
