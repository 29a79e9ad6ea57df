package service

import (
	"context"
	"testing"

	"github.com/vahid343/food-save-city/internal/dto"
	"github.com/vahid343/food-save-city/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubCategoryRepo struct {
	cats map[uuid.UUID]*model.Category
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{cats: make(map[uuid.UUID]*model.Category)}
}

func (r *stubCategoryRepo) Create(_ context.Context, c *model.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.cats[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	c, ok := r.cats[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCategoryRepo) FindByName(_ context.Context, name string) (*model.Category, error) {
	for _, c := range r.cats {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCategoryRepo) List(_ context.Context) ([]model.Category, error) {
	out := make([]model.Category, 0, len(r.cats))
	for _, c := range r.cats {
		if c.Active {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, c *model.Category) error {
	r.cats[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	c, ok := r.cats[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Active = false
	return nil
}

func (r *stubCategoryRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.cats)), nil
}

func TestSeedDefaultsOnEmptyTable(t *testing.T) {
	repo := newStubCategoryRepo()
	svc := NewCategoryService(repo)

	require.NoError(t, svc.SeedDefaults(context.Background()))
	assert.Len(t, repo.cats, len(model.SeedCategories))

	// Seeding again is a no-op.
	require.NoError(t, svc.SeedDefaults(context.Background()))
	assert.Len(t, repo.cats, len(model.SeedCategories))
}

func TestCreateCategoryRejectsDuplicateName(t *testing.T) {
	repo := newStubCategoryRepo()
	svc := NewCategoryService(repo)

	_, err := svc.Create(context.Background(), dto.CreateCategoryRequest{Name: "Dairy"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), dto.CreateCategoryRequest{Name: "Dairy"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestDeactivateCategoryHidesFromList(t *testing.T) {
	repo := newStubCategoryRepo()
	svc := NewCategoryService(repo)

	created, err := svc.Create(context.Background(), dto.CreateCategoryRequest{Name: "Bakery"})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(context.Background(), created.ID))

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}
