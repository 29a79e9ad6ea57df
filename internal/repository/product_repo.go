package repository

import (
	"context"
	"time"

	"github.com/vahid343/food-save-city/internal/dto"
	"github.com/vahid343/food-save-city/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	CreateBatch(ctx context.Context, ps []model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error)
	Update(ctx context.Context, p *model.Product) error
	// Delete is a hard delete — the product lifecycle is terminal and ledger
	// entries referencing it are left dangling on purpose.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListCandidates returns risk-zone candidates: quantity > 0 and expiry
	// between now and now + horizonDays, ordered by expiry ascending.
	ListCandidates(ctx context.Context, now time.Time, horizonDays int) ([]model.Product, error)

	// SetQuantity overwrites quantity without a version check — concurrent
	// confirmations are last-write-wins.
	SetQuantity(ctx context.Context, id uuid.UUID, quantity int) error

	Count(ctx context.Context) (int64, error)
	CountExpiringWithin(ctx context.Context, now time.Time, horizonDays int) (int64, error)
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) CreateBatch(ctx context.Context, ps []model.Product) error {
	if len(ps) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&ps).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productRepo) List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Product{})
	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("expiry_date ASC").Limit(filter.Limit).Offset(offset).Find(&products).Error
	return products, total, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Product{}, "id = ?", id).Error
}

func (r *productRepo) ListCandidates(ctx context.Context, now time.Time, horizonDays int) ([]model.Product, error) {
	var products []model.Product
	windowEnd := now.AddDate(0, 0, horizonDays)
	err := r.db.WithContext(ctx).
		Where("quantity > 0 AND expiry_date >= ? AND expiry_date <= ?",
			now.Format("2006-01-02"), windowEnd.Format("2006-01-02")).
		Order("expiry_date ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) SetQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		Update("quantity", quantity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&n).Error
	return n, err
}

func (r *productRepo) CountExpiringWithin(ctx context.Context, now time.Time, horizonDays int) (int64, error) {
	var n int64
	windowEnd := now.AddDate(0, 0, horizonDays)
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("expiry_date >= ? AND expiry_date <= ?",
			now.Format("2006-01-02"), windowEnd.Format("2006-01-02")).
		Count(&n).Error
	return n, err
}
