package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vahid343/food-save-city/internal/dto"
	"github.com/vahid343/food-save-city/internal/model"
	"github.com/vahid343/food-save-city/internal/repository"
	"github.com/vahid343/food-save-city/internal/risk"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// ProductService defines the business logic contract for the catalog.
type ProductService interface {
	Create(ctx context.Context, actorID uuid.UUID, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ImportCSV bulk-creates products from a CSV upload. Column headers are
	// matched case-insensitively in a fixed fallback order; rows missing a
	// name or expiry date are skipped.
	ImportCSV(ctx context.Context, actorID uuid.UUID, data []byte) (*dto.CSVImportResponse, error)
}

type productService struct {
	repo repository.ProductRepository
	now  func() time.Time
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo, now: time.Now}
}

func (s *productService) toResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID.String(),
		Name:          p.Name,
		Category:      p.Category,
		Quantity:      p.Quantity,
		ExpiryDate:    p.ExpiryDate.Format(dateLayout),
		AvgDailySales: p.AvgDailySales,
		Price:         p.Price,
		DaysLeft:      risk.DaysUntil(p.ExpiryDate, s.now()),
	}
}

func (s *productService) Create(ctx context.Context, actorID uuid.UUID, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	expiry, err := time.Parse(dateLayout, req.ExpiryDate)
	if err != nil {
		return nil, fmt.Errorf("expiry_date must be YYYY-MM-DD: %w", err)
	}
	category := req.Category
	if category == "" {
		category = "Other"
	}

	p := &model.Product{
		Name:          req.Name,
		Category:      category,
		Quantity:      req.Quantity,
		ExpiryDate:    expiry,
		AvgDailySales: req.AvgDailySales,
		Price:         req.Price,
		CreatedBy:     &actorID,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return s.toResponse(p), nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.toResponse(p), nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductResponse, len(products))
	for i := range products {
		data[i] = *s.toResponse(&products[i])
	}
	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &dto.ProductListResponse{
		Data: data, Total: total, Page: filter.Page, Limit: filter.Limit, TotalPages: totalPages,
	}, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Quantity != nil {
		p.Quantity = *req.Quantity
	}
	if req.ExpiryDate != nil {
		expiry, err := time.Parse(dateLayout, *req.ExpiryDate)
		if err != nil {
			return nil, fmt.Errorf("expiry_date must be YYYY-MM-DD: %w", err)
		}
		p.ExpiryDate = expiry
	}
	if req.AvgDailySales != nil {
		p.AvgDailySales = *req.AvgDailySales
	}
	if req.Price != nil {
		p.Price = *req.Price
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.toResponse(p), nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

// csvColumns maps each product field to accepted header names, tried in
// order. Serbian aliases are kept because exports from the legacy store use
// them.
var csvColumns = map[string][]string{
	"name":            {"naziv", "name"},
	"category":        {"kategorija", "category"},
	"quantity":        {"kolicina", "quantity"},
	"expiry_date":     {"rok", "expiry_date", "datum_isteka"},
	"avg_daily_sales": {"prodaja", "avg_daily_sales"},
	"price":           {"cena", "price"},
}

func (s *productService) ImportCSV(ctx context.Context, actorID uuid.UUID, data []byte) (*dto.CSVImportResponse, error) {
	if bytes.IndexByte(data, 0) >= 0 || bytes.HasPrefix(data, []byte("PK")) {
		return nil, errors.New("file is not a text CSV")
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, errors.New("CSV has no data rows")
	}

	headerIdx := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		headerIdx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	pick := func(row []string, field string) string {
		for _, alias := range csvColumns[field] {
			if i, ok := headerIdx[alias]; ok && i < len(row) {
				return strings.TrimSpace(row[i])
			}
		}
		return ""
	}

	resp := &dto.CSVImportResponse{}
	var products []model.Product
	for n, row := range records[1:] {
		name := pick(row, "name")
		expiryStr := pick(row, "expiry_date")
		if name == "" || expiryStr == "" {
			resp.Skipped++
			continue
		}
		expiry, err := time.Parse(dateLayout, expiryStr)
		if err != nil {
			resp.Skipped++
			resp.Errors = append(resp.Errors, fmt.Sprintf("row %d: bad expiry date %q", n+2, expiryStr))
			continue
		}

		category := pick(row, "category")
		if category == "" {
			category = "Other"
		}
		quantity, _ := strconv.Atoi(pick(row, "quantity"))
		if quantity < 0 {
			quantity = 0
		}
		avgSales, _ := strconv.ParseFloat(pick(row, "avg_daily_sales"), 64)
		if avgSales < 0 {
			avgSales = 0
		}
		price, err := decimal.NewFromString(pick(row, "price"))
		if err != nil {
			price = decimal.Zero
		}

		products = append(products, model.Product{
			Name:          name,
			Category:      category,
			Quantity:      quantity,
			ExpiryDate:    expiry,
			AvgDailySales: avgSales,
			Price:         price,
			CreatedBy:     &actorID,
		})
	}

	if len(products) == 0 {
		return nil, errors.New("CSV has no valid rows")
	}
	if err := s.repo.CreateBatch(ctx, products); err != nil {
		return nil, fmt.Errorf("bulk insert: %w", err)
	}
	resp.Imported = len(products)
	return resp, nil
}
