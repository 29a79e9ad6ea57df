package service

import (
	"context"
	"testing"

	"github.com/vahid343/food-save-city/internal/dto"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductFixture() (*stubProductRepo, *productService) {
	repo := newStubProductRepo()
	svc := NewProductService(repo).(*productService)
	svc.now = fixedNow
	return repo, svc
}

func TestCreateProduct(t *testing.T) {
	_, svc := newProductFixture()

	resp, err := svc.Create(context.Background(), uuid.New(), dto.CreateProductRequest{
		Name:          "Yogurt",
		Category:      "Dairy",
		Quantity:      12,
		ExpiryDate:    "2026-03-15",
		AvgDailySales: 2,
		Price:         decimal.RequireFromString("1.99"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Yogurt", resp.Name)
	assert.Equal(t, "2026-03-15", resp.ExpiryDate)
	assert.Equal(t, 5, resp.DaysLeft)
}

func TestCreateProductDefaultsCategory(t *testing.T) {
	_, svc := newProductFixture()

	resp, err := svc.Create(context.Background(), uuid.New(), dto.CreateProductRequest{
		Name:       "Mystery item",
		Quantity:   1,
		ExpiryDate: "2026-04-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "Other", resp.Category)
}

func TestCreateProductRejectsBadDate(t *testing.T) {
	_, svc := newProductFixture()

	_, err := svc.Create(context.Background(), uuid.New(), dto.CreateProductRequest{
		Name:       "Bad",
		ExpiryDate: "15.03.2026",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

func TestUpdateProductUnknown(t *testing.T) {
	_, svc := newProductFixture()

	name := "x"
	_, err := svc.Update(context.Background(), uuid.New(), dto.UpdateProductRequest{Name: &name})
	require.ErrorIs(t, err, ErrNotFound)
}

// ── CSV import ────────────────────────────────────────────────────────────────

func TestImportCSVEnglishHeaders(t *testing.T) {
	repo, svc := newProductFixture()

	csvData := []byte("name,category,quantity,expiry_date,avg_daily_sales,price\n" +
		"Yogurt,Dairy,10,2026-03-15,2,1.50\n" +
		"Bread,Bakery,5,2026-03-11,3.5,0.80\n")

	resp, err := svc.ImportCSV(context.Background(), uuid.New(), csvData)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Imported)
	assert.Equal(t, 0, resp.Skipped)
	assert.Empty(t, resp.Errors)
	assert.Len(t, repo.products, 2)
}

func TestImportCSVSerbianHeaders(t *testing.T) {
	repo, svc := newProductFixture()

	csvData := []byte("naziv,kategorija,kolicina,rok,prodaja,cena\n" +
		"Jogurt,Dairy,8,2026-03-14,1.5,1.20\n")

	resp, err := svc.ImportCSV(context.Background(), uuid.New(), csvData)
	require.NoError(t, err)
	require.Equal(t, 1, resp.Imported)

	for _, p := range repo.products {
		assert.Equal(t, "Jogurt", p.Name)
		assert.Equal(t, 8, p.Quantity)
		assert.InDelta(t, 1.5, p.AvgDailySales, 0.001)
	}
}

func TestImportCSVSkipsIncompleteRows(t *testing.T) {
	_, svc := newProductFixture()

	csvData := []byte("name,quantity,expiry_date\n" +
		",5,2026-03-15\n" + // no name
		"Ham,5,\n" + // no expiry
		"Cheese,5,bad-date\n" + // unparseable expiry → recorded error
		"Milk,5,2026-03-15\n")

	resp, err := svc.ImportCSV(context.Background(), uuid.New(), csvData)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Imported)
	assert.Equal(t, 3, resp.Skipped)
	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0], "bad-date")
}

func TestImportCSVClampsNegativesAndDefaults(t *testing.T) {
	repo, svc := newProductFixture()

	csvData := []byte("name,quantity,expiry_date,avg_daily_sales,price\n" +
		"Weird,-3,2026-03-15,-1,not-a-price\n")

	resp, err := svc.ImportCSV(context.Background(), uuid.New(), csvData)
	require.NoError(t, err)
	require.Equal(t, 1, resp.Imported)

	for _, p := range repo.products {
		assert.Equal(t, 0, p.Quantity)
		assert.Zero(t, p.AvgDailySales)
		assert.True(t, p.Price.IsZero())
		assert.Equal(t, "Other", p.Category)
	}
}

func TestImportCSVRejectsBinary(t *testing.T) {
	_, svc := newProductFixture()

	_, err := svc.ImportCSV(context.Background(), uuid.New(), []byte("PK\x03\x04fakexlsx"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a text CSV")

	_, err = svc.ImportCSV(context.Background(), uuid.New(), []byte("name\x00value"))
	require.Error(t, err)
}

func TestImportCSVNoValidRows(t *testing.T) {
	_, svc := newProductFixture()

	_, err := svc.ImportCSV(context.Background(), uuid.New(), []byte("name,expiry_date\n,\n"))
	require.Error(t, err)

	_, err = svc.ImportCSV(context.Background(), uuid.New(), []byte("name,expiry_date\n"))
	require.Error(t, err)
}
