package services

import (
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"time"

	"store-service/internal/domain"
	"store-service/internal/infra/filestore"
	"store-service/internal/repository"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	cacheKeyCategories = "catalog:categories"
	cacheKeyProducts   = "catalog:products"
	catalogCacheTTL    = time.Minute
)

// BlobStore is the slice of the file store the catalog needs.
type BlobStore interface {
	Save(r io.Reader, ext string) (string, int64, error)
	Open(key string) (io.ReadSeekCloser, int64, error)
	Remove(key string) error
}

var _ BlobStore = (*filestore.Store)(nil)

type CatalogService struct {
	categories  repository.CategoryRepository
	products    repository.ProductRepository
	files       repository.ProductFileRepository
	blobs       BlobStore
	log         *zap.SugaredLogger
	redisClient *redis.Client
}

func NewCatalogService(
	categories repository.CategoryRepository,
	products repository.ProductRepository,
	files repository.ProductFileRepository,
	blobs BlobStore,
	log *zap.SugaredLogger,
) *CatalogService {
	return &CatalogService{
		categories: categories,
		products:   products,
		files:      files,
		blobs:      blobs,
		log:        log,
	}
}

// removeBlob drops a stored blob. The database record is already gone
// by the time this runs, so a failure only leaves an orphan on disk.
func (s *CatalogService) removeBlob(key string) {
	if err := s.blobs.Remove(key); err != nil {
		s.log.Errorw("failed to remove blob", "key", key, "error", err)
	}
}

func (s *CatalogService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

// ---- categories ----

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var cached []domain.Category
	if s.cacheGet(ctx, cacheKeyCategories, &cached) {
		return cached, nil
	}
	out, err := s.categories.FindAll()
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, cacheKeyCategories, out)
	return out, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id uint64) (*domain.Category, error) {
	c, err := s.categories.FindByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, title string) (*domain.Category, error) {
	if strings.TrimSpace(title) == "" {
		return nil, domain.NewValidationError("title", "title is required")
	}
	c := &domain.Category{Title: title}
	if err := s.categories.Save(c); err != nil {
		return nil, err
	}
	s.cacheInvalidate(ctx, cacheKeyCategories)
	return c, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uint64, title string) (*domain.Category, error) {
	if strings.TrimSpace(title) == "" {
		return nil, domain.NewValidationError("title", "title is required")
	}
	c, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Title = title
	if err := s.categories.Update(c); err != nil {
		return nil, err
	}
	s.cacheInvalidate(ctx, cacheKeyCategories)
	return c, nil
}

// DeleteCategory cascades to the category's products and their files.
// It refuses when any of those products is referenced by an order item.
func (s *CatalogService) DeleteCategory(ctx context.Context, id uint64) error {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}
	n, err := s.categories.CountOrderItems(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrInUse
	}
	files, err := s.files.FindByCategory(id)
	if err != nil {
		return err
	}
	if err := s.categories.DeleteCascade(id); err != nil {
		return err
	}
	for _, f := range files {
		s.removeBlob(f.StorageKey)
	}
	s.cacheInvalidate(ctx, cacheKeyCategories, cacheKeyProducts)
	return nil
}

// ---- products ----

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var cached []domain.Product
	if s.cacheGet(ctx, cacheKeyProducts, &cached) {
		return cached, nil
	}
	out, err := s.products.FindAll()
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, cacheKeyProducts, out)
	return out, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint64) (*domain.Product, error) {
	p, err := s.products.FindByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

type ProductInput struct {
	CategoryID  uint64
	Title       string
	Description string
	UnitPrice   float64
}

func (s *CatalogService) validateProduct(in ProductInput) error {
	fields := map[string]string{}
	if strings.TrimSpace(in.Title) == "" {
		fields["title"] = "title is required"
	}
	if in.UnitPrice < 0 {
		fields["unitPrice"] = "unit price must not be negative"
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	c, err := s.categories.FindByID(in.CategoryID)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.NewValidationError("categoryId", "category does not exist")
	}
	return nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	if err := s.validateProduct(in); err != nil {
		return nil, err
	}
	p := &domain.Product{
		CategoryID:  in.CategoryID,
		Title:       in.Title,
		Description: in.Description,
		UnitPrice:   in.UnitPrice,
	}
	if err := s.products.Save(p); err != nil {
		return nil, err
	}
	s.cacheInvalidate(ctx, cacheKeyProducts)
	return p, nil
}

type ProductPatch struct {
	CategoryID  *uint64
	Title       *string
	Description *string
	UnitPrice   *float64
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uint64, patch ProductPatch) (*domain.Product, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.CategoryID != nil {
		p.CategoryID = *patch.CategoryID
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.UnitPrice != nil {
		p.UnitPrice = *patch.UnitPrice
	}
	if err := s.validateProduct(ProductInput{
		CategoryID:  p.CategoryID,
		Title:       p.Title,
		Description: p.Description,
		UnitPrice:   p.UnitPrice,
	}); err != nil {
		return nil, err
	}
	if err := s.products.Update(p); err != nil {
		return nil, err
	}
	s.cacheInvalidate(ctx, cacheKeyProducts)
	return p, nil
}

// DeleteProduct is blocked while any order item references the product.
func (s *CatalogService) DeleteProduct(ctx context.Context, id uint64) error {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	n, err := s.products.CountOrderItems(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrInUse
	}
	files, err := s.files.FindByProduct(p.ID)
	if err != nil {
		return err
	}
	if err := s.products.Delete(id); err != nil {
		return err
	}
	for _, f := range files {
		s.removeBlob(f.StorageKey)
	}
	s.cacheInvalidate(ctx, cacheKeyProducts)
	return nil
}

// ---- product files ----

const pdfValidationMessage = "Type of uploaded file should be PDF."

func validatePDFName(name string) error {
	if strings.ToLower(filepath.Ext(name)) != ".pdf" {
		return domain.NewValidationError("file", pdfValidationMessage)
	}
	return nil
}

func (s *CatalogService) ListFiles(ctx context.Context, productID uint64) ([]domain.ProductFile, error) {
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	return s.files.FindByProduct(productID)
}

func (s *CatalogService) GetFile(ctx context.Context, productID, fileID uint64) (*domain.ProductFile, error) {
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	f, err := s.files.FindByID(fileID)
	if err != nil {
		return nil, err
	}
	if f == nil || f.ProductID != productID {
		return nil, domain.ErrNotFound
	}
	return f, nil
}

// AttachFile stores a new PDF for the product. Anything without a .pdf
// extension is rejected before a blob or record is created.
func (s *CatalogService) AttachFile(ctx context.Context, productID uint64, name string, r io.Reader) (*domain.ProductFile, error) {
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	if err := validatePDFName(name); err != nil {
		return nil, err
	}
	key, size, err := s.blobs.Save(r, ".pdf")
	if err != nil {
		return nil, err
	}
	f := &domain.ProductFile{
		ProductID:  productID,
		Name:       filepath.Base(name),
		StorageKey: key,
		Size:       size,
	}
	if err := s.files.Save(f); err != nil {
		s.removeBlob(key)
		return nil, err
	}
	return f, nil
}

// ReplaceFile swaps the stored blob for an existing file record.
func (s *CatalogService) ReplaceFile(ctx context.Context, productID, fileID uint64, name string, r io.Reader) (*domain.ProductFile, error) {
	f, err := s.GetFile(ctx, productID, fileID)
	if err != nil {
		return nil, err
	}
	if err := validatePDFName(name); err != nil {
		return nil, err
	}
	key, size, err := s.blobs.Save(r, ".pdf")
	if err != nil {
		return nil, err
	}
	oldKey := f.StorageKey
	f.Name = filepath.Base(name)
	f.StorageKey = key
	f.Size = size
	if err := s.files.Update(f); err != nil {
		s.removeBlob(key)
		return nil, err
	}
	s.removeBlob(oldKey)
	return f, nil
}

func (s *CatalogService) DeleteFile(ctx context.Context, productID, fileID uint64) error {
	f, err := s.GetFile(ctx, productID, fileID)
	if err != nil {
		return err
	}
	if err := s.files.Delete(fileID); err != nil {
		return err
	}
	s.removeBlob(f.StorageKey)
	return nil
}

// OpenFile hands back a reader over the stored blob. The caller must
// close it once the response has been written.
func (s *CatalogService) OpenFile(f *domain.ProductFile) (io.ReadSeekCloser, int64, error) {
	return s.blobs.Open(f.StorageKey)
}

// ---- cache helpers (cache-aside, best effort; misses fall through) ----

func (s *CatalogService) cacheGet(ctx context.Context, key string, out any) bool {
	if s.redisClient == nil {
		return false
	}
	cached, err := s.redisClient.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(cached), out) == nil
}

func (s *CatalogService) cacheSet(ctx context.Context, key string, v any) {
	if s.redisClient == nil {
		return
	}
	if data, err := json.Marshal(v); err == nil {
		s.redisClient.Set(ctx, key, data, catalogCacheTTL)
	}
}

func (s *CatalogService) cacheInvalidate(ctx context.Context, keys ...string) {
	if s.redisClient == nil {
		return
	}
	s.redisClient.Del(ctx, keys...)
}
