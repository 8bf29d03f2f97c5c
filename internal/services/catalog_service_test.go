package services

import (
	"context"
	"strings"
	"testing"

	"store-service/internal/domain"
	"store-service/internal/infra/filestore"
	"store-service/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newCatalogService(t *testing.T,
	categories *mocks.MockCategoryRepository,
	products *mocks.MockProductRepository,
	files *mocks.MockProductFileRepository,
) *CatalogService {
	t.Helper()
	blobs, err := filestore.New(t.TempDir())
	require.NoError(t, err)
	return NewCatalogService(categories, products, files, blobs, zap.NewNop().Sugar())
}

func TestCatalogService_CreateCategory_Validation(t *testing.T) {
	service := newCatalogService(t, new(mocks.MockCategoryRepository), new(mocks.MockProductRepository), new(mocks.MockProductFileRepository))

	for _, title := range []string{"", "   "} {
		_, err := service.CreateCategory(context.Background(), title)
		assert.True(t, domain.IsValidation(err))
	}
}

func TestCatalogService_DeleteCategory(t *testing.T) {
	t.Run("cascades when no product is referenced", func(t *testing.T) {
		categories := new(mocks.MockCategoryRepository)
		files := new(mocks.MockProductFileRepository)
		categories.On("FindByID", uint64(1)).Return(&domain.Category{ID: 1, Title: "books"}, nil)
		categories.On("CountOrderItems", uint64(1)).Return(int64(0), nil)
		files.On("FindByCategory", uint64(1)).Return([]domain.ProductFile{}, nil)
		categories.On("DeleteCascade", uint64(1)).Return(nil)

		service := newCatalogService(t, categories, new(mocks.MockProductRepository), files)
		assert.NoError(t, service.DeleteCategory(context.Background(), 1))
		categories.AssertExpectations(t)
	})

	t.Run("removes blobs of the category's product files", func(t *testing.T) {
		blobs, err := filestore.New(t.TempDir())
		require.NoError(t, err)
		key, _, err := blobs.Save(strings.NewReader("%PDF-1.4"), ".pdf")
		require.NoError(t, err)

		categories := new(mocks.MockCategoryRepository)
		files := new(mocks.MockProductFileRepository)
		categories.On("FindByID", uint64(1)).Return(&domain.Category{ID: 1, Title: "books"}, nil)
		categories.On("CountOrderItems", uint64(1)).Return(int64(0), nil)
		files.On("FindByCategory", uint64(1)).Return([]domain.ProductFile{
			{ID: 5, ProductID: 2, Name: "manual.pdf", StorageKey: key},
		}, nil)
		categories.On("DeleteCascade", uint64(1)).Return(nil)

		service := NewCatalogService(categories, new(mocks.MockProductRepository), files, blobs, zap.NewNop().Sugar())
		require.NoError(t, service.DeleteCategory(context.Background(), 1))

		_, _, err = blobs.Open(key)
		assert.Error(t, err)
	})

	t.Run("refuses while an order references a product of the category", func(t *testing.T) {
		categories := new(mocks.MockCategoryRepository)
		categories.On("FindByID", uint64(1)).Return(&domain.Category{ID: 1, Title: "books"}, nil)
		categories.On("CountOrderItems", uint64(1)).Return(int64(3), nil)

		service := newCatalogService(t, categories, new(mocks.MockProductRepository), new(mocks.MockProductFileRepository))
		assert.ErrorIs(t, service.DeleteCategory(context.Background(), 1), domain.ErrInUse)
		categories.AssertNotCalled(t, "DeleteCascade", mock.Anything)
	})

	t.Run("missing category", func(t *testing.T) {
		categories := new(mocks.MockCategoryRepository)
		categories.On("FindByID", uint64(9)).Return(nil, nil)

		service := newCatalogService(t, categories, new(mocks.MockProductRepository), new(mocks.MockProductFileRepository))
		assert.ErrorIs(t, service.DeleteCategory(context.Background(), 9), domain.ErrNotFound)
	})
}

func TestCatalogService_CreateProduct_Validation(t *testing.T) {
	tests := []struct {
		name       string
		input      ProductInput
		setupMocks func(*mocks.MockCategoryRepository)
		wantField  string
	}{
		{
			name:       "empty title",
			input:      ProductInput{CategoryID: 1, Title: "", UnitPrice: 1},
			setupMocks: func(*mocks.MockCategoryRepository) {},
			wantField:  "title",
		},
		{
			name:       "negative price",
			input:      ProductInput{CategoryID: 1, Title: "a", UnitPrice: -1},
			setupMocks: func(*mocks.MockCategoryRepository) {},
			wantField:  "unitPrice",
		},
		{
			name:  "missing category",
			input: ProductInput{CategoryID: 42, Title: "a", UnitPrice: 1},
			setupMocks: func(categories *mocks.MockCategoryRepository) {
				categories.On("FindByID", uint64(42)).Return(nil, nil)
			},
			wantField: "categoryId",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			categories := new(mocks.MockCategoryRepository)
			products := new(mocks.MockProductRepository)
			tt.setupMocks(categories)

			service := newCatalogService(t, categories, products, new(mocks.MockProductFileRepository))
			_, err := service.CreateProduct(context.Background(), tt.input)

			var ve *domain.ValidationError
			assert.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Fields, tt.wantField)
			products.AssertNotCalled(t, "Save", mock.Anything)
		})
	}
}

func TestCatalogService_DeleteProduct(t *testing.T) {
	t.Run("blocked while referenced by an order item", func(t *testing.T) {
		products := new(mocks.MockProductRepository)
		products.On("FindByID", uint64(1)).Return(fixtureProduct(1, 1), nil)
		products.On("CountOrderItems", uint64(1)).Return(int64(2), nil)

		service := newCatalogService(t, new(mocks.MockCategoryRepository), products, new(mocks.MockProductFileRepository))
		assert.ErrorIs(t, service.DeleteProduct(context.Background(), 1), domain.ErrInUse)
		products.AssertNotCalled(t, "Delete", mock.Anything)
	})

	t.Run("deletes when unreferenced", func(t *testing.T) {
		products := new(mocks.MockProductRepository)
		files := new(mocks.MockProductFileRepository)
		products.On("FindByID", uint64(1)).Return(fixtureProduct(1, 1), nil)
		products.On("CountOrderItems", uint64(1)).Return(int64(0), nil)
		files.On("FindByProduct", uint64(1)).Return([]domain.ProductFile{}, nil)
		products.On("Delete", uint64(1)).Return(nil)

		service := newCatalogService(t, new(mocks.MockCategoryRepository), products, files)
		assert.NoError(t, service.DeleteProduct(context.Background(), 1))
		products.AssertExpectations(t)
	})
}

func TestCatalogService_AttachFile(t *testing.T) {
	t.Run("rejects anything that is not a pdf", func(t *testing.T) {
		products := new(mocks.MockProductRepository)
		files := new(mocks.MockProductFileRepository)
		products.On("FindByID", uint64(1)).Return(fixtureProduct(1, 1), nil)

		service := newCatalogService(t, new(mocks.MockCategoryRepository), products, files)
		_, err := service.AttachFile(context.Background(), 1, "notes.txt", strings.NewReader("hello"))

		var ve *domain.ValidationError
		assert.ErrorAs(t, err, &ve)
		assert.Equal(t, pdfValidationMessage, ve.Fields["file"])
		files.AssertNotCalled(t, "Save", mock.Anything)
	})

	t.Run("stores a pdf under an opaque key", func(t *testing.T) {
		products := new(mocks.MockProductRepository)
		files := new(mocks.MockProductFileRepository)
		products.On("FindByID", uint64(1)).Return(fixtureProduct(1, 1), nil)
		files.On("Save", mock.AnythingOfType("*domain.ProductFile")).Return(nil).Run(func(args mock.Arguments) {
			args.Get(0).(*domain.ProductFile).ID = 1
		})

		service := newCatalogService(t, new(mocks.MockCategoryRepository), products, files)
		f, err := service.AttachFile(context.Background(), 1, "manual.PDF", strings.NewReader("%PDF-1.4"))

		require.NoError(t, err)
		assert.Equal(t, "manual.PDF", f.Name)
		assert.NotContains(t, f.StorageKey, "manual")
		assert.Equal(t, int64(len("%PDF-1.4")), f.Size)

		reader, size, err := service.OpenFile(f)
		require.NoError(t, err)
		defer reader.Close()
		assert.Equal(t, f.Size, size)
	})

	t.Run("missing product", func(t *testing.T) {
		products := new(mocks.MockProductRepository)
		products.On("FindByID", uint64(9)).Return(nil, nil)

		service := newCatalogService(t, new(mocks.MockCategoryRepository), products, new(mocks.MockProductFileRepository))
		_, err := service.AttachFile(context.Background(), 9, "manual.pdf", strings.NewReader("x"))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestCatalogService_DeleteFile_MissingBlobIsLogged(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	blobs, err := filestore.New(t.TempDir())
	require.NoError(t, err)

	products := new(mocks.MockProductRepository)
	files := new(mocks.MockProductFileRepository)
	products.On("FindByID", uint64(1)).Return(fixtureProduct(1, 1), nil)
	files.On("FindByID", uint64(5)).Return(&domain.ProductFile{ID: 5, ProductID: 1, Name: "manual.pdf", StorageKey: "gone.pdf"}, nil)
	files.On("Delete", uint64(5)).Return(nil)

	service := NewCatalogService(new(mocks.MockCategoryRepository), products, files, blobs, zap.New(core).Sugar())

	// the record is removed even when the blob is already gone
	require.NoError(t, service.DeleteFile(context.Background(), 1, 5))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "failed to remove blob", logs.All()[0].Message)
}

func TestCatalogService_GetFile_WrongProduct(t *testing.T) {
	products := new(mocks.MockProductRepository)
	files := new(mocks.MockProductFileRepository)
	products.On("FindByID", uint64(1)).Return(fixtureProduct(1, 1), nil)
	files.On("FindByID", uint64(5)).Return(&domain.ProductFile{ID: 5, ProductID: 2}, nil)

	service := newCatalogService(t, new(mocks.MockCategoryRepository), products, files)
	_, err := service.GetFile(context.Background(), 1, 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
