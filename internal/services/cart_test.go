package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aaravmahajanofficial/invitation-storefront/internal/client"
	appErrors "github.com/aaravmahajanofficial/invitation-storefront/internal/errors"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/models"
	service "github.com/aaravmahajanofficial/invitation-storefront/internal/services"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/services/mocks"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSession = "6f1c1a3e-2b1f-4c55-9a77-3d1f0f8a9b10"

func setupCartService(t *testing.T) (service.CartService, *mocks.API, *storage.MemoryStore) {
	api := mocks.NewAPI(t)
	store := storage.NewMemoryStore()
	return service.NewCartService(store, api), api, store
}

func floralTemplate() *models.Template {
	return &models.Template{
		ID:       "7",
		Title:    "Floral Elegance",
		Price:    149,
		ImageURL: "https://cdn.example.com/floral.png",
	}
}

func TestAddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Defaults And Totals", func(t *testing.T) {
		// Arrange
		cartService, api, _ := setupCartService(t)
		api.On("GetTemplate", mock.Anything, models.ID("7")).Return(floralTemplate(), nil).Once()

		// Act
		cart, err := cartService.AddItem(ctx, testSession, &models.AddItemRequest{TemplateID: "7", Quantity: 2})

		// Assert
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, "Floral Elegance", cart.Items[0].Title)
		assert.Equal(t, "5x7 inches", cart.Items[0].Size)
		assert.Equal(t, "#37514D", cart.Items[0].Color)
		assert.Equal(t, "https://cdn.example.com/floral.png", cart.Items[0].Image)
		assert.Equal(t, 2, cart.ItemCount)
		assert.Equal(t, 298.0, cart.Totals.Subtotal)
		assert.Equal(t, 23.84, cart.Totals.Tax)
		assert.Equal(t, 0.0, cart.Totals.Shipping)
		assert.Equal(t, 321.84, cart.Totals.Total)
	})

	t.Run("Success - Same Line Merges", func(t *testing.T) {
		// Arrange
		cartService, api, _ := setupCartService(t)
		api.On("GetTemplate", mock.Anything, models.ID("7")).Return(floralTemplate(), nil).Twice()

		// Act
		_, err := cartService.AddItem(ctx, testSession, &models.AddItemRequest{TemplateID: "7", Quantity: 1, Size: "4x6 inches"})
		require.NoError(t, err)
		cart, err := cartService.AddItem(ctx, testSession, &models.AddItemRequest{TemplateID: "7", Quantity: 3, Size: "4x6 inches"})

		// Assert
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 4, cart.Items[0].Quantity)
	})

	t.Run("Success - Different Color Is A New Line", func(t *testing.T) {
		// Arrange
		cartService, api, _ := setupCartService(t)
		api.On("GetTemplate", mock.Anything, models.ID("7")).Return(floralTemplate(), nil).Twice()

		// Act
		_, err := cartService.AddItem(ctx, testSession, &models.AddItemRequest{TemplateID: "7", Quantity: 1})
		require.NoError(t, err)
		cart, err := cartService.AddItem(ctx, testSession, &models.AddItemRequest{TemplateID: "7", Quantity: 1, Color: "#8B4513"})

		// Assert
		require.NoError(t, err)
		assert.Len(t, cart.Items, 2)
		assert.Equal(t, 2, cart.ItemCount)
	})

	t.Run("Success - Custom Text Is Sanitized", func(t *testing.T) {
		// Arrange
		cartService, api, _ := setupCartService(t)
		api.On("GetTemplate", mock.Anything, models.ID("7")).Return(floralTemplate(), nil).Once()

		// Act
		cart, err := cartService.AddItem(ctx, testSession, &models.AddItemRequest{
			TemplateID: "7",
			Quantity:   1,
			CustomText: `<script>alert(1)</script>Anna & Tom`,
		})

		// Assert
		require.NoError(t, err)
		assert.NotContains(t, cart.Items[0].CustomText, "<script>")
		assert.Contains(t, cart.Items[0].CustomText, "Anna")
	})

	t.Run("Failure - Unknown Size", func(t *testing.T) {
		// Arrange
		cartService, api, _ := setupCartService(t)
		api.On("GetTemplate", mock.Anything, models.ID("7")).Return(floralTemplate(), nil).Once()

		// Act
		cart, err := cartService.AddItem(ctx, testSession, &models.AddItemRequest{TemplateID: "7", Quantity: 1, Size: "A0"})

		// Assert
		assert.Nil(t, cart)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
	})

	t.Run("Failure - Template Not Found", func(t *testing.T) {
		// Arrange
		cartService, api, store := setupCartService(t)
		apiErr := &client.APIError{StatusCode: 404, Message: "Template not found"}
		api.On("GetTemplate", mock.Anything, models.ID("99")).Return(nil, apiErr).Once()

		// Act
		cart, err := cartService.AddItem(ctx, testSession, &models.AddItemRequest{TemplateID: "99", Quantity: 1})

		// Assert
		assert.Nil(t, cart)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		assert.ErrorIs(t, err, apiErr)

		var items []models.CartLineItem
		found, err := store.Get(ctx, storage.Key(testSession, storage.CartKey), &items)
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Success - Concurrent Adds Are Not Lost", func(t *testing.T) {
		// Arrange
		cartService, api, _ := setupCartService(t)
		api.On("GetTemplate", mock.Anything, models.ID("7")).Return(floralTemplate(), nil)

		// Act
		var wg sync.WaitGroup
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := cartService.AddItem(ctx, testSession, &models.AddItemRequest{TemplateID: "7", Quantity: 1})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		// Assert
		cart, err := cartService.GetCart(ctx, testSession)
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 20, cart.Items[0].Quantity)
	})
}

func TestGetCart(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Empty When Absent", func(t *testing.T) {
		// Arrange
		cartService, _, _ := setupCartService(t)

		// Act
		cart, err := cartService.GetCart(ctx, testSession)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, cart.Items)
		assert.NotNil(t, cart.Items)
		assert.Equal(t, 0.0, cart.Totals.Total)
	})

	t.Run("Success - Empty When Malformed", func(t *testing.T) {
		// Arrange
		cartService, _, store := setupCartService(t)
		store.SetRaw(storage.Key(testSession, storage.CartKey), []byte("{not json"))

		// Act
		cart, err := cartService.GetCart(ctx, testSession)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, cart.Items)
	})

	t.Run("Success - Sessions Are Isolated", func(t *testing.T) {
		// Arrange
		cartService, _, store := setupCartService(t)
		items := []models.CartLineItem{{ID: "1", Title: "Rustic", Price: 10, Quantity: 1}}
		require.NoError(t, store.Set(ctx, storage.Key("other-session", storage.CartKey), items))

		// Act
		cart, err := cartService.GetCart(ctx, testSession)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, cart.Items)
	})
}

func TestUpdateQuantityAndRemove(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, store *storage.MemoryStore) {
		items := []models.CartLineItem{
			{ID: "7", Title: "Floral Elegance", Price: 149, Quantity: 1, Size: "5x7 inches", Color: "#37514D"},
			{ID: "8", Title: "Golden Hour", Price: 99.5, Quantity: 2, Size: "5x7 inches", Color: "#37514D"},
		}
		require.NoError(t, store.Set(ctx, storage.Key(testSession, storage.CartKey), items))
	}

	t.Run("Success - Update Quantity", func(t *testing.T) {
		// Arrange
		cartService, _, store := setupCartService(t)
		seed(t, store)

		// Act
		cart, err := cartService.UpdateQuantity(ctx, testSession, &models.UpdateQuantityRequest{
			LineKey:  models.LineKey{ID: "7", Size: "5x7 inches", Color: "#37514D"},
			Quantity: 3,
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 3, cart.Items[0].Quantity)
		assert.Equal(t, 5, cart.ItemCount)
		assert.Equal(t, 646.0, cart.Totals.Subtotal)
	})

	t.Run("Failure - Update Unknown Line", func(t *testing.T) {
		// Arrange
		cartService, _, store := setupCartService(t)
		seed(t, store)

		// Act
		cart, err := cartService.UpdateQuantity(ctx, testSession, &models.UpdateQuantityRequest{
			LineKey:  models.LineKey{ID: "7", Size: "4x6 inches", Color: "#37514D"},
			Quantity: 3,
		})

		// Assert
		assert.Nil(t, cart)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})

	t.Run("Success - Remove Line", func(t *testing.T) {
		// Arrange
		cartService, _, store := setupCartService(t)
		seed(t, store)

		// Act
		cart, err := cartService.RemoveItem(ctx, testSession, &models.LineKey{ID: "8", Size: "5x7 inches", Color: "#37514D"})

		// Assert
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, models.ID("7"), cart.Items[0].ID)
	})

	t.Run("Success - Clear Cart", func(t *testing.T) {
		// Arrange
		cartService, _, store := setupCartService(t)
		seed(t, store)

		// Act
		err := cartService.ClearCart(ctx, testSession)

		// Assert
		require.NoError(t, err)
		cart, err := cartService.GetCart(ctx, testSession)
		require.NoError(t, err)
		assert.Empty(t, cart.Items)
	})
}

// failingStore fails every operation.
type failingStore struct {
	storage.Store
	err error
}

func (f failingStore) Get(ctx context.Context, key string, value any) (bool, error) {
	return false, f.err
}

func (f failingStore) Update(ctx context.Context, key string, value any, fn func(bool) error) error {
	return f.err
}

func TestCartStorageFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("Failure - Backend Error On Read", func(t *testing.T) {
		// Arrange
		backendErr := errors.New("connection refused")
		cartService := service.NewCartService(failingStore{err: backendErr}, mocks.NewAPI(t))

		// Act
		cart, err := cartService.GetCart(ctx, testSession)

		// Assert
		assert.Nil(t, cart)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeStorageError, appErr.Code)
		assert.ErrorIs(t, err, backendErr)
	})

	t.Run("Failure - Conflict On Update", func(t *testing.T) {
		// Arrange
		api := mocks.NewAPI(t)
		api.On("GetTemplate", mock.Anything, models.ID("7")).Return(floralTemplate(), nil).Once()
		cartService := service.NewCartService(failingStore{err: storage.ErrConflict}, api)

		// Act
		cart, err := cartService.AddItem(ctx, testSession, &models.AddItemRequest{TemplateID: "7", Quantity: 1})

		// Assert
		assert.Nil(t, cart)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeConflict, appErr.Code)
	})
}
