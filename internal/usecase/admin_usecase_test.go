package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"campusbazaar/internal/domain/entity"
	"campusbazaar/internal/usecase"
	"campusbazaar/pkg/errors"
)

func newAdminFixture() (*usecase.AdminUseCase, *MockUserRepo, *MockProductRepo, *MockAuthClient, *MockImageStore) {
	userRepo := new(MockUserRepo)
	productRepo := new(MockProductRepo)
	authClient := new(MockAuthClient)
	imageStore := new(MockImageStore)
	uc := usecase.NewAdminUseCase(userRepo, productRepo, authClient, imageStore)
	return uc, userRepo, productRepo, authClient, imageStore
}

func TestAdminDeleteUser(t *testing.T) {
	t.Run("CascadesListingsAndAuthAccount", func(t *testing.T) {
		uc, userRepo, productRepo, authClient, imageStore := newAdminFixture()

		user := &entity.User{ID: "user-1", Role: entity.RoleUser}
		products := []*entity.Product{
			{ID: "prod-1", SellerID: "user-1", Images: []entity.ProductImage{{PublicID: "products/a"}}},
		}

		userRepo.On("GetByID", mock.Anything, "user-1").Return(user, nil)
		productRepo.On("ListBySellerID", mock.Anything, "user-1").Return(products, nil)
		imageStore.On("DeleteImage", mock.Anything, "products/a").Return(nil)
		productRepo.On("DeleteBySellerID", mock.Anything, "user-1").Return(nil)
		userRepo.On("Delete", mock.Anything, "user-1").Return(nil)
		authClient.On("DeleteUser", mock.Anything, "user-1").Return(nil)

		err := uc.DeleteUser(context.Background(), "user-1")

		require.NoError(t, err)
		productRepo.AssertCalled(t, "DeleteBySellerID", mock.Anything, "user-1")
		authClient.AssertCalled(t, "DeleteUser", mock.Anything, "user-1")
	})

	t.Run("RefusesAdminAccounts", func(t *testing.T) {
		uc, userRepo, productRepo, _, _ := newAdminFixture()

		admin := &entity.User{ID: "admin-1", Role: entity.RoleAdmin}
		userRepo.On("GetByID", mock.Anything, "admin-1").Return(admin, nil)

		err := uc.DeleteUser(context.Background(), "admin-1")

		require.Error(t, err)
		assert.True(t, errors.Is(err, "FORBIDDEN"))
		productRepo.AssertNotCalled(t, "DeleteBySellerID", mock.Anything, mock.Anything)
	})
}

func TestAdminSetFeatured(t *testing.T) {
	uc, _, productRepo, _, _ := newAdminFixture()

	product := &entity.Product{ID: "prod-1", SellerID: "seller-1"}
	productRepo.On("GetByID", mock.Anything, "prod-1").Return(product, nil)
	productRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *entity.Product) bool {
		return p.IsFeatured
	})).Return(nil)

	result, err := uc.SetFeatured(context.Background(), "prod-1", true)

	require.NoError(t, err)
	assert.True(t, result.IsFeatured)
}

func TestAdminDeleteProduct(t *testing.T) {
	uc, _, productRepo, _, imageStore := newAdminFixture()

	product := &entity.Product{
		ID:       "prod-1",
		SellerID: "seller-1",
		Images:   []entity.ProductImage{{PublicID: "products/a"}},
	}

	productRepo.On("GetByID", mock.Anything, "prod-1").Return(product, nil)
	productRepo.On("Delete", mock.Anything, "prod-1").Return(nil)
	imageStore.On("DeleteImage", mock.Anything, "products/a").Return(nil)

	err := uc.DeleteProduct(context.Background(), "prod-1")

	require.NoError(t, err)
	imageStore.AssertCalled(t, "DeleteImage", mock.Anything, "products/a")
}
