// internal/services/category_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/Mustazir/stillore-server/internal/utils"
)

type CategoryServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *CategoryService
}

func (s *CategoryServiceTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.service = NewCategoryService(s.db)
}

func (s *CategoryServiceTestSuite) TestCreateGeneratesSlugAndUppercasesCode() {
	category, err := s.service.Create(context.Background(), &CreateCategoryRequest{
		Name: "Winter Jackets",
		Code: "jac",
	})
	s.Require().NoError(err)

	s.Equal("winter-jackets", category.Slug)
	s.Equal("JAC", category.Code)
	s.True(category.IsActive)
}

func (s *CategoryServiceTestSuite) TestDuplicateNameRejected() {
	_, err := s.service.Create(context.Background(), &CreateCategoryRequest{Name: "Shoes", Code: "SHO"})
	s.Require().NoError(err)

	_, err = s.service.Create(context.Background(), &CreateCategoryRequest{Name: "Shoes", Code: "SHX"})
	s.Require().Error(err)

	apiErr, ok := err.(*utils.APIError)
	s.Require().True(ok)
	s.Equal(400, apiErr.StatusCode)
	s.Contains(apiErr.Message, "name")
}

func (s *CategoryServiceTestSuite) TestDuplicateCodeRejected() {
	_, err := s.service.Create(context.Background(), &CreateCategoryRequest{Name: "Shoes", Code: "SHO"})
	s.Require().NoError(err)

	_, err = s.service.Create(context.Background(), &CreateCategoryRequest{Name: "Shorts", Code: "sho"})
	s.Require().Error(err)

	apiErr, ok := err.(*utils.APIError)
	s.Require().True(ok)
	s.Equal(400, apiErr.StatusCode)
	s.Contains(apiErr.Message, "code")
}

func (s *CategoryServiceTestSuite) TestRenameRegeneratesSlug() {
	category, err := s.service.Create(context.Background(), &CreateCategoryRequest{Name: "Shoes", Code: "SHO"})
	s.Require().NoError(err)

	updated, err := s.service.Update(context.Background(), category.ID, &UpdateCategoryRequest{Name: "Running Shoes"})
	s.Require().NoError(err)

	s.Equal("Running Shoes", updated.Name)
	s.Equal("running-shoes", updated.Slug)
}

func (s *CategoryServiceTestSuite) TestDeleteBlockedWhileProductsExist() {
	category, err := s.service.Create(context.Background(), &CreateCategoryRequest{Name: "Shoes", Code: "SHO"})
	s.Require().NoError(err)

	createTestProduct(s.T(), s.db, "STLSHO00001", "Shoes", 5)

	err = s.service.Delete(context.Background(), category.ID)
	s.Require().Error(err)

	apiErr, ok := err.(*utils.APIError)
	s.Require().True(ok)
	s.Equal(400, apiErr.StatusCode)
}

func (s *CategoryServiceTestSuite) TestDeleteEmptyCategory() {
	category, err := s.service.Create(context.Background(), &CreateCategoryRequest{Name: "Shoes", Code: "SHO"})
	s.Require().NoError(err)

	s.Require().NoError(s.service.Delete(context.Background(), category.ID))

	_, err = s.service.GetByID(context.Background(), category.ID)
	s.Require().Error(err)
	apiErr, ok := err.(*utils.APIError)
	s.Require().True(ok)
	s.Equal(404, apiErr.StatusCode)
}

func (s *CategoryServiceTestSuite) TestListFiltersByActive() {
	first, err := s.service.Create(context.Background(), &CreateCategoryRequest{Name: "Shoes", Code: "SHO"})
	s.Require().NoError(err)
	_, err = s.service.Create(context.Background(), &CreateCategoryRequest{Name: "Bags", Code: "BAG"})
	s.Require().NoError(err)

	inactive := false
	_, err = s.service.Update(context.Background(), first.ID, &UpdateCategoryRequest{IsActive: &inactive})
	s.Require().NoError(err)

	active := true
	categories, err := s.service.List(context.Background(), &active)
	s.Require().NoError(err)
	s.Len(categories, 1)
	s.Equal("Bags", categories[0].Name)

	categories, err = s.service.List(context.Background(), nil)
	s.Require().NoError(err)
	s.Len(categories, 2)
}

func TestCategoryServiceSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceTestSuite))
}
