// internal/services/serial_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/Mustazir/stillore-server/internal/utils"
)

type SerialTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *ProductService
}

func (s *SerialTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.service = NewProductService(s.db, nil)
}

func (s *SerialTestSuite) TestFreshCategoryStartsAtOne() {
	createTestCategory(s.T(), s.db, "Shoes", "SHO")

	serial, err := s.service.GenerateSerial(context.Background(), "Shoes")
	s.Require().NoError(err)
	s.Equal("STLSHO00001", serial)
}

func (s *SerialTestSuite) TestIncrementsHighestExisting() {
	createTestCategory(s.T(), s.db, "Shoes", "SHO")
	createTestProduct(s.T(), s.db, "STLSHO00003", "Shoes", 5)
	createTestProduct(s.T(), s.db, "STLSHO00007", "Shoes", 5)

	serial, err := s.service.GenerateSerial(context.Background(), "Shoes")
	s.Require().NoError(err)
	s.Equal("STLSHO00008", serial)
}

func (s *SerialTestSuite) TestCategoriesCountIndependently() {
	createTestCategory(s.T(), s.db, "Shoes", "SHO")
	createTestCategory(s.T(), s.db, "Jackets", "JAC")
	createTestProduct(s.T(), s.db, "STLSHO00042", "Shoes", 5)

	serial, err := s.service.GenerateSerial(context.Background(), "Jackets")
	s.Require().NoError(err)
	s.Equal("STLJAC00001", serial)
}

func (s *SerialTestSuite) TestLowercaseCodeIsUppercased() {
	createTestCategory(s.T(), s.db, "Bags", "bag")

	serial, err := s.service.GenerateSerial(context.Background(), "Bags")
	s.Require().NoError(err)
	s.Equal("STLBAG00001", serial)
}

func (s *SerialTestSuite) TestPrefixCodeIgnoresLongerCode() {
	createTestCategory(s.T(), s.db, "Basics", "BA")
	createTestCategory(s.T(), s.db, "Bags", "BAG")
	createTestProduct(s.T(), s.db, "STLBAG00042", "Bags", 5)
	createTestProduct(s.T(), s.db, "STLBA00002", "Basics", 5)

	serial, err := s.service.GenerateSerial(context.Background(), "Basics")
	s.Require().NoError(err)
	s.Equal("STLBA00003", serial)

	serial, err = s.service.GenerateSerial(context.Background(), "Bags")
	s.Require().NoError(err)
	s.Equal("STLBAG00043", serial)
}

func (s *SerialTestSuite) TestUnknownCategory() {
	_, err := s.service.GenerateSerial(context.Background(), "Nonexistent")
	s.Require().Error(err)

	apiErr, ok := err.(*utils.APIError)
	s.Require().True(ok)
	s.Equal(404, apiErr.StatusCode)
}

func TestSerialSuite(t *testing.T) {
	suite.Run(t, new(SerialTestSuite))
}
