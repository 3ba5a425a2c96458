// internal/services/content_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/Mustazir/stillore-server/internal/models"
)

type ContentServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *ContentService
}

func (s *ContentServiceTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.service = NewContentService(s.db)
}

func (s *ContentServiceTestSuite) slideRequest(title string, order int) *HeroSlideRequest {
	return &HeroSlideRequest{
		Title:       title,
		Subtitle:    "Season drop",
		Description: "New arrivals for the season",
		CTA:         "Shop now",
		Link:        "/products",
		Type:        "image",
		MediaURL:    "https://cdn.example.com/slide.jpg",
		Order:       order,
	}
}

func (s *ContentServiceTestSuite) TestActiveSlidesOrderedByPosition() {
	ctx := context.Background()

	_, err := s.service.CreateSlide(ctx, s.slideRequest("Second", 2))
	s.Require().NoError(err)
	first, err := s.service.CreateSlide(ctx, s.slideRequest("First", 1))
	s.Require().NoError(err)
	hidden, err := s.service.CreateSlide(ctx, s.slideRequest("Hidden", 0))
	s.Require().NoError(err)

	_, err = s.service.ToggleSlide(ctx, hidden.ID)
	s.Require().NoError(err)

	slides, err := s.service.ListActiveSlides(ctx)
	s.Require().NoError(err)

	s.Require().Len(slides, 2)
	s.Equal("First", slides[0].Title)
	s.Equal("Second", slides[1].Title)
	_ = first
}

func (s *ContentServiceTestSuite) TestReorderSlides() {
	ctx := context.Background()

	a, err := s.service.CreateSlide(ctx, s.slideRequest("A", 1))
	s.Require().NoError(err)
	b, err := s.service.CreateSlide(ctx, s.slideRequest("B", 2))
	s.Require().NoError(err)

	err = s.service.ReorderSlides(ctx, []SlideOrderUpdate{
		{ID: a.ID.String(), Order: 2},
		{ID: b.ID.String(), Order: 1},
	})
	s.Require().NoError(err)

	slides, err := s.service.ListActiveSlides(ctx)
	s.Require().NoError(err)
	s.Equal("B", slides[0].Title)
	s.Equal("A", slides[1].Title)
}

func (s *ContentServiceTestSuite) TestTimerActivationIsExclusive() {
	ctx := context.Background()

	first, err := s.service.CreateTimer(ctx, &CountdownTimerRequest{
		Title:   "Summer Sale",
		EndDate: time.Now().Add(48 * time.Hour),
	})
	s.Require().NoError(err)
	s.True(first.IsActive)

	second, err := s.service.CreateTimer(ctx, &CountdownTimerRequest{
		Title:   "Flash Sale",
		EndDate: time.Now().Add(6 * time.Hour),
	})
	s.Require().NoError(err)
	s.True(second.IsActive)

	var firstFresh models.CountdownTimer
	s.Require().NoError(s.db.First(&firstFresh, "id = ?", first.ID).Error)
	s.False(firstFresh.IsActive)

	active, err := s.service.ActiveTimer(ctx)
	s.Require().NoError(err)
	s.Require().NotNil(active)
	s.Equal(second.ID, active.ID)
}

func (s *ContentServiceTestSuite) TestToggleTimerDeactivatesOthers() {
	ctx := context.Background()

	first, err := s.service.CreateTimer(ctx, &CountdownTimerRequest{
		Title:   "Summer Sale",
		EndDate: time.Now().Add(48 * time.Hour),
	})
	s.Require().NoError(err)

	second, err := s.service.CreateTimer(ctx, &CountdownTimerRequest{
		Title:   "Flash Sale",
		EndDate: time.Now().Add(6 * time.Hour),
	})
	s.Require().NoError(err)

	// re-activate the first; the second must drop out
	toggled, err := s.service.ToggleTimer(ctx, first.ID)
	s.Require().NoError(err)
	s.True(toggled.IsActive)

	var secondFresh models.CountdownTimer
	s.Require().NoError(s.db.First(&secondFresh, "id = ?", second.ID).Error)
	s.False(secondFresh.IsActive)
}

func (s *ContentServiceTestSuite) TestNoActiveTimerReturnsNil() {
	active, err := s.service.ActiveTimer(context.Background())
	s.Require().NoError(err)
	s.Nil(active)
}

func (s *ContentServiceTestSuite) TestBannerDefaults() {
	banner, err := s.service.CreateBanner(context.Background(), &OfferBannerRequest{
		Title:        "Mid-season offer",
		Description:  "Up to 40 percent off selected items",
		DiscountText: "-40%",
		ButtonLink:   "/offers",
	})
	s.Require().NoError(err)

	s.True(banner.IsActive)

	var fresh models.OfferBanner
	s.Require().NoError(s.db.First(&fresh, "id = ?", banner.ID).Error)
	s.Equal("Shop Now", fresh.ButtonText)
	s.Equal("#f97316", fresh.BackgroundGradientFrom)
}

func (s *ContentServiceTestSuite) TestDynamicLinkInactiveByDefault() {
	link, err := s.service.CreateLink(context.Background(), &DynamicLinkRequest{
		Label: "Summer",
		Type:  "season",
		Value: "summer",
		Path:  "/products?season=summer",
	})
	s.Require().NoError(err)
	s.False(link.IsActive)

	links, err := s.service.ListActiveLinks(context.Background())
	s.Require().NoError(err)
	s.Empty(links)

	_, err = s.service.ToggleLink(context.Background(), link.ID)
	s.Require().NoError(err)

	links, err = s.service.ListActiveLinks(context.Background())
	s.Require().NoError(err)
	s.Len(links, 1)
}

func TestContentServiceSuite(t *testing.T) {
	suite.Run(t, new(ContentServiceTestSuite))
}
