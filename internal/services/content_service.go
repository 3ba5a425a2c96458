// internal/services/content_service.go
package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Mustazir/stillore-server/internal/models"
	"github.com/Mustazir/stillore-server/internal/utils"
)

// ContentService is flat CRUD over the four marketing resources. The only
// cross-row rule is countdown-timer activation, which deactivates every
// other timer.
type ContentService struct {
	db *gorm.DB
}

func NewContentService(db *gorm.DB) *ContentService {
	return &ContentService{db: db}
}

// --- hero slides ---

type HeroSlideRequest struct {
	Title        string `json:"title" validate:"required,max=100"`
	Subtitle     string `json:"subtitle" validate:"required,max=100"`
	Description  string `json:"description" validate:"required,max=500"`
	CTA          string `json:"cta" validate:"required,max=50"`
	Link         string `json:"link" validate:"required,max=512"`
	Type         string `json:"type" validate:"required,oneof=image video"`
	MediaURL     string `json:"mediaUrl" validate:"required,url"`
	VideoURL     string `json:"videoUrl" validate:"omitempty,url"`
	ThumbnailURL string `json:"thumbnailUrl" validate:"omitempty,url"`
	Duration     int    `json:"duration" validate:"omitempty,gte=1000"`
	Order        int    `json:"order" validate:"omitempty,gte=0"`
	IsActive     *bool  `json:"isActive"`
}

type SlideOrderUpdate struct {
	ID    string `json:"id" validate:"required,uuid"`
	Order int    `json:"order" validate:"gte=0"`
}

func (s *ContentService) ListActiveSlides(ctx context.Context) ([]models.HeroSlide, error) {
	var slides []models.HeroSlide
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("position ASC").
		Find(&slides).Error
	return slides, err
}

func (s *ContentService) ListAllSlides(ctx context.Context) ([]models.HeroSlide, error) {
	var slides []models.HeroSlide
	err := s.db.WithContext(ctx).Order("position ASC").Find(&slides).Error
	return slides, err
}

func (s *ContentService) GetSlide(ctx context.Context, id uuid.UUID) (*models.HeroSlide, error) {
	var slide models.HeroSlide
	err := s.db.WithContext(ctx).First(&slide, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFound("Hero slide not found")
	}
	if err != nil {
		return nil, err
	}
	return &slide, nil
}

func (s *ContentService) CreateSlide(ctx context.Context, req *HeroSlideRequest) (*models.HeroSlide, error) {
	slide := models.HeroSlide{
		Title:        req.Title,
		Subtitle:     req.Subtitle,
		Description:  req.Description,
		CTA:          req.CTA,
		Link:         req.Link,
		Type:         models.SlideType(req.Type),
		MediaURL:     req.MediaURL,
		VideoURL:     req.VideoURL,
		ThumbnailURL: req.ThumbnailURL,
		Duration:     5000,
		Order:        req.Order,
		IsActive:     true,
	}
	if req.Duration > 0 {
		slide.Duration = req.Duration
	}
	if req.IsActive != nil {
		slide.IsActive = *req.IsActive
	}

	if err := s.db.WithContext(ctx).Create(&slide).Error; err != nil {
		return nil, err
	}
	return &slide, nil
}

func (s *ContentService) UpdateSlide(ctx context.Context, id uuid.UUID, req *HeroSlideRequest) (*models.HeroSlide, error) {
	slide, err := s.GetSlide(ctx, id)
	if err != nil {
		return nil, err
	}

	slide.Title = req.Title
	slide.Subtitle = req.Subtitle
	slide.Description = req.Description
	slide.CTA = req.CTA
	slide.Link = req.Link
	slide.Type = models.SlideType(req.Type)
	slide.MediaURL = req.MediaURL
	slide.VideoURL = req.VideoURL
	slide.ThumbnailURL = req.ThumbnailURL
	if req.Duration > 0 {
		slide.Duration = req.Duration
	}
	slide.Order = req.Order
	if req.IsActive != nil {
		slide.IsActive = *req.IsActive
	}

	if err := s.db.WithContext(ctx).Save(slide).Error; err != nil {
		return nil, err
	}
	return slide, nil
}

func (s *ContentService) DeleteSlide(ctx context.Context, id uuid.UUID) error {
	slide, err := s.GetSlide(ctx, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(slide).Error
}

func (s *ContentService) ToggleSlide(ctx context.Context, id uuid.UUID) (*models.HeroSlide, error) {
	slide, err := s.GetSlide(ctx, id)
	if err != nil {
		return nil, err
	}

	slide.IsActive = !slide.IsActive
	if err := s.db.WithContext(ctx).Model(slide).Update("is_active", slide.IsActive).Error; err != nil {
		return nil, err
	}
	return slide, nil
}

// ReorderSlides applies a batch of position updates. Unknown ids are
// skipped.
func (s *ContentService) ReorderSlides(ctx context.Context, updates []SlideOrderUpdate) error {
	for _, u := range updates {
		id, err := uuid.Parse(u.ID)
		if err != nil {
			return utils.BadRequest("Invalid slide id in reorder request")
		}
		err = s.db.WithContext(ctx).Model(&models.HeroSlide{}).
			Where("id = ?", id).
			Update("position", u.Order).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// --- offer banners ---

type OfferBannerRequest struct {
	Title                  string `json:"title" validate:"required,max=100"`
	Description            string `json:"description" validate:"required,max=500"`
	DiscountText           string `json:"discountText" validate:"required,max=50"`
	ButtonText             string `json:"buttonText" validate:"omitempty,max=50"`
	ButtonLink             string `json:"buttonLink" validate:"required,max=512"`
	BackgroundGradientFrom string `json:"backgroundGradientFrom" validate:"omitempty,hexcolor"`
	BackgroundGradientTo   string `json:"backgroundGradientTo" validate:"omitempty,hexcolor"`
	Order                  int    `json:"order" validate:"omitempty,gte=0"`
	IsActive               *bool  `json:"isActive"`
}

func (s *ContentService) ListActiveBanners(ctx context.Context) ([]models.OfferBanner, error) {
	var banners []models.OfferBanner
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("position ASC").
		Find(&banners).Error
	return banners, err
}

func (s *ContentService) ListAllBanners(ctx context.Context) ([]models.OfferBanner, error) {
	var banners []models.OfferBanner
	err := s.db.WithContext(ctx).Order("position ASC").Find(&banners).Error
	return banners, err
}

func (s *ContentService) CreateBanner(ctx context.Context, req *OfferBannerRequest) (*models.OfferBanner, error) {
	banner := models.OfferBanner{
		Title:        req.Title,
		Description:  req.Description,
		DiscountText: req.DiscountText,
		ButtonLink:   req.ButtonLink,
		Order:        req.Order,
		IsActive:     true,
	}
	if req.ButtonText != "" {
		banner.ButtonText = req.ButtonText
	}
	if req.BackgroundGradientFrom != "" {
		banner.BackgroundGradientFrom = req.BackgroundGradientFrom
	}
	if req.BackgroundGradientTo != "" {
		banner.BackgroundGradientTo = req.BackgroundGradientTo
	}
	if req.IsActive != nil {
		banner.IsActive = *req.IsActive
	}

	if err := s.db.WithContext(ctx).Create(&banner).Error; err != nil {
		return nil, err
	}
	return &banner, nil
}

func (s *ContentService) UpdateBanner(ctx context.Context, id uuid.UUID, req *OfferBannerRequest) (*models.OfferBanner, error) {
	banner, err := s.getBanner(ctx, id)
	if err != nil {
		return nil, err
	}

	banner.Title = req.Title
	banner.Description = req.Description
	banner.DiscountText = req.DiscountText
	banner.ButtonLink = req.ButtonLink
	banner.Order = req.Order
	if req.ButtonText != "" {
		banner.ButtonText = req.ButtonText
	}
	if req.BackgroundGradientFrom != "" {
		banner.BackgroundGradientFrom = req.BackgroundGradientFrom
	}
	if req.BackgroundGradientTo != "" {
		banner.BackgroundGradientTo = req.BackgroundGradientTo
	}
	if req.IsActive != nil {
		banner.IsActive = *req.IsActive
	}

	if err := s.db.WithContext(ctx).Save(banner).Error; err != nil {
		return nil, err
	}
	return banner, nil
}

func (s *ContentService) DeleteBanner(ctx context.Context, id uuid.UUID) error {
	banner, err := s.getBanner(ctx, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(banner).Error
}

func (s *ContentService) ToggleBanner(ctx context.Context, id uuid.UUID) (*models.OfferBanner, error) {
	banner, err := s.getBanner(ctx, id)
	if err != nil {
		return nil, err
	}

	banner.IsActive = !banner.IsActive
	if err := s.db.WithContext(ctx).Model(banner).Update("is_active", banner.IsActive).Error; err != nil {
		return nil, err
	}
	return banner, nil
}

func (s *ContentService) getBanner(ctx context.Context, id uuid.UUID) (*models.OfferBanner, error) {
	var banner models.OfferBanner
	err := s.db.WithContext(ctx).First(&banner, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFound("Offer banner not found")
	}
	if err != nil {
		return nil, err
	}
	return &banner, nil
}

// --- countdown timers ---

type CountdownTimerRequest struct {
	Title    string    `json:"title" validate:"omitempty,max=100"`
	EndDate  time.Time `json:"endDate" validate:"required"`
	IsActive *bool     `json:"isActive"`
}

// ActiveTimer returns the single active countdown, or nil.
func (s *ContentService) ActiveTimer(ctx context.Context) (*models.CountdownTimer, error) {
	var timer models.CountdownTimer
	err := s.db.WithContext(ctx).Where("is_active = ?", true).First(&timer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &timer, nil
}

func (s *ContentService) ListAllTimers(ctx context.Context) ([]models.CountdownTimer, error) {
	var timers []models.CountdownTimer
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&timers).Error
	return timers, err
}

func (s *ContentService) CreateTimer(ctx context.Context, req *CountdownTimerRequest) (*models.CountdownTimer, error) {
	timer := models.CountdownTimer{
		EndDate:  req.EndDate,
		IsActive: true,
	}
	if req.Title != "" {
		timer.Title = req.Title
	}
	if req.IsActive != nil {
		timer.IsActive = *req.IsActive
	}

	if timer.IsActive {
		if err := s.deactivateTimers(ctx, uuid.Nil); err != nil {
			return nil, err
		}
	}

	if err := s.db.WithContext(ctx).Create(&timer).Error; err != nil {
		return nil, err
	}
	return &timer, nil
}

func (s *ContentService) UpdateTimer(ctx context.Context, id uuid.UUID, req *CountdownTimerRequest) (*models.CountdownTimer, error) {
	timer, err := s.getTimer(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		timer.Title = req.Title
	}
	timer.EndDate = req.EndDate
	if req.IsActive != nil {
		timer.IsActive = *req.IsActive
	}

	if timer.IsActive {
		if err := s.deactivateTimers(ctx, timer.ID); err != nil {
			return nil, err
		}
	}

	if err := s.db.WithContext(ctx).Save(timer).Error; err != nil {
		return nil, err
	}
	return timer, nil
}

func (s *ContentService) DeleteTimer(ctx context.Context, id uuid.UUID) error {
	timer, err := s.getTimer(ctx, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(timer).Error
}

// ToggleTimer flips activation; turning a timer on turns every other
// timer off.
func (s *ContentService) ToggleTimer(ctx context.Context, id uuid.UUID) (*models.CountdownTimer, error) {
	timer, err := s.getTimer(ctx, id)
	if err != nil {
		return nil, err
	}

	timer.IsActive = !timer.IsActive
	if timer.IsActive {
		if err := s.deactivateTimers(ctx, timer.ID); err != nil {
			return nil, err
		}
	}

	if err := s.db.WithContext(ctx).Model(timer).Update("is_active", timer.IsActive).Error; err != nil {
		return nil, err
	}
	return timer, nil
}

func (s *ContentService) getTimer(ctx context.Context, id uuid.UUID) (*models.CountdownTimer, error) {
	var timer models.CountdownTimer
	err := s.db.WithContext(ctx).First(&timer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFound("Countdown timer not found")
	}
	if err != nil {
		return nil, err
	}
	return &timer, nil
}

func (s *ContentService) deactivateTimers(ctx context.Context, except uuid.UUID) error {
	query := s.db.WithContext(ctx).Model(&models.CountdownTimer{}).Where("is_active = ?", true)
	if except != uuid.Nil {
		query = query.Where("id <> ?", except)
	}
	return query.Update("is_active", false).Error
}

// --- dynamic links ---

type DynamicLinkRequest struct {
	Label    string `json:"label" validate:"required,max=100"`
	Type     string `json:"type" validate:"required,oneof=season custom"`
	Value    string `json:"value" validate:"required,max=255"`
	Path     string `json:"path" validate:"omitempty,max=512"`
	Order    int    `json:"order" validate:"omitempty,gte=0"`
	IsActive *bool  `json:"isActive"`
}

func (s *ContentService) ListActiveLinks(ctx context.Context) ([]models.DynamicLink, error) {
	var links []models.DynamicLink
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("position ASC").
		Find(&links).Error
	return links, err
}

func (s *ContentService) ListAllLinks(ctx context.Context) ([]models.DynamicLink, error) {
	var links []models.DynamicLink
	err := s.db.WithContext(ctx).Order("position ASC").Find(&links).Error
	return links, err
}

func (s *ContentService) GetLink(ctx context.Context, id uuid.UUID) (*models.DynamicLink, error) {
	var link models.DynamicLink
	err := s.db.WithContext(ctx).First(&link, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFound("Dynamic link not found")
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (s *ContentService) CreateLink(ctx context.Context, req *DynamicLinkRequest) (*models.DynamicLink, error) {
	link := models.DynamicLink{
		Label: req.Label,
		Type:  models.DynamicLinkType(req.Type),
		Value: req.Value,
		Path:  req.Path,
		Order: req.Order,
	}
	if req.IsActive != nil {
		link.IsActive = *req.IsActive
	}

	if err := s.db.WithContext(ctx).Create(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (s *ContentService) UpdateLink(ctx context.Context, id uuid.UUID, req *DynamicLinkRequest) (*models.DynamicLink, error) {
	link, err := s.GetLink(ctx, id)
	if err != nil {
		return nil, err
	}

	link.Label = req.Label
	link.Type = models.DynamicLinkType(req.Type)
	link.Value = req.Value
	link.Path = req.Path
	link.Order = req.Order
	if req.IsActive != nil {
		link.IsActive = *req.IsActive
	}

	if err := s.db.WithContext(ctx).Save(link).Error; err != nil {
		return nil, err
	}
	return link, nil
}

func (s *ContentService) DeleteLink(ctx context.Context, id uuid.UUID) error {
	link, err := s.GetLink(ctx, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(link).Error
}

func (s *ContentService) ToggleLink(ctx context.Context, id uuid.UUID) (*models.DynamicLink, error) {
	link, err := s.GetLink(ctx, id)
	if err != nil {
		return nil, err
	}

	link.IsActive = !link.IsActive
	if err := s.db.WithContext(ctx).Model(link).Update("is_active", link.IsActive).Error; err != nil {
		return nil, err
	}
	return link, nil
}
