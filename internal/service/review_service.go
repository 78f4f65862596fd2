package service

import (
	"strings"
	"time"

	"github.com/Selinclb/eticaretsitesi/internal/logger"
	"github.com/Selinclb/eticaretsitesi/internal/models"
	"github.com/Selinclb/eticaretsitesi/internal/repository"
)

// ReviewService 商品评价服务
type ReviewService struct {
	repo      repository.ReviewRepository
	orderRepo repository.OrderRepository
	products  *ProductService
}

// NewReviewService 创建评价服务
func NewReviewService(repo repository.ReviewRepository, orderRepo repository.OrderRepository, products *ProductService) *ReviewService {
	return &ReviewService{repo: repo, orderRepo: orderRepo, products: products}
}

// CreateReviewInput 提交评价输入
type CreateReviewInput struct {
	UserID  uint
	Rating  int
	Comment string
	Pros    string
	Cons    string
}

// ListApproved 前台已审核评价
func (s *ReviewService) ListApproved(slug string, page, pageSize int) ([]models.Review, int64, error) {
	product, err := s.products.GetPublicBySlug(slug)
	if err != nil {
		return nil, 0, err
	}
	approved := true
	return s.repo.List(repository.ReviewListFilter{
		Page:       page,
		PageSize:   pageSize,
		ProductID:  product.ID,
		IsApproved: &approved,
	})
}

// Create 提交评价，每个用户每个商品只能评价一次，新评价待审核
func (s *ReviewService) Create(slug string, input CreateReviewInput) (*models.Review, error) {
	product, err := s.products.GetPublicBySlug(slug)
	if err != nil {
		return nil, err
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrReviewRatingInvalid
	}
	comment := strings.TrimSpace(input.Comment)
	if comment == "" {
		return nil, ErrReviewCommentEmpty
	}
	exists, err := s.repo.ExistsByProductAndUser(product.ID, input.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrReviewExists
	}

	verified, err := s.orderRepo.HasDeliveredProduct(input.UserID, product.ID)
	if err != nil {
		logger.Warnw("review_verified_purchase_lookup_failed",
			"user_id", input.UserID,
			"product_id", product.ID,
			"error", err,
		)
		verified = false
	}

	now := time.Now()
	review := &models.Review{
		ProductID:          product.ID,
		UserID:             input.UserID,
		Rating:             input.Rating,
		Comment:            comment,
		Pros:               strings.TrimSpace(input.Pros),
		Cons:               strings.TrimSpace(input.Cons),
		IsVerifiedPurchase: verified,
		IsApproved:         false,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.repo.Create(review); err != nil {
		return nil, err
	}
	return review, nil
}

// ListAdmin 后台评价列表
func (s *ReviewService) ListAdmin(filter repository.ReviewListFilter) ([]models.Review, int64, error) {
	return s.repo.List(filter)
}

// SetApproved 审核评价
func (s *ReviewService) SetApproved(id uint, approved bool) (*models.Review, error) {
	review, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	review.IsApproved = approved
	review.UpdatedAt = time.Now()
	if err := s.repo.Update(review); err != nil {
		return nil, err
	}
	return review, nil
}

// Delete 删除评价
func (s *ReviewService) Delete(id uint) error {
	review, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if review == nil {
		return ErrReviewNotFound
	}
	return s.repo.Delete(id)
}
