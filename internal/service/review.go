package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"loadlink/internal/domain"
	"loadlink/internal/repository"
)

// ReviewService records post-booking feedback and keeps the recipient's
// rating aggregate in step with it.
type ReviewService struct {
	txRunner    repository.TxRunner
	reviewRepo  repository.ReviewRepository
	bookingRepo repository.BookingRepository
	tripRepo    repository.TripRepository
}

// NewReviewService creates a new ReviewService.
func NewReviewService(
	txRunner repository.TxRunner,
	reviewRepo repository.ReviewRepository,
	bookingRepo repository.BookingRepository,
	tripRepo repository.TripRepository,
) *ReviewService {
	return &ReviewService{
		txRunner:    txRunner,
		reviewRepo:  reviewRepo,
		bookingRepo: bookingRepo,
		tripRepo:    tripRepo,
	}
}

// CreateReviewRequest contains the parameters for creating a review.
type CreateReviewRequest struct {
	BookingID string
	ToUserID  string
	Rating    int
	Comment   string
}

// Create records a review. The author must be a participant in the booking
// (its shipper or the trip's carrier), may not review themselves, and may
// review each booking only once.
func (s *ReviewService) Create(ctx context.Context, actor domain.Principal, req CreateReviewRequest) (*domain.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	if req.ToUserID == actor.ID {
		return nil, ErrSelfReview
	}

	booking, err := s.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	trip, err := s.tripRepo.GetByID(ctx, booking.TripID)
	if err != nil {
		return nil, err
	}

	if actor.ID != booking.ShipperID && actor.ID != trip.CarrierID {
		return nil, ErrNotAuthorized
	}

	existing, err := s.reviewRepo.GetByBookingAndAuthor(ctx, req.BookingID, actor.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyReviewed
	}

	review := &domain.Review{
		ID:          uuid.New().String(),
		BookingID:   req.BookingID,
		FromUserID:  actor.ID,
		ToUserID:    req.ToUserID,
		Rating:      req.Rating,
		Comment:     req.Comment,
		CreatedDate: time.Now(),
	}

	err = s.txRunner.WithinTx(ctx, func(ctx context.Context, r repository.TxRepos) error {
		if err := r.Reviews.Create(ctx, review); err != nil {
			return err
		}
		return refreshRatingAggregate(ctx, r, review.ToUserID)
	})
	if err != nil {
		return nil, err
	}

	return review, nil
}

// Get retrieves a review by ID.
func (s *ReviewService) Get(ctx context.Context, reviewID string) (*domain.Review, error) {
	return s.reviewRepo.GetByID(ctx, reviewID)
}

// List retrieves all reviews.
func (s *ReviewService) List(ctx context.Context) ([]*domain.Review, error) {
	return s.reviewRepo.GetAll(ctx)
}

// UpdateReviewRequest contains the parameters for updating a review.
// Nil fields are left unchanged.
type UpdateReviewRequest struct {
	Rating  *int
	Comment *string
}

// Update modifies a review; only its author may do so. The recipient's
// rating aggregate is recomputed in the same transaction.
func (s *ReviewService) Update(ctx context.Context, actor domain.Principal, reviewID string, req UpdateReviewRequest) (*domain.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	if review.FromUserID != actor.ID {
		return nil, ErrNotAuthorized
	}

	if req.Rating != nil {
		if *req.Rating < 1 || *req.Rating > 5 {
			return nil, ErrInvalidRating
		}
		review.Rating = *req.Rating
	}

	if req.Comment != nil {
		review.Comment = *req.Comment
	}

	err = s.txRunner.WithinTx(ctx, func(ctx context.Context, r repository.TxRepos) error {
		if err := r.Reviews.Update(ctx, review); err != nil {
			return err
		}
		return refreshRatingAggregate(ctx, r, review.ToUserID)
	})
	if err != nil {
		return nil, err
	}

	return review, nil
}

// Delete removes a review; only its author may do so. The recipient's
// rating aggregate is recomputed in the same transaction.
func (s *ReviewService) Delete(ctx context.Context, actor domain.Principal, reviewID string) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}

	if review.FromUserID != actor.ID {
		return ErrNotAuthorized
	}

	return s.txRunner.WithinTx(ctx, func(ctx context.Context, r repository.TxRepos) error {
		if err := r.Reviews.Delete(ctx, reviewID); err != nil {
			return err
		}
		return refreshRatingAggregate(ctx, r, review.ToUserID)
	})
}

// refreshRatingAggregate recomputes a user's average rating and review
// count from the reviews table.
func refreshRatingAggregate(ctx context.Context, r repository.TxRepos, userID string) error {
	rating, count, err := r.Reviews.AggregateForUser(ctx, userID)
	if err != nil {
		return err
	}
	return r.Users.UpdateRating(ctx, userID, rating, count)
}
