package tests

import (
	"context"
	"errors"
	"testing"

	"loadlink/internal/domain"
	"loadlink/internal/service"
)

// ──────────────────────────────────────────────
// 4. REVIEWS & RATING AGGREGATES
// ──────────────────────────────────────────────

func (e *lifecycleEnv) addUser(id string, role domain.Role) *domain.User {
	user := &domain.User{ID: id, Role: role, Email: id + "@example.com"}
	e.users.AddUser(user)
	return user
}

func TestReviewCreate_SelfReview_Rejected(t *testing.T) {
	t.Parallel()

	env := newLifecycleEnv()
	env.addActiveTrip("trip-1", "carrier-1", 1000, 1.0)
	env.addPendingBooking("booking-1", "trip-1", "shipper-1", 100)

	_, err := env.reviewService.Create(context.Background(), shipper("shipper-1"), service.CreateReviewRequest{
		BookingID: "booking-1",
		ToUserID:  "shipper-1",
		Rating:    5,
	})
	if !errors.Is(err, service.ErrSelfReview) {
		t.Fatalf("expected ErrSelfReview, got: %v", err)
	}
}

func TestReviewCreate_RatingOutOfRange_Rejected(t *testing.T) {
	t.Parallel()

	env := newLifecycleEnv()
	env.addActiveTrip("trip-1", "carrier-1", 1000, 1.0)
	env.addPendingBooking("booking-1", "trip-1", "shipper-1", 100)

	for _, rating := range []int{0, 6, -1} {
		_, err := env.reviewService.Create(context.Background(), shipper("shipper-1"), service.CreateReviewRequest{
			BookingID: "booking-1",
			ToUserID:  "carrier-1",
			Rating:    rating,
		})
		if !errors.Is(err, service.ErrInvalidRating) {
			t.Errorf("rating %d: expected ErrInvalidRating, got: %v", rating, err)
		}
	}
}

func TestReviewCreate_NonParticipant_Denied(t *testing.T) {
	t.Parallel()

	env := newLifecycleEnv()
	env.addActiveTrip("trip-1", "carrier-1", 1000, 1.0)
	env.addPendingBooking("booking-1", "trip-1", "shipper-1", 100)

	_, err := env.reviewService.Create(context.Background(), shipper("shipper-2"), service.CreateReviewRequest{
		BookingID: "booking-1",
		ToUserID:  "carrier-1",
		Rating:    4,
	})
	if !errors.Is(err, service.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got: %v", err)
	}
}

func TestReviewCreate_SecondReviewSameBooking_Rejected(t *testing.T) {
	t.Parallel()

	env := newLifecycleEnv()
	env.addUser("carrier-1", domain.RoleCarrier)
	env.addActiveTrip("trip-1", "carrier-1", 1000, 1.0)
	env.addPendingBooking("booking-1", "trip-1", "shipper-1", 100)

	ctx := context.Background()
	req := service.CreateReviewRequest{
		BookingID: "booking-1",
		ToUserID:  "carrier-1",
		Rating:    4,
	}

	if _, err := env.reviewService.Create(ctx, shipper("shipper-1"), req); err != nil {
		t.Fatalf("first review: expected no error, got: %v", err)
	}

	_, err := env.reviewService.Create(ctx, shipper("shipper-1"), req)
	if !errors.Is(err, service.ErrAlreadyReviewed) {
		t.Fatalf("second review: expected ErrAlreadyReviewed, got: %v", err)
	}
}

func TestReviewCreate_BothDirectionsAllowed(t *testing.T) {
	t.Parallel()

	env := newLifecycleEnv()
	env.addUser("carrier-1", domain.RoleCarrier)
	env.addUser("shipper-1", domain.RoleShipper)
	env.addActiveTrip("trip-1", "carrier-1", 1000, 1.0)
	env.addPendingBooking("booking-1", "trip-1", "shipper-1", 100)

	ctx := context.Background()

	if _, err := env.reviewService.Create(ctx, shipper("shipper-1"), service.CreateReviewRequest{
		BookingID: "booking-1",
		ToUserID:  "carrier-1",
		Rating:    5,
	}); err != nil {
		t.Fatalf("shipper review: expected no error, got: %v", err)
	}

	if _, err := env.reviewService.Create(ctx, carrier("carrier-1"), service.CreateReviewRequest{
		BookingID: "booking-1",
		ToUserID:  "shipper-1",
		Rating:    3,
	}); err != nil {
		t.Fatalf("carrier review: expected no error, got: %v", err)
	}

	if env.reviews.CountReviews() != 2 {
		t.Errorf("expected 2 reviews, got %d", env.reviews.CountReviews())
	}
}

func TestReviewCreate_RecomputesRecipientAggregate(t *testing.T) {
	t.Parallel()

	env := newLifecycleEnv()
	env.addUser("carrier-1", domain.RoleCarrier)
	env.addActiveTrip("trip-1", "carrier-1", 1000, 1.0)
	env.addPendingBooking("booking-1", "trip-1", "shipper-1", 100)
	env.addPendingBooking("booking-2", "trip-1", "shipper-2", 100)

	ctx := context.Background()

	if _, err := env.reviewService.Create(ctx, shipper("shipper-1"), service.CreateReviewRequest{
		BookingID: "booking-1",
		ToUserID:  "carrier-1",
		Rating:    5,
	}); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if _, err := env.reviewService.Create(ctx, shipper("shipper-2"), service.CreateReviewRequest{
		BookingID: "booking-2",
		ToUserID:  "carrier-1",
		Rating:    2,
	}); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	user := env.users.GetUser("carrier-1")
	if user.ReviewCount != 2 {
		t.Errorf("expected review count 2, got %d", user.ReviewCount)
	}
	if user.Rating != 3.5 {
		t.Errorf("expected rating 3.5, got %f", user.Rating)
	}
}

func TestReviewUpdate_AuthorOnly_AndAggregateRefreshed(t *testing.T) {
	t.Parallel()

	env := newLifecycleEnv()
	env.addUser("carrier-1", domain.RoleCarrier)
	env.addActiveTrip("trip-1", "carrier-1", 1000, 1.0)
	env.addPendingBooking("booking-1", "trip-1", "shipper-1", 100)

	ctx := context.Background()
	review, err := env.reviewService.Create(ctx, shipper("shipper-1"), service.CreateReviewRequest{
		BookingID: "booking-1",
		ToUserID:  "carrier-1",
		Rating:    5,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	newRating := 1
	_, err = env.reviewService.Update(ctx, shipper("shipper-2"), review.ID, service.UpdateReviewRequest{Rating: &newRating})
	if !errors.Is(err, service.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized for non-author, got: %v", err)
	}

	updated, err := env.reviewService.Update(ctx, shipper("shipper-1"), review.ID, service.UpdateReviewRequest{Rating: &newRating})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if updated.Rating != 1 {
		t.Errorf("expected rating 1, got %d", updated.Rating)
	}

	if got := env.users.GetUser("carrier-1").Rating; got != 1 {
		t.Errorf("expected aggregate rating 1, got %f", got)
	}
}

func TestReviewDelete_RefreshesAggregate(t *testing.T) {
	t.Parallel()

	env := newLifecycleEnv()
	env.addUser("carrier-1", domain.RoleCarrier)
	env.addActiveTrip("trip-1", "carrier-1", 1000, 1.0)
	env.addPendingBooking("booking-1", "trip-1", "shipper-1", 100)

	ctx := context.Background()
	review, err := env.reviewService.Create(ctx, shipper("shipper-1"), service.CreateReviewRequest{
		BookingID: "booking-1",
		ToUserID:  "carrier-1",
		Rating:    4,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if err := env.reviewService.Delete(ctx, shipper("shipper-1"), review.ID); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	user := env.users.GetUser("carrier-1")
	if user.ReviewCount != 0 {
		t.Errorf("expected review count 0, got %d", user.ReviewCount)
	}
	if user.Rating != 0 {
		t.Errorf("expected rating 0, got %f", user.Rating)
	}
}
