package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"loadlink/internal/domain"
	"loadlink/internal/repository"
	"loadlink/internal/service"
)

// ──────────────────────────────────────────────
// 5. TRIPS & VEHICLES
// ──────────────────────────────────────────────

func (e *lifecycleEnv) addVehicle(id, carrierID string, capacity int) *domain.Vehicle {
	vehicle := &domain.Vehicle{
		ID:           id,
		CarrierID:    carrierID,
		Type:         domain.VehicleTypeTruck,
		CapacityKg:   capacity,
		LicensePlate: "KA-01-" + id,
		RCNumber:     "RC-" + id,
		IsActive:     true,
	}
	e.vehicles.AddVehicle(vehicle)
	return vehicle
}

func validTripRequest(vehicleID string) service.CreateTripRequest {
	return service.CreateTripRequest{
		VehicleID:     vehicleID,
		Origin:        "Mumbai",
		Destination:   "Delhi",
		DepartureDate: time.Now().Add(24 * time.Hour),
		ArrivalDate:   time.Now().Add(48 * time.Hour),
		PricePerKg:    2.0,
	}
}

func TestTripCreate_SnapshotsVehicleCapacity(t *testing.T) {
	t.Parallel()

	env := newLifecycleEnv()
	env.addVehicle("vehicle-1", "carrier-1", 1000)

	trip, err := env.tripService.Create(context.Background(), carrier("carrier-1"), validTripRequest("vehicle-1"))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if trip.TotalCapacity != 1000 {
		t.Errorf("expected total capacity 1000, got %d", trip.TotalCapacity)
	}
	if trip.AvailableCapacity != 1000 {
		t.Errorf("expected available capacity 1000, got %d", trip.AvailableCapacity)
	}
	if trip.Status != domain.TripStatusActive {
		t.Errorf("expected status active, got %s", trip.Status)
	}
}

func TestTripCreate_VehicleNotOwned_Denied(t *testing.T) {
	t.Parallel()

	env := newLifecycleEnv()
	env.addVehicle("vehicle-1", "carrier-1", 1000)

	_, err := env.tripService.Create(context.Background(), carrier("carrier-2"), validTripRequest("vehicle-1"))
	if !errors.Is(err, service.ErrNotVehicleOwner) {
		t.Fatalf("expected ErrNotVehicleOwner, got: %v", err)
	}
}

func TestTripCreate_ShipperRole_Denied(t *testing.T) {
	t.Parallel()

	env := newLifecycleEnv()
	env.addVehicle("vehicle-1", "carrier-1", 1000)

	_, err := env.tripService.Create(context.Background(), shipper("shipper-1"), validTripRequest("vehicle-1"))
	if !errors.Is(err, service.ErrCarrierOnly) {
		t.Fatalf("expected ErrCarrierOnly, got: %v", err)
	}
}

func TestTripCreate_CapacityOverride(t *testing.T) {
	t.Parallel()

	env := newLifecycleEnv()
	env.addVehicle("vehicle-1", "carrier-1", 1000)

	req := validTripRequest("vehicle-1")
	req.TotalCapacity = 600

	trip, err := env.tripService.Create(context.Background(), carrier("carrier-1"), req)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if trip.TotalCapacity != 600 || trip.AvailableCapacity != 600 {
		t.Errorf("expected capacity 600/600, got %d/%d", trip.TotalCapacity, trip.AvailableCapacity)
	}

	req.TotalCapacity = 1500
	_, err = env.tripService.Create(context.Background(), carrier("carrier-1"), req)
	if !errors.Is(err, service.ErrCapacityExceedsVehicle) {
		t.Fatalf("expected ErrCapacityExceedsVehicle, got: %v", err)
	}
}

func TestTripCreate_ArrivalBeforeDeparture_Rejected(t *testing.T) {
	t.Parallel()

	env := newLifecycleEnv()
	env.addVehicle("vehicle-1", "carrier-1", 1000)

	req := validTripRequest("vehicle-1")
	req.ArrivalDate = req.DepartureDate.Add(-time.Hour)

	_, err := env.tripService.Create(context.Background(), carrier("carrier-1"), req)
	if !errors.Is(err, service.ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got: %v", err)
	}
}

func TestTripUpdate_OwnerOnly(t *testing.T) {
	t.Parallel()

	env := newLifecycleEnv()
	env.addActiveTrip("trip-1", "carrier-1", 1000, 1.0)

	origin := "Pune"
	_, err := env.tripService.Update(context.Background(), carrier("carrier-2"), "trip-1", service.UpdateTripRequest{Origin: &origin})
	if !errors.Is(err, service.ErrNotTripOwner) {
		t.Fatalf("expected ErrNotTripOwner, got: %v", err)
	}

	trip, err := env.tripService.Update(context.Background(), carrier("carrier-1"), "trip-1", service.UpdateTripRequest{Origin: &origin})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if trip.Origin != "Pune" {
		t.Errorf("expected origin Pune, got %s", trip.Origin)
	}
}

func TestTripUpdate_InvalidStatus_Rejected(t *testing.T) {
	t.Parallel()

	env := newLifecycleEnv()
	env.addActiveTrip("trip-1", "carrier-1", 1000, 1.0)

	status := "paused"
	_, err := env.tripService.Update(context.Background(), carrier("carrier-1"), "trip-1", service.UpdateTripRequest{Status: &status})
	if !errors.Is(err, service.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got: %v", err)
	}
}

func TestTripUpdate_AvailableCapacityClampedAtTotal(t *testing.T) {
	t.Parallel()

	env := newLifecycleEnv()
	trip := env.addActiveTrip("trip-1", "carrier-1", 1000, 1.0)
	trip.AvailableCapacity = 400

	capacity := 700
	updated, err := env.tripService.Update(context.Background(), carrier("carrier-1"), "trip-1", service.UpdateTripRequest{AvailableCapacity: &capacity})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if updated.AvailableCapacity != 700 {
		t.Errorf("expected available capacity 700, got %d", updated.AvailableCapacity)
	}

	capacity = 1500
	updated, err = env.tripService.Update(context.Background(), carrier("carrier-1"), "trip-1", service.UpdateTripRequest{AvailableCapacity: &capacity})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if updated.AvailableCapacity != updated.TotalCapacity {
		t.Errorf("expected available clamped to total %d, got %d", updated.TotalCapacity, updated.AvailableCapacity)
	}
}

func TestTripUpdate_NegativeAvailableCapacity_Rejected(t *testing.T) {
	t.Parallel()

	env := newLifecycleEnv()
	env.addActiveTrip("trip-1", "carrier-1", 1000, 1.0)

	capacity := -1
	_, err := env.tripService.Update(context.Background(), carrier("carrier-1"), "trip-1", service.UpdateTripRequest{AvailableCapacity: &capacity})
	if !errors.Is(err, service.ErrInvalidCapacity) {
		t.Fatalf("expected ErrInvalidCapacity, got: %v", err)
	}
}

func TestTripListActive_ExcludesOtherStatuses(t *testing.T) {
	t.Parallel()

	env := newLifecycleEnv()
	env.addActiveTrip("trip-1", "carrier-1", 1000, 1.0)
	done := env.addActiveTrip("trip-2", "carrier-1", 1000, 1.0)
	done.Status = domain.TripStatusCompleted

	trips, err := env.tripService.ListActive(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(trips) != 1 || trips[0].ID != "trip-1" {
		t.Errorf("expected only trip-1, got %d trips", len(trips))
	}
}

func TestVehicleCreate_DuplicatePlate_Conflicts(t *testing.T) {
	t.Parallel()

	env := newLifecycleEnv()
	vehicleService := service.NewVehicleService(env.vehicles)
	ctx := context.Background()

	req := service.CreateVehicleRequest{
		Type:         "truck",
		CapacityKg:   1000,
		LicensePlate: "KA-01-1234",
		RCNumber:     "RC-1",
		IsActive:     true,
	}

	if _, err := vehicleService.Create(ctx, carrier("carrier-1"), req); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	req.RCNumber = "RC-2"
	_, err := vehicleService.Create(ctx, carrier("carrier-2"), req)
	if !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for reused plate, got: %v", err)
	}
}

func TestVehicleCreate_InvalidType_Rejected(t *testing.T) {
	t.Parallel()

	env := newLifecycleEnv()
	vehicleService := service.NewVehicleService(env.vehicles)

	_, err := vehicleService.Create(context.Background(), carrier("carrier-1"), service.CreateVehicleRequest{
		Type:         "bicycle",
		CapacityKg:   50,
		LicensePlate: "KA-01-1234",
		RCNumber:     "RC-1",
	})
	if !errors.Is(err, service.ErrInvalidVehicleType) {
		t.Fatalf("expected ErrInvalidVehicleType, got: %v", err)
	}
}

func TestVehicleUpdate_OtherCarrier_Denied(t *testing.T) {
	t.Parallel()

	env := newLifecycleEnv()
	env.addVehicle("vehicle-1", "carrier-1", 1000)
	vehicleService := service.NewVehicleService(env.vehicles)

	capacity := 2000
	_, err := vehicleService.Update(context.Background(), carrier("carrier-2"), "vehicle-1", service.UpdateVehicleRequest{CapacityKg: &capacity})
	if !errors.Is(err, service.ErrNotVehicleOwner) {
		t.Fatalf("expected ErrNotVehicleOwner, got: %v", err)
	}
}
