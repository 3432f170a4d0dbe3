package domain

// VehicleType is the kind of vehicle a carrier registers.
type VehicleType string

const (
	VehicleTypeTruck     VehicleType = "truck"
	VehicleTypeVan       VehicleType = "van"
	VehicleTypeTrailer   VehicleType = "trailer"
	VehicleTypeContainer VehicleType = "container"
)

// Valid reports whether the vehicle type is one of the known values.
func (t VehicleType) Valid() bool {
	switch t {
	case VehicleTypeTruck, VehicleTypeVan, VehicleTypeTrailer, VehicleTypeContainer:
		return true
	}
	return false
}

// Vehicle represents a carrier-owned vehicle. CapacityKg is the weight the
// vehicle can carry; trips snapshot it at creation time.
type Vehicle struct {
	ID           string
	CarrierID    string
	Type         VehicleType
	CapacityKg   int
	LicensePlate string
	RCNumber     string
	IsActive     bool
}
