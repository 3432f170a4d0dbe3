package domain

import "time"

// Role is the closed set of user roles.
type Role string

const (
	RoleShipper Role = "shipper"
	RoleCarrier Role = "carrier"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleShipper || r == RoleCarrier
}

// Principal is the authenticated actor of a request.
type Principal struct {
	ID   string
	Role Role
}

// User represents a registered shipper or carrier.
type User struct {
	ID           string
	Name         string
	Email        string
	Role         Role
	Phone        string
	Rating       float64
	ReviewCount  int
	JoinedDate   time.Time
	Avatar       string
	PasswordHash string
}
