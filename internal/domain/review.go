package domain

import "time"

// Review is post-booking feedback from one participant about the other.
type Review struct {
	ID          string
	BookingID   string
	FromUserID  string
	ToUserID    string
	Rating      int
	Comment     string
	CreatedDate time.Time
}
