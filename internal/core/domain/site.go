package domain

import (
	"errors"
	"time"
)

// SiteStatus represents the review state of a submitted website.
type SiteStatus string

const (
	SitePending  SiteStatus = "pending"
	SiteApproved SiteStatus = "approved"
	SiteRejected SiteStatus = "rejected"
)

// validReviews defines the allowed review-state transitions. A rejected site
// may be resubmitted, which moves it back to pending.
var validReviews = map[SiteStatus][]SiteStatus{
	SitePending:  {SiteApproved, SiteRejected},
	SiteRejected: {SitePending},
}

var ErrSiteNotFound = errors.New("site not found")
var ErrInvalidReview = errors.New("invalid review transition")

// CanTransitionTo reports whether a review transition from s to next is valid.
func (s SiteStatus) CanTransitionTo(next SiteStatus) bool {
	for _, allowed := range validReviews[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Site is a website submitted for management, owned by a user and reviewed
// by an admin.
type Site struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	OwnerID     string     `json:"owner_id" bson:"owner_id"`
	URL         string     `json:"url" bson:"url"`
	Name        string     `json:"name" bson:"name"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	Status      SiteStatus `json:"status" bson:"status"`
	ReviewNotes string     `json:"review_notes,omitempty" bson:"review_notes,omitempty"`
	Verified    bool       `json:"verified" bson:"verified"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
}
