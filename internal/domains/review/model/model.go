package model

import (
	"time"

	"dinebook/shared/model"
)

const (
	TableName  = "reviews"
	EntityName = "review"

	FieldID                   = "id"
	FieldCustomerID           = "customer_id"
	FieldReservationID        = "reservation_id"
	FieldRating               = "rating"
	FieldFoodRating           = "food_rating"
	FieldServiceRating        = "service_rating"
	FieldAmbianceRating       = "ambiance_rating"
	FieldComment              = "comment"
	FieldIsVerified           = "is_verified"
	FieldIsPublic             = "is_public"
	FieldHelpfulVotes         = "helpful_votes"
	FieldStaffResponseComment = "staff_response_comment"
	FieldStaffResponseBy      = "staff_response_by"
	FieldStaffResponseAt      = "staff_response_at"
)

// Review belongs to exactly one reservation; storage keeps reservation_id unique.
type Review struct {
	ID                   string     `db:"id"`
	CustomerID           string     `db:"customer_id"`
	ReservationID        string     `db:"reservation_id"`
	Rating               int        `db:"rating"`
	FoodRating           *int       `db:"food_rating"`
	ServiceRating        *int       `db:"service_rating"`
	AmbianceRating       *int       `db:"ambiance_rating"`
	Comment              string     `db:"comment"`
	IsVerified           bool       `db:"is_verified"`
	IsPublic             bool       `db:"is_public"`
	HelpfulVotes         int        `db:"helpful_votes"`
	StaffResponseComment *string    `db:"staff_response_comment"`
	StaffResponseBy      *string    `db:"staff_response_by"`
	StaffResponseAt      *time.Time `db:"staff_response_at"`
	model.Metadata
}
