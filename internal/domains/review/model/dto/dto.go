package dto

import (
	"time"

	"dinebook/internal/domains/review/model"
	"dinebook/shared"
	gDto "dinebook/shared/dto"
	gModel "dinebook/shared/model"
	"dinebook/shared/timezone"

	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	ReservationID  string `json:"reservation_id"            validate:"required,uuid"`
	Rating         int    `json:"rating"                    validate:"required,min=1,max=5"`
	FoodRating     *int   `json:"food_rating,omitempty"     validate:"omitempty,min=1,max=5"`
	ServiceRating  *int   `json:"service_rating,omitempty"  validate:"omitempty,min=1,max=5"`
	AmbianceRating *int   `json:"ambiance_rating,omitempty" validate:"omitempty,min=1,max=5"`
	Comment        string `json:"comment"                   validate:"required,min=10,max=1000"`
}

// ToModel builds a public, unverified review.
func (r *CreateReviewRequest) ToModel(customerID string) model.Review {
	return model.Review{
		ID:             uuid.NewString(),
		CustomerID:     customerID,
		ReservationID:  r.ReservationID,
		Rating:         r.Rating,
		FoodRating:     r.FoodRating,
		ServiceRating:  r.ServiceRating,
		AmbianceRating: r.AmbianceRating,
		Comment:        r.Comment,
		IsPublic:       true,
		Metadata:       gModel.NewMetadata(customerID, timezone.Now()),
	}
}

// UpdateReviewRequest carries the customer's edits and the staff response.
// Which half an actor may send is checked by the service.
type UpdateReviewRequest struct {
	Rating         *int    `db:"rating"          json:"rating,omitempty"          validate:"omitempty,min=1,max=5"`
	FoodRating     *int    `db:"food_rating"     json:"food_rating,omitempty"     validate:"omitempty,min=1,max=5"`
	ServiceRating  *int    `db:"service_rating"  json:"service_rating,omitempty"  validate:"omitempty,min=1,max=5"`
	AmbianceRating *int    `db:"ambiance_rating" json:"ambiance_rating,omitempty" validate:"omitempty,min=1,max=5"`
	Comment        *string `db:"comment"         json:"comment,omitempty"         validate:"omitempty,min=10,max=1000"`
	StaffResponse  *string `db:"-"               json:"staff_response,omitempty"  validate:"omitempty,max=500"`
}

// HasCustomerEdits reports whether any customer-owned field is set.
func (u UpdateReviewRequest) HasCustomerEdits() bool {
	return u.Rating != nil || u.FoodRating != nil || u.ServiceRating != nil || u.AmbianceRating != nil || u.Comment != nil
}

type StaffResponse struct {
	Comment     string     `json:"comment"`
	RespondedBy string     `json:"responded_by"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
}

type ReviewResponse struct {
	ID             string         `json:"id"`
	CustomerID     string         `json:"customer_id"`
	ReservationID  string         `json:"reservation_id"`
	Rating         int            `json:"rating"`
	FoodRating     *int           `json:"food_rating,omitempty"`
	ServiceRating  *int           `json:"service_rating,omitempty"`
	AmbianceRating *int           `json:"ambiance_rating,omitempty"`
	Comment        string         `json:"comment"`
	IsVerified     bool           `json:"is_verified"`
	IsPublic       bool           `json:"is_public"`
	HelpfulVotes   int            `json:"helpful_votes"`
	StaffResponse  *StaffResponse `json:"staff_response,omitempty"`
	gDto.Metadata
}

func (r *ReviewResponse) FromModel(model model.Review) {
	r.ID = model.ID
	r.CustomerID = model.CustomerID
	r.ReservationID = model.ReservationID
	r.Rating = model.Rating
	r.FoodRating = model.FoodRating
	r.ServiceRating = model.ServiceRating
	r.AmbianceRating = model.AmbianceRating
	r.Comment = model.Comment
	r.IsVerified = model.IsVerified
	r.IsPublic = model.IsPublic
	r.HelpfulVotes = model.HelpfulVotes
	r.Metadata.FromModel(model.Metadata)

	if model.StaffResponseComment != nil {
		r.StaffResponse = &StaffResponse{
			Comment:     *model.StaffResponseComment,
			RespondedAt: model.StaffResponseAt,
		}

		if model.StaffResponseBy != nil {
			r.StaffResponse.RespondedBy = *model.StaffResponseBy
		}
	}
}

type GetReviewsResponse struct {
	Reviews   []ReviewResponse `json:"reviews"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetReviewsResponse) FromModels(models []model.Review, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reviews = make([]ReviewResponse, len(models))
	for i, mod := range models {
		r.Reviews[i].FromModel(mod)
	}
}
