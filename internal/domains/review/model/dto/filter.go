package dto

import (
	"net/http"
	"strconv"

	"dinebook/internal/domains/review/model"
	"dinebook/shared"
	"dinebook/shared/constant"
	gDto "dinebook/shared/dto"
	"dinebook/shared/failure"
)

// ReviewFilter is the query surface of GET /reviews. Hidden reviews are
// only listed when a customer is named.
type ReviewFilter struct {
	Rating   *int
	Verified *bool
	Customer string
}

func (f *ReviewFilter) FromRequest(r *http.Request) error {
	query := r.URL.Query()

	if rating := query.Get(constant.RequestParamRating); rating != "" {
		value, err := strconv.Atoi(rating)
		if err != nil || value < 1 || value > 5 {
			return failure.BadRequestFromString("rating must be between 1 and 5") //nolint:wrapcheck
		}

		f.Rating = &value
	}

	if verified := query.Get(constant.RequestParamVerified); verified != "" {
		f.Verified = shared.ConvertStringToBool(verified)
		if f.Verified == nil {
			return failure.BadRequestFromString("verified must be true or false") //nolint:wrapcheck
		}
	}

	f.Customer = query.Get(constant.RequestParamCustomer)

	return nil
}

func (f ReviewFilter) ToFilterGroup() gDto.FilterGroup {
	filters := []any{}

	if f.Customer != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldCustomerID, Value: f.Customer, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	} else {
		filters = append(filters, gDto.Filter{Field: model.FieldIsPublic, Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if f.Rating != nil {
		filters = append(filters, gDto.Filter{Field: model.FieldRating, Value: *f.Rating, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if f.Verified != nil {
		filters = append(filters, gDto.Filter{Field: model.FieldIsVerified, Value: *f.Verified, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	return gDto.FilterGroup{Filters: filters, Operator: gDto.FilterGroupOperatorAnd}
}
