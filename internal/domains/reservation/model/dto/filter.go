package dto

import (
	"net/http"
	"slices"

	"dinebook/internal/domains/reservation/model"
	"dinebook/shared/actor"
	"dinebook/shared/constant"
	gDto "dinebook/shared/dto"
	"dinebook/shared/failure"
	"dinebook/shared/schedule"
)

// ReservationFilter is the query surface of GET /reservations.
type ReservationFilter struct {
	Status   string
	Date     string
	Customer string
}

func (f *ReservationFilter) FromRequest(r *http.Request) error {
	query := r.URL.Query()

	f.Status = query.Get(constant.RequestParamStatus)
	if f.Status != "" && !slices.Contains(model.Statuses, f.Status) {
		return failure.BadRequestFromString("unknown status " + f.Status) //nolint:wrapcheck
	}

	f.Date = query.Get(constant.RequestParamDate)
	if f.Date != "" {
		if _, err := schedule.ParseDate(f.Date); err != nil {
			return err
		}
	}

	f.Customer = query.Get(constant.RequestParamCustomer)

	return nil
}

// Scope forces customers onto their own reservations whatever they asked for.
func (f ReservationFilter) Scope(who actor.Actor) ReservationFilter {
	if !who.IsStaff() {
		f.Customer = who.ID
	}

	return f
}

func (f ReservationFilter) ToFilterGroup() gDto.FilterGroup {
	filters := []any{}

	if f.Customer != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldCustomerID, Value: f.Customer, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if f.Status != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldStatus, Value: f.Status, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if f.Date != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldReservationDate, Value: f.Date, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	return gDto.FilterGroup{Filters: filters, Operator: gDto.FilterGroupOperatorAnd}
}

// TableSchedule selects every reservation on a table for one day; the
// conflict detector decides which of them still block.
func TableSchedule(tableID, date string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldTableID, Value: tableID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldReservationDate, Value: date, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}
}
