package dto

import (
	"net/http"
	"strconv"

	"dinebook/internal/domains/timeslot/model"
	"dinebook/shared/constant"
	gDto "dinebook/shared/dto"
	"dinebook/shared/failure"
	"dinebook/shared/schedule"
)

const (
	argPriceMin = "price_min"
	argPriceMax = "price_max"
)

// TimeSlotFilter is the query surface of GET /timeslots. Only available
// slots are ever listed.
type TimeSlotFilter struct {
	Date      string
	Location  string
	PartySize *int
	Area      string
	StartTime string
	EndTime   string
	PriceMin  *float64
	PriceMax  *float64
}

func (f *TimeSlotFilter) FromRequest(r *http.Request) error {
	query := r.URL.Query()

	if date := query.Get(constant.RequestParamDate); date != "" {
		if _, err := schedule.ParseDate(date); err != nil {
			return err
		}

		f.Date = date
	}

	f.Location = query.Get(constant.RequestParamLocation)
	f.Area = query.Get(constant.RequestParamArea)

	if size := query.Get(constant.RequestParamPartySize); size != "" {
		value, err := strconv.Atoi(size)
		if err != nil || value < 1 || value > 20 {
			return failure.BadRequestFromString("party size must be between 1 and 20") //nolint:wrapcheck
		}

		f.PartySize = &value
	}

	var err error

	if f.StartTime, err = optionalClock(query.Get(constant.RequestParamStartTime)); err != nil {
		return err
	}

	if f.EndTime, err = optionalClock(query.Get(constant.RequestParamEndTime)); err != nil {
		return err
	}

	if f.PriceMin, err = optionalPrice(query.Get(constant.RequestParamPriceMin)); err != nil {
		return err
	}

	if f.PriceMax, err = optionalPrice(query.Get(constant.RequestParamPriceMax)); err != nil {
		return err
	}

	return nil
}

func optionalClock(value string) (string, error) {
	if value == "" {
		return "", nil
	}

	return schedule.NormalizeClock(value)
}

func optionalPrice(value string) (*float64, error) {
	if value == "" {
		return nil, nil
	}

	price, err := strconv.ParseFloat(value, 64)
	if err != nil || price < 0 {
		return nil, failure.BadRequestFromString("price must be a non-negative number") //nolint:wrapcheck
	}

	return &price, nil
}

func (f *TimeSlotFilter) ToFilterGroup() gDto.FilterGroup {
	filters := []any{
		gDto.Filter{Field: model.FieldIsAvailable, Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName},
	}

	if f.Date != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldDate, Value: f.Date, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if f.Location != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldLocation, Value: f.Location, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if f.PartySize != nil {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldMaxPartySize,
			ArgName:  constant.RequestParamPartySize,
			Value:    *f.PartySize,
			Operator: gDto.FilterOperatorGreaterEq,
			Table:    model.TableName,
		})
	}

	if f.Area != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldArea, Value: f.Area, Operator: gDto.FilterOperatorLike, Table: model.TableName})
	}

	if f.StartTime != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldStartTime, Value: f.StartTime, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName})
	}

	if f.EndTime != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldEndTime, Value: f.EndTime, Operator: gDto.FilterOperatorLessEq, Table: model.TableName})
	}

	if f.PriceMin != nil {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldSpecialPricing,
			ArgName:  argPriceMin,
			Value:    *f.PriceMin,
			Operator: gDto.FilterOperatorGreaterEq,
			Table:    model.TableName,
		})
	}

	if f.PriceMax != nil {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldSpecialPricing,
			ArgName:  argPriceMax,
			Value:    *f.PriceMax,
			Operator: gDto.FilterOperatorLessEq,
			Table:    model.TableName,
		})
	}

	return gDto.FilterGroup{Filters: filters, Operator: gDto.FilterGroupOperatorAnd}
}

// SameDayAtLocation selects the available slots an overlap check has to consider.
func SameDayAtLocation(date, location string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldDate, Value: date, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldLocation, Value: location, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldIsAvailable, Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}
}
