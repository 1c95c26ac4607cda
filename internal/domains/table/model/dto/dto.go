package dto

import (
	"net/http"
	"strconv"

	"dinebook/internal/domains/table/model"
	"dinebook/shared"
	"dinebook/shared/constant"
	gDto "dinebook/shared/dto"
	"dinebook/shared/failure"
	gModel "dinebook/shared/model"
	"dinebook/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreateTableRequest struct {
	TableNumber    string   `json:"table_number"     validate:"required,max=20"`
	Capacity       int      `json:"capacity"         validate:"required,min=1,max=20"`
	Location       string   `json:"location"         validate:"required,oneof=indoor outdoor private-dining bar window-view quiet-area"`
	Area           string   `json:"area"             validate:"omitempty,max=100"`
	Features       []string `json:"features"         validate:"omitempty,dive,oneof=window-view quiet-area private accessible high-chair-available"`
	PricePerPerson *float64 `json:"price_per_person" validate:"omitempty,min=0"`
	IsActive       *bool    `json:"is_active"        validate:"omitempty"`
	CurrentStatus  string   `json:"current_status"   validate:"omitempty,oneof=available occupied reserved maintenance"`
}

func (c *CreateTableRequest) ToModel(user string) model.Table {
	active := true
	if c.IsActive != nil {
		active = *c.IsActive
	}

	var price float64
	if c.PricePerPerson != nil {
		price = *c.PricePerPerson
	}

	status := c.CurrentStatus
	if status == "" {
		status = model.StatusAvailable
	}

	features := pq.StringArray{}
	if len(c.Features) > 0 {
		features = pq.StringArray(c.Features)
	}

	return model.Table{
		ID:             uuid.NewString(),
		TableNumber:    c.TableNumber,
		Capacity:       c.Capacity,
		Location:       c.Location,
		Area:           c.Area,
		Features:       features,
		PricePerPerson: price,
		IsActive:       active,
		CurrentStatus:  status,
		Metadata:       gModel.NewMetadata(user, timezone.Now()),
	}
}

// UpdateTableRequest only writes the fields that are set.
type UpdateTableRequest struct {
	TableNumber    string         `db:"table_number"     json:"table_number"     validate:"omitempty,max=20"`
	Capacity       *int           `db:"capacity"         json:"capacity"         validate:"omitempty,min=1,max=20"`
	Location       string         `db:"location"         json:"location"         validate:"omitempty,oneof=indoor outdoor private-dining bar window-view quiet-area"`
	Area           *string        `db:"area"             json:"area"             validate:"omitempty,max=100"`
	Features       pq.StringArray `db:"features"         json:"features"         validate:"omitempty,dive,oneof=window-view quiet-area private accessible high-chair-available"`
	PricePerPerson *float64       `db:"price_per_person" json:"price_per_person" validate:"omitempty,min=0"`
	IsActive       *bool          `db:"is_active"        json:"is_active"        validate:"omitempty"`
	CurrentStatus  string         `db:"current_status"   json:"current_status"   validate:"omitempty,oneof=available occupied reserved maintenance"`
}

type TableResponse struct {
	ID             string   `json:"id"`
	TableNumber    string   `json:"table_number"`
	Capacity       int      `json:"capacity"`
	Location       string   `json:"location"`
	Area           string   `json:"area"`
	Features       []string `json:"features"`
	PricePerPerson float64  `json:"price_per_person"`
	IsActive       bool     `json:"is_active"`
	CurrentStatus  string   `json:"current_status"`
	gDto.Metadata
}

func (r *TableResponse) FromModel(model model.Table) {
	r.ID = model.ID
	r.TableNumber = model.TableNumber
	r.Capacity = model.Capacity
	r.Location = model.Location
	r.Area = model.Area
	r.Features = []string(model.Features)
	r.PricePerPerson = model.PricePerPerson
	r.IsActive = model.IsActive
	r.CurrentStatus = model.CurrentStatus
	r.Metadata.FromModel(model.Metadata)

	if r.Features == nil {
		r.Features = []string{}
	}
}

type GetTablesResponse struct {
	Tables    []TableResponse `json:"tables"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetTablesResponse) FromModels(models []model.Table, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Tables = make([]TableResponse, len(models))
	for i, mod := range models {
		r.Tables[i].FromModel(mod)
	}
}

// TableFilter is the query surface of GET /tables.
type TableFilter struct {
	Capacity      *int
	Location      string
	Area          string
	IsActive      *bool
	CurrentStatus string
}

func (f *TableFilter) FromRequest(r *http.Request) error {
	query := r.URL.Query()

	if capacity := query.Get(constant.RequestParamCapacity); capacity != "" {
		value, err := strconv.Atoi(capacity)
		if err != nil || value < 1 {
			return failure.BadRequestFromString("capacity must be a positive integer") //nolint:wrapcheck
		}

		f.Capacity = &value
	}

	f.Location = query.Get(constant.RequestParamLocation)
	f.Area = query.Get(constant.RequestParamArea)
	f.IsActive = shared.ConvertStringToBool(query.Get(constant.RequestParamIsActive))
	f.CurrentStatus = query.Get(constant.RequestParamCurrStatus)

	return nil
}

// ToFilterGroup ANDs the set fields. Capacity matches tables that seat at least that many.
func (f *TableFilter) ToFilterGroup() gDto.FilterGroup {
	filters := []any{}

	if f.Capacity != nil {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldCapacity,
			Value:    *f.Capacity,
			Operator: gDto.FilterOperatorGreaterEq,
			Table:    model.TableName,
		})
	}

	if f.Location != "" {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldLocation,
			Value:    f.Location,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	if f.Area != "" {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldArea,
			Value:    f.Area,
			Operator: gDto.FilterOperatorLike,
			Table:    model.TableName,
		})
	}

	if f.IsActive != nil {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldIsActive,
			Value:    *f.IsActive,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	if f.CurrentStatus != "" {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldCurrentStatus,
			Value:    f.CurrentStatus,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	return gDto.FilterGroup{Filters: filters, Operator: gDto.FilterGroupOperatorAnd}
}
