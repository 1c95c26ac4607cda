package shared_test

import (
	"context"
	"dinebook/shared"
	"dinebook/shared/cache/mocks"
	"dinebook/shared/constant"
	"dinebook/shared/dto"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		input    string
		expected *bool
	}{
		{input: "", expected: nil},
		{input: "true", expected: boolPtr(true)},
		{input: "false", expected: boolPtr(false)},
		{input: "1", expected: boolPtr(true)},
		{input: "0", expected: boolPtr(false)},
		{input: "T", expected: boolPtr(true)},
		{input: "FALSE", expected: boolPtr(false)},
		{input: "maybe", expected: nil},
	}

	for _, tt := range tests {
		t.Run("input "+tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "zero total", total: 0, limit: 10, expected: 1},
		{name: "zero limit", total: 100, limit: 0, expected: 1},
		{name: "negative limit", total: 100, limit: -5, expected: 1},
		{name: "exact division", total: 100, limit: 10, expected: 10},
		{name: "remainder", total: 101, limit: 10, expected: 11},
		{name: "limit above total", total: 5, limit: 10, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type updateTable struct {
		Location   string   `db:"location"`
		Capacity   int      `db:"capacity"`
		IsActive   *bool    `db:"is_active"`
		Price      *float64 `db:"special_pricing"`
		Ignored    string   `db:"-"`
		NoTag      string
		EmptyField string `db:"area"`
	}

	price := 0.0

	tests := []struct {
		name     string
		data     updateTable
		expected map[string]any
	}{
		{
			name:     "populated values",
			data:     updateTable{Location: "patio", Capacity: 4, Ignored: "x", NoTag: "y"},
			expected: map[string]any{"location": "patio", "capacity": 4},
		},
		{
			name:     "pointer values are dereferenced",
			data:     updateTable{IsActive: boolPtr(false), Price: &price},
			expected: map[string]any{"is_active": false, "special_pricing": 0.0},
		},
		{
			name:     "all zero",
			data:     updateTable{},
			expected: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.TransformFields(tt.data, "staff-1")

			assert.Equal(t, "staff-1", result[constant.FieldModifiedBy])
			assert.IsType(t, time.Time{}, result[constant.FieldModifiedAt])

			delete(result, constant.FieldModifiedBy)
			delete(result, constant.FieldModifiedAt)

			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFilterByID(t *testing.T) {
	result := shared.FilterByID("550e8400-e29b-41d4-a716-446655440000", "id", "reservations")

	require.Len(t, result.Filters, 1)
	assert.Equal(t, dto.Filter{
		Field:    "id",
		Value:    "550e8400-e29b-41d4-a716-446655440000",
		Operator: dto.FilterOperatorEq,
		Table:    "reservations",
	}, result.Filters[0])
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "table", shared.BuildCacheKey("table"))
	assert.Equal(t, "table:abc", shared.BuildCacheKey("table", "abc"))
	assert.Equal(t, "reservation:user-1:list", shared.BuildCacheKey("reservation", "user-1", "list"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	patio := dto.FilterGroup{Filters: []any{dto.Filter{Field: "location", Value: "patio", Operator: dto.FilterOperatorEq}}}
	hall := dto.FilterGroup{Filters: []any{dto.Filter{Field: "location", Value: "hall", Operator: dto.FilterOperatorEq}}}

	first := shared.BuildCacheKeyWithQuery("timeslot", params, patio)
	second := shared.BuildCacheKeyWithQuery("timeslot", params, patio)
	other := shared.BuildCacheKeyWithQuery("timeslot", params, hall)
	nextPage := shared.BuildCacheKeyWithQuery("timeslot", dto.QueryParams{Page: 2, Limit: 10}, patio)

	assert.True(t, strings.HasPrefix(first, "timeslot:"))
	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.NotEqual(t, first, nextPage)
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	redisCache := mocks.NewMockRedisCache(ctrl)

	redisCache.EXPECT().Clear(gomock.Any(), "table:*").Return(nil)
	shared.InvalidateCaches(context.Background(), redisCache, "table")

	redisCache.EXPECT().Clear(gomock.Any(), "timeslot:*").Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), redisCache, "timeslot")
}

func boolPtr(b bool) *bool {
	return &b
}
