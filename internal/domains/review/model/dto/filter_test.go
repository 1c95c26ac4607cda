package dto_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinebook/internal/domains/review/model"
	"dinebook/internal/domains/review/model/dto"
	gDto "dinebook/shared/dto"
)

func TestReviewFilter_FromRequest(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantErr bool
		fields  []string
	}{
		{name: "public by default", query: "", fields: []string{model.FieldIsPublic}},
		{name: "rating and verified", query: "?rating=4&verified=true", fields: []string{model.FieldIsPublic, model.FieldRating, model.FieldIsVerified}},
		{name: "customer replaces public", query: "?customer=c-1", fields: []string{model.FieldCustomerID}},
		{name: "rating out of range", query: "?rating=9", wantErr: true},
		{name: "verified not a bool", query: "?verified=maybe", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var filter dto.ReviewFilter

			err := filter.FromRequest(httptest.NewRequest("GET", "/v1/reviews"+tt.query, nil))
			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)

			group := filter.ToFilterGroup()
			fields := make([]string, 0, len(group.Filters))

			for _, item := range group.Filters {
				fields = append(fields, item.(gDto.Filter).Field)
			}

			assert.Equal(t, tt.fields, fields)
		})
	}
}
