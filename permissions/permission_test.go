package permissions_test

import (
	"net/http"
	"testing"

	"dinebook/permissions"
	"dinebook/shared/constant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_EmbeddedRoutes(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)
	assert.False(t, data.Skip)

	tests := []struct {
		name     string
		path     string
		method   string
		skip     bool
		customer bool
		staff    bool
	}{
		{name: "login is public", path: "/v1/auth/login", method: http.MethodPost, skip: true, customer: true, staff: true},
		{name: "table listing is public", path: "/v1/tables/", method: http.MethodGet, skip: true, customer: true, staff: true},
		{name: "table creation is staff only", path: "/v1/tables/", method: http.MethodPost, staff: true},
		{name: "slot update is staff only", path: "/v1/timeslots/{id}", method: http.MethodPut, staff: true},
		{name: "booking is open to both roles", path: "/v1/reservations/", method: http.MethodPost, customer: true, staff: true},
		{name: "review writing is customer only", path: "/v1/reviews/", method: http.MethodPost, customer: true},
		{name: "review verification is staff only", path: "/v1/reviews/{id}/verify", method: http.MethodPost, staff: true},
		{name: "user lookup is staff only", path: "/v1/users/{id}", method: http.MethodGet, staff: true},
		{name: "event stream is staff only", path: "/v1/events/ws", method: http.MethodGet, staff: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permission := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.path, permission.Path)
			assert.Equal(t, tt.skip, permission.Skip)
			assert.Equal(t, tt.customer, permission.Allows(constant.RoleCustomer))
			assert.Equal(t, tt.staff, permission.Allows(constant.RoleStaff))
		})
	}
}

func TestFindPermissions_UnknownRoute(t *testing.T) {
	data, err := permissions.Parse([]byte(`{"endpoints":[{"path":"/v1/tables/","method":"GET","skip":true}]}`))
	require.NoError(t, err)

	permission := data.FindPermissions("/v1/tables/", http.MethodDelete)

	assert.Empty(t, permission.Path)
	assert.False(t, permission.Skip)
	assert.True(t, permission.Allows("anyone"))
}

func TestParse_Invalid(t *testing.T) {
	_, err := permissions.Parse([]byte(`{"endpoints":`))

	assert.Error(t, err)
}
