package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTenant_StatusFollowsMoveOut(t *testing.T) {
	tenant := &Tenant{Name: "Jane"}
	assert.True(t, tenant.IsActive())
	assert.Equal(t, TenantActive, tenant.Status())

	out := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	tenant.MoveOutDate = &out
	assert.False(t, tenant.IsActive())
	assert.Equal(t, TenantFormer, tenant.Status())
}

func TestTenant_MarshalJSONAddsStatus(t *testing.T) {
	out := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	for _, tc := range []struct {
		name   string
		tenant Tenant
		want   string
	}{
		{"active", Tenant{ID: 7, Name: "Jane"}, "active"},
		{"former", Tenant{ID: 8, Name: "Faith", MoveOutDate: &out}, "former"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			b, err := json.Marshal(tc.tenant)
			require.NoError(t, err)
			var got map[string]any
			require.NoError(t, json.Unmarshal(b, &got))
			assert.Equal(t, tc.want, got["status"])
			assert.Equal(t, tc.tenant.Name, got["name"])
			assert.EqualValues(t, tc.tenant.ID, got["id"])
		})
	}

	// Pointers marshal the same way.
	b, err := json.Marshal(&Tenant{Name: "Jane"})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"status":"active"`)
}

func TestMaintenanceStatus(t *testing.T) {
	tests := []struct {
		status   MaintenanceStatus
		valid    bool
		terminal bool
	}{
		{MaintenancePending, true, false},
		{MaintenanceInProgress, true, false},
		{MaintenanceCompleted, true, true},
		{MaintenanceCancelled, true, true},
		{"done", false, false},
		{"", false, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.valid, tt.status.Valid(), "valid %q", tt.status)
		assert.Equal(t, tt.terminal, tt.status.Terminal(), "terminal %q", tt.status)
	}
}

func TestPriorityAndUnitStatusValid(t *testing.T) {
	for _, p := range []MaintenancePriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityEmergency} {
		assert.True(t, p.Valid(), p)
	}
	assert.False(t, MaintenancePriority("urgent").Valid())

	for _, s := range []UnitStatus{UnitVacant, UnitOccupied, UnitMaintenance} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, UnitStatus("let").Valid())
	assert.True(t, (&Unit{Status: UnitOccupied}).IsOccupied())
	assert.False(t, (&Unit{Status: UnitMaintenance}).IsOccupied())
}

func TestMaintenanceRequest_CloneIsDeep(t *testing.T) {
	done := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	r := &MaintenanceRequest{
		Images:      []string{"a.jpg"},
		Comments:    []MaintenanceComment{{Author: "John", Message: "On it"}},
		CompletedAt: &done,
	}
	c := r.Clone()
	c.Images[0] = "b.jpg"
	c.Comments[0].Message = "changed"
	*c.CompletedAt = done.AddDate(0, 0, 1)

	assert.Equal(t, "a.jpg", r.Images[0])
	assert.Equal(t, "On it", r.Comments[0].Message)
	assert.Equal(t, done, *r.CompletedAt)
}

func TestNotification_IsRead(t *testing.T) {
	n := &Notification{}
	assert.False(t, n.IsRead())
	now := time.Now()
	n.ReadAt = &now
	assert.True(t, n.IsRead())
}
