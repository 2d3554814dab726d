package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_Next(t *testing.T) {
	tests := []struct {
		name    string
		current OrderStatus
		want    OrderStatus
	}{
		{name: "pending to accepted", current: OrderPending, want: OrderAccepted},
		{name: "accepted to cooking", current: OrderAccepted, want: OrderCooking},
		{name: "cooking to ready", current: OrderCooking, want: OrderReady},
		{name: "ready to serving", current: OrderReady, want: OrderServing},
		{name: "serving to completed", current: OrderServing, want: OrderCompleted},
		{name: "completed is terminal", current: OrderCompleted, want: ""},
		{name: "cancelled is terminal", current: OrderCancelled, want: ""},
		{name: "no_show is terminal", current: OrderNoShow, want: ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, testCase.current.Next())
		})
	}
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole("waiter")
	assert.True(t, ok)
	assert.Equal(t, RoleWaiter, r)

	_, ok = ParseRole("superuser")
	assert.False(t, ok)
}

func TestValidTableStatus(t *testing.T) {
	for _, status := range []string{TableAvailable, TableOccupied, TableReserved, TableUnavailable} {
		assert.True(t, ValidTableStatus(status), status)
	}
	assert.False(t, ValidTableStatus("cleaning"))
	assert.False(t, ValidTableStatus(""))
}

func TestRole_Staff(t *testing.T) {
	assert.True(t, RoleWaiter.Staff())
	assert.True(t, RoleAdmin.Staff())
	assert.True(t, RoleModerator.Staff())
	assert.True(t, RoleOwner.Staff())
	assert.False(t, RoleUser.Staff())
	assert.False(t, RoleGuest.Staff())
}
