package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	anon     = Anonymous
	customer = Actor{UserID: 10, Authenticated: true}
	staff    = Actor{UserID: 1, IsStaff: true, Authenticated: true}
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		name     string
		actor    Actor
		resource Resource
		op       Operation
		want     bool
	}{
		{"anonymous reads catalog", anon, ResourceCategory, OpList, true},
		{"anonymous reads products", anon, ResourceProduct, OpRead, true},
		{"anonymous registers", anon, ResourceUser, OpCreate, true},
		{"anonymous cannot create category", anon, ResourceCategory, OpCreate, false},
		{"anonymous cannot list customers", anon, ResourceCustomer, OpList, false},
		{"anonymous cannot list files", anon, ResourceProductFile, OpList, false},

		{"customer reads catalog", customer, ResourceProduct, OpList, true},
		{"customer cannot create product", customer, ResourceProduct, OpCreate, false},
		{"customer cannot delete category", customer, ResourceCategory, OpDelete, false},
		{"customer cannot upload file", customer, ResourceProductFile, OpCreate, false},
		{"customer reads own customers", customer, ResourceCustomer, OpRead, true},
		{"customer cannot list users", customer, ResourceUser, OpList, false},
		{"customer lists own orders", customer, ResourceOrder, OpList, true},
		{"customer cannot transition orders", customer, ResourceOrder, OpUpdate, false},

		{"staff creates product", staff, ResourceProduct, OpCreate, true},
		{"staff deletes category", staff, ResourceCategory, OpDelete, true},
		{"staff uploads file", staff, ResourceProductFile, OpCreate, true},
		{"staff lists users", staff, ResourceUser, OpList, true},
		{"staff transitions orders", staff, ResourceOrder, OpUpdate, true},
		{"nobody creates customers", staff, ResourceCustomer, OpCreate, false},
		{"nobody deletes customers", staff, ResourceCustomer, OpDelete, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.actor, tt.resource, tt.op))
		})
	}
}

func TestActorCanActOn(t *testing.T) {
	assert.False(t, anon.CanActOn(10))
	assert.True(t, customer.CanActOn(10))
	assert.False(t, customer.CanActOn(11))
	assert.True(t, staff.CanActOn(10))
}
