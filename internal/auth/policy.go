package auth

type Resource string

const (
	ResourceUser        Resource = "user"
	ResourceCustomer    Resource = "customer"
	ResourceCategory    Resource = "category"
	ResourceProduct     Resource = "product"
	ResourceProductFile Resource = "product_file"
	ResourceOrder       Resource = "order"
)

type Operation string

const (
	OpList   Operation = "list"
	OpRead   Operation = "read"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

type capability func(Actor) bool

func anyone(Actor) bool          { return true }
func authenticated(a Actor) bool { return a.Authenticated }
func staffOnly(a Actor) bool     { return a.Authenticated && a.IsStaff }

// rules is the authorization table: one capability per (resource,
// operation) pair, evaluated before every service call. Missing entries
// deny. Instance-level ownership (self-or-staff) is checked inside the
// services via Actor.CanActOn.
var rules = map[Resource]map[Operation]capability{
	ResourceUser: {
		OpCreate: anyone, // registration
		OpList:   staffOnly,
		OpRead:   authenticated,
		OpUpdate: authenticated,
	},
	ResourceCustomer: {
		OpList:   authenticated,
		OpRead:   authenticated,
		OpUpdate: authenticated,
		// no create/delete: customers are provisioned at registration only
	},
	ResourceCategory: {
		OpList:   anyone,
		OpRead:   anyone,
		OpCreate: staffOnly,
		OpUpdate: staffOnly,
		OpDelete: staffOnly,
	},
	ResourceProduct: {
		OpList:   anyone,
		OpRead:   anyone,
		OpCreate: staffOnly,
		OpUpdate: staffOnly,
		OpDelete: staffOnly,
	},
	ResourceProductFile: {
		// reads require a customer identity; entitlement is decided per
		// product by the entitlement service
		OpList:   authenticated,
		OpRead:   authenticated,
		OpCreate: staffOnly,
		OpUpdate: staffOnly,
		OpDelete: staffOnly,
	},
	ResourceOrder: {
		OpList:   authenticated,
		OpRead:   authenticated,
		OpUpdate: staffOnly, // status transitions
	},
}

// Allowed evaluates the authorization table for the actor.
func Allowed(a Actor, resource Resource, op Operation) bool {
	ops, ok := rules[resource]
	if !ok {
		return false
	}
	allow, ok := ops[op]
	if !ok {
		return false
	}
	return allow(a)
}
