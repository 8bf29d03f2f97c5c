package auth

// Actor is the resolved identity behind a request. The zero value is the
// anonymous actor.
type Actor struct {
	UserID        uint64
	IsStaff       bool
	Authenticated bool
}

var Anonymous = Actor{}

// CanActOn reports whether the actor may touch a resource owned by the
// given user: staff always, otherwise only the owner.
func (a Actor) CanActOn(ownerUserID uint64) bool {
	if !a.Authenticated {
		return false
	}
	return a.IsStaff || a.UserID == ownerUserID
}
