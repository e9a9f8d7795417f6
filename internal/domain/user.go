package domain

// User is a canonical user record resolved from the scheduling service.
// Lives only for the duration of one command invocation.
type User struct {
	ID    string
	Name  string
	Email string
}

// Label renders the user for display: "Name (email)", degrading to the
// bare id when the record is empty (unresolvable user).
func (u User) Label(id string) string {
	if u.ID == "" {
		return id
	}
	return u.Name + " (" + u.Email + ")"
}
