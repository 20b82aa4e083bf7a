package user

// User represents a user entity in the system.
type User struct {
	ID       int64  `json:"id"`       // ID is assigned by storage on creation and never changes
	Username string `json:"username"` // Username is the display name of the user
	Email    string `json:"email"`    // Email is the contact address of the user
}

// CreateInput holds the fields supplied when creating a user.
type CreateInput struct {
	Username string
	Email    string
}

// Patch is a partial set of fields to overwrite on an existing user.
// A nil field is left unchanged.
type Patch struct {
	Username *string
	Email    *string
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Username == nil && p.Email == nil
}

// Apply returns a copy of u with the supplied fields overwritten.
func (p Patch) Apply(u User) User {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	return u
}

// Fields returns the patch as a column/value map for storage updates.
func (p Patch) Fields() map[string]any {
	fields := make(map[string]any, 2)
	if p.Username != nil {
		fields["username"] = *p.Username
	}
	if p.Email != nil {
		fields["email"] = *p.Email
	}
	return fields
}
