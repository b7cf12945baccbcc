package domain

// Role is the access level bound to an API key.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// NewRole validates a role name. Empty input defaults to RoleUser.
func NewRole(s string) (Role, error) {
	switch Role(s) {
	case "":
		return RoleUser, nil
	case RoleAdmin, RoleUser:
		return Role(s), nil
	default:
		var v ValidationErrors
		v.Add("role", "must be admin or user")
		return "", v
	}
}

// Scope is the visibility window a caller operates in.
//
// An admin scope sees every record regardless of owner. An account scope
// sees only records whose OwnerID equals AccountID; records owned by other
// accounts, and global records without an owner, are invisible to it.
type Scope struct {
	AccountID string
	Admin     bool
}

// AdminScope returns a scope that sees everything.
func AdminScope() Scope {
	return Scope{Admin: true}
}

// AccountScope returns a scope restricted to one account.
func AccountScope(accountID string) Scope {
	return Scope{AccountID: accountID}
}

// Allows reports whether a record owned by ownerID is visible in the scope.
func (s Scope) Allows(ownerID string) bool {
	return s.Admin || (s.AccountID != "" && ownerID == s.AccountID)
}

// Owner returns the owner to stamp on records created in this scope.
// Admin callers may create global records or records for a named owner.
func (s Scope) Owner(requested string) string {
	if s.Admin {
		return requested
	}
	return s.AccountID
}
