package schema

// UserLoginAttemptTable represents the 'users.loginattempt' table
type UserLoginAttemptTable struct {
	Table      string
	ID         string
	Identifier string
	OriginKey  string
	Succeeded  string
	CreatedAt  string
}

// UserLoginAttempt is the schema definition for users.loginattempt
var UserLoginAttempt = UserLoginAttemptTable{
	Table:      "users.loginattempt",
	ID:         "id",
	Identifier: "identifier",
	OriginKey:  "originkey",
	Succeeded:  "succeeded",
	CreatedAt:  "createdat",
}

// Columns returns all standard column names
func (t UserLoginAttemptTable) Columns() []string {
	return []string{
		t.ID, t.Identifier, t.OriginKey, t.Succeeded, t.CreatedAt,
	}
}
