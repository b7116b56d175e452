package schema

// UserSessionTable represents the 'users.session' table
type UserSessionTable struct {
	Table         string
	ID            string
	UserID        string
	TokenHash     string
	OriginKey     string
	UserAgent     string
	IPAddress     string
	ExpiresAt     string
	IsRevoked     string
	CreatedAt     string
	LastRotatedAt string
}

// UserSession is the schema definition for users.session
var UserSession = UserSessionTable{
	Table:         "users.session",
	ID:            "id",
	UserID:        "userid",
	TokenHash:     "tokenhash",
	OriginKey:     "originkey",
	UserAgent:     "useragent",
	IPAddress:     "ipaddress",
	ExpiresAt:     "expiresat",
	IsRevoked:     "isrevoked",
	CreatedAt:     "createdat",
	LastRotatedAt: "lastrotatedat",
}

// Columns returns all standard column names
func (t UserSessionTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.TokenHash, t.OriginKey, t.UserAgent, t.IPAddress, t.ExpiresAt, t.IsRevoked, t.CreatedAt, t.LastRotatedAt,
	}
}
