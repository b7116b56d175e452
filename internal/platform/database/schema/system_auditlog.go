package schema

// SystemAuditLogTable represents the 'system.auditlog' table
type SystemAuditLogTable struct {
	Table     string
	ID        string
	EventType string
	UserID    string
	Context   string
	CreatedAt string
}

// SystemAuditLog is the schema definition for system.auditlog
var SystemAuditLog = SystemAuditLogTable{
	Table:     "system.auditlog",
	ID:        "id",
	EventType: "eventtype",
	UserID:    "userid",
	Context:   "context",
	CreatedAt: "createdat",
}

// Columns returns all standard column names
func (t SystemAuditLogTable) Columns() []string {
	return []string{
		t.ID, t.EventType, t.UserID, t.Context, t.CreatedAt,
	}
}
