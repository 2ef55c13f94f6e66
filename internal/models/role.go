package models

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleDriver Role = "driver"
	RoleRider  Role = "rider"
	RoleBanned Role = "banned"
)

// UserRole is a single role grant. The (user_id, role) pair is unique so a
// repeated grant is a no-op rather than a duplicate row.
type UserRole struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UserID uint `json:"userId" gorm:"column:user_id;not null;uniqueIndex:idx_user_roles_user_role"`
	Role   Role `json:"role" gorm:"column:role;not null;uniqueIndex:idx_user_roles_user_role"`
}

// TableName specifies the table name
func (UserRole) TableName() string {
	return "user_roles"
}

// RoleSet is the set of role labels granted to one account.
type RoleSet []Role

func (rs RoleSet) Has(role Role) bool {
	for _, r := range rs {
		if r == role {
			return true
		}
	}
	return false
}

func (rs RoleSet) Strings() []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, string(r))
	}
	return out
}
