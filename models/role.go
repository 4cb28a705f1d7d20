package models

import "strings"

type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleWaiter   Role = "Waiter"
	RoleChef     Role = "Chef"
	RoleCustomer Role = "Customer"
)

// ParseRole normalizes the stored role string. Older rows use upper case
// ("ADMIN") and "USER" for customers.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, true
	case "waiter":
		return RoleWaiter, true
	case "chef":
		return RoleChef, true
	case "customer", "user":
		return RoleCustomer, true
	}
	return "", false
}

// Caller is the identity behind a request. The zero value is anonymous.
type Caller struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
}

var Anonymous = Caller{}

func (c Caller) IsAnonymous() bool {
	return c.UserID == 0
}
