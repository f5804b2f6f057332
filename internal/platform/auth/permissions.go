package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Staff roles. Kept in sync with the staff domain's role enum.
const (
	RoleAdmin        = "admin"
	RoleDoctor       = "doctor"
	RoleNurse        = "nurse"
	RoleReceptionist = "receptionist"
	RoleLabTech      = "lab_tech"
	RolePharmacist   = "pharmacist"
)

// Roles returns every recognized staff role.
func Roles() []string {
	return []string{RoleAdmin, RoleDoctor, RoleNurse, RoleReceptionist, RoleLabTech, RolePharmacist}
}

// ParseRole resolves s to a canonical role name, case-insensitively.
func ParseRole(s string) (string, bool) {
	for _, r := range Roles() {
		if strings.EqualFold(s, r) {
			return r, true
		}
	}
	return "", false
}

// Actions gated by the permission table.
const (
	ActionPatientRead  = "patient.read"
	ActionPatientWrite = "patient.write"
	ActionVisitRead    = "visit.read"
	ActionVisitWrite   = "visit.write"
	ActionVisitDelete  = "visit.delete"
	ActionQueueRead    = "queue.read"
	ActionQueueWrite   = "queue.write"
	ActionQueueDelete  = "queue.delete"
	ActionLabRead      = "lab.read"
	ActionLabWrite     = "lab.write"
	ActionStaffRead    = "staff.read"
	ActionStaffWrite   = "staff.write"
)

// permissions is the single source of truth for role-based access. Admin is
// implicitly allowed everything and is omitted from the rows.
var permissions = map[string][]string{
	ActionPatientRead:  {RoleDoctor, RoleNurse, RoleReceptionist, RoleLabTech, RolePharmacist},
	ActionPatientWrite: {RoleDoctor, RoleNurse, RoleReceptionist},
	ActionVisitRead:    {RoleDoctor, RoleNurse, RoleReceptionist, RoleLabTech, RolePharmacist},
	ActionVisitWrite:   {RoleDoctor, RoleNurse, RoleReceptionist},
	ActionVisitDelete:  {},
	ActionQueueRead:    {RoleDoctor, RoleNurse, RoleReceptionist, RoleLabTech, RolePharmacist},
	ActionQueueWrite:   {RoleDoctor, RoleNurse, RoleReceptionist},
	ActionQueueDelete:  {RoleReceptionist},
	ActionLabRead:      {RoleDoctor, RoleNurse, RoleLabTech},
	ActionLabWrite:     {RoleDoctor, RoleLabTech},
	ActionStaffRead:    {},
	ActionStaffWrite:   {},
}

// Allowed reports whether role may perform action. Unknown actions deny.
func Allowed(action, role string) bool {
	if role == RoleAdmin {
		return true
	}
	for _, r := range permissions[action] {
		if r == role {
			return true
		}
	}
	return false
}

// RequirePermission returns middleware enforcing the permission table. Requests
// with no acting user get 401; authenticated callers without the permission
// get 403.
func RequirePermission(action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := ActorFromContext(c.Request().Context())
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if !Allowed(action, actor.Role) {
				return echo.NewHTTPError(http.StatusForbidden,
					fmt.Sprintf("role %q may not perform %s", actor.Role, action))
			}
			return next(c)
		}
	}
}
