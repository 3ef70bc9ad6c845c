package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Role is the member's position in the association. The backend has sent
// roles both as names and as small integers over time, so the mapping to
// this enum happens once, at decode time.
type Role int

const (
	RoleUnknown Role = iota
	RolePresident
	RoleDomainHead
	RoleCoordinator
	RoleMember
)

func (r Role) String() string {
	switch r {
	case RolePresident:
		return "President"
	case RoleDomainHead:
		return "Domain Head"
	case RoleCoordinator:
		return "Coordinator"
	case RoleMember:
		return "Member"
	default:
		return ""
	}
}

// ParseRole maps a backend role name to the enum. Matching ignores case,
// spaces and underscores; "Associate" is the backend's default member role.
func ParseRole(s string) Role {
	normalized := strings.ToLower(s)
	normalized = strings.ReplaceAll(normalized, " ", "")
	normalized = strings.ReplaceAll(normalized, "_", "")
	switch normalized {
	case "president":
		return RolePresident
	case "domainhead":
		return RoleDomainHead
	case "coordinator":
		return RoleCoordinator
	case "member", "associate":
		return RoleMember
	default:
		return RoleUnknown
	}
}

func roleFromNumber(n int64) Role {
	if n >= int64(RolePresident) && n <= int64(RoleMember) {
		return Role(n)
	}
	return RoleUnknown
}

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON accepts a role name, a numeric code, or null.
func (r *Role) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*r = RoleUnknown
		return nil
	}

	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*r = ParseRole(name)
		return nil
	}

	n, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		*r = RoleUnknown
		return nil
	}
	*r = roleFromNumber(n)
	return nil
}
