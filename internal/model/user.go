package model

import "time"

// Role is a user's position. Stored values are the labels used in the data files.
type Role string

const (
	RoleTeacher       Role = "선생님"
	RolePresident     Role = "회장"
	RoleVicePresident Role = "부회장"
	RoleTreasurer     Role = "총무"
	RoleRecorder      Role = "기록부장"
	RoleDesigner      Role = "디자인담당"
	RoleMember        Role = "동아리원"
)

var roleAliases = map[string]Role{
	"teacher":        RoleTeacher,
	"president":      RolePresident,
	"vice-president": RoleVicePresident,
	"vice_president": RoleVicePresident,
	"treasurer":      RoleTreasurer,
	"recorder":       RoleRecorder,
	"designer":       RoleDesigner,
	"member":         RoleMember,
}

// ParseRole accepts a stored label or its English name.
func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case RoleTeacher, RolePresident, RoleVicePresident, RoleTreasurer, RoleRecorder, RoleDesigner, RoleMember:
		return r, true
	}
	r, ok := roleAliases[s]
	return r, ok
}

// IsOfficer reports whether the role manages club records.
func (r Role) IsOfficer() bool {
	switch r {
	case RolePresident, RoleVicePresident, RoleTreasurer, RoleRecorder:
		return true
	}
	return false
}

// ClubAll is the club name meaning every club.
const ClubAll = "전체"

// User represents an account in the users table. Username is the key.
type User struct {
	Username    string    `json:"username" csv:"username"`
	Password    string    `json:"-" csv:"password"` // Never expose in JSON
	Name        string    `json:"name" csv:"name"`
	Role        Role      `json:"role" csv:"role"`
	ClubName    string    `json:"club_name" csv:"club_name"`
	ClubRole    Role      `json:"club_role" csv:"club_role"`
	CreatedDate time.Time `json:"created_date" csv:"created_date"`
}

// Principal returns the request identity for the user.
func (u *User) Principal() Principal {
	return Principal{Username: u.Username, Name: u.Name, Role: u.Role, Club: u.ClubName}
}

// Principal is the identity a feature operation runs as.
type Principal struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	Club     string `json:"club"`
}

// IsTeacher reports whether p has full administrative rights.
func (p Principal) IsTeacher() bool {
	return p.Role == RoleTeacher
}

// CanManage reports whether p may create or change records of club.
func (p Principal) CanManage(club string) bool {
	if p.IsTeacher() {
		return true
	}
	return p.Role.IsOfficer() && club == p.Club
}

// CanSee reports whether records addressed to club are visible to p.
func (p Principal) CanSee(club string) bool {
	return p.IsTeacher() || club == ClubAll || club == p.Club || p.Club == ClubAll
}
