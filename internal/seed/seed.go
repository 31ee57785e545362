// Package seed creates the default clubs and accounts of a fresh portal.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"clubportal/internal/auth"
	"clubportal/internal/errors"
	"clubportal/internal/model"
	"clubportal/internal/repository"
)

// Default passwords of seeded accounts. Users are expected to change them.
const (
	TeacherPassword = "admin"
	StudentPassword = "1234"
)

// Clubs are the clubs of a fresh portal.
var Clubs = []model.Club{
	{Name: "코딩", Icon: "💻", Description: "프로그래밍을 배우는 동아리", President: "정찬희", MaxMembers: 15},
	{Name: "만들기", Icon: "🔨", Description: "다양한 만들기 활동", President: "김보경", MaxMembers: 12},
	{Name: "미스테리탐구", Icon: "🔍", Description: "미스테리를 풀어보는 동아리", President: "오채윤", MaxMembers: 10},
	{Name: "댄스", Icon: "💃", Description: "춤을 배우는 동아리", President: "백주아", MaxMembers: 15},
	{Name: "줄넘기", Icon: "🪢", Description: "줄넘기 운동", President: "김제이", MaxMembers: 20},
	{Name: "풍선아트", Icon: "🎈", Description: "풍선아트 만들기", President: "최명준", MaxMembers: 10},
}

// Account is a seeded user. The username doubles as the display name.
type Account struct {
	Username string
	Role     model.Role
	Club     string
}

// Accounts are the users of a fresh portal.
var Accounts = []Account{
	{"조성우", model.RoleTeacher, model.ClubAll},
	{"장원진", model.RoleTeacher, model.ClubAll},
	{"정찬희", model.RoleVicePresident, "코딩"},
	{"강서준", model.RoleTreasurer, "코딩"},
	{"장주원", model.RoleTreasurer, "코딩"},
	{"전준오", model.RoleMember, "코딩"},
	{"김보경", model.RolePresident, "만들기"},
	{"김보민", model.RoleMember, "만들기"},
	{"김영원", model.RoleMember, "만들기"},
	{"오채윤", model.RolePresident, "미스테리탐구"},
	{"박효주", model.RoleVicePresident, "미스테리탐구"},
	{"곽승현", model.RoleMember, "미스테리탐구"},
	{"김의준", model.RoleMember, "미스테리탐구"},
	{"신소민", model.RoleMember, "미스테리탐구"},
	{"정예준", model.RoleMember, "미스테리탐구"},
	{"정지호", model.RoleMember, "미스테리탐구"},
	{"백주아", model.RolePresident, "댄스"},
	{"배다인", model.RoleVicePresident, "댄스"},
	{"유수현", model.RoleMember, "댄스"},
	{"한수진", model.RoleMember, "댄스"},
	{"김제이", model.RolePresident, "줄넘기"},
	{"김민아", model.RoleMember, "줄넘기"},
	{"황하정", model.RoleMember, "줄넘기"},
	{"최명준", model.RolePresident, "풍선아트"},
	{"박규혁", model.RoleVicePresident, "풍선아트"},
	{"김현서", model.RoleMember, "풍선아트"},
	{"한동길", model.RoleMember, "풍선아트"},
}

// Result counts what Run created.
type Result struct {
	Clubs   int `json:"clubs"`
	Users   int `json:"users"`
	Skipped int `json:"skipped"`
}

// Run creates every default club and account that does not exist yet.
// Existing rows are left untouched, so Run can be repeated safely.
func Run(ctx context.Context, clubs repository.ClubRepository, users repository.UserRepository) (*Result, error) {
	res := &Result{}
	for _, c := range Clubs {
		club := c
		if _, err := clubs.FindByName(ctx, club.Name); err == nil {
			res.Skipped++
			continue
		} else if !errors.Is(err, errors.ErrNotFound) {
			return res, fmt.Errorf("find club %s: %w", club.Name, err)
		}
		if _, err := clubs.Create(ctx, &club); err != nil {
			return res, fmt.Errorf("create club %s: %w", club.Name, err)
		}
		res.Clubs++
	}

	hashes := make(map[string]string, 2)
	for _, p := range []string{TeacherPassword, StudentPassword} {
		h, err := auth.HashPassword(p)
		if err != nil {
			return res, err
		}
		hashes[p] = h
	}
	for _, a := range Accounts {
		password := StudentPassword
		if a.Role == model.RoleTeacher {
			password = TeacherPassword
		}
		err := users.Create(ctx, &model.User{
			Username: a.Username,
			Password: hashes[password],
			Name:     a.Username,
			Role:     a.Role,
			ClubName: a.Club,
			ClubRole: a.Role,
		})
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			res.Skipped++
		case err != nil:
			return res, fmt.Errorf("create user %s: %w", a.Username, err)
		default:
			res.Users++
		}
	}
	slog.InfoContext(ctx, "seed finished",
		slog.Int("clubs", res.Clubs), slog.Int("users", res.Users), slog.Int("skipped", res.Skipped))
	return res, nil
}
