package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
		ok   bool
	}{
		{in: "선생님", want: RoleTeacher, ok: true},
		{in: "vice-president", want: RoleVicePresident, ok: true},
		{in: "동아리원", want: RoleMember, ok: true},
		{in: "janitor", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseRole(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrincipal_Permissions(t *testing.T) {
	teacher := Principal{Username: "t", Role: RoleTeacher}
	president := Principal{Username: "p", Role: RolePresident, Club: "코딩"}
	member := Principal{Username: "m", Role: RoleMember, Club: "코딩"}

	assert.True(t, teacher.CanManage("댄스"))
	assert.True(t, president.CanManage("코딩"))
	assert.False(t, president.CanManage("댄스"))
	assert.False(t, member.CanManage("코딩"))

	assert.True(t, member.CanSee("코딩"))
	assert.True(t, member.CanSee(ClubAll))
	assert.False(t, member.CanSee("댄스"))
	assert.True(t, teacher.CanSee("댄스"))
}

func TestQuestion_IsCorrect(t *testing.T) {
	q := Question{Question: "print()?", Options: []string{"저장", "출력", "삭제"}, Correct: "선택지 2"}

	assert.True(t, q.IsCorrect("출력"))
	assert.True(t, q.IsCorrect("선택지 2"))
	assert.False(t, q.IsCorrect("저장"))

	text := Question{Question: "2+2", Correct: "4"}
	assert.True(t, text.IsCorrect(" 4 "))
	assert.False(t, text.IsCorrect("5"))
}
