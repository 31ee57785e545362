package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPassword(t *testing.T) {
	hashed, err := HashPassword("1234")
	require.NoError(t, err)
	assert.True(t, IsHashed(hashed))

	tests := []struct {
		name        string
		stored      string
		password    string
		wantOK      bool
		wantUpgrade bool
	}{
		{"bcrypt match", hashed, "1234", true, false},
		{"bcrypt mismatch", hashed, "4321", false, false},
		{"legacy plaintext match", "1234", "1234", true, true},
		{"legacy plaintext mismatch", "1234", "12345", false, false},
		{"empty stored", "", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, upgrade := CheckPassword(tt.stored, tt.password)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantUpgrade, upgrade)
		})
	}
}
