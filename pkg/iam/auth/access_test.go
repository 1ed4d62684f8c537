package auth

import (
	"testing"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/stretchr/testify/assert"
)

func caller(id string, staff bool) *AuthContext {
	uid := kernel.UserID(id)
	return &AuthContext{UserID: &uid, IsStaff: staff}
}

func TestRelationTo(t *testing.T) {
	tests := []struct {
		name   string
		ac     *AuthContext
		owners []kernel.UserID
		want   Relation
	}{
		{"anonymous", nil, []kernel.UserID{"u-1"}, RelationOther},
		{"owner", caller("u-1", false), []kernel.UserID{"u-1"}, RelationOwner},
		{"second owner", caller("u-2", false), []kernel.UserID{"u-1", "u-2"}, RelationOwner},
		{"stranger", caller("u-3", false), []kernel.UserID{"u-1"}, RelationOther},
		{"staff", caller("u-9", true), []kernel.UserID{"u-1"}, RelationStaff},
		{"empty owner never matches", caller("", false), []kernel.UserID{""}, RelationOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelationTo(tt.ac, tt.owners...))
		})
	}
}

func TestCanManage(t *testing.T) {
	assert.True(t, CanManage(caller("u-1", false), "u-1"))
	assert.True(t, CanManage(caller("u-2", true), "u-1"))
	assert.False(t, CanManage(caller("u-2", false), "u-1"))
}
