package policy

import (
	"testing"

	"github.com/monocle-dev/notes/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestNotePolicies(t *testing.T) {
	owner := &models.User{ID: 1, Role: models.RoleUser}
	other := &models.User{ID: 2, Role: models.RoleUser}
	admin := &models.User{ID: 3, Role: models.RoleAdmin}

	private := &models.Note{ID: 10, AuthorID: owner.ID, Private: true}
	public := &models.Note{ID: 11, AuthorID: owner.ID, Private: false}

	tests := []struct {
		name      string
		actor     *models.User
		note      *models.Note
		view      bool
		edit      bool
		canDelete bool
	}{
		{"owner private", owner, private, true, true, true},
		{"owner public", owner, public, true, true, true},
		{"other private", other, private, false, false, false},
		{"other public", other, public, true, false, false},
		{"admin private", admin, private, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.view, CanViewNote(tt.actor, tt.note))
			assert.Equal(t, tt.edit, CanEditNote(tt.actor, tt.note))
			assert.Equal(t, tt.canDelete, CanDeleteNote(tt.actor, tt.note))
		})
	}
}

func TestUserPolicies(t *testing.T) {
	user := &models.User{ID: 1, Role: models.RoleUser}
	admin := &models.User{ID: 2, Role: models.RoleAdmin}

	assert.False(t, CanEditUser(user, user.ID), "users cannot edit themselves")
	assert.False(t, CanDeleteUser(user, user.ID))
	assert.True(t, CanEditUser(admin, user.ID))
	assert.True(t, CanDeleteUser(admin, user.ID))

	assert.True(t, CanCreateUser(nil))
	assert.True(t, CanViewUser(nil, user.ID))
}
