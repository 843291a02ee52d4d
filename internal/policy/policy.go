// Package policy holds the authorization rules. Every predicate is pure: it
// only looks at the actor and the target it is given.
package policy

import "github.com/monocle-dev/notes/internal/models"

func CanViewNote(actor *models.User, note *models.Note) bool {
	return note.AuthorID == actor.ID || !note.Private
}

func CanEditNote(actor *models.User, note *models.Note) bool {
	return note.AuthorID == actor.ID
}

func CanDeleteNote(actor *models.User, note *models.Note) bool {
	return note.AuthorID == actor.ID
}

// User rules do not depend on the target, so they take only its id and can be
// evaluated before the target is loaded.

func CanEditUser(actor *models.User, targetID uint) bool {
	return actor.IsAdmin()
}

func CanDeleteUser(actor *models.User, targetID uint) bool {
	return actor.IsAdmin()
}

func CanCreateUser(actor *models.User) bool {
	return true
}

func CanViewUser(actor *models.User, targetID uint) bool {
	return true
}
