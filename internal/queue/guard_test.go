package queue

import (
	"database/sql"
	"testing"

	"github.com/pandu2406/pst-1504/internal/models"
	"github.com/stretchr/testify/assert"
)

func queueWith(status models.QueueStatus, adminID string) *models.Queue {
	q := &models.Queue{Status: status}
	if adminID != "" {
		q.AdminID = sql.NullString{String: adminID, Valid: true}
	}
	return q
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		action  Action
		from    models.QueueStatus
		allowed bool
	}{
		{ActionServe, models.StatusWaiting, true},
		{ActionServe, models.StatusServing, false},
		{ActionServe, models.StatusCompleted, false},
		{ActionServe, models.StatusCanceled, false},
		{ActionComplete, models.StatusServing, true},
		{ActionComplete, models.StatusWaiting, false},
		{ActionComplete, models.StatusCompleted, false},
		{ActionCancel, models.StatusWaiting, true},
		{ActionCancel, models.StatusServing, true},
		{ActionCancel, models.StatusCompleted, false},
		{ActionCancel, models.StatusCanceled, false},
	}

	for _, c := range cases {
		got := CanTransition(c.action, c.from)
		assert.Equal(t, c.allowed, got, "%s dari %s", c.action, c.from)
	}
}

func TestTarget(t *testing.T) {
	assert.Equal(t, models.StatusServing, Target(ActionServe))
	assert.Equal(t, models.StatusCompleted, Target(ActionComplete))
	assert.Equal(t, models.StatusCanceled, Target(ActionCancel))
}

func TestAuthorizeServe(t *testing.T) {
	// serve boleh dilakukan staff manapun
	err := Authorize(ActionServe, queueWith(models.StatusWaiting, ""), "admin-1", models.RoleAdmin)
	assert.NoError(t, err)

	err = Authorize(ActionServe, queueWith(models.StatusServing, "admin-1"), "admin-1", models.RoleAdmin)
	assert.ErrorIs(t, err, ErrWrongState)
}

func TestAuthorizeComplete(t *testing.T) {
	serving := queueWith(models.StatusServing, "admin-1")

	// admin yang melayani boleh
	assert.NoError(t, Authorize(ActionComplete, serving, "admin-1", models.RoleAdmin))

	// superadmin selalu boleh
	assert.NoError(t, Authorize(ActionComplete, serving, "super-1", models.RoleSuperadmin))

	// admin lain tidak boleh
	err := Authorize(ActionComplete, serving, "admin-2", models.RoleAdmin)
	assert.ErrorIs(t, err, ErrForbidden)

	// status salah menang atas otorisasi
	err = Authorize(ActionComplete, queueWith(models.StatusWaiting, ""), "super-1", models.RoleSuperadmin)
	assert.ErrorIs(t, err, ErrWrongState)
}

func TestAuthorizeCancel(t *testing.T) {
	// dari WAITING semua staff boleh
	assert.NoError(t, Authorize(ActionCancel, queueWith(models.StatusWaiting, ""), "admin-2", models.RoleAdmin))

	// dari SERVING hanya admin pelayan atau superadmin
	serving := queueWith(models.StatusServing, "admin-1")
	assert.NoError(t, Authorize(ActionCancel, serving, "admin-1", models.RoleAdmin))
	assert.NoError(t, Authorize(ActionCancel, serving, "super-1", models.RoleSuperadmin))
	assert.ErrorIs(t, Authorize(ActionCancel, serving, "admin-2", models.RoleAdmin), ErrForbidden)
}

func TestAuthorizeTerminal(t *testing.T) {
	for _, action := range []Action{ActionServe, ActionComplete, ActionCancel} {
		for _, status := range []models.QueueStatus{models.StatusCompleted, models.StatusCanceled} {
			err := Authorize(action, queueWith(status, "admin-1"), "super-1", models.RoleSuperadmin)
			assert.ErrorIs(t, err, ErrWrongState, "%s dari %s", action, status)
		}
	}
}
