package queue

import (
	"errors"

	"github.com/pandu2406/pst-1504/internal/models"
)

type Action string

const (
	ActionServe    Action = "serve"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
)

var (
	ErrQueueNotFound = errors.New("antrean tidak ditemukan")
	ErrWrongState    = errors.New("antrean tidak dalam status yang diperlukan")
	ErrForbidden     = errors.New("anda tidak berwenang atas antrean ini")
	ErrConflict      = errors.New("antrean sudah diubah oleh proses lain")
)

// allowedFrom memetakan aksi ke status asal yang sah.
// COMPLETED dan CANCELED terminal: tidak ada aksi yang menerimanya.
var allowedFrom = map[Action][]models.QueueStatus{
	ActionServe:    {models.StatusWaiting},
	ActionComplete: {models.StatusServing},
	ActionCancel:   {models.StatusWaiting, models.StatusServing},
}

var targetStatus = map[Action]models.QueueStatus{
	ActionServe:    models.StatusServing,
	ActionComplete: models.StatusCompleted,
	ActionCancel:   models.StatusCanceled,
}

func CanTransition(action Action, from models.QueueStatus) bool {
	for _, s := range allowedFrom[action] {
		if s == from {
			return true
		}
	}
	return false
}

func Target(action Action) models.QueueStatus {
	return targetStatus[action]
}

// Authorize memeriksa legalitas transisi plus kewenangan pemanggil.
// Status asal salah -> ErrWrongState. Kewenangan kurang -> ErrForbidden.
//
// serve: semua staff. complete: SUPERADMIN atau admin yang melayani.
// cancel: dari WAITING semua staff, dari SERVING seperti complete.
func Authorize(action Action, q *models.Queue, actorID, role string) error {
	if !CanTransition(action, q.Status) {
		return ErrWrongState
	}

	switch action {
	case ActionServe:
		return nil
	case ActionComplete:
		if ownsOrSuper(q, actorID, role) {
			return nil
		}
		return ErrForbidden
	case ActionCancel:
		if q.Status != models.StatusServing {
			return nil
		}
		if ownsOrSuper(q, actorID, role) {
			return nil
		}
		return ErrForbidden
	}

	return ErrWrongState
}

func ownsOrSuper(q *models.Queue, actorID, role string) bool {
	if role == models.RoleSuperadmin {
		return true
	}
	return q.AdminID.Valid && q.AdminID.String == actorID
}
