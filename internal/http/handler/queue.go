package handler

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/pandu2406/pst-1504/internal/config"
	"github.com/pandu2406/pst-1504/internal/hashgate"
	"github.com/pandu2406/pst-1504/internal/models"
	"github.com/pandu2406/pst-1504/internal/queue"
)

func actorFromLocals(c *fiber.Ctx) queue.Actor {
	id, _ := c.Locals("user_id").(string)
	name, _ := c.Locals("name").(string)
	role, _ := c.Locals("role").(string)
	return queue.Actor{ID: id, Name: name, Role: role}
}

// GetQueues daftar antrean per status untuk dashboard staff.
// Client kirim hash terakhirnya; kalau sama, cukup re-render skip.
func GetQueues(c *fiber.Ctx) error {
	status := c.Query("status", string(models.StatusWaiting))
	if !models.ValidQueueStatus(status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Status antrean tidak dikenal",
		})
	}

	dateFilter := c.Query("dateFilter", "today")
	clientHash := c.Query("hash")

	queues, err := queue.ListQueues(config.DB, models.QueueStatus(status), dateFilter)
	if err != nil {
		log.Printf("[queue] gagal mengambil daftar antrean: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Gagal mengambil antrean",
		})
	}

	serverHash, err := hashgate.ComputeHash(queues)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Gagal menghitung hash",
		})
	}

	return c.JSON(fiber.Map{
		"queues":     queues,
		"hash":       serverHash,
		"hasChanges": hashgate.HasChanged(clientHash, serverHash),
	})
}

// ServeQueue - WAITING -> SERVING, set admin pelayan dan start_time.
func ServeQueue(c *fiber.Ctx) error {
	result, err := queue.Serve(config.DB, c.Params("id"), actorFromLocals(c))
	if err != nil {
		return transitionError(c, "serve", err)
	}

	BroadcastDisplayUpdate()

	return c.JSON(fiber.Map{
		"message": "Antrean sedang dilayani",
		"queue":   result,
	})
}

// CompleteQueue - SERVING -> COMPLETED oleh admin pelayan atau superadmin.
func CompleteQueue(c *fiber.Ctx) error {
	result, err := queue.Complete(config.DB, c.Params("id"), actorFromLocals(c))
	if err != nil {
		return transitionError(c, "complete", err)
	}

	BroadcastDisplayUpdate()

	return c.JSON(fiber.Map{
		"message": "Antrean telah selesai",
		"queue":   result,
	})
}

// CancelQueue - WAITING/SERVING -> CANCELED.
func CancelQueue(c *fiber.Ctx) error {
	result, err := queue.Cancel(config.DB, c.Params("id"), actorFromLocals(c))
	if err != nil {
		return transitionError(c, "cancel", err)
	}

	BroadcastDisplayUpdate()

	return c.JSON(fiber.Map{
		"message": "Antrean telah dibatalkan",
		"queue":   result,
	})
}

// transitionError petakan error guard/ledger ke status HTTP.
// ErrConflict berarti proses lain menang duluan di update kondisional;
// dari sisi client perlakuannya sama dengan status salah (400).
func transitionError(c *fiber.Ctx, op string, err error) error {
	switch {
	case errors.Is(err, queue.ErrQueueNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, queue.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, queue.ErrWrongState), errors.Is(err, queue.ErrConflict):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	default:
		log.Printf("[queue] %s gagal: %v", op, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Gagal memproses antrean",
		})
	}
}
