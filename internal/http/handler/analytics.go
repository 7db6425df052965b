package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pandu2406/pst-1504/internal/config"
	"github.com/pandu2406/pst-1504/internal/queue"
)

// ExportAnalytics unduh laporan antrean sejak startDate (default hari
// ini) sebagai JSON atau CSV.
func ExportAnalytics(c *fiber.Ctx) error {
	startParam := c.Query("startDate", time.Now().Format("2006-01-02"))
	startDate, err := time.ParseInLocation("2006-01-02", startParam, time.Local)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Format startDate tidak valid. Gunakan YYYY-MM-DD",
		})
	}

	exportFormat := c.Query("format", "json")
	if exportFormat != "json" && exportFormat != "csv" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Format export tidak didukung",
		})
	}

	records, err := queue.ExportRecords(config.DB, startDate)
	if err != nil {
		log.Printf("[analytics] gagal mengambil data export: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Gagal mengekspor data antrean",
		})
	}

	if exportFormat == "json" {
		return c.JSON(records)
	}

	if len(records) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Tidak ada data untuk diekspor",
		})
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(queue.ExportCSVHeader()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Gagal menulis CSV",
		})
	}
	for _, rec := range records {
		if err := w.Write(rec.CSVRow()); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Gagal menulis CSV",
			})
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Gagal menulis CSV",
		})
	}

	fileName := fmt.Sprintf("pst-queue-report-%s.csv", time.Now().Format("2006-01-02"))
	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))
	return c.Send(buf.Bytes())
}
