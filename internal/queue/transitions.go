package queue

import (
	"database/sql"
	"time"

	"github.com/pandu2406/pst-1504/internal/models"
	"github.com/pandu2406/pst-1504/internal/notify"
)

// Actor adalah staff yang memanggil transisi, diambil dari JWT claims.
type Actor struct {
	ID   string
	Name string
	Role string
}

// detail menampung kolom relasi yang ikut dibaca bersama antreannya.
type detail struct {
	VisitorName string
	Phone       string
	Institution sql.NullString
	ServiceName string
	AdminName   sql.NullString
}

func Serve(db *sql.DB, queueID string, actor Actor) (*models.QueueResponse, error) {
	return applyTransition(db, queueID, ActionServe, actor)
}

func Complete(db *sql.DB, queueID string, actor Actor) (*models.QueueResponse, error) {
	return applyTransition(db, queueID, ActionComplete, actor)
}

func Cancel(db *sql.DB, queueID string, actor Actor) (*models.QueueResponse, error) {
	return applyTransition(db, queueID, ActionCancel, actor)
}

// applyTransition: baca antrean untuk otorisasi, lalu update kondisional
// `WHERE id = ? AND status = ?` dalam satu transaksi bersama notifikasinya.
// Nol baris ter-update berarti proses lain menang duluan -> ErrConflict,
// bukan lost update diam-diam.
func applyTransition(db *sql.DB, queueID string, action Action, actor Actor) (*models.QueueResponse, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	q, d, err := fetchDetail(tx, queueID)
	if err != nil {
		return nil, err
	}

	if err := Authorize(action, q, actor.ID, actor.Role); err != nil {
		return nil, err
	}

	var res sql.Result
	switch action {
	case ActionServe:
		res, err = tx.Exec(`
			UPDATE queues SET status = 'SERVING', start_time = NOW(), admin_id = ?
			WHERE id = ? AND status = 'WAITING'
		`, actor.ID, queueID)
	case ActionComplete:
		res, err = tx.Exec(`
			UPDATE queues SET status = 'COMPLETED', end_time = NOW()
			WHERE id = ? AND status = 'SERVING'
		`, queueID)
	case ActionCancel:
		// cancel sah dari WAITING maupun SERVING; status yang barusan
		// dibaca jadi nilai expected untuk update kondisionalnya.
		res, err = tx.Exec(`
			UPDATE queues SET status = 'CANCELED', end_time = NOW()
			WHERE id = ? AND status = ?
		`, queueID, string(q.Status))
	}
	if err != nil {
		return nil, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrConflict
	}

	switch action {
	case ActionServe:
		msg := notify.ServingMessage(q.QueueNumber, q.CreatedAt, q.QueueType, actor.Name)
		err = notify.Emit(tx, models.NotifQueueServing, notify.TitleServing, msg, nil)
	case ActionComplete:
		msg := notify.CompletedMessage(q.QueueNumber, q.CreatedAt, q.QueueType, d.ServiceName)
		err = notify.Emit(tx, models.NotifQueueCompleted, notify.TitleCompleted, msg, &actor.ID)
	case ActionCancel:
		msg := notify.CanceledMessage(q.QueueNumber, q.CreatedAt, q.QueueType, d.ServiceName)
		err = notify.Emit(tx, models.NotifQueueCanceled, notify.TitleCanceled, msg, &actor.ID)
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	now := time.Now()
	q.Status = Target(action)
	switch action {
	case ActionServe:
		q.AdminID = sql.NullString{String: actor.ID, Valid: true}
		q.StartTime = sql.NullTime{Time: now, Valid: true}
		d.AdminName = sql.NullString{String: actor.Name, Valid: true}
	case ActionComplete, ActionCancel:
		q.EndTime = sql.NullTime{Time: now, Valid: true}
	}

	resp := buildResponse(*q, *d)
	return &resp, nil
}

const detailColumns = `
	q.id, q.queue_number, q.queue_type, q.status, q.visitor_id, q.service_id,
	q.admin_id, q.tracking_code, q.filled_skd, q.created_at, q.start_time, q.end_time,
	v.name, v.phone, v.institution, s.name, u.name
`

func fetchDetail(tx dbtx, queueID string) (*models.Queue, *detail, error) {
	var q models.Queue
	var d detail

	err := tx.QueryRow(`
		SELECT `+detailColumns+`
		FROM queues q
		JOIN visitors v ON q.visitor_id = v.id
		JOIN services s ON q.service_id = s.id
		LEFT JOIN users u ON q.admin_id = u.id
		WHERE q.id = ?
	`, queueID).Scan(
		&q.ID, &q.QueueNumber, &q.QueueType, &q.Status, &q.VisitorID, &q.ServiceID,
		&q.AdminID, &q.TrackingCode, &q.FilledSKD, &q.CreatedAt, &q.StartTime, &q.EndTime,
		&d.VisitorName, &d.Phone, &d.Institution, &d.ServiceName, &d.AdminName,
	)

	if err == sql.ErrNoRows {
		return nil, nil, ErrQueueNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	return &q, &d, nil
}

func buildResponse(q models.Queue, d detail) models.QueueResponse {
	resp := models.ToQueueResponse(q)

	visitor := models.QueueVisitor{Name: d.VisitorName, Phone: d.Phone}
	if d.Institution.Valid {
		visitor.Institution = &d.Institution.String
	}
	resp.Visitor = &visitor
	resp.Service = &models.QueueService{Name: d.ServiceName}
	if d.AdminName.Valid {
		resp.Admin = &models.QueueAdmin{Name: d.AdminName.String}
	}

	return resp
}
