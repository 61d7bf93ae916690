package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vytor/learnpulse/internal/logger"
	"github.com/vytor/learnpulse/internal/models"
	"github.com/vytor/learnpulse/internal/repository"
)

const reportColumns = `report_id, student_id, period_start, period_end, overall_grade, subjects, attendance, behavioral_notes, recommendations, generated_at`

type reportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new ReportRepository implementation
func NewReportRepository(db *sql.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Insert(ctx context.Context, rep models.StudentReport) error {
	log := logger.FromContext(ctx).WithPrefix("report_repo")
	log.Debug("inserting report: report_id=%s", rep.ReportID)

	if rep.Subjects == nil {
		rep.Subjects = []models.SubjectReport{}
	}
	subjects, err := toJSON(rep.Subjects)
	if err != nil {
		return err
	}
	notes, err := toJSON(nonNil(rep.BehavioralNotes))
	if err != nil {
		return err
	}
	recs, err := toJSON(nonNil(rep.Recommendations))
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO reports (`+reportColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, rep.ReportID, rep.StudentID, utc(rep.Period.Start), utc(rep.Period.End), rep.OverallGrade, subjects,
		rep.Attendance, notes, recs, utc(rep.GeneratedAt))
	if err != nil {
		log.Error("failed to insert report: %v", err)
	}
	return err
}

func (r *reportRepository) Get(ctx context.Context, reportID string) (*models.StudentReport, error) {
	log := logger.FromContext(ctx).WithPrefix("report_repo")
	log.Debug("getting report: report_id=%s", reportID)

	rep, err := scanReport(r.db.QueryRowContext(ctx, `SELECT `+reportColumns+` FROM reports WHERE report_id = ?`, reportID))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("report not found: report_id=%s", reportID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get report: %v", err)
		return nil, err
	}
	return rep, nil
}

func (r *reportRepository) ListByStudent(ctx context.Context, studentID string) ([]models.StudentReport, error) {
	log := logger.FromContext(ctx).WithPrefix("report_repo")
	log.Debug("listing reports: student_id=%s", studentID)

	rows, err := r.db.QueryContext(ctx, `
SELECT `+reportColumns+`
FROM reports
WHERE student_id = ?
ORDER BY generated_at DESC
`, studentID)
	if err != nil {
		log.Error("failed to list reports: %v", err)
		return nil, err
	}
	defer rows.Close()

	reports := []models.StudentReport{}
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			log.Error("failed to scan report row: %v", err)
			return nil, err
		}
		reports = append(reports, *rep)
	}
	return reports, rows.Err()
}

func (r *reportRepository) DeleteBefore(ctx context.Context, studentID string, cutoff time.Time) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("report_repo")

	res, err := r.db.ExecContext(ctx, `DELETE FROM reports WHERE student_id = ? AND generated_at < ?`, studentID, utc(cutoff))
	if err != nil {
		log.Error("failed to delete reports: %v", err)
		return 0, err
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (*models.StudentReport, error) {
	var rep models.StudentReport
	var subjects, notes, recs string
	if err := row.Scan(&rep.ReportID, &rep.StudentID, &rep.Period.Start, &rep.Period.End, &rep.OverallGrade,
		&subjects, &rep.Attendance, &notes, &recs, &rep.GeneratedAt); err != nil {
		return nil, err
	}
	if err := fromJSON(subjects, &rep.Subjects); err != nil {
		return nil, err
	}
	if err := fromJSON(notes, &rep.BehavioralNotes); err != nil {
		return nil, err
	}
	if err := fromJSON(recs, &rep.Recommendations); err != nil {
		return nil, err
	}
	return &rep, nil
}
