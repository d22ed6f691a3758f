package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/Adetops/edu-progress-tracker/internal/models"
	"github.com/Adetops/edu-progress-tracker/internal/repositories"
)

// ===== SERVICE INTERFACE =====

// ExportService renders progress reports as spreadsheet workbooks
type ExportService interface {
	// ExportStudentProgress renders one activity row per recorded activity
	// of the student, with a per-course summary section.
	ExportStudentProgress(ctx context.Context, studentID string) (*excelize.File, error)

	// ExportCourseReport renders one row per student with activity in the
	// course.
	ExportCourseReport(ctx context.Context, courseID string) (*excelize.File, error)
}

// ===== SERVICE IMPLEMENTATION =====

type exportService struct {
	repo     repositories.Repository
	db       *gorm.DB
	logger   *slog.Logger
	progress ProgressService
}

func NewExportService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, progress ProgressService) ExportService {
	return &exportService{
		repo:     repo,
		db:       db,
		logger:   logger,
		progress: progress,
	}
}

// writeHeaderRow writes a bold header row starting at column A
func writeHeaderRow(f *excelize.File, sheet string, row int, headers []string) {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, h)
	}
	styleID, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return
	}
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(len(headers), row)
	f.SetCellStyle(sheet, first, last, styleID)
}

func (s *exportService) ExportStudentProgress(ctx context.Context, studentID string) (*excelize.File, error) {
	student, err := s.repo.Student().GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	activities, err := s.repo.Activity().GetByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get student activities: %w", err)
	}

	courses, _, err := s.repo.Course().List(ctx, repositories.CourseFilters{Limit: -1})
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	titles := make(map[string]string, len(courses))
	for _, course := range courses {
		titles[course.ID] = course.Title
	}

	f := excelize.NewFile()
	sheet := "Activities"
	f.SetSheetName("Sheet1", sheet)

	f.SetCellValue(sheet, "A1", "Student")
	f.SetCellValue(sheet, "B1", student.Name)
	f.SetCellValue(sheet, "A2", "Email")
	f.SetCellValue(sheet, "B2", student.Email)
	f.SetCellValue(sheet, "A3", "Generated At")
	f.SetCellValue(sheet, "B3", time.Now().UTC().Format("2006-01-02 15:04:05"))

	headers := []string{"Date", "Course", "Type", "Topic", "Score", "Notes"}
	writeHeaderRow(f, sheet, 5, headers)

	for i, activity := range activities {
		row := i + 6
		title, ok := titles[activity.CourseID]
		if !ok {
			// Activities may outlive their course.
			title = "Unknown"
		}

		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), activity.CompletedAt.UTC().Format("2006-01-02 15:04:05"))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), title)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), string(activity.Type))
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), activity.Topic)
		if activity.Score != nil {
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), *activity.Score)
		} else {
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), "-")
		}
		if activity.Notes != nil {
			f.SetCellValue(sheet, fmt.Sprintf("F%d", row), *activity.Notes)
		}
	}

	f.SetColWidth(sheet, "A", "A", 20)
	f.SetColWidth(sheet, "B", "B", 28)
	f.SetColWidth(sheet, "C", "D", 18)
	f.SetColWidth(sheet, "F", "F", 40)

	if err := s.writeSummarySheet(ctx, f, student); err != nil {
		return nil, err
	}

	s.logger.Info("Exported student progress", "student_id", studentID, "activities", len(activities))

	return f, nil
}

func (s *exportService) writeSummarySheet(ctx context.Context, f *excelize.File, student *models.Student) error {
	progress, err := s.progress.ProgressByCourse(ctx, student.ID)
	if err != nil {
		return fmt.Errorf("failed to compute progress: %w", err)
	}

	sheet := "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	f.SetCellValue(sheet, "A1", "Student")
	f.SetCellValue(sheet, "B1", student.Name)

	writeHeaderRow(f, sheet, 3, []string{"Course", "Total Activities", "Average Score", "Last Activity"})

	for i, row := range progress {
		r := i + 4
		f.SetCellValue(sheet, fmt.Sprintf("A%d", r), row.CourseTitle)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", r), row.TotalActivities)
		if row.AverageScore != nil {
			f.SetCellValue(sheet, fmt.Sprintf("C%d", r), *row.AverageScore)
		}
		if row.LastActivity != nil {
			f.SetCellValue(sheet, fmt.Sprintf("D%d", r), row.LastActivity.UTC().Format("2006-01-02 15:04:05"))
		}
	}

	return nil
}

func (s *exportService) ExportCourseReport(ctx context.Context, courseID string) (*excelize.File, error) {
	report, err := s.progress.ProgressByStudent(ctx, courseID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Course Report"
	f.SetSheetName("Sheet1", sheet)

	f.SetCellValue(sheet, "A1", "Course")
	f.SetCellValue(sheet, "B1", report.Course.Title)

	writeHeaderRow(f, sheet, 3, []string{"Student", "Total Activities", "Average Score", "Completion Rate", "Last Activity"})

	for i, row := range report.Students {
		r := i + 4
		f.SetCellValue(sheet, fmt.Sprintf("A%d", r), row.StudentName)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", r), row.TotalActivities)
		if row.AverageScore != nil {
			f.SetCellValue(sheet, fmt.Sprintf("C%d", r), *row.AverageScore)
		}
		if row.CompletionRate != nil {
			f.SetCellValue(sheet, fmt.Sprintf("D%d", r), *row.CompletionRate)
		}
		if row.LastActivity != nil {
			f.SetCellValue(sheet, fmt.Sprintf("E%d", r), row.LastActivity.UTC().Format("2006-01-02 15:04:05"))
		}
	}

	s.logger.Info("Exported course report", "course_id", courseID, "students", len(report.Students))

	return f, nil
}
