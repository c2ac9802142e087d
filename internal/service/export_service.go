package service

import (
	"context"
	"fmt"
	"lingua_edu_backend/internal/repository"
	"time"

	"github.com/xuri/excelize/v2"
)

type ExportService struct {
	Questions *QuestionService
}

func NewExportService(questions *QuestionService) *ExportService {
	return &ExportService{Questions: questions}
}

var questionExportHeader = []string{
	"ID", "Stage", "Phase", "Position", "Type", "Validation", "Points",
	"Time Limit", "Max Attempts", "Text", "Active", "Version", "Parent ID",
}

// ExportChallengeQuestions renders the challenge's question bank as an
// xlsx workbook, sub-questions listed under their parent.
func (s *ExportService) ExportChallengeQuestions(ctx context.Context, challengeID uint) (*excelize.File, string, error) {
	questions, err := s.Questions.ListQuestions(ctx, repository.QuestionFilters{ChallengeID: challengeID})
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheet := "Questions"
	f.SetSheetName(f.GetSheetName(0), sheet)

	for col, title := range questionExportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
	}

	row := 2
	for i := range questions {
		row = writeQuestionRow(f, sheet, row, &questions[i])
	}

	filename := fmt.Sprintf("challenge_%d_questions_%s.xlsx", challengeID, time.Now().Format("20060102"))
	return f, filename, nil
}

func writeQuestionRow(f *excelize.File, sheet string, row int, q *FormattedQuestion) int {
	values := []interface{}{
		q.ID, string(q.Stage), q.Phase, q.Position, q.Type,
		string(q.ValidationMethod), q.Points, q.TimeLimit, q.MaxAttempts,
		q.Text, q.IsActive, q.Version, q.ParentQuestionID,
	}
	for col, value := range values {
		cell, _ := excelize.CoordinatesToCellName(col+1, row)
		f.SetCellValue(sheet, cell, value)
	}
	row++
	for i := range q.SubQuestions {
		row = writeQuestionRow(f, sheet, row, &q.SubQuestions[i])
	}
	return row
}

// ExportSchoolStats renders the per-question answer statistics of a
// school as an xlsx workbook.
func (s *ExportService) ExportSchoolStats(schoolID uint, questionID uint) (*excelize.File, string, error) {
	stats, err := s.Questions.GetSchoolStats(schoolID, questionID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheet := "School Stats"
	f.SetSheetName(f.GetSheetName(0), sheet)

	header := []string{"Question ID", "Type", "Total Attempts", "Correct", "Success Rate", "Avg Time Spent (s)"}
	for col, title := range header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
	}

	for i, stat := range stats {
		values := []interface{}{
			stat.QuestionID, stat.QuestionType,
			stat.TotalAttempts, stat.CorrectCount, stat.SuccessRate, stat.AvgTimeSpent,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	filename := fmt.Sprintf("school_%d_stats_%s.xlsx", schoolID, time.Now().Format("20060102"))
	return f, filename, nil
}
