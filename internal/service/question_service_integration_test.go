//go:build integration

// Integration tests run against a real MySQL instance:
//
//	LINGUA_EDU_TEST_DSN="root:root@tcp(127.0.0.1:3306)/lingua_edu_test?charset=utf8mb4&parseTime=true&loc=Local" \
//	  go test -tags integration ./internal/service/
package service

import (
	"context"
	"lingua_edu_backend/internal/model"
	"lingua_edu_backend/internal/repository"
	"lingua_edu_backend/internal/util"
	"lingua_edu_backend/pkg/logger"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestService(t *testing.T) (*QuestionService, *gorm.DB) {
	t.Helper()
	dsn := os.Getenv("LINGUA_EDU_TEST_DSN")
	if dsn == "" {
		t.Skip("LINGUA_EDU_TEST_DSN not set")
	}
	logger.Log = zap.NewNop()

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.School{}, &model.User{}, &model.Challenge{}, &model.Question{},
		&model.MediaFile{}, &model.QuestionMedia{}, &model.QuestionConfiguration{},
		&model.StudentAnswer{},
	))

	tables := []string{
		"student_answers", "question_configurations", "question_media",
		"media_files", "questions", "challenges", "users", "schools",
	}
	for _, table := range tables {
		require.NoError(t, db.Exec("DELETE FROM "+table).Error)
	}

	questionRepo := repository.NewQuestionRepository(db)
	challengeRepo := repository.NewChallengeRepository(db)
	answerRepo := repository.NewStudentAnswerRepository(db)
	schoolRepo := repository.NewSchoolRepository(db)
	mediaRepo := repository.NewMediaRepository(db)
	media := NewMediaService(mediaRepo, nil, db)

	svc := NewQuestionService(questionRepo, challengeRepo, answerRepo, schoolRepo, mediaRepo, media, nil, db)
	return svc, db
}

func seedChallenge(t *testing.T, db *gorm.DB) *model.Challenge {
	t.Helper()
	school := &model.School{Name: "Test School", IsActive: true}
	require.NoError(t, db.Create(school).Error)
	challenge := &model.Challenge{Name: "Unit 1", SchoolID: school.ID, IsActive: true}
	require.NoError(t, db.Create(challenge).Error)
	return challenge
}

func multipleChoiceInput(challengeID uint) CreateQuestionInput {
	return CreateQuestionInput{
		Type:        model.TypeMultipleChoice,
		ChallengeID: challengeID,
		Stage:       model.StageGrammar,
		Phase:       "phase_1",
		Points:      5,
		Content:     "2+2?",
		Options:     []string{"3", "4"},
		Answer:      "4",
	}
}

func TestPositionsAllocatedPerBucket(t *testing.T) {
	svc, db := setupTestService(t)
	challenge := seedChallenge(t, db)
	ctx := context.Background()

	for want := 1; want <= 3; want++ {
		q, err := svc.CreateQuestion(ctx, multipleChoiceInput(challenge.ID))
		require.NoError(t, err)
		assert.Equal(t, want, q.Position)
	}

	// A different stage is a different bucket and restarts at 1.
	input := multipleChoiceInput(challenge.ID)
	input.Type = model.TypeEssay
	input.Stage = model.StageWriting
	input.Content = "My town"
	input.Options = nil
	input.Answer = nil
	q, err := svc.CreateQuestion(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, 1, q.Position)
}

func TestSoftDeletedQuestionsKeepTheirPositions(t *testing.T) {
	svc, db := setupTestService(t)
	challenge := seedChallenge(t, db)
	ctx := context.Background()

	first, err := svc.CreateQuestion(ctx, multipleChoiceInput(challenge.ID))
	require.NoError(t, err)

	// An answer forces the soft branch.
	require.NoError(t, db.Create(&model.StudentAnswer{
		QuestionID: first.ID, ChallengeID: challenge.ID, StudentID: 1, IsCorrect: true,
	}).Error)

	result, err := svc.SafeDelete(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, DeleteSoft, result.Branch)

	// The next creation must not reuse position 1.
	next, err := svc.CreateQuestion(ctx, multipleChoiceInput(challenge.ID))
	require.NoError(t, err)
	assert.Equal(t, 2, next.Position)
}

func TestSafeDeleteHardBranchRemovesEverything(t *testing.T) {
	svc, db := setupTestService(t)
	challenge := seedChallenge(t, db)
	ctx := context.Background()

	q, err := svc.CreateQuestion(ctx, multipleChoiceInput(challenge.ID))
	require.NoError(t, err)

	result, err := svc.SafeDelete(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, DeleteHard, result.Branch)
	assert.EqualValues(t, 0, result.AnswersPreserved)

	var count int64
	require.NoError(t, db.Unscoped().Model(&model.Question{}).Where("id = ?", q.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestSafeDeleteSoftBranchPreservesAnswers(t *testing.T) {
	svc, db := setupTestService(t)
	challenge := seedChallenge(t, db)
	ctx := context.Background()

	q, err := svc.CreateQuestion(ctx, multipleChoiceInput(challenge.ID))
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.StudentAnswer{
		QuestionID: q.ID, ChallengeID: challenge.ID, StudentID: 1,
	}).Error)

	result, err := svc.SafeDelete(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, DeleteSoft, result.Branch)
	assert.EqualValues(t, 1, result.AnswersPreserved)

	// Hidden from listings but still reachable by direct id lookup,
	// marked deleted and inactive.
	listed, err := svc.ListQuestions(ctx, repository.QuestionFilters{ChallengeID: challenge.ID})
	require.NoError(t, err)
	assert.Empty(t, listed)

	fetched, err := svc.GetQuestion(ctx, q.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.DeletedAt)
	assert.False(t, fetched.IsActive)

	var row model.Question
	require.NoError(t, db.Unscoped().First(&row, q.ID).Error)
	assert.True(t, row.DeletedAt.Valid)
	assert.False(t, row.IsActive)

	var answerCount int64
	require.NoError(t, db.Model(&model.StudentAnswer{}).Where("question_id = ?", q.ID).Count(&answerCount).Error)
	assert.EqualValues(t, 1, answerCount)

	// Restore clears the marker and reactivates.
	restored, err := svc.Restore(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, q.ID, restored.ID)
	assert.Nil(t, restored.DeletedAt)
	assert.True(t, restored.IsActive)
}

func TestSoftDeleteDeactivatesSubtree(t *testing.T) {
	svc, db := setupTestService(t)
	challenge := seedChallenge(t, db)
	ctx := context.Background()

	parent, err := svc.CreateQuestion(ctx, CreateQuestionInput{
		Type:        model.TypeReadIt,
		ChallengeID: challenge.ID,
		Stage:       model.StageWriting,
		Phase:       "phase_1",
		Content:     []string{"A passage."},
		SubQuestions: []SubQuestionInput{
			{Type: model.TypeTrueFalse, Text: "True?", Answer: true, Points: 2},
			{Type: model.TypeTrueFalse, Text: "False?", Answer: false, Points: 3},
		},
	})
	require.NoError(t, err)

	// An answer on a child forces the soft branch for the whole tree.
	require.NoError(t, db.Create(&model.StudentAnswer{
		QuestionID: parent.SubQuestions[0].ID, ChallengeID: challenge.ID, StudentID: 1,
	}).Error)

	result, err := svc.SafeDelete(ctx, parent.ID)
	require.NoError(t, err)
	assert.Equal(t, DeleteSoft, result.Branch)

	var rows []model.Question
	require.NoError(t, db.Unscoped().
		Where("id = ? OR parent_question_id = ?", parent.ID, parent.ID).
		Find(&rows).Error)
	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.True(t, row.DeletedAt.Valid, "question %d should be soft-deleted", row.ID)
		assert.False(t, row.IsActive, "question %d should be inactive", row.ID)
	}
}

func TestDeleteSubQuestionRecomputesParentPoints(t *testing.T) {
	svc, db := setupTestService(t)
	challenge := seedChallenge(t, db)
	ctx := context.Background()

	parent, err := svc.CreateQuestion(ctx, CreateQuestionInput{
		Type:        model.TypeReadIt,
		ChallengeID: challenge.ID,
		Stage:       model.StageWriting,
		Phase:       "phase_1",
		Content:     []string{"A passage."},
		SubQuestions: []SubQuestionInput{
			{Type: model.TypeTrueFalse, Text: "True?", Answer: true, Points: 5},
			{Type: model.TypeTrueFalse, Text: "False?", Answer: false, Points: 5},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 10, parent.Points)

	// Unanswered child: hard delete, parent drops to the new sum.
	result, err := svc.SafeDelete(ctx, parent.SubQuestions[0].ID)
	require.NoError(t, err)
	assert.Equal(t, DeleteHard, result.Branch)

	var count int64
	require.NoError(t, db.Unscoped().Model(&model.Question{}).
		Where("id = ?", parent.SubQuestions[0].ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	reloaded, err := svc.GetQuestion(ctx, parent.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, reloaded.Points)

	// Answered child: soft delete, still excluded from the sum.
	remaining := parent.SubQuestions[1].ID
	require.NoError(t, db.Create(&model.StudentAnswer{
		QuestionID: remaining, ChallengeID: challenge.ID, StudentID: 1,
	}).Error)

	result, err = svc.SafeDelete(ctx, remaining)
	require.NoError(t, err)
	assert.Equal(t, DeleteSoft, result.Branch)

	var row model.Question
	require.NoError(t, db.Unscoped().First(&row, remaining).Error)
	assert.True(t, row.DeletedAt.Valid)
	assert.False(t, row.IsActive)

	reloaded, err = svc.GetQuestion(ctx, parent.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.Points)
}

func TestTeacherWritesAreScopedToTheirSchool(t *testing.T) {
	svc, db := setupTestService(t)
	challenge := seedChallenge(t, db)

	otherSchool := actorContext(model.Teacher, challenge.SchoolID+1)
	sameSchool := actorContext(model.Teacher, challenge.SchoolID)

	_, err := svc.CreateQuestion(otherSchool, multipleChoiceInput(challenge.ID))
	assert.True(t, util.IsForbidden(err))

	q, err := svc.CreateQuestion(sameSchool, multipleChoiceInput(challenge.ID))
	require.NoError(t, err)

	text := "Edited elsewhere"
	_, err = svc.UpdateQuestion(otherSchool, q.ID, UpdateQuestionRequest{Text: &text})
	assert.True(t, util.IsForbidden(err))

	_, err = svc.SafeDelete(otherSchool, q.ID)
	assert.True(t, util.IsForbidden(err))

	// Admins are not bound by the scope.
	_, err = svc.UpdateQuestion(actorContext(model.Admin, challenge.SchoolID+1), q.ID, UpdateQuestionRequest{Text: &text})
	require.NoError(t, err)
}

func TestCompositeParentPoints(t *testing.T) {
	svc, db := setupTestService(t)
	challenge := seedChallenge(t, db)
	ctx := context.Background()

	input := CreateQuestionInput{
		Type:        model.TypeReadIt,
		ChallengeID: challenge.ID,
		Stage:       model.StageWriting,
		Phase:       "phase_1",
		Points:      999, // ignored, parent points are derived
		Content:     []string{"A passage."},
		SubQuestions: []SubQuestionInput{
			{Type: model.TypeTrueFalse, Text: "True?", Answer: true, Points: 2},
			{Type: model.TypeMultipleChoice, Text: "Pick", Options: []string{"a", "b"}, Answer: "a", Points: 3},
		},
	}

	parent, err := svc.CreateQuestion(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, 5, parent.Points)
	require.Len(t, parent.SubQuestions, 2)
	assert.Equal(t, 1, parent.SubQuestions[0].Position)
	assert.Equal(t, 2, parent.SubQuestions[1].Position)

	// Setting points directly on the parent is rejected.
	points := 10
	_, err = svc.UpdateQuestion(ctx, parent.ID, UpdateQuestionRequest{Points: &points})
	assert.True(t, util.IsValidation(err))

	// Raising a child's points recomputes the parent.
	childID := parent.SubQuestions[1].ID
	seven := 7
	_, err = svc.UpdateQuestion(ctx, childID, UpdateQuestionRequest{Points: &seven})
	require.NoError(t, err)

	reloaded, err := svc.GetQuestion(ctx, parent.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, reloaded.Points)
}

func TestUpdateBumpsVersionOnlyWhenAnswered(t *testing.T) {
	svc, db := setupTestService(t)
	challenge := seedChallenge(t, db)
	ctx := context.Background()

	q, err := svc.CreateQuestion(ctx, multipleChoiceInput(challenge.ID))
	require.NoError(t, err)
	assert.Equal(t, 1, q.Version)

	// No answers yet: content edits keep version 1.
	text := "Pick the right sum."
	updated, err := svc.UpdateQuestion(ctx, q.ID, UpdateQuestionRequest{Text: &text})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Version)

	require.NoError(t, db.Create(&model.StudentAnswer{
		QuestionID: q.ID, ChallengeID: challenge.ID, StudentID: 1,
	}).Error)

	text = "Pick the correct sum."
	updated, err = svc.UpdateQuestion(ctx, q.ID, UpdateQuestionRequest{Text: &text})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Version)
}

func TestCreateRejectsMissingChallengeAndUnknownType(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	input := multipleChoiceInput(99999)
	_, err := svc.CreateQuestion(ctx, input)
	assert.True(t, util.IsNotFound(err))

	challenge := seedChallenge(t, db)
	bad := multipleChoiceInput(challenge.ID)
	bad.Type = "karaoke"
	_, err = svc.CreateQuestion(ctx, bad)
	assert.True(t, util.IsValidation(err))
}
