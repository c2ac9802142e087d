package service

import (
	"lingua_edu_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebateRequestToInput(t *testing.T) {
	req := DebateRequest{
		QuestionBase: QuestionBase{ChallengeID: 1, Stage: model.StageSpeaking},
		Topic:        "Exams should be open book.",
		Stance:       "support",
	}
	input := req.ToInput()

	assert.Equal(t, model.TypeDebate, input.Type)
	assert.Equal(t, "Exams should be open book.", input.Content)
	assert.Equal(t, "support", input.Answer)
	assert.Equal(t, "90", input.Configuration["minDuration"])
	assert.NoError(t, creationRules[input.Type](&input))
}

func TestTrueFalseRequestToInput(t *testing.T) {
	answer := false
	req := TrueFalseRequest{
		QuestionBase: QuestionBase{ChallengeID: 1, Stage: model.StageGrammar},
		Statement:    "Go has classes.",
		Answer:       &answer,
	}
	input := req.ToInput()

	assert.Equal(t, model.TypeTrueFalse, input.Type)
	assert.Equal(t, false, input.Answer)
	assert.NoError(t, creationRules[input.Type](&input))
}

func TestWordAssociationsRequestToInput(t *testing.T) {
	req := WordAssociationsRequest{
		QuestionBase:      QuestionBase{ChallengeID: 1, Stage: model.StageVocabulary},
		Words:             []string{"sun", "moon"},
		Matches:           []string{"day", "night"},
		TotalAssociations: 2,
	}
	input := req.ToInput()

	assert.Equal(t, "2", input.Configuration["totalAssociations"])
	assert.NoError(t, creationRules[input.Type](&input))
}

func TestDictationRequestAnswerMirrorsTranscript(t *testing.T) {
	req := DictationRequest{
		QuestionBase: QuestionBase{ChallengeID: 1, Stage: model.StageListening},
		Transcript:   "The train leaves at nine.",
	}
	input := req.ToInput()

	assert.Equal(t, input.Content, input.Answer)
	assert.NoError(t, creationRules[input.Type](&input))
}

func TestMediaFileIDsBecomeSequentialAttachments(t *testing.T) {
	base := QuestionBase{ChallengeID: 1, Stage: model.StageListening, MediaFileIDs: []uint{7, 9}}
	input := base.toInput(model.TypeListenAndChoose)

	require.Len(t, input.Media, 2)
	assert.Equal(t, MediaAttachment{FileID: 7, Context: "main", Position: 1}, input.Media[0])
	assert.Equal(t, MediaAttachment{FileID: 9, Context: "main", Position: 2}, input.Media[1])
}

func TestReadItSubQuestionsDefaultToTrueFalse(t *testing.T) {
	req := ReadItRequest{
		QuestionBase: QuestionBase{ChallengeID: 1, Stage: model.StageWriting},
		Passages:     []string{"A short passage."},
		SubQuestions: []SubQuestionRequest{
			{Text: "Is it long?", Answer: false, Points: 1},
			{Type: model.TypeMultipleChoice, Text: "Pick", Options: []string{"a", "b"}, Answer: "a", Points: 2},
		},
	}
	input := req.ToInput()

	require.Len(t, input.SubQuestions, 2)
	assert.Equal(t, model.TypeTrueFalse, input.SubQuestions[0].Type)
	assert.Equal(t, model.TypeMultipleChoice, input.SubQuestions[1].Type)
	assert.NoError(t, creationRules[input.Type](&input))
}

func TestTopicBasedAudioSubQuestionsDefaultToMultipleChoice(t *testing.T) {
	req := TopicBasedAudioRequest{
		QuestionBase: QuestionBase{ChallengeID: 1, Stage: model.StageListening},
		Topic:        "Ordering food",
		SubQuestions: []SubQuestionRequest{
			{Text: "What was ordered?", Options: []string{"pizza", "soup"}, Answer: "soup", Points: 3},
		},
	}
	input := req.ToInput()

	require.Len(t, input.SubQuestions, 1)
	assert.Equal(t, model.TypeMultipleChoice, input.SubQuestions[0].Type)
	assert.NoError(t, creationRules[input.Type](&input))
}
