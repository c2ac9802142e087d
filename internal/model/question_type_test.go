package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryCoversAllTypes(t *testing.T) {
	assert.Len(t, QuestionTypes(), 19)
	for _, questionType := range QuestionTypes() {
		assert.True(t, KnownType(questionType))
		spec := TypeSpec(questionType)
		assert.NotEmpty(t, spec.Category, questionType)
		assert.NotEmpty(t, spec.DefaultValidation, questionType)
		assert.NotEmpty(t, spec.DefaultText, questionType)
		assert.NotEmpty(t, spec.DefaultInstructions, questionType)
	}
}

func TestSpeakingTypesDefaultToIAValidation(t *testing.T) {
	for _, questionType := range []string{TypeDebate, TypeReadAloud, TypeOpenConversation, TypeEssay} {
		assert.Equal(t, ValidationIA, TypeSpec(questionType).DefaultValidation, questionType)
	}
	assert.Equal(t, ValidationAuto, TypeSpec(TypeMultipleChoice).DefaultValidation)
}

func TestCompositeTypes(t *testing.T) {
	assert.True(t, TypeSpec(TypeTopicBasedAudio).HasSubQuestions)
	assert.True(t, TypeSpec(TypeReadIt).HasSubQuestions)
	assert.False(t, TypeSpec(TypeMultipleChoice).HasSubQuestions)
}

func TestUnknownTypeGetsGenericFallback(t *testing.T) {
	assert.False(t, KnownType("karaoke"))
	spec := TypeSpec("karaoke")
	assert.Equal(t, ValidationAuto, spec.DefaultValidation)
	assert.Equal(t, "Complete the question.", spec.DefaultText)
}

func TestStageValidity(t *testing.T) {
	for _, stage := range []Stage{StageVocabulary, StageGrammar, StageListening, StageWriting, StageSpeaking} {
		assert.True(t, stage.Valid())
	}
	assert.False(t, Stage("arithmetic").Valid())
	assert.False(t, Stage("").Valid())
}
