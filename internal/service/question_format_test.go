package service

import (
	"lingua_edu_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShapePayloadPerType(t *testing.T) {
	tests := []struct {
		questionType string
		content      interface{}
		options      interface{}
		answer       interface{}
		wantKeys     []string
	}{
		{model.TypeMultipleChoice, "2+2?", []interface{}{"3", "4"}, "4", []string{"question", "options", "answer"}},
		{model.TypeWordbox, [][]string{{"c", "a"}}, nil, []string{"cat"}, []string{"grid", "words"}},
		{model.TypeWordAssociations, []string{"sun"}, nil, []string{"day"}, []string{"words", "matches"}},
		{model.TypeMemoryMatch, [][]string{{"hot", "cold"}}, nil, nil, []string{"pairs"}},
		{model.TypeUnscramble, []string{"runs", "she"}, nil, []string{"she", "runs"}, []string{"scrambled", "answer"}},
		{model.TypeTagIt, "The quick fox", nil, []string{"quick"}, []string{"sentence", "answer"}},
		{model.TypeTrueFalse, "Water is wet.", nil, true, []string{"statement", "answer"}},
		{model.TypeDictation, "The cat sat.", nil, nil, []string{"transcript"}},
		{model.TypeReadIt, []string{"A passage."}, nil, nil, []string{"passages"}},
		{model.TypeDebate, "School uniforms", nil, "oppose", []string{"topic", "stance"}},
		{model.TypeReadAloud, "Read me.", nil, nil, []string{"passage"}},
		{model.TypeEssay, "My hero", nil, nil, []string{"topic"}},
		{"something_unknown", "x", nil, "y", []string{"content", "options", "answer"}},
	}

	for _, tt := range tests {
		t.Run(tt.questionType, func(t *testing.T) {
			payload := shapePayload(tt.questionType, tt.content, tt.options, tt.answer)
			assert.Len(t, payload, len(tt.wantKeys))
			for _, key := range tt.wantKeys {
				assert.Contains(t, payload, key)
			}
		})
	}
}

func TestShapePayloadDebateExposesStance(t *testing.T) {
	payload := shapePayload(model.TypeDebate, "Homework", nil, "support")
	assert.Equal(t, "support", payload["stance"])
	assert.Equal(t, "Homework", payload["topic"])
}

func TestDecodeHelpers(t *testing.T) {
	assert.Nil(t, decodeJSON(nil))
	assert.Equal(t, []interface{}{"a", "b"}, decodeJSON([]byte(`["a","b"]`)))

	assert.Nil(t, decodeStringList(nil))
	assert.Equal(t, []string{"a", "b"}, decodeStringList([]byte(`["a","b"]`)))
	assert.Nil(t, decodeStringList([]byte(`{"not":"a list"}`)))
}
