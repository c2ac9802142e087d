package service

import (
	"lingua_edu_backend/internal/model"
	"lingua_edu_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryTypeHasACreationRule(t *testing.T) {
	for _, questionType := range model.QuestionTypes() {
		_, ok := creationRules[questionType]
		assert.True(t, ok, "missing creation rule for %s", questionType)
	}
	assert.Len(t, creationRules, 19)
}

func TestAnswerInOptions(t *testing.T) {
	tests := []struct {
		name    string
		options []string
		answer  interface{}
		wantErr bool
	}{
		{"answer present", []string{"cat", "dog"}, "dog", false},
		{"answer missing", []string{"cat", "dog"}, "bird", true},
		{"empty options", nil, "cat", true},
		{"empty answer", []string{"cat"}, "", true},
		{"non-string answer", []string{"cat"}, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := &CreateQuestionInput{Options: tt.options, Answer: tt.answer}
			err := answerInOptions(input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, util.IsValidation(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWordboxRule(t *testing.T) {
	valid := &CreateQuestionInput{
		Content: [][]string{{"c", "a", "t"}, {"d", "o", "g"}},
		Answer:  []string{"cat", "dog"},
	}
	assert.NoError(t, wordboxRule(valid))

	ragged := &CreateQuestionInput{
		Content: [][]string{{"c", "a", "t"}, {"d", "o"}},
		Answer:  []string{"cat"},
	}
	err := wordboxRule(ragged)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rectangular")

	noWords := &CreateQuestionInput{
		Content: [][]string{{"c", "a"}},
		Answer:  []string{},
	}
	assert.Error(t, wordboxRule(noWords))

	emptyGrid := &CreateQuestionInput{Content: [][]string{}, Answer: []string{"x"}}
	assert.Error(t, wordboxRule(emptyGrid))
}

func TestWordAssociationsRuleRequiresTotal(t *testing.T) {
	input := &CreateQuestionInput{
		Content:       []string{"sun", "moon"},
		Configuration: map[string]string{},
	}
	err := wordAssociationsRule(input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "totalAssociations")

	input.Configuration["totalAssociations"] = "4"
	assert.NoError(t, wordAssociationsRule(input))
}

func TestMemoryMatchRulePairsOfTwo(t *testing.T) {
	valid := &CreateQuestionInput{Content: [][]string{{"big", "large"}, {"small", "tiny"}}}
	assert.NoError(t, memoryMatchRule(valid))

	triple := &CreateQuestionInput{Content: [][]string{{"a", "b", "c"}}}
	assert.Error(t, memoryMatchRule(triple))

	empty := &CreateQuestionInput{Content: [][]string{}}
	assert.Error(t, memoryMatchRule(empty))
}

func TestUnscrambleRuleLengthsMatch(t *testing.T) {
	valid := &CreateQuestionInput{
		Content: []string{"dog", "the", "barks"},
		Answer:  []string{"the", "dog", "barks"},
	}
	assert.NoError(t, unscrambleRule(valid))

	mismatched := &CreateQuestionInput{
		Content: []string{"dog", "the", "barks"},
		Answer:  []string{"the", "dog"},
	}
	err := unscrambleRule(mismatched)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "same length")
}

func TestTrueFalseRule(t *testing.T) {
	valid := &CreateQuestionInput{Content: "The sky is green.", Answer: false}
	assert.NoError(t, trueFalseRule(valid))

	stringAnswer := &CreateQuestionInput{Content: "statement", Answer: "false"}
	assert.Error(t, trueFalseRule(stringAnswer))

	noStatement := &CreateQuestionInput{Content: "", Answer: true}
	assert.Error(t, trueFalseRule(noStatement))
}

func TestDebateRuleRequiresStance(t *testing.T) {
	valid := &CreateQuestionInput{Content: "Homework should be banned.", Answer: "support"}
	assert.NoError(t, debateRule(valid))

	noStance := &CreateQuestionInput{Content: "Homework should be banned.", Answer: ""}
	err := debateRule(noStance)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stance")
}

func TestCompositeRulesRequireSubQuestions(t *testing.T) {
	audio := &CreateQuestionInput{Content: "A trip to the market"}
	err := topicBasedAudioRule(audio)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "subQuestions")

	readIt := &CreateQuestionInput{Content: []string{"A short passage."}}
	err = readItRule(readIt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "subQuestions")
}

func TestValidateSubQuestion(t *testing.T) {
	tests := []struct {
		name    string
		sub     SubQuestionInput
		wantErr string
	}{
		{
			"valid choice child",
			SubQuestionInput{Type: model.TypeMultipleChoice, Text: "Pick one", Options: []string{"a", "b"}, Answer: "a", Points: 2},
			"",
		},
		{
			"valid true_false child",
			SubQuestionInput{Type: model.TypeTrueFalse, Text: "Really?", Answer: true, Points: 1},
			"",
		},
		{
			"answer outside options",
			SubQuestionInput{Type: model.TypeMultipleChoice, Text: "Pick one", Options: []string{"a", "b"}, Answer: "c", Points: 2},
			"not one of the options",
		},
		{
			"true_false with string answer",
			SubQuestionInput{Type: model.TypeTrueFalse, Text: "Really?", Answer: "yes", Points: 1},
			"boolean",
		},
		{
			"zero points",
			SubQuestionInput{Type: model.TypeTrueFalse, Text: "Really?", Answer: true, Points: 0},
			"points",
		},
		{
			"missing text",
			SubQuestionInput{Type: model.TypeTrueFalse, Answer: true, Points: 1},
			"text",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSubQuestion(0, tt.sub)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidCreationSamples(t *testing.T) {
	samples := map[string]*CreateQuestionInput{
		model.TypeImageToMultipleChoices: {Options: []string{"apple", "pear"}, Answer: "apple"},
		model.TypeWordbox:                {Content: [][]string{{"c", "a"}, {"t", "x"}}, Answer: []string{"cat"}},
		model.TypeWordAssociations:       {Content: []string{"sun", "moon"}, Configuration: map[string]string{"totalAssociations": "2"}},
		model.TypeMemoryMatch:            {Content: [][]string{{"hot", "cold"}}},
		model.TypeUnscramble:             {Content: []string{"runs", "she"}, Answer: []string{"she", "runs"}},
		model.TypeTenses:                 {Content: "She ___ home.", Options: []string{"goes", "go"}, Answer: "goes"},
		model.TypeTagIt:                  {Content: "The quick brown fox", Answer: []string{"quick", "brown"}},
		model.TypeFillInTheBlanks:        {Content: "I ___ tea.", Answer: []string{"drink"}},
		model.TypeMultipleChoice:         {Content: "2+2?", Options: []string{"3", "4"}, Answer: "4"},
		model.TypeTrueFalse:              {Content: "Water is wet.", Answer: true},
		model.TypeListenAndChoose:        {Options: []string{"cat", "cap"}, Answer: "cat"},
		model.TypeTopicBasedAudio: {
			Content: "At the airport",
			SubQuestions: []SubQuestionInput{
				{Type: model.TypeMultipleChoice, Text: "Where?", Options: []string{"airport", "station"}, Answer: "airport", Points: 2},
			},
		},
		model.TypeDictation: {Content: "The cat sat on the mat."},
		model.TypeReadIt: {
			Content: []string{"A passage."},
			SubQuestions: []SubQuestionInput{
				{Type: model.TypeTrueFalse, Text: "Is it short?", Answer: true, Points: 1},
			},
		},
		model.TypeFastTest:         {Content: "Quick: 5*5?", Options: []string{"20", "25"}, Answer: "25"},
		model.TypeEssay:            {Content: "My favorite season"},
		model.TypeDebate:           {Content: "School uniforms", Answer: "oppose"},
		model.TypeReadAloud:        {Content: "Read this sentence aloud."},
		model.TypeOpenConversation: {Content: "Your weekend plans"},
	}

	require.Len(t, samples, 19)
	for questionType, input := range samples {
		t.Run(questionType, func(t *testing.T) {
			rule := creationRules[questionType]
			require.NotNil(t, rule)
			assert.NoError(t, rule(input))
		})
	}
}
