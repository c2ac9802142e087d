package service

import (
	"lingua_edu_backend/internal/model"
	"lingua_edu_backend/internal/util"
	"strconv"
)

// CreateQuestionInput is the normalized creation payload every typed
// request reduces to. The per-type rule validates it before anything
// is persisted.
type CreateQuestionInput struct {
	Type             string
	ChallengeID      uint
	Stage            model.Stage
	Phase            string
	Points           int
	TimeLimit        int
	MaxAttempts      int
	Text             string
	Instructions     string
	ValidationMethod model.ValidationMethod
	Content          interface{}
	Options          []string
	Answer           interface{}
	Configuration    map[string]string
	Media            []MediaAttachment
	SubQuestions     []SubQuestionInput
	ParentQuestionID uint
}

type SubQuestionInput struct {
	Type    string
	Text    string
	Options []string
	Answer  interface{}
	Points  int
}

// creationRule checks the type-specific invariants of a normalized
// input. Rules never touch the database; existence checks (challenge,
// explicit parent) live in the service.
type creationRule func(input *CreateQuestionInput) error

var creationRules = map[string]creationRule{
	model.TypeImageToMultipleChoices: answerInOptions,
	model.TypeWordbox:                wordboxRule,
	model.TypeWordAssociations:       wordAssociationsRule,
	model.TypeMemoryMatch:            memoryMatchRule,
	model.TypeUnscramble:             unscrambleRule,
	model.TypeTenses:                 answerInOptions,
	model.TypeTagIt:                  nonEmptyAnswerList,
	model.TypeFillInTheBlanks:        nonEmptyAnswerList,
	model.TypeMultipleChoice:         answerInOptions,
	model.TypeTrueFalse:              trueFalseRule,
	model.TypeListenAndChoose:        answerInOptions,
	model.TypeTopicBasedAudio:        topicBasedAudioRule,
	model.TypeDictation:              nonEmptyContentString,
	model.TypeReadIt:                 readItRule,
	model.TypeFastTest:               answerInOptions,
	model.TypeEssay:                  nonEmptyContentString,
	model.TypeDebate:                 debateRule,
	model.TypeReadAloud:              nonEmptyContentString,
	model.TypeOpenConversation:       nonEmptyContentString,
}

func answerInOptions(input *CreateQuestionInput) error {
	answer, ok := input.Answer.(string)
	if !ok || answer == "" {
		return util.Validationf("answer must be a non-empty string")
	}
	if len(input.Options) == 0 {
		return util.Validationf("options must not be empty")
	}
	for _, option := range input.Options {
		if option == answer {
			return nil
		}
	}
	return util.Validationf("answer %q is not one of the options", answer)
}

func wordboxRule(input *CreateQuestionInput) error {
	grid, ok := input.Content.([][]string)
	if !ok || len(grid) == 0 {
		return util.Validationf("content must be a non-empty letter grid")
	}
	width := len(grid[0])
	if width == 0 {
		return util.Validationf("letter grid rows must not be empty")
	}
	for _, row := range grid {
		if len(row) != width {
			return util.Validationf("letter grid must be rectangular")
		}
	}
	return nonEmptyAnswerList(input)
}

func wordAssociationsRule(input *CreateQuestionInput) error {
	if _, ok := input.Configuration["totalAssociations"]; !ok {
		return util.Validationf("configuration.totalAssociations is required")
	}
	words, ok := input.Content.([]string)
	if !ok || len(words) == 0 {
		return util.Validationf("words must not be empty")
	}
	return nil
}

func memoryMatchRule(input *CreateQuestionInput) error {
	pairs, ok := input.Content.([][]string)
	if !ok || len(pairs) == 0 {
		return util.Validationf("pairs must not be empty")
	}
	for _, pair := range pairs {
		if len(pair) != 2 {
			return util.Validationf("every pair must have exactly two entries")
		}
	}
	return nil
}

func unscrambleRule(input *CreateQuestionInput) error {
	words, ok := input.Content.([]string)
	if !ok || len(words) == 0 {
		return util.Validationf("words must not be empty")
	}
	answer, ok := input.Answer.([]string)
	if !ok {
		return util.Validationf("answer must be a word list")
	}
	if len(words) != len(answer) {
		return util.Validationf("content and answer must have the same length (%d != %d)", len(words), len(answer))
	}
	return nil
}

func nonEmptyAnswerList(input *CreateQuestionInput) error {
	answer, ok := input.Answer.([]string)
	if !ok || len(answer) == 0 {
		return util.Validationf("answer must be a non-empty list")
	}
	return nil
}

func trueFalseRule(input *CreateQuestionInput) error {
	if _, ok := input.Answer.(bool); !ok {
		return util.Validationf("answer must be a boolean")
	}
	return nonEmptyContentString(input)
}

func nonEmptyContentString(input *CreateQuestionInput) error {
	content, ok := input.Content.(string)
	if !ok || content == "" {
		return util.Validationf("content must not be empty")
	}
	return nil
}

func topicBasedAudioRule(input *CreateQuestionInput) error {
	if err := nonEmptyContentString(input); err != nil {
		return err
	}
	if len(input.SubQuestions) == 0 {
		return util.Validationf("subQuestions must not be empty")
	}
	for i, sub := range input.SubQuestions {
		if err := validateSubQuestion(i, sub); err != nil {
			return err
		}
	}
	return nil
}

func readItRule(input *CreateQuestionInput) error {
	passages, ok := input.Content.([]string)
	if !ok || len(passages) == 0 {
		return util.Validationf("content must be a non-empty list of passages")
	}
	if len(input.SubQuestions) == 0 {
		return util.Validationf("subQuestions must not be empty")
	}
	for i, sub := range input.SubQuestions {
		if err := validateSubQuestion(i, sub); err != nil {
			return err
		}
	}
	return nil
}

func debateRule(input *CreateQuestionInput) error {
	if err := nonEmptyContentString(input); err != nil {
		return err
	}
	stance, ok := input.Answer.(string)
	if !ok || stance == "" {
		return util.Validationf("stance must not be empty")
	}
	return nil
}

// validateSubQuestion applies the child invariants of composite types:
// choice-shaped children must keep their answer inside their options,
// true_false children carry a boolean answer.
func validateSubQuestion(index int, sub SubQuestionInput) error {
	if sub.Text == "" {
		return util.Validationf("sub-question %d: text must not be empty", index+1)
	}
	if sub.Points <= 0 {
		return util.Validationf("sub-question %d: points must be positive", index+1)
	}
	switch sub.Type {
	case model.TypeTrueFalse:
		if _, ok := sub.Answer.(bool); !ok {
			return util.Validationf("sub-question %d: answer must be a boolean", index+1)
		}
	default:
		answer, ok := sub.Answer.(string)
		if !ok || answer == "" {
			return util.Validationf("sub-question %d: answer must be a non-empty string", index+1)
		}
		if len(sub.Options) == 0 {
			return util.Validationf("sub-question %d: options must not be empty", index+1)
		}
		found := false
		for _, option := range sub.Options {
			if option == answer {
				found = true
				break
			}
		}
		if !found {
			return util.Validationf("sub-question %d: answer %q is not one of the options", index+1, answer)
		}
	}
	return nil
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
