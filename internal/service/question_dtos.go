package service

import (
	"lingua_edu_backend/internal/model"
)

// QuestionBase carries the fields every creation payload shares. Phase
// defaults to phase_1; text, instructions and validation method fall
// back to the type registry when omitted.
type QuestionBase struct {
	ChallengeID      uint                   `json:"challengeId" form:"challengeId" binding:"required"`
	Stage            model.Stage            `json:"stage" form:"stage" binding:"required"`
	Phase            string                 `json:"phase" form:"phase"`
	Points           int                    `json:"points" form:"points"`
	TimeLimit        int                    `json:"timeLimit" form:"timeLimit"`
	MaxAttempts      int                    `json:"maxAttempts" form:"maxAttempts"`
	Text             string                 `json:"text" form:"text"`
	Instructions     string                 `json:"instructions" form:"instructions"`
	ValidationMethod model.ValidationMethod `json:"validationMethod" form:"validationMethod"`
	MediaFileIDs     []uint                 `json:"mediaFileIds" form:"mediaFileIds"`
}

func (b QuestionBase) toInput(questionType string) CreateQuestionInput {
	media := make([]MediaAttachment, len(b.MediaFileIDs))
	for i, id := range b.MediaFileIDs {
		media[i] = MediaAttachment{FileID: id, Context: "main", Position: i + 1}
	}
	return CreateQuestionInput{
		Type:             questionType,
		ChallengeID:      b.ChallengeID,
		Stage:            b.Stage,
		Phase:            b.Phase,
		Points:           b.Points,
		TimeLimit:        b.TimeLimit,
		MaxAttempts:      b.MaxAttempts,
		Text:             b.Text,
		Instructions:     b.Instructions,
		ValidationMethod: b.ValidationMethod,
		Media:            media,
		Configuration:    map[string]string{},
	}
}

// SubQuestionRequest is one child item of a composite question. The
// answer is a string for choice types and a boolean for true_false.
type SubQuestionRequest struct {
	Type    string      `json:"type"`
	Text    string      `json:"text" binding:"required"`
	Options []string    `json:"options"`
	Answer  interface{} `json:"answer" binding:"required"`
	Points  int         `json:"points" binding:"required,min=1"`
}

type ImageToMultipleChoicesRequest struct {
	QuestionBase
	Options []string `json:"options" form:"options" binding:"required"`
	Answer  string   `json:"answer" form:"answer" binding:"required"`
}

func (r ImageToMultipleChoicesRequest) ToInput() CreateQuestionInput {
	input := r.QuestionBase.toInput(model.TypeImageToMultipleChoices)
	input.Options = r.Options
	input.Answer = r.Answer
	return input
}

type WordboxRequest struct {
	QuestionBase
	Grid  [][]string `json:"grid" binding:"required"`
	Words []string   `json:"words" binding:"required"`
}

func (r WordboxRequest) ToInput() CreateQuestionInput {
	input := r.QuestionBase.toInput(model.TypeWordbox)
	input.Content = r.Grid
	input.Answer = r.Words
	return input
}

type WordAssociationsRequest struct {
	QuestionBase
	Words             []string `json:"words" binding:"required"`
	Matches           []string `json:"matches" binding:"required"`
	TotalAssociations int      `json:"totalAssociations"`
}

func (r WordAssociationsRequest) ToInput() CreateQuestionInput {
	input := r.QuestionBase.toInput(model.TypeWordAssociations)
	input.Content = r.Words
	input.Answer = r.Matches
	if r.TotalAssociations > 0 {
		input.Configuration["totalAssociations"] = itoa(r.TotalAssociations)
	}
	return input
}

type MemoryMatchRequest struct {
	QuestionBase
	Pairs [][]string `json:"pairs" binding:"required"`
}

func (r MemoryMatchRequest) ToInput() CreateQuestionInput {
	input := r.QuestionBase.toInput(model.TypeMemoryMatch)
	input.Content = r.Pairs
	return input
}

type UnscrambleRequest struct {
	QuestionBase
	Words  []string `json:"words" binding:"required"`
	Answer []string `json:"answer" binding:"required"`
}

func (r UnscrambleRequest) ToInput() CreateQuestionInput {
	input := r.QuestionBase.toInput(model.TypeUnscramble)
	input.Content = r.Words
	input.Answer = r.Answer
	return input
}

type TensesRequest struct {
	QuestionBase
	Sentence string   `json:"sentence" binding:"required"`
	Options  []string `json:"options" binding:"required"`
	Answer   string   `json:"answer" binding:"required"`
}

func (r TensesRequest) ToInput() CreateQuestionInput {
	input := r.QuestionBase.toInput(model.TypeTenses)
	input.Content = r.Sentence
	input.Options = r.Options
	input.Answer = r.Answer
	return input
}

type TagItRequest struct {
	QuestionBase
	Sentence string   `json:"sentence" binding:"required"`
	Answer   []string `json:"answer" binding:"required"`
}

func (r TagItRequest) ToInput() CreateQuestionInput {
	input := r.QuestionBase.toInput(model.TypeTagIt)
	input.Content = r.Sentence
	input.Answer = r.Answer
	return input
}

type FillInTheBlanksRequest struct {
	QuestionBase
	Sentence string   `json:"sentence" binding:"required"`
	Answer   []string `json:"answer" binding:"required"`
}

func (r FillInTheBlanksRequest) ToInput() CreateQuestionInput {
	input := r.QuestionBase.toInput(model.TypeFillInTheBlanks)
	input.Content = r.Sentence
	input.Answer = r.Answer
	return input
}

type MultipleChoiceRequest struct {
	QuestionBase
	Question string   `json:"question" binding:"required"`
	Options  []string `json:"options" binding:"required"`
	Answer   string   `json:"answer" binding:"required"`
}

func (r MultipleChoiceRequest) ToInput() CreateQuestionInput {
	input := r.QuestionBase.toInput(model.TypeMultipleChoice)
	input.Content = r.Question
	input.Options = r.Options
	input.Answer = r.Answer
	return input
}

type TrueFalseRequest struct {
	QuestionBase
	Statement string `json:"statement" binding:"required"`
	Answer    *bool  `json:"answer" binding:"required"`
}

func (r TrueFalseRequest) ToInput() CreateQuestionInput {
	input := r.QuestionBase.toInput(model.TypeTrueFalse)
	input.Content = r.Statement
	input.Answer = *r.Answer
	return input
}

type ListenAndChooseRequest struct {
	QuestionBase
	Options []string `json:"options" form:"options" binding:"required"`
	Answer  string   `json:"answer" form:"answer" binding:"required"`
}

func (r ListenAndChooseRequest) ToInput() CreateQuestionInput {
	input := r.QuestionBase.toInput(model.TypeListenAndChoose)
	input.Options = r.Options
	input.Answer = r.Answer
	return input
}

type TopicBasedAudioRequest struct {
	QuestionBase
	Topic            string               `json:"topic" form:"topic" binding:"required"`
	SubQuestions     []SubQuestionRequest `json:"subQuestions" binding:"required"`
	ParentQuestionID uint                 `json:"parentQuestionId" form:"parentQuestionId"`
}

func (r TopicBasedAudioRequest) ToInput() CreateQuestionInput {
	input := r.QuestionBase.toInput(model.TypeTopicBasedAudio)
	input.Content = r.Topic
	input.SubQuestions = toSubInputs(r.SubQuestions, model.TypeMultipleChoice)
	input.ParentQuestionID = r.ParentQuestionID
	return input
}

type DictationRequest struct {
	QuestionBase
	Transcript string `json:"transcript" form:"transcript" binding:"required"`
}

func (r DictationRequest) ToInput() CreateQuestionInput {
	input := r.QuestionBase.toInput(model.TypeDictation)
	input.Content = r.Transcript
	input.Answer = r.Transcript
	return input
}

type ReadItRequest struct {
	QuestionBase
	Passages         []string             `json:"passages" binding:"required"`
	SubQuestions     []SubQuestionRequest `json:"subQuestions" binding:"required"`
	ParentQuestionID uint                 `json:"parentQuestionId"`
}

func (r ReadItRequest) ToInput() CreateQuestionInput {
	input := r.QuestionBase.toInput(model.TypeReadIt)
	input.Content = r.Passages
	input.SubQuestions = toSubInputs(r.SubQuestions, model.TypeTrueFalse)
	input.ParentQuestionID = r.ParentQuestionID
	return input
}

type FastTestRequest struct {
	QuestionBase
	Question string   `json:"question" binding:"required"`
	Options  []string `json:"options" binding:"required"`
	Answer   string   `json:"answer" binding:"required"`
}

func (r FastTestRequest) ToInput() CreateQuestionInput {
	input := r.QuestionBase.toInput(model.TypeFastTest)
	input.Content = r.Question
	input.Options = r.Options
	input.Answer = r.Answer
	return input
}

type EssayRequest struct {
	QuestionBase
	Topic    string `json:"topic" binding:"required"`
	MinWords int    `json:"minWords"`
}

func (r EssayRequest) ToInput() CreateQuestionInput {
	input := r.QuestionBase.toInput(model.TypeEssay)
	input.Content = r.Topic
	if r.MinWords > 0 {
		input.Configuration["minWords"] = itoa(r.MinWords)
	}
	return input
}

type DebateRequest struct {
	QuestionBase
	Topic  string `json:"topic" binding:"required"`
	Stance string `json:"stance" binding:"required,oneof=support oppose"`
}

func (r DebateRequest) ToInput() CreateQuestionInput {
	input := r.QuestionBase.toInput(model.TypeDebate)
	input.Content = r.Topic
	// The stance rides in the generic answer field; every debate gets a
	// fixed 90 second minimum recording duration.
	input.Answer = r.Stance
	input.Configuration["minDuration"] = "90"
	return input
}

type ReadAloudRequest struct {
	QuestionBase
	Passage string `json:"passage" form:"passage" binding:"required"`
}

func (r ReadAloudRequest) ToInput() CreateQuestionInput {
	input := r.QuestionBase.toInput(model.TypeReadAloud)
	input.Content = r.Passage
	return input
}

type OpenConversationRequest struct {
	QuestionBase
	Topic       string `json:"topic" binding:"required"`
	MinDuration int    `json:"minDuration"`
}

func (r OpenConversationRequest) ToInput() CreateQuestionInput {
	input := r.QuestionBase.toInput(model.TypeOpenConversation)
	input.Content = r.Topic
	if r.MinDuration > 0 {
		input.Configuration["minDuration"] = itoa(r.MinDuration)
	}
	return input
}

func toSubInputs(reqs []SubQuestionRequest, defaultType string) []SubQuestionInput {
	subs := make([]SubQuestionInput, len(reqs))
	for i, r := range reqs {
		subType := r.Type
		if subType == "" {
			subType = defaultType
		}
		subs[i] = SubQuestionInput{
			Type:    subType,
			Text:    r.Text,
			Options: r.Options,
			Answer:  r.Answer,
			Points:  r.Points,
		}
	}
	return subs
}
