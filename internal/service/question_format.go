package service

import (
	"lingua_edu_backend/internal/model"
	"time"
)

// FormattedMedia is the client-facing shape of an attachment.
type FormattedMedia struct {
	ID       uint    `json:"id"`
	URL      string  `json:"url"`
	MimeType string  `json:"mimeType"`
	Context  string  `json:"context"`
	Position int     `json:"position"`
	Duration float64 `json:"duration,omitempty"`
}

// FormattedQuestion is the client-facing shape of a question: raw JSON
// columns decoded into a per-type payload, media and configuration
// attached, sub-questions nested.
type FormattedQuestion struct {
	ID               uint                    `json:"id"`
	ChallengeID      uint                    `json:"challengeId"`
	Stage            model.Stage             `json:"stage"`
	Phase            string                  `json:"phase"`
	Position         int                     `json:"position"`
	Type             string                  `json:"type"`
	Category         string                  `json:"category"`
	ValidationMethod model.ValidationMethod  `json:"validationMethod"`
	Points           int                     `json:"points"`
	TimeLimit        int                     `json:"timeLimit,omitempty"`
	MaxAttempts      int                     `json:"maxAttempts"`
	Text             string                  `json:"text"`
	Instructions     string                  `json:"instructions"`
	IsActive         bool                    `json:"isActive"`
	Version          int                     `json:"version"`
	ParentQuestionID uint                    `json:"parentQuestionId,omitempty"`
	Payload          map[string]interface{}  `json:"payload"`
	Media            []FormattedMedia        `json:"media,omitempty"`
	Configuration    map[string]string       `json:"configuration,omitempty"`
	SubQuestions     []FormattedQuestion     `json:"subQuestions,omitempty"`
	Challenge        *model.Challenge        `json:"challenge,omitempty"`
	CreatedAt        time.Time               `json:"createdAt"`
	UpdatedAt        time.Time               `json:"updatedAt"`
	DeletedAt        *time.Time              `json:"deletedAt,omitempty"`
}

// enrichQuestion assembles the full client shape. withContext also
// loads the owning challenge, used on single-question reads.
func (s *QuestionService) enrichQuestion(question *model.Question, withContext bool) (*FormattedQuestion, error) {
	fq := &FormattedQuestion{
		ID:               question.ID,
		ChallengeID:      question.ChallengeID,
		Stage:            question.Stage,
		Phase:            question.Phase,
		Position:         question.Position,
		Type:             question.Type,
		Category:         string(model.TypeSpec(question.Type).Category),
		ValidationMethod: question.ValidationMethod,
		Points:           question.Points,
		TimeLimit:        question.TimeLimit,
		MaxAttempts:      question.MaxAttempts,
		Text:             question.Text,
		Instructions:     question.Instructions,
		IsActive:         question.IsActive,
		Version:          question.Version,
		ParentQuestionID: question.ParentQuestionID,
		Payload:          shapePayload(question.Type, decodeJSON(question.Content), decodeJSON(question.Options), decodeJSON(question.Answer)),
		CreatedAt:        question.CreatedAt,
		UpdatedAt:        question.UpdatedAt,
	}
	if question.DeletedAt.Valid {
		t := question.DeletedAt.Time
		fq.DeletedAt = &t
	}

	attachments, err := s.MediaRepo.AttachmentsByQuestion(question.ID)
	if err != nil {
		return nil, err
	}
	for _, att := range attachments {
		fq.Media = append(fq.Media, FormattedMedia{
			ID:       att.MediaFileID,
			URL:      att.MediaFile.URL,
			MimeType: att.MediaFile.MimeType,
			Context:  att.Context,
			Position: att.Position,
			Duration: att.MediaFile.Duration,
		})
	}

	configs, err := s.MediaRepo.ConfigurationsByQuestion(question.ID)
	if err != nil {
		return nil, err
	}
	if len(configs) > 0 {
		fq.Configuration = make(map[string]string, len(configs))
		for _, c := range configs {
			fq.Configuration[c.Key] = c.Value
		}
	}

	var children []model.Question
	if question.DeletedAt.Valid {
		// A soft-deleted parent still shows its (also deleted) subtree.
		children, err = s.Repo.FindSubQuestionsIncludingDeleted(question.ID)
	} else {
		children, err = s.Repo.FindSubQuestions(question.ID)
	}
	if err != nil {
		return nil, err
	}
	for i := range children {
		sub, err := s.enrichQuestion(&children[i], false)
		if err != nil {
			return nil, err
		}
		fq.SubQuestions = append(fq.SubQuestions, *sub)
	}

	if withContext {
		challenge, err := s.ChallengeRepo.FindByID(question.ChallengeID)
		if err == nil {
			fq.Challenge = challenge
		}
	}

	return fq, nil
}

// shapePayload reshapes the stored content/options/answer columns into
// the field names each question type's player expects.
func shapePayload(questionType string, content, options, answer interface{}) map[string]interface{} {
	payload := make(map[string]interface{})

	switch questionType {
	case model.TypeImageToMultipleChoices, model.TypeMultipleChoice,
		model.TypeTenses, model.TypeFastTest, model.TypeListenAndChoose:
		payload["question"] = content
		payload["options"] = options
		payload["answer"] = answer
	case model.TypeWordbox:
		payload["grid"] = content
		payload["words"] = answer
	case model.TypeWordAssociations:
		payload["words"] = content
		payload["matches"] = answer
	case model.TypeMemoryMatch:
		payload["pairs"] = content
	case model.TypeUnscramble:
		payload["scrambled"] = content
		payload["answer"] = answer
	case model.TypeTagIt, model.TypeFillInTheBlanks:
		payload["sentence"] = content
		payload["answer"] = answer
	case model.TypeTrueFalse:
		payload["statement"] = content
		payload["answer"] = answer
	case model.TypeDictation:
		payload["transcript"] = content
	case model.TypeReadIt:
		payload["passages"] = content
	case model.TypeTopicBasedAudio, model.TypeEssay, model.TypeOpenConversation:
		payload["topic"] = content
	case model.TypeDebate:
		payload["topic"] = content
		payload["stance"] = answer
	case model.TypeReadAloud:
		payload["passage"] = content
	default:
		payload["content"] = content
		payload["options"] = options
		payload["answer"] = answer
	}

	return payload
}
