package model

// The 19 supported question types.
const (
	TypeImageToMultipleChoices = "image_to_multiple_choices"
	TypeWordbox                = "wordbox"
	TypeWordAssociations       = "word_associations"
	TypeMemoryMatch            = "memory_match"
	TypeUnscramble             = "unscramble"
	TypeTenses                 = "tenses"
	TypeTagIt                  = "tag_it"
	TypeFillInTheBlanks        = "fill_in_the_blanks"
	TypeMultipleChoice         = "multiple_choice"
	TypeTrueFalse              = "true_false"
	TypeListenAndChoose        = "listen_and_choose"
	TypeTopicBasedAudio        = "topic_based_audio"
	TypeDictation              = "dictation"
	TypeReadIt                 = "read_it"
	TypeFastTest               = "fast_test"
	TypeEssay                  = "essay"
	TypeDebate                 = "debate"
	TypeReadAloud              = "read_aloud"
	TypeOpenConversation       = "open_conversation"
)

// QuestionTypeSpec carries the static per-type defaults used to fill
// fields the caller left unset. Explicit caller values always win.
type QuestionTypeSpec struct {
	Category            Stage
	DefaultValidation   ValidationMethod
	DefaultText         string
	DefaultInstructions string
	HasMedia            bool
	HasSubQuestions     bool
}

var questionTypeSpecs = map[string]QuestionTypeSpec{
	TypeImageToMultipleChoices: {
		Category:            StageVocabulary,
		DefaultValidation:   ValidationAuto,
		DefaultText:         "What do you see in the image?",
		DefaultInstructions: "Look at the image and choose the correct option.",
		HasMedia:            true,
	},
	TypeWordbox: {
		Category:            StageVocabulary,
		DefaultValidation:   ValidationAuto,
		DefaultText:         "Find the hidden words.",
		DefaultInstructions: "Search the letter grid and mark every hidden word.",
	},
	TypeWordAssociations: {
		Category:            StageVocabulary,
		DefaultValidation:   ValidationAuto,
		DefaultText:         "Match the related words.",
		DefaultInstructions: "Drag each word next to the word it belongs with.",
	},
	TypeMemoryMatch: {
		Category:            StageVocabulary,
		DefaultValidation:   ValidationAuto,
		DefaultText:         "Find the matching pairs.",
		DefaultInstructions: "Flip the cards and match every word with its pair.",
	},
	TypeUnscramble: {
		Category:            StageGrammar,
		DefaultValidation:   ValidationAuto,
		DefaultText:         "Put the words in order.",
		DefaultInstructions: "Arrange the scrambled words into a correct sentence.",
	},
	TypeTenses: {
		Category:            StageGrammar,
		DefaultValidation:   ValidationAuto,
		DefaultText:         "Choose the correct tense.",
		DefaultInstructions: "Select the verb form that completes the sentence.",
	},
	TypeTagIt: {
		Category:            StageGrammar,
		DefaultValidation:   ValidationAuto,
		DefaultText:         "Tag the words.",
		DefaultInstructions: "Mark every word that matches the requested category.",
	},
	TypeFillInTheBlanks: {
		Category:            StageGrammar,
		DefaultValidation:   ValidationAuto,
		DefaultText:         "Fill in the blanks.",
		DefaultInstructions: "Complete the sentence with the missing words.",
	},
	TypeMultipleChoice: {
		Category:            StageGrammar,
		DefaultValidation:   ValidationAuto,
		DefaultText:         "Choose the correct answer.",
		DefaultInstructions: "Select the single correct option.",
	},
	TypeTrueFalse: {
		Category:            StageGrammar,
		DefaultValidation:   ValidationAuto,
		DefaultText:         "True or false?",
		DefaultInstructions: "Decide whether the statement is true or false.",
	},
	TypeListenAndChoose: {
		Category:            StageListening,
		DefaultValidation:   ValidationAuto,
		DefaultText:         "Listen and choose.",
		DefaultInstructions: "Play the audio and choose the correct option.",
		HasMedia:            true,
	},
	TypeTopicBasedAudio: {
		Category:            StageListening,
		DefaultValidation:   ValidationAuto,
		DefaultText:         "Listen to the topic and answer.",
		DefaultInstructions: "Play the audio, then answer every question about it.",
		HasMedia:            true,
		HasSubQuestions:     true,
	},
	TypeDictation: {
		Category:            StageListening,
		DefaultValidation:   ValidationAuto,
		DefaultText:         "Write what you hear.",
		DefaultInstructions: "Play the audio and type the sentence exactly.",
		HasMedia:            true,
	},
	TypeReadIt: {
		Category:            StageWriting,
		DefaultValidation:   ValidationAuto,
		DefaultText:         "Read the passage and answer.",
		DefaultInstructions: "Read every passage, then answer the questions below.",
		HasSubQuestions:     true,
	},
	TypeFastTest: {
		Category:            StageWriting,
		DefaultValidation:   ValidationAuto,
		DefaultText:         "Answer as fast as you can.",
		DefaultInstructions: "Choose the correct option before the timer runs out.",
	},
	TypeEssay: {
		Category:            StageWriting,
		DefaultValidation:   ValidationIA,
		DefaultText:         "Write about the topic.",
		DefaultInstructions: "Write a short essay about the given topic.",
	},
	TypeDebate: {
		Category:            StageSpeaking,
		DefaultValidation:   ValidationIA,
		DefaultText:         "Defend your stance.",
		DefaultInstructions: "Record yourself defending the assigned stance on the topic.",
	},
	TypeReadAloud: {
		Category:            StageSpeaking,
		DefaultValidation:   ValidationIA,
		DefaultText:         "Read the text aloud.",
		DefaultInstructions: "Record yourself reading the text out loud.",
	},
	TypeOpenConversation: {
		Category:            StageSpeaking,
		DefaultValidation:   ValidationIA,
		DefaultText:         "Talk about the topic.",
		DefaultInstructions: "Record a free conversation about the given topic.",
	},
}

var genericTypeSpec = QuestionTypeSpec{
	DefaultValidation:   ValidationAuto,
	DefaultText:         "Complete the question.",
	DefaultInstructions: "Complete the question.",
}

// TypeSpec returns the registry entry for a question type. Unrecognized
// types get the generic AUTO fallback.
func TypeSpec(questionType string) QuestionTypeSpec {
	if spec, ok := questionTypeSpecs[questionType]; ok {
		return spec
	}
	return genericTypeSpec
}

// KnownType reports whether the type is one of the 19 registered types.
func KnownType(questionType string) bool {
	_, ok := questionTypeSpecs[questionType]
	return ok
}

// QuestionTypes lists every registered type identifier.
func QuestionTypes() []string {
	types := make([]string, 0, len(questionTypeSpecs))
	for t := range questionTypeSpecs {
		types = append(types, t)
	}
	return types
}
