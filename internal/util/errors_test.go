package util

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	validation := Validationf("bad %s", "payload")
	notFound := NotFoundf("question")
	conflict := Conflictf("position taken")
	forbidden := Forbiddenf("resource belongs to another school")
	plain := errors.New("boom")

	assert.True(t, IsValidation(validation))
	assert.False(t, IsValidation(notFound))
	assert.False(t, IsValidation(plain))

	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsNotFound(conflict))

	assert.True(t, IsConflict(conflict))
	assert.False(t, IsConflict(validation))

	assert.True(t, IsForbidden(forbidden))
	assert.False(t, IsForbidden(validation))
	assert.False(t, IsForbidden(plain))

	assert.Equal(t, "bad payload", validation.Error())
	assert.Equal(t, "question not found", notFound.Error())
}

func TestClassificationSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("creating question: %w", Validationf("answer missing"))
	assert.True(t, IsValidation(wrapped))

	doubleWrapped := fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", NotFoundf("challenge")))
	assert.True(t, IsNotFound(doubleWrapped))
}
