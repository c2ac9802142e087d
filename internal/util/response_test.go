package util

import (
	"encoding/json"
	"errors"
	"lingua_edu_backend/pkg/logger"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func respond(t *testing.T, err error) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	RespondError(c, err)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestRespondErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation maps to 400", Validationf("options must not be empty"), http.StatusBadRequest},
		{"forbidden maps to 403", Forbiddenf("resource belongs to another school"), http.StatusForbidden},
		{"not found maps to 404", NotFoundf("question"), http.StatusNotFound},
		{"conflict maps to 409", Conflictf("position taken"), http.StatusConflict},
		{"unclassified maps to 500", errors.New("dial tcp: connection refused"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := respond(t, tt.err)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantStatus, body.Code)
		})
	}
}

func TestUnclassifiedErrorDetailIsNotLeaked(t *testing.T) {
	_, body := respond(t, errors.New("password=hunter2 in dsn"))
	assert.Equal(t, "Internal server error", body.Message)
	assert.NotContains(t, body.Message, "hunter2")
}
