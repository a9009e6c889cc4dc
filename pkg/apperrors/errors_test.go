package apperrors

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	appErr := Wrap(cause, CodeDatabaseError, "job", "could not load job", http.StatusInternalServerError)

	assert.Contains(t, appErr.Error(), "job")
	assert.Contains(t, appErr.Error(), "could not load job")
	assert.Contains(t, appErr.Error(), "connection refused")
	assert.ErrorIs(t, appErr, cause)
}

func TestAsAppError(t *testing.T) {
	appErr := New(CodeForbidden, "contract", "not a party to this contract", http.StatusForbidden)

	got, ok := AsAppError(appErr)
	require.True(t, ok)
	assert.Equal(t, CodeForbidden, got.Code)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}

func TestDomainErrors_HTTPCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"insufficient permissions", ErrInsufficientPermissions, http.StatusForbidden},
		{"job not open", ErrJobNotOpen, http.StatusBadRequest},
		{"duplicate bid", ErrDuplicateBid, http.StatusBadRequest},
		{"job already awarded", ErrJobAlreadyAwarded, http.StatusBadRequest},
		{"contract closed", ErrContractClosed, http.StatusBadRequest},
		{"duplicate review", ErrDuplicateReview, http.StatusBadRequest},
		{"validation", ValidationError("bad field"), http.StatusBadRequest},
		{"internal", InternalError(errors.New("boom")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.HTTPCode)
		})
	}
}

func TestHandleError_Envelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	HandleError(c, ErrJobNotOpen)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.JSONEq(t, `{"error": "job is not open for bidding"}`, recorder.Body.String())
}

func TestHandleError_MasksInternalDetails(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)
	defer gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	HandleError(c, errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.JSONEq(t, `{"error": "internal server error"}`, recorder.Body.String())
	assert.NotContains(t, recorder.Body.String(), "password")
}

func TestErrInvalidTransitionMessage(t *testing.T) {
	err := ErrInvalidTransition("job", "awarded", "open")

	assert.Equal(t, CodeInvalidTransition, err.Code)
	assert.Equal(t, http.StatusBadRequest, err.HTTPCode)
	assert.Contains(t, err.Message, `"awarded"`)
	assert.Contains(t, err.Message, `"open"`)
}
