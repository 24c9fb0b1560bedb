package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Date      string `json:"date" validate:"required,isodate"`
	StartTime string `json:"startTime" validate:"required,hhmm"`
	Holes     int    `json:"holes" validate:"oneof=9 18"`
	Players   int    `json:"playerCount" validate:"min=1,max=4"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantErr  error
		wantText string
	}{
		{name: "valid", body: `{"date":"2026-05-16","startTime":"07:10","holes":18,"playerCount":4}`},
		{name: "broken json", body: `{"date":`, wantErr: ErrInvalidBody},
		{name: "bad time", body: `{"date":"2026-05-16","startTime":"7h","holes":9,"playerCount":1}`, wantErr: ErrValidation, wantText: "StartTime must be HH:MM"},
		{name: "bad holes", body: `{"date":"2026-05-16","startTime":"07:10","holes":10,"playerCount":1}`, wantErr: ErrValidation, wantText: "Holes must be one of [9 18]"},
		{name: "too many players", body: `{"date":"2026-05-16","startTime":"07:10","holes":9,"playerCount":5}`, wantErr: ErrValidation, wantText: "Players must be at most 4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var req sampleRequest
			err := DecodeJSON(r, &req)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantText != "" {
				assert.Equal(t, tt.wantText, DecodeErrorMessage(err, "fallback"))
			}
		})
	}
}

func TestDecodeErrorMessage_Fallback(t *testing.T) {
	assert.Equal(t, "fallback", DecodeErrorMessage(ErrInvalidBody, "fallback"))
}

func TestPathInt64(t *testing.T) {
	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": "42", "bad": "-1"})

	id, err := PathInt64(r, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = PathInt64(r, "bad")
	assert.ErrorIs(t, err, ErrInvalidParam)
}

func TestRespondErrorWithDetails(t *testing.T) {
	w := httptest.NewRecorder()
	RespondErrorWithDetails(w, http.StatusConflict, "full", map[string]interface{}{"suggestWaitlist": true})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"full","details":{"suggestWaitlist":true}}`, w.Body.String())
}
