package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"example.com/signup/internal/directory"
	"example.com/signup/internal/domain"
	"example.com/signup/internal/events"
	"example.com/signup/internal/seed"
)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()

	directorySeed, err := seed.Load("")
	require.NoError(t, err)

	store := directory.New(directorySeed)
	service := domain.NewService(store, events.NopPublisher{}, zaptest.NewLogger(t))

	mux := http.NewServeMux()
	NewHandler(service).RegisterRoutes(mux)
	return mux
}

func doRequest(t *testing.T, mux *http.ServeMux, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func rosterURL(name, email string) string {
	return "/activities/" + url.PathEscape(name) + "/signup?" + url.Values{"email": {email}}.Encode()
}

func getDirectory(t *testing.T, mux *http.ServeMux) map[string]ActivityView {
	t.Helper()
	rr := doRequest(t, mux, http.MethodGet, "/activities")
	require.Equal(t, http.StatusOK, rr.Code)

	var directory map[string]ActivityView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &directory))
	return directory
}

func errorDetail(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body["detail"]
}

func TestGetActivitiesReturnsDirectory(t *testing.T) {
	mux := newTestMux(t)

	directory := getDirectory(t, mux)
	require.Len(t, directory, 9)

	for name, record := range directory {
		require.NotEmpty(t, name)
		require.NotEmpty(t, record.Description)
		require.NotEmpty(t, record.Schedule)
		require.Positive(t, record.MaxParticipants)
		require.NotNil(t, record.Participants)
	}

	require.Equal(t, 15, directory["Basketball"].MaxParticipants)
	require.Equal(t, []string{"james@mergington.edu"}, directory["Basketball"].Participants)
}

func TestGetActivitiesMethodNotAllowed(t *testing.T) {
	mux := newTestMux(t)

	rr := doRequest(t, mux, http.MethodPost, "/activities")
	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestSignupSuccess(t *testing.T) {
	mux := newTestMux(t)

	rr := doRequest(t, mux, http.MethodPost, rosterURL("Basketball", "newstudent@mergington.edu"))
	require.Equal(t, http.StatusOK, rr.Code)

	var body MessageResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Contains(t, body.Message, "newstudent@mergington.edu")
	require.Contains(t, body.Message, "Basketball")

	directory := getDirectory(t, mux)
	require.Equal(t,
		[]string{"james@mergington.edu", "newstudent@mergington.edu"},
		directory["Basketball"].Participants,
	)
}

func TestSignupUnknownActivity(t *testing.T) {
	mux := newTestMux(t)

	rr := doRequest(t, mux, http.MethodPost, rosterURL("NonExistentActivity", "student@mergington.edu"))
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, "Activity not found", errorDetail(t, rr))
}

func TestSignupDuplicate(t *testing.T) {
	mux := newTestMux(t)

	rr := doRequest(t, mux, http.MethodPost, rosterURL("Basketball", "james@mergington.edu"))
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Contains(t, errorDetail(t, rr), "already signed up")

	directory := getDirectory(t, mux)
	require.Len(t, directory["Basketball"].Participants, 1)
}

func TestSignupMissingEmail(t *testing.T) {
	mux := newTestMux(t)

	rr := doRequest(t, mux, http.MethodPost, "/activities/Basketball/signup")
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSignupMultipleStudentsDifferentActivities(t *testing.T) {
	mux := newTestMux(t)

	rr := doRequest(t, mux, http.MethodPost, rosterURL("Basketball", "student1@mergington.edu"))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(t, mux, http.MethodPost, rosterURL("Tennis Club", "student2@mergington.edu"))
	require.Equal(t, http.StatusOK, rr.Code)

	directory := getDirectory(t, mux)
	require.Contains(t, directory["Basketball"].Participants, "student1@mergington.edu")
	require.Contains(t, directory["Tennis Club"].Participants, "student2@mergington.edu")
}

func TestSignupSpecialCharacterEmail(t *testing.T) {
	mux := newTestMux(t)
	email := "test.user+tag@mergington.edu"

	rr := doRequest(t, mux, http.MethodPost, rosterURL("Basketball", email))
	require.Equal(t, http.StatusOK, rr.Code)

	directory := getDirectory(t, mux)
	require.Contains(t, directory["Basketball"].Participants, email)
}

func TestUnregisterSuccess(t *testing.T) {
	mux := newTestMux(t)

	directory := getDirectory(t, mux)
	require.Contains(t, directory["Basketball"].Participants, "james@mergington.edu")

	rr := doRequest(t, mux, http.MethodDelete, rosterURL("Basketball", "james@mergington.edu"))
	require.Equal(t, http.StatusOK, rr.Code)

	var body MessageResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Contains(t, body.Message, "Removed")

	directory = getDirectory(t, mux)
	require.NotContains(t, directory["Basketball"].Participants, "james@mergington.edu")
}

func TestUnregisterUnknownActivity(t *testing.T) {
	mux := newTestMux(t)

	rr := doRequest(t, mux, http.MethodDelete, rosterURL("NonExistentActivity", "student@mergington.edu"))
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, "Activity not found", errorDetail(t, rr))
}

func TestUnregisterAbsentParticipant(t *testing.T) {
	mux := newTestMux(t)

	rr := doRequest(t, mux, http.MethodDelete, rosterURL("Basketball", "notinsignup@mergington.edu"))
	require.Equal(t, http.StatusNotFound, rr.Code)

	detail := errorDetail(t, rr)
	require.Contains(t, detail, "not found")
	require.NotEqual(t, "Activity not found", detail)
}

func TestUnregisterThenSignupAgain(t *testing.T) {
	mux := newTestMux(t)
	email := "testuser@mergington.edu"

	rr := doRequest(t, mux, http.MethodPost, rosterURL("Basketball", email))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(t, mux, http.MethodDelete, rosterURL("Basketball", email))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(t, mux, http.MethodPost, rosterURL("Basketball", email))
	require.Equal(t, http.StatusOK, rr.Code)

	directory := getDirectory(t, mux)
	require.Contains(t, directory["Basketball"].Participants, email)
}

func TestArtStudioRosterGrowsInOrder(t *testing.T) {
	mux := newTestMux(t)

	directory := getDirectory(t, mux)
	require.Len(t, directory["Art Studio"].Participants, 2)

	rr := doRequest(t, mux, http.MethodPost, rosterURL("Art Studio", "newart@mergington.edu"))
	require.Equal(t, http.StatusOK, rr.Code)

	directory = getDirectory(t, mux)
	require.Equal(t,
		[]string{"alex@mergington.edu", "isabella@mergington.edu", "newart@mergington.edu"},
		directory["Art Studio"].Participants,
	)
}

func TestRosterMethodNotAllowed(t *testing.T) {
	mux := newTestMux(t)

	rr := doRequest(t, mux, http.MethodGet, rosterURL("Basketball", "student@mergington.edu"))
	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestUnknownRosterEndpoint(t *testing.T) {
	mux := newTestMux(t)

	rr := doRequest(t, mux, http.MethodPost, "/activities/Basketball/other?email=student@mergington.edu")
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHealthz(t *testing.T) {
	mux := newTestMux(t)

	rr := doRequest(t, mux, http.MethodGet, "/healthz")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "ok", rr.Body.String())
}
