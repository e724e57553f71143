package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/jomadlcrz/class-schedule-backend/internal/config"
	"github.com/jomadlcrz/class-schedule-backend/internal/handler"
	"github.com/jomadlcrz/class-schedule-backend/internal/model"
	"github.com/jomadlcrz/class-schedule-backend/internal/repository/inmem"
	"github.com/jomadlcrz/class-schedule-backend/internal/router"
	"github.com/jomadlcrz/class-schedule-backend/internal/service"
	"github.com/jomadlcrz/class-schedule-backend/internal/validator"
)

const testSecret = "router-test-secret"

func TestMain(m *testing.M) {
	validator.Setup()
	m.Run()
}

func newTestRouter() *gin.Engine {
	cfg := &config.Config{
		GinMode:        gin.TestMode,
		JWTSecret:      testSecret,
		CourseCacheTTL: time.Minute,
	}

	log := zerolog.Nop()
	courseService := service.NewCourseService(
		inmem.NewCourseStore(),
		service.NewMemoryListCache(cfg.CourseCacheTTL),
		log,
	)
	preferenceService := service.NewPreferenceService(inmem.NewPreferenceStore(), log)

	handlers := &router.Handlers{
		Course:  handler.NewCourseHandler(courseService, log),
		Session: handler.NewSessionHandler(preferenceService, log),
	}

	return router.SetupRouter(service.NewDevVerifier(cfg.JWTSecret), handlers, cfg)
}

func token(t *testing.T, email, name string) string {
	t.Helper()
	tok, err := service.GenerateDevToken(testSecret, service.Identity{Email: email, Name: name}, time.Hour)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return tok
}

func doJSON(t *testing.T, r *gin.Engine, method, path, bearer, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const draftCS101 = `{"courseCode":"CS101","title":"Intro to Computing","units":3,"days":"MWF","time":"09:00 - 10:30","room":"A-101","instructor":"Dr. Reyes"}`

func TestCoursesRequireAuth(t *testing.T) {
	r := newTestRouter()

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/courses"},
		{http.MethodPost, "/api/courses"},
		{http.MethodPut, "/api/courses/some-id"},
		{http.MethodDelete, "/api/courses/some-id"},
		{http.MethodGet, "/api/me"},
		{http.MethodGet, "/api/preferences"},
	} {
		w := doJSON(t, r, tc.method, tc.path, "", "")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without credential: status = %d, want 401", tc.method, tc.path, w.Code)
		}
	}
}

func TestCourseLifecycle(t *testing.T) {
	r := newTestRouter()
	alice := token(t, "alice@example.com", "Alice")

	// Create. The draft's ownerEmail, if supplied, is ignored.
	body := strings.TrimSuffix(draftCS101, "}") + `,"ownerEmail":"mallory@example.com"}`
	w := doJSON(t, r, http.MethodPost, "/api/courses", alice, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body %s", w.Code, w.Body.String())
	}
	var created model.Course
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.OwnerEmail != "alice@example.com" {
		t.Errorf("owner = %q, want the caller's email", created.OwnerEmail)
	}

	// List.
	w = doJSON(t, r, http.MethodGet, "/api/courses", alice, "")
	if w.Code != http.StatusOK {
		t.Fatalf("list: status = %d", w.Code)
	}
	var listed []model.Course
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != created.ID {
		t.Fatalf("expected the created course in the list, got %+v", listed)
	}

	// Duplicate code.
	w = doJSON(t, r, http.MethodPost, "/api/courses", alice,
		`{"courseCode":"CS101","title":"Another Title","units":3,"days":"TTh","time":"13:00 - 14:30","room":"B-202","instructor":"Dr. Cruz"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate create: status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Course Code already exists") {
		t.Errorf("unexpected conflict body %s", w.Body.String())
	}

	// Update.
	w = doJSON(t, r, http.MethodPut, "/api/courses/"+created.ID, alice,
		`{"courseCode":"CS101","title":"Intro to Computing","units":4,"days":"MWF","time":"10:00 - 11:30","room":"A-101","instructor":"Dr. Reyes"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update: status = %d, body %s", w.Code, w.Body.String())
	}
	var updated model.Course
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatal(err)
	}
	if updated.Units != 4 || updated.Time != "10:00 - 11:30" {
		t.Errorf("update not applied: %+v", updated)
	}

	// Delete.
	w = doJSON(t, r, http.MethodDelete, "/api/courses/"+created.ID, alice, "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete: status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Course deleted successfully") {
		t.Errorf("unexpected delete body %s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodDelete, "/api/courses/"+created.ID, alice, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("delete absent: status = %d, want 404", w.Code)
	}
}

func TestForeignCourseForbidden(t *testing.T) {
	r := newTestRouter()
	alice := token(t, "alice@example.com", "Alice")
	bob := token(t, "bob@example.com", "Bob")

	w := doJSON(t, r, http.MethodPost, "/api/courses", alice, draftCS101)
	if w.Code != http.StatusCreated {
		t.Fatal(w.Body.String())
	}
	var created model.Course
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}

	w = doJSON(t, r, http.MethodPut, "/api/courses/"+created.ID, bob, draftCS101)
	if w.Code != http.StatusForbidden {
		t.Errorf("foreign update: status = %d, want 403", w.Code)
	}
	w = doJSON(t, r, http.MethodDelete, "/api/courses/"+created.ID, bob, "")
	if w.Code != http.StatusForbidden {
		t.Errorf("foreign delete: status = %d, want 403", w.Code)
	}

	// Bob's list does not leak Alice's course.
	w = doJSON(t, r, http.MethodGet, "/api/courses", bob, "")
	var listed []model.Course
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatal(err)
	}
	if len(listed) != 0 {
		t.Errorf("expected empty list for bob, got %+v", listed)
	}
}

func TestValidationErrors(t *testing.T) {
	r := newTestRouter()
	alice := token(t, "alice@example.com", "Alice")

	// Units out of range.
	w := doJSON(t, r, http.MethodPost, "/api/courses", alice,
		`{"courseCode":"CS101","title":"Intro","units":120,"days":"MWF","time":"09:00 - 10:30","room":"A-101","instructor":"Dr. Reyes"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("units=120: status = %d, want 400", w.Code)
	}

	// End not after start.
	w = doJSON(t, r, http.MethodPost, "/api/courses", alice,
		`{"courseCode":"CS101","title":"Intro","units":3,"days":"MWF","time":"10:00 - 10:00","room":"A-101","instructor":"Dr. Reyes"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("equal endpoints: status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "End time must be later than start time") {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}

func TestListSortParams(t *testing.T) {
	r := newTestRouter()
	alice := token(t, "alice@example.com", "Alice")

	seed := []string{
		`{"courseCode":"C1","title":"Late","units":3,"days":"MWF","time":"13:00 - 14:00","room":"R1","instructor":"X"}`,
		`{"courseCode":"C2","title":"Early","units":3,"days":"MWF","time":"09:00 - 10:00","room":"R2","instructor":"Y"}`,
		`{"courseCode":"C3","title":"Middle","units":3,"days":"MWF","time":"11:00 - 12:00","room":"R3","instructor":"Z"}`,
	}
	for _, body := range seed {
		if w := doJSON(t, r, http.MethodPost, "/api/courses", alice, body); w.Code != http.StatusCreated {
			t.Fatalf("seed: %s", w.Body.String())
		}
	}

	w := doJSON(t, r, http.MethodGet, "/api/courses?sort=time&dir=asc", alice, "")
	if w.Code != http.StatusOK {
		t.Fatal(w.Body.String())
	}
	var listed []model.Course
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatal(err)
	}
	starts := []string{"09:00", "11:00", "13:00"}
	for i, want := range starts {
		if !strings.HasPrefix(listed[i].Time, want) {
			t.Errorf("position %d: time = %q, want start %q", i, listed[i].Time, want)
		}
	}

	w = doJSON(t, r, http.MethodGet, "/api/courses?sort=ownerEmail", alice, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid sort key: status = %d, want 400", w.Code)
	}
}

func TestSessionEndpoints(t *testing.T) {
	r := newTestRouter()
	alice := token(t, "alice@example.com", "Alice")

	w := doJSON(t, r, http.MethodGet, "/api/me", alice, "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "alice@example.com") {
		t.Fatalf("me: status = %d, body %s", w.Code, w.Body.String())
	}

	// Default preference.
	w = doJSON(t, r, http.MethodGet, "/api/preferences", alice, "")
	if w.Code != http.StatusOK {
		t.Fatal(w.Body.String())
	}
	var pref model.Preference
	if err := json.Unmarshal(w.Body.Bytes(), &pref); err != nil {
		t.Fatal(err)
	}
	if pref.SortKey != "time" || pref.Direction != "asc" {
		t.Errorf("default preference = %+v, want time/asc", pref)
	}

	// Save and reload.
	w = doJSON(t, r, http.MethodPut, "/api/preferences", alice, `{"sortKey":"title","direction":"desc"}`)
	if w.Code != http.StatusOK {
		t.Fatal(w.Body.String())
	}
	w = doJSON(t, r, http.MethodGet, "/api/preferences", alice, "")
	if err := json.Unmarshal(w.Body.Bytes(), &pref); err != nil {
		t.Fatal(err)
	}
	if pref.SortKey != "title" || pref.Direction != "desc" {
		t.Errorf("saved preference = %+v, want title/desc", pref)
	}

	// Rejected sort key.
	w = doJSON(t, r, http.MethodPut, "/api/preferences", alice, `{"sortKey":"ownerEmail","direction":"asc"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid preference: status = %d, want 400", w.Code)
	}
}

func TestPublicEndpoints(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodGet, "/health", "", "")
	if w.Code != http.StatusOK {
		t.Errorf("health: status = %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/timeslots", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("timeslots: status = %d", w.Code)
	}
	var body struct {
		Slots []string `json:"slots"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Slots) != 29 || body.Slots[0] != "07:00" || body.Slots[28] != "21:00" {
		t.Errorf("unexpected slot grid %v", body.Slots)
	}
}
