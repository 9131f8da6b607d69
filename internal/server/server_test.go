package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"taskdeck/internal/task"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := OpenStore(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	return New(st, []byte("test-secret")).Router()
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		r = bytes.NewReader(data)
	} else {
		r = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

// signupAndLogin registers an account and returns its token and user id.
func signupAndLogin(t *testing.T, router *gin.Engine, email string) (token, userID string) {
	t.Helper()
	creds := map[string]string{"email": email, "password": "secret"}

	if w := doJSON(t, router, http.MethodPost, "/users", "", creds); w.Code != http.StatusCreated {
		t.Fatalf("signup: status %d: %s", w.Code, w.Body.String())
	}
	w := doJSON(t, router, http.MethodPost, "/auth/login", "", creds)
	if w.Code != http.StatusOK {
		t.Fatalf("login: status %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token  string `json:"token"`
		UserID string `json:"userId"`
	}
	decode(t, w, &resp)
	return resp.Token, resp.UserID
}

func TestCreateUser(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/users", "", map[string]string{"email": "a@b.com", "password": "secret"})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var user map[string]any
	decode(t, w, &user)
	if user["email"] != "a@b.com" || user["id"] == "" {
		t.Errorf("user = %v", user)
	}
	if _, leaked := user["password"]; leaked {
		t.Error("password must not appear in responses")
	}
}

func TestCreateUser_Validation(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/users", "", map[string]string{"email": "not-an-email", "password": "x"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad email: status = %d", w.Code)
	}
	w = doJSON(t, router, http.MethodPost, "/users", "", map[string]string{"email": "a@b.com", "password": ""})
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty password: status = %d", w.Code)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	router := newTestRouter(t)
	creds := map[string]string{"email": "a@b.com", "password": "secret"}

	if w := doJSON(t, router, http.MethodPost, "/users", "", creds); w.Code != http.StatusCreated {
		t.Fatalf("first signup: %d", w.Code)
	}
	w := doJSON(t, router, http.MethodPost, "/users", "", creds)
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate signup: status = %d, want 409", w.Code)
	}
}

func TestFindUsers(t *testing.T) {
	router := newTestRouter(t)
	signupAndLogin(t, router, "a@b.com")

	w := doJSON(t, router, http.MethodGet, "/users?email=a@b.com", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var users []map[string]any
	decode(t, w, &users)
	if len(users) != 1 || users[0]["email"] != "a@b.com" {
		t.Errorf("users = %v", users)
	}

	w = doJSON(t, router, http.MethodGet, "/users?email=nobody@b.com", "", nil)
	decode(t, w, &users)
	if len(users) != 0 {
		t.Errorf("unknown email must yield an empty array, got %v", users)
	}

	if w := doJSON(t, router, http.MethodGet, "/users", "", nil); w.Code != http.StatusBadRequest {
		t.Errorf("missing email query: status = %d", w.Code)
	}
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	router := newTestRouter(t)
	signupAndLogin(t, router, "a@b.com")

	w := doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]string{"email": "a@b.com", "password": "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong password: status = %d", w.Code)
	}
	w = doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]string{"email": "ghost@b.com", "password": "secret"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unknown email: status = %d", w.Code)
	}
}

func TestTasks_RequireAuth(t *testing.T) {
	router := newTestRouter(t)

	if w := doJSON(t, router, http.MethodGet, "/tasks", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d", w.Code)
	}
	if w := doJSON(t, router, http.MethodGet, "/tasks", "not-a-jwt", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: status = %d", w.Code)
	}
}

func TestTasks_CRUD(t *testing.T) {
	router := newTestRouter(t)
	token, userID := signupAndLogin(t, router, "a@b.com")

	// Create; the server mints the id and forces ownership and the
	// default priority.
	w := doJSON(t, router, http.MethodPost, "/tasks", token, map[string]any{"title": "buy milk", "userId": "spoofed"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status = %d: %s", w.Code, w.Body.String())
	}
	var created task.Task
	decode(t, w, &created)
	if created.ID == "" || created.UserID != userID {
		t.Errorf("created = %+v", created)
	}
	if created.Priority != task.PriorityMedium {
		t.Errorf("priority = %q, want medium default", created.Priority)
	}

	// List.
	w = doJSON(t, router, http.MethodGet, "/tasks?userId="+userID, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: status = %d", w.Code)
	}
	var tasks []task.Task
	decode(t, w, &tasks)
	if len(tasks) != 1 || tasks[0].ID != created.ID {
		t.Errorf("tasks = %v", tasks)
	}

	// Replace; createdAt stays immutable.
	updated := created
	updated.Title = "buy oat milk"
	updated.Completed = true
	updated.CreatedAt = 42
	w = doJSON(t, router, http.MethodPut, "/tasks/"+created.ID, token, updated)
	if w.Code != http.StatusOK {
		t.Fatalf("replace: status = %d: %s", w.Code, w.Body.String())
	}
	var replaced task.Task
	decode(t, w, &replaced)
	if replaced.Title != "buy oat milk" || !replaced.Completed {
		t.Errorf("replaced = %+v", replaced)
	}
	if replaced.CreatedAt != created.CreatedAt {
		t.Errorf("createdAt changed: %d -> %d", created.CreatedAt, replaced.CreatedAt)
	}

	// Delete.
	if w := doJSON(t, router, http.MethodDelete, "/tasks/"+created.ID, token, nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete: status = %d", w.Code)
	}
	if w := doJSON(t, router, http.MethodDelete, "/tasks/"+created.ID, token, nil); w.Code != http.StatusNotFound {
		t.Errorf("second delete: status = %d, want 404", w.Code)
	}
}

func TestTasks_EmptyTitleRejected(t *testing.T) {
	router := newTestRouter(t)
	token, _ := signupAndLogin(t, router, "a@b.com")

	w := doJSON(t, router, http.MethodPost, "/tasks", token, map[string]string{"title": "   "})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestTasks_OwnershipIsolation(t *testing.T) {
	router := newTestRouter(t)
	tokenA, idA := signupAndLogin(t, router, "a@b.com")
	tokenB, _ := signupAndLogin(t, router, "b@b.com")

	w := doJSON(t, router, http.MethodPost, "/tasks", tokenA, map[string]string{"title": "private"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d", w.Code)
	}
	var created task.Task
	decode(t, w, &created)

	// Another user's list does not contain it.
	w = doJSON(t, router, http.MethodGet, "/tasks", tokenB, nil)
	var tasks []task.Task
	decode(t, w, &tasks)
	if len(tasks) != 0 {
		t.Errorf("user B sees %v", tasks)
	}

	// Foreign records read as missing, not forbidden.
	created.Title = "stolen"
	if w := doJSON(t, router, http.MethodPut, "/tasks/"+created.ID, tokenB, created); w.Code != http.StatusNotFound {
		t.Errorf("foreign replace: status = %d, want 404", w.Code)
	}
	if w := doJSON(t, router, http.MethodDelete, "/tasks/"+created.ID, tokenB, nil); w.Code != http.StatusNotFound {
		t.Errorf("foreign delete: status = %d, want 404", w.Code)
	}

	// Querying someone else's scope is refused outright.
	if w := doJSON(t, router, http.MethodGet, "/tasks?userId="+idA, tokenB, nil); w.Code != http.StatusForbidden {
		t.Errorf("foreign scope query: status = %d, want 403", w.Code)
	}
}

func TestAuthRequired_RejectsForeignSignature(t *testing.T) {
	router := newTestRouter(t)
	signupAndLogin(t, router, "a@b.com")

	// A structurally valid JWT signed with a different secret.
	foreign := strings.Join([]string{
		"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9",
		"eyJzdWIiOiJ1c2VyLTEifQ",
		"c2lnbmF0dXJl",
	}, ".")
	if w := doJSON(t, router, http.MethodGet, "/tasks", foreign, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("foreign signature: status = %d, want 401", w.Code)
	}
}
