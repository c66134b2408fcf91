package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eventpilot/backend/auth"
	"github.com/eventpilot/backend/config"
	"github.com/eventpilot/backend/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAdmin    = "admin"
	testPassword = "s3cret-pass"
)

type testEnv struct {
	t      *testing.T
	db     database.Database
	router http.Handler
}

func testConfig() config.Config {
	return config.Config{
		Environment: "test",
		Auth: config.AuthSettings{
			AdminUsername: testAdmin,
			AdminPassword: testPassword,
			JWTSecret:     "jwt-secret-for-tests",
			SessionSecret: "cookie-secret-for-tests",
			SessionTTL:    time.Hour,
		},
		Upload: config.UploadSettings{MaxBytes: 1 << 20},
	}
}

func newTestEnv(t *testing.T, opts ...func(*router)) *testEnv {
	t.Helper()
	gdb, err := database.OpenSQLite("file::memory:")
	require.NoError(t, err)

	db := database.New(gdb)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { _ = db.Close() })

	cfg := testConfig()
	authenticator := auth.New(cfg.Auth, db.SessionRepo())
	opts = append([]func(*router){withConfig(cfg)}, opts...)

	return &testEnv{
		t:      t,
		db:     db,
		router: newRouter(db, authenticator, opts...),
	}
}

func (e *testEnv) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	e.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) login() string {
	e.t.Helper()
	rec := e.request(http.MethodPost, "/api/admin/login", map[string]any{
		"username": testAdmin,
		"password": testPassword,
	}, "")
	require.Equal(e.t, http.StatusOK, rec.Code, rec.Body.String())

	var resp LoginResponse
	require.NoError(e.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(e.t, resp.Token)
	return resp.Token
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(http.MethodGet, "/health", nil, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	t.Run("wrong password", func(t *testing.T) {
		rec := env.request(http.MethodPost, "/api/admin/login", map[string]any{
			"username": testAdmin,
			"password": "nope",
		}, "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid credentials", decode[MessageResponse](t, rec).Message)
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("unknown user", func(t *testing.T) {
		rec := env.request(http.MethodPost, "/api/admin/login", map[string]any{
			"username": "root",
			"password": testPassword,
		}, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		rec := env.request(http.MethodPost, "/api/admin/login", map[string]any{
			"username": testAdmin,
			"password": testPassword,
		}, "")
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decode[LoginResponse](t, rec)
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, AdminUser{Username: testAdmin, Role: auth.RoleAdmin}, resp.User)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, auth.CookieName, cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)
	})
}

func TestSessionCookieAndLogout(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(http.MethodPost, "/api/admin/login", map[string]any{
		"username": testAdmin,
		"password": testPassword,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	token := decode[LoginResponse](t, rec).Token
	cookie := rec.Result().Cookies()[0]

	req := httptest.NewRequest(http.MethodGet, "/api/admin/user", nil)
	req.AddCookie(cookie)
	cookieRec := httptest.NewRecorder()
	env.router.ServeHTTP(cookieRec, req)
	require.Equal(t, http.StatusOK, cookieRec.Code)
	assert.Equal(t, testAdmin, decode[AdminUser](t, cookieRec).Username)

	rec = env.request(http.MethodGet, "/api/admin/user", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.request(http.MethodPost, "/api/admin/logout", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = env.request(http.MethodGet, "/api/admin/user", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	venue := map[string]any{
		"name": "Hall", "address": "1 Main St", "city": "Austin", "state": "TX",
		"zipCode": "73301", "capacity": 100, "pricePerDay": 500,
	}

	routes := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/api/quotes", nil},
		{http.MethodGet, "/api/contact", nil},
		{http.MethodPost, "/api/venues", venue},
		{http.MethodPost, "/api/blog", map[string]any{"title": "x"}},
		{http.MethodDelete, "/api/gallery/00000000-0000-0000-0000-000000000000", nil},
		{http.MethodPost, "/api/upload", nil},
		{http.MethodGet, "/api/admin/user", nil},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			rec := env.request(rt.method, rt.path, rt.body, "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			rec = env.request(rt.method, rt.path, rt.body, "not-a-jwt")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}

	rec := env.request(http.MethodGet, "/api/venues", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]map[string]any](t, rec))
}

func TestContactScenario(t *testing.T) {
	env := newTestEnv(t)
	token := env.login()

	rec := env.request(http.MethodPost, "/api/contact", map[string]any{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"email":     "ada@example.com",
		"subject":   "Wedding",
		"message":   "We would like to plan a wedding.",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	created := decode[map[string]any](t, rec)
	assert.NotEmpty(t, created["id"])
	assert.Equal(t, "unread", created["status"])
	id := created["id"].(string)

	rec = env.request(http.MethodGet, "/api/contact", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 1)

	rec = env.request(http.MethodPatch, "/api/contact/"+id+"/status", map[string]any{"status": "read"}, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "read", decode[map[string]any](t, rec)["status"])

	rec = env.request(http.MethodPatch, "/api/contact/"+id+"/status", map[string]any{"status": "archived"}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.request(http.MethodDelete, "/api/contact/"+id, nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Contact message deleted successfully", decode[MessageResponse](t, rec).Message)

	rec = env.request(http.MethodDelete, "/api/contact/"+id, nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Contact message not found", decode[MessageResponse](t, rec).Message)
}

func TestValidationErrorBody(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(http.MethodPost, "/api/contact", map[string]any{
		"firstName": "Ada",
		"email":     "not-an-email",
	}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[ValidationErrorResponse](t, rec)
	assert.Equal(t, "Validation error", body.Message)

	fields := map[string]bool{}
	for _, issue := range body.Errors {
		fields[issue.Field] = true
		assert.NotEmpty(t, issue.Message)
	}
	assert.True(t, fields["email"])
	assert.True(t, fields["lastName"])
	assert.True(t, fields["subject"])
	assert.False(t, fields["firstName"])
}

func TestMalformedJSON(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBlogPublishedScenario(t *testing.T) {
	env := newTestEnv(t)
	token := env.login()

	post := func(slug string, published bool) map[string]any {
		return map[string]any{
			"title":     "Post " + slug,
			"slug":      slug,
			"excerpt":   "Short",
			"content":   "Long form content",
			"category":  "weddings",
			"tags":      []string{"tips"},
			"published": published,
		}
	}

	rec := env.request(http.MethodPost, "/api/blog", post("draft-post", false), token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	draft := decode[map[string]any](t, rec)
	assert.Nil(t, draft["publishedAt"])

	rec = env.request(http.MethodPost, "/api/blog", post("live-post", true), token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotNil(t, decode[map[string]any](t, rec)["publishedAt"])

	rec = env.request(http.MethodPost, "/api/blog", post("live-post", true), token)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.request(http.MethodGet, "/api/blog", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	posts := decode[[]map[string]any](t, rec)
	require.Len(t, posts, 1)
	assert.Equal(t, "live-post", posts[0]["slug"])

	rec = env.request(http.MethodGet, "/api/blog?published=false", nil, "")
	assert.Len(t, decode[[]map[string]any](t, rec), 1)

	rec = env.request(http.MethodGet, "/api/blog?published=false", nil, token)
	assert.Len(t, decode[[]map[string]any](t, rec), 2)

	rec = env.request(http.MethodGet, "/api/blog/live-post", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Post live-post", decode[map[string]any](t, rec)["title"])

	rec = env.request(http.MethodGet, "/api/blog/missing", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Blog post not found", decode[MessageResponse](t, rec).Message)

	rec = env.request(http.MethodPut, "/api/blog/"+draft["id"].(string), map[string]any{"published": true}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[map[string]any](t, rec)
	assert.Equal(t, true, updated["published"])
	assert.NotNil(t, updated["publishedAt"])

	rec = env.request(http.MethodGet, "/api/blog", nil, "")
	assert.Len(t, decode[[]map[string]any](t, rec), 2)

	rec = env.request(http.MethodDelete, "/api/blog/"+draft["id"].(string), nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.request(http.MethodDelete, "/api/blog/not-a-uuid", nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBlogDraftsHiddenWithoutAdmin(t *testing.T) {
	env := newTestEnv(t)
	token := env.login()

	for slug, published := range map[string]bool{"draft-one": false, "draft-two": false, "live": true} {
		rec := env.request(http.MethodPost, "/api/blog", map[string]any{
			"title": "Post " + slug, "slug": slug, "excerpt": "Short", "content": "Body",
			"category": "weddings", "published": published,
		}, token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	slugs := func(token string) []string {
		rec := env.request(http.MethodGet, "/api/blog?published=false", nil, token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var out []string
		for _, p := range decode[[]map[string]any](t, rec) {
			assert.Equal(t, true, p["published"])
			out = append(out, p["slug"].(string))
		}
		return out
	}

	assert.Equal(t, []string{"live"}, slugs(""))
	assert.Equal(t, []string{"live"}, slugs("not-a-jwt"))

	rec := env.request(http.MethodGet, "/api/blog?published=false", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 3)

	rec = env.request(http.MethodPost, "/api/admin/logout", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"live"}, slugs(token))
}

func TestQuoteStatusScenario(t *testing.T) {
	env := newTestEnv(t)
	token := env.login()

	rec := env.request(http.MethodPost, "/api/quotes", map[string]any{
		"eventType":     "wedding",
		"guestCount":    "101-200",
		"eventDate":     "2026-06-01",
		"budget":        "25k-50k",
		"name":          "Grace Hopper",
		"email":         "grace@example.com",
		"phone":         "555-0100",
		"services":      map[string]any{"planning": true, "lighting": true},
		"status":        "completed",
		"estimatedCost": 99,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	quote := decode[map[string]any](t, rec)
	assert.Equal(t, "pending", quote["status"])
	assert.Nil(t, quote["estimatedCost"])
	assert.Equal(t, "email", quote["contactMethod"])
	services := quote["services"].(map[string]any)
	assert.Equal(t, true, services["planning"])
	assert.Equal(t, false, services["rentals"])
	id := quote["id"].(string)

	rec = env.request(http.MethodPatch, "/api/quotes/"+id+"/status", map[string]any{
		"status":        "quoted",
		"estimatedCost": 12500.5,
	}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[map[string]any](t, rec)
	assert.Equal(t, "quoted", updated["status"])
	assert.Equal(t, "12500.50", updated["estimatedCost"])
	assert.Equal(t, "Grace Hopper", updated["name"])

	rec = env.request(http.MethodPatch, "/api/quotes/"+id+"/status", map[string]any{"status": "lost"}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.request(http.MethodPatch, "/api/quotes/"+id+"/status", map[string]any{}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.request(http.MethodGet, "/api/quotes/"+id, nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "quoted", decode[map[string]any](t, rec)["status"])

	rec = env.request(http.MethodPatch, "/api/quotes/6f1c1d4e-2b0a-4c55-9d43-1f3e5a7b9c01/status", map[string]any{"status": "quoted"}, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.request(http.MethodGet, "/api/quotes", nil, token)
	assert.Len(t, decode[[]map[string]any](t, rec), 1)
}

func TestMoneyKeepsTwoDecimalPlaces(t *testing.T) {
	env := newTestEnv(t)
	token := env.login()

	rec := env.request(http.MethodPost, "/api/quotes", map[string]any{
		"eventType": "gala", "guestCount": "50", "eventDate": "2026-09-12", "budget": "10k-25k",
		"name": "Ada", "email": "ada@example.com", "phone": "555-0101",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	id := decode[map[string]any](t, rec)["id"].(string)

	rec = env.request(http.MethodPatch, "/api/quotes/"+id+"/status", map[string]any{
		"status":        "quoted",
		"estimatedCost": "1500.00",
	}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "1500.00", decode[map[string]any](t, rec)["estimatedCost"])

	rec = env.request(http.MethodGet, "/api/quotes/"+id, nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1500.00", decode[map[string]any](t, rec)["estimatedCost"])

	for _, cost := range []any{"1500.005", json.Number("1500.005")} {
		rec = env.request(http.MethodPatch, "/api/quotes/"+id+"/status", map[string]any{
			"status":        "quoted",
			"estimatedCost": cost,
		}, token)
		require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		body := decode[ValidationErrorResponse](t, rec)
		require.Len(t, body.Errors, 1)
		assert.Equal(t, "estimatedCost", body.Errors[0].Field)
		assert.Equal(t, "Expected at most 2 decimal places", body.Errors[0].Message)
	}

	rec = env.request(http.MethodGet, "/api/quotes/"+id, nil, token)
	assert.Equal(t, "1500.00", decode[map[string]any](t, rec)["estimatedCost"])

	rec = env.request(http.MethodPost, "/api/venues", map[string]any{
		"name": "Hall", "address": "1 Main St", "city": "Austin", "state": "TX",
		"zipCode": "73301", "capacity": 100, "pricePerDay": 750,
	}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "750.00", decode[map[string]any](t, rec)["pricePerDay"])
}

func TestVenueSearch(t *testing.T) {
	env := newTestEnv(t)
	token := env.login()

	venues := []map[string]any{
		{"name": "Loft", "city": "Austin", "capacity": 40, "rating": 4.1, "suitableFor": []string{"corporate"}},
		{"name": "Barn", "city": "Austin", "capacity": 150, "rating": 4.8, "suitableFor": []string{"wedding"}},
		{"name": "Arena", "city": "Dallas", "capacity": 900, "rating": 3.9, "suitableFor": []string{"concert", "wedding"}},
		{"name": "Closed", "city": "Austin", "capacity": 120, "rating": 5, "available": false},
	}
	for _, v := range venues {
		v["address"] = "1 Main St"
		v["state"] = "TX"
		v["zipCode"] = "73301"
		v["pricePerDay"] = 1000
		rec := env.request(http.MethodPost, "/api/venues", v, token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	names := func(path string) []string {
		rec := env.request(http.MethodGet, path, nil, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var out []string
		for _, v := range decode[[]map[string]any](t, rec) {
			out = append(out, v["name"].(string))
		}
		return out
	}

	assert.Equal(t, []string{"Barn", "Loft", "Arena"}, names("/api/venues"))
	assert.Equal(t, []string{"Barn", "Loft"}, names("/api/venues?city=aus"))
	assert.Equal(t, []string{"Barn"}, names("/api/venues?capacity=101-200"))
	assert.Equal(t, []string{"Arena"}, names("/api/venues?capacity=500%2B"))
	assert.Equal(t, []string{"Barn", "Arena"}, names("/api/venues?eventType=wedding"))

	rec := env.request(http.MethodGet, "/api/venues?capacity=huge", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServicesActiveFilter(t *testing.T) {
	env := newTestEnv(t)
	token := env.login()

	for i, active := range []bool{true, false} {
		rec := env.request(http.MethodPost, "/api/services", map[string]any{
			"title":        []string{"Planning", "Retired"}[i],
			"description":  "Full service",
			"features":     []string{"a", "b"},
			"active":       active,
			"displayOrder": i,
		}, token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec := env.request(http.MethodGet, "/api/services", nil, "")
	assert.Len(t, decode[[]map[string]any](t, rec), 2)

	rec = env.request(http.MethodGet, "/api/services?active=true", nil, "")
	active := decode[[]map[string]any](t, rec)
	require.Len(t, active, 1)
	assert.Equal(t, "Planning", active[0]["title"])
	assert.Equal(t, "Calendar", active[0]["icon"])
}

func TestGallery(t *testing.T) {
	env := newTestEnv(t)
	token := env.login()

	for _, category := range []string{"weddings", "corporate"} {
		rec := env.request(http.MethodPost, "/api/gallery", map[string]any{
			"title":    "Photo",
			"imageUrl": "https://cdn.example.com/" + category + ".jpg",
			"category": category,
		}, token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec := env.request(http.MethodGet, "/api/gallery?category=weddings", nil, "")
	items := decode[[]map[string]any](t, rec)
	require.Len(t, items, 1)

	rec = env.request(http.MethodGet, "/api/gallery?category=all", nil, "")
	assert.Len(t, decode[[]map[string]any](t, rec), 2)

	rec = env.request(http.MethodDelete, "/api/gallery/"+items[0]["id"].(string), nil, token)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = env.request(http.MethodGet, "/api/gallery", nil, "")
	assert.Len(t, decode[[]map[string]any](t, rec), 1)
}

func TestPanicRecovery(t *testing.T) {
	handler := LogInternalServerErrors(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", decode[MessageResponse](t, rec).Message)
}
