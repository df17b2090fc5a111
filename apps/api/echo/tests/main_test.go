package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	. "github.com/stephaniewilkinson/siskiyou/apps/api/echo"
	"github.com/stephaniewilkinson/siskiyou/core"
	"github.com/stephaniewilkinson/siskiyou/core/news"
	"github.com/stephaniewilkinson/siskiyou/core/user"
	emailsvc "github.com/stephaniewilkinson/siskiyou/services/email"
	inmemdb "github.com/stephaniewilkinson/siskiyou/storage/database/inmem"
)

var (
	conf    *core.Config
	app     Server
	usrRepo user.Repository
	usrSvc  user.Service
	newsSvc *news.Service
	mailSvc *emailsvc.ConsoleService

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errForbidden    = httpErr{Error: "permission denied"}
	errNotFound     = httpErr{Error: "not found"}
)

// setup rebuilds the whole stack on the in-memory repo; each test gets
// a clean slate.
func setup(t *testing.T, items ...news.NewsItem) {
	t.Helper()

	conf = &core.Config{
		AppName:          "Siskiyou",
		Env:              "TEST",
		TestMode:         true,
		SecretKey:        "secret",
		DefaultFromEmail: "noreply@siskiyouschool.org",
		Server: core.ServerConfig{
			JWTExpirationDelta: time.Hour,
			ShutdownTimeout:    time.Second,
		},
		School: core.SchoolConfig{
			Name:        "Siskiyou School",
			EmailDomain: "@siskiyouschool.org",
			AdminEmails: []string{"what.happens@gmail.com"},
		},
	}

	usrRepo = inmemdb.NewUserRepository(inmemdb.NewDB())
	resolver := user.NewResolver(conf.School)
	mailSvc = emailsvc.NewConsoleServiceMock(conf)
	usrSvc = user.NewServiceMock(usrRepo, resolver, mailSvc, testLogger{t})
	newsSvc = news.NewService(news.NewStore(items...))

	validate, translator := core.NewValidator()
	user.RegisterValidators(validate, translator)
	news.RegisterValidators(validate, translator)

	app = NewServer(
		&Options{DisableReqLogs: true},
		func() {}, /* shutdown */
		&Deps{
			Conf:       conf,
			Logger:     testLogger{t},
			UserSvc:    usrSvc,
			NewsSvc:    newsSvc,
			Validate:   validate,
			Translator: translator,
		},
	)
}

// createUser seeds a user record directly in the repo.
func createUser(t *testing.T, firstName, lastName, email, role string, approved bool, subs ...string) user.User {
	t.Helper()

	now := time.Now().UTC()
	usr := user.User{
		ID:            email, // deterministic ids keep tests readable
		FirstName:     firstName,
		LastName:      lastName,
		Email:         email,
		Role:          role,
		IsActive:      true,
		IsApproved:    approved,
		Subscriptions: subs,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := usr.SetPassword("Pa55word"); err != nil {
		t.Fatalf("SetPassword(): %v", err)
	}
	usr, err := usrRepo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser(): %v", err)
	}
	return usr
}

type testLogger struct{ t *testing.T }

func (l testLogger) Debug(msg string, args ...interface{}) { l.t.Logf("DEBUG: %s %v", msg, args) }
func (l testLogger) Info(msg string, args ...interface{})  { l.t.Logf("INFO: %s %v", msg, args) }
func (l testLogger) Warn(msg string, args ...interface{})  { l.t.Logf("WARN: %s %v", msg, args) }
func (l testLogger) Error(msg string, args ...interface{}) { l.t.Logf("ERROR: %s %v", msg, args) }
func (l testLogger) Fatal(msg string, args ...interface{}) { l.t.Fatalf("FATAL: %s %v", msg, args) }

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	claims := GetUserClaims(conf, usr)
	token, err := GenerateToken(conf, claims)
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func do(tt httpTest) *httptest.ResponseRecorder {
	method := tt.method
	if method == "" {
		method = http.MethodGet
	}
	req, rec := newAuthRequest(method, tt.path, tt.token, tt.body)
	app.ServeHTTP(rec, req)
	return rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ObjectsAreEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
}
