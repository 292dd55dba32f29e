package handlers_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"people-service/application/serviceimpl"
	"people-service/domain/dto"
	"people-service/domain/repositories"
	"people-service/infrastructure/postgres"
	"people-service/interfaces/api/handlers"
	"people-service/interfaces/api/middleware"
	"people-service/interfaces/api/routes"
	"people-service/mocks"
	"people-service/pkg/avatar"
	"people-service/pkg/logger"
	"people-service/pkg/utils"
)

func TestMain(m *testing.M) {
	_ = logger.Init(filepath.Join(os.TempDir(), "people-service-test-logs"), false)
	os.Exit(m.Run())
}

func testAvatars() *avatar.Generator {
	return avatar.NewGenerator(avatar.Config{
		BaseURL:     "https://robohash.org/",
		ImageSuffix: ".png",
		Set:         "set2",
		Size:        "200x200",
		DefaultSeed: "default",
	})
}

func newTestApp(repo repositories.PersonRepository, db *gorm.DB) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Use(middleware.RequestIDMiddleware())

	svc := serviceimpl.NewPersonService(repo, testAvatars())
	h := handlers.NewHandlers(
		&handlers.Services{PersonService: svc},
		&handlers.Infrastructure{DB: db},
	)
	routes.SetupRoutes(app, h)
	return app
}

func newSQLiteApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "people.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return newTestApp(postgres.NewPersonRepository(db), db)
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func decodePerson(t *testing.T, data []byte) dto.PersonResponse {
	t.Helper()
	var p dto.PersonResponse
	require.NoError(t, json.Unmarshal(data, &p))
	return p
}

func TestPeopleLifecycle(t *testing.T) {
	app := newSQLiteApp(t)

	status, body := do(t, app, http.MethodPost, "/people",
		`{"firstName":"John","lastName":"Doe","gender":"male","age":30}`)
	require.Equal(t, http.StatusOK, status)
	created := decodePerson(t, body)
	require.Equal(t, "John", *created.FirstName)
	require.Equal(t, 30, *created.Age)
	require.Equal(t, "https://robohash.org/JohnDoe.png?set=set2&size=200x200", created.AvatarImageURL)

	path := "/people/" + created.ID.String()

	status, body = do(t, app, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, created, decodePerson(t, body))

	// Age is absent so it is cleared
	status, body = do(t, app, http.MethodPut, path, `{"firstName":"Jane","lastName":"Doe","gender":"female"}`)
	require.Equal(t, http.StatusOK, status)
	updated := decodePerson(t, body)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, "Jane", *updated.FirstName)
	require.Nil(t, updated.Age)
	require.Equal(t, "https://robohash.org/JaneDoe.png?set=set2&size=200x200", updated.AvatarImageURL)

	status, body = do(t, app, http.MethodGet, "/people", "")
	require.Equal(t, http.StatusOK, status)
	var all []dto.PersonResponse
	require.NoError(t, json.Unmarshal(body, &all))
	require.Len(t, all, 1)
	require.Equal(t, updated, all[0])

	status, body = do(t, app, http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, body)

	status, _ = do(t, app, http.MethodDelete, path, "")
	require.Equal(t, http.StatusNotFound, status)

	status, _ = do(t, app, http.MethodGet, path, "")
	require.Equal(t, http.StatusNotFound, status)
}

func TestGetAllPeople_EmptyIsArray(t *testing.T) {
	app := newSQLiteApp(t)

	status, body := do(t, app, http.MethodGet, "/people", "")
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `[]`, string(body))
}

func TestAddPerson_IgnoresClientAvatar(t *testing.T) {
	app := newSQLiteApp(t)

	status, body := do(t, app, http.MethodPost, "/people",
		`{"firstName":"Ada","avatarImageUrl":"https://evil.example.com/x.png"}`)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "https://robohash.org/Ada.png?set=set2&size=200x200", decodePerson(t, body).AvatarImageURL)
}

func TestAddPerson_EmptyBodyUsesDefaultSeed(t *testing.T) {
	app := newSQLiteApp(t)

	status, body := do(t, app, http.MethodPost, "/people", `{}`)
	require.Equal(t, http.StatusOK, status)
	p := decodePerson(t, body)
	require.Nil(t, p.FirstName)
	require.Equal(t, "https://robohash.org/default.png?set=set2&size=200x200", p.AvatarImageURL)
}

func TestAddPerson_MalformedJSON(t *testing.T) {
	app := newSQLiteApp(t)

	status, body := do(t, app, http.MethodPost, "/people", `{"firstName":`)
	require.Equal(t, http.StatusBadRequest, status)

	var resp utils.Response
	require.NoError(t, json.Unmarshal(body, &resp))
	require.False(t, resp.Success)
}

func TestPersonRoutes_UnknownID(t *testing.T) {
	app := newSQLiteApp(t)
	missing := "/people/5b6c0d2e-8a43-4a8e-9b8e-0b8f6d1f2a11"

	for _, tc := range []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, missing, ""},
		{http.MethodPut, missing, `{"firstName":"X"}`},
		{http.MethodDelete, missing, ""},
		{http.MethodGet, "/people/not-a-uuid", ""},
		{http.MethodPut, "/people/not-a-uuid", `{"firstName":"X"}`},
		{http.MethodDelete, "/people/not-a-uuid", ""},
	} {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			status, body := do(t, app, tc.method, tc.path, tc.body)
			require.Equal(t, http.StatusNotFound, status)

			var resp utils.Response
			require.NoError(t, json.Unmarshal(body, &resp))
			require.Contains(t, resp.Message, "Person not found with id")
		})
	}
}

func TestGetAllPeople_StoreFailureIs500(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockPersonRepository(ctrl)
	repo.EXPECT().FindAll(gomock.Any()).Return(nil, errors.New("connection refused"))

	app := newTestApp(repo, nil)

	status, body := do(t, app, http.MethodGet, "/people", "")
	require.Equal(t, http.StatusInternalServerError, status)
	require.NotContains(t, string(body), "connection refused")
}

func TestHealth(t *testing.T) {
	app := newSQLiteApp(t)

	status, _ := do(t, app, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, status)

	status, body := do(t, app, http.MethodGet, "/health/detailed", "")
	require.Equal(t, http.StatusOK, status)

	var resp handlers.DetailedHealthResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	require.Equal(t, "healthy", resp.Status)
	require.Equal(t, "ok", resp.Components["database"].Status)
	require.Equal(t, "unavailable", resp.Components["redis"].Status)
}

func TestRequestIDHeader(t *testing.T) {
	app := newSQLiteApp(t)

	req := httptest.NewRequest(http.MethodGet, "/people", nil)
	req.Header.Set(fiber.HeaderXRequestID, "abc-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, "abc-123", resp.Header.Get(fiber.HeaderXRequestID))
}
