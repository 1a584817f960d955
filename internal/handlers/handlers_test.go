package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mswiatek/web_shop/internal/imagestore"
	"github.com/mswiatek/web_shop/internal/models"
	"github.com/mswiatek/web_shop/internal/repo"
)

type testEnv struct {
	T      *testing.T
	E      *echo.Echo
	DB     *gorm.DB
	Repo   *repo.GormRepo
	Images *imagestore.Store
	P      *ProductHandler
	C      *CategoryHandler
	O      *OrderHandler
	Op     *OpinionHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(
		sqlite.Open(":memory:?_pragma=foreign_keys(1)"),
		&gorm.Config{TranslateError: true},
	)
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.User{},
		&models.Order{},
		&models.OrderProduct{},
		&models.Opinion{},
	); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	r := repo.New(db)
	images := imagestore.New(t.TempDir())

	return &testEnv{
		T:      t,
		E:      echo.New(),
		DB:     db,
		Repo:   r,
		Images: images,
		P:      &ProductHandler{Repo: r, Images: images},
		C:      &CategoryHandler{Repo: r},
		O:      &OrderHandler{Repo: r},
		Op:     &OpinionHandler{Repo: r},
	}
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func (env *testEnv) doFormRequest(method, path string, form url.Values) (*httptest.ResponseRecorder, echo.Context) {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func (env *testEnv) doMultipartRequest(method, path, fileField, fileName string, content io.Reader, fields map[string]string) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(env.T, w.WriteField(k, v))
	}
	fw, err := w.CreateFormFile(fileField, fileName)
	require.NoError(env.T, err)
	_, err = io.Copy(fw, content)
	require.NoError(env.T, err)
	require.NoError(env.T, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func (env *testEnv) seedCategory(name string) *models.Category {
	env.T.Helper()
	cat := models.Category{Name: name}
	require.NoError(env.T, env.DB.Create(&cat).Error)
	return &cat
}

func (env *testEnv) seedProduct(name string, price float64) *models.Product {
	env.T.Helper()
	cat := env.seedCategory("category_for_" + name)
	prod := models.Product{
		CategoryID: cat.ID,
		Name:       name,
		ImagePath:  env.Images.DefaultPath(),
		Price:      price,
	}
	require.NoError(env.T, env.DB.Create(&prod).Error)
	return &prod
}

func (env *testEnv) seedUser(username string) *models.User {
	env.T.Helper()
	user := models.User{Username: username, Role: "user"}
	require.NoError(env.T, env.DB.Create(&user).Error)
	return &user
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	return he.Code
}

func asLoggedIn(c echo.Context, userID uint, role string) {
	c.Set("userID", userID)
	c.Set("role", role)
}
