package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mswiatek/web_shop/internal/models"
)

func (env *testEnv) postOpinion(productID, userID uint, body map[string]any) (int, error) {
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/products/1/opinions", body)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(productID)))
	asLoggedIn(c, userID, "user")
	if err := env.Op.CreateOpinion(c); err != nil {
		return 0, err
	}
	return rec.Code, nil
}

func TestCreateOpinion(t *testing.T) {
	env := newTestEnv(t)
	prod := env.seedProduct("test_name", 10)
	user := env.seedUser("jan")

	code, err := env.postOpinion(prod.ID, user.ID, map[string]any{"rating": "4", "content": "good"})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, code)
}

func TestCreateOpinion_SecondReviewConflicts(t *testing.T) {
	env := newTestEnv(t)
	prod := env.seedProduct("test_name", 10)
	jan := env.seedUser("jan")
	anna := env.seedUser("anna")

	_, err := env.postOpinion(prod.ID, jan.ID, map[string]any{"rating": "4"})
	require.NoError(t, err)

	_, err = env.postOpinion(prod.ID, jan.ID, map[string]any{"rating": "2"})
	require.Error(t, err)
	require.Equal(t, http.StatusConflict, httpCode(t, err))

	code, err := env.postOpinion(prod.ID, anna.ID, map[string]any{"rating": "5"})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, code)
}

func TestCreateOpinion_RatingDefaultsToFive(t *testing.T) {
	env := newTestEnv(t)
	prod := env.seedProduct("test_name", 10)
	user := env.seedUser("jan")

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/products/1/opinions", map[string]any{"content": "ok"})
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(prod.ID)))
	asLoggedIn(c, user.ID, "user")
	require.NoError(t, env.Op.CreateOpinion(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.Opinion
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "5", resp.Rating)
}

func TestCreateOpinion_RejectsLongRating(t *testing.T) {
	env := newTestEnv(t)
	prod := env.seedProduct("test_name", 10)
	user := env.seedUser("jan")

	_, err := env.postOpinion(prod.ID, user.ID, map[string]any{"rating": "10"})
	require.Error(t, err)
	require.Equal(t, http.StatusBadRequest, httpCode(t, err))
}

func TestListOpinions(t *testing.T) {
	env := newTestEnv(t)
	prod := env.seedProduct("test_name", 10)
	user := env.seedUser("jan")

	_, err := env.postOpinion(prod.ID, user.ID, map[string]any{"rating": "3"})
	require.NoError(t, err)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/products/1/opinions", nil)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(prod.ID)))
	require.NoError(t, env.Op.ListOpinions(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []models.Opinion
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	require.Equal(t, "3", resp[0].Rating)
}
