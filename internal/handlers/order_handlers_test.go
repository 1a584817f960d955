package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mswiatek/web_shop/internal/models"
)

func checkoutBody(productID uint, quantity float64) map[string]any {
	return map[string]any{
		"first_name":      "Jan",
		"last_name":       "Kowalski",
		"delivery_method": models.DeliveryCourier,
		"payment_method":  models.PaymentCard,
		"country":         "Poland",
		"city":            "Warsaw",
		"street":          "Marszalkowska",
		"house_number":    "1",
		"zip_code":        "00950",
		"phone_number":    "1234567890",
		"email":           "jan@example.com",
		"items": []map[string]any{
			{"product_id": productID, "quantity": quantity},
		},
	}
}

func TestCreateOrder(t *testing.T) {
	env := newTestEnv(t)
	prod := env.seedProduct("test_name", 19.99)
	user := env.seedUser("jan")

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/orders", checkoutBody(prod.ID, 3))
	asLoggedIn(c, user.ID, "user")
	require.NoError(t, env.O.CreateOrder(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		ID    uint    `json:"id"`
		Total float64 `json:"total"`
		Items []struct {
			ProductID uint    `json:"product_id"`
			Total     float64 `json:"total"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotZero(t, resp.ID)
	require.InDelta(t, 59.97, resp.Total, 1e-9)
	require.Len(t, resp.Items, 1)
	require.Equal(t, prod.ID, resp.Items[0].ProductID)
}

func TestCreateOrder_ValidationReportsAllFields(t *testing.T) {
	env := newTestEnv(t)
	prod := env.seedProduct("test_name", 10)
	user := env.seedUser("jan")

	body := checkoutBody(prod.ID, 1)
	body["email"] = ""
	body["phone_number"] = "12ab"
	body["zip_code"] = ""

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/orders", body)
	asLoggedIn(c, user.ID, "user")

	err := env.O.CreateOrder(c)
	require.Error(t, err)
	require.Equal(t, http.StatusBadRequest, httpCode(t, err))

	// nothing persisted
	var orders int64
	require.NoError(t, env.DB.Model(&models.Order{}).Count(&orders).Error)
	require.Zero(t, orders)
}

func TestGetOrder_OwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	prod := env.seedProduct("test_name", 10)
	owner := env.seedUser("owner")
	stranger := env.seedUser("stranger")

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/orders", checkoutBody(prod.ID, 1))
	asLoggedIn(c, owner.ID, "user")
	require.NoError(t, env.O.CreateOrder(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	recGet, cGet := env.doJSONRequest(http.MethodGet, "/api/v1/orders/1", nil)
	cGet.SetParamNames("id")
	cGet.SetParamValues(strconv.Itoa(int(created.ID)))
	asLoggedIn(cGet, owner.ID, "user")
	require.NoError(t, env.O.GetOrder(cGet))
	require.Equal(t, http.StatusOK, recGet.Code)

	_, cForbidden := env.doJSONRequest(http.MethodGet, "/api/v1/orders/1", nil)
	cForbidden.SetParamNames("id")
	cForbidden.SetParamValues(strconv.Itoa(int(created.ID)))
	asLoggedIn(cForbidden, stranger.ID, "user")
	err := env.O.GetOrder(cForbidden)
	require.Error(t, err)
	require.Equal(t, http.StatusForbidden, httpCode(t, err))

	// admins may read any order
	recAdmin, cAdmin := env.doJSONRequest(http.MethodGet, "/api/v1/orders/1", nil)
	cAdmin.SetParamNames("id")
	cAdmin.SetParamValues(strconv.Itoa(int(created.ID)))
	asLoggedIn(cAdmin, stranger.ID, "admin")
	require.NoError(t, env.O.GetOrder(cAdmin))
	require.Equal(t, http.StatusOK, recAdmin.Code)
}
