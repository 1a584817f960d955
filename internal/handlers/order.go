package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mswiatek/web_shop/internal/logging"
	"github.com/mswiatek/web_shop/internal/middleware/auth"
	"github.com/mswiatek/web_shop/internal/models"
	"github.com/mswiatek/web_shop/internal/mykafka"
	"github.com/mswiatek/web_shop/internal/repo"
	"github.com/mswiatek/web_shop/internal/util"
)

type OrderHandler struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
}

type orderItemResponse struct {
	ID        uint    `json:"id"`
	ProductID uint    `json:"product_id"`
	Quantity  float64 `json:"quantity"`
	Total     float64 `json:"total"`
}

type orderResponse struct {
	*models.Order
	Items []orderItemResponse `json:"items"`
	Total float64             `json:"total"`
}

func newOrderResponse(order *models.Order) orderResponse {
	items := make([]orderItemResponse, len(order.Items))
	for i := range order.Items {
		it := &order.Items[i]
		items[i] = orderItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Total:     it.Total(),
		}
	}
	return orderResponse{Order: order, Items: items, Total: repo.OrderTotal(order)}
}

// CreateOrder is the checkout entry point: bind, validate, persist. The
// validation step runs before any write, and a failed validation reports
// every violated field at once.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	var req struct {
		FirstName      string `json:"first_name"`
		LastName       string `json:"last_name"`
		DeliveryMethod int    `json:"delivery_method"`
		PaymentMethod  int    `json:"payment_method"`
		Country        string `json:"country"`
		City           string `json:"city"`
		Street         string `json:"street"`
		HouseNumber    string `json:"house_number"`
		ZipCode        string `json:"zip_code"`
		PhoneNumber    string `json:"phone_number"`
		Email          string `json:"email"`
		Items          []struct {
			ProductID uint    `json:"product_id"`
			Quantity  float64 `json:"quantity"`
		} `json:"items"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	userID := auth.UserID(c)
	order := models.Order{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		DeliveryMethod: req.DeliveryMethod,
		PaymentMethod:  req.PaymentMethod,
		Country:        req.Country,
		City:           req.City,
		Street:         req.Street,
		HouseNumber:    req.HouseNumber,
		ZipCode:        req.ZipCode,
		PhoneNumber:    req.PhoneNumber,
		Email:          req.Email,
	}
	if userID != 0 {
		order.UserID = &userID
	}
	for _, it := range req.Items {
		order.Items = append(order.Items, models.OrderProduct{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}

	created, err := h.Repo.CreateOrder(ctx, &order)
	if err != nil {
		l.Warn("create_order_failed", "error", err)
		return httpError(err)
	}

	// reload with products so totals can be derived
	created, err = h.Repo.GetOrder(ctx, created.ID)
	if err != nil {
		return httpError(err)
	}

	publish(c, h.Producer, "order_events", strconv.Itoa(int(created.ID)), map[string]any{
		"type":    "order_created",
		"orderID": created.ID,
		"userID":  userID,
		"total":   repo.OrderTotal(created),
	})
	l.Info("create_order_success", "order_id", created.ID)
	return c.JSON(http.StatusCreated, newOrderResponse(created))
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_order")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	order, err := h.Repo.GetOrder(ctx, id)
	if err != nil {
		l.Warn("get_order_failed", "id", id, "error", err)
		return httpError(err)
	}

	role, _ := c.Get("role").(string)
	if role != "admin" {
		userID := auth.UserID(c)
		if order.UserID == nil || *order.UserID != userID {
			return echo.NewHTTPError(http.StatusForbidden, "not your order")
		}
	}

	return c.JSON(http.StatusOK, newOrderResponse(order))
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_orders")

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	orders, err := h.Repo.ListOrders(ctx, auth.UserID(c), offset, limit)
	if err != nil {
		l.Error("list_orders_failed", "error", err)
		return httpError(err)
	}

	resp := make([]orderResponse, len(orders))
	for i := range orders {
		resp[i] = newOrderResponse(&orders[i])
	}
	return c.JSON(http.StatusOK, resp)
}
