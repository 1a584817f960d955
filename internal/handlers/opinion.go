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
)

type OpinionHandler struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
}

func (h *OpinionHandler) ListOpinions(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ops, err := h.Repo.ListProductOpinions(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, ops)
}

// CreateOpinion posts a review for the product in the path. A second review
// by the same user for the same product is rejected with 409.
func (h *OpinionHandler) CreateOpinion(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "opinion.create_opinion")

	productID, err := parseID(c)
	if err != nil {
		return err
	}

	var req struct {
		Rating  string `json:"rating"`
		Content string `json:"content"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if len(req.Rating) > 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "rating must be a single character")
	}

	op := models.Opinion{
		ProductID: productID,
		UserID:    auth.UserID(c),
		Rating:    req.Rating,
		Content:   req.Content,
	}

	created, err := h.Repo.CreateOpinion(ctx, &op)
	if err != nil {
		l.Warn("create_opinion_failed", "product_id", productID, "error", err)
		return httpError(err)
	}

	publish(c, h.Producer, "product_events", strconv.Itoa(int(productID)), map[string]any{
		"type":      "opinion_created",
		"productID": productID,
		"userID":    created.UserID,
		"rating":    created.Rating,
	})
	l.Info("create_opinion_success", "opinion_id", created.ID)
	return c.JSON(http.StatusCreated, created)
}

func (h *OpinionHandler) DeleteOpinion(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "opinion.delete_opinion")

	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.Repo.DeleteOpinion(ctx, id); err != nil {
		l.Error("delete_opinion_failed", "id", id, "error", err)
		return httpError(err)
	}
	l.Info("delete_opinion_success", "opinion_id", id)
	return c.NoContent(http.StatusNoContent)
}
