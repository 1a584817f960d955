package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mswiatek/web_shop/internal/logging"
	"github.com/mswiatek/web_shop/internal/models"
	"github.com/mswiatek/web_shop/internal/mykafka"
	"github.com/mswiatek/web_shop/internal/repo"
)

type CategoryHandler struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
}

func (h *CategoryHandler) GetCategories(c echo.Context) error {
	cats, err := h.Repo.GetCategories(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, cats)
}

func (h *CategoryHandler) GetCategory(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	cat, err := h.Repo.GetCategory(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.create_category")

	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cat, err := h.Repo.CreateCategory(ctx, &models.Category{Name: req.Name})
	if err != nil {
		l.Error("create_category_failed", "error", err)
		return httpError(err)
	}

	publish(c, h.Producer, "product_events", strconv.Itoa(int(cat.ID)), map[string]any{
		"type":       "category_created",
		"categoryID": cat.ID,
		"name":       cat.Name,
	})
	l.Info("create_category_success", "category_id", cat.ID)
	return c.JSON(http.StatusCreated, cat)
}

func (h *CategoryHandler) PatchCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.patch_category")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cat, err := h.Repo.PatchCategory(ctx, id, req.Name)
	if err != nil {
		l.Error("patch_category_failed", "id", id, "error", err)
		return httpError(err)
	}
	l.Info("patch_category_success", "category_id", cat.ID)
	return c.JSON(http.StatusOK, cat)
}

// DeleteCategory deletes the category and, through the cascade, every product
// under it with their line items and opinions.
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.delete_category")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.Repo.DeleteCategory(ctx, id); err != nil {
		l.Error("delete_category_failed", "id", id, "error", err)
		return httpError(err)
	}

	publish(c, h.Producer, "product_events", strconv.Itoa(int(id)), map[string]any{
		"type":       "category_deleted",
		"categoryID": id,
	})
	l.Info("delete_category_success", "category_id", id)
	return c.NoContent(http.StatusNoContent)
}
