package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/mswiatek/web_shop/internal/es"
	"github.com/mswiatek/web_shop/internal/imagestore"
	"github.com/mswiatek/web_shop/internal/logging"
	"github.com/mswiatek/web_shop/internal/models"
	"github.com/mswiatek/web_shop/internal/mykafka"
	"github.com/mswiatek/web_shop/internal/repo"
	"github.com/mswiatek/web_shop/internal/util"
)

type ProductHandler struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
	Images   *imagestore.Store
	ES       *elasticsearch.Client
	ESIndex  string
}

func (h *ProductHandler) index(c echo.Context, prod *models.Product) {
	if h.ES == nil {
		return
	}
	if err := es.IndexProduct(c.Request().Context(), h.ES, h.ESIndex, prod); err != nil {
		c.Logger().Errorf("ES index error: %v", err)
	}
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	prod, err := h.Repo.GetProduct(ctx, id)
	if err != nil {
		l.Warn("get_product_failed", "id", id, "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Repo.GetProducts(ctx, offset, limit)
	if err != nil {
		l.Error("get_products_failed", "error", err)
		return httpError(err)
	}

	l.Info("get_products_success", "total", total)
	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

// CreateProduct accepts a multipart form so the image can ride along with the
// fields. The row is committed first; the image file is saved after and is
// best-effort relative to the database write.
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	categoryID, err := strconv.Atoi(c.FormValue("category_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "category_id is not an integer")
	}
	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "price is not a number")
	}

	prod := models.Product{
		CategoryID:    uint(categoryID),
		Name:          c.FormValue("name"),
		Description:   c.FormValue("description"),
		Price:         price,
		IsRecommended: c.FormValue("is_recommended") != "false",
		IsVisible:     c.FormValue("is_visible") != "false",
		CreatedAt:     time.Now().UTC(),
	}

	file, fileErr := c.FormFile("image")
	if fileErr != nil {
		prod.ImagePath = h.Images.DefaultPath()
	} else {
		prod.ImagePath = h.Images.ImagePath(prod.Name, prod.CreatedAt)
	}

	created, err := h.Repo.CreateProduct(ctx, &prod)
	if err != nil {
		l.Error("create_product_failed", "error", err)
		return httpError(err)
	}

	if fileErr == nil {
		src, err := file.Open()
		if err != nil {
			l.Error("image_save_failed", "product_id", created.ID, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "image save failed")
		}
		defer src.Close()
		if _, err := h.Images.Save(created.ImagePath, src); err != nil {
			l.Error("image_save_failed", "product_id", created.ID, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "image save failed")
		}
	}

	h.index(c, created)
	publish(c, h.Producer, "product_events", strconv.Itoa(int(created.ID)), map[string]any{
		"type":      "product_created",
		"productID": created.ID,
		"name":      created.Name,
	})
	l.Info("create_product_success", "product_id", created.ID)
	return c.JSON(http.StatusCreated, created)
}

func (h *ProductHandler) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.patch_product")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req struct {
		CategoryID    *uint    `json:"category_id"`
		Name          *string  `json:"name"`
		Description   *string  `json:"description"`
		Price         *float64 `json:"price"`
		IsRecommended *bool    `json:"is_recommended"`
		IsVisible     *bool    `json:"is_visible"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Repo.PatchProduct(ctx, id, repo.PatchProduct{
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		IsRecommended: req.IsRecommended,
		IsVisible:     req.IsVisible,
	})
	if err != nil {
		l.Error("patch_product_failed", "id", id, "error", err)
		return httpError(err)
	}

	h.index(c, prod)
	publish(c, h.Producer, "product_events", strconv.Itoa(int(prod.ID)), map[string]any{
		"type":      "product_updated",
		"productID": prod.ID,
		"name":      prod.Name,
	})
	l.Info("patch_product_success", "product_id", prod.ID)
	return c.JSON(http.StatusOK, prod)
}

// UploadImage replaces the product image. The path is derived from the
// product name and creation time, so a re-upload lands on the same path and
// the store swaps the file in place.
func (h *ProductHandler) UploadImage(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.upload_image")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	prod, err := h.Repo.GetProduct(ctx, id)
	if err != nil {
		return httpError(err)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image file required")
	}
	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read image file")
	}
	defer src.Close()

	path := h.Images.ImagePath(prod.Name, prod.CreatedAt)
	if _, err := h.Images.Save(path, src); err != nil {
		l.Error("image_save_failed", "product_id", prod.ID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "image save failed")
	}

	prod, err = h.Repo.SetProductImage(ctx, prod.ID, path)
	if err != nil {
		return httpError(err)
	}

	h.index(c, prod)
	publish(c, h.Producer, "product_events", strconv.Itoa(int(prod.ID)), map[string]any{
		"type":      "product_updated",
		"productID": prod.ID,
		"name":      prod.Name,
	})
	l.Info("upload_image_success", "product_id", prod.ID, "path", path)
	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	prod, err := h.Repo.GetProduct(ctx, id)
	if err != nil {
		return httpError(err)
	}

	if err := h.Repo.DeleteProduct(ctx, id); err != nil {
		l.Error("delete_product_failed", "id", id, "error", err)
		return httpError(err)
	}

	if err := h.Images.Remove(prod.ImagePath); err != nil {
		c.Logger().Errorf("image remove error: %v", err)
	}
	if h.ES != nil {
		if err := es.DeleteProduct(ctx, h.ES, h.ESIndex, id); err != nil {
			c.Logger().Errorf("ES delete error: %v", err)
		}
	}

	publish(c, h.Producer, "product_events", strconv.Itoa(int(id)), map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})
	l.Info("delete_product_success", "product_id", id)
	return c.NoContent(http.StatusNoContent)
}
