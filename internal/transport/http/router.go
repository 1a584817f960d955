package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/mswiatek/web_shop/internal/handlers"
	"github.com/mswiatek/web_shop/internal/middleware/auth"
)

type Deps struct {
	Auth            *auth.Verifier
	ProductHandler  *handlers.ProductHandler
	CategoryHandler *handlers.CategoryHandler
	OrderHandler    *handlers.OrderHandler
	OpinionHandler  *handlers.OpinionHandler
	SearchHandler   *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	v1.GET("/categories", d.CategoryHandler.GetCategories)
	v1.GET("/categories/:id", d.CategoryHandler.GetCategory)
	v1.GET("/products", d.ProductHandler.GetProducts)
	v1.GET("/products/:id", d.ProductHandler.GetProduct)
	v1.GET("/products/:id/opinions", d.OpinionHandler.ListOpinions)
	if d.SearchHandler != nil && d.SearchHandler.ES != nil {
		v1.GET("/search", d.SearchHandler.Search)
	}

	authed := v1.Group("", d.Auth.RequireLogin)
	authed.POST("/orders", d.OrderHandler.CreateOrder)
	authed.GET("/orders", d.OrderHandler.ListOrders)
	authed.GET("/orders/:id", d.OrderHandler.GetOrder)
	authed.POST("/products/:id/opinions", d.OpinionHandler.CreateOpinion)

	admin := v1.Group("/admin", d.Auth.AdminOnly)
	admin.POST("/categories", d.CategoryHandler.CreateCategory)
	admin.PATCH("/categories/:id", d.CategoryHandler.PatchCategory)
	admin.DELETE("/categories/:id", d.CategoryHandler.DeleteCategory)
	admin.POST("/products", d.ProductHandler.CreateProduct)
	admin.PATCH("/products/:id", d.ProductHandler.PatchProduct)
	admin.PUT("/products/:id/image", d.ProductHandler.UploadImage)
	admin.DELETE("/products/:id", d.ProductHandler.DeleteProduct)
	admin.DELETE("/opinions/:id", d.OpinionHandler.DeleteOpinion)
}
