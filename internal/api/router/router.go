package router

import (
	"github.com/wb-go/wbf/ginext"

	"github.com/soclink/notify/internal/api/handlers/notification"
	"github.com/soclink/notify/internal/api/handlers/preference"
	"github.com/soclink/notify/internal/api/handlers/stream"
)

func New(handler *notification.Handler, prefs *preference.Handler, ws *stream.Handler) *ginext.Engine {
	e := ginext.New()
	e.Use(ginext.Logger())
	e.Use(ginext.Recovery())

	api := e.Group("/api/notifications")

	api.POST("/", handler.Create)
	api.POST("/bulk", handler.BulkCreate)
	api.GET("/", handler.List)
	api.GET("/stats", handler.Stats)
	api.POST("/read-all", handler.MarkAllRead)
	api.GET("/preferences", prefs.Get)
	api.PUT("/preferences", prefs.Update)
	api.GET("/:id", handler.Get)
	api.POST("/:id/read", handler.MarkRead)
	api.DELETE("/:id", handler.Delete)
	api.GET("/:id/deliveries", handler.Deliveries)

	e.GET("/ws", ws.Serve)

	return e
}
