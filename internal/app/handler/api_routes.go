package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterAPIRoutes регистрирует все REST API маршруты
func (h *Handler) RegisterAPIRoutes(router *gin.Engine, metrics http.Handler) {
	api := router.Group("/api")

	// ============ Заявки (Requests) ============
	requests := api.Group("/request")
	{
		requests.GET("", h.GetRequests)                   // GET список с пагинацией и фильтром
		requests.PUT("", h.CreateRequest)                 // PUT создание
		requests.POST("", h.CreateRequest)                // POST создание (алиас)
		requests.PATCH("", h.UpdateRequestStatus)         // PATCH смена статуса
		requests.GET("/status-counts", h.GetStatusCounts) // GET счётчики по статусам
		requests.PATCH("/batch", h.BatchUpdateRequests)   // PATCH пакетная смена статуса
		requests.DELETE("/batch", h.BatchDeleteRequests)  // DELETE пакетное удаление
	}

	// Проверка подключения к БД
	api.GET("/test-db", h.TestDB)

	// Ping эндпоинт для проверки
	router.GET("/ping", h.Ping)

	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics))
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
