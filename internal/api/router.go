package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/AgentTarik/banco-api/telemetry"
)

func SetupRoutes(r *gin.Engine, h *Handlers) {
	v1 := r.Group("/v1")
	{
		v1.GET("/customers", h.ListCustomers)
		v1.POST("/customers", h.CreateCustomer)
		v1.GET("/customers/:id", h.GetCustomer)
		v1.GET("/customers/:id/transactions", h.CustomerHistory)

		v1.POST("/customers/:id/deposit", h.Deposit)
		v1.POST("/customers/:id/withdraw", h.Withdraw)
		v1.POST("/transfers", h.Transfer)

		v1.GET("/transactions", h.ListTransactions)
		v1.GET("/events", h.EventsPoll)
	}
	r.GET("/health", h.Health)
	r.GET("/metrics", telemetry.MetricsHandler())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
