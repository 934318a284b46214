package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/UlugbekMirdadayev/sklad-v2-backend-sub000/config"
	"github.com/UlugbekMirdadayev/sklad-v2-backend-sub000/controllers"
	"github.com/UlugbekMirdadayev/sklad-v2-backend-sub000/middleware"
	"github.com/UlugbekMirdadayev/sklad-v2-backend-sub000/models"
	"github.com/UlugbekMirdadayev/sklad-v2-backend-sub000/services"
	"github.com/UlugbekMirdadayev/sklad-v2-backend-sub000/store"
)

func InitializeRoutes(router *gin.Engine, bus *services.EventBus, notify services.Notifier) {
	controllers.Init(store.NewMongo(config.DB), bus, notify)

	router.POST("/api/auth/login", controllers.Login)

	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(models.RoleAdmin, models.RoleWorker))
	{
		api.GET("/branches", controllers.ListBranches)
		api.GET("/branches/:id", controllers.GetBranch)

		api.GET("/clients", controllers.ListClients)
		api.POST("/clients", controllers.CreateClient)
		api.GET("/clients/:id", controllers.GetClient)
		api.PUT("/clients/:id", controllers.UpdateClient)

		api.GET("/vehicles", controllers.ListVehicles)
		api.POST("/vehicles", controllers.CreateVehicle)
		api.GET("/vehicles/:id", controllers.GetVehicle)
		api.PUT("/vehicles/:id", controllers.UpdateVehicle)
		api.DELETE("/vehicles/:id", controllers.DeleteVehicle)

		api.GET("/products", controllers.ListProducts)
		api.GET("/products/:id", controllers.GetProduct)

		api.GET("/orders", controllers.ListOrders)
		api.POST("/orders", controllers.CreateOrder)
		api.GET("/orders/:id", controllers.GetOrder)
		api.PUT("/orders/:id", controllers.UpdateOrder)
		api.PATCH("/orders/:id/status", controllers.UpdateOrderStatus)
		api.DELETE("/orders/:id", controllers.DeleteOrder)
		api.GET("/orders/events", controllers.StreamOrderEvents)

		api.GET("/debtors", controllers.ListDebtors)
		api.POST("/debtors", controllers.CreateDebtor)
		api.GET("/debtors/:id", controllers.GetDebtor)
		api.POST("/debtors/:id/payment", controllers.PayDebtor)

		api.GET("/transactions", controllers.ListTransactions)
		api.POST("/transactions", controllers.CreateTransaction)
		api.GET("/transactions/stats", controllers.TransactionStats)
		api.GET("/balance", controllers.GetBalance)

		api.GET("/dashboard", controllers.Dashboard)
	}

	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(models.RoleAdmin))
	{
		admin.POST("/users", controllers.CreateUser)

		admin.POST("/branches", controllers.CreateBranch)
		admin.PUT("/branches/:id", controllers.UpdateBranch)
		admin.DELETE("/branches/:id", controllers.DeleteBranch)

		admin.POST("/products", controllers.CreateProduct)
		admin.PUT("/products/:id", controllers.UpdateProduct)
		admin.DELETE("/products/:id", controllers.DeleteProduct)

		admin.DELETE("/clients/:id", controllers.DeleteClient)
		admin.DELETE("/debtors/:id", controllers.DeleteDebtor)
		admin.DELETE("/transactions/:id", controllers.DeleteTransaction)
	}
}
