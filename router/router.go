package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shegacafe/cafe-app/controllers"
	"github.com/shegacafe/cafe-app/kds"
	"github.com/shegacafe/cafe-app/middlewares"
	"github.com/shegacafe/cafe-app/models"
	"github.com/shegacafe/cafe-app/services"
	"github.com/shegacafe/cafe-app/utils"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// App holds everything the HTTP layer is wired to.
type App struct {
	DB      *gorm.DB
	Orders  *services.OrderService
	Menu    *services.MenuService
	Users   *services.UserService
	Reports *services.ReportService
	Hub     *kds.Hub
}

type Options struct {
	CORSOrigin     string
	RateLimitRPS   float64
	RateLimitBurst int
}

func SetupRouter(app App, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(opts.CORSOrigin))
	if opts.RateLimitRPS > 0 {
		r.Use(middlewares.NewRateLimiter(rate.Limit(opts.RateLimitRPS), opts.RateLimitBurst).RateLimit())
	}

	menuCtrl := controllers.NewMenuController(app.Menu)
	orderCtrl := controllers.NewOrderController(app.Orders)
	userCtrl := controllers.NewUserController(app.Users)
	adminCtrl := controllers.NewAdminController(app.Users)
	reportCtrl := controllers.NewReportController(app.Reports)
	kdsCtrl := controllers.NewKDSController(app.Hub, opts.CORSOrigin)

	r.GET("/ping", func(c *gin.Context) {
		utils.RespondJSON(c, http.StatusOK, "pong", nil)
	})

	// websocket handshakes carry the token in the query string
	r.GET("/ws/orders",
		middlewares.WebSocketAuthMiddleware(app.DB),
		middlewares.RequireRoles(models.RoleWaiter, models.RoleChef, models.RoleAdmin),
		kdsCtrl.Serve)

	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware(app.DB))
	{
		api.GET("/menu", menuCtrl.GetMenu)

		api.POST("/register", middlewares.NewStrictRateLimiter(), userCtrl.Register)
		api.POST("/login", middlewares.NewStrictRateLimiter(), userCtrl.Login)
		api.POST("/logout", middlewares.RequireAuth(), userCtrl.Logout)
		api.GET("/profile", middlewares.RequireAuth(), userCtrl.GetProfile)

		orders := api.Group("/orders")
		{
			orders.GET("", orderCtrl.GetOrders)
			orders.GET("/:order_id", orderCtrl.GetOrderByID)
			orders.POST("", orderCtrl.CreateOrder)
			orders.PATCH("/:order_id/status", orderCtrl.UpdateOrderStatus)
			orders.PATCH("/:order_id/payment", orderCtrl.UpdatePaymentStatus)
			orders.DELETE("/completed", orderCtrl.ClearCompletedOrders)
		}

		api.GET("/kitchen/orders", middlewares.RequireRoles(models.RoleChef, models.RoleAdmin), orderCtrl.KitchenQueue)
		api.GET("/waiter/orders", middlewares.RequireRoles(models.RoleWaiter, models.RoleAdmin), orderCtrl.WaiterBoard)

		admin := api.Group("/admin")
		admin.Use(middlewares.RequireRoles(models.RoleAdmin))
		{
			admin.GET("/users", adminCtrl.GetUsers)
			admin.POST("/users", adminCtrl.CreateUser)
			admin.PATCH("/users/:user_id/role", adminCtrl.UpdateUserRole)
			admin.DELETE("/users/:user_id", adminCtrl.DeleteUser)

			admin.GET("/reports/sales", reportCtrl.SalesReport)
			admin.GET("/reports/unpaid", reportCtrl.UnpaidReport)
			admin.GET("/reports/sales.pdf", reportCtrl.SalesReportPDF)
			admin.GET("/dashboard", reportCtrl.Dashboard)
		}
	}

	return r
}
