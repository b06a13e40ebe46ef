package router

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vovantri123/glamora-store-api/pkg/backend"
	"github.com/vovantri123/glamora-store-api/pkg/checkout"
	"github.com/vovantri123/glamora-store-api/pkg/global"
	storemongo "github.com/vovantri123/glamora-store-api/pkg/mongo"
	"github.com/vovantri123/glamora-store-api/pkg/session"
)

var Router *gin.Engine

var (
	api          *backend.Client
	sessions     *session.Store
	orchestrator *checkout.Service
	journal      *storemongo.Journal
	database     *mongo.Database
)

// Init wires the handler dependencies before the routes are registered.
func Init(client *backend.Client, store *session.Store, svc *checkout.Service, j *storemongo.Journal, db *mongo.Database) {
	api = client
	sessions = store
	orchestrator = svc
	journal = j
	database = db
}

func InitEngine() {
	Router = gin.Default()
	if os.Getenv("ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	Router.Use(cors.New(cors.Config{
		AllowOrigins:     global.GetFrontendOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "X-Session-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Session-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

func InitializeRoutes() {
	apiGroup := Router.Group("/api")
	apiGroup.Use(SessionMiddleware(), AuthForwardingMiddleware())
	{
		apiGroup.GET("/health", HealthCheck)
		apiGroup.GET("/session", GetSessionState)
		apiGroup.DELETE("/session", TeardownSession)

		cart := apiGroup.Group("/cart")
		{
			cart.GET("/", GetCartView)
			cart.POST("/items", AddToCart)
			cart.PUT("/items/:itemId", UpdateCartItem)
			cart.DELETE("/items/:itemId", RemoveCartItem)
		}

		selection := apiGroup.Group("/selection")
		{
			selection.GET("/", GetSelection)
			selection.POST("/toggle", ToggleSelection)
			selection.POST("/all", SelectAllItems)
			selection.DELETE("/", DeselectAllItems)
		}

		voucher := apiGroup.Group("/voucher")
		{
			voucher.POST("/", ApplyVoucher)
			voucher.DELETE("/", RemoveVoucher)
		}

		addresses := apiGroup.Group("/addresses")
		{
			addresses.GET("/", GetAddresses)
			addresses.GET("/default", GetDefaultAddress)
			addresses.GET("/:id/shipping-preview", GetShippingPreview)
		}

		apiGroup.GET("/payment-methods", GetPaymentMethods)

		checkoutGroup := apiGroup.Group("/checkout")
		{
			checkoutGroup.POST("/", PlaceOrder)
			checkoutGroup.GET("/status", GetCheckoutStatus)
			checkoutGroup.GET("/payment-result", GetPaymentResult)
			checkoutGroup.GET("/attempts", GetCheckoutAttempts)
			checkoutGroup.POST("/orders/:orderId/retry-payment", RetryPayment)
		}

		orders := apiGroup.Group("/orders")
		{
			orders.GET("/", GetOrders)
			orders.GET("/:orderId", GetOrder)
			orders.PUT("/:orderId/cancel", CancelOrder)
			orders.PUT("/:orderId/received", ConfirmOrderReceived)
		}

		analytics := apiGroup.Group("/analytics")
		{
			analytics.GET("/checkout-funnel", GetCheckoutFunnel)
		}
	}
}
