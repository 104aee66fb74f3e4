package routes

import (
	"velora/admin"
	"velora/auth"
	"velora/cart"
	"velora/middleware"
	"velora/orders"
	"velora/products"
	"velora/profile"
	"velora/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", ratelim.RateLimit(auth.RegisterUser))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.LoginUser))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", ratelim.RateLimit(auth.RefreshToken))
}

func AddProductRoutes(router *httprouter.Router) {
	router.GET("/api/products/products", ratelim.RateLimit(products.GetProducts))
	router.GET("/api/products/categories", ratelim.RateLimit(products.GetCategories))
	router.GET("/api/products/product/:productid", ratelim.RateLimit(products.GetProduct))

	router.POST("/api/products/product", ratelim.RateLimit(middleware.Authenticate(products.CreateProduct)))
	router.PUT("/api/products/product/:productid", ratelim.RateLimit(middleware.Authenticate(products.UpdateProduct)))
	router.DELETE("/api/products/product/:productid", ratelim.RateLimit(middleware.Authenticate(products.DeleteProduct)))
}

func AddCartRoutes(router *httprouter.Router) {
	router.GET("/api/cart", middleware.Authenticate(cart.GetCart))
	router.POST("/api/cart", ratelim.RateLimit(middleware.Authenticate(cart.AddToCart)))
	router.DELETE("/api/cart/:productid", ratelim.RateLimit(middleware.Authenticate(cart.RemoveFromCart)))
}

func AddWishlistRoutes(router *httprouter.Router) {
	router.GET("/api/wishlist", middleware.Authenticate(cart.GetWishlist))
	router.POST("/api/wishlist/:productid", ratelim.RateLimit(middleware.Authenticate(cart.ToggleWishlist)))
}

func AddOrderRoutes(router *httprouter.Router) {
	router.POST("/api/orders/order", ratelim.RateLimit(middleware.Authenticate(orders.CreateOrder)))
	router.GET("/api/orders/myorders", middleware.Authenticate(orders.GetMyOrders))
	router.GET("/api/orders/orders", middleware.Authenticate(orders.GetAllOrders))
	router.GET("/api/orders/order/:orderid", middleware.Authenticate(orders.GetOrder))
	router.GET("/api/orders/order/:orderid/invoice", middleware.Authenticate(orders.InvoiceOrder))
	router.PUT("/api/orders/order/:orderid/pay", ratelim.RateLimit(middleware.Authenticate(orders.MarkOrderPaid)))
	router.PUT("/api/orders/order/:orderid/deliver", ratelim.RateLimit(middleware.Authenticate(orders.MarkOrderDelivered)))
	router.PUT("/api/orders/order/:orderid/status", ratelim.RateLimit(middleware.Authenticate(orders.UpdateOrderStatus)))
	router.PUT("/api/orders/order/:orderid/cancel", ratelim.RateLimit(middleware.Authenticate(orders.CancelOrder)))
}

func AddProfileRoutes(router *httprouter.Router) {
	router.GET("/api/profile/profile", middleware.Authenticate(profile.GetProfile))
	router.PUT("/api/profile/edit", ratelim.RateLimit(middleware.Authenticate(profile.UpdateProfile)))
	router.PUT("/api/profile/password", ratelim.RateLimit(middleware.Authenticate(profile.ChangePassword)))
}

func AddAdminRoutes(router *httprouter.Router) {
	router.GET("/api/admin/users", middleware.Authenticate(admin.GetUsers))
}
