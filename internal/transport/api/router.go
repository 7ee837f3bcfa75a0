package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/aether-shop/internal/transport/api/middlewares"
)

const (
	DefaultServiceTimeout = 3 * time.Second
)

const (
	RouteGroup    = "/api"
	RegisterRoute = "/user/register"
	LoginRoute    = "/user/login"

	ProductsRoute        = "/products"
	ProductRoute         = "/products/:id"
	ProductCommentsRoute = "/products/:id/comments"
	ProductReviewsRoute  = "/products/:id/reviews"
	CommentRoute         = "/comments/:id"
	ReviewRoute          = "/reviews/:id"

	AccountsRoute     = "/user/accounts"
	AccountRoute      = "/user/accounts/:id"
	AccountTopUpRoute = "/user/accounts/:id/topup"
	AddressesRoute    = "/user/addresses"
	AddressRoute      = "/user/addresses/:id"

	OrdersRoute      = "/user/orders"
	OrderRoute       = "/user/orders/:id"
	OrderPayRoute    = "/user/orders/:id/pay"
	SellerOrderRoute = "/seller/orders"

	PaymentsRoute    = "/user/payments"
	PaymentRoute     = "/user/payments/:id"
	UserReviewsRoute = "/user/reviews"

	FeaturedRoute        = "/user/featured"
	FeaturedProductRoute = "/user/featured/:id"
)

type RouterArgs struct {
	Logger          *logrus.Logger
	UserService     UserServicer
	AccountService  AccountServicer
	ProductService  ProductServicer
	AddressService  AddressServicer
	OrderService    OrderServicer
	PaymentService  PaymentServicer
	CommentService  CommentServicer
	ReviewService   ReviewServicer
	FeaturedService FeaturedServicer
	JWTSecretKey    []byte
}

func New(args RouterArgs) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.Errors())

	authHandler := NewAuthHandler(args.UserService)
	accountsHandler := NewAccountsHandler(args.AccountService)
	productsHandler := NewProductsHandler(args.ProductService)
	addressesHandler := NewAddressesHandler(args.AddressService)
	ordersHandler := NewOrdersHandler(args.OrderService)
	paymentsHandler := NewPaymentsHandler(args.PaymentService)
	commentsHandler := NewCommentsHandler(args.CommentService)
	reviewsHandler := NewReviewsHandler(args.ReviewService)
	featuredHandler := NewFeaturedHandler(args.FeaturedService)

	api := r.Group(RouteGroup)

	api.POST(RegisterRoute, middlewares.NonAuthRequired(args.JWTSecretKey), authHandler.Register)
	api.POST(LoginRoute, middlewares.NonAuthRequired(args.JWTSecretKey), authHandler.Login)

	// Витрина доступна без авторизации.
	api.GET(ProductsRoute, productsHandler.Index)
	api.GET(ProductRoute, productsHandler.Show)
	api.GET(ProductCommentsRoute, commentsHandler.Index)
	api.GET(ProductReviewsRoute, reviewsHandler.Index)
	api.GET(ReviewRoute, reviewsHandler.Show)

	api.Use(middlewares.AuthRequired(args.JWTSecretKey))
	// ниже все роуты группы требуют авторизованного пользователя.
	api.POST(ProductsRoute, productsHandler.Create)
	api.PATCH(ProductRoute, productsHandler.Update)
	api.DELETE(ProductRoute, productsHandler.Delete)

	api.POST(ProductCommentsRoute, commentsHandler.Create)
	api.DELETE(CommentRoute, commentsHandler.Delete)

	api.POST(ProductReviewsRoute, reviewsHandler.Create)
	api.PATCH(ReviewRoute, reviewsHandler.Update)
	api.DELETE(ReviewRoute, reviewsHandler.Delete)
	api.GET(UserReviewsRoute, reviewsHandler.UserIndex)

	api.GET(AccountsRoute, accountsHandler.Index)
	api.POST(AccountsRoute, accountsHandler.Create)
	api.GET(AccountRoute, accountsHandler.Show)
	api.POST(AccountTopUpRoute, accountsHandler.TopUp)
	api.DELETE(AccountRoute, accountsHandler.Delete)

	api.GET(AddressesRoute, addressesHandler.Index)
	api.POST(AddressesRoute, addressesHandler.Create)
	api.PATCH(AddressRoute, addressesHandler.Update)
	api.DELETE(AddressRoute, addressesHandler.Delete)

	api.GET(OrdersRoute, ordersHandler.Index)
	api.POST(OrdersRoute, ordersHandler.Create)
	api.GET(OrderRoute, ordersHandler.Show)
	api.PATCH(OrderRoute, ordersHandler.Update)
	api.DELETE(OrderRoute, ordersHandler.Delete)
	api.POST(OrderPayRoute, paymentsHandler.Pay)
	api.GET(SellerOrderRoute, ordersHandler.SellerIndex)

	api.GET(PaymentsRoute, paymentsHandler.Index)
	api.GET(PaymentRoute, paymentsHandler.Show)
	api.DELETE(PaymentRoute, paymentsHandler.Delete)

	api.GET(FeaturedRoute, featuredHandler.Index)
	api.POST(FeaturedRoute, featuredHandler.Create)
	api.DELETE(FeaturedProductRoute, featuredHandler.Delete)
	return r
}
