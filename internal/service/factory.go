package service

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/aether-shop/pkg/uow"
)

type AppServices struct {
	UserService     *UserService
	AccountService  *AccountService
	ProductService  *ProductService
	AddressService  *AddressService
	OrderService    *OrderService
	PaymentService  *PaymentService
	CommentService  *CommentService
	ReviewService   *ReviewService
	FeaturedService *FeaturedService
}

type FactoryDeps struct {
	UOW         uow.UOW
	Hasher      PasswordHasher
	JWTSecret   []byte
	Publisher   SettlementPublisher
	ViewCounter ViewCounter
	Logger      *logrus.Logger
}

func Factory(deps FactoryDeps) (*AppServices, error) {
	userService, userServiceErr := NewUserService(deps.UOW, deps.Hasher, deps.JWTSecret)
	if userServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", userServiceErr.Error())
	}

	accountService, accountServiceErr := NewAccountService(deps.UOW)
	if accountServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", accountServiceErr.Error())
	}

	productService, productServiceErr := NewProductService(deps.UOW, deps.ViewCounter, deps.Logger)
	if productServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", productServiceErr.Error())
	}

	addressService, addressServiceErr := NewAddressService(deps.UOW)
	if addressServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", addressServiceErr.Error())
	}

	orderService, orderServiceErr := NewOrderService(deps.UOW)
	if orderServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", orderServiceErr.Error())
	}

	paymentService, paymentServiceErr := NewPaymentService(deps.UOW, deps.Publisher, deps.Logger)
	if paymentServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", paymentServiceErr.Error())
	}

	commentService, commentServiceErr := NewCommentService(deps.UOW)
	if commentServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", commentServiceErr.Error())
	}

	reviewService, reviewServiceErr := NewReviewService(deps.UOW)
	if reviewServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", reviewServiceErr.Error())
	}

	featuredService, featuredServiceErr := NewFeaturedService(deps.UOW)
	if featuredServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", featuredServiceErr.Error())
	}

	return &AppServices{
		UserService:     userService,
		AccountService:  accountService,
		ProductService:  productService,
		AddressService:  addressService,
		OrderService:    orderService,
		PaymentService:  paymentService,
		CommentService:  commentService,
		ReviewService:   reviewService,
		FeaturedService: featuredService,
	}, nil
}
