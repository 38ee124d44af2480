package usecase

import "context"

type CatalogUC interface {
	ListProducts(ctx context.Context, req *ListProductsReq) (*ListProductsRes, error)
	ListFeatured(ctx context.Context) ([]ProductCard, error)
	ListTrending(ctx context.Context) ([]ProductCard, error)
	GetProductBySlug(ctx context.Context, slug string) (*ProductCard, error)
	ListCategories(ctx context.Context) ([]CategoryRes, error)
	SaveProduct(ctx context.Context, req *SaveProductReq) (*ProductCard, error)
	DeleteProduct(ctx context.Context, productID int64) error
}

type ReviewUC interface {
	Create(ctx context.Context, req *CreateReviewReq) (*ReviewRes, error)
	Update(ctx context.Context, req *UpdateReviewReq) (*ReviewRes, error)
	Delete(ctx context.Context, productID, reviewID, userID int64) error
	DeleteAsAdmin(ctx context.Context, productID, reviewID int64) error
	ListByProduct(ctx context.Context, productID int64, viewerID *int64) ([]ReviewRes, error)
}

type CartUC interface {
	GetCart(ctx context.Context, userID int64) ([]CartLine, error)
	SetCart(ctx context.Context, req *SetCartReq) ([]CartLine, error)
}

type OrderUC interface {
	Checkout(ctx context.Context, req *CheckoutReq) (*OrderRes, error)
	ListOrders(ctx context.Context, userID int64) ([]OrderRes, error)
}

type AddressUC interface {
	ListAddresses(ctx context.Context, userID int64) ([]AddressRes, error)
	CreateAddress(ctx context.Context, req *SaveAddressReq) (*AddressRes, error)
	UpdateAddress(ctx context.Context, req *SaveAddressReq) (*AddressRes, error)
	DeleteAddress(ctx context.Context, addressID, userID int64) error
}

type AuthUC interface {
	Register(ctx context.Context, req *SignupReq) (*AuthRes, error)
	Login(ctx context.Context, req *LoginReq) (*AuthRes, error)
	GetUser(ctx context.Context, userID int64) (*UserRes, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, resetToken, newPassword string) error
}
