package service

import "errors"

// 通用错误
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrQueueUnavailable  = errors.New("queue unavailable")
	ErrRateLimited       = errors.New("rate limited")
	ErrOperationConflict = errors.New("operation conflict")
)

// 账号与认证错误
var (
	ErrInvalidEmail         = errors.New("invalid email")
	ErrEmailExists          = errors.New("email already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmailNotVerified     = errors.New("email not verified")
	ErrEmailAlreadyVerified = errors.New("email already verified")
	ErrUserDisabled         = errors.New("user disabled")
	ErrUserNotFound         = errors.New("user not found")
	ErrWeakPassword         = errors.New("weak password")
	ErrPasswordMismatch     = errors.New("password confirmation mismatch")
	ErrPasswordRequired     = errors.New("password required")
	ErrInvalidPassword      = errors.New("invalid password")
	ErrNameRequired         = errors.New("first and last name required")
	ErrProfileFieldInvalid  = errors.New("profile field invalid")
)

// 认证令牌错误
var (
	ErrTokenNotFound             = errors.New("token not found or already used")
	ErrTokenExpired              = errors.New("token expired")
	ErrTokenMalformed            = errors.New("token malformed")
	ErrTwoFactorCodeInvalid      = errors.New("two factor code invalid")
	ErrTwoFactorCodeExpired      = errors.New("two factor code expired")
	ErrTwoFactorAttemptsExceeded = errors.New("two factor attempts exceeded")
	ErrInvalidTokenPurpose       = errors.New("invalid token purpose")
	ErrInvalidRefreshToken       = errors.New("invalid refresh token")
	ErrRefreshTokenRevoked       = errors.New("refresh token revoked")
	ErrInvalidAccessToken        = errors.New("invalid access token")
	ErrSessionSecretNotSet       = errors.New("session secret not configured")
	ErrAdminTokenInvalid         = errors.New("invalid admin token")
	ErrAdminPasswordTooShort     = errors.New("admin password too short")
)

// 邮件错误
var (
	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
)

// 验证码错误
var (
	ErrCaptchaRequired      = errors.New("captcha required")
	ErrCaptchaInvalid       = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid = errors.New("captcha config invalid")
)

// 商品目录错误
var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrSubCategoryNotFound = errors.New("subcategory not found")
	ErrSubCategoryMismatch = errors.New("subcategory does not belong to category")
	ErrCategoryInUse       = errors.New("category in use")
	ErrSubCategoryInUse    = errors.New("subcategory in use")
	ErrProductNotFound     = errors.New("product not found")
	ErrProductNameRequired = errors.New("product name required")
	ErrProductPriceInvalid = errors.New("product price invalid")
	ErrProductStockInvalid = errors.New("product stock invalid")
	ErrProductStatus       = errors.New("product status invalid")
	ErrSlugExists          = errors.New("slug already exists")
	ErrSlugInvalid         = errors.New("slug invalid")
	ErrImageNotFound       = errors.New("product image not found")
	ErrImageRequired       = errors.New("product image required")
	ErrUploadTooLarge      = errors.New("upload file too large")
	ErrUploadTypeInvalid   = errors.New("upload file type not allowed")
	ErrUploadImageInvalid  = errors.New("upload image invalid")
	ErrVariantNotFound     = errors.New("product variant not found")
	ErrVariantTypeInvalid  = errors.New("product variant type invalid")
	ErrVariantExists       = errors.New("product variant already exists")
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewExists        = errors.New("review already exists")
	ErrReviewRatingInvalid = errors.New("review rating invalid")
	ErrReviewCommentEmpty  = errors.New("review comment required")
	ErrSliderNotFound      = errors.New("slider not found")
	ErrSliderTitleRequired = errors.New("slider title required")
)

// 订单错误
var (
	ErrOrderNotFound          = errors.New("order not found")
	ErrOrderItemsEmpty        = errors.New("order items empty")
	ErrOrderItemInvalid       = errors.New("order item invalid")
	ErrOrderProductNotFound   = errors.New("order product not found")
	ErrOrderAmountMismatch    = errors.New("order total does not match items")
	ErrOrderAmountInvalid     = errors.New("order total invalid")
	ErrOrderNumberExhausted   = errors.New("order number generation exhausted")
	ErrOrderStatusInvalid     = errors.New("order status transition invalid")
	ErrOrderNotCancellable    = errors.New("order cannot be cancelled")
	ErrShippingAddressMissing = errors.New("shipping address required")
)

// 站点设置错误
var (
	ErrSettingKeyInvalid   = errors.New("setting key invalid")
	ErrSettingValueInvalid = errors.New("setting value invalid")
)
