package public

import (
	handlershared "github.com/Selinclb/eticaretsitesi/internal/http/handlers/shared"
	"github.com/Selinclb/eticaretsitesi/internal/http/response"
	"github.com/Selinclb/eticaretsitesi/internal/service"

	"github.com/gin-gonic/gin"
)

type mappedHandlerError = handlershared.MappedError

var emailDeliveryErrorRules = []mappedHandlerError{
	{Target: service.ErrEmailRecipientRejected, Code: response.CodeBadRequest, Key: "error.email_recipient_rejected"},
	{Target: service.ErrEmailServiceDisabled, Code: response.CodeInternal, Key: "error.email_service_not_configured"},
	{Target: service.ErrEmailServiceNotConfigured, Code: response.CodeInternal, Key: "error.email_service_not_configured"},
}

var authTokenErrorRules = []mappedHandlerError{
	{Target: service.ErrTokenNotFound, Code: response.CodeBadRequest, Key: "error.token_not_found"},
	{Target: service.ErrTokenExpired, Code: response.CodeBadRequest, Key: "error.token_expired"},
	{Target: service.ErrTokenMalformed, Code: response.CodeBadRequest, Key: "error.token_malformed"},
	{Target: service.ErrTwoFactorCodeInvalid, Code: response.CodeBadRequest, Key: "error.two_factor_code_invalid"},
	{Target: service.ErrTwoFactorCodeExpired, Code: response.CodeBadRequest, Key: "error.two_factor_code_expired"},
	{Target: service.ErrTwoFactorAttemptsExceeded, Code: response.CodeBadRequest, Key: "error.two_factor_attempts_exceeded"},
	{Target: service.ErrUserDisabled, Code: response.CodeUnauthorized, Key: "error.user_disabled"},
}

var passwordInputErrorRules = []mappedHandlerError{
	{Target: service.ErrPasswordMismatch, Code: response.CodeBadRequest, Key: "error.password_mismatch"},
	{Target: service.ErrPasswordRequired, Code: response.CodeBadRequest, Key: "error.password_required"},
	{Target: service.ErrInvalidPassword, Code: response.CodeBadRequest, Key: "error.password_invalid"},
}

var registerErrorRules = handlershared.ConcatMappedErrors([]mappedHandlerError{
	{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Key: "error.email_invalid"},
	{Target: service.ErrEmailExists, Code: response.CodeBadRequest, Key: "error.email_exists"},
	{Target: service.ErrNameRequired, Code: response.CodeBadRequest, Key: "error.name_required"},
	{Target: service.ErrProfileFieldInvalid, Code: response.CodeBadRequest, Key: "error.profile_field_invalid"},
}, passwordInputErrorRules, emailDeliveryErrorRules)

var loginErrorRules = handlershared.ConcatMappedErrors([]mappedHandlerError{
	{Target: service.ErrInvalidEmail, Code: response.CodeUnauthorized, Key: "error.login_invalid"},
	{Target: service.ErrInvalidCredentials, Code: response.CodeUnauthorized, Key: "error.login_invalid"},
	{Target: service.ErrEmailNotVerified, Code: response.CodeUnauthorized, Key: "error.email_not_verified"},
	{Target: service.ErrUserDisabled, Code: response.CodeUnauthorized, Key: "error.user_disabled"},
}, emailDeliveryErrorRules)

var resendVerificationErrorRules = handlershared.ConcatMappedErrors([]mappedHandlerError{
	{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Key: "error.email_invalid"},
	{Target: service.ErrUserNotFound, Code: response.CodeNotFound, Key: "error.user_not_found"},
	{Target: service.ErrEmailAlreadyVerified, Code: response.CodeBadRequest, Key: "error.email_already_verified"},
}, emailDeliveryErrorRules)

var passwordResetErrorRules = handlershared.ConcatMappedErrors([]mappedHandlerError{
	{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Key: "error.email_invalid"},
}, emailDeliveryErrorRules)

var passwordResetConfirmErrorRules = handlershared.ConcatMappedErrors(authTokenErrorRules, passwordInputErrorRules)

var profileErrorRules = handlershared.ConcatMappedErrors([]mappedHandlerError{
	{Target: service.ErrUserNotFound, Code: response.CodeNotFound, Key: "error.user_not_found"},
	{Target: service.ErrNameRequired, Code: response.CodeBadRequest, Key: "error.name_required"},
	{Target: service.ErrProfileFieldInvalid, Code: response.CodeBadRequest, Key: "error.profile_field_invalid"},
}, passwordInputErrorRules)

var sessionErrorRules = []mappedHandlerError{
	{Target: service.ErrInvalidRefreshToken, Code: response.CodeBadRequest, Key: "error.refresh_token_invalid"},
	{Target: service.ErrRefreshTokenRevoked, Code: response.CodeBadRequest, Key: "error.refresh_token_revoked"},
	{Target: service.ErrSessionSecretNotSet, Code: response.CodeInternal, Key: "error.jwt_secret_missing"},
}

var orderCreateErrorRules = []mappedHandlerError{
	{Target: service.ErrOrderItemsEmpty, Code: response.CodeBadRequest, Key: "error.order_items_empty"},
	{Target: service.ErrOrderItemInvalid, Code: response.CodeBadRequest, Key: "error.order_item_invalid"},
	{Target: service.ErrOrderProductNotFound, Code: response.CodeBadRequest, Key: "error.order_product_not_found"},
	{Target: service.ErrOrderAmountMismatch, Code: response.CodeBadRequest, Key: "error.order_amount_mismatch"},
	{Target: service.ErrOrderAmountInvalid, Code: response.CodeBadRequest, Key: "error.order_amount_invalid"},
	{Target: service.ErrShippingAddressMissing, Code: response.CodeBadRequest, Key: "error.shipping_address_required"},
	{Target: service.ErrOrderNumberExhausted, Code: response.CodeInternal, Key: "error.order_create_failed"},
}

var orderCancelErrorRules = []mappedHandlerError{
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
	{Target: service.ErrOrderNotCancellable, Code: response.CodeBadRequest, Key: "error.order_cancel_not_allowed"},
}

var reviewCreateErrorRules = []mappedHandlerError{
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
	{Target: service.ErrReviewExists, Code: response.CodeBadRequest, Key: "error.review_exists"},
	{Target: service.ErrReviewRatingInvalid, Code: response.CodeBadRequest, Key: "error.review_rating_invalid"},
	{Target: service.ErrReviewCommentEmpty, Code: response.CodeBadRequest, Key: "error.review_comment_required"},
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	handlershared.RespondMappedError(c, err, rules, fallbackCode, fallbackKey)
}
