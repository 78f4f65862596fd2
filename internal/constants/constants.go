package constants

// 订单状态常量
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// 订单状态展示文案
var OrderStatusDisplay = map[string]string{
	OrderStatusPending:   "Onay Bekliyor",
	OrderStatusConfirmed: "Onaylandı",
	OrderStatusShipped:   "Kargoya Verildi",
	OrderStatusDelivered: "Teslim Edildi",
	OrderStatusCancelled: "İptal Edildi",
}

// 订单号常量
const (
	OrderNumberLength      = 10
	OrderNumberMaxAttempts = 5
)

// 认证令牌用途常量
const (
	AuthTokenPurposeEmailVerify   = "email_verify"
	AuthTokenPurposePasswordReset = "password_reset"
	AuthTokenPurposeTwoFactor     = "two_factor"
)

// 会话令牌类型常量
const (
	SessionTokenTypeAccess  = "access"
	SessionTokenTypeRefresh = "refresh"
)

// 商品状态常量
const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
)

// 商品规格类型常量
const (
	VariantTypeColor   = "color"
	VariantTypeStorage = "storage"
	VariantTypeSize    = "size"
)

// VariantTypes 商品规格类型，按展示顺序排列
var VariantTypes = []string{VariantTypeColor, VariantTypeStorage, VariantTypeSize}

// VariantTypeDisplay 规格类型展示名
var VariantTypeDisplay = map[string]string{
	VariantTypeColor:   "Renk",
	VariantTypeStorage: "Depolama",
	VariantTypeSize:    "Boyut",
}

// 商品列表常量
const (
	RelatedProductsLimit = 4
)

// 评价常量
const (
	ReviewRatingMin = 1
	ReviewRatingMax = 5
)

// 轮播图常量
const (
	SliderButtonTextDefault = "İncele"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 登录日志状态常量
const (
	LoginLogStatusSuccess = "success"
	LoginLogStatusFailed  = "failed"
)

// 登录日志失败原因常量
const (
	LoginLogFailReasonBadRequest          = "bad_request"
	LoginLogFailReasonCaptchaInvalid      = "captcha_invalid"
	LoginLogFailReasonInvalidEmail        = "invalid_email"
	LoginLogFailReasonInvalidCredentials  = "invalid_credentials"
	LoginLogFailReasonEmailNotVerified    = "email_not_verified"
	LoginLogFailReasonUserDisabled        = "user_disabled"
	LoginLogFailReasonTwoFactorInvalid    = "two_factor_invalid"
	LoginLogFailReasonTwoFactorSendFailed = "two_factor_send_failed"
	LoginLogFailReasonInternalError       = "internal_error"
)

// 登录日志来源常量
const (
	LoginLogSourcePassword  = "password"
	LoginLogSourceTwoFactor = "two_factor"
	LoginLogSourceEmail     = "email_verify"
)

// 验证码校验场景常量
const (
	CaptchaSceneLogin         = "login"
	CaptchaSceneRegister      = "register"
	CaptchaScenePasswordReset = "password_reset"
)

// 队列常量
const (
	QueueDefault          = "default"
	QueueCritical         = "critical"
	TaskOrderStatusEmail  = "order:status_email"
	TaskRevokedTokenPurge = "auth:revoked_token_purge"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "eticaret"
)

// 站点设置键常量
const (
	SettingKeyContact     = "contact"
	SettingKeySocialMedia = "social_media"
	SettingKeyPolicies    = "policies"
)

// 站点语言常量
const (
	LocaleTrTR = "tr-TR"
	LocaleEnUS = "en-US"
)

// 支持的站点语言顺序（含回退顺序）
var SupportedLocales = []string{LocaleTrTR, LocaleEnUS}
