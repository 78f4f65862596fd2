package i18n

var messagesEN = map[string]string{
	"error.bad_request":             "Invalid request",
	"error.unauthorized":            "Authentication required",
	"error.forbidden":               "You are not allowed to perform this action",
	"error.save_failed":             "Save failed",
	"error.delete_failed":           "Delete failed",
	"error.rate_limited":            "Too many requests, please retry in %d seconds",
	"error.login_too_many":          "Too many login attempts, please retry in %d seconds",
	"error.verify_too_many":         "Too many verification attempts, please retry in %d seconds",
	"error.send_too_many":           "Too many email requests, please retry in %d seconds",
	"error.user_id_invalid":         "Invalid user id",
	"error.admin_id_invalid":        "Invalid admin id",
	"error.role_invalid":            "Invalid role",
	"error.file_missing":            "File is missing",
	"error.upload_failed":           "Upload failed",
	"error.upload_too_large":        "File is too large",
	"error.upload_type_invalid":     "Only JPEG, PNG or GIF images are allowed",
	"error.upload_image_invalid":    "Invalid image file",
	"error.user_id_type_invalid":    "Invalid user id type",
	"error.admin_id_type_invalid":   "Invalid admin id type",
	"error.auth_header_missing":     "Authorization header is missing",
	"error.auth_header_invalid":     "Authorization header is invalid",
	"error.token_invalid":           "Invalid or expired session",
	"error.token_revoked":           "Session revoked, please sign in again",
	"error.jwt_secret_missing":      "Session secret is not configured",
	"error.user_disabled":           "Account is disabled",
	"error.refresh_token_invalid":   "Invalid refresh token",
	"error.refresh_token_revoked":   "Refresh token has been revoked",
	"error.token_refresh_failed":    "Session refresh failed",
	"error.logout_failed":           "Logout failed",
	"error.admin_login_invalid":     "Invalid username or password",
	"error.captcha_required":        "Captcha is required",
	"error.captcha_invalid":         "Captcha is incorrect",
	"error.captcha_config_invalid":  "Captcha configuration is invalid",
	"error.captcha_verify_failed":   "Captcha verification failed",
	"error.captcha_generate_failed": "Captcha generation failed",
	"error.captcha_unavailable":     "Captcha is disabled",

	"error.email_invalid":               "Please enter a valid email address",
	"error.email_exists":                "This email address is already registered",
	"error.email_not_verified":          "Your email address is not verified yet",
	"error.email_already_verified":      "Email address is already verified",
	"error.login_invalid":               "Invalid email or password",
	"error.login_failed":                "Login failed",
	"error.register_failed":             "Registration failed",
	"error.user_not_found":              "User not found",
	"error.user_fetch_failed":           "Failed to load user",
	"error.name_required":               "Name is required",
	"error.profile_field_invalid":       "Invalid profile field",
	"error.password_required":           "Password is required",
	"error.password_mismatch":           "Passwords do not match",
	"error.password_invalid":            "Incorrect password",
	"error.password_old_invalid":        "Current password is incorrect",
	"error.password_weak":               "Password is too weak",
	"error.password_min_length":         "Password must be at least %d characters",
	"error.password_numeric_only":       "Password cannot be entirely numeric",
	"error.password_require_upper":      "Password must contain an uppercase letter",
	"error.password_require_lower":      "Password must contain a lowercase letter",
	"error.password_require_number":     "Password must contain a digit",
	"error.password_require_special":    "Password must contain a special character",
	"error.password_too_similar":        "Password is too similar to your personal information",
	"error.user_login_log_fetch_failed": "Failed to load login logs",

	"error.token_not_found":              "Link is invalid or already used",
	"error.token_expired":                "Link has expired",
	"error.token_malformed":              "Link format is invalid",
	"error.two_factor_code_invalid":      "Verification code is incorrect",
	"error.two_factor_code_expired":      "Verification code has expired",
	"error.two_factor_attempts_exceeded": "Too many wrong codes, please sign in again",
	"error.verify_email_failed":          "Email verification failed",
	"error.reset_failed":                 "Password reset failed",

	"error.email_send_failed":            "Failed to send email",
	"error.email_service_not_configured": "Email service is not configured",
	"error.email_recipient_rejected":     "Email recipient was rejected",

	"error.category_not_found":        "Category not found",
	"error.category_fetch_failed":     "Failed to load categories",
	"error.category_create_failed":    "Failed to create category",
	"error.category_update_failed":    "Failed to update category",
	"error.category_delete_failed":    "Failed to delete category",
	"error.category_id_invalid":       "Invalid category id",
	"error.category_in_use":           "Category still has products",
	"error.subcategory_not_found":     "Subcategory not found",
	"error.subcategory_fetch_failed":  "Failed to load subcategories",
	"error.subcategory_create_failed": "Failed to create subcategory",
	"error.subcategory_update_failed": "Failed to update subcategory",
	"error.subcategory_delete_failed": "Failed to delete subcategory",
	"error.subcategory_id_invalid":    "Invalid subcategory id",
	"error.subcategory_in_use":        "Subcategory still has products",
	"error.subcategory_mismatch":      "Subcategory does not belong to the category",
	"error.slug_exists":               "Slug is already in use",
	"error.slug_invalid":              "Invalid slug",
	"error.product_not_found":         "Product not found",
	"error.product_fetch_failed":      "Failed to load products",
	"error.product_create_failed":     "Failed to create product",
	"error.product_update_failed":     "Failed to update product",
	"error.product_delete_failed":     "Failed to delete product",
	"error.product_id_invalid":        "Invalid product id",
	"error.product_price_invalid":     "Price cannot be negative",
	"error.product_stock_invalid":     "Stock cannot be negative",
	"error.product_status_invalid":    "Invalid product status",
	"error.price_filter_invalid":      "Invalid price filter",
	"error.image_not_found":           "Image not found",
	"error.image_required":            "Image is required",
	"error.image_id_invalid":          "Invalid image id",
	"error.variant_not_found":         "Variant not found",
	"error.variant_type_invalid":      "Invalid variant type",
	"error.variant_exists":            "Variant already exists",
	"error.variant_id_invalid":        "Invalid variant id",
	"error.variant_ids_invalid":       "Invalid variant list",
	"error.review_not_found":          "Review not found",
	"error.review_exists":             "You have already reviewed this product",
	"error.review_rating_invalid":     "Rating must be between 1 and 5",
	"error.review_comment_required":   "Comment is required",
	"error.review_fetch_failed":       "Failed to load reviews",
	"error.review_create_failed":      "Failed to save review",
	"error.review_id_invalid":         "Invalid review id",
	"error.slider_not_found":          "Slider not found",
	"error.slider_fetch_failed":       "Failed to load sliders",
	"error.slider_id_invalid":         "Invalid slider id",
	"error.slider_url_required":       "Slider url is required",

	"error.order_not_found":           "Order not found",
	"error.order_fetch_failed":        "Failed to load orders",
	"error.order_create_failed":       "Failed to create order",
	"error.order_update_failed":       "Failed to update order",
	"error.order_id_invalid":          "Invalid order id",
	"error.order_items_empty":         "Order must contain at least one item",
	"error.order_item_invalid":        "Invalid order item",
	"error.order_product_not_found":   "Ordered product not found",
	"error.order_amount_mismatch":     "Total amount does not match the items",
	"error.order_amount_invalid":      "Invalid total amount",
	"error.order_status_invalid":      "Invalid order status transition",
	"error.order_cancel_not_allowed":  "Only pending orders can be cancelled",
	"error.shipping_address_required": "Shipping address is required",

	"error.setting_not_found":     "Setting not found",
	"error.setting_value_invalid": "Invalid setting value",
	"error.settings_fetch_failed": "Failed to load settings",
	"error.settings_save_failed":  "Failed to save settings",

	"auth.register_success":    "Registration successful. Please verify your account using the link sent to your email.",
	"auth.two_factor_sent":     "A verification code was sent to your email",
	"auth.email_verified":      "Your email address has been verified",
	"auth.verification_resent": "Verification email sent again",
	"auth.password_reset_sent": "If the account exists, a password reset link has been sent",
	"auth.password_reset_done": "Your password has been reset",
	"auth.password_changed":    "Your password has been updated",
	"auth.account_deleted":     "Your account has been deleted",
	"auth.logged_out":          "Logged out",
	"auth.two_factor_enabled":  "Two-factor authentication enabled",
	"auth.two_factor_disabled": "Two-factor authentication disabled",
	"order.created":            "Your order has been created",
	"order.cancelled":          "Your order has been cancelled",
	"review.submitted":         "Your review will be published after approval",

	"order.status.pending":   "Pending",
	"order.status.confirmed": "Confirmed",
	"order.status.shipped":   "Shipped",
	"order.status.delivered": "Delivered",
	"order.status.cancelled": "Cancelled",

	"email.verify.subject":              "Verify Your Email Address",
	"email.verify.body":                 "Hello %s,\n\nClick the link below to verify your account:\n%s\n\nThis link is valid for %d hours.",
	"email.reset.subject":               "Password Reset",
	"email.reset.body":                  "Hello %s,\n\nClick the link below to reset your password:\n%s\n\nThis link is valid for %d hours. If you did not request this, ignore this email.",
	"email.two_factor.subject":          "Login Verification Code",
	"email.two_factor.body":             "Your login verification code: %s\n\nThis code is valid for %d minutes.",
	"email.order_status.subject":        "Order %s: %s",
	"email.order_status.body":           "Hello %s,\n\nThe status of order %s was updated: %s\nTotal: %s TL",
	"email.order_status.body_shipped":   "Hello %s,\n\nYour order %s is on its way (%s).\nTotal: %s TL",
	"email.order_status.body_cancelled": "Hello %s,\n\nYour order %s was cancelled (%s).\nTotal: %s TL",
}
