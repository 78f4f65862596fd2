package i18n

var messagesTR = map[string]string{
	// 通用
	"error.bad_request":          "Geçersiz istek",
	"error.unauthorized":         "Oturum açmanız gerekiyor",
	"error.forbidden":            "Bu işlem için yetkiniz yok",
	"error.save_failed":          "Kaydedilemedi",
	"error.delete_failed":        "Silinemedi",
	"error.rate_limited":         "Çok fazla istek gönderdiniz, lütfen %d saniye sonra tekrar deneyin",
	"error.login_too_many":       "Çok fazla giriş denemesi, lütfen %d saniye sonra tekrar deneyin",
	"error.verify_too_many":      "Çok fazla doğrulama denemesi, lütfen %d saniye sonra tekrar deneyin",
	"error.send_too_many":        "Çok fazla e-posta isteği, lütfen %d saniye sonra tekrar deneyin",
	"error.user_id_invalid":      "Geçersiz kullanıcı kimliği",
	"error.admin_id_invalid":     "Geçersiz yönetici kimliği",
	"error.role_invalid":         "Geçersiz rol",
	"error.file_missing":         "Dosya bulunamadı",
	"error.upload_failed":        "Dosya yüklenemedi",
	"error.upload_too_large":     "Dosya boyutu çok büyük",
	"error.upload_type_invalid":  "Yalnızca JPEG, PNG veya GIF görseller yüklenebilir",
	"error.upload_image_invalid": "Geçersiz görsel dosyası",

	"error.user_id_type_invalid":  "Kullanıcı kimliği türü geçersiz",
	"error.admin_id_type_invalid": "Yönetici kimliği türü geçersiz",

	// 鉴权
	"error.auth_header_missing":   "Authorization başlığı eksik",
	"error.auth_header_invalid":   "Authorization başlığı geçersiz",
	"error.token_invalid":         "Geçersiz veya süresi dolmuş oturum",
	"error.token_revoked":         "Oturum sonlandırıldı, lütfen tekrar giriş yapın",
	"error.jwt_secret_missing":    "Oturum anahtarı yapılandırılmamış",
	"error.user_disabled":         "Hesap devre dışı bırakılmış",
	"error.refresh_token_invalid": "Geçersiz yenileme anahtarı",
	"error.refresh_token_revoked": "Yenileme anahtarı iptal edilmiş",
	"error.token_refresh_failed":  "Oturum yenilenemedi",
	"error.logout_failed":         "Çıkış yapılamadı",
	"error.admin_login_invalid":   "Kullanıcı adı veya şifre hatalı",

	// 验证码
	"error.captcha_required":        "Doğrulama kodu gerekli",
	"error.captcha_invalid":         "Doğrulama kodu hatalı",
	"error.captcha_config_invalid":  "Doğrulama kodu yapılandırması geçersiz",
	"error.captcha_verify_failed":   "Doğrulama kodu kontrol edilemedi",
	"error.captcha_generate_failed": "Doğrulama kodu oluşturulamadı",
	"error.captcha_unavailable":     "Doğrulama kodu devre dışı",

	// 账号
	"error.email_invalid":               "Geçerli bir e-posta adresi girin",
	"error.email_exists":                "Bu e-posta adresi zaten kayıtlı",
	"error.email_not_verified":          "E-posta adresiniz henüz doğrulanmadı",
	"error.email_already_verified":      "E-posta adresi zaten doğrulanmış",
	"error.login_invalid":               "E-posta veya şifre hatalı",
	"error.login_failed":                "Giriş yapılamadı",
	"error.register_failed":             "Kayıt oluşturulamadı",
	"error.user_not_found":              "Kullanıcı bulunamadı",
	"error.user_fetch_failed":           "Kullanıcı bilgileri alınamadı",
	"error.name_required":               "Ad alanı zorunludur",
	"error.profile_field_invalid":       "Profil alanı geçersiz",
	"error.password_required":           "Şifre gerekli",
	"error.password_mismatch":           "Şifreler eşleşmiyor",
	"error.password_invalid":            "Şifre hatalı",
	"error.password_old_invalid":        "Mevcut şifre hatalı",
	"error.password_weak":               "Şifre yeterince güçlü değil",
	"error.password_min_length":         "Şifre en az %d karakter olmalıdır",
	"error.password_numeric_only":       "Şifre yalnızca rakamlardan oluşamaz",
	"error.password_require_upper":      "Şifre en az bir büyük harf içermelidir",
	"error.password_require_lower":      "Şifre en az bir küçük harf içermelidir",
	"error.password_require_number":     "Şifre en az bir rakam içermelidir",
	"error.password_require_special":    "Şifre en az bir özel karakter içermelidir",
	"error.password_too_similar":        "Şifre kişisel bilgilerinize çok benziyor",
	"error.user_login_log_fetch_failed": "Giriş kayıtları alınamadı",

	// 令牌
	"error.token_not_found":              "Bağlantı geçersiz veya daha önce kullanılmış",
	"error.token_expired":                "Bağlantının süresi dolmuş",
	"error.token_malformed":              "Bağlantı biçimi geçersiz",
	"error.two_factor_code_invalid":      "Doğrulama kodu hatalı",
	"error.two_factor_code_expired":      "Doğrulama kodunun süresi dolmuş",
	"error.two_factor_attempts_exceeded": "Çok fazla hatalı deneme yapıldı, lütfen tekrar giriş yapın",
	"error.verify_email_failed":          "E-posta doğrulanamadı",
	"error.reset_failed":                 "Şifre sıfırlanamadı",

	// 邮件
	"error.email_send_failed":            "E-posta gönderilemedi",
	"error.email_service_not_configured": "E-posta servisi yapılandırılmamış",
	"error.email_recipient_rejected":     "E-posta alıcısı reddedildi",

	// 商品目录
	"error.category_not_found":        "Kategori bulunamadı",
	"error.category_fetch_failed":     "Kategoriler alınamadı",
	"error.category_create_failed":    "Kategori oluşturulamadı",
	"error.category_update_failed":    "Kategori güncellenemedi",
	"error.category_delete_failed":    "Kategori silinemedi",
	"error.category_id_invalid":       "Geçersiz kategori kimliği",
	"error.category_in_use":           "Kategoride ürün bulunduğu için silinemez",
	"error.subcategory_not_found":     "Alt kategori bulunamadı",
	"error.subcategory_fetch_failed":  "Alt kategoriler alınamadı",
	"error.subcategory_create_failed": "Alt kategori oluşturulamadı",
	"error.subcategory_update_failed": "Alt kategori güncellenemedi",
	"error.subcategory_delete_failed": "Alt kategori silinemedi",
	"error.subcategory_id_invalid":    "Geçersiz alt kategori kimliği",
	"error.subcategory_in_use":        "Alt kategoride ürün bulunduğu için silinemez",
	"error.subcategory_mismatch":      "Alt kategori seçilen kategoriye ait değil",
	"error.slug_exists":               "Bu slug zaten kullanılıyor",
	"error.slug_invalid":              "Geçersiz slug",
	"error.product_not_found":         "Ürün bulunamadı",
	"error.product_fetch_failed":      "Ürünler alınamadı",
	"error.product_create_failed":     "Ürün oluşturulamadı",
	"error.product_update_failed":     "Ürün güncellenemedi",
	"error.product_delete_failed":     "Ürün silinemedi",
	"error.product_id_invalid":        "Geçersiz ürün kimliği",
	"error.product_price_invalid":     "Fiyat negatif olamaz",
	"error.product_stock_invalid":     "Stok negatif olamaz",
	"error.product_status_invalid":    "Geçersiz ürün durumu",
	"error.price_filter_invalid":      "Geçersiz fiyat filtresi",
	"error.image_not_found":           "Görsel bulunamadı",
	"error.image_required":            "Görsel zorunludur",
	"error.image_id_invalid":          "Geçersiz görsel kimliği",
	"error.variant_not_found":         "Varyant bulunamadı",
	"error.variant_type_invalid":      "Geçersiz varyant türü",
	"error.variant_exists":            "Bu varyant zaten mevcut",
	"error.variant_id_invalid":        "Geçersiz varyant kimliği",
	"error.variant_ids_invalid":       "Geçersiz varyant listesi",
	"error.review_not_found":          "Değerlendirme bulunamadı",
	"error.review_exists":             "Bu ürünü zaten değerlendirdiniz",
	"error.review_rating_invalid":     "Puan 1 ile 5 arasında olmalıdır",
	"error.review_comment_required":   "Yorum alanı zorunludur",
	"error.review_fetch_failed":       "Değerlendirmeler alınamadı",
	"error.review_create_failed":      "Değerlendirme kaydedilemedi",
	"error.review_id_invalid":         "Geçersiz değerlendirme kimliği",
	"error.slider_not_found":          "Slider bulunamadı",
	"error.slider_fetch_failed":       "Slider listesi alınamadı",
	"error.slider_id_invalid":         "Geçersiz slider kimliği",
	"error.slider_url_required":       "Slider bağlantısı zorunludur",

	// 订单
	"error.order_not_found":           "Sipariş bulunamadı",
	"error.order_fetch_failed":        "Siparişler alınamadı",
	"error.order_create_failed":       "Sipariş oluşturulamadı",
	"error.order_update_failed":       "Sipariş güncellenemedi",
	"error.order_id_invalid":          "Geçersiz sipariş kimliği",
	"error.order_items_empty":         "Sipariş en az bir ürün içermelidir",
	"error.order_item_invalid":        "Sipariş kalemi geçersiz",
	"error.order_product_not_found":   "Siparişteki ürün bulunamadı",
	"error.order_amount_mismatch":     "Toplam tutar ürünlerle eşleşmiyor",
	"error.order_amount_invalid":      "Geçersiz toplam tutar",
	"error.order_status_invalid":      "Geçersiz sipariş durumu geçişi",
	"error.order_cancel_not_allowed":  "Yalnızca onay bekleyen siparişler iptal edilebilir",
	"error.shipping_address_required": "Teslimat adresi zorunludur",

	// 站点设置
	"error.setting_not_found":     "Ayar bulunamadı",
	"error.setting_value_invalid": "Ayar değeri geçersiz",
	"error.settings_fetch_failed": "Ayarlar alınamadı",
	"error.settings_save_failed":  "Ayarlar kaydedilemedi",

	// 成功提示
	"auth.register_success":    "Kayıt başarılı. Lütfen e-posta adresinize gönderilen bağlantı ile hesabınızı doğrulayın.",
	"auth.two_factor_sent":     "Doğrulama kodu e-posta adresinize gönderildi",
	"auth.email_verified":      "E-posta adresiniz doğrulandı",
	"auth.verification_resent": "Doğrulama e-postası yeniden gönderildi",
	"auth.password_reset_sent": "Hesap mevcutsa şifre sıfırlama bağlantısı gönderildi",
	"auth.password_reset_done": "Şifreniz başarıyla değiştirildi",
	"auth.password_changed":    "Şifreniz güncellendi",
	"auth.account_deleted":     "Hesabınız silindi",
	"auth.logged_out":          "Çıkış yapıldı",
	"auth.two_factor_enabled":  "İki adımlı doğrulama açıldı",
	"auth.two_factor_disabled": "İki adımlı doğrulama kapatıldı",
	"order.created":            "Siparişiniz oluşturuldu",
	"order.cancelled":          "Siparişiniz iptal edildi",
	"review.submitted":         "Değerlendirmeniz onaylandıktan sonra yayınlanacaktır",

	// 订单状态
	"order.status.pending":   "Onay Bekliyor",
	"order.status.confirmed": "Onaylandı",
	"order.status.shipped":   "Kargoya Verildi",
	"order.status.delivered": "Teslim Edildi",
	"order.status.cancelled": "İptal Edildi",

	// 邮件模板
	"email.verify.subject":              "E-posta Adresinizi Doğrulayın",
	"email.verify.body":                 "Merhaba %s,\n\nHesabınızı doğrulamak için aşağıdaki bağlantıya tıklayın:\n%s\n\nBu bağlantı %d saat boyunca geçerlidir.",
	"email.reset.subject":               "Şifre Sıfırlama",
	"email.reset.body":                  "Merhaba %s,\n\nŞifrenizi sıfırlamak için aşağıdaki bağlantıya tıklayın:\n%s\n\nBu bağlantı %d saat boyunca geçerlidir. Bu isteği siz yapmadıysanız bu e-postayı dikkate almayın.",
	"email.two_factor.subject":          "Giriş Doğrulama Kodu",
	"email.two_factor.body":             "Giriş doğrulama kodunuz: %s\n\nBu kod %d dakika boyunca geçerlidir.",
	"email.order_status.subject":        "Sipariş %s: %s",
	"email.order_status.body":           "Merhaba %s,\n\n%s numaralı siparişinizin durumu güncellendi: %s\nToplam tutar: %s TL",
	"email.order_status.body_shipped":   "Merhaba %s,\n\n%s numaralı siparişiniz yola çıktı (%s).\nToplam tutar: %s TL",
	"email.order_status.body_cancelled": "Merhaba %s,\n\n%s numaralı siparişiniz iptal edildi (%s).\nToplam tutar: %s TL",
}
