package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const (
	// LocaleTR 土耳其语（默认）
	LocaleTR = "tr-TR"
	// LocaleEN 英语
	LocaleEN = "en-US"
	// DefaultLocale 默认语言
	DefaultLocale = LocaleTR
)

var (
	supportedTags = []language.Tag{language.MustParse(LocaleTR), language.MustParse(LocaleEN)}
	matcher       = language.NewMatcher(supportedTags)
	catalogs      = map[string]map[string]string{
		LocaleTR: messagesTR,
		LocaleEN: messagesEN,
	}
)

// ResolveLocale 按 lang 参数、X-Locale 头、Accept-Language 的顺序解析语言
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if value := strings.TrimSpace(c.Query("lang")); value != "" {
		return NormalizeLocale(value)
	}
	if value := strings.TrimSpace(c.GetHeader("X-Locale")); value != "" {
		return NormalizeLocale(value)
	}
	if value := strings.TrimSpace(c.GetHeader("Accept-Language")); value != "" {
		return NormalizeLocale(value)
	}
	return DefaultLocale
}

// NormalizeLocale 将任意语言标识归一化为受支持的语言
func NormalizeLocale(raw string) string {
	tags, _, err := language.ParseAcceptLanguage(raw)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultLocale
	}
	return supportedTags[index].String()
}

// T 翻译文案，缺失时回退到默认语言，再回退到 key 本身
func T(locale, key string) string {
	if msg, ok := catalogs[locale][key]; ok {
		return msg
	}
	if msg, ok := catalogs[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 翻译并格式化文案
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}
