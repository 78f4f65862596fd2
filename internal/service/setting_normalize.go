package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Selinclb/eticaretsitesi/internal/constants"
	"github.com/Selinclb/eticaretsitesi/internal/models"
)

const (
	settingShortFieldMaxRunes  = 500
	settingPolicyFieldMaxRunes = 100000
)

// settingFields 每个设置键允许的字段
var settingFields = map[string][]string{
	constants.SettingKeyContact:     {"phone", "email", "location"},
	constants.SettingKeySocialMedia: {"instagram", "facebook", "twitter", "linkedin", "youtube", "tiktok"},
	constants.SettingKeyPolicies:    {"privacy_policy", "terms_of_service", "return_policy"},
}

// IsSettingKeySupported 是否为受支持的设置键
func IsSettingKeySupported(key string) bool {
	_, ok := settingFields[key]
	return ok
}

// defaultSettingValue 所有字段为空字符串的默认值
func defaultSettingValue(key string) models.JSON {
	fields := settingFields[key]
	value := make(models.JSON, len(fields))
	for _, field := range fields {
		value[field] = ""
	}
	return value
}

// normalizeSettingValue 只保留允许字段，值必须为字符串
func normalizeSettingValue(key string, value map[string]interface{}) (models.JSON, error) {
	fields, ok := settingFields[key]
	if !ok {
		return nil, ErrSettingKeyInvalid
	}
	maxRunes := settingShortFieldMaxRunes
	if key == constants.SettingKeyPolicies {
		maxRunes = settingPolicyFieldMaxRunes
	}
	normalized := defaultSettingValue(key)
	for _, field := range fields {
		raw, exists := value[field]
		if !exists || raw == nil {
			continue
		}
		text, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrSettingValueInvalid, field)
		}
		text = strings.TrimSpace(text)
		if utf8.RuneCountInString(text) > maxRunes {
			return nil, fmt.Errorf("%w: %s", ErrSettingValueInvalid, field)
		}
		normalized[field] = text
	}
	return normalized, nil
}

// mergeSettingValue 合并已存值与默认值，丢弃未知字段
func mergeSettingValue(key string, stored models.JSON) models.JSON {
	merged := defaultSettingValue(key)
	for _, field := range settingFields[key] {
		if text, ok := stored[field].(string); ok {
			merged[field] = text
		}
	}
	return merged
}
