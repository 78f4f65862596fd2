package service

import (
	"github.com/Selinclb/eticaretsitesi/internal/models"
	"github.com/Selinclb/eticaretsitesi/internal/repository"
)

// SettingService 站点设置业务服务
type SettingService struct {
	repo repository.SettingRepository
}

// NewSettingService 创建设置服务
func NewSettingService(repo repository.SettingRepository) *SettingService {
	return &SettingService{repo: repo}
}

// Get 获取设置，未保存时返回空字段
func (s *SettingService) Get(key string) (models.JSON, error) {
	if !IsSettingKeySupported(key) {
		return nil, ErrSettingKeyInvalid
	}
	setting, err := s.repo.GetByKey(key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return defaultSettingValue(key), nil
	}
	return mergeSettingValue(key, setting.ValueJSON), nil
}

// Update 整体替换设置值
func (s *SettingService) Update(key string, value map[string]interface{}) (models.JSON, error) {
	normalized, err := normalizeSettingValue(key, value)
	if err != nil {
		return nil, err
	}
	setting, err := s.repo.Upsert(key, normalized)
	if err != nil {
		return nil, err
	}
	return mergeSettingValue(key, setting.ValueJSON), nil
}
