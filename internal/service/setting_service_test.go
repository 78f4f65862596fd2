package service

import (
	"errors"
	"testing"

	"github.com/Selinclb/eticaretsitesi/internal/constants"
	"github.com/Selinclb/eticaretsitesi/internal/models"
)

type mockSettingRepo struct {
	store map[string]models.JSON
}

func newMockSettingRepo() *mockSettingRepo {
	return &mockSettingRepo{store: map[string]models.JSON{}}
}

func (m *mockSettingRepo) GetByKey(key string) (*models.Setting, error) {
	value, ok := m.store[key]
	if !ok {
		return nil, nil
	}
	return &models.Setting{Key: key, ValueJSON: value}, nil
}

func (m *mockSettingRepo) Upsert(key string, value models.JSON) (*models.Setting, error) {
	m.store[key] = value
	return &models.Setting{Key: key, ValueJSON: value}, nil
}

func TestSettingGetDefaultsWhenMissing(t *testing.T) {
	svc := NewSettingService(newMockSettingRepo())

	value, err := svc.Get(constants.SettingKeySocialMedia)
	if err != nil {
		t.Fatalf("get social media failed: %v", err)
	}
	for _, field := range []string{"instagram", "facebook", "twitter", "linkedin", "youtube", "tiktok"} {
		if value[field] != "" {
			t.Fatalf("expected empty %s, got %v", field, value[field])
		}
	}
}

func TestSettingUpdateKeepsAllowedFields(t *testing.T) {
	repo := newMockSettingRepo()
	svc := NewSettingService(repo)

	result, err := svc.Update(constants.SettingKeyContact, map[string]interface{}{
		"phone":    "  +90 212 000 00 00 ",
		"email":    "info@example.com",
		"location": "İstanbul",
		"extra":    "drop",
	})
	if err != nil {
		t.Fatalf("update contact failed: %v", err)
	}
	if result["phone"] != "+90 212 000 00 00" {
		t.Fatalf("unexpected phone: %v", result["phone"])
	}
	if _, ok := result["extra"]; ok {
		t.Fatalf("unknown field should be dropped")
	}
	if _, ok := repo.store[constants.SettingKeyContact]["extra"]; ok {
		t.Fatalf("unknown field should not be stored")
	}

	loaded, err := svc.Get(constants.SettingKeyContact)
	if err != nil {
		t.Fatalf("get contact failed: %v", err)
	}
	if loaded["location"] != "İstanbul" {
		t.Fatalf("unexpected location: %v", loaded["location"])
	}
}

func TestSettingUpdateRejectsInvalidInput(t *testing.T) {
	svc := NewSettingService(newMockSettingRepo())

	if _, err := svc.Update("site_config", map[string]interface{}{}); !errors.Is(err, ErrSettingKeyInvalid) {
		t.Fatalf("expected ErrSettingKeyInvalid, got %v", err)
	}
	if _, err := svc.Get("site_config"); !errors.Is(err, ErrSettingKeyInvalid) {
		t.Fatalf("expected ErrSettingKeyInvalid on get, got %v", err)
	}
	_, err := svc.Update(constants.SettingKeyPolicies, map[string]interface{}{
		"privacy_policy": 42,
	})
	if !errors.Is(err, ErrSettingValueInvalid) {
		t.Fatalf("expected ErrSettingValueInvalid, got %v", err)
	}
}
