package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/xrjjing/moo-todo/internal/model"
	"github.com/xrjjing/moo-todo/internal/repository"
)

const (
	settingsKey = "app_settings"
	themeKey    = "theme"
	zoomKey     = "zoom"
)

// SettingsService exposes the typed settings struct plus a couple of raw
// knobs (theme, zoom) the UI reads before the full settings load.
type SettingsService struct {
	repo *repository.SettingRepository
}

func NewSettingsService(repo *repository.SettingRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// Get returns stored settings merged over defaults, so new fields pick up
// their default without a migration.
func (s *SettingsService) Get(ctx context.Context) (model.Settings, error) {
	settings := model.DefaultSettings()

	raw, ok, err := s.repo.Get(ctx, settingsKey)
	if err != nil {
		return settings, err
	}
	if ok {
		if err := json.Unmarshal([]byte(raw), &settings); err != nil {
			return model.DefaultSettings(), nil // corrupt row, fall back
		}
	}
	return settings, nil
}

// Update applies non-nil fields and persists the result.
func (s *SettingsService) Update(ctx context.Context, patch map[string]any) (model.Settings, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return settings, err
	}

	// Round-trip the patch through JSON onto the struct: unknown keys are
	// dropped, known keys overwrite.
	data, err := json.Marshal(patch)
	if err != nil {
		return settings, fmt.Errorf("encode settings patch: %w", err)
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("apply settings patch: %w", ErrValidation)
	}

	encoded, err := json.Marshal(settings)
	if err != nil {
		return settings, fmt.Errorf("encode settings: %w", err)
	}
	if err := s.repo.Set(ctx, settingsKey, string(encoded)); err != nil {
		return settings, err
	}
	return settings, nil
}

func (s *SettingsService) Theme(ctx context.Context) (string, error) {
	raw, ok, err := s.repo.Get(ctx, themeKey)
	if err != nil || !ok {
		return "cute", err
	}
	var theme string
	if json.Unmarshal([]byte(raw), &theme) != nil {
		return "cute", nil
	}
	return theme, nil
}

func (s *SettingsService) SaveTheme(ctx context.Context, theme string) error {
	encoded, _ := json.Marshal(theme)
	return s.repo.Set(ctx, themeKey, string(encoded))
}

func (s *SettingsService) Zoom(ctx context.Context) (int, error) {
	raw, ok, err := s.repo.Get(ctx, zoomKey)
	if err != nil || !ok {
		return 100, err
	}
	var zoom int
	if json.Unmarshal([]byte(raw), &zoom) != nil || zoom <= 0 {
		return 100, nil
	}
	return zoom, nil
}

func (s *SettingsService) SaveZoom(ctx context.Context, zoom int) error {
	if zoom <= 0 {
		return fmt.Errorf("zoom must be positive: %w", ErrValidation)
	}
	encoded, _ := json.Marshal(zoom)
	return s.repo.Set(ctx, zoomKey, string(encoded))
}
