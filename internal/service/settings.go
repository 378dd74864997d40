package service

import (
	"context"
	"fmt"

	"trading-journal/config"
	"trading-journal/internal/dto"
	"trading-journal/internal/model"
	"trading-journal/internal/repository"
	"trading-journal/pkg/cache"
	"trading-journal/pkg/common"
	"trading-journal/pkg/logger"
)

type SettingsService interface {
	Get(ctx context.Context, userID uint) (*dto.UserSettings, error)
	// Save publishes the new settings to readers before persisting them and restores the
	// previous entry if the write fails.
	Save(ctx context.Context, userID uint, req dto.SaveSettingsRequest) (*dto.UserSettings, error)
	Invalidate(userID uint)
}

type settingsService struct {
	cfg             *config.Config
	log             *logger.Logger
	cache           cache.Cache
	userSettingRepo repository.UserSettingRepository
}

func NewSettingsService(cfg *config.Config, log *logger.Logger, inmemoryCache cache.Cache, userSettingRepo repository.UserSettingRepository) SettingsService {
	return &settingsService{
		cfg:             cfg,
		log:             log,
		cache:           inmemoryCache,
		userSettingRepo: userSettingRepo,
	}
}

func (s *settingsService) Get(ctx context.Context, userID uint) (*dto.UserSettings, error) {
	key := fmt.Sprintf(common.KEY_USER_SETTINGS, userID)
	if cached, ok := cache.GetFromCache[*dto.UserSettings](s.cache, key); ok {
		return cached, nil
	}

	setting, err := s.userSettingRepo.Get(ctx, userID)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to get user settings", logger.ErrorField(err), logger.UintField("user_id", userID))
		return nil, fmt.Errorf("failed to get user settings: %w", err)
	}

	result := toUserSettings(setting)
	s.cache.Set(key, result, s.cfg.Cache.SettingsExpDuration)
	return result, nil
}

func (s *settingsService) Save(ctx context.Context, userID uint, req dto.SaveSettingsRequest) (*dto.UserSettings, error) {
	key := fmt.Sprintf(common.KEY_USER_SETTINGS, userID)
	previous, hadPrevious := cache.GetFromCache[*dto.UserSettings](s.cache, key)

	next := &dto.UserSettings{
		UserID:     userID,
		Tags:       dedupe(req.Tags),
		Strategies: dedupe(req.Strategies),
	}
	s.cache.Set(key, next, s.cfg.Cache.SettingsExpDuration)

	err := s.userSettingRepo.Save(ctx, &model.UserSetting{
		UserID:     userID,
		Tags:       next.Tags,
		Strategies: next.Strategies,
	})
	if err != nil {
		if hadPrevious {
			s.cache.Set(key, previous, s.cfg.Cache.SettingsExpDuration)
		} else {
			s.cache.Delete(key)
		}
		s.log.ErrorContext(ctx, "Failed to save user settings, cache rolled back", logger.ErrorField(err), logger.UintField("user_id", userID))
		return nil, fmt.Errorf("failed to save user settings: %w", err)
	}

	s.log.InfoContext(ctx, "User settings saved",
		logger.UintField("user_id", userID),
		logger.IntField("tags", len(next.Tags)),
		logger.IntField("strategies", len(next.Strategies)),
	)
	return next, nil
}

func (s *settingsService) Invalidate(userID uint) {
	s.cache.Delete(fmt.Sprintf(common.KEY_USER_SETTINGS, userID))
}

func toUserSettings(m *model.UserSetting) *dto.UserSettings {
	return &dto.UserSettings{
		UserID:     m.UserID,
		Tags:       append([]string{}, m.Tags...),
		Strategies: append([]string{}, m.Strategies...),
	}
}

// dedupe keeps the first occurrence of every value.
func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
