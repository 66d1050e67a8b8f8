package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/license-service/internal/config"
	"github.com/spec-kit/license-service/internal/persistence"
	"github.com/spec-kit/license-service/internal/repository"
)

const userCountCacheKey = "stats:user_count"

// StatsService serves public statistics. The published user count is a
// configured base offset plus the real registered count, cached briefly in
// Redis to keep the hot endpoint off the database.
type StatsService struct {
	accounts repository.AccountRepository
	appcfg   repository.AppConfigRepository
	cache    *persistence.Redis
	logger   *zap.Logger
	baseDflt int
	cacheTTL time.Duration
}

// NewStatsService constructs the service.
func NewStatsService(cfg config.StatsConfig, accounts repository.AccountRepository, appcfg repository.AppConfigRepository, cache *persistence.Redis, logger *zap.Logger) *StatsService {
	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &StatsService{
		accounts: accounts,
		appcfg:   appcfg,
		cache:    cache,
		logger:   logger,
		baseDflt: cfg.BaseUserCount,
		cacheTTL: ttl,
	}
}

// UserCountResult breaks the published count into its parts.
type UserCountResult struct {
	Total int64 `json:"total"`
	Base  int64 `json:"base"`
	Real  int64 `json:"real"`
}

// UserCount returns the published user count, serving from cache when fresh.
func (s *StatsService) UserCount(ctx context.Context) (UserCountResult, error) {
	if cached, ok := s.fromCache(ctx); ok {
		return cached, nil
	}

	base := int64(s.baseDflt)
	if raw, ok, err := s.appcfg.Get(ctx, configKeyBaseUserCount); err != nil {
		return UserCountResult{}, err
	} else if ok {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil {
			base = parsed
		}
	}

	real, err := s.accounts.Count(ctx)
	if err != nil {
		return UserCountResult{}, err
	}

	result := UserCountResult{Total: base + real, Base: base, Real: real}
	s.toCache(ctx, result)
	return result, nil
}

// EnsureBaseCount seeds the base offset into the config store on first start.
func (s *StatsService) EnsureBaseCount(ctx context.Context) error {
	return s.appcfg.EnsureDefault(ctx, configKeyBaseUserCount, strconv.Itoa(s.baseDflt))
}

func (s *StatsService) fromCache(ctx context.Context) (UserCountResult, bool) {
	if s.cache == nil || s.cache.Client == nil {
		return UserCountResult{}, false
	}
	raw, err := s.cache.Client.Get(ctx, userCountCacheKey).Bytes()
	if err != nil {
		return UserCountResult{}, false
	}
	var result UserCountResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return UserCountResult{}, false
	}
	return result, true
}

func (s *StatsService) toCache(ctx context.Context, result UserCountResult) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.cache.Client.Set(ctx, userCountCacheKey, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Debug("user count cache write failed", zap.Error(err))
	}
}
