package service

import (
	"context"
	"log"
	"time"

	"github.com/qs3c/jobtrack_go_server/internal/model/dto"
	"github.com/qs3c/jobtrack_go_server/internal/pkg/cache"
	"github.com/qs3c/jobtrack_go_server/internal/repository"
)

// InsightService 洞察快照服务。
// 快照由全量申请与事件实时计算，Redis 缓存仅用于降低重复读的开销，
// 缓存不可用时自动降级为直接计算。
type InsightService struct {
	appRepo   *repository.ApplicationRepository
	eventRepo *repository.EventRepository
	cache     *cache.Cache
}

func NewInsightService(
	appRepo *repository.ApplicationRepository,
	eventRepo *repository.EventRepository,
	c *cache.Cache,
) *InsightService {
	return &InsightService{
		appRepo:   appRepo,
		eventRepo: eventRepo,
		cache:     c,
	}
}

// Snapshot 获取洞察快照，优先走缓存
func (s *InsightService) Snapshot(ctx context.Context) (*dto.InsightsSnapshot, error) {
	if s.cache != nil {
		var cached dto.InsightsSnapshot
		hit, err := s.cache.Get(ctx, cache.KeyInsightsSnapshot, &cached)
		if err != nil {
			log.Printf("insights cache read failed: %v", err)
		} else if hit {
			return &cached, nil
		}
	}

	apps, err := s.appRepo.ListAll()
	if err != nil {
		return nil, err
	}
	events, err := s.eventRepo.ListAllOrdered()
	if err != nil {
		return nil, err
	}

	snapshot := ComputeSnapshot(apps, events, time.Now())

	if s.cache != nil {
		if err := s.cache.Set(ctx, cache.KeyInsightsSnapshot, snapshot); err != nil {
			log.Printf("insights cache write failed: %v", err)
		}
	}

	return snapshot, nil
}

// Invalidate 使缓存失效，任何写操作成功后调用
func (s *InsightService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.KeyInsightsSnapshot); err != nil {
		log.Printf("insights cache invalidate failed: %v", err)
	}
}
