package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/jobtrack_go_server/internal/model"
	"github.com/qs3c/jobtrack_go_server/internal/model/dto"
	"github.com/qs3c/jobtrack_go_server/internal/pkg/openai"
	"github.com/qs3c/jobtrack_go_server/internal/repository"
)

// ErrReportNotFound 报告不存在
var ErrReportNotFound = errors.New("报告不存在")

const (
	historyDefaultTake = 20
	historyMaxTake     = 100
)

// CoachService 复盘报告服务。
// 报告是某个时间窗口内洞察指标的不可变快照；
// 叙述文本优先由模型生成，模型不可用时退回规则文本，指标本身不受影响。
type CoachService struct {
	appRepo    *repository.ApplicationRepository
	eventRepo  *repository.EventRepository
	reportRepo *repository.ReportRepository
	client     *openai.Client
}

func NewCoachService(
	appRepo *repository.ApplicationRepository,
	eventRepo *repository.EventRepository,
	reportRepo *repository.ReportRepository,
	client *openai.Client,
) *CoachService {
	return &CoachService{
		appRepo:    appRepo,
		eventRepo:  eventRepo,
		reportRepo: reportRepo,
		client:     client,
	}
}

// Generate 基于最近 range_days 天创建的申请生成复盘报告，默认落库保存
func (s *CoachService) Generate(ctx context.Context, req *dto.GenerateReportRequest) (*dto.GenerateReportResponse, error) {
	now := time.Now()
	since := now.AddDate(0, 0, -req.RangeDays)

	apps, err := s.appRepo.ListCreatedSince(since)
	if err != nil {
		return nil, err
	}

	var events []model.ApplicationEvent
	if len(apps) > 0 {
		ids := make([]int64, 0, len(apps))
		for i := range apps {
			ids = append(ids, apps[i].ID)
		}
		events, err = s.eventRepo.ListByApplicationIDs(ids)
		if err != nil {
			return nil, err
		}
	}

	snap := ComputeSnapshot(apps, events, now)

	reachedTotal := 0
	for _, n := range snap.ReachedCount {
		reachedTotal += n
	}

	report := &model.CoachReport{
		RangeDays:         req.RangeDays,
		TotalApplications: snap.TotalApplications,
		ByStatus:          snap.ByStatus,
		DailyCreated:      snap.DailyCreated,
		Funnel:            snap.Funnel,
		AvgDaysInPipeline: snap.AvgDaysInPipeline,
		AvgTimePerStage:   snap.AvgTimePerStage,
		ReachedCount:      reachedTotal,
		Title:             fmt.Sprintf("%d 日求职复盘", req.RangeDays),
		Summary:           s.narrative(ctx, req.RangeDays, snap),
		Priorities:        prioritiesFromTips(snap.Tips),
		CreatedAt:         now,
	}

	save := req.Save == nil || *req.Save
	if save {
		if err := s.reportRepo.Create(report); err != nil {
			return nil, err
		}
	}

	return &dto.GenerateReportResponse{ReportID: report.ID, Report: report}, nil
}

// History 获取报告历史，take 钳制到 [1, 100]，默认 20
func (s *CoachService) History(take int) ([]dto.ReportListItem, error) {
	if take <= 0 {
		take = historyDefaultTake
	}
	if take > historyMaxTake {
		take = historyMaxTake
	}

	reports, err := s.reportRepo.List(take)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ReportListItem, 0, len(reports))
	for i := range reports {
		r := &reports[i]
		items = append(items, dto.ReportListItem{
			ID:                r.ID,
			RangeDays:         r.RangeDays,
			TotalApplications: r.TotalApplications,
			AvgDaysInPipeline: r.AvgDaysInPipeline,
			ReachedCount:      r.ReachedCount,
			Title:             r.Title,
			CreatedAt:         r.CreatedAt.Format(time.RFC3339),
		})
	}
	return items, nil
}

// GetByID 获取单份报告
func (s *CoachService) GetByID(id int64) (*model.CoachReport, error) {
	report, err := s.reportRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return report, nil
}

// Compare 对比最新的 7 日与 30 日报告。
// 任一侧缺失时对应字段为 null，不算错误；
// 百分比变化在基准为 0 时为 null，避免除零产生的无穷值。
func (s *CoachService) Compare() (*dto.CompareResponse, error) {
	latest7, err := s.latestOrNil(7)
	if err != nil {
		return nil, err
	}
	latest30, err := s.latestOrNil(30)
	if err != nil {
		return nil, err
	}

	resp := &dto.CompareResponse{
		Latest7:     latest7,
		Latest30:    latest30,
		ActionCards: []dto.ActionCard{},
	}

	if latest7 != nil && latest30 != nil {
		resp.Delta = &dto.CompareDelta{
			TotalApplications: latest7.TotalApplications - latest30.TotalApplications,
			AvgDaysInPipeline: round1(latest7.AvgDaysInPipeline - latest30.AvgDaysInPipeline),
			ReachedCount:      latest7.ReachedCount - latest30.ReachedCount,
			Pct: dto.PctDeltas{
				TotalApplications: pctDelta(float64(latest7.TotalApplications), float64(latest30.TotalApplications)),
				AvgDaysInPipeline: pctDelta(latest7.AvgDaysInPipeline, latest30.AvgDaysInPipeline),
				ReachedCount:      pctDelta(float64(latest7.ReachedCount), float64(latest30.ReachedCount)),
			},
		}
	}

	resp.ActionCards = buildActionCards(latest7, latest30, resp.Delta)
	return resp, nil
}

func (s *CoachService) latestOrNil(rangeDays int) (*model.CoachReport, error) {
	report, err := s.reportRepo.LatestByRange(rangeDays)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return report, nil
}

// narrative 生成报告叙述，模型失败时退回规则文本
func (s *CoachService) narrative(ctx context.Context, rangeDays int, snap *dto.InsightsSnapshot) string {
	if s.client != nil && s.client.Configured() {
		text, err := s.client.Generate(ctx, reportPrompt(rangeDays, snap))
		if err == nil {
			return text
		}
		log.Printf("coach narrative generation failed, falling back: %v", err)
	}
	return fallbackNarrative(rangeDays, snap)
}

func reportPrompt(rangeDays int, snap *dto.InsightsSnapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a pragmatic job-search coach. Write a short review (2-3 sentences, Chinese) of the last %d days based on these metrics. Be specific and actionable, no fluff, no markdown.\n\n", rangeDays)
	fmt.Fprintf(&b, "Total applications: %d\n", snap.TotalApplications)
	for _, status := range model.AllStatuses {
		fmt.Fprintf(&b, "%s: %d\n", status, snap.ByStatus[status])
	}
	fmt.Fprintf(&b, "Average days in pipeline: %.1f\n", snap.AvgDaysInPipeline)
	fmt.Fprintf(&b, "Applied->Interview rate: %d%%\n", pct(snap.Funnel.AppliedToInterview))
	fmt.Fprintf(&b, "Interview->Offer rate: %d%%\n", pct(snap.Funnel.InterviewToOffer))
	for _, tip := range snap.Tips {
		fmt.Fprintf(&b, "Finding (%s): %s\n", tip.Severity, tip.Title)
	}
	return b.String()
}

func fallbackNarrative(rangeDays int, snap *dto.InsightsSnapshot) string {
	if snap.TotalApplications == 0 {
		return fmt.Sprintf("最近 %d 天没有新建申请。建议先补充一批投递，再回来看复盘数据。", rangeDays)
	}
	return fmt.Sprintf(
		"最近 %d 天共新建 %d 条申请，其中 %d 条进入面试、%d 条拿到 offer，申请平均在流程中停留 %.1f 天。",
		rangeDays,
		snap.TotalApplications,
		snap.ByStatus[model.StatusInterview],
		snap.ByStatus[model.StatusOffer],
		snap.AvgDaysInPipeline,
	)
}

// prioritiesFromTips 报告优先事项取自建议标题，最多三条
func prioritiesFromTips(tips []dto.Tip) model.StringArray {
	priorities := make(model.StringArray, 0, 3)
	for _, tip := range tips {
		if len(priorities) == 3 {
			break
		}
		priorities = append(priorities, tip.Title)
	}
	return priorities
}

// pctDelta 相对变化百分比，基准为 0 或结果非有限时返回 nil
func pctDelta(current, previous float64) *float64 {
	if previous == 0 || math.IsNaN(previous) || math.IsInf(previous, 0) {
		return nil
	}
	v := (current - previous) / previous * 100
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func buildActionCards(latest7, latest30 *model.CoachReport, delta *dto.CompareDelta) []dto.ActionCard {
	cards := make([]dto.ActionCard, 0, 2)

	if latest7 == nil && latest30 == nil {
		cards = append(cards, dto.ActionCard{
			Title:    "先生成一份报告",
			Body:     "还没有任何复盘报告，先生成一份 7 日报告建立基线。",
			Priority: dto.SeverityHigh,
		})
		return cards
	}

	if delta == nil {
		cards = append(cards, dto.ActionCard{
			Title:    "补齐另一份报告",
			Body:     "只有单一窗口的报告，补一份另一窗口的报告后才能对比趋势。",
			Priority: dto.SeverityMedium,
		})
		return cards
	}

	if delta.TotalApplications < 0 {
		cards = append(cards, dto.ActionCard{
			Title:    "投递节奏在放缓",
			Body:     fmt.Sprintf("近 7 日窗口比 30 日窗口少了 %d 条新建申请，注意保持投递频率。", -delta.TotalApplications),
			Priority: dto.SeverityMedium,
		})
	}
	if delta.AvgDaysInPipeline > 0 {
		cards = append(cards, dto.ActionCard{
			Title:    "流程停留时间变长",
			Body:     fmt.Sprintf("申请平均停留时间比 30 日基线多了 %.1f 天，挑几条停滞的申请主动跟进。", delta.AvgDaysInPipeline),
			Priority: dto.SeverityMedium,
		})
	}
	if len(cards) == 0 {
		cards = append(cards, dto.ActionCard{
			Title:    "保持当前节奏",
			Body:     "近 7 日的各项指标不差于 30 日基线，按当前节奏继续推进。",
			Priority: dto.SeverityLow,
		})
	}
	return cards
}
