package service

import (
	"math"
	"time"

	"github.com/qs3c/jobtrack_go_server/internal/model"
	"github.com/qs3c/jobtrack_go_server/internal/model/dto"
)

const dailyWindowDays = 30

// stageAccumulator 阶段耗时折叠的累加器。
// reached 按阶段记录触达过的申请 ID 集合：重复进入同一阶段会累加时长，
// 但触达数只计一次。
type stageAccumulator struct {
	durationSum map[model.Status]float64
	reached     map[model.Status]map[int64]struct{}
}

func newStageAccumulator() *stageAccumulator {
	acc := &stageAccumulator{
		durationSum: make(map[model.Status]float64, len(model.AllStatuses)),
		reached:     make(map[model.Status]map[int64]struct{}, len(model.AllStatuses)),
	}
	for _, s := range model.AllStatuses {
		acc.durationSum[s] = 0
		acc.reached[s] = make(map[int64]struct{})
	}
	return acc
}

func (acc *stageAccumulator) markReached(status model.Status, appID int64) {
	acc.reached[status][appID] = struct{}{}
}

// foldApplication 按时间顺序回放单个申请的事件，把各阶段停留时长累入 acc。
// 起点取 CREATED 事件的 toStatus/时间，缺失时退回申请行的当前状态与创建时间；
// 末段补足从最后一次变更到 now 的时长（即当前阶段的停留时间）。
func (acc *stageAccumulator) foldApplication(app *model.Application, events []model.ApplicationEvent, now time.Time) {
	currentStatus := app.Status
	if !currentStatus.Valid() {
		currentStatus = model.StatusApplied
	}
	currentTime := app.CreatedAt

	for i := range events {
		if events[i].Type == model.EventCreated {
			if events[i].ToStatus.Valid() {
				currentStatus = events[i].ToStatus
				currentTime = events[i].CreatedAt
			}
			break
		}
	}

	acc.markReached(currentStatus, app.ID)

	for i := range events {
		e := &events[i]
		if e.Type != model.EventStatusChange || !e.ToStatus.Valid() {
			continue
		}

		acc.durationSum[currentStatus] += daysBetween(currentTime, e.CreatedAt)

		currentStatus = e.ToStatus
		currentTime = e.CreatedAt
		acc.markReached(currentStatus, app.ID)
	}

	acc.durationSum[currentStatus] += daysBetween(currentTime, now)
}

// ComputeSnapshot 基于申请与事件快照计算洞察指标。
// 纯函数：无副作用，相同输入（含 now）必然得到相同输出；
// 对空输入、零分母等退化情况一律返回中性值，从不报错。
func ComputeSnapshot(apps []model.Application, events []model.ApplicationEvent, now time.Time) *dto.InsightsSnapshot {
	byStatus := make(model.StatusCounts, len(model.AllStatuses))
	for _, s := range model.AllStatuses {
		byStatus[s] = 0
	}

	totalAge := 0.0
	for i := range apps {
		if apps[i].Status.Valid() {
			byStatus[apps[i].Status]++
		}
		totalAge += daysBetween(apps[i].CreatedAt, now)
	}

	avgDaysInPipeline := 0.0
	if len(apps) > 0 {
		avgDaysInPipeline = round1(totalAge / float64(len(apps)))
	}

	funnel := model.FunnelRates{}
	if byStatus[model.StatusApplied] > 0 {
		funnel.AppliedToInterview = float64(byStatus[model.StatusInterview]) / float64(byStatus[model.StatusApplied])
	}
	if byStatus[model.StatusInterview] > 0 {
		funnel.InterviewToOffer = float64(byStatus[model.StatusOffer]) / float64(byStatus[model.StatusInterview])
	}
	if byStatus[model.StatusOffer] > 0 {
		funnel.OfferToAccepted = float64(byStatus[model.StatusOffer]-byStatus[model.StatusRejected]) / float64(byStatus[model.StatusOffer])
	}

	dailyCreated := computeDailyCreated(apps, now)

	eventsByApp := make(map[int64][]model.ApplicationEvent, len(apps))
	for _, e := range events {
		eventsByApp[e.ApplicationID] = append(eventsByApp[e.ApplicationID], e)
	}

	acc := newStageAccumulator()
	for i := range apps {
		acc.foldApplication(&apps[i], eventsByApp[apps[i].ID], now)
	}

	avgTimePerStage := make(model.StageAverages, len(model.AllStatuses))
	reachedCount := make(model.StatusCounts, len(model.AllStatuses))
	for _, s := range model.AllStatuses {
		reachedCount[s] = len(acc.reached[s])
		if reachedCount[s] > 0 {
			avgTimePerStage[s] = round1(acc.durationSum[s] / float64(reachedCount[s]))
		} else {
			avgTimePerStage[s] = 0
		}
	}

	snapshot := &dto.InsightsSnapshot{
		TotalApplications: len(apps),
		ByStatus:          byStatus,
		AvgDaysInPipeline: avgDaysInPipeline,
		Funnel:            funnel,
		DailyCreated:      dailyCreated,
		AvgTimePerStage:   avgTimePerStage,
		ReachedCount:      reachedCount,
	}
	snapshot.Tips = buildTips(snapshot)

	return snapshot
}

// computeDailyCreated 统计最近 30 个 UTC 自然日的逐日新建数，含零计数日
func computeDailyCreated(apps []model.Application, now time.Time) model.DailyCounts {
	day := now.UTC().Truncate(24 * time.Hour)
	start := day.AddDate(0, 0, -(dailyWindowDays - 1))

	counts := make(map[string]int, dailyWindowDays)
	dates := make([]string, 0, dailyWindowDays)
	for i := 0; i < dailyWindowDays; i++ {
		key := start.AddDate(0, 0, i).Format("2006-01-02")
		counts[key] = 0
		dates = append(dates, key)
	}

	for i := range apps {
		key := apps[i].CreatedAt.UTC().Format("2006-01-02")
		if _, ok := counts[key]; ok {
			counts[key]++
		}
	}

	daily := make(model.DailyCounts, 0, dailyWindowDays)
	for _, date := range dates {
		daily = append(daily, model.DailyCount{Date: date, Count: counts[date]})
	}
	return daily
}

// daysBetween 两个时刻之间的自然日时长（可为小数），时钟回拨时取 0
func daysBetween(a, b time.Time) float64 {
	days := b.Sub(a).Hours() / 24
	if days < 0 {
		return 0
	}
	return days
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// pct 比率转整数百分比，非有限值退化为 0
func pct(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Round(v * 100))
}
