package service

import (
	"fmt"

	"github.com/qs3c/jobtrack_go_server/internal/model"
	"github.com/qs3c/jobtrack_go_server/internal/model/dto"
)

// buildTips 基于快照指标生成行动建议，规则分三组：
// 阶段瓶颈、漏斗转化、申请池年龄。每组独立判断，互不影响。
func buildTips(snap *dto.InsightsSnapshot) []dto.Tip {
	tips := make([]dto.Tip, 0, 3)

	if tip := bottleneckTip(snap); tip != nil {
		tips = append(tips, *tip)
	}
	if tip := funnelTip(snap); tip != nil {
		tips = append(tips, *tip)
	}
	if tip := pipelineAgeTip(snap); tip != nil {
		tips = append(tips, *tip)
	}

	return tips
}

// bottleneckTip 找出平均停留最久的阶段；没有任何触达数据时提示开启跟踪
func bottleneckTip(snap *dto.InsightsSnapshot) *dto.Tip {
	var top model.Status
	topDays := -1.0
	for _, s := range model.AllStatuses {
		if snap.ReachedCount[s] == 0 {
			continue
		}
		if snap.AvgTimePerStage[s] > topDays {
			top = s
			topDays = snap.AvgTimePerStage[s]
		}
	}

	if topDays < 0 {
		return &dto.Tip{
			Title:    "请开启阶段耗时跟踪",
			Body:     "暂无阶段耗时数据，请确认创建申请和看板移动时正确记录了生命周期事件。",
			Severity: dto.SeverityHigh,
		}
	}

	metric := fmt.Sprintf("%s 平均 %.1f 天", top, topDays)
	switch {
	case topDays >= 7:
		return &dto.Tip{
			Title:    fmt.Sprintf("瓶颈：%s 阶段进展缓慢", top),
			Body:     fmt.Sprintf("申请在 %s 阶段平均停留 %.1f 天，建议收紧该阶段的跟进节奏：主动 follow-up、推动面试排期或补充新投递。", top, topDays),
			Severity: dto.SeverityHigh,
			Metric:   metric,
		}
	case topDays >= 3:
		return &dto.Tip{
			Title:    fmt.Sprintf("最慢阶段：%s", top),
			Body:     fmt.Sprintf("%s 是目前耗时最长的阶段（平均 %.1f 天），可以优先优化这一环节的推进速度。", top, topDays),
			Severity: dto.SeverityMedium,
			Metric:   metric,
		}
	default:
		return &dto.Tip{
			Title:    "各阶段推进节奏健康",
			Body:     fmt.Sprintf("目前最慢的阶段是 %s（平均 %.1f 天），整体流转速度良好，保持即可。", top, topDays),
			Severity: dto.SeverityLow,
			Metric:   metric,
		}
	}
}

// funnelTip 漏斗转化建议，规则互斥，按严重程度从高到低匹配第一条
func funnelTip(snap *dto.InsightsSnapshot) *dto.Tip {
	applied := snap.ByStatus[model.StatusApplied]
	interview := snap.ByStatus[model.StatusInterview]
	a2i := snap.Funnel.AppliedToInterview
	i2o := snap.Funnel.InterviewToOffer

	switch {
	case applied >= 5 && a2i < 0.20:
		return &dto.Tip{
			Title:    "APPLIED → INTERVIEW 转化率偏低",
			Body:     fmt.Sprintf("目前只有 %d%% 的申请进入了面试，建议打磨简历与求职信，或更精准地筛选匹配的职位。", pct(a2i)),
			Severity: dto.SeverityHigh,
			Metric:   fmt.Sprintf("转化率 %d%%", pct(a2i)),
		}
	case interview >= 3 && i2o < 0.25:
		return &dto.Tip{
			Title:    "INTERVIEW → OFFER 是当前最大的提升点",
			Body:     fmt.Sprintf("面试转 offer 的比例为 %d%%，建议复盘近期面试表现，针对薄弱环节做模拟练习。", pct(i2o)),
			Severity: dto.SeverityMedium,
			Metric:   fmt.Sprintf("转化率 %d%%", pct(i2o)),
		}
	case interview >= 3:
		return &dto.Tip{
			Title:    "面试表现不错",
			Body:     fmt.Sprintf("面试转 offer 的比例达到 %d%%，继续保持当前的面试准备方式。", pct(i2o)),
			Severity: dto.SeverityLow,
			Metric:   fmt.Sprintf("转化率 %d%%", pct(i2o)),
		}
	}

	return nil
}

// pipelineAgeTip 申请池平均年龄建议，少于 5 条申请时不给出
func pipelineAgeTip(snap *dto.InsightsSnapshot) *dto.Tip {
	if snap.TotalApplications < 5 {
		return nil
	}

	age := snap.AvgDaysInPipeline
	metric := fmt.Sprintf("平均 %.1f 天", age)
	switch {
	case age >= 21:
		return &dto.Tip{
			Title:    "申请池可能已经老化",
			Body:     fmt.Sprintf("在途申请的平均年龄达到 %.1f 天，建议清理长期没有进展的条目，并补充一批新投递。", age),
			Severity: dto.SeverityHigh,
			Metric:   metric,
		}
	case age >= 10:
		return &dto.Tip{
			Title:    "申请池年龄偏高",
			Body:     fmt.Sprintf("在途申请的平均年龄为 %.1f 天，对迟迟没有回音的申请可以主动跟进一轮。", age),
			Severity: dto.SeverityMedium,
			Metric:   metric,
		}
	default:
		return &dto.Tip{
			Title:    "申请池很新鲜",
			Body:     fmt.Sprintf("在途申请的平均年龄只有 %.1f 天，投递节奏保持得很好。", age),
			Severity: dto.SeverityLow,
			Metric:   metric,
		}
	}
}
