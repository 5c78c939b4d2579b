package dto

// SummaryRequest 生成申请摘要请求
type SummaryRequest struct {
	ApplicationID int64 `json:"application_id" binding:"required"`
	Save          bool  `json:"save,omitempty"`
}

// SummaryResponse 生成申请摘要响应
type SummaryResponse struct {
	ApplicationID int64  `json:"application_id"`
	Summary       string `json:"summary"`
	Saved         bool   `json:"saved"`
}

// FollowUpRequest 生成跟进邮件请求
type FollowUpRequest struct {
	ApplicationID int64 `json:"application_id" binding:"required"`
}

// FollowUpResponse 生成跟进邮件响应
type FollowUpResponse struct {
	ApplicationID int64  `json:"application_id"`
	Subject       string `json:"subject"`
	Body          string `json:"body"`
}

// ReviewRequest 生成申请点评请求
type ReviewRequest struct {
	ApplicationID int64 `json:"application_id" binding:"required"`
}

// ReviewSections 结构化点评内容
type ReviewSections struct {
	Strengths        []string `json:"strengths"`
	Risks            []string `json:"risks"`
	NextSteps        []string `json:"next_steps"`
	RecruiterSummary string   `json:"recruiter_summary"`
	TailoredPitch    string   `json:"tailored_pitch"`
}

// ReviewResponse 生成申请点评响应。
// 模型输出解析成功时返回 sections，否则原文放入 review_text。
type ReviewResponse struct {
	ApplicationID int64           `json:"application_id"`
	Sections      *ReviewSections `json:"sections"`
	ReviewText    string          `json:"review_text,omitempty"`
}
