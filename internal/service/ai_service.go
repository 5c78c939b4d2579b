package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/qs3c/jobtrack_go_server/internal/model"
	"github.com/qs3c/jobtrack_go_server/internal/model/dto"
	"github.com/qs3c/jobtrack_go_server/internal/pkg/openai"
	"github.com/qs3c/jobtrack_go_server/internal/repository"
)

// AIService 基于申请内容生成文本的辅助功能。
// 生成失败不影响任何已存数据；只有摘要在显式要求时才会回写申请行。
type AIService struct {
	appRepo *repository.ApplicationRepository
	client  *openai.Client
}

func NewAIService(appRepo *repository.ApplicationRepository, client *openai.Client) *AIService {
	return &AIService{
		appRepo: appRepo,
		client:  client,
	}
}

// Summary 生成单条申请的摘要，save 为真时回写到 ai_summary 字段
func (s *AIService) Summary(ctx context.Context, req *dto.SummaryRequest) (*dto.SummaryResponse, error) {
	app, err := s.getApplication(req.ApplicationID)
	if err != nil {
		return nil, err
	}

	text, err := s.client.Generate(ctx, summaryPrompt(app))
	if err != nil {
		return nil, err
	}

	saved := false
	if req.Save {
		if err := s.appRepo.UpdateFields(app.ID, map[string]interface{}{"ai_summary": text}); err != nil {
			log.Printf("failed to save summary for application %d: %v", app.ID, err)
		} else {
			saved = true
		}
	}

	return &dto.SummaryResponse{
		ApplicationID: app.ID,
		Summary:       text,
		Saved:         saved,
	}, nil
}

// FollowUp 生成跟进邮件，首行作为主题，其余作为正文
func (s *AIService) FollowUp(ctx context.Context, req *dto.FollowUpRequest) (*dto.FollowUpResponse, error) {
	app, err := s.getApplication(req.ApplicationID)
	if err != nil {
		return nil, err
	}

	text, err := s.client.Generate(ctx, followUpPrompt(app))
	if err != nil {
		return nil, err
	}

	subject, body := splitSubjectBody(text)
	return &dto.FollowUpResponse{
		ApplicationID: app.ID,
		Subject:       subject,
		Body:          body,
	}, nil
}

// Review 生成结构化的申请点评。
// 模型被要求返回固定形状的 JSON；解析失败时不算错误，
// 原文整体作为 review_text 返回。
func (s *AIService) Review(ctx context.Context, req *dto.ReviewRequest) (*dto.ReviewResponse, error) {
	app, err := s.getApplication(req.ApplicationID)
	if err != nil {
		return nil, err
	}

	text, err := s.client.Generate(ctx, reviewPrompt(app))
	if err != nil {
		return nil, err
	}

	var sections *dto.ReviewSections
	if err := json.Unmarshal([]byte(text), &sections); err != nil || sections == nil {
		return &dto.ReviewResponse{
			ApplicationID: app.ID,
			ReviewText:    text,
		}, nil
	}

	return &dto.ReviewResponse{
		ApplicationID: app.ID,
		Sections:      sections,
	}, nil
}

func (s *AIService) getApplication(id int64) (*model.Application, error) {
	app, err := s.appRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return app, nil
}

func summaryPrompt(app *model.Application) string {
	var b strings.Builder
	b.WriteString("Summarize this job application in 2-3 sentences (Chinese). Mention the company, role and current stage. Plain text, no markdown.\n\n")
	writeApplicationFacts(&b, app)
	return b.String()
}

func followUpPrompt(app *model.Application) string {
	var b strings.Builder
	b.WriteString("Write a short, polite follow-up email (Chinese) for this job application. First line is the subject, the rest is the body. Plain text, no markdown, no placeholders like [Name].\n\n")
	writeApplicationFacts(&b, app)
	return b.String()
}

func reviewPrompt(app *model.Application) string {
	var b strings.Builder
	b.WriteString("You are an expert recruiter and hiring manager for software roles. Generate an application review (Chinese). Be practical, specific and recruiter-friendly, no fluff.\n\n")
	writeApplicationFacts(&b, app)
	b.WriteString("\nReturn ONLY valid JSON with this exact shape:\n")
	b.WriteString(`{"strengths": string[], "risks": string[], "next_steps": string[], "recruiter_summary": string, "tailored_pitch": string}`)
	b.WriteString("\n\nRules:\n")
	b.WriteString("- recruiter_summary: 2-4 sentences, neutral and professional.\n")
	b.WriteString("- tailored_pitch: 2-4 sentences, first-person, ready to paste in a message.\n")
	b.WriteString("- strengths/risks/next_steps: 3-6 short bullets each.\n")
	return b.String()
}

func writeApplicationFacts(b *strings.Builder, app *model.Application) {
	fmt.Fprintf(b, "Company: %s\n", app.Company)
	fmt.Fprintf(b, "Role: %s\n", app.Role)
	fmt.Fprintf(b, "Stage: %s\n", app.Status)
	if app.Location != "" {
		fmt.Fprintf(b, "Location: %s\n", app.Location)
	}
	fmt.Fprintf(b, "Applied on: %s\n", app.CreatedAt.Format("2006-01-02"))
}

// splitSubjectBody 首个非空行为主题，其余为正文
func splitSubjectBody(text string) (string, string) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	subject := ""
	bodyStart := 0
	for i, line := range lines {
		if s := strings.TrimSpace(line); s != "" {
			subject = s
			bodyStart = i + 1
			break
		}
	}
	body := strings.TrimSpace(strings.Join(lines[bodyStart:], "\n"))
	return subject, body
}
