package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/qs3c/jobtrack_go_server/internal/model"
	"github.com/qs3c/jobtrack_go_server/internal/model/dto"
	"github.com/qs3c/jobtrack_go_server/internal/repository"
)

// ApplicationService 申请 CRUD 服务。
// 涉及状态变更的更新统一走看板服务，保证顺序与事件语义一致。
type ApplicationService struct {
	appRepo   *repository.ApplicationRepository
	eventRepo *repository.EventRepository
	board     *BoardService
	insights  *InsightService
}

func NewApplicationService(
	appRepo *repository.ApplicationRepository,
	eventRepo *repository.EventRepository,
	board *BoardService,
	insights *InsightService,
) *ApplicationService {
	return &ApplicationService{
		appRepo:   appRepo,
		eventRepo: eventRepo,
		board:     board,
		insights:  insights,
	}
}

// Create 创建申请，新申请追加到所在列尾部
func (s *ApplicationService) Create(ctx context.Context, req *dto.CreateApplicationRequest) (*model.Application, error) {
	status := model.StatusApplied
	if req.Status != "" {
		status = model.Status(req.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
	}

	count, err := s.appRepo.CountByStatus(status)
	if err != nil {
		return nil, err
	}

	app := &model.Application{
		Company:  req.Company,
		Role:     req.Role,
		Status:   status,
		Position: int(count),
		Location: req.Location,
		JobURL:   req.JobURL,
	}

	if err := s.appRepo.CreateWithEvent(app); err != nil {
		return nil, err
	}

	s.insights.Invalidate(ctx)
	return app, nil
}

// List 获取全部申请，按创建时间倒序
func (s *ApplicationService) List() ([]model.Application, error) {
	return s.appRepo.ListAll()
}

// Get 获取单条申请及其事件时间线
func (s *ApplicationService) Get(id int64) (*dto.ApplicationDetail, error) {
	app, err := s.appRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}

	events, err := s.eventRepo.ListByApplicationID(id)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []model.ApplicationEvent{}
	}

	return &dto.ApplicationDetail{Application: app, Events: events}, nil
}

// Update 局部更新申请。
// 带 status 字段的更新等价于把申请移动到目标列列尾，
// 其余字段直接写入，不触碰顺序与事件。
func (s *ApplicationService) Update(ctx context.Context, id int64, req *dto.UpdateApplicationRequest) (*model.Application, error) {
	app, err := s.appRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}

	if req.Status != nil {
		dest := model.Status(*req.Status)
		if !dest.Valid() {
			return nil, ErrInvalidStatus
		}
		if dest != app.Status {
			if err := s.board.Move(ctx, &dto.MoveRequest{ID: id, DestStatus: string(dest)}); err != nil {
				return nil, err
			}
		}
	}

	fields := make(map[string]interface{})
	if req.Company != nil {
		fields["company"] = *req.Company
	}
	if req.Role != nil {
		fields["role"] = *req.Role
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.JobURL != nil {
		fields["job_url"] = *req.JobURL
	}
	if req.AISummary != nil {
		fields["ai_summary"] = *req.AISummary
	}

	if len(fields) > 0 {
		if err := s.appRepo.UpdateFields(id, fields); err != nil {
			return nil, err
		}
		s.insights.Invalidate(ctx)
	}

	return s.appRepo.GetByID(id)
}

// Delete 删除申请及其事件，并压实所在列的顺序
func (s *ApplicationService) Delete(ctx context.Context, id int64) error {
	app, err := s.appRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrApplicationNotFound
		}
		return err
	}

	if err := s.appRepo.DeleteCascade(app); err != nil {
		return err
	}

	s.insights.Invalidate(ctx)
	return nil
}
