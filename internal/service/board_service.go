package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/qs3c/jobtrack_go_server/internal/model"
	"github.com/qs3c/jobtrack_go_server/internal/model/dto"
	"github.com/qs3c/jobtrack_go_server/internal/repository"
)

var (
	// ErrApplicationNotFound 申请不存在
	ErrApplicationNotFound = errors.New("申请不存在")
	// ErrInvalidStatus 非法的阶段状态
	ErrInvalidStatus = errors.New("非法的阶段状态")
	// ErrDuplicateIDs 排序列表中存在重复 ID
	ErrDuplicateIDs = errors.New("ordered_ids 中存在重复 ID")
	// ErrUnknownIDs 排序列表中存在不存在的 ID
	ErrUnknownIDs = errors.New("ordered_ids 中存在不存在的申请 ID")
	// ErrIncompleteColumn 排序列表未覆盖目标列的全部申请
	ErrIncompleteColumn = errors.New("ordered_ids 必须包含目标列当前的全部申请")
)

// BoardService 看板服务。
// 所有写入走单一事务：要么整次变更全部落盘，要么一行都不改，
// 每列 position 始终保持 0..n-1 紧凑。
type BoardService struct {
	appRepo   *repository.ApplicationRepository
	boardRepo *repository.BoardRepository
	insights  *InsightService
}

func NewBoardService(
	appRepo *repository.ApplicationRepository,
	boardRepo *repository.BoardRepository,
	insights *InsightService,
) *BoardService {
	return &BoardService{
		appRepo:   appRepo,
		boardRepo: boardRepo,
		insights:  insights,
	}
}

// Board 获取看板视图，四列按流程顺序排列
func (s *BoardService) Board() (*dto.BoardResponse, error) {
	columns := make([]dto.BoardColumn, 0, len(model.AllStatuses))
	for _, status := range model.AllStatuses {
		apps, err := s.appRepo.ListByStatusOrdered(status)
		if err != nil {
			return nil, err
		}
		if apps == nil {
			apps = []model.Application{}
		}
		columns = append(columns, dto.BoardColumn{Status: status, Applications: apps})
	}
	return &dto.BoardResponse{Columns: columns}, nil
}

// Move 把一条申请移动到目标列的指定位置。
// dest_index 省略或越界时钳制到列尾；跨列移动会在同一事务内
// 压实源列顺序并追加 STATUS_CHANGE 事件；落点与现状相同时不产生任何写入。
func (s *BoardService) Move(ctx context.Context, req *dto.MoveRequest) error {
	dest := model.Status(req.DestStatus)
	if !dest.Valid() {
		return ErrInvalidStatus
	}

	app, err := s.appRepo.GetByID(req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrApplicationNotFound
		}
		return err
	}
	source := app.Status

	var updates []repository.PositionUpdate
	var events []model.ApplicationEvent

	if source == dest {
		column, err := s.appRepo.ListByStatusOrdered(source)
		if err != nil {
			return err
		}

		next := removeID(column, app.ID)
		index := clampIndex(req.DestIndex, len(next))
		next = insertAt(next, app.ID, index)

		updates = diffColumn(column, next, source)
	} else {
		sourceColumn, err := s.appRepo.ListByStatusOrdered(source)
		if err != nil {
			return err
		}
		destColumn, err := s.appRepo.ListByStatusOrdered(dest)
		if err != nil {
			return err
		}

		nextSource := removeID(sourceColumn, app.ID)
		index := clampIndex(req.DestIndex, len(destColumn))
		nextDest := insertAt(idsOf(destColumn), app.ID, index)

		updates = append(diffColumn(sourceColumn, nextSource, source),
			diffColumn(destColumn, nextDest, dest)...)

		from := source
		events = append(events, model.ApplicationEvent{
			ApplicationID: app.ID,
			Type:          model.EventStatusChange,
			FromStatus:    &from,
			ToStatus:      dest,
		})
	}

	if len(updates) == 0 && len(events) == 0 {
		return nil
	}

	if err := s.boardRepo.ApplyUpdates(updates, events); err != nil {
		return err
	}

	s.insights.Invalidate(ctx)
	return nil
}

// Reorder 用给定顺序整体重排一列。
// 列表中来自其它列的申请视为跨列移入：其源列在同一事务内压实，
// 并为每条移入追加 STATUS_CHANGE 事件。校验全部通过前不产生任何写入。
func (s *BoardService) Reorder(ctx context.Context, req *dto.ReorderRequest) error {
	status := model.Status(req.Status)
	if !status.Valid() {
		return ErrInvalidStatus
	}

	seen := make(map[int64]struct{}, len(req.OrderedIDs))
	for _, id := range req.OrderedIDs {
		if _, ok := seen[id]; ok {
			return ErrDuplicateIDs
		}
		seen[id] = struct{}{}
	}

	apps, err := s.appRepo.ListByIDs(req.OrderedIDs)
	if err != nil {
		return err
	}
	if len(apps) != len(req.OrderedIDs) {
		return ErrUnknownIDs
	}

	current, err := s.appRepo.ListByStatusOrdered(status)
	if err != nil {
		return err
	}
	for i := range current {
		if _, ok := seen[current[i].ID]; !ok {
			return ErrIncompleteColumn
		}
	}

	appsByID := make(map[int64]*model.Application, len(apps))
	for i := range apps {
		appsByID[apps[i].ID] = &apps[i]
	}

	var updates []repository.PositionUpdate
	var events []model.ApplicationEvent

	// 跨列移入的申请按源列分组，逐列压实剩余顺序
	entrantsBySource := make(map[model.Status]map[int64]struct{})
	for _, id := range req.OrderedIDs {
		app := appsByID[id]
		if app.Status == status {
			continue
		}
		if entrantsBySource[app.Status] == nil {
			entrantsBySource[app.Status] = make(map[int64]struct{})
		}
		entrantsBySource[app.Status][id] = struct{}{}

		from := app.Status
		events = append(events, model.ApplicationEvent{
			ApplicationID: id,
			Type:          model.EventStatusChange,
			FromStatus:    &from,
			ToStatus:      status,
		})
	}

	for source, entrants := range entrantsBySource {
		column, err := s.appRepo.ListByStatusOrdered(source)
		if err != nil {
			return err
		}
		remaining := make([]int64, 0, len(column))
		for i := range column {
			if _, moved := entrants[column[i].ID]; moved {
				continue
			}
			remaining = append(remaining, column[i].ID)
		}
		updates = append(updates, diffColumn(column, remaining, source)...)
	}

	for index, id := range req.OrderedIDs {
		app := appsByID[id]
		if app.Status == status && app.Position == index {
			continue
		}
		updates = append(updates, repository.PositionUpdate{
			ID:       id,
			Status:   status,
			Position: index,
		})
	}

	if len(updates) == 0 && len(events) == 0 {
		return nil
	}

	if err := s.boardRepo.ApplyUpdates(updates, events); err != nil {
		return err
	}

	s.insights.Invalidate(ctx)
	return nil
}

func idsOf(apps []model.Application) []int64 {
	ids := make([]int64, 0, len(apps))
	for i := range apps {
		ids = append(ids, apps[i].ID)
	}
	return ids
}

func removeID(apps []model.Application, id int64) []int64 {
	ids := make([]int64, 0, len(apps))
	for i := range apps {
		if apps[i].ID == id {
			continue
		}
		ids = append(ids, apps[i].ID)
	}
	return ids
}

func insertAt(ids []int64, id int64, index int) []int64 {
	next := make([]int64, 0, len(ids)+1)
	next = append(next, ids[:index]...)
	next = append(next, id)
	next = append(next, ids[index:]...)
	return next
}

// clampIndex 省略或越界的落点钳制到 [0, size]
func clampIndex(index *int, size int) int {
	if index == nil {
		return size
	}
	i := *index
	if i < 0 {
		return 0
	}
	if i > size {
		return size
	}
	return i
}

// diffColumn 对比列的现状与目标顺序，只生成真正变化的行。
// moved 中可以出现当前不在 column 里的 ID（跨列移入），这类行总是生成更新。
func diffColumn(column []model.Application, moved []int64, status model.Status) []repository.PositionUpdate {
	currentPos := make(map[int64]int, len(column))
	for i := range column {
		currentPos[column[i].ID] = column[i].Position
	}

	var updates []repository.PositionUpdate
	for index, id := range moved {
		if pos, ok := currentPos[id]; ok && pos == index {
			continue
		}
		updates = append(updates, repository.PositionUpdate{
			ID:       id,
			Status:   status,
			Position: index,
		})
	}
	return updates
}
