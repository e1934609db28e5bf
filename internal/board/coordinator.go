package board

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"project-board-api/internal/assign"
	"project-board-api/internal/cache"
	"project-board-api/internal/classify"
	"project-board-api/internal/models"
	"project-board-api/internal/ordering"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Publisher is the fire-and-forget event channel. Failures are logged and
// swallowed: realtime refresh is a secondary concern, never a correctness
// requirement.
type Publisher interface {
	Publish(topic, event string, payload any) error
}

// Authorizer answers whether a user may touch a project.
type Authorizer interface {
	IsParticipant(ctx context.Context, projectID, userID string) (bool, error)
}

const columnCacheTTL = 30 * time.Second

// Coordinator orchestrates task creation and movement: ordering via the
// position allocator, status via column classification, assignment via the
// resolver, one persistence write per mutation, one event per mutation.
type Coordinator struct {
	db        *gorm.DB
	resolver  *assign.Resolver
	publisher Publisher
	auth      Authorizer
	columns   *cache.TTLCache[string, models.Column]
}

func NewCoordinator(db *gorm.DB, resolver *assign.Resolver, publisher Publisher) *Coordinator {
	return &Coordinator{
		db:        db,
		resolver:  resolver,
		publisher: publisher,
		auth:      dbAuthorizer{db: db},
		columns:   cache.NewTTLCache[string, models.Column](),
	}
}

// CreateTaskInput carries everything CreateTask needs. AssigneeID is used
// verbatim unless UseAutoAssign is set, in which case the resolver picks
// from the project's participants.
type CreateTaskInput struct {
	Title         string
	Description   string
	ProjectID     string
	ColumnID      string
	Priority      models.TaskPriority
	AssigneeID    string
	UseAutoAssign bool
	CreatorID     string
}

// CreateTask validates, orders, classifies, assigns, persists, and announces
// a new task. The advisory suggestion call happens before the write so a
// slow suggestion endpoint can never hold a database transaction open.
func (c *Coordinator) CreateTask(ctx context.Context, in CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, invalid("title", "is required")
	}
	if in.ProjectID == "" {
		return nil, invalid("projectId", "is required")
	}
	if in.ColumnID == "" {
		return nil, invalid("columnId", "is required")
	}
	priority := in.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		return nil, invalid("priority", "is not a known value")
	}

	if err := c.requireParticipant(ctx, in.ProjectID, in.CreatorID); err != nil {
		return nil, err
	}

	var project models.Project
	if err := c.db.WithContext(ctx).Where("id = ?", in.ProjectID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("project", in.ProjectID)
		}
		return nil, persistErr("loading project", err)
	}

	column, err := c.lookupColumn(ctx, in.ColumnID)
	if err != nil {
		return nil, err
	}
	if column.ProjectID != in.ProjectID {
		return nil, invalid("columnId", "does not belong to the project")
	}

	taskKey, err := c.nextTaskKey(ctx, project)
	if err != nil {
		return nil, err
	}

	position, err := c.appendPosition(ctx, in.ColumnID)
	if err != nil {
		return nil, err
	}

	// A new task has no prior status to preserve, so an unrecognized column
	// name defaults to TODO instead of the move path's no-op.
	status := models.StatusTodo
	if st, ok := classify.FromColumnName(column.Name).Status(); ok {
		status = st
	}
	var completedAt *time.Time
	if status == models.StatusDone {
		now := time.Now().UTC()
		completedAt = &now
	}

	assigneeID := in.AssigneeID
	if in.UseAutoAssign {
		candidates, err := c.candidatePool(ctx, project)
		if err != nil {
			return nil, err
		}
		if len(candidates) == 0 {
			if assigneeID == "" {
				return nil, ErrAssignmentIndeterminate
			}
			// explicit assignee stands when there is no pool to pick from
		} else {
			assigneeID = c.resolver.Resolve(ctx, in.Title, in.Description, candidates)
		}
	}

	task := models.Task{
		ID:          uuid.NewString(),
		TaskKey:     taskKey,
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		Priority:    priority,
		Position:    position,
		ColumnID:    in.ColumnID,
		ProjectID:   in.ProjectID,
		AssigneeID:  assigneeID,
		CreatorID:   in.CreatorID,
		CompletedAt: completedAt,
	}
	if err := c.db.WithContext(ctx).Create(&task).Error; err != nil {
		return nil, persistErr("creating task", err)
	}

	c.publish(task.ProjectID, "task-created", TaskCreatedEvent{Task: task})
	return &task, nil
}

// MoveTask re-homes a task into a target column at a drop index, updating
// position and, when the column name classifies, status and completion
// timestamp, all in one write.
func (c *Coordinator) MoveTask(ctx context.Context, actorID, taskID, targetColumnID string, dropIndex int) (*models.Task, error) {
	if taskID == "" {
		return nil, invalid("taskId", "is required")
	}
	if targetColumnID == "" {
		return nil, invalid("targetColumnId", "is required")
	}

	var task models.Task
	if err := c.db.WithContext(ctx).Where("id = ?", taskID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("task", taskID)
		}
		return nil, persistErr("loading task", err)
	}

	if err := c.requireParticipant(ctx, task.ProjectID, actorID); err != nil {
		return nil, err
	}

	column, err := c.lookupColumn(ctx, targetColumnID)
	if err != nil {
		return nil, err
	}
	if column.ProjectID != task.ProjectID {
		return nil, invalid("targetColumnId", "does not belong to the task's project")
	}

	prev, next, err := c.dropNeighbors(ctx, task.ID, targetColumnID, dropIndex)
	if err != nil {
		return nil, err
	}
	position := ordering.Allocate(prev, next)

	sourceColumnID := task.ColumnID
	updates := map[string]any{
		"column_id": targetColumnID,
		"position":  position,
	}
	task.ColumnID = targetColumnID
	task.Position = position

	// An unrecognized column name ("Blocked", "Review") leaves status and
	// completion untouched: no change beats a wrong guess.
	if status, ok := classify.FromColumnName(column.Name).Status(); ok {
		updates["status"] = status
		task.Status = status
		if status == models.StatusDone {
			now := time.Now().UTC()
			updates["completed_at"] = &now
			task.CompletedAt = &now
		} else {
			updates["completed_at"] = nil
			task.CompletedAt = nil
		}
	}

	if err := c.db.WithContext(ctx).Model(&models.Task{}).Where("id = ?", task.ID).Updates(updates).Error; err != nil {
		return nil, persistErr("moving task", err)
	}

	c.publish(task.ProjectID, "task-moved", TaskMovedEvent{
		Task:           task,
		SourceColumnID: sourceColumnID,
		TargetColumnID: targetColumnID,
	})
	return &task, nil
}

// TaskCreatedEvent is the payload published on "project:{id}" after a create.
type TaskCreatedEvent struct {
	Task models.Task `json:"task"`
}

// TaskMovedEvent is the payload published on "project:{id}" after a move.
type TaskMovedEvent struct {
	Task           models.Task `json:"task"`
	SourceColumnID string      `json:"sourceColumnId"`
	TargetColumnID string      `json:"targetColumnId"`
}

// ProjectTopic is the event topic for a project's realtime channel.
func ProjectTopic(projectID string) string {
	return "project:" + projectID
}

func (c *Coordinator) publish(projectID, event string, payload any) {
	if c.publisher == nil {
		return
	}
	if err := c.publisher.Publish(ProjectTopic(projectID), event, payload); err != nil {
		log.WithFields(log.Fields{"project": projectID, "event": event, "error": err}).Warn("event publish failed")
	}
}

func (c *Coordinator) requireParticipant(ctx context.Context, projectID, userID string) error {
	if userID == "" {
		return notFound("project", projectID)
	}
	ok, err := c.auth.IsParticipant(ctx, projectID, userID)
	if err != nil {
		return persistErr("checking project membership", err)
	}
	if !ok {
		// non-participants are told the project does not exist
		return notFound("project", projectID)
	}
	return nil
}

// lookupColumn reads a column through the TTL cache; columns change rarely
// but are read on every move.
func (c *Coordinator) lookupColumn(ctx context.Context, columnID string) (models.Column, error) {
	if col, ok := c.columns.Get(columnID); ok {
		return col, nil
	}
	var col models.Column
	if err := c.db.WithContext(ctx).Where("id = ?", columnID).First(&col).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Column{}, notFound("column", columnID)
		}
		return models.Column{}, persistErr("loading column", err)
	}
	c.columns.Set(columnID, col, columnCacheTTL)
	return col, nil
}

// nextTaskKey probes "{projectKey}-{n}" for increasing n until an unused key
// is found. Linear in existing task count; acceptable at board scale.
// The probe runs unscoped: soft-deleted tasks still occupy the unique
// task_key index, so a scoped count would re-propose a deleted task's key
// and the insert would collide forever.
func (c *Coordinator) nextTaskKey(ctx context.Context, project models.Project) (string, error) {
	for n := 1; ; n++ {
		key := fmt.Sprintf("%s-%d", project.Key, n)
		var count int64
		if err := c.db.WithContext(ctx).Unscoped().Model(&models.Task{}).Where("task_key = ?", key).Count(&count).Error; err != nil {
			return "", persistErr("probing task key", err)
		}
		if count == 0 {
			return key, nil
		}
	}
}

// appendPosition allocates a key after the current last sibling in a column.
func (c *Coordinator) appendPosition(ctx context.Context, columnID string) (float64, error) {
	var last models.Task
	err := c.db.WithContext(ctx).
		Where("column_id = ?", columnID).
		Order("position desc").Order("created_at desc").
		First(&last).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ordering.Allocate(nil, nil), nil
		}
		return 0, persistErr("reading column tail", err)
	}
	return ordering.Allocate(&last.Position, nil), nil
}

// dropNeighbors finds the positions surrounding a drop index in the target
// column, with the moving task excluded and the index clamped to the list.
// The sibling list is a snapshot read: two concurrent drops on the same slot
// may both compute the same midpoint, which the secondary created_at sort
// order tolerates until a later move resolves it.
func (c *Coordinator) dropNeighbors(ctx context.Context, movingTaskID, columnID string, dropIndex int) (prev, next *float64, err error) {
	var siblings []models.Task
	if err := c.db.WithContext(ctx).
		Where("column_id = ? AND id <> ?", columnID, movingTaskID).
		Order("position asc").Order("created_at asc").
		Find(&siblings).Error; err != nil {
		return nil, nil, persistErr("reading column siblings", err)
	}

	if dropIndex < 0 {
		dropIndex = 0
	}
	if dropIndex > len(siblings) {
		dropIndex = len(siblings)
	}
	if dropIndex > 0 {
		prev = &siblings[dropIndex-1].Position
	}
	if dropIndex < len(siblings) {
		next = &siblings[dropIndex].Position
	}
	return prev, next, nil
}

// candidatePool builds the assignment candidates: the project owner plus all
// members, each with current in-progress and historical completed counts.
// Owner first, then members by join time, giving the resolver a stable
// tie-break order.
func (c *Coordinator) candidatePool(ctx context.Context, project models.Project) ([]assign.Candidate, error) {
	userIDs := []string{project.OwnerID}
	var members []models.ProjectMember
	if err := c.db.WithContext(ctx).
		Where("project_id = ?", project.ID).
		Order("created_at asc").
		Find(&members).Error; err != nil {
		return nil, persistErr("loading project members", err)
	}
	for _, m := range members {
		if m.UserID != project.OwnerID {
			userIDs = append(userIDs, m.UserID)
		}
	}

	var users []models.User
	if err := c.db.WithContext(ctx).Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		return nil, persistErr("loading candidate users", err)
	}
	userByID := make(map[string]models.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}

	inProgress, err := c.countByAssignee(ctx, project.ID, models.StatusInProgress)
	if err != nil {
		return nil, err
	}
	completed, err := c.countByAssignee(ctx, project.ID, models.StatusDone)
	if err != nil {
		return nil, err
	}

	candidates := make([]assign.Candidate, 0, len(userIDs))
	for _, id := range userIDs {
		u, ok := userByID[id]
		if !ok {
			continue
		}
		candidates = append(candidates, assign.Candidate{
			ID:   u.ID,
			Name: u.FullName(),
			Role: u.Role,
			// absent map entries are zero, so a brand-new member starts
			// at 0 and wins over anyone with active work
			CompletedCount:  completed[u.ID],
			InProgressCount: inProgress[u.ID],
		})
	}
	return candidates, nil
}

func (c *Coordinator) countByAssignee(ctx context.Context, projectID string, status models.TaskStatus) (map[string]int64, error) {
	type row struct {
		AssigneeID string
		Count      int64
	}
	var rows []row
	if err := c.db.WithContext(ctx).Model(&models.Task{}).
		Select("assignee_id, COUNT(*) as count").
		Where("project_id = ? AND status = ? AND assignee_id <> ''", projectID, status).
		Group("assignee_id").
		Scan(&rows).Error; err != nil {
		return nil, persistErr("counting tasks by assignee", err)
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.AssigneeID] = r.Count
	}
	return counts, nil
}

// NewDBAuthorizer returns the store-backed participation check used outside
// the coordinator (read handlers, websocket subscriptions).
func NewDBAuthorizer(db *gorm.DB) Authorizer {
	return dbAuthorizer{db: db}
}

// dbAuthorizer answers participation from the relational store: the owner
// and every project member are participants.
type dbAuthorizer struct {
	db *gorm.DB
}

func (a dbAuthorizer) IsParticipant(ctx context.Context, projectID, userID string) (bool, error) {
	var count int64
	err := a.db.WithContext(ctx).Model(&models.Project{}).
		Where("id = ? AND owner_id = ?", projectID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	err = a.db.WithContext(ctx).Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
