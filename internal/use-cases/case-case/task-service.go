package case_case

import (
	"context"
	"fmt"

	case_dto "github.com/Xenn-00/fitout-meister/internal/dtos/case-dto"
	"github.com/Xenn-00/fitout-meister/internal/emitter"
	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// verifyTaskAssignee: nur der zugewiesene Nutzer darf die Aufgabe bearbeiten.
func verifyTaskAssignee(task *entity.CaseTaskEntity, userID string) *app_errors.AppError {
	if task.AssignedTo == nil || *task.AssignedTo != userID {
		return app_errors.NewForbiddenError("task.not_assignee")
	}
	return nil
}

func (s *CaseService) StartTask(ctx context.Context, session entity.Session, taskID string) (*entity.CaseTaskEntity, *app_errors.AppError) {
	task, err := s.taskRepo.FindByID(ctx, session.OrgID, taskID)
	if err != nil {
		return nil, err
	}
	if err := verifyTaskAssignee(task, session.UserID); err != nil {
		return nil, err
	}
	if task.Status != entity.TaskPending {
		return nil, app_errors.NewConflictError("conflict.task_not_pending", fmt.Errorf("task %s is %s", task.ID, task.Status))
	}

	now := s.now()
	ok, err := s.taskRepo.UpdateStatus(ctx, nil, task.ID, entity.TaskPending, entity.TaskStarted, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, app_errors.NewConflictError("conflict.task_not_pending", fmt.Errorf("task %s changed concurrently", task.ID))
	}

	task.Status = entity.TaskStarted
	task.StartedAt = &now
	s.publishCases(ctx, session.OrgID)

	return task, nil
}

// CompleteTask schließt die Aufgabe ab. Für Aufgaben, die eine Stufe abschließen, wird der
// Case danach weitergeroutet, sofern er noch in der erwarteten Stufe steht.
func (s *CaseService) CompleteTask(ctx context.Context, session entity.Session, taskID string) (*case_dto.CompleteTaskResponse, *app_errors.AppError) {
	task, err := s.taskRepo.FindByID(ctx, session.OrgID, taskID)
	if err != nil {
		return nil, err
	}
	if err := verifyTaskAssignee(task, session.UserID); err != nil {
		return nil, err
	}
	if !task.Status.IsActive() {
		return nil, app_errors.NewConflictError("conflict.task_already_completed", nil)
	}

	now := s.now()
	ok, err := s.taskRepo.UpdateStatus(ctx, nil, task.ID, task.Status, entity.TaskCompleted, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, app_errors.NewConflictError("conflict.task_already_completed", fmt.Errorf("task %s changed concurrently", task.ID))
	}
	task.Status = entity.TaskCompleted
	task.CompletedAt = &now

	s.logActivity(ctx, session, emitter.Activity{
		CaseID:  task.CaseID,
		Action:  entity.ActivityTaskCompleted,
		Message: fmt.Sprintf("%s task completed by %s", task.Type, session.Name),
	})

	resp := &case_dto.CompleteTaskResponse{Task: task}

	next, ok := completionRoutes[task.Type]
	if !ok {
		s.publishCases(ctx, session.OrgID)
		return resp, nil
	}

	c, err := s.repo.FindByID(ctx, nil, session.OrgID, task.CaseID)
	if err != nil {
		log.Warn().Err(err.Err).Str("case_id", task.CaseID).Msg("Case für Weiterleitung nicht gefunden")
		s.publishCases(ctx, session.OrgID)
		return resp, nil
	}
	if c.Status != next.from {
		log.Info().Str("case_id", c.ID).Str("status", string(c.Status)).Msg("Case steht nicht mehr in der Stufe der Aufgabe, keine Weiterleitung")
		s.publishCases(ctx, session.OrgID)
		return resp, nil
	}

	route, err := s.router.RouteOnTransition(ctx, session, c.ID, next.from, next.to)
	resp.Route = route
	if err != nil {
		if err.Type == app_errors.ErrPartial {
			return resp, err
		}
		log.Warn().Err(err.Err).Str("case_id", c.ID).Str("message_key", err.MessageKey).Msg("Weiterleitung nach Aufgabenabschluss fehlgeschlagen")
	}
	return resp, nil
}

func (s *CaseService) ReassignTask(ctx context.Context, session entity.Session, taskID string, req *case_dto.ReassignTaskRequest) (*entity.CaseTaskEntity, *app_errors.AppError) {
	if !session.HasRole(entity.RoleAdmin, entity.RoleManager) {
		return nil, app_errors.NewForbiddenError("forbidden")
	}

	task, err := s.taskRepo.FindByID(ctx, session.OrgID, taskID)
	if err != nil {
		return nil, err
	}
	if !task.Status.IsActive() {
		return nil, app_errors.NewConflictError("conflict.task_already_completed", nil)
	}

	now := s.now()
	if req.Deadline != nil && !req.Deadline.After(now) {
		return nil, app_errors.NewFieldValidationError("deadline", "future", "validation.deadline_future")
	}

	assignee, err := s.userRepo.FindByUserID(ctx, req.AssigneeID)
	if err != nil {
		if err.Code == fiber.StatusNotFound {
			return nil, app_errors.NewFieldValidationError("assignee_id", "unknown", "task.invalid_assignee")
		}
		return nil, err
	}
	if assignee.OrgID != session.OrgID || !assignee.IsActive {
		return nil, app_errors.NewFieldValidationError("assignee_id", "unknown", "task.invalid_assignee")
	}

	if err := s.taskRepo.Reassign(ctx, task.ID, assignee.ID, session.UserID, req.Deadline); err != nil {
		return nil, err
	}
	task.AssignedTo = &assignee.ID
	task.AssignedBy = session.UserID
	if req.Deadline != nil {
		task.Deadline = req.Deadline
	}

	scheduleDeadlineReminder(s.taskQueue, session.OrgID, task, now)

	if _, err := s.notifier.Emit(ctx, session.OrgID, emitter.Notification{
		UserID:     assignee.ID,
		Title:      "Task reassigned to you",
		Message:    fmt.Sprintf("%s task reassigned by %s", task.Type, session.Name),
		EntityType: entity.EntityTask,
		EntityID:   task.ID,
		Type:       entity.NotificationInfo,
	}); err != nil {
		log.Warn().Err(err.Err).Str("task_id", task.ID).Msg("Benachrichtigung zur Neuzuweisung fehlgeschlagen")
	}

	s.logActivity(ctx, session, emitter.Activity{
		CaseID:  task.CaseID,
		Action:  entity.ActivityTaskReassigned,
		Message: fmt.Sprintf("%s task reassigned to %s", task.Type, assignee.Name),
	})
	s.publishCases(ctx, session.OrgID)

	return task, nil
}

func (s *CaseService) ListCaseTasks(ctx context.Context, session entity.Session, caseID string, filter case_dto.TaskListFilter) ([]entity.CaseTaskEntity, *app_errors.AppError) {
	if _, err := s.repo.FindByID(ctx, nil, session.OrgID, caseID); err != nil {
		return nil, err
	}
	f := toTaskFilter(filter)
	f.CaseID = &caseID
	return s.taskRepo.List(ctx, session.OrgID, f)
}

func (s *CaseService) ListMyTasks(ctx context.Context, session entity.Session, filter case_dto.TaskListFilter) ([]entity.CaseTaskEntity, *app_errors.AppError) {
	f := toTaskFilter(filter)
	f.AssignedTo = &session.UserID
	return s.taskRepo.List(ctx, session.OrgID, f)
}
