package approval_case

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Xenn-00/fitout-meister/internal/abstraction/cache"
	"github.com/Xenn-00/fitout-meister/internal/abstraction/tx"
	approval_dto "github.com/Xenn-00/fitout-meister/internal/dtos/approval-dto"
	"github.com/Xenn-00/fitout-meister/internal/emitter"
	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/Xenn-00/fitout-meister/internal/feed"
	"github.com/Xenn-00/fitout-meister/internal/queue"
	activity_repo "github.com/Xenn-00/fitout-meister/internal/repo/activity-repo"
	approval_repo "github.com/Xenn-00/fitout-meister/internal/repo/approval-repo"
	case_repo "github.com/Xenn-00/fitout-meister/internal/repo/case-repo"
	notification_repo "github.com/Xenn-00/fitout-meister/internal/repo/notification-repo"
	user_repo "github.com/Xenn-00/fitout-meister/internal/repo/user-repo"
	"github.com/Xenn-00/fitout-meister/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const defaultListLimit = 20

var reviewerRoles = []entity.UserRole{entity.RoleAdmin, entity.RoleManager}

// caseFinder reicht, um eine case_id beim Einreichen zu prüfen.
type caseFinder interface {
	FindByID(ctx context.Context, t tx.Tx, orgID, caseID string) (*entity.CaseEntity, *app_errors.AppError)
}

type ApprovalService struct {
	repo      approval_repo.ApprovalRepoContract
	userRepo  user_repo.UserRepoContract
	cases     caseFinder
	cache     cache.Cache
	notifier  emitter.NotificationEmitter
	activity  emitter.ActivityLogger
	publisher feed.Publisher
	now       func() time.Time
}

func NewApprovalService(db *pgxpool.Pool, redis *redis.Client, publisher feed.Publisher, taskQueue queue.TaskQueueClient) ApprovalServiceContract {
	return &ApprovalService{
		repo:      approval_repo.NewApprovalRepo(db),
		userRepo:  user_repo.NewUserRepo(db),
		cases:     case_repo.NewCaseRepo(db),
		cache:     cache.NewRedisCache(redis),
		notifier:  emitter.NewNotificationEmitter(notification_repo.NewNotificationRepo(db), publisher, taskQueue),
		activity:  emitter.NewActivityLogger(activity_repo.NewActivityRepo(db)),
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *ApprovalService) Submit(ctx context.Context, session entity.Session, req *approval_dto.SubmitApprovalRequest) (*entity.ApprovalRequestEntity, *app_errors.AppError) {
	requestType := entity.RequestType(req.RequestType)
	if !requestType.IsValid() {
		return nil, app_errors.NewFieldValidationError("request_type", "invalid", "validation.request_type")
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, app_errors.NewFieldValidationError("description", "required", "validation.required")
	}

	priority := entity.PriorityMedium
	if req.Priority != nil {
		priority = entity.CasePriority(*req.Priority)
		if !priority.IsValid() {
			return nil, app_errors.NewFieldValidationError("priority", "invalid", "validation.oneof")
		}
	}

	targetRole := requestType.TargetRole()
	if req.TargetRole != nil && *req.TargetRole != "" {
		targetRole = entity.UserRole(*req.TargetRole)
		if !targetRole.IsValid() {
			return nil, app_errors.NewFieldValidationError("target_role", "invalid", "validation.user_role")
		}
	}

	if req.CaseID != nil {
		if _, err := s.cases.FindByID(ctx, nil, session.OrgID, *req.CaseID); err != nil {
			if err.Code == fiber.StatusNotFound {
				return nil, app_errors.NewFieldValidationError("case_id", "unknown", "approval.unknown_case")
			}
			return nil, err
		}
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, app_errors.NewInternalError(err)
	}

	now := s.now()
	a := &entity.ApprovalRequestEntity{
		ID:            id.String(),
		OrgID:         session.OrgID,
		RequestType:   requestType,
		RequesterID:   session.UserID,
		RequesterName: session.Name,
		RequesterRole: session.Role,
		TargetRole:    targetRole,
		CaseID:        req.CaseID,
		Status:        entity.ApprovalPending,
		Priority:      priority,
		Description:   description,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	directory := s.directory(ctx, session.OrgID)
	for _, u := range directory {
		if !u.IsActive || !u.Role.IsReviewer() || u.ID == session.UserID {
			continue
		}
		s.notify(ctx, session.OrgID, emitter.Notification{
			UserID:     u.ID,
			Title:      "New approval request",
			Message:    fmt.Sprintf("%s submitted a %s request", session.Name, a.RequestType),
			EntityType: entity.EntityApproval,
			EntityID:   a.ID,
			Type:       entity.NotificationInfo,
		})
	}

	s.publishApprovals(ctx, session.OrgID)
	return a, nil
}

func (s *ApprovalService) Approve(ctx context.Context, session entity.Session, approvalID string, req *approval_dto.ApproveRequest) (*entity.ApprovalRequestEntity, *app_errors.AppError) {
	if !session.Role.IsReviewer() {
		return nil, app_errors.NewForbiddenError("approval.not_reviewer")
	}

	a, err := s.repo.FindByID(ctx, session.OrgID, approvalID)
	if err != nil {
		return nil, err
	}
	if a.Status != entity.ApprovalPending {
		return nil, app_errors.NewConflictError("approval.already_decided", nil)
	}

	decision, err := s.approvalDecision(ctx, session, a, req.AssigneeID, req.Comments, req.Deadline)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Decide(ctx, session.OrgID, a.ID, entity.ApprovalPending, decision)
	if err != nil {
		return nil, err
	}

	s.afterDecision(ctx, session, updated, false)
	return updated, nil
}

func (s *ApprovalService) Reject(ctx context.Context, session entity.Session, approvalID string, req *approval_dto.RejectRequest) (*entity.ApprovalRequestEntity, *app_errors.AppError) {
	if !session.Role.IsReviewer() {
		return nil, app_errors.NewForbiddenError("approval.not_reviewer")
	}

	comments := strings.TrimSpace(req.Comments)
	if comments == "" {
		return nil, app_errors.NewFieldValidationError("comments", "required", "approval.comments_required")
	}

	a, err := s.repo.FindByID(ctx, session.OrgID, approvalID)
	if err != nil {
		return nil, err
	}
	if a.Status != entity.ApprovalPending {
		return nil, app_errors.NewConflictError("approval.already_decided", nil)
	}

	updated, err := s.repo.Decide(ctx, session.OrgID, a.ID, entity.ApprovalPending, entity.ApprovalDecision{
		Status:       entity.ApprovalRejected,
		ReviewerID:   session.UserID,
		ReviewerName: session.Name,
		Comments:     &comments,
		ReviewedAt:   s.now(),
	})
	if err != nil {
		return nil, err
	}

	s.afterDecision(ctx, session, updated, false)
	return updated, nil
}

// EditReview überschreibt eine bereits getroffene Entscheidung. Offene Anträge gehen über Approve/Reject.
func (s *ApprovalService) EditReview(ctx context.Context, session entity.Session, approvalID string, req *approval_dto.EditReviewRequest) (*entity.ApprovalRequestEntity, *app_errors.AppError) {
	if !session.Role.IsReviewer() {
		return nil, app_errors.NewForbiddenError("approval.not_reviewer")
	}

	a, err := s.repo.FindByID(ctx, session.OrgID, approvalID)
	if err != nil {
		return nil, err
	}
	if !a.Status.IsTerminal() {
		return nil, app_errors.NewConflictError("approval.not_decided", nil)
	}

	var decision entity.ApprovalDecision
	switch entity.ApprovalStatus(req.Decision) {
	case entity.ApprovalApproved:
		decision, err = s.approvalDecision(ctx, session, a, req.AssigneeID, req.Comments, req.Deadline)
		if err != nil {
			return nil, err
		}
	case entity.ApprovalRejected:
		comments := ""
		if req.Comments != nil {
			comments = strings.TrimSpace(*req.Comments)
		}
		if comments == "" {
			return nil, app_errors.NewFieldValidationError("comments", "required", "approval.comments_required")
		}
		decision = entity.ApprovalDecision{
			Status:       entity.ApprovalRejected,
			ReviewerID:   session.UserID,
			ReviewerName: session.Name,
			Comments:     &comments,
			ReviewedAt:   s.now(),
		}
	default:
		return nil, app_errors.NewFieldValidationError("decision", "invalid", "validation.oneof")
	}

	updated, err := s.repo.Decide(ctx, session.OrgID, a.ID, a.Status, decision)
	if err != nil {
		return nil, err
	}

	s.afterDecision(ctx, session, updated, true)
	return updated, nil
}

// SuggestAssignees listet aktive Kollegen, passende Rolle zuerst, danach alphabetisch.
func (s *ApprovalService) SuggestAssignees(ctx context.Context, session entity.Session, approvalID string) (*approval_dto.SuggestAssigneesResponse, *app_errors.AppError) {
	if !session.Role.IsReviewer() {
		return nil, app_errors.NewForbiddenError("approval.not_reviewer")
	}

	a, err := s.repo.FindByID(ctx, session.OrgID, approvalID)
	if err != nil {
		return nil, err
	}

	suggestions := []entity.AssigneeSuggestion{}
	for _, u := range s.directory(ctx, session.OrgID) {
		if !u.IsActive || u.ID == a.RequesterID {
			continue
		}
		suggestions = append(suggestions, entity.AssigneeSuggestion{
			UserID:    u.ID,
			Name:      u.Name,
			Role:      u.Role,
			RoleMatch: u.Role == a.TargetRole,
		})
	}
	rankSuggestions(suggestions)

	return &approval_dto.SuggestAssigneesResponse{
		ApprovalID:  a.ID,
		TargetRole:  a.TargetRole,
		Suggestions: suggestions,
	}, nil
}

func (s *ApprovalService) List(ctx context.Context, session entity.Session, filter approval_dto.ApprovalListFilter) ([]entity.ApprovalRequestEntity, *app_errors.AppError) {
	f := entity.ApprovalFilter{Limit: defaultListLimit}
	if filter.Limit > 0 {
		f.Limit = filter.Limit
	}
	if filter.Page > 1 {
		f.Offset = (filter.Page - 1) * f.Limit
	}
	if filter.Status != nil {
		status := entity.ApprovalStatus(*filter.Status)
		f.Status = &status
	}
	if filter.RequestType != nil {
		rt := entity.RequestType(*filter.RequestType)
		f.RequestType = &rt
	}
	// Nicht-Prüfer sehen nur die eigenen Anträge.
	if filter.Mine || !session.Role.IsReviewer() {
		f.RequesterID = &session.UserID
	}

	return s.repo.List(ctx, session.OrgID, f)
}

func (s *ApprovalService) Get(ctx context.Context, session entity.Session, approvalID string) (*entity.ApprovalRequestEntity, *app_errors.AppError) {
	a, err := s.repo.FindByID(ctx, session.OrgID, approvalID)
	if err != nil {
		return nil, err
	}
	if session.Role.IsReviewer() || a.RequesterID == session.UserID {
		return a, nil
	}
	if a.AssigneeID != nil && *a.AssigneeID == session.UserID {
		return a, nil
	}
	return nil, app_errors.NewForbiddenError("forbidden")
}

// approvalDecision prüft Bearbeiter und Frist, wenn der Antragstyp Arbeit delegiert.
func (s *ApprovalService) approvalDecision(ctx context.Context, session entity.Session, a *entity.ApprovalRequestEntity, assigneeID, comments *string, deadline *time.Time) (entity.ApprovalDecision, *app_errors.AppError) {
	now := s.now()
	decision := entity.ApprovalDecision{
		Status:       entity.ApprovalApproved,
		ReviewerID:   session.UserID,
		ReviewerName: session.Name,
		ReviewedAt:   now,
	}
	if comments != nil {
		if c := strings.TrimSpace(*comments); c != "" {
			decision.Comments = &c
		}
	}

	if !a.RequestType.DelegatesWork() {
		return decision, nil
	}

	if assigneeID == nil || *assigneeID == "" {
		return decision, app_errors.NewFieldValidationError("assignee_id", "required", "validation.required")
	}
	if deadline == nil {
		return decision, app_errors.NewFieldValidationError("deadline", "required", "validation.required")
	}
	if !deadline.After(now) {
		return decision, app_errors.NewFieldValidationError("deadline", "future", "validation.deadline_future")
	}

	assignee, err := s.userRepo.FindByUserID(ctx, *assigneeID)
	if err != nil {
		if err.Code == fiber.StatusNotFound {
			return decision, app_errors.NewFieldValidationError("assignee_id", "unknown", "approval.invalid_assignee")
		}
		return decision, err
	}
	if assignee.OrgID != session.OrgID || !assignee.IsActive {
		return decision, app_errors.NewFieldValidationError("assignee_id", "unknown", "approval.invalid_assignee")
	}

	decision.AssigneeID = &assignee.ID
	end := deadline.UTC()
	decision.EndDate = &end
	return decision, nil
}

func (s *ApprovalService) afterDecision(ctx context.Context, session entity.Session, a *entity.ApprovalRequestEntity, edited bool) {
	title := fmt.Sprintf("Request %s", strings.ToLower(string(a.Status)))
	if edited {
		title = "Request decision updated"
	}
	kind := entity.NotificationSuccess
	if a.Status == entity.ApprovalRejected {
		kind = entity.NotificationError
	}

	if a.RequesterID != session.UserID {
		s.notify(ctx, session.OrgID, emitter.Notification{
			UserID:     a.RequesterID,
			Title:      title,
			Message:    fmt.Sprintf("Your %s request was %s by %s", a.RequestType, strings.ToLower(string(a.Status)), session.Name),
			EntityType: entity.EntityApproval,
			EntityID:   a.ID,
			Type:       kind,
		})
	}

	if a.Status == entity.ApprovalApproved && a.AssigneeID != nil && *a.AssigneeID != a.RequesterID {
		message := fmt.Sprintf("%s request from %s was delegated to you", a.RequestType, a.RequesterName)
		if a.EndDate != nil {
			message += fmt.Sprintf(", due %s", a.EndDate.Format(time.DateOnly))
		}
		s.notify(ctx, session.OrgID, emitter.Notification{
			UserID:     *a.AssigneeID,
			Title:      "Work assigned to you",
			Message:    message,
			EntityType: entity.EntityApproval,
			EntityID:   a.ID,
			Type:       entity.NotificationInfo,
		})
	}

	if a.CaseID != nil {
		if err := s.activity.Log(ctx, session, emitter.Activity{
			CaseID:  *a.CaseID,
			Action:  entity.ActivityApprovalDecided,
			Message: fmt.Sprintf("%s request %s by %s", a.RequestType, strings.ToLower(string(a.Status)), session.Name),
		}); err != nil {
			log.Warn().Err(err.Err).Str("approval_id", a.ID).Msg("Aktivität zur Entscheidung konnte nicht gespeichert werden")
		}
	}

	s.publishApprovals(ctx, session.OrgID)
}

// directory liefert alle Nutzer der Organisation, fünf Minuten aus Redis.
// Cache-Fehler fallen auf die Datenbank zurück, ein DB-Fehler ergibt eine leere Liste.
func (s *ApprovalService) directory(ctx context.Context, orgID string) []entity.UserEntity {
	key := utils.DirectoryCacheKey(orgID)

	var users []entity.UserEntity
	hit, cerr := s.cache.Get(ctx, key, &users)
	if cerr != nil {
		log.Warn().Err(cerr.Err).Str("key", key).Msg("Verzeichnis-Cache nicht lesbar")
	}
	if hit {
		return users
	}

	users, err := s.userRepo.ListByOrg(ctx, orgID)
	if err != nil {
		log.Error().Err(err.Err).Str("org_id", orgID).Msg("Mitarbeiterverzeichnis konnte nicht geladen werden")
		return nil
	}
	if cerr := s.cache.Set(ctx, key, users, utils.DirectoryCacheTTL); cerr != nil {
		log.Warn().Err(cerr.Err).Str("key", key).Msg("Verzeichnis-Cache nicht schreibbar")
	}
	return users
}

func (s *ApprovalService) notify(ctx context.Context, orgID string, n emitter.Notification) {
	if _, err := s.notifier.Emit(ctx, orgID, n); err != nil {
		log.Warn().Err(err.Err).Str("user_id", n.UserID).Str("entity_id", n.EntityID).Msg("Benachrichtigung fehlgeschlagen")
	}
}

func (s *ApprovalService) publishApprovals(ctx context.Context, orgID string) {
	if err := s.publisher.Publish(ctx, orgID, feed.ApprovalRequests); err != nil {
		log.Warn().Err(err).Str("org_id", orgID).Msg("Antrags-Feed konnte nicht benachrichtigt werden")
	}
}

func rankSuggestions(list []entity.AssigneeSuggestion) {
	slices.SortStableFunc(list, func(a, b entity.AssigneeSuggestion) int {
		if a.RoleMatch != b.RoleMatch {
			if a.RoleMatch {
				return -1
			}
			return 1
		}
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
}
