package quotation_case

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Xenn-00/fitout-meister/internal/abstraction/tx"
	case_dto "github.com/Xenn-00/fitout-meister/internal/dtos/case-dto"
	quotation_dto "github.com/Xenn-00/fitout-meister/internal/dtos/quotation-dto"
	"github.com/Xenn-00/fitout-meister/internal/emitter"
	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/Xenn-00/fitout-meister/internal/feed"
	"github.com/Xenn-00/fitout-meister/internal/queue"
	activity_repo "github.com/Xenn-00/fitout-meister/internal/repo/activity-repo"
	case_repo "github.com/Xenn-00/fitout-meister/internal/repo/case-repo"
	notification_repo "github.com/Xenn-00/fitout-meister/internal/repo/notification-repo"
	quotation_repo "github.com/Xenn-00/fitout-meister/internal/repo/quotation-repo"
	task_repo "github.com/Xenn-00/fitout-meister/internal/repo/task-repo"
	user_repo "github.com/Xenn-00/fitout-meister/internal/repo/user-repo"
	case_case "github.com/Xenn-00/fitout-meister/internal/use-cases/case-case"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Länge des Case-Präfixes in der Angebotsnummer.
const caseRefLength = 8

var (
	quotationWriters = []entity.UserRole{entity.RoleAdmin, entity.RoleQuotationTeam}
	auditors         = []entity.UserRole{entity.RoleAdmin, entity.RoleProcurementTeam}
	deciders         = []entity.UserRole{entity.RoleAdmin, entity.RoleSalesManager}
)

type caseFinder interface {
	FindByID(ctx context.Context, t tx.Tx, orgID, caseID string) (*entity.CaseEntity, *app_errors.AppError)
}

// taskSpawner ist der Teil des Routers, den das Audit braucht.
type taskSpawner interface {
	SpawnTask(ctx context.Context, session entity.Session, c *entity.CaseEntity, taskType entity.TaskType) (*case_dto.RouteResult, *app_errors.AppError)
}

type QuotationService struct {
	repo      quotation_repo.QuotationRepoContract
	cases     caseFinder
	txManager tx.TxManager
	router    taskSpawner
	activity  emitter.ActivityLogger
	notifier  emitter.NotificationEmitter
	publisher feed.Publisher
	taxRate   decimal.Decimal
	now       func() time.Time
}

func NewQuotationService(db *pgxpool.Pool, publisher feed.Publisher, taskQueue queue.TaskQueueClient, taxRate decimal.Decimal) QuotationServiceContract {
	caseRepo := case_repo.NewCaseRepo(db)
	notifier := emitter.NewNotificationEmitter(notification_repo.NewNotificationRepo(db), publisher, taskQueue)
	activity := emitter.NewActivityLogger(activity_repo.NewActivityRepo(db))

	return &QuotationService{
		repo:      quotation_repo.NewQuotationRepo(db),
		cases:     caseRepo,
		txManager: tx.NewPgxTxManager(db),
		router:    case_case.NewTaskRouter(caseRepo, task_repo.NewTaskRepo(db), user_repo.NewUserRepo(db), notifier, activity, publisher, taskQueue),
		activity:  activity,
		notifier:  notifier,
		publisher: publisher,
		taxRate:   taxRate,
		now:       time.Now,
	}
}

func (s *QuotationService) SubmitBOQ(ctx context.Context, session entity.Session, caseID string, req *quotation_dto.SubmitBOQRequest) (*entity.CaseBOQEntity, *app_errors.AppError) {
	if !session.HasRole(quotationWriters...) {
		return nil, app_errors.NewForbiddenError("forbidden")
	}

	c, err := s.cases.FindByID(ctx, nil, session.OrgID, caseID)
	if err != nil {
		return nil, err
	}
	if !c.Status.AtLeast(entity.CaseBOQ) {
		return nil, app_errors.NewConflictError("quotation.case_not_ready", fmt.Errorf("case %s is %s", c.ID, c.Status))
	}

	items := make([]entity.BOQItem, 0, len(req.Items))
	for i, in := range req.Items {
		if !in.Quantity.IsPositive() {
			return nil, app_errors.NewFieldValidationError(fmt.Sprintf("items[%d].quantity", i), "gt", "validation.positive_amount")
		}
		if in.EstimatedCost.IsNegative() {
			return nil, app_errors.NewFieldValidationError(fmt.Sprintf("items[%d].estimated_cost", i), "min", "validation.non_negative_amount")
		}
		items = append(items, entity.BOQItem{
			Name:          strings.TrimSpace(in.Name),
			Quantity:      in.Quantity,
			Unit:          strings.TrimSpace(in.Unit),
			EstimatedCost: in.EstimatedCost,
		})
	}

	id, uerr := uuid.NewV7()
	if uerr != nil {
		return nil, app_errors.NewInternalError(uerr)
	}

	boq := &entity.CaseBOQEntity{
		ID:          id.String(),
		CaseID:      c.ID,
		Items:       items,
		TotalCost:   entity.BOQTotal(items),
		Status:      entity.BOQSubmitted,
		SubmittedBy: session.UserID,
		SubmittedAt: s.now(),
	}
	if err := s.repo.CreateBOQ(ctx, boq); err != nil {
		return nil, err
	}

	s.logActivity(ctx, session, emitter.Activity{
		CaseID:  c.ID,
		Action:  entity.ActivityBOQSubmitted,
		Message: fmt.Sprintf("BOQ with %d items (%s) submitted by %s", len(items), boq.TotalCost.StringFixed(2), session.Name),
	})
	s.publishCases(ctx, session.OrgID)

	return boq, nil
}

func (s *QuotationService) ListBOQs(ctx context.Context, session entity.Session, caseID string) ([]entity.CaseBOQEntity, *app_errors.AppError) {
	if _, err := s.cases.FindByID(ctx, nil, session.OrgID, caseID); err != nil {
		return nil, err
	}
	return s.repo.ListBOQs(ctx, session.OrgID, caseID)
}

// SubmitQuotation legt die nächste Version an. Version und Nummer entstehen unter der Sperre der Case-Zeile.
func (s *QuotationService) SubmitQuotation(ctx context.Context, session entity.Session, caseID string, req *quotation_dto.SubmitQuotationRequest) (*entity.CaseQuotationEntity, *app_errors.AppError) {
	if !session.HasRole(quotationWriters...) {
		return nil, app_errors.NewForbiddenError("forbidden")
	}

	c, err := s.cases.FindByID(ctx, nil, session.OrgID, caseID)
	if err != nil {
		return nil, err
	}
	if !c.Status.AtLeast(entity.CaseBOQ) {
		return nil, app_errors.NewConflictError("quotation.case_not_ready", fmt.Errorf("case %s is %s", c.ID, c.Status))
	}

	items, err := toQuotationItems(req.Items)
	if err != nil {
		return nil, err
	}
	total, discount, tax, grand := entity.QuotationTotals(items, s.taxRate)

	id, uerr := uuid.NewV7()
	if uerr != nil {
		return nil, app_errors.NewInternalError(uerr)
	}
	now := s.now()

	t, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer t.Rollback(ctx)

	version, err := s.repo.NextVersion(ctx, t, c.ID)
	if err != nil {
		return nil, err
	}

	q := &entity.CaseQuotationEntity{
		ID:              id.String(),
		CaseID:          c.ID,
		QuotationNumber: QuotationNumber(now, c.ID, version),
		Version:         version,
		Items:           items,
		TotalAmount:     total,
		DiscountAmount:  discount,
		TaxAmount:       tax,
		GrandTotal:      grand,
		Status:          entity.QuotationPendingApproval,
		AuditStatus:     entity.AuditPending,
		SubmittedBy:     session.UserID,
		SubmittedAt:     now,
	}
	if err := s.repo.CreateQuotation(ctx, t, q); err != nil {
		return nil, err
	}
	if err := t.Commit(ctx); err != nil {
		return nil, err
	}

	s.logActivity(ctx, session, emitter.Activity{
		CaseID:  c.ID,
		Action:  entity.ActivityQuotationSent,
		Message: fmt.Sprintf("Quotation %s submitted, grand total %s", q.QuotationNumber, q.GrandTotal.StringFixed(2)),
	})
	s.publishCases(ctx, session.OrgID)

	return q, nil
}

func (s *QuotationService) ListQuotations(ctx context.Context, session entity.Session, caseID string) ([]entity.CaseQuotationEntity, *app_errors.AppError) {
	if _, err := s.cases.FindByID(ctx, nil, session.OrgID, caseID); err != nil {
		return nil, err
	}
	list, err := s.repo.ListQuotations(ctx, session.OrgID, caseID)
	if err != nil {
		return nil, err
	}
	if entity.CanSeePRCode(session.Role) {
		return list, nil
	}
	out := make([]entity.CaseQuotationEntity, 0, len(list))
	for _, q := range list {
		out = append(out, q.Redacted())
	}
	return out, nil
}

func (s *QuotationService) GetQuotation(ctx context.Context, session entity.Session, quotationID string) (*entity.CaseQuotationEntity, *app_errors.AppError) {
	q, err := s.repo.FindQuotation(ctx, session.OrgID, quotationID)
	if err != nil {
		return nil, err
	}
	if entity.CanSeePRCode(session.Role) {
		return q, nil
	}
	redacted := q.Redacted()
	return &redacted, nil
}

// AuditQuotation: eine Freigabe durch den Einkauf legt die Ausschreibungsaufgabe an.
func (s *QuotationService) AuditQuotation(ctx context.Context, session entity.Session, quotationID string, req *quotation_dto.AuditQuotationRequest) (*quotation_dto.AuditQuotationResponse, *app_errors.AppError) {
	if !session.HasRole(auditors...) {
		return nil, app_errors.NewForbiddenError("forbidden")
	}

	to := entity.AuditStatus(req.Decision)
	if to != entity.AuditApproved && to != entity.AuditRejected {
		return nil, app_errors.NewFieldValidationError("decision", "oneof", "validation.oneof")
	}

	q, err := s.repo.FindQuotation(ctx, session.OrgID, quotationID)
	if err != nil {
		return nil, err
	}
	if q.AuditStatus != entity.AuditPending {
		return nil, app_errors.NewConflictError("quotation.already_audited", nil)
	}

	var prCode *string
	if req.PRCode != nil {
		if code := strings.TrimSpace(*req.PRCode); code != "" {
			prCode = &code
		}
	}

	ok, err := s.repo.UpdateAudit(ctx, q.ID, entity.AuditPending, to, session.UserID, prCode)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, app_errors.NewConflictError("quotation.already_audited", fmt.Errorf("quotation %s audited concurrently", q.ID))
	}
	q.AuditStatus = to
	q.AuditedBy = &session.UserID
	if prCode != nil {
		q.PRCode = prCode
	}

	s.logActivity(ctx, session, emitter.Activity{
		CaseID:  q.CaseID,
		Action:  entity.ActivityQuotationAudited,
		Message: fmt.Sprintf("Quotation %s audit %s by %s", q.QuotationNumber, to, session.Name),
	})
	s.notify(ctx, session, q, fmt.Sprintf("Quotation audit %s", to), auditNotificationType(to))

	resp := &quotation_dto.AuditQuotationResponse{Quotation: q}
	if to == entity.AuditApproved {
		c, cerr := s.cases.FindByID(ctx, nil, session.OrgID, q.CaseID)
		if cerr != nil {
			log.Warn().Err(cerr.Err).Str("case_id", q.CaseID).Msg("Case für Ausschreibung nicht gefunden")
			s.publishCases(ctx, session.OrgID)
			return resp, nil
		}
		route, rerr := s.router.SpawnTask(ctx, session, c, entity.TaskProcurementBidding)
		resp.Route = route
		if rerr != nil {
			if rerr.Type == app_errors.ErrPartial {
				return resp, rerr
			}
			log.Warn().Err(rerr.Err).Str("case_id", c.ID).Str("message_key", rerr.MessageKey).Msg("Ausschreibungsaufgabe konnte nicht angelegt werden")
		}
		return resp, nil
	}

	s.publishCases(ctx, session.OrgID)
	return resp, nil
}

func (s *QuotationService) DecideQuotation(ctx context.Context, session entity.Session, quotationID string, req *quotation_dto.DecideQuotationRequest) (*entity.CaseQuotationEntity, *app_errors.AppError) {
	if !session.HasRole(deciders...) {
		return nil, app_errors.NewForbiddenError("forbidden")
	}

	to := entity.QuotationStatus(req.Decision)
	if to != entity.QuotationApproved && to != entity.QuotationRejected {
		return nil, app_errors.NewFieldValidationError("decision", "oneof", "validation.oneof")
	}

	q, err := s.repo.FindQuotation(ctx, session.OrgID, quotationID)
	if err != nil {
		return nil, err
	}
	if q.Status != entity.QuotationPendingApproval {
		return nil, app_errors.NewConflictError("quotation.already_decided", nil)
	}

	ok, err := s.repo.UpdateDecision(ctx, q.ID, to, session.UserID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, app_errors.NewConflictError("quotation.already_decided", fmt.Errorf("quotation %s decided concurrently", q.ID))
	}
	q.Status = to
	q.DecidedBy = &session.UserID

	s.logActivity(ctx, session, emitter.Activity{
		CaseID:  q.CaseID,
		Action:  entity.ActivityQuotationDecided,
		Message: fmt.Sprintf("Quotation %s %s by %s", q.QuotationNumber, strings.ToLower(string(to)), session.Name),
	})
	kind := entity.NotificationSuccess
	if to == entity.QuotationRejected {
		kind = entity.NotificationError
	}
	s.notify(ctx, session, q, fmt.Sprintf("Quotation %s", strings.ToLower(string(to))), kind)
	s.publishCases(ctx, session.OrgID)

	if !entity.CanSeePRCode(session.Role) {
		redacted := q.Redacted()
		return &redacted, nil
	}
	return q, nil
}

// ExternalQuotation ist die Kundenansicht. Sie enthält nie den pr_code.
func (s *QuotationService) ExternalQuotation(ctx context.Context, session entity.Session, quotationID string) (*entity.ExternalQuotation, *app_errors.AppError) {
	q, err := s.repo.FindQuotation(ctx, session.OrgID, quotationID)
	if err != nil {
		return nil, err
	}
	c, err := s.cases.FindByID(ctx, nil, session.OrgID, q.CaseID)
	if err != nil {
		return nil, err
	}
	out := entity.ToExternalQuotation(q, c)
	return &out, nil
}

// QuotationNumber: QT-<yyyymm>-<Case-Präfix>-v<version>.
func QuotationNumber(at time.Time, caseID string, version int) string {
	ref := strings.ToUpper(strings.ReplaceAll(caseID, "-", ""))
	if len(ref) > caseRefLength {
		ref = ref[:caseRefLength]
	}
	return fmt.Sprintf("QT-%s-%s-v%d", at.UTC().Format("200601"), ref, version)
}

func toQuotationItems(in []quotation_dto.QuotationItemInput) ([]entity.QuotationItem, *app_errors.AppError) {
	items := make([]entity.QuotationItem, 0, len(in))
	for i, it := range in {
		field := fmt.Sprintf("items[%d]", i)
		if !it.Quantity.IsPositive() {
			return nil, app_errors.NewFieldValidationError(field+".quantity", "gt", "validation.positive_amount")
		}
		if it.UnitPrice.IsNegative() {
			return nil, app_errors.NewFieldValidationError(field+".unit_price", "min", "validation.non_negative_amount")
		}
		if it.Discount.IsNegative() {
			return nil, app_errors.NewFieldValidationError(field+".discount", "min", "validation.non_negative_amount")
		}
		item := entity.QuotationItem{
			ItemID:      strings.TrimSpace(it.ItemID),
			Description: strings.TrimSpace(it.Description),
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Discount:    it.Discount,
		}
		if item.Discount.GreaterThan(item.LineTotal()) {
			return nil, app_errors.NewFieldValidationError(field+".discount", "max", "quotation.discount_exceeds_line")
		}
		items = append(items, item)
	}
	return items, nil
}

func auditNotificationType(to entity.AuditStatus) entity.NotificationType {
	if to == entity.AuditRejected {
		return entity.NotificationWarning
	}
	return entity.NotificationSuccess
}

func (s *QuotationService) notify(ctx context.Context, session entity.Session, q *entity.CaseQuotationEntity, title string, kind entity.NotificationType) {
	if q.SubmittedBy == "" || q.SubmittedBy == session.UserID {
		return
	}
	if _, err := s.notifier.Emit(ctx, session.OrgID, emitter.Notification{
		UserID:     q.SubmittedBy,
		Title:      title,
		Message:    fmt.Sprintf("%s (%s) updated by %s", q.QuotationNumber, q.GrandTotal.StringFixed(2), session.Name),
		EntityType: entity.EntityQuotation,
		EntityID:   q.ID,
		Type:       kind,
	}); err != nil {
		log.Warn().Err(err.Err).Str("quotation_id", q.ID).Msg("Benachrichtigung zum Angebot fehlgeschlagen")
	}
}

func (s *QuotationService) logActivity(ctx context.Context, session entity.Session, a emitter.Activity) {
	if err := s.activity.Log(ctx, session, a); err != nil {
		log.Warn().Err(err.Err).Str("case_id", a.CaseID).Str("action", string(a.Action)).Msg("Aktivität konnte nicht gespeichert werden")
	}
}

func (s *QuotationService) publishCases(ctx context.Context, orgID string) {
	if err := s.publisher.Publish(ctx, orgID, feed.Cases); err != nil {
		log.Warn().Err(err).Str("org_id", orgID).Msg("Case-Feed konnte nicht benachrichtigt werden")
	}
}
