package case_case

import (
	"context"
	"io"

	case_dto "github.com/Xenn-00/fitout-meister/internal/dtos/case-dto"
	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
)

// TaskRouterContract setzt Statuswechsel in Aufgaben, Benachrichtigungen und Aktivitäten um.
type TaskRouterContract interface {
	RouteOnTransition(ctx context.Context, session entity.Session, caseID string, from, to entity.CaseStatus) (*case_dto.RouteResult, *app_errors.AppError)
	SpawnTask(ctx context.Context, session entity.Session, c *entity.CaseEntity, taskType entity.TaskType) (*case_dto.RouteResult, *app_errors.AppError)
}

type CaseServiceContract interface {
	CreateCase(ctx context.Context, session entity.Session, req *case_dto.CreateCaseRequest) (entity.CaseView, *app_errors.AppError)
	GetCase(ctx context.Context, session entity.Session, caseID string) (entity.CaseView, *app_errors.AppError)
	ListCases(ctx context.Context, session entity.Session, filter case_dto.CaseListFilter) ([]entity.CaseView, *app_errors.AppError)
	UpdateCase(ctx context.Context, session entity.Session, caseID string, req *case_dto.UpdateCaseRequest) (entity.CaseView, *app_errors.AppError)
	DeleteCase(ctx context.Context, session entity.Session, caseID string) *app_errors.AppError
	TransitionCase(ctx context.Context, session entity.Session, caseID string, req *case_dto.TransitionRequest) (*case_dto.RouteResult, *app_errors.AppError)
	SetStatus(ctx context.Context, session entity.Session, caseID string, req *case_dto.TransitionRequest) (entity.CaseView, *app_errors.AppError)
	ListActivities(ctx context.Context, session entity.Session, caseID string, filter case_dto.ActivityListFilter) ([]entity.CaseActivityEntity, *app_errors.AppError)
	ExportCSV(ctx context.Context, session entity.Session, w io.Writer, filter case_dto.CaseListFilter) *app_errors.AppError
	ImportLeads(ctx context.Context, session entity.Session, data []byte) (*case_dto.ImportResponse, *app_errors.AppError)

	StartTask(ctx context.Context, session entity.Session, taskID string) (*entity.CaseTaskEntity, *app_errors.AppError)
	CompleteTask(ctx context.Context, session entity.Session, taskID string) (*case_dto.CompleteTaskResponse, *app_errors.AppError)
	ReassignTask(ctx context.Context, session entity.Session, taskID string, req *case_dto.ReassignTaskRequest) (*entity.CaseTaskEntity, *app_errors.AppError)
	ListCaseTasks(ctx context.Context, session entity.Session, caseID string, filter case_dto.TaskListFilter) ([]entity.CaseTaskEntity, *app_errors.AppError)
	ListMyTasks(ctx context.Context, session entity.Session, filter case_dto.TaskListFilter) ([]entity.CaseTaskEntity, *app_errors.AppError)
}
