package case_dto

import (
	"github.com/Xenn-00/fitout-meister/internal/entity"
)

// RouteStepError beschreibt einen fehlgeschlagenen Teilschritt des Routings.
type RouteStepError struct {
	Step       string `json:"step"`
	MessageKey string `json:"message_key"`
}

// RouteResult ist das Ergebnis eines Statuswechsels. Routed=false heißt: kein Regeleintrag, nichts geschrieben.
type RouteResult struct {
	Routed          bool                   `json:"routed"`
	CaseID          string                 `json:"case_id"`
	FromStatus      entity.CaseStatus      `json:"from_status"`
	ToStatus        entity.CaseStatus      `json:"to_status"`
	IsProject       bool                   `json:"is_project"`
	Task            *entity.CaseTaskEntity `json:"task,omitempty"`
	NotificationIDs []string               `json:"notification_ids,omitempty"`
	ActivityLogged  bool                   `json:"activity_logged"`
	Failures        []RouteStepError       `json:"failures,omitempty"`
}

type CompleteTaskResponse struct {
	Task  *entity.CaseTaskEntity `json:"task"`
	Route *RouteResult           `json:"route,omitempty"`
}

type CaseListResponse struct {
	Items []entity.CaseView `json:"items"`
}

type ImportRowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type ImportResponse struct {
	Format   string           `json:"format"`
	Imported int              `json:"imported"`
	Skipped  int              `json:"skipped"`
	Errors   []ImportRowError `json:"errors,omitempty"`
}
