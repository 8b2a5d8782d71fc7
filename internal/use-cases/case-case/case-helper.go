package case_case

import (
	case_dto "github.com/Xenn-00/fitout-meister/internal/dtos/case-dto"
	"github.com/Xenn-00/fitout-meister/internal/entity"
)

// paging rechnet page/limit in limit/offset um
func paging(limit, page, defaultLimit int) (int, int) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if page <= 0 {
		page = 1
	}
	return limit, (page - 1) * limit
}

func toCaseFilter(filter case_dto.CaseListFilter) entity.CaseFilter {
	limit, offset := paging(filter.Limit, filter.Page, 20)
	f := entity.CaseFilter{
		IsProject: filter.IsProject,
		Search:    filter.Search,
		Limit:     limit,
		Offset:    offset,
	}
	if filter.Status != nil {
		st := entity.CaseStatus(*filter.Status)
		f.Status = &st
	}
	return f
}

func toTaskFilter(filter case_dto.TaskListFilter) entity.TaskFilter {
	limit, offset := paging(filter.Limit, filter.Page, 20)
	f := entity.TaskFilter{
		Limit:  limit,
		Offset: offset,
	}
	if filter.Status != nil {
		st := entity.TaskStatus(*filter.Status)
		f.Status = &st
	}
	return f
}

// isManualTransition: Wechsel, die ohne Aufgabe direkt gesetzt werden dürfen.
func isManualTransition(from, to entity.CaseStatus) bool {
	switch {
	case from == entity.CaseNew && to == entity.CaseContacted:
		return true
	case from.IsLeadStage() && from != entity.CaseLost && to == entity.CaseLost:
		return true
	case from == entity.CaseLost && to == entity.CaseNew:
		return true
	case (from == entity.CaseProcurement || from == entity.CaseExecution) && to == entity.CaseOnHold:
		return true
	case from == entity.CaseOnHold && (to == entity.CaseProcurement || to == entity.CaseExecution):
		return true
	}
	return false
}
