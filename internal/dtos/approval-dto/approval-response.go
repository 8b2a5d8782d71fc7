package approval_dto

import "github.com/Xenn-00/fitout-meister/internal/entity"

type SuggestAssigneesResponse struct {
	ApprovalID  string                      `json:"approval_id"`
	TargetRole  entity.UserRole             `json:"target_role"`
	Suggestions []entity.AssigneeSuggestion `json:"suggestions"`
}
