package handler

import (
	"fmt"

	"github.com/teamops/opstracker/internal/core/domain"
)

// messageResponse is the error/status envelope used on all non-2xx responses.
type messageResponse struct {
	Message string `json:"message"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userPayload struct {
	ID         string `json:"id"`
	Username   string `json:"username" validate:"required"`
	Password   string `json:"password"`
	Role       string `json:"role"     validate:"required,oneof=ADMIN USER"`
	Name       string `json:"name"     validate:"required"`
	IsDisabled bool   `json:"isDisabled"`
}

func (p userPayload) toDomain() domain.User {
	return domain.User{
		ID:         p.ID,
		Username:   p.Username,
		Password:   p.Password,
		Role:       domain.Role(p.Role),
		Name:       p.Name,
		IsDisabled: p.IsDisabled,
	}
}

type idRequest struct {
	ID string `json:"id" validate:"required"`
}

// recordPayload accepts both the canonical processName key and its historical
// task alias. Internally there is a single field; the aliases are resolved
// here at the boundary and must agree when both are present.
type recordPayload struct {
	ID                         string `json:"id"`
	UserID                     string `json:"userId"   validate:"required"`
	UserName                   string `json:"userName"`
	ProcessName                string `json:"processName"`
	Task                       string `json:"task"`
	Team                       string `json:"team"      validate:"required"`
	Frequency                  string `json:"frequency" validate:"required"`
	TotalUtilization           int    `json:"totalUtilization"`
	Count                      int    `json:"count" validate:"required,gte=1"`
	ActualUtilizationUserInput int    `json:"actualUtilizationUserInput" validate:"gte=0,lte=480"`
	CompletedDate              string `json:"completedDate" validate:"required"`
	Remarks                    string `json:"remarks"`
}

func (p recordPayload) toDomain() (domain.ProductionRecord, error) {
	name := p.ProcessName
	switch {
	case name == "":
		name = p.Task
	case p.Task != "" && p.Task != name:
		return domain.ProductionRecord{}, fmt.Errorf("%w: processName and task must carry the same value", domain.ErrValidation)
	}

	return domain.ProductionRecord{
		ID:                         p.ID,
		UserID:                     p.UserID,
		UserName:                   p.UserName,
		ProcessName:                name,
		Team:                       p.Team,
		Frequency:                  p.Frequency,
		TotalUtilization:           p.TotalUtilization,
		Count:                      p.Count,
		ActualUtilizationUserInput: p.ActualUtilizationUserInput,
		CompletedDate:              p.CompletedDate,
		Remarks:                    p.Remarks,
	}, nil
}

// recordResponse emits processName and its task alias with the same value so
// older consumers keep working.
type recordResponse struct {
	ID                         string `json:"id"`
	UserID                     string `json:"userId"`
	UserName                   string `json:"userName"`
	ProcessName                string `json:"processName"`
	Task                       string `json:"task"`
	Team                       string `json:"team"`
	Frequency                  string `json:"frequency"`
	TotalUtilization           int    `json:"totalUtilization"`
	Count                      int    `json:"count"`
	ActualUtilizationUserInput int    `json:"actualUtilizationUserInput"`
	CompletedDate              string `json:"completedDate"`
	Remarks                    string `json:"remarks,omitempty"`
}

func toRecordResponse(r domain.ProductionRecord) recordResponse {
	return recordResponse{
		ID:                         r.ID,
		UserID:                     r.UserID,
		UserName:                   r.UserName,
		ProcessName:                r.ProcessName,
		Task:                       r.ProcessName,
		Team:                       r.Team,
		Frequency:                  r.Frequency,
		TotalUtilization:           r.TotalUtilization,
		Count:                      r.Count,
		ActualUtilizationUserInput: r.ActualUtilizationUserInput,
		CompletedDate:              r.CompletedDate,
		Remarks:                    r.Remarks,
	}
}

func toRecordResponses(records []domain.ProductionRecord) []recordResponse {
	out := make([]recordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, toRecordResponse(r))
	}
	return out
}

// dataResponse is the bootstrap payload: every user (passwords stripped) and
// every record in one round trip.
type dataResponse struct {
	Users   []domain.User    `json:"users"`
	Records []recordResponse `json:"records"`
}
