package http

import (
	"time"

	"project-manager/internal/domain"
)

type UserResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// PlainProjectResponse is a project without its members.
type PlainProjectResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

type ProjectResponse struct {
	PlainProjectResponse
	Users []UserResponse `json:"users"`
}

type PagingResponse struct {
	CurrentPage   int `json:"currentPage"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
}

type ListResponse[T any] struct {
	Data   []T            `json:"data"`
	Paging PagingResponse `json:"paging"`
}

func userToResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}

func usersToResponse(users []domain.User) []UserResponse {
	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(users[i])
	}
	return resp
}

func plainProjectToResponse(project domain.Project) PlainProjectResponse {
	return PlainProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		CreatedAt:   project.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   project.UpdatedAt.Format(time.RFC3339),
	}
}

func plainProjectsToResponse(projects []domain.Project) []PlainProjectResponse {
	resp := make([]PlainProjectResponse, len(projects))
	for i := range projects {
		resp[i] = plainProjectToResponse(projects[i])
	}
	return resp
}

func projectToResponse(project domain.Project) ProjectResponse {
	return ProjectResponse{
		PlainProjectResponse: plainProjectToResponse(project),
		Users:                usersToResponse(project.Users),
	}
}

func pagingToResponse(p domain.Paging) PagingResponse {
	return PagingResponse{
		CurrentPage:   p.CurrentPage,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
	}
}
