package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"project-manager/internal/domain"
)

type createProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type updateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (h *Handler) createProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingMessage(err)})
		return
	}

	project, err := h.projects.Create(c.Request.Context(), domain.NewProject{Name: req.Name, Description: req.Description})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plainProjectToResponse(*project))
}

func (h *Handler) getProject(c *gin.Context) {
	id, err := pathID(c, "id", "project")
	if err != nil {
		h.writeError(c, err)
		return
	}

	project, err := h.projects.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, projectToResponse(*project))
}

func (h *Handler) listProjects(c *gin.Context) {
	params, err := listParams(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	page, err := h.projects.List(c.Request.Context(), params)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse[PlainProjectResponse]{
		Data:   plainProjectsToResponse(page.Data),
		Paging: pagingToResponse(page.Paging),
	})
}

func (h *Handler) updateProject(c *gin.Context) {
	id, err := pathID(c, "id", "project")
	if err != nil {
		h.writeError(c, err)
		return
	}

	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingMessage(err)})
		return
	}

	project, err := h.projects.Update(c.Request.Context(), id, domain.ProjectPatch{Name: req.Name, Description: req.Description})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, projectToResponse(*project))
}

func (h *Handler) deleteProject(c *gin.Context) {
	id, err := pathID(c, "id", "project")
	if err != nil {
		h.writeError(c, err)
		return
	}

	project, err := h.projects.Delete(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, plainProjectToResponse(*project))
}

func (h *Handler) addProjectUser(c *gin.Context) {
	h.changeMembership(c, h.projects.AddUser)
}

func (h *Handler) removeProjectUser(c *gin.Context) {
	h.changeMembership(c, h.projects.RemoveUser)
}

func (h *Handler) changeMembership(c *gin.Context, change func(ctx context.Context, projectID, userID int64) (*domain.Project, error)) {
	projectID, err := pathID(c, "id", "project")
	if err != nil {
		h.writeError(c, err)
		return
	}
	userID, err := pathID(c, "userId", "user")
	if err != nil {
		h.writeError(c, err)
		return
	}

	project, err := change(c.Request.Context(), projectID, userID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, projectToResponse(*project))
}
