package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"project-manager/internal/domain"
)

type createUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,useremail"`
}

// updateUserRequest fields are optional; blank values leave the field unchanged.
type updateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,useremail"`
}

func (h *Handler) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingMessage(err)})
		return
	}

	user, err := h.users.Create(c.Request.Context(), domain.NewUser{Name: req.Name, Email: req.Email})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, userToResponse(*user))
}

func (h *Handler) getUser(c *gin.Context) {
	id, err := pathID(c, "id", "user")
	if err != nil {
		h.writeError(c, err)
		return
	}

	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(*user))
}

func (h *Handler) listUsers(c *gin.Context) {
	params, err := listParams(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	page, err := h.users.List(c.Request.Context(), params)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse[UserResponse]{
		Data:   usersToResponse(page.Data),
		Paging: pagingToResponse(page.Paging),
	})
}

func (h *Handler) updateUser(c *gin.Context) {
	id, err := pathID(c, "id", "user")
	if err != nil {
		h.writeError(c, err)
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingMessage(err)})
		return
	}

	user, err := h.users.Update(c.Request.Context(), id, domain.UserPatch{Name: req.Name, Email: req.Email})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(*user))
}

func (h *Handler) deleteUser(c *gin.Context) {
	id, err := pathID(c, "id", "user")
	if err != nil {
		h.writeError(c, err)
		return
	}

	user, err := h.users.Delete(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(*user))
}

func (h *Handler) listUserProjects(c *gin.Context) {
	id, err := pathID(c, "id", "user")
	if err != nil {
		h.writeError(c, err)
		return
	}

	projects, err := h.projects.ListForUser(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, plainProjectsToResponse(projects))
}
