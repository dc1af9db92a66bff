package handlers

import (
	"net/http"

	"settingshub/internal/models"

	"github.com/gin-gonic/gin"
)

type renameInput struct {
	ProjectName string `json:"project_name" binding:"required"`
}

type addMemberInput struct {
	UserDID string `json:"user_did" binding:"required"`
	Role    string `json:"role"`
}

type roleInput struct {
	Role string `json:"role" binding:"required"`
}

func (h *Handler) listProjects(c *gin.Context) {
	list, err := h.services.Projects.List(c.Request.Context(), sessionToken(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if list == nil {
		list = []models.ProjectSummary{}
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

func (h *Handler) getProject(c *gin.Context) {
	p, err := h.services.Projects.Detail(c.Request.Context(), sessionToken(c), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": p, "can_manage": p.CanManage()})
}

func (h *Handler) renameProject(c *gin.Context) {
	var input renameInput
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	p, err := h.services.Projects.Rename(c.Request.Context(), sessionToken(c), c.Param("id"), input.ProjectName)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": p, "can_manage": p.CanManage()})
}

func (h *Handler) searchUsers(c *gin.Context) {
	users, err := h.services.Projects.Search(c.Request.Context(), sessionToken(c), c.Query("q"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if users == nil {
		users = []models.UserSummary{}
	}
	c.JSON(http.StatusOK, gin.H{"data": users})
}

func (h *Handler) addMember(c *gin.Context) {
	var input addMemberInput
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	p, err := h.services.Projects.AddMember(c.Request.Context(), sessionToken(c), c.Param("id"), input.UserDID, input.Role)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": p, "can_manage": p.CanManage()})
}

// removeMember needs the explicit confirm=true parameter: the HTTP
// rendition of the confirm dialog. Without it nothing is issued.
func (h *Handler) removeMember(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "member removal requires confirm=true"})
		return
	}
	p, err := h.services.Projects.RemoveMember(c.Request.Context(), sessionToken(c), c.Param("id"), c.Param("did"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": p, "can_manage": p.CanManage()})
}

func (h *Handler) changeRole(c *gin.Context) {
	var input roleInput
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	p, err := h.services.Projects.ChangeRole(c.Request.Context(), sessionToken(c), c.Param("id"), c.Param("did"), input.Role)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": p, "can_manage": p.CanManage()})
}
