package handlers

import (
	"net/http"

	"settingshub/internal/models"

	"github.com/gin-gonic/gin"
)

type bioInput struct {
	Bio string `json:"bio"`
}

type tagInput struct {
	Tag string `json:"tag" binding:"required"`
}

func (h *Handler) me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": callerIdentity(c)})
}

func (h *Handler) tagCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"tags":       models.ProfessionTags,
		"categories": models.TagCategories,
		"limit":      models.MaxTags,
	}})
}

func (h *Handler) logout(c *gin.Context) {
	if id, ok := c.Get(ctxSessionID); ok {
		if err := h.services.Sessions.Clear(c.Request.Context(), id.(string)); err != nil {
			h.writeServiceError(c, err)
			return
		}
	}
	h.expireSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"login_url": h.opts.LoginURL}})
}

func (h *Handler) getProfile(c *gin.Context) {
	view, err := h.services.Profile.View(c.Request.Context(), sessionToken(c), callerIdentity(c).DID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": view})
}

func (h *Handler) setBio(c *gin.Context) {
	var input bioInput
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	draft, err := h.services.Profile.SetBio(callerIdentity(c).DID, input.Bio)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": draft})
}

func (h *Handler) toggleTag(c *gin.Context) {
	var input tagInput
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	draft, err := h.services.Profile.ToggleTag(callerIdentity(c).DID, input.Tag)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": draft})
}

func (h *Handler) addCustomTag(c *gin.Context) {
	var input tagInput
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	draft, err := h.services.Profile.AddCustomTag(callerIdentity(c).DID, input.Tag)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": draft})
}

func (h *Handler) removeTag(c *gin.Context) {
	draft, err := h.services.Profile.RemoveTag(callerIdentity(c).DID, c.Param("tag"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": draft})
}

func (h *Handler) saveProfile(c *gin.Context) {
	view, err := h.services.Profile.Submit(c.Request.Context(), sessionToken(c), callerIdentity(c).DID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": view})
}
