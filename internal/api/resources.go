package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cory-johannsen/campaign/internal/game/resource"
)

func (h *handler) listSkills(c *gin.Context) {
	skills, err := h.Resources.ListSkills(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, skills)
}

func (h *handler) getSkill(c *gin.Context) {
	s, err := h.Resources.GetSkill(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *handler) createSkill(c *gin.Context) {
	var in resource.Skill
	if !bind(c, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		fail(c, err)
		return
	}
	s, err := h.Resources.CreateSkill(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *handler) updateSkill(c *gin.Context) {
	var patch resource.SkillPatch
	if !bind(c, &patch) {
		return
	}
	ctx := c.Request.Context()
	current, err := h.Resources.GetSkill(ctx, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	next, err := patch.Apply(*current)
	if err != nil {
		fail(c, err)
		return
	}
	s, err := h.Resources.UpdateSkill(ctx, next)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *handler) deleteSkill(c *gin.Context) {
	if err := h.Resources.DeleteSkill(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "skill deleted"})
}

func (h *handler) listQualitiesDrawbacks(c *gin.Context) {
	list, err := h.Resources.ListQualitiesDrawbacks(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handler) getQualityDrawback(c *gin.Context) {
	q, err := h.Resources.GetQualityDrawback(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

func (h *handler) createQualityDrawback(c *gin.Context) {
	var in resource.QualityDrawback
	if !bind(c, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		fail(c, err)
		return
	}
	q, err := h.Resources.CreateQualityDrawback(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, q)
}

func (h *handler) updateQualityDrawback(c *gin.Context) {
	var patch resource.QualityDrawbackPatch
	if !bind(c, &patch) {
		return
	}
	ctx := c.Request.Context()
	current, err := h.Resources.GetQualityDrawback(ctx, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	q, err := h.Resources.UpdateQualityDrawback(ctx, patch.Apply(*current))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

func (h *handler) deleteQualityDrawback(c *gin.Context) {
	if err := h.Resources.DeleteQualityDrawback(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "quality/drawback deleted"})
}
