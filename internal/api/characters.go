package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cory-johannsen/campaign/internal/game/character"
)

func (h *handler) listCharacters(c *gin.Context) {
	var cat character.Category
	if q := c.Query("category"); q != "" {
		parsed, err := character.ParseCategory(q)
		if err != nil {
			fail(c, err)
			return
		}
		cat = parsed
	}
	chars, err := h.Characters.List(c.Request.Context(), cat)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, chars)
}

func (h *handler) getCharacter(c *gin.Context) {
	ch, err := h.Characters.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ch)
}

func (h *handler) createCharacter(c *gin.Context) {
	var in character.Character
	if !bind(c, &in) {
		return
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Category != "" {
		cat, err := character.ParseCategory(string(in.Category))
		if err != nil {
			fail(c, err)
			return
		}
		in.Category = cat
	}
	if err := in.Validate(); err != nil {
		fail(c, err)
		return
	}
	created, err := h.Characters.Create(c.Request.Context(), &in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// characterUpdate is a Patch that may also replace the skill and trait lists.
type characterUpdate struct {
	character.Patch
	Skills *[]character.Skill `json:"skills"`
	Traits *[]character.Trait `json:"traits"`
}

func (h *handler) updateCharacter(c *gin.Context) {
	var in characterUpdate
	if !bind(c, &in) {
		return
	}
	ctx := c.Request.Context()
	current, err := h.Characters.Get(ctx, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	next, err := in.Apply(current)
	if err != nil {
		fail(c, err)
		return
	}
	if in.Skills != nil {
		next.Skills = *in.Skills
	}
	if in.Traits != nil {
		next.Traits = *in.Traits
	}
	if err := next.Validate(); err != nil {
		fail(c, err)
		return
	}
	updated, err := h.Characters.Update(ctx, next)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *handler) deleteCharacter(c *gin.Context) {
	if err := h.Characters.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "character deleted"})
}
