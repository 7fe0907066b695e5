package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cory-johannsen/campaign/internal/game/combat"
)

func (h *handler) listSessions(c *gin.Context) {
	c.JSON(http.StatusOK, h.Combat.List())
}

func (h *handler) createSession(c *gin.Context) {
	c.JSON(http.StatusCreated, h.Combat.Create())
}

func (h *handler) getSession(c *gin.Context) {
	v, err := h.Combat.View(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *handler) deleteSession(c *gin.Context) {
	if !h.Combat.Delete(c.Param("id")) {
		fail(c, combat.ErrSessionNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// mutate applies fn to the session named in the path and writes the resulting view.
func (h *handler) mutate(c *gin.Context, fn func(*combat.Session) error) {
	v, err := h.Combat.Update(c.Param("id"), fn)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

type addCombatantRequest struct {
	CharacterID string `json:"characterId" binding:"required"`
}

type addCombatantResponse struct {
	InstanceID string      `json:"instanceId"`
	Session    combat.View `json:"session"`
}

// addCombatant loads the character from storage and adds a fresh instance of it.
// Adding the same character twice yields two independent instances.
func (h *handler) addCombatant(c *gin.Context) {
	var in addCombatantRequest
	if !bind(c, &in) {
		return
	}
	ch, err := h.Characters.Get(c.Request.Context(), in.CharacterID)
	if err != nil {
		fail(c, err)
		return
	}
	var instanceID string
	v, err := h.Combat.Update(c.Param("id"), func(s *combat.Session) error {
		id, err := s.AddCombatant(ch)
		instanceID = id
		return err
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, addCombatantResponse{InstanceID: instanceID, Session: v})
}

func (h *handler) removeCombatant(c *gin.Context) {
	h.mutate(c, func(s *combat.Session) error { return s.RemoveCombatant(c.Param("instanceId")) })
}

type initiativeRequest struct {
	Value *int `json:"value" binding:"required"`
}

func (h *handler) setInitiative(c *gin.Context) {
	var in initiativeRequest
	if !bind(c, &in) {
		return
	}
	h.mutate(c, func(s *combat.Session) error { return s.SetInitiative(c.Param("instanceId"), *in.Value) })
}

type amountRequest struct {
	Amount int `json:"amount"`
}

func (h *handler) applyDamage(c *gin.Context) {
	var in amountRequest
	if !bind(c, &in) {
		return
	}
	h.mutate(c, func(s *combat.Session) error {
		_, err := s.ApplyDamage(c.Param("instanceId"), in.Amount)
		return err
	})
}

func (h *handler) applyHeal(c *gin.Context) {
	var in amountRequest
	if !bind(c, &in) {
		return
	}
	h.mutate(c, func(s *combat.Session) error {
		_, err := s.ApplyHeal(c.Param("instanceId"), in.Amount)
		return err
	})
}

func (h *handler) proceedToInitiative(c *gin.Context) {
	h.mutate(c, (*combat.Session).ProceedToInitiative)
}

func (h *handler) rollInitiative(c *gin.Context) {
	h.mutate(c, func(s *combat.Session) error {
		_, err := s.RollInitiative(h.Roller)
		return err
	})
}

func (h *handler) back(c *gin.Context) {
	h.mutate(c, (*combat.Session).Back)
}

func (h *handler) startCombat(c *gin.Context) {
	h.mutate(c, (*combat.Session).StartCombat)
}

func (h *handler) advance(c *gin.Context) {
	h.mutate(c, (*combat.Session).Advance)
}

func (h *handler) reset(c *gin.Context) {
	h.mutate(c, func(s *combat.Session) error {
		s.Reset()
		return nil
	})
}
