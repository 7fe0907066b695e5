package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cory-johannsen/campaign/internal/game/dice"
)

type diceRequest struct {
	Expression string `json:"expression"`
}

type diceResponse struct {
	dice.RollResult
	Total int    `json:"total"`
	Text  string `json:"text"`
}

// rollDice evaluates a dice expression. An empty expression rolls a d20.
func (h *handler) rollDice(c *gin.Context) {
	var in diceRequest
	if c.Request.ContentLength != 0 && !bind(c, &in) {
		return
	}
	if in.Expression == "" {
		in.Expression = "d20"
	}
	res, err := h.Roller.RollExpr(in.Expression)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, diceResponse{RollResult: res, Total: res.Total(), Text: res.String()})
}
