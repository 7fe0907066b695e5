// Package api exposes the campaign tools over HTTP using gin.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cory-johannsen/campaign/internal/game/character"
	"github.com/cory-johannsen/campaign/internal/game/combat"
	"github.com/cory-johannsen/campaign/internal/game/dice"
	"github.com/cory-johannsen/campaign/internal/game/resource"
	"github.com/cory-johannsen/campaign/internal/media"
	"github.com/cory-johannsen/campaign/internal/observability"
	"github.com/cory-johannsen/campaign/internal/randomizer"
)

// CharacterStore persists characters.
type CharacterStore interface {
	List(ctx context.Context, category character.Category) ([]*character.Character, error)
	Get(ctx context.Context, id string) (*character.Character, error)
	Create(ctx context.Context, c *character.Character) (*character.Character, error)
	Update(ctx context.Context, c *character.Character) (*character.Character, error)
	Delete(ctx context.Context, id string) error
}

// ResourceStore persists the skill and quality/drawback catalogs.
type ResourceStore interface {
	ListSkills(ctx context.Context) ([]*resource.Skill, error)
	GetSkill(ctx context.Context, id string) (*resource.Skill, error)
	CreateSkill(ctx context.Context, s resource.Skill) (*resource.Skill, error)
	UpdateSkill(ctx context.Context, s resource.Skill) (*resource.Skill, error)
	DeleteSkill(ctx context.Context, id string) error

	ListQualitiesDrawbacks(ctx context.Context) ([]*resource.QualityDrawback, error)
	GetQualityDrawback(ctx context.Context, id string) (*resource.QualityDrawback, error)
	CreateQualityDrawback(ctx context.Context, q resource.QualityDrawback) (*resource.QualityDrawback, error)
	UpdateQualityDrawback(ctx context.Context, q resource.QualityDrawback) (*resource.QualityDrawback, error)
	DeleteQualityDrawback(ctx context.Context, id string) error
}

// VideoStore persists saved YouTube tracks.
type VideoStore interface {
	List(ctx context.Context) ([]*media.Video, error)
	Get(ctx context.Context, id string) (*media.Video, error)
	Create(ctx context.Context, v media.Video) (*media.Video, error)
	Update(ctx context.Context, v media.Video) (*media.Video, error)
	Delete(ctx context.Context, id string) error
}

// HealthChecker reports backing store reachability.
type HealthChecker interface {
	Health(ctx context.Context, timeout time.Duration) error
}

// Deps are the collaborators the HTTP handlers need.
type Deps struct {
	Logger     *zap.Logger
	Health     HealthChecker
	Characters CharacterStore
	Resources  ResourceStore
	Videos     VideoStore
	Randomizer *randomizer.Service
	Combat     *combat.Registry
	Mixers     *media.Mixers
	Roller     *dice.Roller
}

type handler struct {
	Deps
}

// NewRouter builds the gin engine with every route registered.
//
// Precondition: every field of deps must be non-nil.
// Postcondition: Returns a ready-to-serve engine.
func NewRouter(deps Deps) *gin.Engine {
	h := &handler{Deps: deps}

	r := gin.New()
	r.Use(observability.Recovery(deps.Logger), observability.RequestLogger(deps.Logger), allowAnyOrigin)

	r.GET("/health", h.health)

	api := r.Group("/api")
	{
		chars := api.Group("/characters")
		{
			chars.GET("", h.listCharacters)
			chars.POST("", h.createCharacter)
			chars.GET("/:id", h.getCharacter)
			chars.PATCH("/:id", h.updateCharacter)
			chars.PUT("/:id", h.updateCharacter)
			chars.DELETE("/:id", h.deleteCharacter)
		}

		res := api.Group("/resources")
		{
			res.GET("/skills", h.listSkills)
			res.POST("/skills", h.createSkill)
			res.GET("/skills/:id", h.getSkill)
			res.PATCH("/skills/:id", h.updateSkill)
			res.PUT("/skills/:id", h.updateSkill)
			res.DELETE("/skills/:id", h.deleteSkill)

			res.GET("/qualities-drawbacks", h.listQualitiesDrawbacks)
			res.POST("/qualities-drawbacks", h.createQualityDrawback)
			res.GET("/qualities-drawbacks/:id", h.getQualityDrawback)
			res.PATCH("/qualities-drawbacks/:id", h.updateQualityDrawback)
			res.PUT("/qualities-drawbacks/:id", h.updateQualityDrawback)
			res.DELETE("/qualities-drawbacks/:id", h.deleteQualityDrawback)
		}

		rnd := api.Group("/randomizer")
		{
			rnd.GET("/categories", h.listCategories)
			rnd.POST("/categories", h.createCategory)
			rnd.GET("/categories/:id", h.getCategory)
			rnd.PATCH("/categories/:id", h.updateCategory)
			rnd.PUT("/categories/:id", h.updateCategory)
			rnd.DELETE("/categories/:id", h.deleteCategory)
			rnd.GET("/categories/:id/items", h.listItems)
			rnd.POST("/categories/:id/items", h.createItem)
			rnd.DELETE("/items/:id", h.deleteItem)
			rnd.POST("/import", h.importCategories)
			rnd.POST("/import/csv", h.importCSV)
			rnd.POST("/roll/:categoryId", h.roll)
			rnd.GET("/history", h.history)
			rnd.POST("/history", h.recordHistory)
			rnd.DELETE("/history", h.clearHistory)
		}

		yt := api.Group("/youtube")
		{
			yt.GET("", h.listVideos)
			yt.POST("", h.createVideo)
			yt.GET("/:id", h.getVideo)
			yt.PATCH("/:id", h.updateVideo)
			yt.PUT("/:id", h.updateVideo)
			yt.DELETE("/:id", h.deleteVideo)
		}

		eq := api.Group("/equalizer")
		{
			eq.POST("", h.createMixer)
			eq.GET("/:id", h.getMixer)
			eq.DELETE("/:id", h.deleteMixer)
			eq.PUT("/:id/slots/:slot", h.assignSlot)
			eq.DELETE("/:id/slots/:slot", h.clearSlot)
			eq.PUT("/:id/slots/:slot/volume", h.setSlotVolume)
		}

		api.POST("/dice/roll", h.rollDice)

		cs := api.Group("/combat/sessions")
		{
			cs.GET("", h.listSessions)
			cs.POST("", h.createSession)
			cs.GET("/:id", h.getSession)
			cs.DELETE("/:id", h.deleteSession)
			cs.POST("/:id/combatants", h.addCombatant)
			cs.DELETE("/:id/combatants/:instanceId", h.removeCombatant)
			cs.PUT("/:id/combatants/:instanceId/initiative", h.setInitiative)
			cs.POST("/:id/combatants/:instanceId/damage", h.applyDamage)
			cs.POST("/:id/combatants/:instanceId/heal", h.applyHeal)
			cs.POST("/:id/initiative", h.proceedToInitiative)
			cs.POST("/:id/initiative/roll", h.rollInitiative)
			cs.POST("/:id/back", h.back)
			cs.POST("/:id/start", h.startCombat)
			cs.POST("/:id/advance", h.advance)
			cs.POST("/:id/reset", h.reset)
		}
	}
	return r
}

func allowAnyOrigin(c *gin.Context) {
	c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
	c.Next()
}

func (h *handler) health(c *gin.Context) {
	if err := h.Health.Health(c.Request.Context(), 2*time.Second); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "combatSessions": h.Combat.Len()})
}

// errInvalidBody marks a request body or query that failed to bind.
var errInvalidBody = errors.New("invalid request body")

var statusByError = []struct {
	err    error
	status int
}{
	{errInvalidBody, http.StatusBadRequest},
	{character.ErrNameRequired, http.StatusBadRequest},
	{character.ErrInvalidCategory, http.StatusBadRequest},
	{character.ErrNegativeLife, http.StatusBadRequest},
	{resource.ErrNameRequired, http.StatusBadRequest},
	{resource.ErrInvalidSkillType, http.StatusBadRequest},
	{randomizer.ErrNameRequired, http.StatusBadRequest},
	{randomizer.ErrCategoryFull, http.StatusBadRequest},
	{randomizer.ErrInvalidCSV, http.StatusBadRequest},
	{randomizer.ErrRollRequired, http.StatusBadRequest},
	{media.ErrVideoFieldsRequired, http.StatusBadRequest},
	{media.ErrInvalidLink, http.StatusBadRequest},
	{media.ErrSlotOutOfRange, http.StatusBadRequest},
	{dice.ErrInvalidExpression, http.StatusBadRequest},
	{combat.ErrInvalidInitiative, http.StatusBadRequest},

	{character.ErrNotFound, http.StatusNotFound},
	{resource.ErrNotFound, http.StatusNotFound},
	{randomizer.ErrCategoryNotFound, http.StatusNotFound},
	{randomizer.ErrItemNotFound, http.StatusNotFound},
	{randomizer.ErrEmptyCategory, http.StatusNotFound},
	{media.ErrVideoNotFound, http.StatusNotFound},
	{media.ErrMixerNotFound, http.StatusNotFound},
	{combat.ErrSessionNotFound, http.StatusNotFound},
	{combat.ErrUnknownInstance, http.StatusNotFound},

	{randomizer.ErrCategoryExists, http.StatusConflict},
	{combat.ErrWrongPhase, http.StatusConflict},
	{combat.ErrInsufficientCombatants, http.StatusConflict},
	{combat.ErrIncompleteInitiative, http.StatusConflict},
}

func statusFor(err error) int {
	for _, m := range statusByError {
		if errors.Is(err, m.err) {
			return m.status
		}
	}
	return http.StatusInternalServerError
}

// fail writes err as {"error": ...}. Unmapped errors become 500 with a generic
// message; the cause is attached to the context for the request logger.
func fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// bind decodes the JSON body into dst, mapping decode failures to errInvalidBody.
func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody.Error() + ": " + err.Error()})
		return false
	}
	return true
}
