package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cory-johannsen/campaign/internal/media"
)

func (h *handler) listVideos(c *gin.Context) {
	videos, err := h.Videos.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]media.VideoView, 0, len(videos))
	for _, v := range videos {
		out = append(out, media.NewVideoView(*v))
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) getVideo(c *gin.Context) {
	v, err := h.Videos.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, media.NewVideoView(*v))
}

func (h *handler) createVideo(c *gin.Context) {
	var in media.Video
	if !bind(c, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		fail(c, err)
		return
	}
	v, err := h.Videos.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, media.NewVideoView(*v))
}

func (h *handler) updateVideo(c *gin.Context) {
	var patch media.VideoPatch
	if !bind(c, &patch) {
		return
	}
	ctx := c.Request.Context()
	current, err := h.Videos.Get(ctx, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	next, err := patch.Apply(*current)
	if err != nil {
		fail(c, err)
		return
	}
	v, err := h.Videos.Update(ctx, next)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, media.NewVideoView(*v))
}

// deleteVideo also clears the video from every equalizer slot playing it.
func (h *handler) deleteVideo(c *gin.Context) {
	id := c.Param("id")
	if err := h.Videos.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	cleared := h.Mixers.RemoveVideoEverywhere(id)
	c.JSON(http.StatusOK, gin.H{"message": "video deleted", "slotsCleared": cleared})
}

func (h *handler) createMixer(c *gin.Context) {
	c.JSON(http.StatusCreated, h.Mixers.Create())
}

func (h *handler) getMixer(c *gin.Context) {
	v, err := h.Mixers.View(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *handler) deleteMixer(c *gin.Context) {
	if !h.Mixers.Delete(c.Param("id")) {
		fail(c, media.ErrMixerNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func slotParam(c *gin.Context) (int, bool) {
	slot, err := strconv.Atoi(c.Param("slot"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slot must be an integer"})
		return 0, false
	}
	return slot, true
}

type assignRequest struct {
	VideoID string `json:"videoId" binding:"required"`
}

func (h *handler) assignSlot(c *gin.Context) {
	slot, ok := slotParam(c)
	if !ok {
		return
	}
	var in assignRequest
	if !bind(c, &in) {
		return
	}
	v, err := h.Videos.Get(c.Request.Context(), in.VideoID)
	if err != nil {
		fail(c, err)
		return
	}
	view, err := h.Mixers.Update(c.Param("id"), func(m *media.Mixer) error { return m.Assign(slot, *v) })
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *handler) clearSlot(c *gin.Context) {
	slot, ok := slotParam(c)
	if !ok {
		return
	}
	view, err := h.Mixers.Update(c.Param("id"), func(m *media.Mixer) error { return m.Clear(slot) })
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type volumeRequest struct {
	Volume *int `json:"volume" binding:"required"`
}

func (h *handler) setSlotVolume(c *gin.Context) {
	slot, ok := slotParam(c)
	if !ok {
		return
	}
	var in volumeRequest
	if !bind(c, &in) {
		return
	}
	view, err := h.Mixers.Update(c.Param("id"), func(m *media.Mixer) error { return m.SetVolume(slot, *in.Volume) })
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
