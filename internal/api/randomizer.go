package api

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cory-johannsen/campaign/internal/randomizer"
)

type categoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (h *handler) listCategories(c *gin.Context) {
	cats, err := h.Randomizer.ListCategories(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cats)
}

func (h *handler) getCategory(c *gin.Context) {
	cat, err := h.Randomizer.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *handler) createCategory(c *gin.Context) {
	var in categoryRequest
	if !bind(c, &in) {
		return
	}
	cat, err := h.Randomizer.CreateCategory(c.Request.Context(), in.Name, in.Description)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (h *handler) updateCategory(c *gin.Context) {
	var in categoryRequest
	if !bind(c, &in) {
		return
	}
	cat, err := h.Randomizer.UpdateCategory(c.Request.Context(), c.Param("id"), in.Name, in.Description)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *handler) deleteCategory(c *gin.Context) {
	if err := h.Randomizer.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *handler) listItems(c *gin.Context) {
	items, err := h.Randomizer.ListItems(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *handler) createItem(c *gin.Context) {
	var in randomizer.Item
	if !bind(c, &in) {
		return
	}
	in.CategoryID = c.Param("id")
	it, err := h.Randomizer.AddItem(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, it)
}

func (h *handler) deleteItem(c *gin.Context) {
	if err := h.Randomizer.DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type importRequest struct {
	Categories []randomizer.ImportCategory `json:"categories" binding:"required"`
}

type importResponse struct {
	Success bool                    `json:"success"`
	Message string                  `json:"message"`
	Results randomizer.ImportReport `json:"results"`
}

func (h *handler) importCategories(c *gin.Context) {
	var in importRequest
	if !bind(c, &in) {
		return
	}
	h.runImport(c, in.Categories)
}

// importCSV accepts either a multipart upload in field "file" or a raw text/csv body.
func (h *handler) importCSV(c *gin.Context) {
	var src io.Reader = c.Request.Body
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			fail(c, fmt.Errorf("opening upload: %w", err))
			return
		}
		defer f.Close()
		src = f
	}
	cats, err := randomizer.ParseCSV(src)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.runImport(c, cats)
}

func (h *handler) runImport(c *gin.Context, cats []randomizer.ImportCategory) {
	report, err := h.Randomizer.Import(c.Request.Context(), cats)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, importResponse{Success: true, Message: report.Message(), Results: report})
}

func (h *handler) roll(c *gin.Context) {
	res, err := h.Randomizer.Roll(c.Request.Context(), c.Param("categoryId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *handler) history(c *gin.Context) {
	limit := 0
	if q := c.Query("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}
		limit = n
	}
	entries, err := h.Randomizer.History(c.Request.Context(), c.Query("categoryId"), limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

type recordRequest struct {
	CategoryID string `json:"categoryId"`
	ItemID     string `json:"itemId"`
}

func (h *handler) recordHistory(c *gin.Context) {
	var in recordRequest
	if !bind(c, &in) {
		return
	}
	e, err := h.Randomizer.RecordRoll(c.Request.Context(), in.CategoryID, in.ItemID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h *handler) clearHistory(c *gin.Context) {
	n, err := h.Randomizer.ClearHistory(c.Request.Context(), c.Query("categoryId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "deleted": n})
}
