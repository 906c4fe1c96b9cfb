package handlers

import (
	"fmt"
	"net/http"

	"transport_manager/internal/services"

	"github.com/gin-gonic/gin"
)

// catalogHandler serves list/create/show/update/delete for a master
// record table.
type catalogHandler[T any] struct {
	svc services.CatalogService[T]
}

func registerCatalog[T any](g *gin.RouterGroup, path string, svc services.CatalogService[T]) {
	h := &catalogHandler[T]{svc: svc}
	g.GET(path, h.list)
	g.POST(path, h.create)
	g.GET(path+"/:id", h.get)
	g.PUT(path+"/:id", h.update)
	g.DELETE(path+"/:id", h.delete)
}

func (h *catalogHandler[T]) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *catalogHandler[T]) get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	item, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *catalogHandler[T]) create(c *gin.Context) {
	item := new(T)
	if !bindJSON(c, item, false) {
		return
	}
	if err := h.svc.Create(c.Request.Context(), item); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// update binds the body over the stored record, so omitted fields keep
// their values.
func (h *catalogHandler[T]) update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	item, err := h.svc.Update(c.Request.Context(), id, func(v *T) error {
		if err := c.ShouldBindJSON(v); err != nil {
			return fmt.Errorf("%w: %v", services.ErrInvalidInput, err)
		}
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *catalogHandler[T]) delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": "deleted"})
}
