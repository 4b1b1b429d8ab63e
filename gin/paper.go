package gin

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rohancyriac029/reviewcord/errors"
	"github.com/rohancyriac029/reviewcord/models"
	"github.com/rohancyriac029/reviewcord/services"
)

type PaperHandler struct {
	Service *services.PaperService
}

func (h *PaperHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/papers", JSONFormatter(h.List))
	router.POST("/api/papers", JSONFormatter(h.Create))
	router.GET("/api/papers/search", JSONFormatter(h.Search))
	router.GET("/api/papers/:id", JSONFormatter(h.Get))
	router.PATCH("/api/papers/:id", JSONFormatter(h.Update))
	router.DELETE("/api/papers/:id", JSONFormatter(h.Delete))
}

func paperID(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, errors.New("id should be a number", errors.BadRequest(), errors.WithCause(err))
	}
	return id, nil
}

func (h *PaperHandler) List(c *gin.Context) (interface{}, error) {
	papers, err := h.Service.List()
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"data": papers,
	}, nil
}

func (h *PaperHandler) Create(c *gin.Context) (interface{}, error) {
	var input models.PaperInput
	if err := c.ShouldBindJSON(&input); err != nil {
		return nil, errors.New("could not decode paper", errors.BadRequest(), errors.WithCause(err))
	}

	paper, extracted, err := h.Service.Create(c.Request.Context(), input)
	if err != nil {
		return nil, err
	}

	return created{map[string]interface{}{
		"data":      paper,
		"extracted": extracted,
	}}, nil
}

func (h *PaperHandler) Get(c *gin.Context) (interface{}, error) {
	id, err := paperID(c)
	if err != nil {
		return nil, err
	}

	paper, err := h.Service.Get(id)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"data": paper,
	}, nil
}

func (h *PaperHandler) Update(c *gin.Context) (interface{}, error) {
	id, err := paperID(c)
	if err != nil {
		return nil, err
	}

	var update models.PaperUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		return nil, errors.New("could not decode update", errors.BadRequest(), errors.WithCause(err))
	}

	paper, err := h.Service.Update(id, update)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"data": paper,
	}, nil
}

func (h *PaperHandler) Delete(c *gin.Context) (interface{}, error) {
	id, err := paperID(c)
	if err != nil {
		return nil, err
	}

	if err := h.Service.Delete(id); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"data": "ok",
	}, nil
}

func (h *PaperHandler) Search(c *gin.Context) (interface{}, error) {
	papers, err := h.Service.Search(c.Query("q"), models.Status(c.Query("status")))
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"data": papers,
	}, nil
}
