package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog/log"

	"gallery-backend/internal/domains/author/model"
	"gallery-backend/internal/domains/author/service"
	"gallery-backend/internal/infrastructure/database"
	"gallery-backend/internal/shared/response"
)

// AuthorHandler serves the whole authors resource on one path and
// dispatches on the request method.
type AuthorHandler struct {
	service service.ServiceInterface
}

// NewAuthorHandler accepts a nil service: that means no database was
// configured and every request is answered with a configuration error.
func NewAuthorHandler(svc service.ServiceInterface) *AuthorHandler {
	return &AuthorHandler{
		service: svc,
	}
}

// RequireStore short-circuits every request, whatever its method, while the
// store is not configured. Mount it ahead of any other route middleware.
func (h *AuthorHandler) RequireStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.service == nil {
			c.Abort()
			response.Text(c, http.StatusInternalServerError, database.ErrNotConfigured.Error())
			return
		}
		c.Next()
	}
}

// Handle - GET | POST | PUT | DELETE on the authors endpoint
func (h *AuthorHandler) Handle(c *gin.Context) {
	if h.service == nil {
		response.Text(c, http.StatusInternalServerError, database.ErrNotConfigured.Error())
		return
	}

	switch c.Request.Method {
	case http.MethodGet:
		h.list(c)
	case http.MethodPost:
		h.create(c)
	case http.MethodPut:
		h.update(c)
	case http.MethodDelete:
		h.delete(c)
	default:
		response.MethodNotAllowed(c)
	}
}

// ════════════════════════════════════════════════════════════════
// GET: full collection, no filtering or paging
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) list(c *gin.Context) {
	authors, err := h.service.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, authors)
}

// ════════════════════════════════════════════════════════════════
// POST: insert, id always assigned by the store
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) create(c *gin.Context) {
	var req model.NewAuthor
	if err := bindBody(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, created)
}

// ════════════════════════════════════════════════════════════════
// PUT: set-update of the submitted keys, keyed by body id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) update(c *gin.Context) {
	var req model.UpdateAuthorRequest
	if err := bindBody(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	if updated == nil {
		// no row matched: success with nothing to show
		response.Empty(c, http.StatusOK)
		return
	}
	response.JSON(c, http.StatusOK, updated)
}

// ════════════════════════════════════════════════════════════════
// DELETE: body {"id": "..."}
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) delete(c *gin.Context) {
	var req model.DeleteAuthorRequest
	if err := bindBody(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), &req); err != nil {
		h.fail(c, err)
		return
	}
	response.Text(c, http.StatusOK, "Deleted")
}

// fail is the single error boundary: every failure is a 500 carrying the
// error message.
func (h *AuthorHandler) fail(c *gin.Context, err error) {
	log.Error().
		Err(err).
		Str("request_id", c.GetString("request_id")).
		Str("method", c.Request.Method).
		Msg("authors request failed")

	response.InternalServerError(c, err.Error())
}

func bindBody(c *gin.Context, dest interface{}) error {
	body, err := c.GetRawData()
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return model.ErrEmptyBody
	}
	if err := binding.JSON.BindBody(body, dest); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}
