package queue

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/apperr"
	"github.com/hms/hms/internal/platform/auth"
	"github.com/hms/hms/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("", auth.RequirePermission(auth.ActionQueueRead))
	read.GET("/queue", h.List)
	read.GET("/queue/stats", h.Stats)
	read.GET("/queue/:id", h.Get)
	read.GET("/visits/:visit_id/queue", h.List)
	read.GET("/visits/:visit_id/queue/stats", h.Stats)

	write := api.Group("", auth.RequirePermission(auth.ActionQueueWrite))
	write.POST("/visits/:visit_id/queue", h.Create)
	write.PUT("/queue/:id", h.Update)
	write.PATCH("/queue/:id", h.Update)

	del := api.Group("", auth.RequirePermission(auth.ActionQueueDelete))
	del.DELETE("/queue/:id", h.Delete)
}

func (h *Handler) Create(c echo.Context) error {
	actor, ok := auth.ActorFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	// The visit reference comes from the route scope, never the body.
	visitID, err := uuid.Parse(c.Param("visit_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid visit id")
	}

	var in CreateInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	entry, err := h.svc.Create(c.Request().Context(), actor, visitID, in)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusCreated, entry)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	entry, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, entry)
}

func (h *Handler) List(c echo.Context) error {
	f, err := filterFromRequest(c)
	if err != nil {
		return err
	}
	pg := pagination.FromContext(c)

	entries, total, err := h.svc.List(c.Request().Context(), f, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	if entries == nil {
		entries = []*Entry{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(entries, total, pg.Limit, pg.Offset))
}

func (h *Handler) Update(c echo.Context) error {
	actor, ok := auth.ActorFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var in UpdateInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	entry, err := h.svc.Update(c.Request().Context(), actor, id, in)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, entry)
}

func (h *Handler) Delete(c echo.Context) error {
	actor, ok := auth.ActorFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), actor, id); err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Stats(c echo.Context) error {
	f, err := filterFromRequest(c)
	if err != nil {
		return err
	}
	stats, err := h.svc.Stats(c.Request().Context(), f)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, stats)
}

// filterFromRequest builds a Filter from the visit route scope (when present)
// and the department/priority/status query parameters. Filter values are
// normalized to canonical casing; unrecognized values are rejected.
func filterFromRequest(c echo.Context) (Filter, error) {
	var f Filter

	if raw := c.Param("visit_id"); raw != "" {
		visitID, err := uuid.Parse(raw)
		if err != nil {
			return f, echo.NewHTTPError(http.StatusBadRequest, "invalid visit id")
		}
		f.VisitID = &visitID
	}

	if raw := c.QueryParam("department"); raw != "" {
		dept, ok := ParseDepartment(raw)
		if !ok {
			return f, echo.NewHTTPError(http.StatusBadRequest, "invalid department: "+raw)
		}
		f.Department = dept
	}
	if raw := c.QueryParam("priority"); raw != "" {
		priority, ok := ParsePriority(raw)
		if !ok {
			return f, echo.NewHTTPError(http.StatusBadRequest, "invalid priority: "+raw)
		}
		f.Priority = priority
	}
	if raw := c.QueryParam("status"); raw != "" {
		status, ok := ParseStatus(raw)
		if !ok {
			return f, echo.NewHTTPError(http.StatusBadRequest, "invalid status: "+raw)
		}
		f.Status = status
	}

	return f, nil
}
