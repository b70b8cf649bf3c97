package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"sleuth-client/internal/middleware"
	"sleuth-client/internal/service"
	appErr "sleuth-client/pkg/errors"
	"sleuth-client/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	services *service.Container
}

func RegisterRoutes(r *gin.Engine, services *service.Container) {
	handler := &Handler{services: services}

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "pong"})
	})

	v1 := r.Group("/v1")
	v1.Use(middleware.ControlTokenRequired(services.Config.API.ControlToken))
	{
		v1.GET("/session", handler.GetSession)

		v1.GET("/prompt", handler.GetPrompt)
		v1.POST("/prompt/select", handler.SelectPrompt)
		v1.DELETE("/prompt", handler.CancelPrompt)

		v1.POST("/play", handler.Play)

		v1.GET("/notifications", handler.ListNotifications)
		v1.GET("/journal", handler.ListJournal)
	}
}

type selectBody struct {
	PromptID string `json:"promptId"`
	ItemID   string `json:"itemId" binding:"required"`
}

type playBody struct {
	Cards []string `json:"cards"`
}

func (h *Handler) GetSession(c *gin.Context) {
	view := h.services.Store.View(h.services.Config.Session.DiscardPoolSize)
	response.Success(c, gin.H{
		"view":    view,
		"waiting": h.services.Turns.Waiting(),
	})
}

func (h *Handler) GetPrompt(c *gin.Context) {
	pending, ok := h.services.Prompts.Current()
	if !ok {
		response.Error(c, http.StatusNotFound, appErr.UserMessage(appErr.ErrNoPendingPrompt))
		return
	}
	response.Success(c, pending)
}

func (h *Handler) SelectPrompt(c *gin.Context) {
	var body selectBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.services.Prompts.Resolve(strings.TrimSpace(body.PromptID), body.ItemID); err != nil {
		h.handlePromptError(c, err)
		return
	}
	response.Success(c, gin.H{"itemId": body.ItemID})
}

func (h *Handler) CancelPrompt(c *gin.Context) {
	if err := h.services.Prompts.Cancel(); err != nil {
		h.handlePromptError(c, err)
		return
	}
	response.Success(c, nil)
}

// Play runs the whole action. The request stays open while the flow waits
// on prompts, and closing it cancels the flow.
func (h *Handler) Play(c *gin.Context) {
	var body playBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.services.Play(c.Request.Context(), body.Cards)
	if err != nil {
		h.handlePlayError(c, err)
		return
	}
	response.Success(c, res)
}

func (h *Handler) ListNotifications(c *gin.Context) {
	response.Success(c, gin.H{
		"active": h.services.Notices.Active(),
		"recent": h.services.Notices.Recent(),
	})
}

func (h *Handler) ListJournal(c *gin.Context) {
	if h.services.Journal == nil {
		response.Error(c, http.StatusNotFound, "journal disabled")
		return
	}
	page, err := parsePositiveIntQuery(c, "page", 1)
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	size, err := parsePositiveIntQuery(c, "size", 20)
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.services.Journal.List(c.Request.Context(), c.Query("type"), page, size)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.Success(c, gin.H{
		"items": result.Items,
		"total": result.Total,
		"page":  page,
		"size":  size,
	})
}

func (h *Handler) handlePromptError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, appErr.ErrNoPendingPrompt):
		response.Error(c, http.StatusNotFound, appErr.UserMessage(err))
	case errors.Is(err, appErr.ErrItemNotOffered):
		response.Error(c, http.StatusBadRequest, appErr.UserMessage(err))
	default:
		response.Error(c, http.StatusInternalServerError, err.Error())
	}
}

var turnErrors = []error{
	appErr.ErrNotYourTurn,
	appErr.ErrPhaseDrawing,
	appErr.ErrPhaseDiscarding,
	appErr.ErrPhaseSecret,
	appErr.ErrPhaseTrade,
	appErr.ErrPhasePassing,
	appErr.ErrPhaseEndTurn,
	appErr.ErrPhaseUnknownState,
	appErr.ErrPromptCancelled,
}

var selectionErrors = []error{
	appErr.ErrNoSelection,
	appErr.ErrMixedSelection,
	appErr.ErrCardNotInHand,
	appErr.ErrInvalidSet,
	appErr.ErrUnknownCard,
	appErr.ErrUnknownEffect,
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

func (h *Handler) handlePlayError(c *gin.Context, err error) {
	msg := appErr.UserMessage(err)

	var cmdErr *appErr.CommandError
	switch {
	case errors.As(err, &cmdErr):
		response.Error(c, http.StatusBadGateway, msg)
	case isAny(err, turnErrors):
		response.Error(c, http.StatusConflict, msg)
	case isAny(err, selectionErrors):
		response.Error(c, http.StatusBadRequest, msg)
	case errors.Is(err, appErr.ErrActionRejected):
		response.Error(c, http.StatusUnprocessableEntity, msg)
	default:
		response.Error(c, http.StatusInternalServerError, msg)
	}
}

func parsePositiveIntQuery(c *gin.Context, key string, defaultVal int) (int, error) {
	val := c.Query(key)
	if val == "" {
		return defaultVal, nil
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return parsed, nil
}
