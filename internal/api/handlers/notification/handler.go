package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/soclink/notify/internal/api/dto"
	"github.com/soclink/notify/internal/api/respond"
	"github.com/soclink/notify/internal/model"
	"github.com/soclink/notify/internal/repository/notification"
	notifservice "github.com/soclink/notify/internal/service/notification"
)

//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/notification/mock.go -package=mocks

type notifService interface {
	Create(ctx context.Context, in notifservice.CreateInput) (uuid.UUID, error)
	FanOut(ctx context.Context, requesterID uuid.UUID, in notifservice.CreateInput, recipients []uuid.UUID) (model.BulkResult, error)
	Get(ctx context.Context, id uuid.UUID) (model.Notification, error)
	List(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, page, size int) ([]model.Notification, int, error)
	MarkRead(ctx context.Context, id, requesterID uuid.UUID) error
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) error
	Delete(ctx context.Context, id, requesterID uuid.UUID) error
	Stats(ctx context.Context, recipientID uuid.UUID) (model.Stats, error)
	Deliveries(ctx context.Context, id uuid.UUID) ([]model.DeliveryAttempt, error)
}

// Handler serves the notification HTTP API. The requester's identity
// arrives in the X-User-ID header, set by the edge gateway.
type Handler struct {
	service   notifService
	validator *validator.Validate
}

func NewHandler(s notifService, v *validator.Validate) *Handler {
	return &Handler{service: s, validator: v}
}

func (h *Handler) Create(c *ginext.Context) {
	var req dto.CreateRequest

	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return
	}

	in, err := createInput(req)
	if err != nil {
		respond.Fail(c.Writer, http.StatusBadRequest, err)
		return
	}

	id, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		if isValidationErr(err) {
			respond.Fail(c.Writer, http.StatusBadRequest, err)
			return
		}

		zlog.Logger.Error().Err(err).Str("recipient_id", req.RecipientID).Msg("failed to create notification")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.Created(c.Writer, map[string]any{"id": id})
}

func (h *Handler) BulkCreate(c *ginext.Context) {
	requesterID, err := requesterID(c)
	if err != nil {
		respond.Fail(c.Writer, http.StatusUnauthorized, err)
		return
	}

	var req dto.BulkCreateRequest

	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return
	}

	in, err := createInput(dto.CreateRequest{
		RecipientID: uuid.Nil.String(),
		Category:    req.Category,
		Title:       req.Title,
		Message:     req.Message,
		EntityType:  req.EntityType,
		EntityID:    req.EntityID,
		SenderID:    req.SenderID,
		ActionURL:   req.ActionURL,
		Priority:    req.Priority,
		Metadata:    req.Metadata,
		ExpiresAt:   req.ExpiresAt,
	})
	if err != nil {
		respond.Fail(c.Writer, http.StatusBadRequest, err)
		return
	}

	recipients := make([]uuid.UUID, 0, len(req.RecipientIDs))
	for _, raw := range req.RecipientIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid recipient id %q", raw))
			return
		}
		recipients = append(recipients, id)
	}

	result, err := h.service.FanOut(c.Request.Context(), requesterID, in, recipients)
	if err != nil {
		if errors.Is(err, notifservice.ErrForbidden) {
			respond.Fail(c.Writer, http.StatusForbidden, err)
			return
		}

		zlog.Logger.Error().Err(err).Msg("failed to fan out notifications")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.Created(c.Writer, result)
}

func (h *Handler) List(c *ginext.Context) {
	requesterID, err := requesterID(c)
	if err != nil {
		respond.Fail(c.Writer, http.StatusUnauthorized, err)
		return
	}

	unreadOnly := c.Query("unread") == "true"
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("size"))

	items, total, err := h.service.List(c.Request.Context(), requesterID, unreadOnly, page, size)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("recipient_id", requesterID.String()).Msg("failed to list notifications")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	if items == nil {
		items = []model.Notification{}
	}

	respond.OK(c.Writer, map[string]any{
		"items": items,
		"total": total,
	})
}

func (h *Handler) Get(c *ginext.Context) {
	id, err := pathID(c)
	if err != nil {
		respond.Fail(c.Writer, http.StatusBadRequest, err)
		return
	}

	n, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.respondGetErr(c, id, err, "failed to get notification")
		return
	}

	respond.OK(c.Writer, n)
}

func (h *Handler) MarkRead(c *ginext.Context) {
	requesterID, err := requesterID(c)
	if err != nil {
		respond.Fail(c.Writer, http.StatusUnauthorized, err)
		return
	}

	id, err := pathID(c)
	if err != nil {
		respond.Fail(c.Writer, http.StatusBadRequest, err)
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), id, requesterID); err != nil {
		if errors.Is(err, notifservice.ErrForbidden) {
			respond.Fail(c.Writer, http.StatusForbidden, err)
			return
		}

		h.respondGetErr(c, id, err, "failed to mark notification read")
		return
	}

	respond.OK(c.Writer, "notification marked read")
}

func (h *Handler) MarkAllRead(c *ginext.Context) {
	requesterID, err := requesterID(c)
	if err != nil {
		respond.Fail(c.Writer, http.StatusUnauthorized, err)
		return
	}

	if err := h.service.MarkAllRead(c.Request.Context(), requesterID); err != nil {
		zlog.Logger.Error().Err(err).Str("recipient_id", requesterID.String()).Msg("failed to mark all read")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, "all notifications marked read")
}

func (h *Handler) Delete(c *ginext.Context) {
	requesterID, err := requesterID(c)
	if err != nil {
		respond.Fail(c.Writer, http.StatusUnauthorized, err)
		return
	}

	id, err := pathID(c)
	if err != nil {
		respond.Fail(c.Writer, http.StatusBadRequest, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, requesterID); err != nil {
		if errors.Is(err, notifservice.ErrForbidden) {
			respond.Fail(c.Writer, http.StatusForbidden, err)
			return
		}

		h.respondGetErr(c, id, err, "failed to delete notification")
		return
	}

	respond.OK(c.Writer, "notification deleted")
}

func (h *Handler) Stats(c *ginext.Context) {
	requesterID, err := requesterID(c)
	if err != nil {
		respond.Fail(c.Writer, http.StatusUnauthorized, err)
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), requesterID)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("recipient_id", requesterID.String()).Msg("failed to get stats")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, stats)
}

func (h *Handler) Deliveries(c *ginext.Context) {
	id, err := pathID(c)
	if err != nil {
		respond.Fail(c.Writer, http.StatusBadRequest, err)
		return
	}

	attempts, err := h.service.Deliveries(c.Request.Context(), id)
	if err != nil {
		h.respondGetErr(c, id, err, "failed to list deliveries")
		return
	}

	if attempts == nil {
		attempts = []model.DeliveryAttempt{}
	}

	respond.OK(c.Writer, attempts)
}

func (h *Handler) respondGetErr(c *ginext.Context, id uuid.UUID, err error, msg string) {
	if errors.Is(err, notification.ErrNotificationNotFound) {
		respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("notification not found"))
		return
	}

	zlog.Logger.Error().Err(err).Str("id", id.String()).Msg(msg)
	respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
}

func createInput(req dto.CreateRequest) (notifservice.CreateInput, error) {
	recipientID, err := uuid.Parse(req.RecipientID)
	if err != nil {
		return notifservice.CreateInput{}, fmt.Errorf("invalid recipient id")
	}

	var senderID *uuid.UUID
	if req.SenderID != "" {
		id, err := uuid.Parse(req.SenderID)
		if err != nil {
			return notifservice.CreateInput{}, fmt.Errorf("invalid sender id")
		}
		senderID = &id
	}

	return notifservice.CreateInput{
		RecipientID: recipientID,
		Category:    model.Category(req.Category),
		Title:       req.Title,
		Message:     req.Message,
		EntityType:  req.EntityType,
		EntityID:    req.EntityID,
		SenderID:    senderID,
		ActionURL:   req.ActionURL,
		Priority:    model.Priority(req.Priority),
		Metadata:    req.Metadata,
		ExpiresAt:   req.ExpiresAt,
	}, nil
}

func isValidationErr(err error) bool {
	return errors.Is(err, model.ErrEmptyTitle) ||
		errors.Is(err, model.ErrEmptyMessage) ||
		errors.Is(err, model.ErrUnknownCategory) ||
		errors.Is(err, model.ErrUnknownPriority)
}

func pathID(c *ginext.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id")
	}

	return id, nil
}

func requesterID(c *ginext.Context) (uuid.UUID, error) {
	raw := c.GetHeader("X-User-ID")
	if raw == "" {
		return uuid.Nil, fmt.Errorf("missing X-User-ID header")
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid X-User-ID header")
	}

	return id, nil
}
