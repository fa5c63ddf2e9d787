package controllers

import (
	"net/http"

	"github.com/studentnest/studentnest-backend/internal/services"
	"github.com/studentnest/studentnest-backend/internal/utils"
)

type NotificationController struct {
	notificationSvc *services.NotificationService
	authSvc         *services.AuthService
}

func NewNotificationController(notificationSvc *services.NotificationService, authSvc *services.AuthService) *NotificationController {
	return &NotificationController{notificationSvc: notificationSvc, authSvc: authSvc}
}

// List returns the caller's most recent notifications.
func (c *NotificationController) List(w http.ResponseWriter, r *http.Request) {
	caller, err := resolveCaller(r, c.authSvc)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	notifications, err := c.notificationSvc.ListForUser(r.Context(), caller.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, notifications)
}

// UnreadCount returns the caller's unread notification count.
func (c *NotificationController) UnreadCount(w http.ResponseWriter, r *http.Request) {
	caller, err := resolveCaller(r, c.authSvc)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	n, err := c.notificationSvc.CountUnread(r.Context(), caller.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]int{"unread": n})
}

// MarkRead marks one notification as read.
func (c *NotificationController) MarkRead(w http.ResponseWriter, r *http.Request) {
	caller, err := resolveCaller(r, c.authSvc)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	notificationID, ok := parsePathUUID(w, r, "notificationId")
	if !ok {
		return
	}

	if err := c.notificationSvc.MarkRead(r.Context(), caller.ID, notificationID); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "read"})
}

// MarkAllRead marks every unread notification as read; succeeds when
// there is nothing to do.
func (c *NotificationController) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	caller, err := resolveCaller(r, c.authSvc)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if err := c.notificationSvc.MarkAllRead(r.Context(), caller.ID); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "read"})
}
