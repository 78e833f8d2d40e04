package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"contacts_api/internal/middleware"
	"contacts_api/internal/model"
	"contacts_api/internal/service"

	"github.com/gin-gonic/gin"
)

// ContactHandler handles contact requests for the authenticated user
type ContactHandler struct {
	service service.ContactService
	logger  *slog.Logger
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(s service.ContactService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{service: s, logger: logger}
}

func getAuthUser(c *gin.Context) (string, error) {
	userVal, exists := c.Get(middleware.AuthUserKey)
	if !exists {
		return "", errors.New("user not found in context")
	}
	name, ok := userVal.(string)
	if !ok || name == "" {
		return "", errors.New("invalid user in context")
	}
	return name, nil
}

func listPayload(res *service.ContactResult) model.ContactList {
	return model.ContactList{
		Message:  res.Message,
		Contacts: res.Contacts,
		Count:    strconv.Itoa(len(res.Contacts)),
	}
}

func (h *ContactHandler) CreateContact(c *gin.Context) {
	owner, err := getAuthUser(c)
	if err != nil {
		middleware.Unauthorized(c, middleware.MsgNotAuthenticated)
		return
	}

	var req model.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.service.CreateContact(c.Request.Context(), owner, req)
	if err != nil {
		internalError(c, h.logger, "Failed to create contact", err)
		return
	}
	writeResult(c, res.Result, http.StatusCreated, gin.H{"message": res.Message, "contact": res.Contact}, keyMessage)
}

func (h *ContactHandler) ListContacts(c *gin.Context) {
	owner, err := getAuthUser(c)
	if err != nil {
		middleware.Unauthorized(c, middleware.MsgNotAuthenticated)
		return
	}

	res, err := h.service.ListContacts(c.Request.Context(), owner)
	if err != nil {
		internalError(c, h.logger, "Failed to retrieve contacts", err)
		return
	}
	writeResult(c, res.Result, http.StatusOK, listPayload(res), keyDetail)
}

func (h *ContactHandler) GetContact(c *gin.Context) {
	owner, err := getAuthUser(c)
	if err != nil {
		middleware.Unauthorized(c, middleware.MsgNotAuthenticated)
		return
	}

	res, err := h.service.GetContact(c.Request.Context(), owner, c.Param("id"))
	if err != nil {
		internalError(c, h.logger, "Failed to retrieve contact", err)
		return
	}
	writeResult(c, res.Result, http.StatusOK, listPayload(res), keyDetail)
}

func (h *ContactHandler) UpdateContact(c *gin.Context) {
	owner, err := getAuthUser(c)
	if err != nil {
		middleware.Unauthorized(c, middleware.MsgNotAuthenticated)
		return
	}

	var req model.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.service.UpdateContact(c.Request.Context(), owner, c.Param("id"), req)
	if err != nil {
		internalError(c, h.logger, "Failed to update contact", err)
		return
	}
	writeResult(c, res.Result, http.StatusOK, gin.H{"message": res.Message}, keyMessage)
}

func (h *ContactHandler) DeleteContact(c *gin.Context) {
	owner, err := getAuthUser(c)
	if err != nil {
		middleware.Unauthorized(c, middleware.MsgNotAuthenticated)
		return
	}

	res, err := h.service.DeleteContact(c.Request.Context(), owner, c.Param("id"))
	if err != nil {
		internalError(c, h.logger, "Failed to delete contact", err)
		return
	}
	writeResult(c, res.Result, http.StatusOK, gin.H{"message": res.Message}, keyMessage)
}

// RegisterContactRoutes registers contact routes behind the auth middleware
func (h *ContactHandler) RegisterContactRoutes(rg gin.IRouter, authMW gin.HandlerFunc) {
	contactsGroup := rg.Group("/contacts", authMW)
	{
		contactsGroup.POST("/create", h.CreateContact)
		contactsGroup.GET("/", h.ListContacts)
		contactsGroup.GET("/:id", h.GetContact)
		contactsGroup.PUT("/update/:id", h.UpdateContact)
		contactsGroup.DELETE("/delete/:id", h.DeleteContact)
	}
}
