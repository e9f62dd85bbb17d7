package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aremaru/backend/internal/middleware"
	"github.com/aremaru/backend/internal/models"
	"github.com/aremaru/backend/internal/service"
)

// ProfileHandler serves the profile, child and allergy endpoints.
type ProfileHandler struct {
	profileService  service.IProfileService
	identityService middleware.TokenValidator
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.IProfileService, identityService middleware.TokenValidator) *ProfileHandler {
	return &ProfileHandler{
		profileService:  profileService,
		identityService: identityService,
	}
}

// RegisterRoutes registers the profile routes.
func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/logout", middleware.AuthMiddleware(h.identityService), h.Logout)
	}

	profile := router.Group("/profile", middleware.AuthMiddleware(h.identityService))
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)
		profile.GET("/children", h.ListChildren)
		profile.POST("/children", h.AddChild)
		profile.DELETE("/children/:childId", h.RemoveChild)
		profile.POST("/children/:childId/allergies", h.AddAllergy)
		profile.DELETE("/children/:childId/allergies/:id", h.RemoveAllergy)
	}
}

// currentProfile resolves the authenticated external user to a profile,
// lazily creating it on the first visit.
func (h *ProfileHandler) currentProfile(c *gin.Context) (*models.Profile, bool) {
	externalUserID, exists := c.Get("external_user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return nil, false
	}

	profile, err := h.profileService.GetOrCreateProfile(c.Request.Context(), externalUserID.(string))
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return profile, true
}

// GetProfile returns the caller's profile, creating it if absent.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, ok := h.currentProfile(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile sets the caller's display name.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	profile, ok := h.currentProfile(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.profileService.UpdateDisplayName(c.Request.Context(), profile.ID, req.DisplayName)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Logout acknowledges a sign-out. Session teardown belongs to the
// identity provider; the client discards its token.
func (h *ProfileHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// ListChildren returns the caller's children oldest-first with nested
// allergies.
func (h *ProfileHandler) ListChildren(c *gin.Context) {
	profile, ok := h.currentProfile(c)
	if !ok {
		return
	}

	children, err := h.profileService.ListChildrenWithAllergies(c.Request.Context(), profile.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"children": children})
}

// AddChild registers a child under the caller's profile.
func (h *ProfileHandler) AddChild(c *gin.Context) {
	profile, ok := h.currentProfile(c)
	if !ok {
		return
	}

	var req AddChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	child, err := h.profileService.AddChild(c.Request.Context(), profile.ID, req.Nickname, req.BirthYear, req.BirthMonth)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, child)
}

// RemoveChild deletes a child and cascades its allergies.
func (h *ProfileHandler) RemoveChild(c *gin.Context) {
	profile, ok := h.currentProfile(c)
	if !ok {
		return
	}

	childID, err := uuid.Parse(c.Param("childId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid child id"})
		return
	}

	if err := h.profileService.RemoveChild(c.Request.Context(), profile.ID, childID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "child deleted", "id": childID})
}

// AddAllergy attaches an allergy to one of the caller's children. The
// catalog "other" sentinel is resolved to the custom name before
// validation.
func (h *ProfileHandler) AddAllergy(c *gin.Context) {
	profile, ok := h.currentProfile(c)
	if !ok {
		return
	}

	childID, err := uuid.Parse(c.Param("childId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid child id"})
		return
	}

	var req AddAllergyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := req.Allergen
	if req.CustomName != "" {
		name = req.CustomName
	}

	allergy, err := h.profileService.AddAllergy(c.Request.Context(), profile.ID, childID, name, models.Severity(req.Severity))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, allergy)
}

// RemoveAllergy deletes an allergy from one of the caller's children.
func (h *ProfileHandler) RemoveAllergy(c *gin.Context) {
	profile, ok := h.currentProfile(c)
	if !ok {
		return
	}

	allergyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid allergy id"})
		return
	}

	if err := h.profileService.RemoveAllergy(c.Request.Context(), profile.ID, allergyID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "allergy deleted", "id": allergyID})
}
