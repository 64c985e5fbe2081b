package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SHAIK-07/sunmax/internal/store"
)

// PrefsHTTPHandler persists per-session UI preferences. Only whitelisted
// keys are accepted; everything else is rejected before touching the
// store.
type PrefsHTTPHandler struct {
	store store.Store
}

func NewPrefsHTTPHandler(s store.Store) *PrefsHTTPHandler {
	return &PrefsHTTPHandler{store: s}
}

var prefDefaults = map[string]string{
	store.KeyTheme:            "light",
	store.KeySidebarCollapsed: "false",
}

type setPrefRequest struct {
	Value string `json:"value" binding:"required"`
}

func (h *PrefsHTTPHandler) GetPrefs(c *gin.Context) {
	session := sessionFrom(c)
	prefs := make(map[string]string, len(prefDefaults))
	for key, fallback := range prefDefaults {
		value, err := h.store.Get(c.Request.Context(), session, key)
		if err == store.ErrNotFound {
			value = fallback
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, errorResponse("Failed to load preferences"))
			return
		}
		prefs[key] = value
	}
	c.JSON(http.StatusOK, successResponse("Preferences retrieved", prefs))
}

func (h *PrefsHTTPHandler) SetPref(c *gin.Context) {
	key := c.Param("key")
	if _, ok := prefDefaults[key]; !ok {
		c.JSON(http.StatusBadRequest, errorResponse("Unknown preference: "+key))
		return
	}

	var req setPrefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request body: "+err.Error()))
		return
	}

	if err := h.store.Set(c.Request.Context(), sessionFrom(c), key, req.Value); err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to save preference"))
		return
	}
	c.JSON(http.StatusOK, successResponse("Preference saved", gin.H{key: req.Value}))
}
