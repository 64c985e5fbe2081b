package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/SHAIK-07/sunmax/internal/store"
)

func newPrefsRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handler := NewPrefsHTTPHandler(store.NewMemoryStore())

	r := gin.New()
	r.Use(testSession("tester@sunmax.in", "staff"))
	r.GET("/prefs", handler.GetPrefs)
	r.PUT("/prefs/:key", handler.SetPref)
	return r
}

func TestPrefsDefaults(t *testing.T) {
	r := newPrefsRouter(t)

	w, resp := doJSON(t, r, http.MethodGet, "/prefs", "")
	assert.Equal(t, http.StatusOK, w.Code)

	prefs := resp.Data.(map[string]interface{})
	assert.Equal(t, "light", prefs[store.KeyTheme])
	assert.Equal(t, "false", prefs[store.KeySidebarCollapsed])
}

func TestPrefsPersistAcrossReads(t *testing.T) {
	r := newPrefsRouter(t)

	w, _ := doJSON(t, r, http.MethodPut, "/prefs/theme", `{"value":"dark"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	_, resp := doJSON(t, r, http.MethodGet, "/prefs", "")
	prefs := resp.Data.(map[string]interface{})
	assert.Equal(t, "dark", prefs[store.KeyTheme])
}

func TestPrefsRejectUnknownKey(t *testing.T) {
	r := newPrefsRouter(t)

	w, resp := doJSON(t, r, http.MethodPut, "/prefs/favoriteColor", `{"value":"blue"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, resp.Success)
}
