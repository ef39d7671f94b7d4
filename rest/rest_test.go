package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"leguru.net/keybindd/binding"
	"leguru.net/keybindd/input"
	"leguru.net/keybindd/profile"
)

type nopKeys struct{}

func (nopKeys) Inject(int, input.Edge) error { return nil }
func (nopKeys) Close() error                 { return nil }

func newTestEngine(t *testing.T) (*gin.Engine, *binding.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store, err := profile.Open(profile.FileName(t.TempDir(), "PM1234"))
	require.NoError(t, err)
	manager, err := binding.New(store, nopKeys{}, nil)
	require.NoError(t, err)
	return NewEngine(NewRouter(NewHandler(manager)), ""), manager
}

func do(t *testing.T, g *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestProfiles(t *testing.T) {
	g, _ := newTestEngine(t)

	w := do(t, g, http.MethodPost, "/api/v1/profiles", CreateProfileRequest{Name: "Games", DefaultMap: "Base"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, profile.ProfileInfo{ID: 1, Name: "Games", DefaultMap: "Base"}, decode[profile.ProfileInfo](t, w))

	w = do(t, g, http.MethodGet, "/api/v1/profiles", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]profile.ProfileInfo](t, w), 2)

	w = do(t, g, http.MethodPost, "/api/v1/profiles", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, g, http.MethodGet, "/api/v1/profiles/7", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, g, http.MethodDelete, "/api/v1/profiles/0", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, g, http.MethodDelete, "/api/v1/profiles/1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestMapsAndActive(t *testing.T) {
	g, m := newTestEngine(t)

	w := do(t, g, http.MethodPost, "/api/v1/profiles/0/maps", CreateMapRequest{Name: "Fn"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, g, http.MethodPost, "/api/v1/profiles/0/maps", CreateMapRequest{Name: "Fn"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, g, http.MethodGet, "/api/v1/profiles/0/maps", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{profile.DefaultMapName, "Fn"}, decode[[]string](t, w))

	w = do(t, g, http.MethodPut, "/api/v1/active/map", ActiveMapRequest{Map: "Fn"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Fn", decode[ActiveReply](t, w).Map)
	assert.Equal(t, "Fn", m.ActiveMap())

	w = do(t, g, http.MethodPut, "/api/v1/active/map", ActiveMapRequest{Map: "Nope"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	zero := profile.ID(0)
	w = do(t, g, http.MethodPut, "/api/v1/active/profile", ActiveProfileRequest{ProfileID: &zero})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, profile.DefaultMapName, decode[ActiveReply](t, w).Map)
}

func TestActions(t *testing.T) {
	g, _ := newTestEngine(t)
	base := "/api/v1/profiles/0/maps/Default/keys/30/actions"

	w := do(t, g, http.MethodPost, base, profile.Action{Type: profile.ActionKey, Value: "46"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 0, decode[ActionIDReply](t, w).ActionID)

	w = do(t, g, http.MethodPut, base+"/0", profile.Action{Type: profile.ActionKey, Value: "47"})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, g, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []profile.Action{{Type: profile.ActionKey, Value: "47"}}, decode[[]profile.Action](t, w))

	w = do(t, g, http.MethodPost, base, profile.Action{Type: "jump"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, g, http.MethodDelete, base+"/5", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, g, http.MethodDelete, base, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, g, http.MethodGet, base, nil)
	assert.JSONEq(t, "[]", w.Body.String())

	w = do(t, g, http.MethodGet, "/api/v1/profiles/0/maps/Default/keys/abc/actions", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLEDsMatrixMacroStatus(t *testing.T) {
	g, _ := newTestEngine(t)
	base := "/api/v1/profiles/0/maps/Default"

	w := do(t, g, http.MethodPut, base+"/leds", binding.LEDs{Green: true})
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, g, http.MethodGet, base+"/leds", nil)
	assert.Equal(t, binding.LEDs{Green: true}, decode[binding.LEDs](t, w))

	w = do(t, g, http.MethodGet, base+"/matrix", nil)
	assert.JSONEq(t, "{}", w.Body.String())
	w = do(t, g, http.MethodPut, base+"/matrix", profile.Matrix{"0": {"0": {1, 2, 3}}})
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, g, http.MethodGet, base+"/matrix", nil)
	assert.JSONEq(t, `{"0":{"0":[1,2,3]}}`, w.Body.String())
	w = do(t, g, http.MethodPut, base+"/matrix", profile.Matrix{"0": {"col": {1, 2, 3}}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, g, http.MethodPut, "/api/v1/macro", MacroModeRequest{On: true})
	require.Equal(t, http.StatusOK, w.Code)
	key := 59
	w = do(t, g, http.MethodPut, "/api/v1/macro/key", MacroKeyRequest{Key: &key})
	require.Equal(t, http.StatusOK, w.Code)
	macro := decode[MacroReply](t, w)
	assert.True(t, macro.On)
	require.NotNil(t, macro.Key)
	assert.Equal(t, 59, *macro.Key)

	w = do(t, g, http.MethodGet, "/api/v1/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	st := decode[StatusReply](t, w)
	assert.True(t, st.MacroMode)
	assert.Equal(t, profile.DefaultMapName, st.MapName)
	assert.Len(t, st.Layers, 1)

	w = do(t, g, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusFound, w.Code)
}
