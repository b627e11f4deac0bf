package editor_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"structure-manager/feature/editor"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupApp() *fiber.App {
	app := fiber.New()
	feature := editor.NewFeature(zap.NewNop())
	if err := feature.Load(app); err != nil {
		panic(err)
	}
	return app
}

func createSession(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("POST", "/editor/sessions/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body struct {
		ID    string       `json:"id"`
		State editor.State `json:"state"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body.ID)
	assert.Equal(t, editor.ModeReadOnly, body.State.Mode)
	return body.ID
}

func transition(t *testing.T, app *fiber.App, id, action, tab string, force bool) (*editor.State, int) {
	t.Helper()
	payload, err := json.Marshal(map[string]any{"action": action, "tab": tab, "force": force})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/editor/sessions/"+id+"/transition", bytes.NewReader(payload))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	if resp.StatusCode != fiber.StatusOK {
		return nil, resp.StatusCode
	}

	var state editor.State
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	return &state, resp.StatusCode
}

func TestHandler_SessionLifecycle(t *testing.T) {
	app := setupApp()
	id := createSession(t, app)

	state, code := transition(t, app, id, "edit_mode", "", false)
	require.Equal(t, fiber.StatusOK, code)
	assert.True(t, state.IsEditing())

	state, code = transition(t, app, id, "edit", "categories", false)
	require.Equal(t, fiber.StatusOK, code)
	assert.True(t, state.IsModifying())
	assert.Equal(t, "categories", state.ActiveTab)

	// Switching back to viewing is blocked while modifying.
	_, code = transition(t, app, id, "view", "", false)
	assert.Equal(t, fiber.StatusConflict, code)

	state, code = transition(t, app, id, "view", "", true)
	require.Equal(t, fiber.StatusOK, code)
	assert.True(t, state.IsViewing())

	resp, err := app.Test(httptest.NewRequest("DELETE", "/editor/sessions/"+id, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/editor/sessions/"+id, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandler_UnknownAction(t *testing.T) {
	app := setupApp()
	id := createSession(t, app)

	_, code := transition(t, app, id, "explode", "", false)
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestHandler_UnknownSession(t *testing.T) {
	app := setupApp()

	_, code := transition(t, app, "nope", "edit_mode", "", false)
	assert.Equal(t, fiber.StatusNotFound, code)
}
