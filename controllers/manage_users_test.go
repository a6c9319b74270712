package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"auroragov/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createUserWithRole insere um usuário e devolve o token dele.
func createUserWithRole(t *testing.T, env *testEnv, email, role string, orgID int64) (models.User, string) {
	t.Helper()
	u := models.User{
		Name:           "Usuário " + role,
		Email:          email,
		Password:       "x",
		Role:           role,
		OrganizationID: orgID,
		Status:         models.USER_STATUS_ATIVO,
	}
	require.NoError(t, env.DB.Create(&u).Error)
	token, err := signAuthToken(u.ID, u.Email)
	require.NoError(t, err)
	return u, token
}

// doJSONAs é doJSON com um token arbitrário (para testar papéis).
func (e *testEnv) doJSONAs(t *testing.T, token, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}

func manageBody(action string, data any) map[string]any {
	body := map[string]any{"action": action}
	if data != nil {
		body["data"] = data
	}
	return body
}

func TestManageUsersBlocksUsuarioRole(t *testing.T) {
	env := setupTestEnv(t)

	// env.User tem papel "usuario": barrado no middleware da rota
	w := env.doJSON(t, http.MethodPost, "/api/manage-users", manageBody(ACTION_LIST_USERS, nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestManageUsersGestorScopedToOwnOrganization(t *testing.T) {
	env := setupTestEnv(t)

	orgA := models.Organization{Name: "Prefeitura de Aurora", IsActive: true}
	orgB := models.Organization{Name: "Prefeitura de Boa Vista", IsActive: true}
	require.NoError(t, env.DB.Create(&orgA).Error)
	require.NoError(t, env.DB.Create(&orgB).Error)

	_, gestorToken := createUserWithRole(t, env, "gestor@aurora.gov.br", models.USER_ROLE_GESTOR, orgA.ID)
	createUserWithRole(t, env, "servidor@aurora.gov.br", models.USER_ROLE_USUARIO, orgA.ID)
	createUserWithRole(t, env, "fora@boavista.gov.br", models.USER_ROLE_USUARIO, orgB.ID)

	w := env.doJSONAs(t, gestorToken, http.MethodPost, "/api/manage-users", manageBody(ACTION_LIST_USERS, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Users []models.User `json:"users"`
		Total int           `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total) // gestor + servidor da própria org
	for _, u := range resp.Users {
		assert.Equal(t, orgA.ID, u.OrganizationID)
		assert.Empty(t, u.Password)
	}
}

func TestManageUsersGestorCreatesOnlyUsuarioInOwnOrg(t *testing.T) {
	env := setupTestEnv(t)

	orgA := models.Organization{Name: "Prefeitura de Aurora", IsActive: true}
	orgB := models.Organization{Name: "Prefeitura de Boa Vista", IsActive: true}
	require.NoError(t, env.DB.Create(&orgA).Error)
	require.NoError(t, env.DB.Create(&orgB).Error)
	_, gestorToken := createUserWithRole(t, env, "gestor@aurora.gov.br", models.USER_ROLE_GESTOR, orgA.ID)

	// tentativa de criar gestor: proibido
	w := env.doJSONAs(t, gestorToken, http.MethodPost, "/api/manage-users", manageBody(ACTION_CREATE_USER, map[string]any{
		"name": "Novo Gestor", "email": "novo.gestor@aurora.gov.br", "password": "senha123", "role": "gestor",
	}))
	assert.Equal(t, http.StatusForbidden, w.Code)

	// criar usuario apontando outra org: a org é forçada para a do gestor
	w = env.doJSONAs(t, gestorToken, http.MethodPost, "/api/manage-users", manageBody(ACTION_CREATE_USER, map[string]any{
		"name": "Novo Servidor", "email": "novo@aurora.gov.br", "password": "senha123",
		"role": "usuario", "organization_id": orgB.ID,
	}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var created models.User
	require.NoError(t, env.DB.Where("email = ?", "novo@aurora.gov.br").First(&created).Error)
	assert.Equal(t, orgA.ID, created.OrganizationID)
	assert.Equal(t, models.USER_ROLE_USUARIO, created.Role)
	assert.Equal(t, models.USER_STATUS_ATIVO, created.Status)
	// senha nunca fica em claro
	assert.NotEqual(t, "senha123", created.Password)
}

func TestManageUsersOnlySuperAdminChangesRoles(t *testing.T) {
	env := setupTestEnv(t)

	org := models.Organization{Name: "Prefeitura de Aurora", IsActive: true}
	require.NoError(t, env.DB.Create(&org).Error)
	_, gestorToken := createUserWithRole(t, env, "gestor@aurora.gov.br", models.USER_ROLE_GESTOR, org.ID)
	alvo, _ := createUserWithRole(t, env, "servidor@aurora.gov.br", models.USER_ROLE_USUARIO, org.ID)
	_, adminToken := createUserWithRole(t, env, "admin@auroragov.gov.br", models.USER_ROLE_SUPER_ADMIN, 0)

	w := env.doJSONAs(t, gestorToken, http.MethodPost, "/api/manage-users", manageBody(ACTION_UPDATE_USER, map[string]any{
		"id": alvo.ID, "role": "gestor",
	}))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.doJSONAs(t, adminToken, http.MethodPost, "/api/manage-users", manageBody(ACTION_UPDATE_USER, map[string]any{
		"id": alvo.ID, "role": "gestor",
	}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.User
	require.NoError(t, env.DB.First(&updated, alvo.ID).Error)
	assert.Equal(t, models.USER_ROLE_GESTOR, updated.Role)
}

func TestManageUsersToggleStatusCannotBlockSelf(t *testing.T) {
	env := setupTestEnv(t)

	admin, adminToken := createUserWithRole(t, env, "admin@auroragov.gov.br", models.USER_ROLE_SUPER_ADMIN, 0)

	w := env.doJSONAs(t, adminToken, http.MethodPost, "/api/manage-users", manageBody(ACTION_TOGGLE_USER_STATUS, map[string]any{
		"id": admin.ID,
	}))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// bloquear e desbloquear outro usuário
	alvo, _ := createUserWithRole(t, env, "servidor@aurora.gov.br", models.USER_ROLE_USUARIO, 0)

	w = env.doJSONAs(t, adminToken, http.MethodPost, "/api/manage-users", manageBody(ACTION_TOGGLE_USER_STATUS, map[string]any{"id": alvo.ID}))
	require.Equal(t, http.StatusOK, w.Code)
	var bloqueado models.User
	require.NoError(t, env.DB.First(&bloqueado, alvo.ID).Error)
	assert.Equal(t, models.USER_STATUS_BLOQUEADO, bloqueado.Status)

	w = env.doJSONAs(t, adminToken, http.MethodPost, "/api/manage-users", manageBody(ACTION_TOGGLE_USER_STATUS, map[string]any{"id": alvo.ID}))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, env.DB.First(&bloqueado, alvo.ID).Error)
	assert.Equal(t, models.USER_STATUS_ATIVO, bloqueado.Status)
}

func TestManageUsersOrganizationsSuperAdminOnly(t *testing.T) {
	env := setupTestEnv(t)

	org := models.Organization{Name: "Prefeitura de Aurora", IsActive: true}
	require.NoError(t, env.DB.Create(&org).Error)
	_, gestorToken := createUserWithRole(t, env, "gestor@aurora.gov.br", models.USER_ROLE_GESTOR, org.ID)
	_, adminToken := createUserWithRole(t, env, "admin@auroragov.gov.br", models.USER_ROLE_SUPER_ADMIN, 0)

	w := env.doJSONAs(t, gestorToken, http.MethodPost, "/api/manage-users", manageBody(ACTION_CREATE_ORGANIZATION, map[string]any{
		"name": "Prefeitura Nova",
	}))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.doJSONAs(t, adminToken, http.MethodPost, "/api/manage-users", manageBody(ACTION_CREATE_ORGANIZATION, map[string]any{
		"name": "Prefeitura Nova", "cnpj": "12.345.678/0001-90",
	}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var nova models.Organization
	require.NoError(t, env.DB.Where("name = ?", "Prefeitura Nova").First(&nova).Error)
	assert.True(t, nova.IsActive)
}

func TestManageUsersUnknownAction(t *testing.T) {
	env := setupTestEnv(t)
	_, adminToken := createUserWithRole(t, env, "admin@auroragov.gov.br", models.USER_ROLE_SUPER_ADMIN, 0)

	w := env.doJSONAs(t, adminToken, http.MethodPost, "/api/manage-users", manageBody("drop_tables", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
