package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"auroragov/config"
	dbpkg "auroragov/db"
	"auroragov/models"
	"auroragov/tools"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/require"
)

var testDBSeq int64

// openTestDB abre um sqlite em memória isolado por teste.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	n := atomic.AddInt64(&testDBSeq, 1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open("sqlite3", dsn)
	require.NoError(t, err)
	db.DB().SetMaxOpenConns(1)
	dbpkg.AutoMigrate(db)
	t.Cleanup(func() { db.Close() })
	return db
}

type testEnv struct {
	DB     *gorm.DB
	Router *gin.Engine
	User   models.User
	Token  string
}

// setupTestEnv monta o ambiente completo de handler: banco, rotas com
// auth de verdade e um usuário logado.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var cfg config.Configuration
	cfg.Security.JwtSecret = "test-secret"
	cfg.Security.TokenTTLHours = 1
	cfg.OpenRouter.DefaultModel = "test/model-a"
	cfg.OpenRouter.AuditModels = []string{"test/model-a", "test/model-b"}
	SetConfigurations(cfg)
	SetModelCache(nil)

	db := openTestDB(t)

	user := models.User{
		Name:     "Maria Fiscal",
		Email:    "maria@prefeitura.gov.br",
		Password: "x",
		Role:     models.USER_ROLE_USUARIO,
		Status:   models.USER_STATUS_ATIVO,
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := signAuthToken(user.ID, user.Email)
	require.NoError(t, err)

	r := gin.New()
	r.Use(dbpkg.SetDBtoContext(db))
	api := r.Group("/api")
	auth := api.Group("")
	auth.Use(AuthRequired())
	auth.POST("/analise-documentos", AnaliseDocumentos)
	auth.POST("/auditar-edital", AuditarEdital)
	auth.POST("/gerador-documentos", GeradorDocumentos)
	auth.POST("/chat-with-agent", ChatWithAgent)
	auth.GET("/get-available-models", GetAvailableModels)
	auth.GET("/conversations", GetConversations)
	auth.POST("/conversations", CreateConversation)
	auth.GET("/conversations/:id/messages", GetConversationMessages)
	auth.GET("/editais", GetEditais)
	auth.POST("/editais", CreateEdital)
	auth.GET("/editais/:id/auditorias", GetEditalAuditorias)
	auth.POST("/manage-users", RoleRequired(models.USER_ROLE_SUPER_ADMIN, models.USER_ROLE_GESTOR), ManageUsers)

	return &testEnv{DB: db, Router: r, User: user, Token: token}
}

// fakeLLM sobe um httptest.Server que responde sempre o mesmo conteúdo
// e conta quantas chamadas chegaram.
func fakeLLM(t *testing.T, content string) (*httptest.Server, *int64) {
	t.Helper()
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
			"usage": map[string]any{"prompt_tokens": 100, "completion_tokens": 50},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)

	SetLLMClient(tools.NewOpenRouterClient(srv.URL, "test-key", "", "", 5*time.Second))
	return srv, &calls
}

// failingLLM sobe um upstream que sempre responde 500.
func failingLLM(t *testing.T) *int64 {
	t.Helper()
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	SetLLMClient(tools.NewOpenRouterClient(srv.URL, "test-key", "", "", 5*time.Second))
	return &calls
}

func usageOf(in, out int64) tools.Usage {
	return tools.Usage{PromptTokens: in, CompletionTokens: out}
}

func (e *testEnv) doJSON(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.Token)
	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}
