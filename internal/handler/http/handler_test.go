package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jonielmendes/AlugaLarCorrente/internal/domain"
	httpHandler "github.com/jonielmendes/AlugaLarCorrente/internal/handler/http"
	"github.com/jonielmendes/AlugaLarCorrente/internal/middleware"
	"github.com/jonielmendes/AlugaLarCorrente/internal/repository"
	"github.com/jonielmendes/AlugaLarCorrente/internal/repository/mocks"
	"github.com/jonielmendes/AlugaLarCorrente/internal/service"
)

const requesterID = uint(7)

type testEnv struct {
	router   *gin.Engine
	listings *mocks.ListingRepository
	users    *mocks.UserRepository
	tokens   *mocks.TokenStore
	media    *mocks.MediaStore
}

// fakeAuth 模拟已通过 JWT 校验的请求
func fakeAuth(c *gin.Context) {
	c.Set(middleware.ContextUserID, requesterID)
	c.Next()
}

func passThrough(c *gin.Context) { c.Next() }

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, httpHandler.RegisterValidators())

	env := &testEnv{
		listings: mocks.NewListingRepository(t),
		users:    mocks.NewUserRepository(t),
		tokens:   mocks.NewTokenStore(t),
		media:    mocks.NewMediaStore(t),
	}
	authService, err := service.NewAuthService(env.users, env.tokens, "handler-secret", 1)
	require.NoError(t, err)

	handlers := httpHandler.Handlers{
		Auth:    httpHandler.NewAuthHandler(authService),
		Listing: httpHandler.NewListingHandler(service.NewListingService(env.listings, nil)),
		Profile: httpHandler.NewProfileHandler(service.NewProfileService(env.users)),
		Media:   httpHandler.NewMediaHandler(service.NewMediaService(env.media)),
		Admin:   httpHandler.NewAdminHandler(service.NewAdminService(env.listings, env.users)),
	}
	env.router = gin.New()
	httpHandler.RegisterRoutes(env.router.Group("/api"), handlers, httpHandler.Guards{
		Auth: fakeAuth, OptionalAuth: passThrough, Staff: passThrough,
	})
	return env
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func listing(id, owner uint) *domain.Listing {
	return &domain.Listing{
		ID:           id,
		Title:        "Casa ampla",
		Description:  "Três quartos",
		Price:        decimal.RequireFromString("1200"),
		Neighborhood: domain.NeighborhoodVilaNova,
		PropertyType: domain.PropertyTypeCasa,
		OwnerID:      owner,
		Owner:        &domain.User{ID: owner, Username: "dono"},
		ContactPhone: "(64) 99999-8888",
		MainPhoto:    "imoveis/casa.jpg",
		Active:       true,
	}
}

// --- 公开房源接口 ---

func TestListingList_PaginatedWithLinks(t *testing.T) {
	env := newTestEnv(t)

	env.listings.On("List", mock.Anything, mock.MatchedBy(func(f repository.ListingFilter) bool {
		return f.Limit == 1 && f.Offset == 1
	})).Return([]domain.Listing{*listing(2, 3)}, int64(3), nil).Once()

	w := env.do(http.MethodGet, "/api/imoveis/?page=2&page_size=1", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, float64(3), body["count"])
	assert.Equal(t, "http://example.com/api/imoveis/?page=3&page_size=1", body["next"])
	assert.Equal(t, "http://example.com/api/imoveis/?page_size=1", body["previous"])

	results := body["results"].([]interface{})
	require.Len(t, results, 1)
	item := results[0].(map[string]interface{})
	assert.Equal(t, "1200.00", item["preco"])
	assert.Equal(t, "Vila Nova", item["bairro_display"])
	assert.Equal(t, "dono", item["dono_nome"])
	assert.True(t, strings.HasPrefix(item["whatsapp_link"].(string), "https://wa.me/5564999998888?text="))
}

func TestListingList_PageOutOfRange(t *testing.T) {
	env := newTestEnv(t)
	env.listings.On("List", mock.Anything, mock.Anything).Return([]domain.Listing{}, int64(3), nil).Once()

	w := env.do(http.MethodGet, "/api/imoveis/?page=9", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListingList_BadFilters(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/imoveis/?preco_min=barato", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w), "preco_min")

	w = env.do(http.MethodGet, "/api/imoveis/?bairro=lua", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w), "bairro")
}

func TestListingGet_NonNumericID(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodGet, "/api/imoveis/abc/", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListingGet_Detail(t *testing.T) {
	env := newTestEnv(t)
	l := listing(5, 3)
	l.Images = []domain.ListingImage{{ID: 1, Image: "imoveis/galeria/a.jpg", Order: 0}}
	l.ViewCount = 9

	env.listings.On("FindByID", mock.Anything, uint(5)).Return(l, nil).Once()
	env.listings.On("IncrementViews", mock.Anything, uint(5)).Return(nil).Once()

	w := env.do(http.MethodGet, "/api/imoveis/5/", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, float64(10), body["visualizacoes"])
	assert.Len(t, body["imagens"], 1)
	assert.NotContains(t, body, "dono_nome")
	assert.Equal(t, "dono", body["dono"].(map[string]interface{})["username"])
}

func TestListingCreate_BindingErrors(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/imoveis/", `{"titulo":"Casa","bairro":"lua","preco":"-5"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decode(t, w)
	assert.Contains(t, body, "bairro")
	assert.Contains(t, body, "preco")
	env.listings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestListingCreate_MissingRequired(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/imoveis/", `{"titulo":"Casa"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decode(t, w)
	assert.Equal(t, []interface{}{service.MsgRequired}, body["preco"])
	assert.Contains(t, body, "foto_principal")
}

func TestListingUpdate_Forbidden(t *testing.T) {
	env := newTestEnv(t)
	env.listings.On("FindByID", mock.Anything, uint(5)).Return(listing(5, 99), nil).Once()

	w := env.do(http.MethodPatch, "/api/imoveis/5/", `{"titulo":"Outro"}`)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"Você não tem permissão para modificar este imóvel."}`, w.Body.String())
}

func TestListingDelete_NoContent(t *testing.T) {
	env := newTestEnv(t)
	env.listings.On("FindByID", mock.Anything, uint(5)).Return(listing(5, requesterID), nil).Once()
	env.listings.On("Delete", mock.Anything, uint(5)).Return(nil).Once()

	w := env.do(http.MethodDelete, "/api/imoveis/5/", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestListingStats(t *testing.T) {
	env := newTestEnv(t)
	env.listings.On("Stats", mock.Anything).Return(&repository.ListingStats{
		Total: 2, Active: 1, ActiveByType: map[domain.PropertyType]int64{domain.PropertyTypeCasa: 1},
	}, nil).Once()

	w := env.do(http.MethodGet, "/api/imoveis/estatisticas/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total":2,"ativos":1,"por_tipo":{"Casa":1,"Kitnet":0,"Apartamento":0,"Quarto":0}}`, w.Body.String())
}

// --- 认证接口 ---

func TestLogin_InvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.users.On("FindByUsername", mock.Anything, "ghost").Return(nil, repository.ErrUserNotFound).Once()

	w := env.do(http.MethodPost, "/api/auth/login/", `{"username":"ghost","password":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Credenciais inválidas"}`, w.Body.String())
}

func TestRegister_Errors(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/auth/register/", `{
		"username":"ana","email":"ana@example.com","password":"a1","password2":"b2","tipo":"LOCADOR"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"password":["As senhas não conferem."]}`, w.Body.String())

	w = env.do(http.MethodPost, "/api/auth/register/", `{"username":"ana","tipo":"ADMIN"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Contains(t, body, "email")
	assert.Contains(t, body, "password")
	assert.Contains(t, body, "tipo")
}

func TestRegister_Created(t *testing.T) {
	env := newTestEnv(t)
	env.users.On("CreateWithProfile", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.User).ID = 11 }).
		Return(nil).Once()

	w := env.do(http.MethodPost, "/api/auth/register/", `{
		"username":"ana","email":"ana@example.com","password":"Senha123","password2":"Senha123",
		"tipo":"LOCATARIO","telefone":"64 3333-0000"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	body := decode(t, w)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, float64(11), user["id"])
	assert.Equal(t, "LOCATARIO", user["perfil"].(map[string]interface{})["tipo"])
}

func TestLogout_FailureIsGeneric(t *testing.T) {
	env := newTestEnv(t)

	// 上下文中没有 token id，吊销必然失败
	w := env.do(http.MethodPost, "/api/auth/logout/", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Erro ao fazer logout"}`, w.Body.String())
}

// --- 后台接口 ---

func TestAdminBulkActivate(t *testing.T) {
	env := newTestEnv(t)
	env.listings.On("SetActiveMany", mock.Anything, []uint{1, 2}, true).Return(int64(2), nil).Once()

	w := env.do(http.MethodPost, "/api/admin/imoveis/ativar/", `{"ids":[1,2]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"updated":2,"message":"2 imóvel(is) ativado(s) com sucesso!"}`, w.Body.String())

	w = env.do(http.MethodPost, "/api/admin/imoveis/desativar/", `{"ids":[]}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w), "ids")
}

func TestAdminListListings_Rows(t *testing.T) {
	env := newTestEnv(t)
	noPhone := listing(4, 3)
	noPhone.ContactPhone = ""
	env.listings.On("List", mock.Anything, mock.MatchedBy(func(f repository.ListingFilter) bool {
		return f.Active != nil && *f.Active && f.SearchScope == repository.SearchAdmin
	})).Return([]domain.Listing{*listing(5, 3), *noPhone}, int64(2), nil).Once()

	w := env.do(http.MethodGet, "/api/admin/imoveis/?ativo=true", "")
	require.Equal(t, http.StatusOK, w.Code)

	results := decode(t, w)["results"].([]interface{})
	require.Len(t, results, 2)
	first := results[0].(map[string]interface{})
	assert.Equal(t, "R$ 1.200,00", first["preco_formatado"])
	assert.Equal(t, "Sem telefone cadastrado", results[1].(map[string]interface{})["link_whatsapp"])

	w = env.do(http.MethodGet, "/api/admin/imoveis/?criado_de=ontem", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- 图片直传 ---

func TestMediaPresign(t *testing.T) {
	env := newTestEnv(t)
	env.media.On("PresignUpload", mock.Anything, mock.Anything, "image/png").
		Return(func(_ context.Context, key, _ string) *repository.PresignedUpload {
			return &repository.PresignedUpload{Key: key, UploadURL: "https://s3/put", PublicURL: "https://cdn/" + key, ExpiresIn: 900e9}
		}, nil).Once()

	w := env.do(http.MethodPost, "/api/media/presign/", `{"destino":"galeria","content_type":"image/png"}`)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(900), body["expires_in"])
	assert.True(t, strings.HasPrefix(body["key"].(string), "imoveis/galeria/"))

	w = env.do(http.MethodPost, "/api/media/presign/", `{"destino":"avatar","content_type":"image/png"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
