package rate_configs

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TeeTimeService/internal/api/middleware"
	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
	"github.com/m04kA/SMC-TeeTimeService/internal/service/rates"
	"github.com/m04kA/SMC-TeeTimeService/pkg/logger"
)

type MockRateService struct {
	mock.Mock
}

func (m *MockRateService) result(args mock.Arguments) (*domain.RateConfig, error) {
	if cfg := args.Get(0); cfg != nil {
		return cfg.(*domain.RateConfig), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRateService) GetActive(ctx context.Context) (*domain.RateConfig, error) {
	return m.result(m.Called(ctx))
}

func (m *MockRateService) GetByID(ctx context.Context, id int64) (*domain.RateConfig, error) {
	return m.result(m.Called(ctx, id))
}

func (m *MockRateService) List(ctx context.Context) ([]*domain.RateConfig, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*domain.RateConfig), args.Error(1)
}

func (m *MockRateService) CreateDraft(ctx context.Context, cfg *domain.RateConfig, actor int64) (*domain.RateConfig, error) {
	return m.result(m.Called(ctx, cfg, actor))
}

func (m *MockRateService) UpdateDraft(ctx context.Context, id int64, fees *domain.RateConfig) (*domain.RateConfig, error) {
	return m.result(m.Called(ctx, id, fees))
}

func (m *MockRateService) Submit(ctx context.Context, id int64, actor int64) (*domain.RateConfig, error) {
	return m.result(m.Called(ctx, id, actor))
}

func (m *MockRateService) Approve(ctx context.Context, id int64, actor int64) (*domain.RateConfig, error) {
	return m.result(m.Called(ctx, id, actor))
}

func (m *MockRateService) Reject(ctx context.Context, id int64, actor int64) (*domain.RateConfig, error) {
	return m.result(m.Called(ctx, id, actor))
}

func (m *MockRateService) Activate(ctx context.Context, id int64, actor int64) (*domain.RateConfig, error) {
	return m.result(m.Called(ctx, id, actor))
}

func newRouter(svc RateService) *mux.Router {
	h := NewHandler(svc, logger.Nop())
	router := mux.NewRouter()
	router.HandleFunc("/rate-configs", h.HandleCreate).Methods(http.MethodPost)
	router.HandleFunc("/rate-configs/active", h.HandleGetActive).Methods(http.MethodGet)
	router.HandleFunc("/rate-configs/{id:[0-9]+}/{action}", h.HandleTransition).Methods(http.MethodPost)
	return router
}

func serve(router *mux.Router, method, path, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	r = r.WithContext(middleware.WithUser(r.Context(), 1, middleware.RoleStaff))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestHandleCreate_DecodesNestedFees(t *testing.T) {
	svc := new(MockRateService)
	svc.On("CreateDraft", mock.Anything, mock.MatchedBy(func(cfg *domain.RateConfig) bool {
		return cfg.GreenFees["visitor"][domain.Holes18][domain.Holiday] == 2500 &&
			cfg.CaddyFees["1:4"][domain.Holes9] == 700
	}), int64(1)).Return(&domain.RateConfig{ID: 3, VersionNumber: 2, Status: domain.RateDraft}, nil)

	body := `{
		"greenFees": {"visitor": {"18": {"weekday": 1800, "holiday": 2500}}},
		"caddyFees": {"1:4": {"9": 700}},
		"baseFees": {"cleaning": {"18": 100}, "cartPerPerson": {"18": 300}},
		"taxConfig": {"entertainmentTax": 0.05}
	}`
	w := serve(newRouter(svc), http.MethodPost, "/rate-configs", body)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"draft"`)
	svc.AssertExpectations(t)
}

func TestHandleTransition(t *testing.T) {
	svc := new(MockRateService)
	svc.On("Activate", mock.Anything, int64(3), int64(1)).
		Return(&domain.RateConfig{ID: 3, Status: domain.RateActive}, nil)
	svc.On("Approve", mock.Anything, int64(4), int64(1)).
		Return(nil, fmt.Errorf("%w: draft -> approved", rates.ErrInvalidTransition))

	router := newRouter(svc)

	w := serve(router, http.MethodPost, "/rate-configs/3/activate", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(router, http.MethodPost, "/rate-configs/4/approve", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = serve(router, http.MethodPost, "/rate-configs/4/publish", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	svc.AssertExpectations(t)
}

func TestHandleTransition_IncompleteConfig(t *testing.T) {
	svc := new(MockRateService)
	svc.On("Activate", mock.Anything, int64(3), int64(1)).
		Return(nil, fmt.Errorf("%w: missing tier member", rates.ErrIncompleteRateConfig))

	w := serve(newRouter(svc), http.MethodPost, "/rate-configs/3/activate", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "missing tier member")
}

func TestHandleGetActive_None(t *testing.T) {
	svc := new(MockRateService)
	svc.On("GetActive", mock.Anything).Return(nil, rates.ErrNoActiveRateConfig)

	w := serve(newRouter(svc), http.MethodGet, "/rate-configs/active", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
