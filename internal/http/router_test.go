package http

import (
	"bytes"
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/servicehub-backend/internal/data/repos"
	"github.com/yungbote/servicehub-backend/internal/data/repos/testutil"
	httpH "github.com/yungbote/servicehub-backend/internal/http/handlers"
	"github.com/yungbote/servicehub-backend/internal/http/response"
	"github.com/yungbote/servicehub-backend/internal/observability"
	"github.com/yungbote/servicehub-backend/internal/realtime/bus"
	"github.com/yungbote/servicehub-backend/internal/services"
)

type apiFixture struct {
	db     *gorm.DB
	router *gin.Engine
	events *bus.Memory
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.DB(t)
	log := testutil.Logger(t)

	userRepo := repos.NewUserRepo(db, log)
	serviceRepo := repos.NewServiceRepo(db, log)
	events := bus.NewMemory()

	bookings := services.NewBookingService(db, log, repos.NewBookingRepo(db, log), serviceRepo, userRepo, events)
	ratings := services.NewRatingService(db, log, repos.NewReviewRepo(db, log), serviceRepo, userRepo, events)
	catalog := services.NewCatalogService(db, log, serviceRepo, userRepo)

	router := NewRouter(RouterConfig{
		Log:            log,
		Metrics:        observability.NewMetrics(log, true, 0),
		BookingHandler: httpH.NewBookingHandler(log, bookings),
		ReviewHandler:  httpH.NewReviewHandler(log, ratings),
		ServiceHandler: httpH.NewServiceHandler(log, catalog),
		HealthHandler:  httpH.NewHealthHandler(),
	})
	return &apiFixture{db: db, router: router, events: events}
}

func (f *apiFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	f := newAPI(t)
	rec := f.do(t, nethttp.MethodGet, "/health", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","message":"Backend is running"}`, rec.Body.String())
}

func TestBookingLifecycleOverHTTP(t *testing.T) {
	f := newAPI(t)
	ctx := context.Background()
	provider := testutil.SeedProvider(t, ctx, f.db, "Pat Provider")
	customer := testutil.SeedUser(t, ctx, f.db, "Casey Customer")
	svc := testutil.SeedService(t, ctx, f.db, provider.ID, "Deep Clean", 80)

	// ids as strings, the way the web client sends them
	rec := f.do(t, nethttp.MethodPost, "/bookings", map[string]any{
		"service_id":   jsonString(svc.ID),
		"user_id":      customer.ID,
		"booking_date": "2024-06-01",
	})
	require.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())
	created := decode[map[string]any](t, rec)
	assert.Equal(t, "Booking created", created["message"])
	bookingID := int64(created["id"].(float64))

	rec = f.do(t, nethttp.MethodGet, "/bookings/user/"+jsonString(customer.ID), nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	list := decode[[]services.BookingView](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, "Pending", list[0].Status)
	assert.Equal(t, "Deep Clean", list[0].ServiceTitle)

	rec = f.do(t, nethttp.MethodPut, "/bookings/"+jsonString(bookingID)+"/status", map[string]string{"status": "Confirmed"})
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
	view := decode[services.BookingView](t, rec)
	assert.Equal(t, "Confirmed", view.Status)
	assert.Equal(t, "Casey Customer", view.UserName)

	rec = f.do(t, nethttp.MethodPut, "/bookings/"+jsonString(bookingID)+"/status", map[string]string{"status": "Cancelled"})
	require.Equal(t, nethttp.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_status", decode[response.ErrorEnvelope](t, rec).Error.Code)

	rec = f.do(t, nethttp.MethodPut, "/bookings/987654/status", map[string]string{"status": "Confirmed"})
	require.Equal(t, nethttp.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decode[response.ErrorEnvelope](t, rec).Error.Code)

	rec = f.do(t, nethttp.MethodGet, "/bookings/provider/"+jsonString(provider.ID), nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	provList := decode[[]services.BookingView](t, rec)
	require.Len(t, provList, 1)
	assert.Equal(t, "Confirmed", provList[0].Status)
}

func TestCreateBookingForMissingServiceHidesDetail(t *testing.T) {
	f := newAPI(t)
	customer := testutil.SeedUser(t, context.Background(), f.db, "Casey Customer")

	rec := f.do(t, nethttp.MethodPost, "/bookings", map[string]any{
		"service_id":   "555555",
		"user_id":      customer.ID,
		"booking_date": "2024-06-01",
	})
	require.Equal(t, nethttp.StatusInternalServerError, rec.Code)
	env := decode[response.ErrorEnvelope](t, rec)
	assert.Equal(t, "storage_error", env.Error.Code)
	assert.Equal(t, "internal server error", env.Error.Message)
}

func TestMalformedRequestsAreBadRequest(t *testing.T) {
	f := newAPI(t)
	cases := []struct {
		method, path string
		body         any
	}{
		{nethttp.MethodPost, "/bookings", `{"service_id":"abc","user_id":1}`},
		{nethttp.MethodPost, "/bookings", `{not json`},
		{nethttp.MethodPost, "/reviews", `{"user_id":1,"rating":5}`},
		{nethttp.MethodGet, "/bookings/user/abc", nil},
		{nethttp.MethodGet, "/reviews/service/1.5", nil},
	}
	for _, tc := range cases {
		rec := f.do(t, tc.method, tc.path, tc.body)
		require.Equal(t, nethttp.StatusBadRequest, rec.Code, "%s %s", tc.method, tc.path)
		assert.Equal(t, "invalid_request", decode[response.ErrorEnvelope](t, rec).Error.Code)
	}
}

func TestReviewsOverHTTP(t *testing.T) {
	f := newAPI(t)
	ctx := context.Background()
	provider := testutil.SeedProvider(t, ctx, f.db, "Pat Provider")
	reviewer := testutil.SeedUser(t, ctx, f.db, "Robin Reviewer")
	svc := testutil.SeedService(t, ctx, f.db, provider.ID, "Deep Clean", 80)

	for _, r := range []int{4, 5, 3} {
		rec := f.do(t, nethttp.MethodPost, "/reviews", map[string]any{
			"service_id": jsonString(svc.ID),
			"user_id":    jsonString(reviewer.ID),
			"rating":     r,
			"comment":    "fine",
		})
		require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
		assert.JSONEq(t, `{"accepted":true,"message":"Review added"}`, rec.Body.String())
	}

	rec := f.do(t, nethttp.MethodGet, "/services/"+jsonString(svc.ID), nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	sv := decode[services.ServiceView](t, rec)
	assert.Equal(t, 4.0, sv.Rating)
	assert.Equal(t, 3, sv.ReviewCount)
	assert.Equal(t, "Pat Provider", sv.ProviderName)

	rec = f.do(t, nethttp.MethodGet, "/reviews/service/"+jsonString(svc.ID), nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	reviews := decode[[]services.ReviewView](t, rec)
	require.Len(t, reviews, 3)
	assert.Equal(t, "Robin Reviewer", reviews[0].UserName)

	rec = f.do(t, nethttp.MethodGet, "/reviews/service/424242", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCatalogOverHTTP(t *testing.T) {
	f := newAPI(t)
	provider := testutil.SeedProvider(t, context.Background(), f.db, "Pat Provider")

	rec := f.do(t, nethttp.MethodPost, "/services", map[string]any{
		"provider_id": jsonString(provider.ID),
		"title":       "Window Washing",
		"category":    "Cleaning",
		"location":    "Ogdenville",
		"price":       25,
	})
	require.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())
	created := decode[services.ServiceView](t, rec)
	assert.Equal(t, services.DefaultServiceImageURL, created.ImageURL)

	rec = f.do(t, nethttp.MethodPut, "/services/"+jsonString(created.ID), map[string]any{
		"title":  "Window Washing Deluxe",
		"price":  40,
		"rating": 5,
	})
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
	updated := decode[services.ServiceView](t, rec)
	assert.Equal(t, "Window Washing Deluxe", updated.Title)
	assert.Equal(t, 0.0, updated.Rating)

	rec = f.do(t, nethttp.MethodGet, "/services/provider/"+jsonString(provider.ID), nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Len(t, decode[[]services.ServiceView](t, rec), 1)

	rec = f.do(t, nethttp.MethodGet, "/services", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.NotEmpty(t, decode[[]services.ServiceView](t, rec))

	rec = f.do(t, nethttp.MethodGet, "/services/31337", nil)
	require.Equal(t, nethttp.StatusNotFound, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	f := newAPI(t)
	f.do(t, nethttp.MethodGet, "/health", nil)
	rec := f.do(t, nethttp.MethodGet, "/metrics", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `sh_api_requests_total{method="GET",route="/health",status="200"} 1`)
}

func jsonString(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
