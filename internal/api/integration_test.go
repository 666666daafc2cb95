package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"ridehail/internal/api/handlers"
	"ridehail/internal/api/middleware"
	"ridehail/internal/catalog"
	"ridehail/internal/config"
	"ridehail/internal/domain/entities"
	"ridehail/internal/geocode"
	"ridehail/internal/repository/memory"
	"ridehail/internal/services"
	"ridehail/internal/staticmap"
	"ridehail/pkg/utils"
)

const testSecret = "integration-secret"

func testPOIs() []entities.POI {
	return []entities.POI{
		{ID: "yangmingshan", Name: "陽明山國家公園", Latitude: 25.1559, Longitude: 121.5468, Category: entities.CategorySightseeing},
		{ID: "jiufen", Name: "九份老街", Latitude: 25.1089, Longitude: 121.8444, Category: entities.CategorySightseeing},
		{ID: "xiangshan", Name: "象山步道", Latitude: 25.0230, Longitude: 121.5739, Category: entities.CategoryLeisure},
		{ID: "tamsui", Name: "淡水漢生態公園", Latitude: 25.1825, Longitude: 121.4490, Category: entities.CategoryLeisure},
		{ID: "nangang", Name: "南港展覽館", Latitude: 25.0553, Longitude: 121.6076, Category: entities.CategoryBusiness},
		{ID: "park", Name: "南寧夢幻水域公園", Latitude: 25.0344, Longitude: 121.5638, Category: entities.CategoryNearbyPopular},
		{ID: "street", Name: "利濤街道", Latitude: 25.0421, Longitude: 121.5333, Category: entities.CategoryNearbyPopular},
		{ID: "wetland", Name: "淸河溼地公園", Latitude: 25.0716, Longitude: 121.4658, Category: entities.CategoryLeisure},
	}
}

func newGeocodeStub(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"OK","results":[{"address_components":[
			{"long_name":"信義區","types":["administrative_area_level_3"]},
			{"long_name":"臺北市","types":["administrative_area_level_1"]}
		]}]}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func setupTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.NewDefaultConfig()
	cfg.Auth.JWTSecret = testSecret

	cat, err := catalog.Load(context.Background(), memory.NewPOIRepository(testPOIs()...))
	require.NoError(t, err)

	resolver := geocode.NewGoogleClient("test-key", cfg.Maps.Language, newGeocodeStub(t).URL, time.Second)
	maps := staticmap.NewBuilder("test-key", "")

	recommender := services.NewRecommender(cfg)
	recommendationService := services.NewRecommendationService(cat, recommender, resolver)
	rideService := services.NewRideService(recommender.Estimator(), maps)
	locationService := services.NewLocationService(resolver, maps)

	router := NewRouter(
		handlers.NewDestinationHandler(recommendationService),
		handlers.NewRideHandler(rideService),
		handlers.NewLocationHandler(locationService),
	)
	engine := gin.New()
	engine.Use(middleware.RequestID())
	router.Setup(engine, middleware.SessionAuth(cfg.Auth.JWTSecret))

	return engine
}

func bearer(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, middleware.SessionClaims{
		Role: middleware.RoleAuthenticated,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "rider-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func doRequest(t *testing.T, engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", bearer(t))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	engine := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	engine := setupTestServer(t)

	for _, path := range []string{"/destinations/nearby?lat=25.034&lng=121.565", "/destinations/catalog", "/location/address?lat=25.034&lng=121.565"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestNearbyTimeWindowEndpoint(t *testing.T) {
	engine := setupTestServer(t)

	w := doRequest(t, engine, http.MethodGet, "/destinations/nearby?lat=25.0340&lng=121.5650", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp services.NearbyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "time", string(resp.Policy))
	assert.Equal(t, "臺北市信義區", resp.Address)
	require.Len(t, resp.Destinations, 3)
	assert.Equal(t, "wetland", resp.Destinations[0].ID)
	assert.Equal(t, "yangmingshan", resp.Destinations[1].ID)
	assert.Equal(t, "tamsui", resp.Destinations[2].ID)
	assert.Equal(t, "16-26分鐘", resp.Destinations[1].TimeLabel)
	assert.Equal(t, 240, resp.Destinations[1].PriceLow)
}

func TestNearbyCategoryEndpoint(t *testing.T) {
	engine := setupTestServer(t)

	w := doRequest(t, engine, http.MethodGet, "/destinations/nearby?lat=25.0340&lng=121.5650&policy=category&radius_km=5", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp services.NearbyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.Groups, 4)
	byCategory := map[entities.Category][]string{}
	for _, g := range resp.Groups {
		for _, d := range g.Destinations {
			byCategory[g.Category] = append(byCategory[g.Category], d.ID)
		}
	}
	assert.Equal(t, []string{"park", "street"}, byCategory[entities.CategoryNearbyPopular])
	assert.Equal(t, []string{"nangang"}, byCategory[entities.CategoryBusiness])
	assert.Equal(t, []string{"xiangshan"}, byCategory[entities.CategoryLeisure])
	assert.Equal(t, []string{"park"}, byCategory[entities.CategorySightseeing])
}

func TestNearbyInvalidLocation(t *testing.T) {
	engine := setupTestServer(t)

	w := doRequest(t, engine, http.MethodGet, "/destinations/nearby?lat=0&lng=0", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"error":"location unavailable"}`, w.Body.String())
}

func TestNearbyBadQuery(t *testing.T) {
	engine := setupTestServer(t)

	tests := []string{
		"/destinations/nearby?lat=25.034",
		"/destinations/nearby?lat=abc&lng=121.5",
		"/destinations/nearby?lat=25.034&lng=121.565&policy=fastest",
		"/destinations/nearby?lat=25.034&lng=121.565&radius_km=-1",
	}
	for _, path := range tests {
		w := doRequest(t, engine, http.MethodGet, path, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestCatalogEndpoint(t *testing.T) {
	engine := setupTestServer(t)

	w := doRequest(t, engine, http.MethodGet, "/destinations/catalog", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Groups []struct {
			Category string         `json:"category"`
			Label    string         `json:"label"`
			POIs     []entities.POI `json:"pois"`
		} `json:"groups"`
		BBox []float64 `json:"bbox"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Groups, 4)
	assert.Equal(t, "nearby-popular", resp.Groups[0].Category)
	assert.Equal(t, "附近熱門", resp.Groups[0].Label)
	assert.Len(t, resp.Groups[2].POIs, 3)

	require.Len(t, resp.BBox, 4)
	assert.InDelta(t, 121.4490, resp.BBox[0], 1e-9)
	assert.InDelta(t, 25.0230, resp.BBox[1], 1e-9)
	assert.InDelta(t, 121.8444, resp.BBox[2], 1e-9)
	assert.InDelta(t, 25.1825, resp.BBox[3], 1e-9)
}

func TestCatalogEndpointCategoryFilter(t *testing.T) {
	engine := setupTestServer(t)

	w := doRequest(t, engine, http.MethodGet, "/destinations/catalog?category=business", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Groups []struct {
			Category string         `json:"category"`
			POIs     []entities.POI `json:"pois"`
		} `json:"groups"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Groups, 1)
	assert.Equal(t, "business", resp.Groups[0].Category)
	require.Len(t, resp.Groups[0].POIs, 1)
	assert.Equal(t, "nangang", resp.Groups[0].POIs[0].ID)

	w = doRequest(t, engine, http.MethodGet, "/destinations/catalog?category=nightlife", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "nightlife")
}

func TestServiceLogsCarryRequestIDs(t *testing.T) {
	engine := setupTestServer(t)

	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	requestID := utils.GenerateID()
	req := httptest.NewRequest(http.MethodGet, "/destinations/nearby?lat=25.034&lng=121.565", nil)
	req.Header.Set("Authorization", bearer(t))
	req.Header.Set(middleware.RequestIDHeader, requestID)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, buf.String(), "[RECOMMEND] request_id="+requestID+" user_id=rider-1")
}

func TestFareEstimateEndpoint(t *testing.T) {
	engine := setupTestServer(t)

	body := `{"source":{"lat":25.0340,"lng":121.5650},"destination":{"lat":25.1559,"lng":121.5468}}`
	w := doRequest(t, engine, http.MethodPost, "/ride/estimate", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp["quote_id"])
	assert.InDelta(t, 13.678, resp["distance_km"], 0.01)
	assert.Equal(t, float64(16), resp["minutes_low"])
	assert.Equal(t, float64(26), resp["minutes_high"])
	assert.Equal(t, float64(240), resp["price_low"])
	assert.Equal(t, float64(290), resp["price_high"])
	assert.Equal(t, "NT$240-290", resp["price_label"])
	assert.NotEmpty(t, resp["map_url"])
}

func TestFareEstimateEndpointErrors(t *testing.T) {
	engine := setupTestServer(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"missing destination", `{"source":{"lat":25.034,"lng":121.565}}`, http.StatusBadRequest},
		{"malformed json", `{"source":`, http.StatusBadRequest},
		{"unknown source", `{"source":{"lat":0,"lng":0},"destination":{"lat":25.1559,"lng":121.5468}}`, http.StatusUnprocessableEntity},
		{"unknown destination", `{"source":{"lat":25.034,"lng":121.565},"destination":{"lat":0,"lng":0}}`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, engine, http.MethodPost, "/ride/estimate", tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestAddressEndpoint(t *testing.T) {
	engine := setupTestServer(t)

	w := doRequest(t, engine, http.MethodGet, "/location/address?lat=25.034&lng=121.565", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp services.AddressResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "臺北市信義區", resp.Address)
	assert.True(t, resp.Resolved)
}

func TestMapEndpoint(t *testing.T) {
	engine := setupTestServer(t)

	w := doRequest(t, engine, http.MethodGet, "/location/map?lat=25.034&lng=121.565&dest_lat=25.1559&dest_lng=121.5468", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		URL string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	u, err := url.Parse(resp.URL)
	require.NoError(t, err)
	assert.Equal(t, "color:0x0000ff|weight:5|25.034,121.565|25.1559,121.5468", u.Query().Get("path"))

	w = doRequest(t, engine, http.MethodGet, "/location/map?lat=25.034&lng=121.565&dest_lat=25.1559", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
