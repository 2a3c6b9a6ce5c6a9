package profile

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"belumin-api/internal/core/storage"
	"belumin-api/internal/pkg/common"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	handler := NewHandler(storage.NewStoreWithClient(client, "belumin_test"))

	router := gin.New()
	router.POST("/profile", handler.HandleCreateProfile)
	router.GET("/profile", handler.HandleGetProfile)
	router.GET("/profile/recommendations", handler.HandleGetRecommendations)
	router.DELETE("/data", handler.HandleClearData)
	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleCreateProfile(t *testing.T) {
	t.Run("missing answers is a bad request", func(t *testing.T) {
		router := newTestRouter(t)
		w := doRequest(router, http.MethodPost, "/profile", `{"name":"Maya"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("answers drive skin type and concerns", func(t *testing.T) {
		router := newTestRouter(t)
		w := doRequest(router, http.MethodPost, "/profile", `{
			"name": "Maya",
			"budget": "₹300-500",
			"allergies": ["fragrance_perfume"],
			"answers": {
				"q2_midday_oiliness": "tzone_noticeably_shiny",
				"q7_common_blemish_type": ["blackheads"],
				"q12_spf_consistency": "rarely_never"
			}
		}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp ProfileResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		require.NotNil(t, resp.Profile)
		assert.Equal(t, common.SkinTypeOily, resp.Profile.SkinType)
		assert.Contains(t, resp.Profile.Concerns, common.ConcernAcne)
		assert.Contains(t, resp.Profile.Concerns, common.ConcernOiliness)
		assert.Equal(t, []string{"fragrance_perfume"}, resp.Profile.Allergies)
		assert.Contains(t, resp.Recommendations.MorningSteps, "Daily SPF 30+ (non-negotiable!)")
		assert.Contains(t, resp.Recommendations.KeyIngredients, "Salicylic Acid")
	})
}

func TestHandleGetProfile(t *testing.T) {
	router := newTestRouter(t)

	t.Run("before onboarding returns not found", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/profile", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "PROFILE_NOT_FOUND")
	})

	t.Run("after onboarding returns the profile", func(t *testing.T) {
		created := doRequest(router, http.MethodPost, "/profile", `{"answers":{"q1_skin_feel_after_cleanse":"very_dry_tight_flaky"}}`)
		require.Equal(t, http.StatusOK, created.Code)

		w := doRequest(router, http.MethodGet, "/profile", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Greeting           string              `json:"greeting"`
			Profile            *common.UserProfile `json:"profile"`
			OnboardingComplete bool                `json:"onboarding_complete"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.OnboardingComplete)
		assert.Equal(t, common.SkinTypeDry, resp.Profile.SkinType)
		assert.True(t, strings.HasPrefix(resp.Greeting, "Good "))
	})
}

func TestHandleGetRecommendations(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/profile/recommendations", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	created := doRequest(router, http.MethodPost, "/profile", `{"answers":{"q8_post_breakout_mark":"dark_brown_spots_pih","q12_spf_consistency":"every_day_fail"}}`)
	require.Equal(t, http.StatusOK, created.Code)

	w = doRequest(router, http.MethodGet, "/profile/recommendations", "")
	require.Equal(t, http.StatusOK, w.Code)

	var recs common.Recommendations
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recs))
	assert.Equal(t, []string{"Vitamin C serum"}, recs.MorningSteps)
}

func TestHandleClearData(t *testing.T) {
	router := newTestRouter(t)

	created := doRequest(router, http.MethodPost, "/profile", `{"answers":{"q12_spf_consistency":"rarely_never"}}`)
	require.Equal(t, http.StatusOK, created.Code)

	cleared := doRequest(router, http.MethodDelete, "/data", "")
	require.Equal(t, http.StatusOK, cleared.Code)

	w := doRequest(router, http.MethodGet, "/profile", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
