package api_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aremaru/backend/internal/api"
)

func (e *testEnv) createStore(t *testing.T, token, name, address string) string {
	t.Helper()
	w := e.request(t, http.MethodPost, "/api/v1/stores", token, api.CreateStoreRequest{Name: name, Address: address})
	require.Equal(t, http.StatusCreated, w.Code)
	return decodeBody(t, w)["id"].(string)
}

func (e *testEnv) addChild(t *testing.T, token, nickname string) string {
	t.Helper()
	w := e.request(t, http.MethodPost, "/api/v1/profile/children", token, api.AddChildRequest{Nickname: nickname})
	require.Equal(t, http.StatusCreated, w.Code)
	return decodeBody(t, w)["id"].(string)
}

func TestListStoresEmpty(t *testing.T) {
	env := setupTestRouter(t)

	w := env.request(t, http.MethodGet, "/api/v1/stores", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody(t, w)["stores"])
}

func TestCreateStoreRequiresAuth(t *testing.T) {
	env := setupTestRouter(t)

	w := env.request(t, http.MethodPost, "/api/v1/stores", "", api.CreateStoreRequest{Name: "カフェA", Address: "住所"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateAndListStores(t *testing.T) {
	env := setupTestRouter(t)
	token := authToken(t, "ext-user-1")

	env.createStore(t, token, "カフェA", "東京都千代田区丸の内1-1")

	w := env.request(t, http.MethodGet, "/api/v1/stores", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stores := decodeBody(t, w)["stores"].([]interface{})
	require.Len(t, stores, 1)
	store := stores[0].(map[string]interface{})
	assert.Equal(t, "カフェA", store["name"])
	assert.Nil(t, store["lat"])
	stats := store["stats"].(map[string]interface{})
	assert.Equal(t, 0.0, stats["review_count"])
	assert.Equal(t, 0.0, stats["average_understanding"])
}

func TestSearchStoresByName(t *testing.T) {
	env := setupTestRouter(t)
	token := authToken(t, "ext-user-1")

	env.createStore(t, token, "Cafe Hana", "住所A")
	env.createStore(t, token, "ラーメン一番", "住所B")

	w := env.request(t, http.MethodGet, "/api/v1/stores?q=CAFE", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stores := decodeBody(t, w)["stores"].([]interface{})
	require.Len(t, stores, 1)
	assert.Equal(t, "Cafe Hana", stores[0].(map[string]interface{})["name"])
}

func TestGetStoreWithStats(t *testing.T) {
	env := setupTestRouter(t)
	token := authToken(t, "ext-user-1")

	storeID := env.createStore(t, token, "カフェA", "住所A")
	childID := env.addChild(t, token, "たろう")

	w := env.request(t, http.MethodPost, "/api/v1/stores/"+storeID+"/reviews", token, api.AddReviewRequest{
		ChildID:            childID,
		Comment:            "卵抜きで対応してくれた",
		CanEat:             true,
		StaffUnderstanding: 4,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodGet, "/api/v1/stores/"+storeID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "カフェA", body["store"].(map[string]interface{})["name"])
	stats := body["stats"].(map[string]interface{})
	assert.Equal(t, 1.0, stats["review_count"])
	assert.Equal(t, 4.0, stats["average_understanding"])
	assert.Equal(t, 1.0, stats["can_eat_count"])
}

func TestGetStoreNotFoundResponse(t *testing.T) {
	env := setupTestRouter(t)

	w := env.request(t, http.MethodGet, "/api/v1/stores/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.request(t, http.MethodGet, "/api/v1/stores/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReviewFeed(t *testing.T) {
	env := setupTestRouter(t)
	token := authToken(t, "ext-user-1")

	w := env.request(t, http.MethodPut, "/api/v1/profile", token, api.UpdateProfileRequest{DisplayName: "たろうのママ"})
	require.Equal(t, http.StatusOK, w.Code)

	childID := env.addChild(t, token, "たろう")
	w = env.request(t, http.MethodPost, "/api/v1/profile/children/"+childID+"/allergies", token, api.AddAllergyRequest{
		Allergen: "卵",
		Severity: "mild",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	storeID := env.createStore(t, token, "カフェA", "住所A")
	w = env.request(t, http.MethodPost, "/api/v1/stores/"+storeID+"/reviews", token, api.AddReviewRequest{
		ChildID:            childID,
		Comment:            "店員さんが丁寧だった",
		CanEat:             true,
		StaffUnderstanding: 5,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodGet, "/api/v1/stores/"+storeID+"/reviews", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	reviews := decodeBody(t, w)["reviews"].([]interface{})
	require.Len(t, reviews, 1)
	review := reviews[0].(map[string]interface{})
	assert.Equal(t, "店員さんが丁寧だった", review["comment"])
	assert.Equal(t, true, review["can_eat"])
	assert.Equal(t, 5.0, review["staff_understanding"])
	assert.Equal(t, "たろうのママ", review["author_display_name"])
	child := review["child"].(map[string]interface{})
	assert.Equal(t, "たろう", child["nickname"])
	assert.Equal(t, []interface{}{"卵"}, child["allergens"])
}

func TestAddReviewRequiresAuth(t *testing.T) {
	env := setupTestRouter(t)
	token := authToken(t, "ext-user-1")
	storeID := env.createStore(t, token, "カフェA", "住所A")

	w := env.request(t, http.MethodPost, "/api/v1/stores/"+storeID+"/reviews", "", api.AddReviewRequest{
		ChildID:            uuid.NewString(),
		Comment:            "comment",
		StaffUnderstanding: 3,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAddReviewRejectsForeignChild(t *testing.T) {
	env := setupTestRouter(t)
	mine := authToken(t, "ext-user-1")
	theirs := authToken(t, "ext-user-2")

	storeID := env.createStore(t, mine, "カフェA", "住所A")
	theirChildID := env.addChild(t, theirs, "よその子")

	w := env.request(t, http.MethodPost, "/api/v1/stores/"+storeID+"/reviews", mine, api.AddReviewRequest{
		ChildID:            theirChildID,
		Comment:            "comment",
		StaffUnderstanding: 3,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddReviewRejectsOutOfRangeRating(t *testing.T) {
	env := setupTestRouter(t)
	token := authToken(t, "ext-user-1")
	storeID := env.createStore(t, token, "カフェA", "住所A")
	childID := env.addChild(t, token, "たろう")

	for _, rating := range []int{0, 6} {
		w := env.request(t, http.MethodPost, "/api/v1/stores/"+storeID+"/reviews", token, api.AddReviewRequest{
			ChildID:            childID,
			Comment:            "comment",
			StaffUnderstanding: rating,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code, "rating %d should be rejected", rating)
	}
}

func TestAddReviewUnknownStoreResponse(t *testing.T) {
	env := setupTestRouter(t)
	token := authToken(t, "ext-user-1")
	childID := env.addChild(t, token, "たろう")

	w := env.request(t, http.MethodPost, "/api/v1/stores/"+uuid.NewString()+"/reviews", token, api.AddReviewRequest{
		ChildID:            childID,
		Comment:            "comment",
		StaffUnderstanding: 3,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadPhotoUnavailableWithoutStorage(t *testing.T) {
	env := setupTestRouter(t)
	token := authToken(t, "ext-user-1")
	storeID := env.createStore(t, token, "カフェA", "住所A")

	w := env.request(t, http.MethodPost, "/api/v1/stores/"+storeID+"/photo", token, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
