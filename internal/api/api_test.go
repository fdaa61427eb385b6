package api_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"robe-backend/internal/api"
	"robe-backend/internal/model"
	"robe-backend/internal/service"
	"robe-backend/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router   *gin.Engine
	coupons  *testutil.FakeCouponRepo
	orders   *testutil.FakeOrderRepo
	users    *testutil.FakeUserRepo
	uploader *testutil.FakeUploader
}

func newTestEnv(seedUsers ...*model.User) *testEnv {
	coupons := testutil.NewFakeCouponRepo()
	orders := testutil.NewFakeOrderRepo()
	users := testutil.NewFakeUserRepo(seedUsers...)
	uploader := &testutil.FakeUploader{URL: "https://cdn.example.com/robe_products/x.jpg"}

	router := api.NewRouter(api.Deps{
		Logger:         zap.NewNop(),
		Products:       testutil.NewFakeProductRepo(),
		Users:          users,
		Slides:         testutil.NewFakeSlideRepo(),
		Coupons:        service.NewCouponService(coupons, users),
		Orders:         service.NewOrderService(orders, coupons, &testutil.FakeTx{}),
		Uploader:       uploader,
		AllowedOrigins: []string{"http://localhost:3000"},
	})

	return &testEnv{router: router, coupons: coupons, orders: orders, users: users, uploader: uploader}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
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

func TestLiveness(t *testing.T) {
	env := newTestEnv()
	w := env.do(t, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "E-Commerce of Robe by Shomshed is running..", w.Body.String())
}

func TestCouponLifecycle(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodPost, "/coupons", gin.H{
		"code": "WELCOME10", "discount": 10, "userEmail": "a@x.com",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodPost, "/verify-coupon", gin.H{"code": "WELCOME10"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["valid"])
	assert.Equal(t, 10.0, body["discountAmount"])

	w = env.do(t, http.MethodPost, "/orders", gin.H{
		"customer":      gin.H{"name": "Ada", "email": "a@x.com"},
		"items":         []gin.H{{"productId": "p1", "qty": 2}},
		"couponApplied": "WELCOME10",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	body = decode(t, w)
	assert.NotEmpty(t, body["orderId"])

	w = env.do(t, http.MethodPost, "/verify-coupon", gin.H{"code": "WELCOME10"})
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Equal(t, false, body["valid"])
	assert.Equal(t, "Coupon already used!", body["message"])
}

func TestCreateCouponValidation(t *testing.T) {
	env := newTestEnv()

	// Missing discount
	w := env.do(t, http.MethodPost, "/coupons", gin.H{"code": "X"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Missing code
	w = env.do(t, http.MethodPost, "/coupons", gin.H{"discount": 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Duplicate code conflicts regardless of target user
	w = env.do(t, http.MethodPost, "/coupons", gin.H{"code": "DUP", "discount": 5, "userEmail": "a@x.com"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = env.do(t, http.MethodPost, "/coupons", gin.H{"code": "DUP", "discount": 5, "userEmail": "b@x.com"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestBroadcastCoupon(t *testing.T) {
	env := newTestEnv(
		&model.User{Email: "a@x.com", Role: "customer"},
		&model.User{Email: "b@x.com", Role: "customer"},
		&model.User{Email: "c@x.com", Role: "admin"},
	)

	w := env.do(t, http.MethodPost, "/coupons", gin.H{"code": "ALL5", "discount": 5, "forAll": true})
	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, 3.0, body["insertedCount"])

	w = env.do(t, http.MethodGet, "/coupons", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listing struct {
		Coupons []model.Coupon `json:"coupons"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	require.Len(t, listing.Coupons, 3)
	for _, c := range listing.Coupons {
		assert.Equal(t, "ALL5", c.Code)
		assert.False(t, c.Used)
		assert.NotEmpty(t, c.UserEmail)
	}
}

func TestBroadcastCouponNoUsers(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodPost, "/coupons", gin.H{"code": "ALL5", "discount": 5, "forAll": true})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderValidation(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodPost, "/orders", gin.H{
		"items": []gin.H{{"productId": "p1"}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/orders", gin.H{
		"customer": gin.H{"name": "Ada"},
		"items":    []gin.H{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Zero(t, env.orders.Count())
}

func TestProductRoundTrip(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodPost, "/products", gin.H{
		"name":     "Summer Robe",
		"price":    49.99,
		"category": "robes",
		"images":   []string{"https://cdn.example.com/robe.jpg"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	result, ok := body["result"].(map[string]interface{})
	require.True(t, ok)
	id, _ := result["insertedId"].(string)
	require.NotEmpty(t, id)

	w = env.do(t, http.MethodGet, "/products/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	product, ok := body["product"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Summer Robe", product["name"])
	assert.Equal(t, 49.99, product["price"])
	assert.Equal(t, "robes", product["category"])
}

func TestProductInvalidID(t *testing.T) {
	env := newTestEnv()

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		w := env.do(t, method, "/products/not-a-hex-id", gin.H{"name": "x"})
		assert.Equal(t, http.StatusBadRequest, w.Code, "%s should reject a malformed id", method)
	}
}

func TestProductNotFound(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodGet, "/products/65f000000000000000000000", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpload(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodPost, "/upload", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/upload", gin.H{"image": "data:image/png;base64,aGVsbG8="})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, env.uploader.URL, body["url"])

	env.uploader.Err = errors.New("gateway down")
	w = env.do(t, http.MethodPost, "/upload", gin.H{"image": "data:image/png;base64,aGVsbG8="})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestUploadRejectsOversizedBody(t *testing.T) {
	env := newTestEnv()

	// Just over the 10 MB cap; must be refused as a client error
	w := env.do(t, http.MethodPost, "/upload", gin.H{"image": strings.Repeat("a", 10<<20+1)})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A body under the cap still goes through
	w = env.do(t, http.MethodPost, "/upload", gin.H{"image": strings.Repeat("a", 1<<20)})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUserUpsert(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodPost, "/users", gin.H{"email": "a@x.com", "uid": "uid-1"})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Repeat login updates rather than creates
	w = env.do(t, http.MethodPost, "/users", gin.H{"email": "a@x.com", "uid": "uid-1"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/users", gin.H{"email": "a@x.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserRepeatLoginKeepsIdentity(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodPost, "/users", gin.H{"email": "a@x.com", "uid": "uid-1", "name": "Ada"})
	require.Equal(t, http.StatusCreated, w.Code)

	// A repeat login must touch lastLogin only
	w = env.do(t, http.MethodPost, "/users", gin.H{"email": "a@x.com", "uid": "uid-2", "name": "Mallory"})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listing struct {
		Users []model.User `json:"users"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	require.Len(t, listing.Users, 1)
	assert.Equal(t, "uid-1", listing.Users[0].UID)
	assert.Equal(t, "Ada", listing.Users[0].Name)
}

func TestUserRole(t *testing.T) {
	env := newTestEnv(&model.User{Email: "admin@x.com", Role: "admin"})

	w := env.do(t, http.MethodGet, "/users/role/admin@x.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "admin", body["role"])

	w = env.do(t, http.MethodGet, "/users/role/ghost@x.com", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	body = decode(t, w)
	assert.Nil(t, body["role"])
}

func TestSlideCRUD(t *testing.T) {
	env := newTestEnv()

	// Image is required
	w := env.do(t, http.MethodPost, "/slides", gin.H{"title": "Sale"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/slides", gin.H{
		"image": "https://cdn.example.com/banner.jpg", "title": "Sale", "subtitle": "50% off",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created model.Slide
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.False(t, created.ID.IsZero())

	path := fmt.Sprintf("/slides/%s", created.ID.Hex())
	w = env.do(t, http.MethodPut, path, gin.H{"title": "Mega Sale"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched model.Slide
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, "Mega Sale", fetched.Title)

	w = env.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSlideUpdateClearsTextFields(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodPost, "/slides", gin.H{
		"image": "https://cdn.example.com/banner.jpg", "title": "Sale", "subtitle": "50% off",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created model.Slide
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	path := fmt.Sprintf("/slides/%s", created.ID.Hex())

	// An explicit empty string clears the field; absent fields stay
	w = env.do(t, http.MethodPut, path, gin.H{"subtitle": ""})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched model.Slide
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Empty(t, fetched.Subtitle)
	assert.Equal(t, "Sale", fetched.Title)
	assert.Equal(t, "https://cdn.example.com/banner.jpg", fetched.Image)

	// The banner image itself cannot be cleared
	w = env.do(t, http.MethodPut, path, gin.H{"image": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
