package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"easyrent-backend/internal/domain"
	"easyrent-backend/internal/metrics"
	"easyrent-backend/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testToken = "valid-token"

type testServer struct {
	handler http.Handler
	auth    *mocks.MockAuthService
	user    *mocks.MockUserService
	brand   *mocks.MockBrandService
	model   *mocks.MockModelService
	car     *mocks.MockCarService
	rental  *mocks.MockRentalService
	image   *mocks.MockImageService
	metrics *metrics.Metrics
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	s := &testServer{
		auth:    new(mocks.MockAuthService),
		user:    new(mocks.MockUserService),
		brand:   new(mocks.MockBrandService),
		model:   new(mocks.MockModelService),
		car:     new(mocks.MockCarService),
		rental:  new(mocks.MockRentalService),
		image:   new(mocks.MockImageService),
		metrics: metrics.New(),
	}
	s.auth.On("Authenticate", mock.Anything, testToken).
		Return(&domain.User{ID: "user-1", Name: "Ana", Email: "ana@example.com"}, nil).Maybe()
	s.auth.On("Authenticate", mock.Anything, mock.Anything).
		Return(nil, domain.Unauthenticatedf("invalid or expired token")).Maybe()

	s.handler = NewRouter(Services{
		Auth:   s.auth,
		User:   s.user,
		Brand:  s.brand,
		Model:  s.model,
		Car:    s.car,
		Rental: s.rental,
		Image:  s.image,
	}, RouterConfig{
		AllowedOrigins: []string{"http://localhost:5173"},
		MaxUploadBytes: 1 << 20,
		UploadsPath:    "/uploads",
		Metrics:        s.metrics,
	})
	return s
}

func (s *testServer) do(method, target, token string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "OK", body.Status)
	_, err := time.Parse(time.RFC3339, body.Timestamp)
	assert.NoError(t, err)
}

func TestRequireAuth(t *testing.T) {
	s := newTestServer(t)

	t.Run("MissingToken", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/rentals", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "authentication token required", decodeMessage(t, rec))
	})

	t.Run("InvalidToken", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/users/profile", "garbage", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "invalid or expired token", decodeMessage(t, rec))
	})

	t.Run("NotBearer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.Header.Set("Authorization", "Basic abc")
		rec := httptest.NewRecorder()
		s.handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("PublicRouteWithoutToken", func(t *testing.T) {
		s.brand.On("ListBrands", mock.Anything).Return([]domain.Brand{{ID: "b-1", Name: "Honda"}}, nil).Once()
		rec := s.do(http.MethodGet, "/brands", "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	user := &domain.User{ID: "user-1", Name: "Ana", Email: "ana@example.com", PasswordHash: "secret-hash"}
	s.auth.On("Login", mock.Anything, "ana@example.com", "pw").Return("jwt-token", user, nil).Once()

	rec := s.do(http.MethodPost, "/auth/login", "", strings.NewReader(`{"email":"ana@example.com","password":"pw"}`))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token":"jwt-token"`)
	assert.Contains(t, rec.Body.String(), `"email":"ana@example.com"`)
	assert.NotContains(t, rec.Body.String(), "secret-hash")
}

func TestRegister_Duplicate(t *testing.T) {
	s := newTestServer(t)
	s.user.On("Register", mock.Anything, "Ana", "ana@example.com", "pw").
		Return(nil, domain.Conflictf("email already registered")).Once()

	rec := s.do(http.MethodPost, "/users", "", strings.NewReader(`{"name":"Ana","email":"ana@example.com","password":"pw"}`))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "email already registered", decodeMessage(t, rec))
}

func TestCreateRental(t *testing.T) {
	s := newTestServer(t)

	t.Run("Success", func(t *testing.T) {
		price, _ := domain.ParseMoney("300.00")
		pickup := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
		s.rental.On("CreateRental", mock.Anything, domain.RentalRequest{
			RequesterID: "user-1",
			CarID:       "car-1",
			PickupDate:  "2025-01-10",
			ReturnDate:  "2025-01-13",
			Notes:       "airport",
		}).Return(&domain.Rental{
			ID:          "rental-1",
			Code:        "LOC0001",
			CarID:       "car-1",
			RequesterID: "user-1",
			PickupDate:  pickup,
			ReturnDate:  pickup.AddDate(0, 0, 3),
			Price:       price,
			Notes:       "airport",
			Car:         &domain.Car{ID: "car-1"},
		}, nil).Once()

		body := `{"carId":"car-1","pickupDate":"2025-01-10","returnDate":"2025-01-13","notes":"airport"}`
		rec := s.do(http.MethodPost, "/rentals", testToken, strings.NewReader(body))
		require.Equal(t, http.StatusCreated, rec.Code)

		var got map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "LOC0001", got["code"])
		assert.Equal(t, 300.0, got["price"])
		assert.Equal(t, "user-1", got["requesterId"])
		assert.NotContains(t, got, "car")
		assert.Contains(t, rec.Body.String(), `"price":300.00`)
	})

	t.Run("UnknownField", func(t *testing.T) {
		rec := s.do(http.MethodPost, "/rentals", testToken, strings.NewReader(`{"carId":"car-1","price":1}`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeMessage(t, rec), "invalid request body")
	})

	t.Run("EmptyBody", func(t *testing.T) {
		rec := s.do(http.MethodPost, "/rentals", testToken, strings.NewReader(""))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "request body is required", decodeMessage(t, rec))
	})

	t.Run("ValidationError", func(t *testing.T) {
		s.rental.On("CreateRental", mock.Anything, mock.MatchedBy(func(req domain.RentalRequest) bool {
			return req.CarID == "car-2"
		})).Return(nil, domain.Validationf("pickup date cannot be in the past")).Once()

		rec := s.do(http.MethodPost, "/rentals", testToken,
			strings.NewReader(`{"carId":"car-2","pickupDate":"2020-01-01","returnDate":"2020-01-02"}`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "pickup date cannot be in the past", decodeMessage(t, rec))
	})

	s.rental.AssertExpectations(t)
}

func TestCancelRental(t *testing.T) {
	s := newTestServer(t)

	t.Run("Success", func(t *testing.T) {
		s.rental.On("CancelRental", mock.Anything, "user-1", "rental-1").Return(nil).Once()
		rec := s.do(http.MethodDelete, "/rentals/rental-1", testToken, nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("NotOwner", func(t *testing.T) {
		s.rental.On("CancelRental", mock.Anything, "user-1", "rental-2").
			Return(domain.Forbiddenf("you can only cancel your own rentals")).Once()
		rec := s.do(http.MethodDelete, "/rentals/rental-2", testToken, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Missing", func(t *testing.T) {
		s.rental.On("CancelRental", mock.Anything, "user-1", "rental-3").
			Return(domain.NotFoundf("rental not found")).Once()
		rec := s.do(http.MethodDelete, "/rentals/rental-3", testToken, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "rental not found", decodeMessage(t, rec))
	})
}

func TestListMyRentals_RoutedBeforeID(t *testing.T) {
	s := newTestServer(t)
	s.rental.On("ListMyRentals", mock.Anything, "user-1").Return([]domain.Rental{{ID: "rental-1"}}, nil).Once()

	rec := s.do(http.MethodGet, "/rentals/mine", testToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	s.rental.AssertNotCalled(t, "GetRental", mock.Anything, "mine")
}

func TestCatalogErrors(t *testing.T) {
	s := newTestServer(t)

	t.Run("BrandDeleteConflict", func(t *testing.T) {
		s.brand.On("DeleteBrand", mock.Anything, "b-1").
			Return(domain.Conflictf("brand has models and cannot be deleted")).Once()
		rec := s.do(http.MethodDelete, "/brands/b-1", testToken, nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("CarNotFound", func(t *testing.T) {
		s.car.On("GetCar", mock.Anything, "nope").Return(nil, domain.NotFoundf("car not found")).Once()
		rec := s.do(http.MethodGet, "/cars/nope", "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("UnexpectedErrorHidden", func(t *testing.T) {
		s.model.On("ListModels", mock.Anything).Return([]domain.Model(nil), errors.New("pq: connection refused")).Once()
		rec := s.do(http.MethodGet, "/models", "", nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "internal server error", decodeMessage(t, rec))
	})

	t.Run("CreateCarUsesBody", func(t *testing.T) {
		s.car.On("CreateCar", mock.Anything, mock.MatchedBy(func(c *domain.Car) bool {
			return c.Code == "CAR001" && c.DailyRate.Cents() == 8990 && c.Year == 2024
		})).Return(nil).Once()

		body := `{"code":"CAR001","modelId":"m-1","year":2024,"color":"Red","description":"Compact","dailyRate":89.90}`
		rec := s.do(http.MethodPost, "/cars", testToken, strings.NewReader(body))
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("AvailableRoutedBeforeID", func(t *testing.T) {
		s.car.On("ListAvailableCars", mock.Anything, "2025-01-10", "2025-01-12").Return([]domain.Car{}, nil).Once()
		rec := s.do(http.MethodGet, "/cars/available?start=2025-01-10&end=2025-01-12", "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("UnknownRoute", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/nope", "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "route not found", decodeMessage(t, rec))
	})
}

func TestImageUpload(t *testing.T) {
	s := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "car.png")
	require.NoError(t, err)
	_, _ = part.Write([]byte("\x89PNG"))
	require.NoError(t, mw.Close())

	s.image.On("UploadCarImage", mock.Anything, "car.png", "application/octet-stream", int64(4), mock.Anything).
		Return(&domain.UploadedImage{Filename: "abc.png", Path: "/uploads/abc.png", ContentType: "image/png", Size: 4}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/upload/car-image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+testToken)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"path":"/uploads/abc.png"`)
	s.image.AssertExpectations(t)
}

func TestImageUpload_MissingField(t *testing.T) {
	s := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("other", "x"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload/car-image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+testToken)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "no file uploaded", decodeMessage(t, rec))
}

func TestImageDownload(t *testing.T) {
	s := newTestServer(t)
	s.image.On("OpenCarImage", mock.Anything, "abc.png").
		Return(io.NopCloser(strings.NewReader("\x89PNG")), "image/png", nil).Once()

	rec := s.do(http.MethodGet, "/uploads/abc.png", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "\x89PNG", rec.Body.String())
}

func TestCORS(t *testing.T) {
	s := newTestServer(t)

	t.Run("Preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/rentals", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", "POST")
		rec := httptest.NewRecorder()
		s.handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	})

	t.Run("UnknownOrigin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "http://evil.test")
		rec := httptest.NewRecorder()
		s.handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestMetricsMiddleware(t *testing.T) {
	s := newTestServer(t)
	s.car.On("GetCar", mock.Anything, "car-9").Return(nil, domain.NotFoundf("car not found")).Once()
	s.do(http.MethodGet, "/cars/car-9", "", nil)

	rec := s.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `easyrent_http_requests_total{method="GET",route="/cars/{id}",status="404"} 1`)
}

func TestMetricsMiddleware_Unmatched(t *testing.T) {
	s := newTestServer(t)
	s.do(http.MethodGet, "/nope", "", nil)
	s.do(http.MethodPut, "/health", "", nil)

	rec := s.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `easyrent_http_requests_total{method="GET",route="unmatched",status="404"} 1`)
	assert.Contains(t, rec.Body.String(), `easyrent_http_requests_total{method="PUT",route="unmatched",status="405"} 1`)
}

func TestRecover(t *testing.T) {
	h := Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", decodeMessage(t, rec))
}
