package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestLoginSetsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/login" || r.Method != http.MethodPost {
			t.Errorf("неожиданный запрос: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":1,"username":"manager1","name":"","role":"manager","token":"jwt-abc"}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("создание клиента: %v", err)
	}

	res, err := c.Login(context.Background(), "manager1", "secret")
	if err != nil {
		t.Fatalf("вход: %v", err)
	}
	if res.Role != "manager" {
		t.Errorf("неверная роль: %q", res.Role)
	}
	if c.token != "jwt-abc" {
		t.Errorf("токен не сохранён в клиенте: %q", c.token)
	}
}

func TestAPIErrorDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Неверное имя пользователя или пароль"}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("создание клиента: %v", err)
	}

	_, err = c.Login(context.Background(), "x", "y")
	if err == nil {
		t.Fatal("ожидалась ошибка")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("ожидалась APIError, получено: %T", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("неверный статус: %d", apiErr.StatusCode)
	}
	if apiErr.Error() != "Неверное имя пользователя или пароль" {
		t.Errorf("текст ошибки должен браться из detail: %q", apiErr.Error())
	}
}

func TestAPIErrorWithoutDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL)
	_, err := c.Cars(context.Background())
	if err == nil {
		t.Fatal("ожидалась ошибка")
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("без detail ошибка должна содержать статус: %q", err.Error())
	}
}

func TestTimeoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := c.Cars(ctx)
	if err == nil {
		t.Fatal("ожидалась ошибка по таймауту")
	}
	if err.Error() != "превышено время ожидания ответа от сервера" {
		t.Errorf("неожиданный текст ошибки таймаута: %q", err.Error())
	}
}

func TestAuthorizationHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL)
	c.SetToken("jwt-abc")
	if _, err := c.Cars(context.Background()); err != nil {
		t.Fatalf("запрос: %v", err)
	}
	if gotAuth != "Bearer jwt-abc" {
		t.Errorf("неверный заголовок авторизации: %q", gotAuth)
	}
}

func TestClientHasNoGlobalTimeout(t *testing.T) {
	c, err := NewClient("http://localhost:8080")
	if err != nil {
		t.Fatalf("создание клиента: %v", err)
	}
	// Предел ожидания задаёт контекст вызова: общий Timeout клиента
	// обрезал бы более длинные бюджеты отдельных операций
	if c.http.Timeout != 0 {
		t.Errorf("у http-клиента не должно быть общего Timeout, задан %v", c.http.Timeout)
	}
}

func TestCreateCar(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/cars" || r.Method != http.MethodPost {
			t.Errorf("неожиданный запрос: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("разбор тела: %v", err)
		}
		if body["vin"] != "NEWVIN00000000002" {
			t.Errorf("VIN не передан: %v", body["vin"])
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":7,"vin":"NEWVIN00000000002","vehicle_model":"ПД1,5"}`))
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL)
	row, err := c.CreateCar(context.Background(), CarCreate{
		VIN:                 "NEWVIN00000000002",
		VehicleModelID:      1,
		EngineModelID:       1,
		TransmissionModelID: 1,
		DriveAxleModelID:    1,
		SteeringAxleModelID: 1,
		ShipmentDate:        "2024-03-09",
		ClientID:            1,
		ServiceCompanyID:    1,
	})
	if err != nil {
		t.Fatalf("создание машины: %v", err)
	}
	if row.ID != 7 || row.VehicleModel != "ПД1,5" {
		t.Errorf("каноническая запись сервера не разобрана: %+v", row)
	}
}

func TestCreateComplaintError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":"Указан несуществующий car_id"}`))
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL)
	_, err := c.CreateComplaint(context.Background(), ComplaintCreate{CarID: 999})
	if err == nil {
		t.Fatal("ожидалась ошибка")
	}
	if err.Error() != "Указан несуществующий car_id" {
		t.Errorf("текст ошибки должен браться из detail: %q", err.Error())
	}
}

func TestParseBaseURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"http://localhost:8080", "http://localhost:8080"},
		{"localhost:8080", "http://localhost:8080"},
		{"", defaultServerURL},
		{"  https://silant.example.ru  ", "https://silant.example.ru"},
	}
	for _, tc := range cases {
		u, err := parseBaseURL(tc.in)
		if err != nil {
			t.Fatalf("parseBaseURL(%q): %v", tc.in, err)
		}
		if u.String() != tc.want {
			t.Errorf("parseBaseURL(%q) = %q, ожидалось %q", tc.in, u.String(), tc.want)
		}
	}
}
