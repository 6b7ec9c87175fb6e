package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/house-hunt/rental-api/internal/core/domain"
	"github.com/house-hunt/rental-api/internal/core/ports"
)

type stubPropertyService struct {
	searchFn       func(ctx context.Context, input ports.SearchPropertiesInput) (*ports.PropertyPage, error)
	getPublicFn    func(ctx context.Context, id string) (*domain.Property, error)
	createFn       func(ctx context.Context, actor domain.Actor, input ports.CreatePropertyInput) (*domain.Property, error)
	deleteFn       func(ctx context.Context, actor domain.Actor, id string) error
	setOccupancyFn func(ctx context.Context, actor domain.Actor, id, status string) (*domain.Property, error)
}

func (s *stubPropertyService) Search(ctx context.Context, input ports.SearchPropertiesInput) (*ports.PropertyPage, error) {
	return s.searchFn(ctx, input)
}

func (s *stubPropertyService) GetPublic(ctx context.Context, id string) (*domain.Property, error) {
	return s.getPublicFn(ctx, id)
}

func (s *stubPropertyService) ListByOwner(ctx context.Context, ownerID, page, limit string) (*ports.PropertyPage, error) {
	return &ports.PropertyPage{}, nil
}

func (s *stubPropertyService) ListMine(ctx context.Context, actor domain.Actor, page, limit string) (*ports.PropertyPage, error) {
	return &ports.PropertyPage{}, nil
}

func (s *stubPropertyService) Create(ctx context.Context, actor domain.Actor, input ports.CreatePropertyInput) (*domain.Property, error) {
	return s.createFn(ctx, actor, input)
}

func (s *stubPropertyService) Update(ctx context.Context, actor domain.Actor, id string, input ports.UpdatePropertyInput) (*domain.Property, error) {
	return nil, errors.New("not implemented")
}

func (s *stubPropertyService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	return s.deleteFn(ctx, actor, id)
}

func (s *stubPropertyService) TogglePublish(ctx context.Context, actor domain.Actor, id string) (*domain.Property, error) {
	return nil, errors.New("not implemented")
}

func (s *stubPropertyService) SetOccupancy(ctx context.Context, actor domain.Actor, id, status string) (*domain.Property, error) {
	return s.setOccupancyFn(ctx, actor, id, status)
}

func newTestContext(t *testing.T, method, target string, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	return he.Code
}

func sampleProperty() *domain.Property {
	now := time.Now().UTC()
	return &domain.Property{
		ID:              "p_1",
		Title:           "Sunny flat near the park",
		Description:     "Two rooms, recently renovated, close to public transport.",
		OwnerID:         "owner_1",
		Location:        domain.Location{Address: "Hauptstr. 1", City: "Berlin", Geo: domain.NewGeoPoint(52.52, 13.40)},
		Price:           1200,
		Size:            65,
		Bedrooms:        2,
		IsPublished:     true,
		OccupancyStatus: domain.OccupancyAvailable,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func TestPropertyHandler_Search_Success(t *testing.T) {
	stub := &stubPropertyService{
		searchFn: func(ctx context.Context, input ports.SearchPropertiesInput) (*ports.PropertyPage, error) {
			if input.City != "Berlin" || input.Bedrooms != "2,3" || input.Page != "2" {
				t.Fatalf("query params not passed through: %+v", input)
			}
			return &ports.PropertyPage{
				Items: []*domain.Property{sampleProperty()},
				Total: 11, Page: 2, Limit: 10, TotalPages: 2,
			}, nil
		},
	}
	h := NewPropertyHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/properties?city=Berlin&bedrooms=2,3&page=2", "")
	if err := h.Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	data, ok := resp["data"].([]any)
	if !ok || len(data) != 1 {
		t.Fatalf("expected 1 item in data, got %v", resp["data"])
	}
	item := data[0].(map[string]any)
	loc, ok := item["location"].(map[string]any)
	if !ok || loc["lat"] != 52.52 || loc["lng"] != 13.40 {
		t.Errorf("geo coordinates must surface as lat/lng, got %v", item["location"])
	}
	pagination, ok := resp["pagination"].(map[string]any)
	if !ok || pagination["total"] != float64(11) || pagination["total_pages"] != float64(2) {
		t.Errorf("unexpected pagination: %v", resp["pagination"])
	}
}

func TestPropertyHandler_Get_NotFoundPassesThrough(t *testing.T) {
	stub := &stubPropertyService{
		getPublicFn: func(ctx context.Context, id string) (*domain.Property, error) {
			return nil, domain.ErrPropertyNotFound
		},
	}
	h := NewPropertyHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/properties/p_404", "")
	c.SetParamNames("id")
	c.SetParamValues("p_404")

	// Domain errors bubble up to the central error handler untouched.
	if err := h.Get(c); !errors.Is(err, domain.ErrPropertyNotFound) {
		t.Errorf("expected ErrPropertyNotFound, got %v", err)
	}
}

func TestPropertyHandler_Create_Success(t *testing.T) {
	stub := &stubPropertyService{
		createFn: func(ctx context.Context, actor domain.Actor, input ports.CreatePropertyInput) (*domain.Property, error) {
			if actor.ID != "owner_1" || actor.Role != "owner" {
				t.Fatalf("unexpected actor: %+v", actor)
			}
			if input.Title != "Bright loft near the river" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return sampleProperty(), nil
		},
	}
	h := NewPropertyHandler(stub)

	body := `{
		"title": "Bright loft near the river",
		"description": "Spacious loft with lots of daylight and a modern kitchen.",
		"location": {"address": "Uferweg 3", "city": "Hamburg"},
		"price": 1450,
		"size": 80,
		"bedrooms": 3
	}`
	c, rec := newTestContext(t, http.MethodPost, "/properties", body)
	c.Set("user_id", "owner_1")
	c.Set("role", "owner")

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestPropertyHandler_Create_MissingIdentity(t *testing.T) {
	h := NewPropertyHandler(&stubPropertyService{})

	c, _ := newTestContext(t, http.MethodPost, "/properties", `{}`)
	err := h.Create(c)
	if httpStatus(t, err) != http.StatusUnauthorized {
		t.Errorf("expected 401 without auth claims, got %v", err)
	}
}

func TestPropertyHandler_Create_ValidationFails(t *testing.T) {
	stub := &stubPropertyService{
		createFn: func(ctx context.Context, actor domain.Actor, input ports.CreatePropertyInput) (*domain.Property, error) {
			t.Fatal("service must not be called on invalid payload")
			return nil, nil
		},
	}
	h := NewPropertyHandler(stub)

	// Title too short, description missing.
	body := `{"title": "tiny", "location": {"address": "A", "city": "B"}, "price": 1, "size": 1, "bedrooms": 1}`
	c, _ := newTestContext(t, http.MethodPost, "/properties", body)
	c.Set("user_id", "owner_1")
	c.Set("role", "owner")

	err := h.Create(c)
	if httpStatus(t, err) != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestPropertyHandler_Create_InvalidJSON(t *testing.T) {
	h := NewPropertyHandler(&stubPropertyService{})

	c, _ := newTestContext(t, http.MethodPost, "/properties", "not-json")
	c.Set("user_id", "owner_1")
	c.Set("role", "owner")

	err := h.Create(c)
	if httpStatus(t, err) != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestPropertyHandler_Delete_NoContent(t *testing.T) {
	stub := &stubPropertyService{
		deleteFn: func(ctx context.Context, actor domain.Actor, id string) error {
			if id != "p_1" {
				t.Fatalf("unexpected id: %s", id)
			}
			return nil
		},
	}
	h := NewPropertyHandler(stub)

	c, rec := newTestContext(t, http.MethodDelete, "/properties/p_1", "")
	c.SetParamNames("id")
	c.SetParamValues("p_1")
	c.Set("user_id", "owner_1")
	c.Set("role", "owner")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestPropertyHandler_SetOccupancy_RejectsUnknownStatus(t *testing.T) {
	stub := &stubPropertyService{
		setOccupancyFn: func(ctx context.Context, actor domain.Actor, id, status string) (*domain.Property, error) {
			t.Fatal("service must not be called for an invalid status")
			return nil, nil
		},
	}
	h := NewPropertyHandler(stub)

	c, _ := newTestContext(t, http.MethodPut, "/properties/p_1/occupancy", `{"status":"sold"}`)
	c.SetParamNames("id")
	c.SetParamValues("p_1")
	c.Set("user_id", "owner_1")
	c.Set("role", "owner")

	err := h.SetOccupancy(c)
	if httpStatus(t, err) != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}
