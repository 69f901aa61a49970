package order

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func orderRouter(svc *Service, userID, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("userRole", role)
	})
	r.POST("/orders", h.Create)
	r.GET("/orders", h.List)
	r.GET("/orders/:id", h.Get)
	r.GET("/orders/:id/slips", h.Slips)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCreateEndpoint(t *testing.T) {
	svc, _, _ := fixtureService()
	r := orderRouter(svc, "user-1", "user")

	w := doJSON(r, http.MethodPost, "/orders", `{
		"customer_id": 5,
		"dishes": [{"dish_id": 10, "requested_quantity": 2, "requested_unit": "kg"}]
	}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", w.Code, w.Body.String())
	}

	var o Order
	if err := json.Unmarshal(w.Body.Bytes(), &o); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(o.Items) != 1 || o.Items[0].ScaleFactor != 2 {
		t.Errorf("unexpected order payload: %+v", o)
	}
}

func TestCreateEndpoint_ErrorMapping(t *testing.T) {
	svc, _, _ := fixtureService()
	r := orderRouter(svc, "user-1", "user")

	cases := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", `{`, http.StatusBadRequest},
		{"unknown customer", `{"customer_id": 999, "dishes": [{"dish_id": 10, "requested_quantity": 1, "requested_unit": "kg"}]}`, http.StatusNotFound},
		{"no dishes", `{"customer_id": 5, "dishes": []}`, http.StatusBadRequest},
		{"unknown dish", `{"customer_id": 5, "dishes": [{"dish_id": 999, "requested_quantity": 1, "requested_unit": "kg"}]}`, http.StatusBadRequest},
		{"unit mismatch", `{"customer_id": 5, "dishes": [{"dish_id": 10, "requested_quantity": 1, "requested_unit": "litre"}]}`, http.StatusBadRequest},
		{"zero quantity", `{"customer_id": 5, "dishes": [{"dish_id": 10, "requested_quantity": 0, "requested_unit": "kg"}]}`, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/orders", tc.body)
			if w.Code != tc.want {
				t.Errorf("status = %d, want %d, body %s", w.Code, tc.want, w.Body.String())
			}
		})
	}
}

func TestGetEndpoint_OwnershipAndNotFound(t *testing.T) {
	svc, _, _ := fixtureService()

	owner := orderRouter(svc, "user-1", "user")
	w := doJSON(owner, http.MethodPost, "/orders", `{
		"customer_id": 5,
		"dishes": [{"dish_id": 10, "requested_quantity": 1, "requested_unit": "kg"}]
	}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", w.Code, w.Body.String())
	}

	if w := doJSON(owner, http.MethodGet, "/orders/1", ""); w.Code != http.StatusOK {
		t.Errorf("owner get: status = %d, want 200", w.Code)
	}
	if w := doJSON(owner, http.MethodGet, "/orders/999", ""); w.Code != http.StatusNotFound {
		t.Errorf("missing order: status = %d, want 404", w.Code)
	}
	if w := doJSON(owner, http.MethodGet, "/orders/abc", ""); w.Code != http.StatusBadRequest {
		t.Errorf("bad id: status = %d, want 400", w.Code)
	}

	other := orderRouter(svc, "user-2", "user")
	if w := doJSON(other, http.MethodGet, "/orders/1", ""); w.Code != http.StatusForbidden {
		t.Errorf("other user get: status = %d, want 403", w.Code)
	}

	admin := orderRouter(svc, "user-2", "admin")
	if w := doJSON(admin, http.MethodGet, "/orders/1", ""); w.Code != http.StatusOK {
		t.Errorf("admin get: status = %d, want 200", w.Code)
	}
}

func TestSlipsEndpoint(t *testing.T) {
	svc, _, _ := fixtureService()
	r := orderRouter(svc, "user-1", "user")

	w := doJSON(r, http.MethodPost, "/orders", `{
		"customer_id": 5,
		"dishes": [
			{"dish_id": 10, "requested_quantity": 2, "requested_unit": "kg"},
			{"dish_id": 10, "requested_quantity": 1, "requested_unit": "kg"}
		]
	}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodGet, "/orders/1/slips", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		IngredientSlip IngredientSlip `json:"ingredientSlip"`
		OrderSlip      OrderSlip      `json:"orderSlip"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}

	// Rice 2+1, Salt 20+10, Water 3+1.5 merged across both items.
	want := []SlipItem{
		{Name: "Rice", Amount: 3, Unit: "kg"},
		{Name: "Salt", Amount: 30, Unit: "g"},
		{Name: "Water", Amount: 4.5, Unit: "litre"},
	}
	if len(resp.IngredientSlip.Items) != len(want) {
		t.Fatalf("expected %d merged lines, got %+v", len(want), resp.IngredientSlip.Items)
	}
	for i, wantItem := range want {
		if resp.IngredientSlip.Items[i] != wantItem {
			t.Errorf("item %d = %+v, want %+v", i, resp.IngredientSlip.Items[i], wantItem)
		}
	}
	if len(resp.OrderSlip.Dishes) != 2 {
		t.Errorf("expected 2 dish summaries, got %+v", resp.OrderSlip.Dishes)
	}
}
