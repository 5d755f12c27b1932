package handler

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"catalog-service/internal/model"
	"catalog-service/internal/sheet"
	"catalog-service/internal/store"
	"catalog-service/pkg/config"
	"catalog-service/prometheus"

	"github.com/labstack/echo/v4"
)

func newIngredientHandler(t *testing.T) *IngredientHandler {
	t.Helper()
	prometheus.InitMetrics(&config.Config{Metrics: config.MetricsConfig{Prefix: "test"}})
	return NewIngredientHandler(store.NewIngredientStore(testDB(t)))
}

func createIngredient(t *testing.T, h *IngredientHandler, uid, body string) model.Ingredient {
	t.Helper()
	c, rec := request(t, http.MethodPost, body, echo.MIMEApplicationJSON, uid)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var ing model.Ingredient
	if err := json.Unmarshal(rec.Body.Bytes(), &ing); err != nil {
		t.Fatalf("failed to decode created ingredient: %v", err)
	}
	return ing
}

func TestIngredientCreateWithAllergens(t *testing.T) {
	h := newIngredientHandler(t)

	ing := createIngredient(t, h, "owner-1",
		`{"name":"Egg White","category":"Fining Agent","allergens":["egg"," milk "]}`)

	if ing.Name != "Egg White" {
		t.Errorf("expected Egg White, got %q", ing.Name)
	}
	if !reflect.DeepEqual([]string(ing.Allergens), []string{"egg", "milk"}) {
		t.Errorf("expected trimmed allergens, got %v", ing.Allergens)
	}
}

func TestIngredientCreateRequiresName(t *testing.T) {
	h := newIngredientHandler(t)

	c, rec := request(t, http.MethodPost, `{"category":"Acid"}`, echo.MIMEApplicationJSON, "owner-1")
	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestIngredientUpdateAllergens(t *testing.T) {
	h := newIngredientHandler(t)

	ing := createIngredient(t, h, "owner-1", `{"name":"Lysozyme","allergens":["egg"]}`)

	c, rec := request(t, http.MethodPut, `{"allergens":["egg","milk"],"eNumber":"E1105"}`, echo.MIMEApplicationJSON, "owner-1")
	setParamID(c, ing.ID)
	if err := h.Update(c); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var got model.Ingredient
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode ingredient: %v", err)
	}
	if !reflect.DeepEqual([]string(got.Allergens), []string{"egg", "milk"}) {
		t.Errorf("expected allergens replaced, got %v", got.Allergens)
	}
	if got.ENumber == nil || *got.ENumber != "E1105" {
		t.Errorf("expected E1105, got %v", got.ENumber)
	}
}

func TestIngredientOwnerScopingHandler(t *testing.T) {
	h := newIngredientHandler(t)

	ing := createIngredient(t, h, "owner-1", `{"name":"Bentonite"}`)

	c, rec := request(t, http.MethodDelete, "", "", "owner-2")
	setParamID(c, ing.ID)
	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for foreign delete, got %d", rec.Code)
	}

	c, rec = request(t, http.MethodDelete, "", "", "owner-1")
	setParamID(c, ing.ID)
	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
}

func TestIngredientImportCSV(t *testing.T) {
	h := newIngredientHandler(t)

	csvBody := "Name,Category,Allergens\nSulphur Dioxide,Preservative,sulphites\n,Acid,\n"
	c, rec := uploadRequest(t, "file", "ingredients.csv", "text/csv", []byte(csvBody), "owner-1")
	if err := h.Import(c); err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Imported int                `json:"imported"`
		Errors   []string           `json:"errors"`
		Records  []model.Ingredient `json:"records"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode import response: %v", err)
	}
	if resp.Imported != 1 {
		t.Errorf("expected 1 imported row, got %d", resp.Imported)
	}
	if len(resp.Errors) != 1 || resp.Errors[0] != "Row 3: Name is required" {
		t.Errorf("expected row 3 error, got %v", resp.Errors)
	}
	if len(resp.Records) != 1 || !reflect.DeepEqual([]string(resp.Records[0].Allergens), []string{"sulphites"}) {
		t.Errorf("expected allergens parsed, got %v", resp.Records)
	}
}

func TestIngredientExportRoundTrip(t *testing.T) {
	h := newIngredientHandler(t)

	createIngredient(t, h, "owner-1", `{"name":"Casein","category":"Fining Agent","allergens":["milk","soy"]}`)

	c, rec := request(t, http.MethodGet, "", "", "owner-1")
	if err := h.Export(c); err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(got, "ingredients.xlsx") {
		t.Errorf("expected attachment disposition, got %q", got)
	}

	rows, err := sheet.Decode("ingredients.xlsx", rec.Body.Bytes())
	if err != nil {
		t.Fatalf("failed to decode exported workbook: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 exported row, got %d", len(rows))
	}

	in := sheet.IngredientInput(rows[0])
	if in.Name != "Casein" {
		t.Errorf("expected Casein, got %q", in.Name)
	}
	if !reflect.DeepEqual(in.Allergens, []string{"milk", "soy"}) {
		t.Errorf("expected allergens to survive the round trip, got %v", in.Allergens)
	}
}
