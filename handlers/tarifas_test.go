package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"valorizaciones/testhelpers"
)

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestHandleTarifaSave_Create(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	cliente := testhelpers.CreateTestCliente(t, app, "Minera Andina")
	recurso := testhelpers.CreateTestRecurso(t, app, "Ana Ruiz")

	handler := HandleTarifaSave(app)
	form := url.Values{
		"recurso":     {recurso.Id},
		"modalidad":   {"oficina"},
		"tarifa_hora": {"12.5"},
		"moneda":      {"USD"},
	}
	req := postForm("/clientes/"+cliente.Id+"/tarifas", form)
	req.SetPathValue("clienteId", cliente.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp tarifaResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.TarifaHora != 12.5 {
		t.Errorf("tarifa_hora = %v, want 12.5", resp.TarifaHora)
	}
	if resp.Modalidad != "oficina" {
		t.Errorf("modalidad = %q, want oficina", resp.Modalidad)
	}

	saved, err := app.FindRecordById("tarifas_cliente_recurso", resp.ID)
	if err != nil {
		t.Fatalf("saved tariff not found: %v", err)
	}
	if saved.GetString("moneda") != "USD" {
		t.Errorf("moneda = %q, want USD", saved.GetString("moneda"))
	}
}

func TestHandleTarifaSave_Update(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	cliente := testhelpers.CreateTestCliente(t, app, "Minera Andina")
	recurso := testhelpers.CreateTestRecurso(t, app, "Ana Ruiz")
	tarifa := testhelpers.CreateTestTarifa(t, app, cliente.Id, recurso.Id, "oficina", 10, "USD")

	handler := HandleTarifaSave(app)
	form := url.Values{
		"id":          {tarifa.Id},
		"recurso":     {recurso.Id},
		"modalidad":   {"campo"},
		"tarifa_hora": {"14"},
		"moneda":      {"USD"},
	}
	req := postForm("/clientes/"+cliente.Id+"/tarifas", form)
	req.SetPathValue("clienteId", cliente.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	updated, err := app.FindRecordById("tarifas_cliente_recurso", tarifa.Id)
	if err != nil {
		t.Fatalf("tariff not found after update: %v", err)
	}
	if updated.GetFloat("tarifa_hora") != 14 {
		t.Errorf("tarifa_hora = %v, want 14", updated.GetFloat("tarifa_hora"))
	}
	if updated.GetString("modalidad") != "campo" {
		t.Errorf("modalidad = %q, want campo", updated.GetString("modalidad"))
	}
}

func TestHandleTarifaSave_InvalidModality(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	cliente := testhelpers.CreateTestCliente(t, app, "Minera Andina")
	recurso := testhelpers.CreateTestRecurso(t, app, "Ana Ruiz")

	handler := HandleTarifaSave(app)
	form := url.Values{
		"recurso":     {recurso.Id},
		"modalidad":   {"remoto"},
		"tarifa_hora": {"10"},
	}
	req := postForm("/clientes/"+cliente.Id+"/tarifas", form)
	req.SetPathValue("clienteId", cliente.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleTarifaSave_InvalidRate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	cliente := testhelpers.CreateTestCliente(t, app, "Minera Andina")
	recurso := testhelpers.CreateTestRecurso(t, app, "Ana Ruiz")

	handler := HandleTarifaSave(app)
	for _, rate := range []string{"abc", "-5", ""} {
		form := url.Values{
			"recurso":     {recurso.Id},
			"modalidad":   {"oficina"},
			"tarifa_hora": {rate},
		}
		req := postForm("/clientes/"+cliente.Id+"/tarifas", form)
		req.SetPathValue("clienteId", cliente.Id)
		rec := httptest.NewRecorder()
		e := newTestRequestEvent(app, req, rec)

		if err := handler(e); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("rate %q: expected 400, got %d", rate, rec.Code)
		}
	}
}

func TestHandleTarifaList(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	cliente := testhelpers.CreateTestCliente(t, app, "Minera Andina")
	recurso := testhelpers.CreateTestRecurso(t, app, "Ana Ruiz")
	testhelpers.CreateTestTarifa(t, app, cliente.Id, recurso.Id, "oficina", 10, "USD")
	testhelpers.CreateTestTarifa(t, app, cliente.Id, recurso.Id, "campo", 14, "USD")

	handler := HandleTarifaList(app)
	req := httptest.NewRequest(http.MethodGet, "/clientes/"+cliente.Id+"/tarifas", nil)
	req.SetPathValue("clienteId", cliente.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Tarifas []tarifaResponse `json:"tarifas"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(resp.Tarifas) != 2 {
		t.Errorf("expected 2 tarifas, got %d", len(resp.Tarifas))
	}
}

func TestHandleTarifaList_ClientNotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandleTarifaList(app)
	req := httptest.NewRequest(http.MethodGet, "/clientes/nonexistent/tarifas", nil)
	req.SetPathValue("clienteId", "nonexistent")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleTarifaDelete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	cliente := testhelpers.CreateTestCliente(t, app, "Minera Andina")
	recurso := testhelpers.CreateTestRecurso(t, app, "Ana Ruiz")
	tarifa := testhelpers.CreateTestTarifa(t, app, cliente.Id, recurso.Id, "oficina", 10, "USD")

	handler := HandleTarifaDelete(app)
	req := httptest.NewRequest(http.MethodDelete, "/tarifas/"+tarifa.Id, nil)
	req.SetPathValue("id", tarifa.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if _, err := app.FindRecordById("tarifas_cliente_recurso", tarifa.Id); err == nil {
		t.Error("expected tariff to be deleted")
	}
}

func TestHandleTarifaDelete_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandleTarifaDelete(app)
	req := httptest.NewRequest(http.MethodDelete, "/tarifas/nonexistent", nil)
	req.SetPathValue("id", "nonexistent")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
