package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"shelter-match/internal/router"
)

func TestHTTP_EndToEnd_AdoptionJourney(t *testing.T) {
	// Forzar repos in-memory, sin tocar env del host.
	t.Setenv("DB_DSN", "")
	t.Setenv("SQLITE_PATH", "")

	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	// 1) Catálogo: dos disponibles y uno pendiente
	{
		st, body := doReq(t, ts.URL, "POST", "/animals", []map[string]any{
			{
				"id": "animal-luna", "name": "Luna", "species": "dog", "breed": "beagle",
				"energy_level": "high", "age_months": 36, "good_with_children": "unknown",
				"space_requirement": "small", "special_needs": false, "adoption_status": "available",
			},
			{
				"id": "animal-rex", "name": "Rex", "species": "dog", "breed": "german_shepherd",
				"energy_level": "high", "age_months": 8, "good_with_children": "no",
				"space_requirement": "large", "special_needs": true, "adoption_status": "available",
			},
			{
				"id": "animal-max", "name": "Max", "species": "cat", "breed": "siamese",
				"energy_level": "low", "age_months": 24, "good_with_children": "yes",
				"space_requirement": "small", "special_needs": false, "adoption_status": "pending",
			},
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 ingest, got %d body=%s", st, string(body))
		}

		var res struct {
			Accepted int `json:"accepted"`
			Skipped  int `json:"skipped"`
		}
		_ = json.Unmarshal(body, &res)
		if res.Accepted != 3 || res.Skipped != 0 {
			t.Fatalf("unexpected ingest result: %s", string(body))
		}
	}

	// 2) Nueva sesión
	var sessionID string
	{
		st, body := doReq(t, ts.URL, "POST", "/sessions", nil)
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create session, got %d body=%s", st, string(body))
		}
		var resp struct {
			ID    string `json:"id"`
			Stage string `json:"stage"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.ID == "" || resp.Stage != "CREATED" {
			t.Fatalf("unexpected session: %s", string(body))
		}
		sessionID = resp.ID
	}

	// 3) Matching antes de perfil => 409
	{
		st, _ := doReq(t, ts.URL, "POST", "/sessions/"+sessionID+"/match", nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 matching without profile, got %d", st)
		}
	}

	// 4) Perfil inválido => 400 y la sesión sigue en CREATED
	{
		st, _ := doReq(t, ts.URL, "POST", "/sessions/"+sessionID+"/profile", map[string]any{
			"id": "adopter-jane", "experience_level": "expert",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 invalid profile, got %d", st)
		}
	}

	// 5) Perfil válido => PROFILED
	{
		st, body := doReq(t, ts.URL, "POST", "/sessions/"+sessionID+"/profile", map[string]any{
			"id":                              "adopter-jane",
			"experience_level":                "some",
			"home_environment":                "apartment",
			"activity_level":                  "high",
			"has_children":                    false,
			"time_availability_hours_per_day": 2,
			"housing_allows_pets":             true,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 attach profile, got %d body=%s", st, string(body))
		}
	}

	// 6) Matching => MATCHED, pendiente excluido, Luna primera
	{
		st, body := doReq(t, ts.URL, "POST", "/sessions/"+sessionID+"/match", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 match, got %d body=%s", st, string(body))
		}

		var resp struct {
			Session struct {
				Stage   string `json:"stage"`
				Matches []struct {
					AnimalID string  `json:"animal_id"`
					Score    float64 `json:"score"`
					RiskFlag bool    `json:"risk_flag"`
				} `json:"matches"`
			} `json:"session"`
			Stats struct {
				Candidates  int `json:"candidates"`
				Unavailable int `json:"unavailable"`
				Scored      int `json:"scored"`
			} `json:"stats"`
		}
		_ = json.Unmarshal(body, &resp)

		if resp.Session.Stage != "MATCHED" {
			t.Fatalf("expected MATCHED, got %s", resp.Session.Stage)
		}
		if resp.Stats.Candidates != 3 || resp.Stats.Unavailable != 1 || resp.Stats.Scored != 2 {
			t.Fatalf("unexpected rank stats: %+v", resp.Stats)
		}
		if len(resp.Session.Matches) != 2 || resp.Session.Matches[0].AnimalID != "animal-luna" {
			t.Fatalf("expected Luna ranked first: %s", string(body))
		}
		for _, m := range resp.Session.Matches {
			if m.AnimalID == "animal-max" {
				t.Fatalf("pending animal must never appear in ranking")
			}
		}
	}

	// 7) Selección fuera del ranking => 400
	{
		st, _ := doReq(t, ts.URL, "POST", "/sessions/"+sessionID+"/select", map[string]any{
			"animal_id": "animal-max",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 selecting outside ranking, got %d", st)
		}
	}

	// 8) Selección válida => ENGAGED con context note
	{
		st, body := doReq(t, ts.URL, "POST", "/sessions/"+sessionID+"/select", map[string]any{
			"animal_id": "animal-luna",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 select, got %d body=%s", st, string(body))
		}
		var resp struct {
			Stage       string `json:"stage"`
			ContextNote string `json:"context_note"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Stage != "ENGAGED" || resp.ContextNote == "" {
			t.Fatalf("unexpected session after select: %s", string(body))
		}
	}

	// 9) Contexto para el colaborador de soporte
	{
		st, body := doReq(t, ts.URL, "GET", "/sessions/"+sessionID+"/support-context", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 support context, got %d body=%s", st, string(body))
		}
		var resp struct {
			Selected struct {
				AnimalID string `json:"animal_id"`
			} `json:"selected"`
			ContextNote string `json:"context_note"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Selected.AnimalID != "animal-luna" || resp.ContextNote == "" {
			t.Fatalf("unexpected support context: %s", string(body))
		}
	}

	// 10) Cierre con outcome => CLOSED
	{
		st, body := doReq(t, ts.URL, "POST", "/sessions/"+sessionID+"/close", map[string]any{
			"outcome":  "adopted",
			"feedback": "Luna is perfect",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 close, got %d body=%s", st, string(body))
		}
	}

	// 11) Transición desde terminal => 409
	{
		st, _ := doReq(t, ts.URL, "POST", "/sessions/"+sessionID+"/abandon", nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 transition from CLOSED, got %d", st)
		}
	}

	// 12) Journal con la secuencia completa
	{
		st, body := doReq(t, ts.URL, "GET", "/sessions/"+sessionID+"/events", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 events, got %d body=%s", st, string(body))
		}
		var events []struct {
			Type  string `json:"type"`
			Stage string `json:"stage"`
		}
		_ = json.Unmarshal(body, &events)
		if len(events) != 5 {
			t.Fatalf("expected 5 journal events, got %s", string(body))
		}
		if events[0].Type != "SESSION_STARTED" || events[4].Type != "SESSION_CLOSED" {
			t.Fatalf("unexpected journal sequence: %s", string(body))
		}
	}

	// 13) Stats agregadas
	{
		st, body := doReq(t, ts.URL, "GET", "/sessions/stats", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 stats, got %d body=%s", st, string(body))
		}
		var resp struct {
			Total         int `json:"total"`
			WithSelection int `json:"with_selection"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Total != 1 || resp.WithSelection != 1 {
			t.Fatalf("unexpected stats: %s", string(body))
		}
	}
}

func TestHTTP_UnknownSessionIs404(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("SQLITE_PATH", "")

	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	st, _ := doReq(t, ts.URL, "GET", "/sessions/no-such-session", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown session, got %d", st)
	}
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
