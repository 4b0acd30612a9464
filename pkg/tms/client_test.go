package tms

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/devicelab-dev/tms-tool/pkg/core"
	"github.com/devicelab-dev/tms-tool/pkg/logger"
)

func jsonResponse(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func testClient(serverURL string) *Client {
	c := NewClient(serverURL, "user@example.com", "secret", logger.Discard())
	c.token = "test-token"
	return c
}

func TestAuthenticate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/users/signin" {
			t.Errorf("expected POST /users/signin, got %s %s", r.Method, r.URL.Path)
		}
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		if req["email"] != "user@example.com" || req["password"] != "secret" {
			t.Errorf("unexpected credentials: %v", req)
		}
		jsonResponse(w, map[string]string{"access_token": "abc123"})
	}))
	defer server.Close()

	c := NewClient(server.URL, "user@example.com", "secret", logger.Discard())
	if err := c.Authenticate(); err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if c.token != "abc123" {
		t.Errorf("expected token abc123, got %q", c.token)
	}
}

func TestAuthenticate_NoToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, map[string]string{})
	}))
	defer server.Close()

	c := NewClient(server.URL, "user@example.com", "secret", logger.Discard())
	if err := c.Authenticate(); err == nil {
		t.Error("expected error when the response carries no token")
	}
}

func TestAuthenticate_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	}))
	defer server.Close()

	c := NewClient(server.URL, "user@example.com", "wrong", logger.Discard())
	if err := c.Authenticate(); err == nil {
		t.Error("expected error for rejected sign-in")
	}
}

func TestProjects_SendsBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("expected bearer token header, got %q", got)
		}
		if r.URL.RawQuery != "onlyUserProjects=true" {
			t.Errorf("unexpected query: %q", r.URL.RawQuery)
		}
		jsonResponse(w, []map[string]interface{}{
			{"id": 1, "name": "Web", "detail": "frontend", "isPublic": true, "createdAt": "2025-01-01"},
			{"id": 2, "name": "API"},
		})
	}))
	defer server.Close()

	projects, err := testClient(server.URL).Projects()
	if err != nil {
		t.Fatalf("Projects failed: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(projects))
	}
	if projects[0].Name != "Web" || !projects[0].IsPublic {
		t.Errorf("unexpected first project: %+v", projects[0])
	}
}

func TestProjectTree(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/home/12" {
			t.Errorf("expected /home/12, got %s", r.URL.Path)
		}
		jsonResponse(w, map[string]interface{}{
			"Folders": []map[string]interface{}{
				{"id": 7, "name": "Auth", "Cases": []map[string]interface{}{
					{"id": 100, "title": "Login"},
					{"id": 101, "title": "Logout"},
				}},
				{"id": 8, "name": "Empty"},
			},
		})
	}))
	defer server.Close()

	tree, err := testClient(server.URL).ProjectTree(12)
	if err != nil {
		t.Fatalf("ProjectTree failed: %v", err)
	}
	if len(tree.Folders) != 2 {
		t.Fatalf("expected 2 folders, got %d", len(tree.Folders))
	}
	if tree.CaseCount() != 2 {
		t.Errorf("expected 2 cases total, got %d", tree.CaseCount())
	}
	if tree.Folders[0].Cases[0].ID != 100 {
		t.Errorf("unexpected first case ref: %+v", tree.Folders[0].Cases[0])
	}
}

func TestFolder_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	folder, err := testClient(server.URL).Folder(99)
	if err != nil {
		t.Fatalf("missing folder must not be an error, got %v", err)
	}
	if folder != nil {
		t.Errorf("expected nil folder, got %+v", folder)
	}
}

func TestFolder_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := testClient(server.URL).Folder(99)
	if err == nil {
		t.Error("expected error for server failure")
	}
}

func TestCreateFolder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/folders" {
			t.Errorf("expected POST /folders, got %s %s", r.Method, r.URL.Path)
		}
		if r.URL.Query().Get("projectId") != "12" {
			t.Errorf("unexpected projectId: %q", r.URL.Query().Get("projectId"))
		}
		var req map[string]interface{}
		json.NewDecoder(r.Body).Decode(&req)
		if req["name"] != "Regression" {
			t.Errorf("unexpected body: %v", req)
		}
		if _, ok := req["parentFolderId"]; !ok {
			t.Error("expected parentFolderId key in body")
		}
		jsonResponse(w, map[string]interface{}{"id": 42, "name": "Regression", "detail": "d"})
	}))
	defer server.Close()

	folder, err := testClient(server.URL).CreateFolder(12, "Regression", "d", nil)
	if err != nil {
		t.Fatalf("CreateFolder failed: %v", err)
	}
	if folder.ID != 42 || folder.Name != "Regression" {
		t.Errorf("unexpected folder: %+v", folder)
	}
}

func TestCase_StepsSortedByStepNo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cases/100" {
			t.Errorf("expected /cases/100, got %s", r.URL.Path)
		}
		jsonResponse(w, map[string]interface{}{
			"id": 100, "title": "Login", "template": 1,
			"Steps": []map[string]interface{}{
				{"step": "Second", "result": "B", "caseSteps": map[string]int{"stepNo": 2}},
				{"step": "First", "result": "A", "caseSteps": map[string]int{"stepNo": 1}},
			},
		})
	}))
	defer server.Close()

	c, err := testClient(server.URL).Case(100)
	if err != nil {
		t.Fatalf("Case failed: %v", err)
	}
	if c.ID != "100" || c.Template != core.TemplateStepwise {
		t.Errorf("unexpected case: %+v", c)
	}
	if len(c.Steps) != 2 || c.Steps[0].Step != "First" || c.Steps[1].Step != "Second" {
		t.Errorf("steps not in stepNo order: %+v", c.Steps)
	}
}

func TestCreateCase(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cases" || r.URL.Query().Get("folderId") != "7" {
			t.Errorf("expected POST /cases?folderId=7, got %s?%s", r.URL.Path, r.URL.RawQuery)
		}
		var req map[string]interface{}
		json.NewDecoder(r.Body).Decode(&req)
		if req["title"] != "Login" {
			t.Errorf("unexpected body: %v", req)
		}
		if _, ok := req["Steps"]; ok {
			t.Error("create payload must not carry steps")
		}
		jsonResponse(w, map[string]interface{}{"id": 555, "title": "Login"})
	}))
	defer server.Close()

	id, err := testClient(server.URL).CreateCase(7, &core.Case{Title: "Login", Priority: 1})
	if err != nil {
		t.Fatalf("CreateCase failed: %v", err)
	}
	if id != 555 {
		t.Errorf("expected case id 555, got %d", id)
	}
}

func TestUpdateSteps_PayloadShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/steps/update" || r.URL.Query().Get("caseId") != "555" {
			t.Errorf("expected POST /steps/update?caseId=555, got %s?%s", r.URL.Path, r.URL.RawQuery)
		}
		var steps []map[string]interface{}
		json.NewDecoder(r.Body).Decode(&steps)
		if len(steps) != 2 {
			t.Fatalf("expected 2 steps, got %d", len(steps))
		}
		first := steps[0]
		if first["id"] != float64(0) || first["uid"] != "uid0" || first["editState"] != "new" {
			t.Errorf("unexpected first step payload: %v", first)
		}
		if steps[1]["uid"] != "uid1" {
			t.Errorf("uids must be sequential, got %v", steps[1]["uid"])
		}
		cs, _ := first["caseSteps"].(map[string]interface{})
		if cs["stepNo"] != float64(1) {
			t.Errorf("unexpected caseSteps: %v", first["caseSteps"])
		}
		jsonResponse(w, map[string]string{"status": "ok"})
	}))
	defer server.Close()

	err := testClient(server.URL).UpdateSteps(555, []core.Step{
		{StepNo: 1, Step: "1. Open", Result: "ok"},
		{StepNo: 2, Step: "2. Click", Result: "ok"},
	})
	if err != nil {
		t.Fatalf("UpdateSteps failed: %v", err)
	}
}

func TestUpdateSteps_Failure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad payload", http.StatusBadRequest)
	}))
	defer server.Close()

	err := testClient(server.URL).UpdateSteps(1, []core.Step{{StepNo: 1, Step: "x"}})
	if err == nil {
		t.Error("expected error for failed step update")
	}
}
