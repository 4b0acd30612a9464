// Package tms implements the HTTP client for the Test Management System
// API. Every call blocks the caller and either succeeds with a parsed
// payload or fails atomically.
package tms

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/devicelab-dev/tms-tool/pkg/core"
	"github.com/devicelab-dev/tms-tool/pkg/logger"
)

// Client handles HTTP communication with the TMS server.
type Client struct {
	baseURL  string
	email    string
	password string
	token    string
	client   *http.Client
	log      *logger.Logger
}

// NewClient creates a new TMS client. Authenticate must be called
// before any other operation.
func NewClient(baseURL, email, password string, log *logger.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		email:    email,
		password: password,
		client: &http.Client{
			Timeout: 2 * time.Minute,
		},
		log: log,
	}
}

// Authenticate signs in and stores the bearer token used on all
// subsequent requests.
func (c *Client) Authenticate() error {
	var resp signInResponse
	err := c.post("/users/signin", signInRequest{Email: c.email, Password: c.password}, &resp)
	if err != nil {
		return fmt.Errorf("sign-in failed: %w", err)
	}
	if resp.AccessToken == "" {
		return errors.New("sign-in response carried no access token")
	}
	c.token = resp.AccessToken
	c.log.Info("authenticated as %s", c.email)
	return nil
}

// Projects returns the projects the user has access to.
func (c *Client) Projects() ([]core.Project, error) {
	var wire []wireProject
	if err := c.get("/projects?onlyUserProjects=true", &wire); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	projects := make([]core.Project, 0, len(wire))
	for _, p := range wire {
		projects = append(projects, core.Project{
			ID:        p.ID,
			Name:      p.Name,
			Detail:    p.Detail,
			IsPublic:  p.IsPublic,
			CreatedAt: p.CreatedAt,
		})
	}
	return projects, nil
}

// ProjectTree returns the folder/case structure of a project.
func (c *Client) ProjectTree(projectID int) (*core.ProjectTree, error) {
	var wire wireTree
	if err := c.get("/home/"+strconv.Itoa(projectID), &wire); err != nil {
		return nil, fmt.Errorf("failed to load project %d structure: %w", projectID, err)
	}
	tree := &core.ProjectTree{}
	for _, f := range wire.Folders {
		node := core.TreeFolder{ID: f.ID, Name: f.Name, Detail: f.Detail}
		for _, cs := range f.Cases {
			node.Cases = append(node.Cases, core.CaseRef{ID: cs.ID, Title: cs.Title})
		}
		tree.Folders = append(tree.Folders, node)
	}
	return tree, nil
}

// Folders lists the folders of a project.
func (c *Client) Folders(projectID int) ([]core.Folder, error) {
	var wire []wireFolder
	if err := c.get("/folders?projectId="+strconv.Itoa(projectID), &wire); err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	folders := make([]core.Folder, 0, len(wire))
	for _, f := range wire {
		folders = append(folders, *f.toFolder())
	}
	return folders, nil
}

// Folder fetches a single folder by id. A missing folder is not an
// error: the result is (nil, nil).
func (c *Client) Folder(folderID int) (*core.Folder, error) {
	var wire wireFolder
	err := c.get("/folders/"+strconv.Itoa(folderID), &wire)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch folder %d: %w", folderID, err)
	}
	return wire.toFolder(), nil
}

// CreateFolder creates a folder in the project.
func (c *Client) CreateFolder(projectID int, name, detail string, parentID *int) (*core.Folder, error) {
	req := createFolderRequest{Name: name, Detail: detail, ParentFolderID: parentID}
	var wire wireFolder
	if err := c.post("/folders?projectId="+strconv.Itoa(projectID), req, &wire); err != nil {
		return nil, fmt.Errorf("failed to create folder %q: %w", name, err)
	}
	c.log.Info("created folder %q (id %d) in project %d", wire.Name, wire.ID, projectID)
	return wire.toFolder(), nil
}

// Case fetches the detailed record of a test case, steps included.
func (c *Client) Case(caseID int) (*core.Case, error) {
	var wire wireCase
	if err := c.get("/cases/"+strconv.Itoa(caseID), &wire); err != nil {
		return nil, fmt.Errorf("failed to fetch case %d: %w", caseID, err)
	}
	return wire.toCase(), nil
}

// CreateCase creates a case record (metadata only, no steps) in the
// folder and returns the new case id.
func (c *Client) CreateCase(folderID int, kase *core.Case) (int, error) {
	req := createCaseRequest{
		Title:            kase.Title,
		State:            kase.State,
		Priority:         kase.Priority,
		Type:             kase.Type,
		AutomationStatus: kase.AutomationStatus,
		Description:      kase.Description,
		Template:         int(kase.Template),
		PreConditions:    kase.PreConditions,
		ExpectedResults:  kase.ExpectedResults,
	}
	var wire wireCase
	if err := c.post("/cases?folderId="+strconv.Itoa(folderID), req, &wire); err != nil {
		return 0, fmt.Errorf("failed to create case %q: %w", kase.Title, err)
	}
	if wire.ID == 0 {
		return 0, fmt.Errorf("create response for case %q carried no id", kase.Title)
	}
	return wire.ID, nil
}

// UpdateSteps replaces the step list of a case. Each pushed step gets a
// fresh synthetic local uid and is marked as newly added, which is what
// the steps/update endpoint expects for steps it has never seen.
func (c *Client) UpdateSteps(caseID int, steps []core.Step) error {
	payload := make([]updateStep, 0, len(steps))
	for i, s := range steps {
		payload = append(payload, updateStep{
			ID:        0,
			Step:      s.Step,
			Result:    s.Result,
			UID:       "uid" + strconv.Itoa(i),
			EditState: "new",
			CaseSteps: wireCaseSteps{StepNo: s.StepNo},
		})
	}
	c.log.Debug("pushing %d steps to case %d", len(payload), caseID)
	if err := c.post("/steps/update?caseId="+strconv.Itoa(caseID), payload, nil); err != nil {
		return fmt.Errorf("failed to update steps of case %d: %w", caseID, err)
	}
	return nil
}

// HTTP Helpers

// apiError is returned for non-2xx responses.
type apiError struct {
	status int
	body   string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.status, e.body)
}

func isNotFound(err error) bool {
	var ae *apiError
	return errors.As(err, &ae) && ae.status == http.StatusNotFound
}

func (c *Client) get(path string, out interface{}) error {
	return c.request(http.MethodGet, path, nil, out)
}

func (c *Client) post(path string, body, out interface{}) error {
	return c.request(http.MethodPost, path, body, out)
}

func (c *Client) request(method, path string, body, out interface{}) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Error("%s %s: %v", method, path, err)
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		ae := &apiError{status: resp.StatusCode, body: strings.TrimSpace(string(respBody))}
		c.log.Error("%s %s: %v", method, path, ae)
		return ae
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
