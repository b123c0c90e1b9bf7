package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justsurfingit/job-description-generator/internal/client"
	"github.com/justsurfingit/job-description-generator/internal/config"
	"github.com/justsurfingit/job-description-generator/internal/database"
	"github.com/justsurfingit/job-description-generator/internal/document"
	"github.com/justsurfingit/job-description-generator/internal/dtos"
	"github.com/justsurfingit/job-description-generator/internal/models"
	"github.com/justsurfingit/job-description-generator/internal/services"
)

const generatedText = `**Job Overview**
We are hiring a backend engineer to build reliable services.

**Key Responsibilities**
- Design APIs
- Operate Postgres

**How to Apply**
Send your CV to jobs@acme.com`

type fakeLLM struct {
	err error
}

func (f *fakeLLM) GenerateText(context.Context, string) (string, error) {
	return generatedText, f.err
}

type fakeGenerator struct {
	calls int
	err   error
}

func (f *fakeGenerator) Generate(_ context.Context, in dtos.JobInput) (*dtos.GenerateResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	details := services.DetailsFor(in)
	return &dtos.GenerateResponse{Success: true, JobDescription: generatedText, JobDetails: &details}, nil
}

type testServer struct {
	router *gin.Engine
	gen    *fakeGenerator
	jobs   *services.JobService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg, err := config.FromEnv(func(string) string { return "" })
	require.NoError(t, err)

	gen := &fakeGenerator{}
	jobs := services.NewJobService(database.NewMemoryStore())
	router := NewRouter(
		NewJobHandler(services.NewGenerationService(&fakeLLM{})),
		NewDescriptionHandler(services.NewFormService(gen, jobs), document.NewExporter()),
		CORSConfig(cfg),
	)
	return &testServer{router: router, gen: gen, jobs: jobs}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func jsonRequest(method, path string, body interface{}) *http.Request {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, strings.NewReader(string(raw)))
	req.Header.Set("Content-Type", "application/json")
	return req
}

var validForm = url.Values{
	"jobTitle":        {"backend engineer"},
	"companyName":     {"acme"},
	"companyEmail":    {"jobs@acme.com"},
	"city":            {"austin"},
	"state":           {"texas"},
	"jobType":         {"full-time"},
	"experienceLevel": {"mid"},
	"degree":          {"BSc"},
	"skillsKnown":     {"Go"},
	"salary":          {"$100k"},
}

func formRequest(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/descriptions", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func (s *testServer) create(t *testing.T) dtos.DescriptionResponse {
	t.Helper()
	w := s.do(formRequest(validForm))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp dtos.DescriptionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)
	w := s.do(httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestGenerateEndpoint(t *testing.T) {
	s := newTestServer(t)
	in := dtos.JobInput{
		JobTitle: "backend engineer", CompanyName: "acme", CompanyEmail: "jobs@acme.com",
		City: "austin", State: "texas", JobType: "full-time", ExperienceLevel: "mid",
		Degree: "BSc", SkillsKnown: "Go", Salary: "$100k",
	}

	w := s.do(jsonRequest(http.MethodPost, "/generate", in))
	require.Equal(t, http.StatusOK, w.Code)

	var resp dtos.GenerateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, generatedText, resp.JobDescription)
	assert.Equal(t, "Backend Engineer", resp.JobDetails.Title)
	assert.Equal(t, "Mid Level (3-5 years)", resp.JobDetails.ExperienceLevel)
}

func TestGenerateEndpoint_MissingFieldStaysHTTP200(t *testing.T) {
	s := newTestServer(t)
	w := s.do(jsonRequest(http.MethodPost, "/generate", dtos.JobInput{JobTitle: "x"}))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Missing required field: companyName","message":"Please fill in the company name field."}`, w.Body.String())
}

func TestGenerateEndpoint_InvalidJSON(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")

	w := s.do(req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestCreateDescription_Form(t *testing.T) {
	s := newTestServer(t)
	resp := s.create(t)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "result", resp.State)
	assert.False(t, resp.Fallback)
	assert.Equal(t, "Backend Engineer", resp.JobDetails.Title)
	assert.Contains(t, resp.HTML, `<h3 class="jd-heading">Key Responsibilities</h3>`)
	assert.Contains(t, resp.HTML, "<li>Design APIs</li>")
	assert.Equal(t, []dtos.Toast{{Kind: "success", Message: "Job description generated successfully!"}}, resp.Toasts)
	assert.Equal(t, 1, s.gen.calls)
}

func TestCreateDescription_JSON(t *testing.T) {
	s := newTestServer(t)
	in := dtos.JobInput{
		JobTitle: "designer", CompanyName: "acme", CompanyEmail: "jobs@acme.com",
		City: "austin", State: "texas", JobType: "contract", ExperienceLevel: "entry",
		Degree: "BA", SkillsKnown: "Figma",
	}

	w := s.do(jsonRequest(http.MethodPost, "/api/v1/descriptions", in))
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestCreateDescription_MissingFields(t *testing.T) {
	s := newTestServer(t)
	values := url.Values{}
	for k, v := range validForm {
		values[k] = v
	}
	values.Set("city", "   ")
	values.Del("degree")

	w := s.do(formRequest(values))
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Error   string       `json:"error"`
		Missing []string     `json:"missing"`
		State   string       `json:"state"`
		Toasts  []dtos.Toast `json:"toasts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Please fill in all required fields", body.Error)
	assert.Equal(t, []string{"city", "degree"}, body.Missing)
	assert.Equal(t, "idle", body.State)
	assert.Equal(t, "error", body.Toasts[0].Kind)
	assert.Zero(t, s.gen.calls)
}

func TestCreateDescription_NetworkFailureFallsBack(t *testing.T) {
	s := newTestServer(t)
	s.gen.err = &client.Error{Kind: client.KindNetwork, Message: "Network error - please check your connection and try again.", Cause: errors.New("dial tcp: refused")}

	resp := s.create(t)

	assert.Equal(t, "error", resp.State)
	assert.True(t, resp.Fallback)
	assert.Contains(t, resp.HTML, "Please send your application to jobs@acme.com")
	require.Len(t, resp.Toasts, 2)
	assert.Equal(t, "info", resp.Toasts[1].Kind)
}

func TestCreateDescription_ApplicationFailure(t *testing.T) {
	s := newTestServer(t)
	s.gen.err = &client.Error{Kind: client.KindApplication, Message: "Please fill in the salary field."}

	w := s.do(formRequest(validForm))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Please fill in the salary field.")
}

func TestGetAndRegenerate(t *testing.T) {
	s := newTestServer(t)
	created := s.create(t)

	w := s.do(httptest.NewRequest(http.MethodGet, "/api/v1/descriptions/"+created.ID, nil))
	require.Equal(t, http.StatusOK, w.Code)
	var got dtos.DescriptionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.HTML, got.HTML)

	w = s.do(httptest.NewRequest(http.MethodPost, "/api/v1/descriptions/"+created.ID+"/regenerate", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var regenerated dtos.DescriptionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &regenerated))
	assert.Equal(t, created.ID, regenerated.ID)
	assert.Equal(t, 2, s.gen.calls)
}

func TestUnknownDescription(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/api/v1/descriptions/nope", "/api/v1/descriptions/nope/preview", "/api/v1/descriptions/nope/pdf"} {
		w := s.do(httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestPreview(t *testing.T) {
	s := newTestServer(t)
	created := s.create(t)

	w := s.do(httptest.NewRequest(http.MethodGet, "/api/v1/descriptions/"+created.ID+"/preview", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "Key Responsibilities")
	assert.NotContains(t, w.Body.String(), "Send your CV")
}

func TestPDF(t *testing.T) {
	s := newTestServer(t)
	created := s.create(t)

	w := s.do(httptest.NewRequest(http.MethodGet, "/api/v1/descriptions/"+created.ID+"/pdf", nil))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="backend_engineer_position_description.pdf"`, w.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
}

func TestExportOfEmptyDescriptionWarns(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.jobs.Store.Save(context.Background(), &models.JobDescription{ID: "empty"}))

	w := s.do(httptest.NewRequest(http.MethodGet, "/api/v1/descriptions/empty/pdf", nil))
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "No job description to download. Please generate one first.")
	assert.Contains(t, w.Body.String(), `"kind":"warning"`)

	w = s.do(httptest.NewRequest(http.MethodGet, "/api/v1/descriptions/empty/preview", nil))
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "No job description to preview. Please generate one first.")
}

func TestRouterWithoutGeneratorBackend(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg, err := config.FromEnv(func(string) string { return "" })
	require.NoError(t, err)

	forms := services.NewFormService(&fakeGenerator{}, services.NewJobService(database.NewMemoryStore()))
	router := NewRouter(nil, NewDescriptionHandler(forms, document.NewExporter()), CORSConfig(cfg))
	s := &testServer{router: router}

	w := s.do(jsonRequest(http.MethodPost, "/generate", dtos.JobInput{JobTitle: "x"}))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(formRequest(validForm))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCORSAllowsConfiguredOrigins(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("Origin", "http://example.com")

	w := s.do(req)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
