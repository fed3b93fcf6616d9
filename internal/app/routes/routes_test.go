package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/degreeplan/internal/app/audit"
	"github.com/yigit/degreeplan/internal/app/catalog"
	"github.com/yigit/degreeplan/internal/app/controllers"
	"github.com/yigit/degreeplan/internal/app/gened"
	"github.com/yigit/degreeplan/internal/app/models"
	"github.com/yigit/degreeplan/internal/app/models/dto"
	"github.com/yigit/degreeplan/internal/app/planner"
	"github.com/yigit/degreeplan/internal/app/routes"
	"github.com/yigit/degreeplan/internal/app/scheduling"
	"github.com/yigit/degreeplan/internal/app/services"
	"github.com/yigit/degreeplan/internal/middleware"
	"github.com/yigit/degreeplan/internal/pkg/auth"
	"github.com/yigit/degreeplan/internal/pkg/logger"
	"github.com/yigit/degreeplan/internal/testutils"
)

type env struct {
	router  *gin.Engine
	store   *testutils.Store
	jwt     *auth.JWTService
	student string
	advisor string
}

func setup(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cat, err := catalog.Default()
	require.NoError(t, err)
	solver := gened.NewSolver(cat.GenEd)
	router, err := audit.NewRouter(cat, solver)
	require.NoError(t, err)

	store := testutils.NewStore()
	engine := scheduling.NewEngine(store, store, scheduling.WithLogger(logger.Nop()))
	p := planner.New(router, solver, engine, store, store, planner.WithLogger(logger.Nop()))
	auditService := services.NewAuditService(router, engine, store, store, logger.Nop())
	scheduleService := services.NewScheduleService(p, engine, store, store, logger.Nop())

	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Minute})
	g := gin.New()
	g.Use(middleware.RequestID())
	routes.SetupRouter(g,
		controllers.NewAuditController(auditService),
		controllers.NewScheduleController(scheduleService),
		middleware.NewAuthMiddleware(jwtService),
	)

	student, err := jwtService.GenerateAccessToken(10, 1, string(models.RoleStudent))
	require.NoError(t, err)
	advisor, err := jwtService.GenerateAccessToken(20, 0, string(models.RoleAdvisor))
	require.NoError(t, err)
	return &env{router: g, store: store, jwt: jwtService, student: student, advisor: advisor}
}

func (e *env) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    dto.ErrorCode   `json:"code"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	if data != nil && resp.Data != nil {
		require.NoError(t, json.Unmarshal(resp.Data, data))
	}
	return resp
}

func TestPing(t *testing.T) {
	e := setup(t)
	w := e.do(t, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestAuthentication(t *testing.T) {
	e := setup(t)
	e.store.AddStudent(1, "CS")
	e.store.AddStudent(2, "CS")

	assert.Equal(t, http.StatusUnauthorized, e.do(t, http.MethodGet, "/api/v1/students/1/audit", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, e.do(t, http.MethodGet, "/api/v1/students/1/audit", "not-a-token", nil).Code)
	assert.Equal(t, http.StatusOK, e.do(t, http.MethodGet, "/api/v1/students/1/audit", e.student, nil).Code)

	w := e.do(t, http.MethodGet, "/api/v1/students/2/audit", e.student, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, dto.ErrorCodeForbidden, decode(t, w, nil).Error.Code)

	assert.Equal(t, http.StatusOK, e.do(t, http.MethodGet, "/api/v1/students/2/audit", e.advisor, nil).Code)
}

func TestGetAudit(t *testing.T) {
	e := setup(t)
	e.store.AddStudent(1, "CS", testutils.ComputerScienceAllButCapstone...)
	e.store.AddStudent(3, "PHYS")

	w := e.do(t, http.MethodGet, "/api/v1/students/1/audit", e.student, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var a dto.AuditResponse
	decode(t, w, &a)
	assert.Equal(t, "CS", a.Department)
	assert.False(t, a.Complete)
	assert.Equal(t, []string{"Capstone: 1 more course needed from CS 499"}, a.Missing)
	assert.Len(t, a.Results, 10)

	w = e.do(t, http.MethodGet, "/api/v1/students/1/audit/missing", e.student, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var m dto.MissingRequirementsResponse
	decode(t, w, &m)
	assert.Equal(t, a.Missing, m.Missing)

	w = e.do(t, http.MethodGet, "/api/v1/students/3/audit", e.advisor, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, dto.ErrorCodeConfiguration, decode(t, w, nil).Error.Code)

	assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodGet, "/api/v1/students/77/audit", e.advisor, nil).Code)
	assert.Equal(t, http.StatusBadRequest, e.do(t, http.MethodGet, "/api/v1/students/abc/audit", e.advisor, nil).Code)
}

func TestGenerateSchedule(t *testing.T) {
	e := setup(t)
	for _, c := range testutils.Courses() {
		e.store.AddOffering(c.Code, models.ScheduleTBD)
	}
	e.store.AddStudent(1, "CS")

	path := fmt.Sprintf("/api/v1/students/1/schedules/generate?year=%d&term=%s", testutils.Year, testutils.Term)
	w := e.do(t, http.MethodPost, path, e.student, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var s dto.ScheduleResponse
	decode(t, w, &s)
	assert.Equal(t, 3, s.TotalCredits)
	require.Len(t, s.Slots, 5)
	assert.Equal(t, "PM 100", s.Slots[0].CourseCode)
	assert.Equal(t, planner.TierPeerMentoring, s.Slots[0].Tier)
	assert.Zero(t, s.ID, "generated schedules are not saved")

	w = e.do(t, http.MethodPost, "/api/v1/students/1/schedules/generate?term=WINTER", e.student, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidateAndSaveSchedule(t *testing.T) {
	e := setup(t)
	e.store.AddStudent(1, "CS", "ENG 101")
	eng := e.store.AddOffering("ENG 102", "MON 9:00am-10:00am")
	cs := e.store.AddOffering("CS 101", "MON 9:30am-10:30am")
	cs201 := e.store.AddOffering("CS 201", "FRI 9:00am-10:00am")
	hum := e.store.AddOffering("HUM 101", "after lunch")

	valid := dto.ScheduleRequest{StudentID: 1, Year: testutils.Year, Term: string(testutils.Term),
		Slots: []dto.SlotRequest{{OfferingID: eng.ID, Credits: 3}}}

	w := e.do(t, http.MethodPost, "/api/v1/schedules/validate", e.student, valid)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result dto.ValidationResultResponse
	decode(t, w, &result)
	assert.True(t, result.Valid)

	conflict := dto.ScheduleRequest{StudentID: 1, Slots: []dto.SlotRequest{
		{OfferingID: eng.ID, Credits: 3}, {OfferingID: cs.ID, Credits: 3},
	}}
	w = e.do(t, http.MethodPost, "/api/v1/schedules/validate", e.student, conflict)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	rejected := decode(t, w, nil)
	assert.Equal(t, dto.ErrorCodeScheduleInvalid, rejected.Error.Code)
	var v dto.ScheduleViolation
	require.NoError(t, json.Unmarshal(rejected.Error.Details, &v))
	assert.Equal(t, dto.ViolationTimeConflict, v.Kind)
	assert.Equal(t, "CS 101", v.CourseCode)
	assert.Equal(t, "ENG 102", v.ConflictsWith)

	tests := []struct {
		name string
		req  dto.ScheduleRequest
		kind string
	}{
		{"missing slots", dto.ScheduleRequest{StudentID: 1}, dto.ViolationNilSchedule},
		{"unknown offering", dto.ScheduleRequest{StudentID: 1, Slots: []dto.SlotRequest{{OfferingID: 9999}}}, dto.ViolationInvalidOffering},
		{"prerequisites", dto.ScheduleRequest{StudentID: 1, Slots: []dto.SlotRequest{{OfferingID: cs201.ID}}}, dto.ViolationPrerequisitesNotMet},
		{"credit limit", dto.ScheduleRequest{StudentID: 1, Slots: []dto.SlotRequest{{OfferingID: eng.ID, Credits: 16}}}, dto.ViolationCreditLimitExceeded},
		{"unparsable meeting time", dto.ScheduleRequest{StudentID: 1, Slots: []dto.SlotRequest{{OfferingID: hum.ID}}}, dto.ViolationMalformedMeetingTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := e.do(t, http.MethodPost, "/api/v1/schedules/validate", e.student, tt.req)
			require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
			var v dto.ScheduleViolation
			require.NoError(t, json.Unmarshal(decode(t, w, nil).Error.Details, &v))
			assert.Equal(t, tt.kind, v.Kind)
		})
	}

	unknown := dto.ScheduleRequest{StudentID: 9999, Slots: []dto.SlotRequest{{OfferingID: eng.ID, Credits: 3}}}
	assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodPost, "/api/v1/schedules/validate", e.advisor, unknown).Code)

	w = e.do(t, http.MethodPost, "/api/v1/schedules/validate", e.student, dto.ScheduleRequest{Slots: []dto.SlotRequest{}})
	assert.Equal(t, http.StatusBadRequest, w.Code, "studentId is required")

	w = e.do(t, http.MethodPost, "/api/v1/schedules", e.student, valid)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var saved dto.ScheduleResponse
	decode(t, w, &saved)
	require.NotZero(t, saved.ID)
	assert.NotNil(t, saved.CreatedAt)

	w = e.do(t, http.MethodGet, fmt.Sprintf("/api/v1/schedules/%d", saved.ID), e.student, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched dto.ScheduleResponse
	decode(t, w, &fetched)
	assert.Equal(t, saved.Slots, fetched.Slots)

	other, err := e.jwt.GenerateAccessToken(11, 2, string(models.RoleStudent))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, e.do(t, http.MethodGet, fmt.Sprintf("/api/v1/schedules/%d", saved.ID), other, nil).Code)
	assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodGet, "/api/v1/schedules/424242", e.student, nil).Code)
}
