package application

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/nateekarni/dsu-intensive-global/internal/auth"
	"github.com/nateekarni/dsu-intensive-global/internal/database"
	"github.com/nateekarni/dsu-intensive-global/internal/middleware"
	"github.com/nateekarni/dsu-intensive-global/internal/model"
	"github.com/nateekarni/dsu-intensive-global/internal/testutil"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	var err error
	var appTeardown func(context.Context) error
	appTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		os.Exit(1)
	}
	code := m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if appTeardown != nil {
		_ = appTeardown(ctx)
	}
	os.Exit(code)
}

func applicationEngine() *gin.Engine {
	r := gin.New()
	ac := NewApplicationController(testDB)
	student := r.Group("", middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleStudent))
	student.POST("/application/program/:id", ac.ApplyHandler)
	student.GET("/application/me", ac.GetMyApplications)
	student.GET("/application/:id", ac.GetMyApplicationByID)
	student.GET("/student/profile", ac.GetProfile)
	student.PATCH("/student/profile", ac.UpdateProfile)
	return r
}

func studentToken(t *testing.T, user model.User) string {
	t.Helper()
	token, err := auth.GetAccessToken(t, testDB, user.Username, database.TestSeedPassword)
	assert.NoError(t, err)
	return token
}

func TestGetMyApplications(t *testing.T) {
	engine := applicationEngine()
	token := studentToken(t, database.TestUserStudent1)

	req, _ := http.NewRequest(http.MethodGet, "/application/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var entries []map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	assert.Len(t, entries, 1)
	assert.Equal(t, "documents_pending", entries[0]["stage"])

	badge := entries[0]["badge"].(map[string]interface{})
	assert.Equal(t, "รอเอกสาร", badge["label"])
	assert.Equal(t, "warning", badge["color"])
}

func TestGetMyApplicationByID(t *testing.T) {
	engine := applicationEngine()
	token := studentToken(t, database.TestUserStudent1)

	rec, resp := testutil.MakeJSONRequest(nil, token, engine,
		fmt.Sprintf("/application/%d", database.TestApplicant1.ID), http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "documents_pending", resp["stage"])

	// Interview programmes track apply, documents, interview and payment
	steps := resp["steps"].([]interface{})
	assert.Len(t, steps, 4)
	first := steps[0].(map[string]interface{})
	assert.Equal(t, "apply", first["key"])
	assert.Equal(t, "complete", first["status"])
}

func TestGetApplicationOfOtherStudent(t *testing.T) {
	engine := applicationEngine()
	token := studentToken(t, database.TestUserStudent1)

	rec, _ := testutil.MakeJSONRequest(nil, token, engine,
		fmt.Sprintf("/application/%d", database.TestApplicant2.ID), http.MethodGet)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApplyFirstComeProgram(t *testing.T) {
	engine := applicationEngine()
	token := studentToken(t, database.TestUserStudent1)

	before := model.Program{}
	assert.NoError(t, testDB.First(&before, database.TestProgramFirstCome.ID).Error)

	rec, resp := testutil.MakeJSONRequest(nil, token, engine,
		fmt.Sprintf("/application/program/%d", database.TestProgramFirstCome.ID), http.MethodPost)

	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	student := resp["student"].(map[string]interface{})
	assert.Equal(t, database.TestStudent1.FirstNameTH, student["first_name_th"])

	after := model.Program{}
	assert.NoError(t, testDB.First(&after, database.TestProgramFirstCome.ID).Error)
	assert.Equal(t, before.CurrentParticipants+1, after.CurrentParticipants)
}

func TestApplyDuplicate(t *testing.T) {
	engine := applicationEngine()
	token := studentToken(t, database.TestUserStudent2)

	rec, resp := testutil.MakeJSONRequest(nil, token, engine,
		fmt.Sprintf("/application/program/%d", database.TestProgramFirstCome.ID), http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "already applied")
}

func TestApplyProgramNotFound(t *testing.T) {
	engine := applicationEngine()
	token := studentToken(t, database.TestUserStudent1)

	rec, _ := testutil.MakeJSONRequest(nil, token, engine, "/application/program/999999", http.MethodPost)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// seedProgram inserts a program directly with the given overrides applied.
func seedProgram(t *testing.T, title string, mutate func(*model.Program)) model.Program {
	t.Helper()
	now := time.Now()
	prog := model.Program{
		EditableProgramInfo: model.EditableProgramInfo{
			Title:               title,
			Status:              model.ProgramStatusOpen,
			AdmissionType:       model.AdmissionFirstCome,
			RegistrationOpen:    now.AddDate(0, 0, -1),
			ApplicationDeadline: now.AddDate(0, 0, 20),
			StartDate:           now.AddDate(0, 2, 0),
			EndDate:             now.AddDate(0, 2, 7),
			EligibleGrades:      pq.Int64Array{10, 11, 12},
		},
	}
	if mutate != nil {
		mutate(&prog)
	}
	assert.NoError(t, testDB.Create(&prog).Error)
	return prog
}

func TestApplyGradeNotEligible(t *testing.T) {
	engine := applicationEngine()
	token := studentToken(t, database.TestUserStudent1)

	// Seeded student 1 is in grade 10
	prog := seedProgram(t, "Seniors Only Trip", func(p *model.Program) {
		p.EligibleGrades = pq.Int64Array{12}
	})

	rec, resp := testutil.MakeJSONRequest(nil, token, engine,
		fmt.Sprintf("/application/program/%d", prog.ID), http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "not eligible")
}

func TestApplyProgramFull(t *testing.T) {
	engine := applicationEngine()
	token := studentToken(t, database.TestUserStudent1)

	prog := seedProgram(t, "Tiny Cohort Camp", func(p *model.Program) {
		p.MaxParticipants = 1
		p.CurrentParticipants = 1
	})

	rec, resp := testutil.MakeJSONRequest(nil, token, engine,
		fmt.Sprintf("/application/program/%d", prog.ID), http.MethodPost)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, resp["error"], "full")
}

func TestApplyProgramNotOpen(t *testing.T) {
	engine := applicationEngine()
	token := studentToken(t, database.TestUserStudent1)

	prog := seedProgram(t, "Announced But Closed", func(p *model.Program) {
		p.Status = model.ProgramStatusUpcoming
	})

	rec, resp := testutil.MakeJSONRequest(nil, token, engine,
		fmt.Sprintf("/application/program/%d", prog.ID), http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "not open")
}

func TestApplyWithProfileOverride(t *testing.T) {
	engine := applicationEngine()
	token := studentToken(t, database.TestUserStudent1)

	prog := seedProgram(t, "Override Snapshot Camp", nil)
	rec, resp := testutil.MakeJSONRequest(gin.H{
		"phone": "0899999999",
	}, token, engine, fmt.Sprintf("/application/program/%d", prog.ID), http.MethodPost)

	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	student := resp["student"].(map[string]interface{})
	assert.Equal(t, "0899999999", student["phone"])
	// The rest of the snapshot still comes from the stored profile
	assert.Equal(t, database.TestStudent1.FirstNameTH, student["first_name_th"])

	// The stored profile itself is untouched
	profile := model.StudentProfile{}
	assert.NoError(t, testDB.First(&profile, "user_id = ?", database.TestUserStudent1.ID).Error)
	assert.Equal(t, database.TestStudent1.Phone, profile.Phone)
}

func TestGetProfile(t *testing.T) {
	engine := applicationEngine()
	token := studentToken(t, database.TestUserStudent1)

	rec, resp := testutil.MakeJSONRequest(nil, token, engine, "/student/profile", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, database.TestStudent1.FirstNameTH, resp["first_name_th"])
	assert.Equal(t, database.TestStudent1.School, resp["school"])
}

func TestUpdateProfile(t *testing.T) {
	engine := applicationEngine()
	token := studentToken(t, database.TestUserStudent2)

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"nickname": "Pim",
	}, token, engine, "/student/profile", http.MethodPatch)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Pim", resp["nickname"])
	// Unset fields keep their current value
	assert.Equal(t, database.TestStudent2.FirstNameTH, resp["first_name_th"])
}
