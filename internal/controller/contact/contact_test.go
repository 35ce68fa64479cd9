package contact

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
	var contactTeardown func(context.Context) error
	contactTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		os.Exit(1)
	}
	code := m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if contactTeardown != nil {
		_ = contactTeardown(ctx)
	}
	os.Exit(code)
}

func contactEngine() *gin.Engine {
	r := gin.New()
	cc := NewContactController(testDB)
	r.POST("/contact", cc.SubmitHandler)

	admin := r.Group("/admin", middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleAdmin))
	admin.GET("contact", cc.ListHandler)
	admin.PATCH("contact/:id", cc.UpdateStatusHandler)
	return r
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := auth.GetAccessToken(t, testDB, database.TestAdminUser.Username, database.TestSeedPassword)
	assert.NoError(t, err)
	return token
}

func TestSubmitContactMessage(t *testing.T) {
	engine := contactEngine()

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"name":    "ผู้ปกครองนักเรียน",
		"email":   "parent@example.com",
		"subject": "สอบถามเรื่องค่าใช้จ่าย",
		"body":    "ค่าโครงการรวมตั๋วเครื่องบินหรือไม่",
	}, "", engine, "/contact", http.MethodPost)

	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Message sent successfully", resp["message"])
	assert.NotNil(t, resp["contact_id"])
}

func TestSubmitContactMessageMissingEmail(t *testing.T) {
	engine := contactEngine()

	rec, _ := testutil.MakeJSONRequest(gin.H{
		"name":    "someone",
		"subject": "hello",
		"body":    "hi",
	}, "", engine, "/contact", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListContactMessages(t *testing.T) {
	engine := contactEngine()
	token := adminToken(t)

	req, _ := http.NewRequest(http.MethodGet, "/admin/contact?status=new", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var messages []model.ContactMessage
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &messages))
	assert.NotEmpty(t, messages)
	for _, msg := range messages {
		assert.Equal(t, model.ContactStatusNew, msg.Status)
	}
}

func TestListContactRequiresAdmin(t *testing.T) {
	engine := contactEngine()
	token, err := auth.GetAccessToken(t, testDB, database.TestUserStudent1.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	rec, _ := testutil.MakeJSONRequest(nil, token, engine, "/admin/contact", http.MethodGet)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdateContactStatus(t *testing.T) {
	engine := contactEngine()
	token := adminToken(t)

	message := model.ContactMessage{
		Name:    "sender",
		Email:   "sender@example.com",
		Subject: "question",
		Body:    "text",
		Status:  model.ContactStatusNew,
	}
	assert.NoError(t, testDB.Create(&message).Error)

	rec, resp := testutil.MakeJSONRequest(gin.H{"status": model.ContactStatusReplied}, token, engine,
		fmt.Sprintf("/admin/contact/%d", message.ID), http.MethodPatch)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, model.ContactStatusReplied, resp["status"])
}

func TestUpdateContactStatusInvalid(t *testing.T) {
	engine := contactEngine()
	token := adminToken(t)

	rec, resp := testutil.MakeJSONRequest(gin.H{"status": "ignored"}, token, engine, "/admin/contact/1", http.MethodPatch)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "new, read or replied")
}

func TestUpdateContactStatusNotFound(t *testing.T) {
	engine := contactEngine()
	token := adminToken(t)

	rec, _ := testutil.MakeJSONRequest(gin.H{"status": model.ContactStatusRead}, token, engine, "/admin/contact/999999", http.MethodPatch)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
