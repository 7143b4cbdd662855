package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validationProbe struct {
	BillNumber string `json:"bill_number" binding:"required,min=1,max=50"`
	Direction  string `json:"direction" binding:"required,oneof=INCOMING OUTGOING"`
	VendorID   string `json:"vendor_id" binding:"required,uuid"`
	Email      string `json:"email" binding:"omitempty,email"`
}

func setupValidationRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	SetupValidator()
	r := gin.New()
	r.Use(RequestID())
	r.POST("/", func(c *gin.Context) {
		var probe validationProbe
		if err := c.ShouldBindJSON(&probe); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func postJSON(r *gin.Engine, payload string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestHandleValidationError(t *testing.T) {
	r := setupValidationRouter()

	t.Run("should pass a valid payload", func(t *testing.T) {
		w := postJSON(r, `{"bill_number":"INV-1","direction":"INCOMING","vendor_id":"`+"b2a7a53c-74d1-4b1f-9c6f-2f315d2c7f10"+`"}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("should list rejected fields by json tag", func(t *testing.T) {
		w := postJSON(r, `{"direction":"SIDEWAYS","vendor_id":"nope","email":"not-an-email"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, false, body["success"])

		errInfo := body["error"].(map[string]interface{})
		assert.Equal(t, "VALIDATION_ERROR", errInfo["code"])
		assert.NotEmpty(t, errInfo["request_id"])

		details := errInfo["details"].([]interface{})
		fields := map[string]string{}
		for _, d := range details {
			detail := d.(map[string]interface{})
			fields[detail["field"].(string)] = detail["message"].(string)
		}

		assert.Equal(t, "This field is required", fields["bill_number"])
		assert.Equal(t, "Must be one of: INCOMING OUTGOING", fields["direction"])
		assert.Equal(t, "Invalid UUID format", fields["vendor_id"])
		assert.Equal(t, "Invalid email format", fields["email"])
	})

	t.Run("should answer bare bad request for malformed JSON", func(t *testing.T) {
		w := postJSON(r, `{"bill_number": `)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		errInfo := body["error"].(map[string]interface{})
		assert.Equal(t, "BAD_REQUEST", errInfo["code"])
		assert.Nil(t, errInfo["details"])
	})
}
