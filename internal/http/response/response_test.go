package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestErrorUsesHTTPStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		code int
		want int
	}{
		{code: CodeBadRequest, want: http.StatusBadRequest},
		{code: CodeUnauthorized, want: http.StatusUnauthorized},
		{code: CodeNotFound, want: http.StatusNotFound},
		{code: CodeTooManyRequests, want: http.StatusTooManyRequests},
		{code: CodeInternal, want: http.StatusInternalServerError},
		{code: 999, want: http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("request_id", "rid-1")
		Error(c, tc.code, "boom")
		if w.Code != tc.want {
			t.Fatalf("code %d: want http %d got %d", tc.code, tc.want, w.Code)
		}
		var body map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode body failed: %v", err)
		}
		data, _ := body["data"].(map[string]interface{})
		if data["request_id"] != "rid-1" {
			t.Fatalf("request id not attached: %v", body)
		}
	}
}

func TestBuildPagination(t *testing.T) {
	p := BuildPagination(2, 20, 41)
	if p.TotalPage != 3 {
		t.Fatalf("want 3 pages got %d", p.TotalPage)
	}
	if BuildPagination(1, 0, 10).TotalPage != 0 {
		t.Fatalf("zero page size should yield zero pages")
	}
}

func TestCreatedStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Created(c, "ok", gin.H{"id": 1})
	if w.Code != http.StatusCreated {
		t.Fatalf("want 201 got %d", w.Code)
	}
}
