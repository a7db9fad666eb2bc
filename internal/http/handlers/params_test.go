package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	perr "github.com/yungbote/servicehub-backend/internal/pkg/errors"
)

func TestFlexIDAcceptsNumbersAndStrings(t *testing.T) {
	cases := map[string]int64{
		`42`:      42,
		`"42"`:    42,
		`" 7 "`:   7,
		`"-3"`:    -3,
		`9007199`: 9007199,
	}
	for raw, want := range cases {
		var id FlexID
		if err := json.Unmarshal([]byte(raw), &id); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if id.Int64() != want {
			t.Fatalf("unmarshal %s: want=%d got=%d", raw, want, id)
		}
	}
}

func TestFlexIDRejectsGarbage(t *testing.T) {
	for _, raw := range []string{`"abc"`, `null`, `4.5`, `""`, `true`} {
		var id FlexID
		if err := json.Unmarshal([]byte(raw), &id); err == nil {
			t.Fatalf("unmarshal %s: expected error, got %d", raw, id)
		}
	}
}

func TestPathIDInvalidIsInvalidArgument(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/bookings/user/x", nil)
	c.Params = gin.Params{{Key: "user_id", Value: "x"}}

	if _, err := pathID(c, "user_id"); !errors.Is(err, perr.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	c.Params = gin.Params{{Key: "user_id", Value: "12"}}
	got, err := pathID(c, "user_id")
	if err != nil || got != 12 {
		t.Fatalf("pathID: got=%d err=%v", got, err)
	}
}
