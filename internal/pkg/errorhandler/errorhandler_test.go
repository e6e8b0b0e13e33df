package errorhandler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/startupquest/quest-api/internal/pkg/logger"
	"github.com/startupquest/quest-api/internal/pkg/response"
)

func TestHandleInternalLogsAndWritesEnvelope(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf).With().Str("request_id", "req-42").Logger()
	ctx := logger.WithContext(context.Background(), &l)

	rec := httptest.NewRecorder()
	HandleInternal(ctx, rec, errors.New("connection reset"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var body response.Response
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Success || body.Error == nil || body.Error.Code != "INTERNAL_ERROR" {
		t.Fatalf("unexpected envelope: %+v", body)
	}
	if strings.Contains(rec.Body.String(), "connection reset") {
		t.Fatalf("internal error detail must not leak to the client")
	}

	logged := buf.String()
	if !strings.Contains(logged, `"request_id":"req-42"`) || !strings.Contains(logged, "connection reset") {
		t.Fatalf("expected request id and cause in log, got %s", logged)
	}
}
