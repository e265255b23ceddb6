package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sgh-fet-agent/internal/dto"
	"github.com/noah-isme/sgh-fet-agent/internal/service"
	appErrors "github.com/noah-isme/sgh-fet-agent/pkg/errors"
	"github.com/noah-isme/sgh-fet-agent/pkg/response"
)

type timetableServiceStub struct {
	runResp    *dto.RunTimetableResponse
	runErr     error
	exportResp *service.ExportArtifact
	exportErr  error
}

func (s *timetableServiceStub) Run(ctx context.Context, req dto.RunTimetableRequest) (*dto.RunTimetableResponse, error) {
	return s.runResp, s.runErr
}

func (s *timetableServiceStub) Export(req dto.ExportTimetableRequest) (*service.ExportArtifact, error) {
	return s.exportResp, s.exportErr
}

func newTestContext(t *testing.T, method, path string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	var reader *bytes.Reader
	switch payload := body.(type) {
	case string:
		reader = bytes.NewReader([]byte(payload))
	default:
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, recorder
}

func TestTimetableHandlerRunSuccess(t *testing.T) {
	stub := &timetableServiceStub{runResp: &dto.RunTimetableResponse{
		Status:      "success",
		TimetableID: "tt-1",
		Semester:    "2026-1",
	}}
	h := &TimetableHandler{service: stub}

	c, recorder := newTestContext(t, http.MethodPost, "/api/v1/fet/run", dto.RunTimetableRequest{
		Metadata: dto.RunMetadata{TimetableID: "tt-1", Semester: "2026-1"},
	})
	h.Run(c)

	assert.Equal(t, http.StatusAccepted, recorder.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	require.Nil(t, envelope.Error)
	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "success", data["status"])
	assert.Equal(t, "tt-1", data["timetableId"])
}

func TestTimetableHandlerRunInvalidJSON(t *testing.T) {
	h := &TimetableHandler{service: &timetableServiceStub{}}

	c, recorder := newTestContext(t, http.MethodPost, "/api/v1/fet/run", "{not json")
	h.Run(c)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrValidation.Code, envelope.Error.Code)
}

func TestTimetableHandlerRunServiceError(t *testing.T) {
	stub := &timetableServiceStub{
		runErr: appErrors.Wrap(errors.New("deadline"), appErrors.ErrExecutionTimeout.Code,
			appErrors.ErrExecutionTimeout.Status, appErrors.ErrExecutionTimeout.Message),
	}
	h := &TimetableHandler{service: stub}

	c, recorder := newTestContext(t, http.MethodPost, "/api/v1/fet/run", dto.RunTimetableRequest{})
	h.Run(c)

	assert.Equal(t, http.StatusGatewayTimeout, recorder.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrExecutionTimeout.Code, envelope.Error.Code)
}

func TestTimetableHandlerExportSuccess(t *testing.T) {
	stub := &timetableServiceStub{exportResp: &service.ExportArtifact{
		Filename:    "timetable-schedule.csv",
		ContentType: "text/csv",
		Bytes:       []byte("Activity,Subject\n"),
	}}
	h := &TimetableHandler{service: stub}

	c, recorder := newTestContext(t, http.MethodPost, "/api/v1/fet/export", dto.ExportTimetableRequest{Format: "csv"})
	h.Export(c)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "text/csv", recorder.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="timetable-schedule.csv"`, recorder.Header().Get("Content-Disposition"))
	assert.Equal(t, "Activity,Subject\n", recorder.Body.String())
}

func TestTimetableHandlerExportServiceError(t *testing.T) {
	stub := &timetableServiceStub{
		exportErr: appErrors.Clone(appErrors.ErrValidation, "invalid export payload"),
	}
	h := &TimetableHandler{service: stub}

	c, recorder := newTestContext(t, http.MethodPost, "/api/v1/fet/export", dto.ExportTimetableRequest{Format: "xlsx"})
	h.Export(c)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
