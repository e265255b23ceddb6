package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sgh-fet-agent/internal/dto"
	"github.com/noah-isme/sgh-fet-agent/internal/fet"
	appErrors "github.com/noah-isme/sgh-fet-agent/pkg/errors"
	"github.com/noah-isme/sgh-fet-agent/pkg/export"
)

type documentBuilder interface {
	Build(req dto.RunTimetableRequest, calendar *fet.CalendarIndex) ([]byte, error)
}

type solverRunner interface {
	Run(ctx context.Context, document []byte) (*fet.RunResult, error)
}

type scheduleDecoder interface {
	DecodeSchedule(req dto.RunTimetableRequest, calendar *fet.CalendarIndex, workDir, stem string) []dto.ActivityScheduleEntry
}

// TimetableService drives one solver run end to end: encode the request,
// execute the binary, decode whatever the solver wrote back, and assemble the
// summary. The pipeline is stateless across requests; all transient state
// lives in per-request files under the work directory.
type TimetableService struct {
	builder   documentBuilder
	runner    solverRunner
	decoder   scheduleDecoder
	workDir   string
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService

	csv *export.CSVExporter
	pdf *export.PDFExporter
}

// NewTimetableService wires the pipeline dependencies.
func NewTimetableService(
	builder documentBuilder,
	runner solverRunner,
	decoder scheduleDecoder,
	workDir string,
	validate *validator.Validate,
	logger *zap.Logger,
	metrics *MetricsService,
) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableService{
		builder:   builder,
		runner:    runner,
		decoder:   decoder,
		workDir:   workDir,
		validator: validate,
		logger:    logger,
		metrics:   metrics,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
	}
}

// Run executes the full pipeline for one consolidated request. Subprocess
// failures abort with a typed error; a missing or partial solver output
// degrades to an empty or partial schedule in an otherwise successful
// response.
func (s *TimetableService) Run(ctx context.Context, req dto.RunTimetableRequest) (*dto.RunTimetableResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timetable run payload")
	}

	calendar := fet.NewCalendarIndex(req.Calendar)

	document, err := s.builder.Build(req, calendar)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build fet document")
	}

	start := time.Now()
	result, err := s.runner.Run(ctx, document)
	elapsed := time.Since(start)
	if err != nil {
		s.metrics.ObserveRun(appErrors.FromError(err).Code, elapsed)
		return nil, err
	}
	s.metrics.ObserveRun("success", elapsed)

	schedule := s.decoder.DecodeSchedule(req, calendar, s.workDir, result.InputStem())
	s.metrics.ObserveScheduledActivities(len(schedule))
	rooms := fet.BuildRoomsSummary(req.Space)

	s.logger.Info("timetable run finished",
		zap.String("timetable_id", req.Metadata.TimetableID),
		zap.String("input_file", result.InputFile),
		zap.Int("activities_requested", len(req.Activities)),
		zap.Int("activities_scheduled", len(schedule)),
		zap.Duration("elapsed", elapsed),
	)

	return &dto.RunTimetableResponse{
		Status:             "success",
		Semester:           req.Metadata.Semester,
		TimetableID:        req.Metadata.TimetableID,
		InputFile:          result.InputFile,
		OutputDirectory:    result.OutputDir,
		Stdout:             result.Stdout,
		Stderr:             result.Stderr,
		ActivitiesSchedule: schedule,
		Rooms:              rooms,
	}, nil
}

// ExportArtifact is a rendered file ready to stream to the caller.
type ExportArtifact struct {
	Filename    string
	ContentType string
	Bytes       []byte
}

// Export renders a run summary into a downloadable CSV or PDF table. A
// calendar in the payload upgrades time slots to day and hour labels.
func (s *TimetableService) Export(req dto.ExportTimetableRequest) (*ExportArtifact, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export payload")
	}

	content := req.Content
	if content == "" {
		content = dto.ExportContentSchedule
	}
	title := req.Title
	if title == "" {
		title = "Timetable"
	}
	labeler := slotLabeler(req.Calendar)

	var rendered []byte
	var err error
	switch {
	case content == dto.ExportContentRooms && req.Format == "pdf":
		rendered, err = s.pdf.RenderRooms(title, roomRows(req.Rooms))
	case content == dto.ExportContentRooms:
		rendered, err = s.csv.RenderRooms(roomRows(req.Rooms))
	case req.Format == "pdf":
		rendered, err = s.pdf.RenderSchedule(title, scheduleRows(req.Schedule), labeler)
	default:
		rendered, err = s.csv.RenderSchedule(scheduleRows(req.Schedule), labeler)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	contentType := "text/csv"
	if req.Format == "pdf" {
		contentType = "application/pdf"
	}
	return &ExportArtifact{
		Filename:    fmt.Sprintf("timetable-%s.%s", content, req.Format),
		ContentType: contentType,
		Bytes:       rendered,
	}, nil
}

// slotLabeler maps absolute slot ordinals onto the export calendar. Without a
// calendar the ordinals are left as-is; guessing a day length would mislabel
// every slot.
func slotLabeler(calendar dto.Calendar) export.SlotLabeler {
	if len(calendar.Days) == 0 || len(calendar.Hours) == 0 {
		return nil
	}
	index := fet.NewCalendarIndex(calendar)
	hoursPerDay := index.HoursPerDay()
	return func(slot int) (string, string) {
		return index.DayName(slot / hoursPerDay), index.HourName(slot % hoursPerDay)
	}
}

func scheduleRows(schedule []dto.ActivityScheduleEntry) []export.ScheduleRow {
	rows := make([]export.ScheduleRow, 0, len(schedule))
	for _, entry := range schedule {
		rows = append(rows, export.ScheduleRow{
			ActivityID: string(entry.ID),
			Subject:    entry.Subject,
			Students:   entry.StudentsCount,
			Slots:      entry.TimeSlots,
		})
	}
	return rows
}

func roomRows(rooms []dto.RoomSummary) []export.RoomRow {
	rows := make([]export.RoomRow, 0, len(rooms))
	for _, room := range rooms {
		rows = append(rows, export.RoomRow{
			Name:     room.Name,
			Building: room.Building,
			Capacity: room.Capacity,
		})
	}
	return rows
}
