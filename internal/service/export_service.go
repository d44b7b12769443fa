package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"schedview/internal/filter"
	"schedview/internal/models"
	"schedview/pkg/export"
	appErrors "schedview/pkg/errors"
	"schedview/pkg/ics"
)

// ExportSource produces the remote service's opaque export payload.
type ExportSource interface {
	ExportEvents(ctx context.Context, scope models.Scope) ([]byte, error)
}

// EventReader exposes the store's collections for local renditions.
type EventReader interface {
	Events(scope models.Scope) []models.Event
}

// ExportDelivery hands finished payloads to the file-delivery collaborator.
type ExportDelivery interface {
	Save(filename string, data []byte) (string, error)
	Path(filename string) string
}

// ExportService turns collections into downloadable files: the remote ICS
// payload (with a local fallback build) and CSV/PDF renditions of the
// currently filtered view.
type ExportService struct {
	remote   ExportSource
	events   EventReader
	delivery ExportDelivery
	engine   *filter.Engine
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	logger   *zap.Logger
}

// NewExportService constructs the export service.
func NewExportService(remote ExportSource, events EventReader, delivery ExportDelivery, engine *filter.Engine, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		remote:   remote,
		events:   events,
		delivery: delivery,
		engine:   engine,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
	}
}

// ExportICS delivers the schedule's ICS payload. The payload normally comes
// from the remote service and is forwarded without interpretation; when the
// remote endpoint is unavailable the payload is built locally from the
// in-memory collection instead.
func (s *ExportService) ExportICS(ctx context.Context, scope models.Scope, scheduleName string) (string, error) {
	payload, err := s.remote.ExportEvents(ctx, scope)
	if err != nil {
		if !appErrors.HasCode(err, appErrors.ErrUnavailable) {
			return "", err
		}
		s.logger.Warn("remote export unavailable, building ICS locally", zap.String("scope", scope.String()), zap.Error(err))
		payload, err = ics.Build(scheduleName, s.events.Events(scope))
		if err != nil {
			return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build fallback ICS")
		}
	}

	name, err := s.delivery.Save(exportFilename(scheduleName, "ics"), payload)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "deliver export")
	}
	return name, nil
}

// ExportCSV renders the currently filtered view of a scope as CSV.
func (s *ExportService) ExportCSV(ctx context.Context, scope models.Scope, title string) (string, error) {
	data, err := s.csv.Render(s.table(scope))
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render CSV export")
	}
	name, err := s.delivery.Save(exportFilename(title, "csv"), data)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "deliver export")
	}
	return name, nil
}

// ExportPDF renders the currently filtered view of a scope as a tabular PDF.
func (s *ExportService) ExportPDF(ctx context.Context, scope models.Scope, title string) (string, error) {
	data, err := s.pdf.Render(s.table(scope), title)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render PDF export")
	}
	name, err := s.delivery.Save(exportFilename(title, "pdf"), data)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "deliver export")
	}
	return name, nil
}

// Path resolves a delivered filename to its absolute location.
func (s *ExportService) Path(filename string) string {
	return s.delivery.Path(filename)
}

func (s *ExportService) table(scope models.Scope) export.Table {
	events := s.engine.Filter(s.events.Events(scope))
	rows := make([][]string, 0, len(events))
	for _, ev := range events {
		owner, class := "", ""
		if ev.Owner != nil {
			owner = ev.Owner.FullName
			class = ev.Owner.ClassName
		}
		rows = append(rows, []string{
			ev.StartTime.Format("2006-01-02"),
			ev.StartTime.Format("15:04"),
			ev.EndTime.Format("15:04"),
			ev.Title,
			owner,
			class,
			ev.Location,
		})
	}
	return export.Table{
		Headers: []string{"Date", "Start", "End", "Title", "Owner", "Class", "Location"},
		Rows:    rows,
	}
}

func exportFilename(name, ext string) string {
	base := sanitizeFilename(name)
	if base == "" {
		base = "export"
	}
	return fmt.Sprintf("schedule-%s-%s.%s", base, uuid.New().String()[:8], ext)
}

func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	replacer := strings.NewReplacer("/", "-", "\\", "-", " ", "_", ":", "-")
	return replacer.Replace(name)
}
