package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jordanlanch/leadcrm/pkg/audit"
	"github.com/jordanlanch/leadcrm/pkg/domain"
	"github.com/jordanlanch/leadcrm/pkg/finalleads"
	"github.com/jordanlanch/leadcrm/pkg/logger"
	"github.com/jordanlanch/leadcrm/pkg/metrics"
	"github.com/jordanlanch/leadcrm/pkg/models"
	"github.com/jordanlanch/leadcrm/pkg/storage"
	"github.com/xuri/excelize/v2"
)

var columns = []string{
	"Company Name", "Website", "Email", "Phone", "Industry",
	"Employee Count", "Priority", "Status", "Relevance Score",
	"Assigned To", "Last Contact", "Next Follow Up", "Approved Date",
}

const dateLayout = "2006-01-02"

// Service builds CSV/XLSX exports of the final lead pipeline.
type Service struct {
	leads   *finalleads.Service
	store   storage.Store
	auditor *audit.Service
	metrics *metrics.Metrics
	log     logger.Logger
}

func New(leads *finalleads.Service, store storage.Store, auditor *audit.Service, m *metrics.Metrics, log logger.Logger) *Service {
	return &Service{leads: leads, store: store, auditor: auditor, metrics: m, log: log}
}

// Export renders every final lead matching the filters into the requested
// format, stores the file, and returns its location.
func (s *Service) Export(ctx context.Context, req models.ExportRequest, actor uuid.UUID) (*models.ExportResponse, error) {
	leads, err := s.collect(ctx, req.Filters)
	if err != nil {
		return nil, err
	}

	var (
		data        []byte
		contentType string
		ext         string
	)
	switch req.Format {
	case "csv":
		data, err = renderCSV(leads)
		contentType = "text/csv"
		ext = "csv"
	case "xlsx":
		data, err = renderXLSX(leads)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		ext = "xlsx"
	default:
		return nil, domain.NewValidationError("format must be csv or xlsx")
	}
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	name := fmt.Sprintf("final-leads-%s.%s", time.Now().Format("20060102-150405"), ext)
	url, err := s.store.Put(ctx, name, contentType, data)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	if s.metrics != nil {
		s.metrics.ExportsCreated.Inc()
	}
	if s.auditor != nil {
		s.auditor.Log(ctx, audit.Entry{
			UserID:       actor,
			ActivityType: domain.ActivityExport,
			EntityType:   "final_lead",
			Description:  fmt.Sprintf("exported %d final leads as %s", len(leads), req.Format),
			Metadata:     domain.JSONMap{"lead_count": len(leads), "format": req.Format},
		})
	}
	s.log.Info("export created", "file", name, "leads", len(leads))

	return &models.ExportResponse{FileName: name, URL: url}, nil
}

// collect pages through the filtered final leads until exhausted.
func (s *Service) collect(ctx context.Context, filters models.FinalLeadFilters) ([]domain.FinalLead, error) {
	filters.Page = 1
	filters.PageSize = 200

	var all []domain.FinalLead
	for {
		resp, err := s.leads.List(ctx, filters)
		if err != nil {
			return nil, err
		}
		all = append(all, resp.Leads...)
		if len(all) >= int(resp.Pagination.Total) || len(resp.Leads) == 0 {
			return all, nil
		}
		filters.Page++
	}
}

func row(l *domain.FinalLead) []string {
	assigned := ""
	if l.AssignedUser != nil {
		assigned = l.AssignedUser.FullName
	}
	return []string{
		l.CompanyName,
		l.Website,
		l.Email,
		l.Phone,
		l.Industry,
		l.EmployeeCount,
		string(l.Priority),
		string(l.Status),
		strconv.FormatFloat(l.RelevanceScore, 'f', 2, 64),
		assigned,
		formatDate(l.LastContactDate),
		formatDate(l.NextFollowUp),
		l.ApprovedAt.Format(dateLayout),
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func renderCSV(leads []domain.FinalLead) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(columns); err != nil {
		return nil, err
	}
	for i := range leads {
		if err := w.Write(row(&leads[i])); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderXLSX(leads []domain.FinalLead) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Final Leads"
	f.SetSheetName("Sheet1", sheet)

	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	for i := range leads {
		cells := row(&leads[i])
		rowVals := make([]any, len(cells))
		for j, c := range cells {
			rowVals[j] = c
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &rowVals); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
