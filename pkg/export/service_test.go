package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jordanlanch/leadcrm/pkg/database"
	"github.com/jordanlanch/leadcrm/pkg/domain"
	"github.com/jordanlanch/leadcrm/pkg/finalleads"
	"github.com/jordanlanch/leadcrm/pkg/logger"
	"github.com/jordanlanch/leadcrm/pkg/models"
	"github.com/jordanlanch/leadcrm/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func setup(t *testing.T) (*Service, *database.Client, string) {
	t.Helper()

	db := database.NewTestClient(t)
	dir := t.TempDir()
	store, err := storage.NewLocalStore(dir)
	require.NoError(t, err)

	svc := New(finalleads.New(db, nil, logger.New("error")), store, nil, nil, logger.New("error"))
	return svc, db, dir
}

func seedLead(t *testing.T, db *database.Client, company string) {
	t.Helper()
	l := &domain.FinalLead{
		CompanyName:    company,
		Email:          "sales@example.com",
		Industry:       "Manufacturing",
		RelevanceScore: 0.85,
		Status:         domain.LeadStatusApproved,
		Priority:       domain.PriorityHigh,
		ApprovedBy:     uuid.New(),
		ApprovedAt:     time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.DB.Create(l).Error)
}

func TestExportCSV(t *testing.T) {
	svc, db, dir := setup(t)
	ctx := context.Background()

	seedLead(t, db, `Quotes "R" Us, Inc`)
	seedLead(t, db, "Plain Co")

	resp, err := svc.Export(ctx, models.ExportRequest{Format: "csv"}, uuid.New())
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(resp.FileName, ".csv"))
	assert.Equal(t, "/exports/"+resp.FileName, resp.URL)

	raw, err := os.ReadFile(filepath.Join(dir, resp.FileName))
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus two rows")

	assert.Equal(t, columns, records[0])

	// Embedded quotes and commas survive a round trip
	companies := []string{records[1][0], records[2][0]}
	assert.Contains(t, companies, `Quotes "R" Us, Inc`)
	assert.Contains(t, companies, "Plain Co")

	for _, rec := range records[1:] {
		assert.Equal(t, "0.85", rec[8])
		assert.Equal(t, "2025-03-14", rec[12])
		assert.Equal(t, "", rec[10], "empty dates render as empty cells")
	}
}

func TestExportXLSX(t *testing.T) {
	svc, db, dir := setup(t)

	seedLead(t, db, "Sheet Co")

	resp, err := svc.Export(context.Background(), models.ExportRequest{Format: "xlsx"}, uuid.New())
	require.NoError(t, err)

	f, err := excelize.OpenFile(filepath.Join(dir, resp.FileName))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Final Leads")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Company Name", rows[0][0])
	assert.Equal(t, "Sheet Co", rows[1][0])
}

func TestExportRespectsFilters(t *testing.T) {
	svc, db, _ := setup(t)
	ctx := context.Background()

	seedLead(t, db, "Keep Me")
	low := &domain.FinalLead{
		CompanyName: "Skip Me", Status: domain.LeadStatusContacted,
		Priority: domain.PriorityLow, ApprovedBy: uuid.New(), ApprovedAt: time.Now(),
	}
	require.NoError(t, db.DB.Create(low).Error)

	resp, err := svc.Export(ctx, models.ExportRequest{
		Format:  "csv",
		Filters: models.FinalLeadFilters{Statuses: []domain.LeadStatus{domain.LeadStatusApproved}},
	}, uuid.New())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.FileName)
}

func TestExportUnknownFormat(t *testing.T) {
	svc, _, _ := setup(t)

	_, err := svc.Export(context.Background(), models.ExportRequest{Format: "pdf"}, uuid.New())
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeValidation, domain.CodeOf(err))
}
