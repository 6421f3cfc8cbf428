package report

import (
	"time"

	"gorm.io/gorm"

	"coolcare/database"
	"coolcare/storage"
)

// Row caps for on-screen preview and full report generation.
const (
	PreviewRowCap = 500
	ReportRowCap  = 1000
)

// Row is the flat complaint projection consumed by the preview table
// and the document renderer.
type Row struct {
	ID              uint          `json:"id"`
	CustomerName    string        `json:"customer_name"`
	Email           string        `json:"email"`
	Phone           string        `json:"phone"`
	Address         string        `json:"address"`
	BuildingName    string        `json:"building_name"`
	ApartmentNumber string        `json:"apartment_number"`
	Area            string        `json:"area"`
	Description     string        `json:"description"`
	ConvenientTime  string        `json:"convenient_time"`
	CreatedAt       string        `json:"created_at"`
	ImageURLs       []string      `json:"image_urls"`
	Responses       []ResponseRow `json:"responses,omitempty"`
	WorkTimes       []WorkTimeRow `json:"work_times,omitempty"`
}

// ResponseRow carries a staff response including its work session bounds.
type ResponseRow struct {
	ResponderName string     `json:"responder_name"`
	Text          string     `json:"text"`
	CreatedAt     time.Time  `json:"created_at"`
	StartedAt     *time.Time `json:"started_at"`
	CompletedAt   *time.Time `json:"completed_at"`
}

// WorkTimeRow carries a logged work session for the report document.
type WorkTimeRow struct {
	UserName  string     `json:"user_name"`
	WorkDate  time.Time  `json:"work_date"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
}

// FetchPreview runs the composed predicate with the preview row cap and
// returns the flat projection without response/work-time detail.
func FetchPreview(db *gorm.DB, p Params, limit int) ([]Row, error) {
	return fetchRows(db, p, clampLimit(limit, PreviewRowCap), false)
}

// FetchReportRows runs the same predicate with the report row cap and
// the full projection needed by the document renderer.
func FetchReportRows(db *gorm.DB, p Params, limit int) ([]Row, error) {
	return fetchRows(db, p, clampLimit(limit, ReportRowCap), true)
}

func clampLimit(limit, upper int) int {
	if limit < 1 {
		limit = 1
	}
	if limit > upper {
		limit = upper
	}
	return limit
}

func fetchRows(db *gorm.DB, p Params, limit int, full bool) ([]Row, error) {
	q := db.Model(&database.Complaint{}).Preload("Images")
	if full {
		q = q.Preload("Responses.Responder").Preload("WorkTimes.User")
	}

	q, err := p.Apply(q)
	if err != nil {
		return nil, err
	}

	var complaints []database.Complaint
	// created_at DESC with id DESC as the tie-breaker keeps pagination
	// deterministic when timestamps collide.
	if err := q.Order("created_at DESC, id DESC").Limit(limit).Find(&complaints).Error; err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(complaints))
	for _, c := range complaints {
		row := Row{
			ID:              c.ID,
			CustomerName:    c.CustomerName,
			Email:           c.Email,
			Phone:           c.Phone,
			Address:         c.Address,
			BuildingName:    c.BuildingName,
			ApartmentNumber: c.ApartmentNumber,
			Area:            c.Area,
			Description:     c.Description,
			ConvenientTime:  c.ConvenientTime,
			CreatedAt:       c.CreatedAt.UTC().Format(time.RFC3339),
			ImageURLs:       make([]string, 0, len(c.Images)),
		}
		for _, img := range c.Images {
			row.ImageURLs = append(row.ImageURLs, storage.ResolveURL(img.Path))
		}
		if full {
			for _, r := range c.Responses {
				row.Responses = append(row.Responses, ResponseRow{
					ResponderName: r.Responder.Name,
					Text:          r.Text,
					CreatedAt:     r.CreatedAt,
					StartedAt:     r.StartedAt,
					CompletedAt:   r.CompletedAt,
				})
			}
			for _, w := range c.WorkTimes {
				row.WorkTimes = append(row.WorkTimes, WorkTimeRow{
					UserName:  w.User.Name,
					WorkDate:  w.WorkDate,
					StartTime: w.StartTime,
					EndTime:   w.EndTime,
				})
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}
