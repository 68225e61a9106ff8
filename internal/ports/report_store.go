package ports

import "github.com/joelspa/Katze/internal/domain"

// ReportStore persists patch reports.
type ReportStore interface {
	SaveReport(report domain.PatchReport) (id string, err error)
}
