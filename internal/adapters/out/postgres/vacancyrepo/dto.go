// Package vacancyrepo persists vacancy listings. Rows are keyed by an internal
// uuid and unique on the provider's external id.
package vacancyrepo

import (
	"time"

	"vacancybot/internal/core/domain/model/vacancy"

	"github.com/google/uuid"
)

// VacancyDTO is the "vacancies" row.
type VacancyDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ExternalID     string    `gorm:"size:64;not null;uniqueIndex"`
	Title          string    `gorm:"not null"`
	Company        string
	Location       string
	URL            string
	Description    string
	SalaryFrom     *int
	SalaryTo       *int
	SalaryCurrency string `gorm:"size:8"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (VacancyDTO) TableName() string {
	return "vacancies"
}

// refreshedColumns are overwritten when a known vacancy is ingested again.
var refreshedColumns = []string{
	"title", "company", "location", "url", "description",
	"salary_from", "salary_to", "salary_currency", "updated_at",
}

func fromDomain(v vacancy.Vacancy) VacancyDTO {
	dto := VacancyDTO{
		ID:          uuid.New(),
		ExternalID:  v.ExternalID,
		Title:       v.Title,
		Company:     v.Company,
		Location:    v.Location,
		URL:         v.URL,
		Description: v.Description,
	}
	if v.Salary != nil {
		dto.SalaryFrom = v.Salary.From
		dto.SalaryTo = v.Salary.To
		dto.SalaryCurrency = v.Salary.Currency
	}
	return dto
}

// ToDomain converts a row back to a listing. It is exported for the search
// result repository, which reads vacancies through a join.
func ToDomain(dto VacancyDTO) vacancy.Vacancy {
	v := vacancy.Vacancy{
		ExternalID:  dto.ExternalID,
		Title:       dto.Title,
		Company:     dto.Company,
		Location:    dto.Location,
		URL:         dto.URL,
		Description: dto.Description,
	}
	if dto.SalaryFrom != nil || dto.SalaryTo != nil {
		v.Salary = &vacancy.Salary{From: dto.SalaryFrom, To: dto.SalaryTo, Currency: dto.SalaryCurrency}
	}
	return v
}
