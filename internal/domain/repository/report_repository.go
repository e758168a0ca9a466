package repository

import "github.com/paisasoft/mercado-api/internal/domain/entity"

// ReportRepository define el puerto de persistencia para ProductReport.
type ReportRepository interface {
	Create(report *entity.ProductReport) error
	GetByID(id string) (*entity.ProductReport, error)
	Update(report *entity.ProductReport) error
	ListAll() ([]*entity.ProductReport, error)
}
