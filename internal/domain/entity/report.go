package entity

import "time"

// Estados del flujo de reportes de producto:
// Pending → Reviewing → {Approved | Rejected}. Approved y Rejected son
// terminales; resolver exige una justificación no vacía.
const (
	ReportStatusPending   = "Pending"
	ReportStatusReviewing = "Reviewing"
	ReportStatusApproved  = "Approved"
	ReportStatusRejected  = "Rejected"
)

// Motivos predefinidos de reporte.
const (
	ReportReasonExpired    = "Vencido"
	ReportReasonWrongPrice = "Precio Incorrecto"
	ReportReasonBadQuality = "Mala Calidad"
)

// ProductReport es un reporte de calidad enviado por un cliente sobre un
// producto del catálogo.
type ProductReport struct {
	ID            string
	ProductID     string
	Reason        string
	Description   string
	EvidenceURL   string // opcional, http/https
	Status        string
	Justification string // respuesta del admin; obligatoria al resolver
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Terminal indica si el reporte ya fue resuelto.
func (r *ProductReport) Terminal() bool {
	return r.Status == ReportStatusApproved || r.Status == ReportStatusRejected
}
