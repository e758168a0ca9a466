package dto

import "time"

// CreateReportRequest body para POST /api/reports: denuncia de un
// producto por parte de un cliente.
type CreateReportRequest struct {
	ProductID   string `json:"product_id" validate:"required"`
	Reason      string `json:"reason" validate:"required,oneof=Vencido 'Precio Incorrecto' 'Mala Calidad'"`
	Description string `json:"description"`
	EvidenceURL string `json:"evidence_url"`
}

// ResolveReportRequest body para POST /api/reports/:id/resolve.
// Justification es obligatoria en ambos veredictos.
type ResolveReportRequest struct {
	Approve       bool   `json:"approve"`
	Justification string `json:"justification" validate:"required"`
}

// ReportResponse denuncia en respuestas.
type ReportResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	Reason        string    `json:"reason"`
	Description   string    `json:"description,omitempty"`
	EvidenceURL   string    `json:"evidence_url,omitempty"`
	Status        string    `json:"status"` // Pending|Reviewing|Approved|Rejected
	Justification string    `json:"justification,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ReportListResponse listado de denuncias para el panel de administración.
type ReportListResponse struct {
	Items []ReportResponse `json:"items"`
}
