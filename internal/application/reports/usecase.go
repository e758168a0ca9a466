package reports

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/paisasoft/mercado-api/internal/application/dto"
	"github.com/paisasoft/mercado-api/internal/domain"
	"github.com/paisasoft/mercado-api/internal/domain/entity"
	"github.com/paisasoft/mercado-api/internal/domain/repository"
)

// ReportUseCase flujo de denuncias de producto: un cliente crea la
// denuncia, un admin la toma a revisión y la resuelve con veredicto y
// justificación. Aprobado y Rechazado son terminales.
type ReportUseCase struct {
	repo        repository.ReportRepository
	productRepo repository.ProductRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.ReportRepository, productRepo repository.ProductRepository) *ReportUseCase {
	return &ReportUseCase{repo: repo, productRepo: productRepo}
}

// Create registra una denuncia nueva en estado Pending.
func (uc *ReportUseCase) Create(in dto.CreateReportRequest) (*dto.ReportResponse, error) {
	switch in.Reason {
	case entity.ReportReasonExpired, entity.ReportReasonWrongPrice, entity.ReportReasonBadQuality:
	default:
		return nil, fmt.Errorf("%w: motivo desconocido %q", domain.ErrValidation, in.Reason)
	}
	if _, err := uc.productRepo.GetByID(in.ProductID); err != nil {
		return nil, fmt.Errorf("producto denunciado: %w", err)
	}
	if err := validateEvidenceURL(in.EvidenceURL); err != nil {
		return nil, err
	}
	now := time.Now()
	report := &entity.ProductReport{
		ID:          uuid.New().String(),
		ProductID:   in.ProductID,
		Reason:      in.Reason,
		Description: in.Description,
		EvidenceURL: in.EvidenceURL,
		Status:      entity.ReportStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(report); err != nil {
		return nil, err
	}
	return toReportResponse(report), nil
}

// GetByID obtiene una denuncia.
func (uc *ReportUseCase) GetByID(id string) (*dto.ReportResponse, error) {
	report, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toReportResponse(report), nil
}

// ListAll lista todas las denuncias para el panel de administración.
func (uc *ReportUseCase) ListAll() (*dto.ReportListResponse, error) {
	list, err := uc.repo.ListAll()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReportResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toReportResponse(r))
	}
	return &dto.ReportListResponse{Items: items}, nil
}

// StartReview toma la denuncia a revisión: Pending → Reviewing.
//
// Retorna domain.ErrInvalidState si la denuncia no está en Pending.
func (uc *ReportUseCase) StartReview(id string) (*dto.ReportResponse, error) {
	report, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if report.Status != entity.ReportStatusPending {
		return nil, fmt.Errorf("%w: la denuncia está en %s, solo se toma a revisión desde %s",
			domain.ErrInvalidState, report.Status, entity.ReportStatusPending)
	}
	report.Status = entity.ReportStatusReviewing
	report.UpdatedAt = time.Now()
	if err := uc.repo.Update(report); err != nil {
		return nil, err
	}
	return toReportResponse(report), nil
}

// Resolve cierra la denuncia con veredicto: Reviewing → Approved o
// Rejected. La justificación es obligatoria en ambos veredictos; sin
// ella la denuncia queda intacta.
//
// Retorna:
//   - domain.ErrJustificationRequired  si la justificación viene vacía.
//   - domain.ErrInvalidState           si la denuncia no está en Reviewing.
func (uc *ReportUseCase) Resolve(id string, in dto.ResolveReportRequest) (*dto.ReportResponse, error) {
	if strings.TrimSpace(in.Justification) == "" {
		return nil, domain.ErrJustificationRequired
	}
	report, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if report.Status != entity.ReportStatusReviewing {
		return nil, fmt.Errorf("%w: la denuncia está en %s, solo se resuelve desde %s",
			domain.ErrInvalidState, report.Status, entity.ReportStatusReviewing)
	}
	if in.Approve {
		report.Status = entity.ReportStatusApproved
	} else {
		report.Status = entity.ReportStatusRejected
	}
	report.Justification = in.Justification
	report.UpdatedAt = time.Now()
	if err := uc.repo.Update(report); err != nil {
		return nil, err
	}
	return toReportResponse(report), nil
}

// validateEvidenceURL acepta vacío o una URL absoluta http/https. Igual
// que las imágenes del catálogo: nada de esquemas javascript: ni rutas
// relativas que el front termine interpretando.
func validateEvidenceURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: evidencia con URL inválida", domain.ErrValidation)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: la evidencia debe ser una URL http(s) absoluta", domain.ErrValidation)
	}
	return nil
}

func toReportResponse(r *entity.ProductReport) *dto.ReportResponse {
	return &dto.ReportResponse{
		ID:            r.ID,
		ProductID:     r.ProductID,
		Reason:        r.Reason,
		Description:   r.Description,
		EvidenceURL:   r.EvidenceURL,
		Status:        r.Status,
		Justification: r.Justification,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
