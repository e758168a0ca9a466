package checkout

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/paisasoft/mercado-api/internal/domain"
	"github.com/paisasoft/mercado-api/internal/domain/entity"
	"github.com/paisasoft/mercado-api/internal/domain/repository"
	domainsunat "github.com/paisasoft/mercado-api/internal/domain/sunat"
	infrasunat "github.com/paisasoft/mercado-api/internal/infrastructure/sunat"
	"github.com/rs/zerolog/log"
)

// Outcome estado terminal de un intento de compra. Tras un guardado
// exitoso el pedido nunca se revierte: una factura fallida jamás borra
// una venta registrada.
type Outcome string

const (
	// OutcomeCompleted pedido guardado y comprobante aceptado por SUNAT.
	OutcomeCompleted Outcome = "completed"
	// OutcomeCompletedUnverified pedido guardado; SUNAT rechazó el
	// comprobante. El rechazo es una advertencia, no un error: el pedido
	// sigue siendo válido, solo el estado del comprobante queda por
	// verificar.
	OutcomeCompletedUnverified Outcome = "completed_unverified"
	// OutcomeCompletedNoInvoice pedido guardado; el gateway no estuvo
	// disponible y no hay bloque de confirmación SUNAT.
	OutcomeCompletedNoInvoice Outcome = "completed_no_invoice"
)

// PlacementResult resultado visible de la compra. Advisory trae el texto
// de advertencia (descripción del rechazo o mensaje de la falla de
// transporte) en los desenlaces sin confirmación.
type PlacementResult struct {
	Outcome          Outcome
	Order            *entity.Order
	ConfirmationCode string
	Advisory         string
}

// SUNATConfig credencial y emisor para la facturación electrónica.
// Con Token vacío el comprobante no se envía (modo desarrollo) y toda
// compra termina en OutcomeCompletedNoInvoice.
type SUNATConfig struct {
	Token   string
	Emitter domainsunat.Emitter
}

// PlaceOrderUseCase orquesta una compra: guarda el pedido y descuenta
// stock en una transacción, construye el comprobante y lo envía al
// gateway, y resuelve el desenlace de tres vías. Ningún error de la etapa
// de facturación escapa después de un guardado exitoso.
type PlaceOrderUseCase struct {
	txRunner  TxRunner
	submitter infrasunat.InvoiceSubmitter // nil = no enviar (dev)
	cfg       SUNATConfig
}

// NewPlaceOrderUseCase construye el caso de uso. submitter puede ser nil:
// en ese caso nunca se contacta al gateway.
func NewPlaceOrderUseCase(txRunner TxRunner, submitter infrasunat.InvoiceSubmitter, cfg SUNATConfig) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{
		txRunner:  txRunner,
		submitter: submitter,
		cfg:       cfg,
	}
}

// orderSeq contador monótono de proceso para los IDs de pedido.
var orderSeq atomic.Int64

// newOrderID combina epoch, contador monótono y sufijo aleatorio: el
// timestamp solo no es libre de colisiones bajo creación concurrente.
func newOrderID(now time.Time) string {
	seq := orderSeq.Add(1)
	return fmt.Sprintf("ORD-%d-%03d%03d", now.Unix(), seq%1000, rand.IntN(1000))
}

// PlaceOrder ejecuta el intento completo de compra.
//
// Etapas y desenlaces:
//  1. Validación — carrito vacío, cantidades no positivas o documento
//     desconocido → domain.ErrValidation, sin efectos.
//  2. Guardado — alta del pedido + descuento de stock (piso en cero) en
//     una sola transacción. Falla → domain.ErrPersistence; el carrito del
//     llamador se conserva para reintentar.
//  3. Facturación — fuera de toda transacción (la llamada HTTP puede
//     bloquear; no se retiene ningún lock del store mientras tanto).
//     Aceptado → OutcomeCompleted; rechazado → OutcomeCompletedUnverified;
//     transporte caído → OutcomeCompletedNoInvoice. En los tres casos el
//     pedido queda guardado y err es nil.
func (uc *PlaceOrderUseCase) PlaceOrder(ctx context.Context, items []entity.CartLine, customer entity.CustomerDetails, userID string) (*PlacementResult, error) {
	if err := validatePlacement(items, customer); err != nil {
		return nil, err
	}

	now := time.Now()
	order := &entity.Order{
		ID:        newOrderID(now),
		UserID:    userID,
		Customer:  customer,
		Items:     append([]entity.CartLine(nil), items...),
		Status:    entity.OrderStatusPending,
		CreatedAt: now,
	}
	order.Total = order.ComputeTotal()

	err := uc.txRunner.RunCheckout(ctx, func(
		orderRepo repository.OrderRepository,
		stockRepo repository.StockRepository,
	) error {
		// Descuento de stock serializado por producto (lock de fila).
		// Piso en cero: nunca stock negativo.
		for _, it := range order.Items {
			current, err := stockRepo.GetForUpdate(it.ProductID)
			if err != nil {
				return fmt.Errorf("stock de %s: %w", it.ProductID, err)
			}
			remaining := current - it.Quantity
			if remaining < 0 {
				remaining = 0
			}
			if err := stockRepo.SetStock(it.ProductID, remaining); err != nil {
				return fmt.Errorf("descontar stock de %s: %w", it.ProductID, err)
			}
		}
		return orderRepo.Create(order)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	// A partir de aquí el pedido existe y no se revierte. Si la llamada
	// se abandona (cliente navega a otra parte), el pedido queda tal cual:
	// no hay rollback compensatorio.
	return uc.invoice(ctx, order), nil
}

// invoice emite el comprobante y mapea el resultado al desenlace de tres
// vías. Nunca devuelve error.
func (uc *PlaceOrderUseCase) invoice(ctx context.Context, order *entity.Order) *PlacementResult {
	res := &PlacementResult{Order: order}

	if uc.submitter == nil || uc.cfg.Token == "" {
		res.Outcome = OutcomeCompletedNoInvoice
		res.Advisory = "facturación electrónica deshabilitada"
		return res
	}

	payload, err := domainsunat.BuildInvoicePayload(order.Items, order.Customer, uc.cfg.Emitter, order.ID, order.CreatedAt)
	if err != nil {
		// El carrito ya pasó validación; esto no debería ocurrir, pero si
		// ocurre el pedido guardado manda: se degrada a sin-comprobante.
		log.Error().Err(err).Str("order_id", order.ID).Msg("construcción del comprobante fallida")
		res.Outcome = OutcomeCompletedNoInvoice
		res.Advisory = err.Error()
		return res
	}

	submit, err := uc.submitter.Submit(ctx, payload, uc.cfg.Token)
	switch {
	case err != nil:
		log.Warn().Err(err).Str("order_id", order.ID).Msg("gateway de facturación no disponible")
		res.Outcome = OutcomeCompletedNoInvoice
		res.Advisory = err.Error()
	case !submit.Accepted:
		log.Warn().Str("order_id", order.ID).Str("descripcion", submit.Description).Msg("comprobante rechazado por SUNAT")
		res.Outcome = OutcomeCompletedUnverified
		res.Advisory = submit.Description
	default:
		log.Info().Str("order_id", order.ID).Str("cdr", submit.Code).Msg("comprobante aceptado por SUNAT")
		res.Outcome = OutcomeCompleted
		res.ConfirmationCode = submit.Code
		res.Advisory = submit.Description
	}
	return res
}

func validatePlacement(items []entity.CartLine, customer entity.CustomerDetails) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: carrito vacío", domain.ErrValidation)
	}
	for _, it := range items {
		if it.ProductID == "" || it.Quantity < 1 {
			return fmt.Errorf("%w: línea de carrito inválida", domain.ErrValidation)
		}
		if it.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: precio negativo", domain.ErrValidation)
		}
	}
	switch customer.DocumentType {
	case entity.DocTypeDNI, entity.DocTypeRUC, entity.DocTypePassport, entity.DocTypeForeignResidency:
	default:
		return fmt.Errorf("%w: tipo de documento desconocido %q", domain.ErrValidation, customer.DocumentType)
	}
	if customer.DocumentNumber == "" || customer.FirstName == "" {
		return fmt.Errorf("%w: datos del comprador incompletos", domain.ErrValidation)
	}
	return nil
}
