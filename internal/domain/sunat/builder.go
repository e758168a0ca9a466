package sunat

import (
	"fmt"
	"strings"
	"time"

	"github.com/paisasoft/mercado-api/internal/domain"
	"github.com/paisasoft/mercado-api/internal/domain/entity"
	pkgsunat "github.com/paisasoft/mercado-api/pkg/sunat"
	"github.com/shopspring/decimal"
)

// Emitter identifica a la empresa emisora del comprobante. Viene de la
// configuración; es constante para todos los comprobantes de la tienda.
type Emitter struct {
	RUC             string
	RazonSocial     string
	NombreComercial string
	Direccion       string
}

var igvRate = decimal.NewFromFloat(0.18)

// BuildInvoicePayload convierte un carrito + comprador en el comprobante a
// enviar: selecciona tipo y serie según el documento del comprador (RUC →
// factura F001, resto → boleta B001), calcula el IGV por línea con redondeo
// a 2 decimales por línea, suma los valores ya redondeados para los totales
// y arma la leyenda del importe en letras.
//
// orderID aporta la semilla del correlativo (segmento de timestamp del ID
// de pedido). issuedAt fija la fecha de emisión; la hora se normaliza a
// mediodía hora de Lima como hace el emisor de referencia.
//
// Devuelve domain.ErrValidation si el carrito está vacío o alguna línea
// tiene cantidad no positiva o precio negativo.
func BuildInvoicePayload(items []entity.CartLine, customer entity.CustomerDetails, emitter Emitter, orderID string, issuedAt time.Time) (*InvoicePayload, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: carrito vacío", domain.ErrValidation)
	}
	for _, it := range items {
		if it.Quantity < 1 {
			return nil, fmt.Errorf("%w: cantidad no positiva para %q", domain.ErrValidation, it.Name)
		}
		if it.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: precio negativo para %q", domain.ErrValidation, it.Name)
		}
	}

	isRUC := customer.DocumentType == entity.DocTypeRUC
	docType, series := pkgsunat.SeriesFor(isRUC)

	details := make([]LineDetail, 0, len(items))
	operGravadas := decimal.Zero
	totalIGV := decimal.Zero
	for _, it := range items {
		qty := decimal.NewFromInt(it.Quantity)
		lineValue := it.UnitPrice.Mul(qty).Round(2)
		lineIGV := it.UnitPrice.Mul(qty).Mul(igvRate).Round(2)
		unitWithIGV := it.UnitPrice.Mul(decimal.NewFromFloat(1.18)).Round(2)

		code := it.SKU
		if code == "" {
			code = "PROD-" + it.ProductID
		}
		details = append(details, LineDetail{
			CodProducto:       code,
			Unidad:            pkgsunat.UnitNIU,
			Descripcion:       it.Name,
			Cantidad:          it.Quantity,
			MtoValorUnitario:  NewMoney(it.UnitPrice.Round(2)),
			MtoValorVenta:     NewMoney(lineValue),
			MtoBaseIGV:        NewMoney(lineValue),
			PorcentajeIGV:     pkgsunat.IGVPercent,
			IGV:               NewMoney(lineIGV),
			TipAfeIGV:         pkgsunat.AffectationGravadoOneroso,
			TotalImpuestos:    NewMoney(lineIGV),
			MtoPrecioUnitario: NewMoney(unitWithIGV),
		})

		// Totales del documento: suma de valores ya redondeados por línea.
		operGravadas = operGravadas.Add(lineValue)
		totalIGV = totalIGV.Add(lineIGV)
	}
	grandTotal := operGravadas.Add(totalIGV)

	return &InvoicePayload{
		UBLVersion:    pkgsunat.UBLVersion,
		TipoOperacion: pkgsunat.OperationVentaInterna,
		TipoDoc:       docType,
		Serie:         series,
		Correlativo:   CorrelativeFromOrderID(orderID, issuedAt),
		FechaEmision:  issuedAt.Format("2006-01-02") + "T12:00:00-05:00",
		FormaPago: PaymentTerms{
			Moneda: pkgsunat.CurrencyPEN,
			Tipo:   pkgsunat.PaymentCash,
		},
		TipoMoneda: pkgsunat.CurrencyPEN,
		Client: Client{
			TipoDoc:   pkgsunat.ClientDocCode(customer.DocumentType),
			NumDoc:    customer.DocumentNumber,
			RznSocial: customer.FullName(),
			Address:   defaultClientAddress(),
		},
		Company: Company{
			RUC:             emitter.RUC,
			RazonSocial:     emitter.RazonSocial,
			NombreComercial: emitter.NombreComercial,
			Address: Address{
				Direccion:    emitter.Direccion,
				Provincia:    "LIMA",
				Departamento: "LIMA",
				Distrito:     "LIMA",
				Ubigeo:       "150101",
			},
		},
		MtoOperGravadas: NewMoney(operGravadas),
		MtoIGV:          NewMoney(totalIGV),
		ValorVenta:      NewMoney(operGravadas),
		TotalImpuestos:  NewMoney(totalIGV),
		SubTotal:        NewMoney(grandTotal),
		MtoImpVenta:     NewMoney(grandTotal),
		Details:         details,
		Legends: []Legend{
			{Code: pkgsunat.LegendAmountInWords, Value: pkgsunat.AmountInWords(grandTotal)},
		},
	}, nil
}

// CorrelativeFromOrderID deriva el correlativo del segmento de timestamp
// del ID de pedido (ORD-<epoch>-<sufijo> → primeros 8 dígitos del epoch).
// Sin ID de pedido cae a los últimos 4 dígitos del epoch de emisión.
func CorrelativeFromOrderID(orderID string, issuedAt time.Time) string {
	parts := strings.Split(orderID, "-")
	if len(parts) >= 2 && parts[1] != "" {
		seg := parts[1]
		if len(seg) > 8 {
			seg = seg[:8]
		}
		return seg
	}
	epoch := fmt.Sprintf("%d", issuedAt.Unix())
	return epoch[len(epoch)-4:]
}

// defaultClientAddress el gateway exige una dirección del adquirente; la
// tienda no la captura en el checkout, así que se envía la genérica de Lima.
func defaultClientAddress() Address {
	return Address{
		Direccion:    "Av. Siempre Viva 123",
		Provincia:    "LIMA",
		Departamento: "LIMA",
		Distrito:     "LIMA",
		Ubigeo:       "150101",
	}
}
