// Package pdf implementa la representación gráfica del comprobante
// electrónico SUNAT (boleta o factura) en A4.
//
// Layout de la página:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón Social + RUC  │  BOLETA/FACTURA + Serie-Núm  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMISOR: Dirección                                          │
//	│  ADQUIRIENTE: Nombre + Documento                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | Importe               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Op. Gravadas / IGV 18% / Importe Total            │
//	│  LEYENDA: "SON ... CON .../100 SOLES"                       │
//	│  FOOTER: confirmación SUNAT + QR (solo si hay código)       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/paisasoft/mercado-api/internal/application/orders"
	"github.com/paisasoft/mercado-api/internal/domain/entity"
	domainsunat "github.com/paisasoft/mercado-api/internal/domain/sunat"
	"github.com/paisasoft/mercado-api/pkg/sunat"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 102, Blue: 51}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// esPE formatea montos con separadores de miles peruanos.
var esPE = message.NewPrinter(language.MustParse("es-PE"))

// ── Generator ─────────────────────────────────────────────────────────────────

var _ orders.ReceiptPDFGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implementa orders.ReceiptPDFGenerator usando Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateReceiptPDF genera el PDF del comprobante y devuelve sus bytes.
// confirmationCode vacío omite el bloque de confirmación SUNAT.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(
	_ context.Context,
	order *entity.Order,
	payload *domainsunat.InvoicePayload,
	confirmationCode string,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante Electrónico", true).
		WithAuthor(payload.Company.RazonSocial, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(order, payload))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(emisorRow(payload))
	m.AddRows(adquirienteRow(order, payload))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(order.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(payload))
	m.AddRows(legendRow(payload))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range sunatFooterRows(payload, confirmationCode) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func docTitle(docType string) string {
	if docType == sunat.DocTypeFactura {
		return "FACTURA ELECTRÓNICA"
	}
	return "BOLETA DE VENTA ELECTRÓNICA"
}

// headerRow: razón social + RUC (izq) y tipo de comprobante + serie-número (der).
func headerRow(order *entity.Order, payload *domainsunat.InvoicePayload) core.Row {
	numero := payload.Serie + "-" + payload.Correlativo
	fecha := order.CreatedAt.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(payload.Company.RazonSocial, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("RUC: "+payload.Company.RUC, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(docTitle(payload.TipoDoc), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(numero, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// emisorRow: datos del emisor.
func emisorRow(payload *domainsunat.InvoicePayload) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New("DATOS DEL EMISOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New("Dirección: "+payload.Company.Address.Direccion, props.Text{
				Size: 8, Top: 6, Color: colorGray,
			}),
		),
	)
}

// adquirienteRow: datos del comprador.
func adquirienteRow(order *entity.Order, payload *domainsunat.InvoicePayload) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("ADQUIRIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(order.Customer.FullName(), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("%s: %s", order.Customer.DocumentType, order.Customer.DocumentNumber),
				props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 6, align.Left),
		h("P. Unit.", 2, align.Right),
		h("Importe", 3, align.Right),
	)
}

// tableItemRows: una fila por línea del pedido.
func tableItemRows(items []entity.CartLine) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		lineTotal := it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity)).Round(2)
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				it.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"S/ "+formatMoney(it.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				"S/ "+formatMoney(lineTotal),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(payload *domainsunat.InvoicePayload) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(26).Add(
		col.New(3),
		col.New(3).Add(
			label("OP. GRAVADAS:"),
			label("IGV (18%):"),
			grandLabel("IMPORTE TOTAL:"),
		),
		col.New(3).Add(
			value("S/ "+formatMoney(payload.MtoOperGravadas.Decimal)),
			value("S/ "+formatMoney(payload.MtoIGV.Decimal)),
			grandValue("S/ "+formatMoney(payload.MtoImpVenta.Decimal)),
		),
		col.New(3),
	)
}

// legendRow: importe en letras.
func legendRow(payload *domainsunat.InvoicePayload) core.Row {
	legend := ""
	if len(payload.Legends) > 0 {
		legend = payload.Legends[0].Value
	}
	return row.New(8).Add(col.New(12).Add(
		text.New(legend, props.Text{
			Style: fontstyle.Italic, Size: 8, Color: colorGray, Top: 2,
		}),
	))
}

// sunatFooterRows: confirmación + QR cuando SUNAT aceptó el comprobante.
func sunatFooterRows(payload *domainsunat.InvoicePayload, confirmationCode string) []core.Row {
	if confirmationCode == "" {
		return []core.Row{
			row.New(10).Add(col.New(12).Add(
				text.New("Comprobante pendiente de confirmación SUNAT.", props.Text{
					Size: 8, Align: align.Center, Color: colorGray, Top: 2,
				}),
			)),
		}
	}

	qrData := fmt.Sprintf("%s|%s|%s|%s|%s|%s",
		payload.Company.RUC, payload.TipoDoc, payload.Serie,
		payload.Correlativo, payload.MtoImpVenta.Decimal.StringFixed(2), confirmationCode)

	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("INFORMACIÓN ELECTRÓNICA SUNAT", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
		row.New(40).Add(
			col.New(4).Add(code.NewQr(qrData, props.Rect{
				Percent: 95,
				Center:  true,
			})),
			col.New(8).Add(
				text.New("Código de confirmación: "+confirmationCode, props.Text{
					Style: fontstyle.Bold, Size: 9, Top: 4, Left: 3,
				}),
				text.New("Comprobante aceptado por SUNAT.\nConserve este documento como soporte fiscal.", props.Text{
					Size: 8, Top: 12, Left: 3, Color: colorGray,
				}),
			),
		),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney formatea un monto con separadores de miles es-PE y dos decimales.
func formatMoney(d decimal.Decimal) string {
	f, _ := d.Float64()
	return esPE.Sprintf("%.2f", f)
}
