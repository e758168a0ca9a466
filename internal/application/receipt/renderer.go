// Package receipt arma la boleta/factura en HTML para la confirmación
// en pantalla. Todo texto provisto por el usuario se escapa antes de
// incrustarse: un nombre de producto jamás debe interpretarse como
// marcado.
package receipt

import (
	"fmt"
	"html"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/paisasoft/mercado-api/internal/domain/entity"
)

// GatewayResult datos de la respuesta SUNAT que acompañan al recibo.
// Solo con Accepted true se muestra el bloque de confirmación.
type GatewayResult struct {
	Accepted         bool
	ConfirmationCode string
	Description      string
}

var igvRate = decimal.RequireFromString("0.18")

// Render produce el recibo del pedido. result puede ser nil (compra sin
// comprobante): el recibo se muestra igual, sin bloque de confirmación.
func Render(order *entity.Order, result *GatewayResult) string {
	var b strings.Builder

	subtotal := order.Subtotal()
	igv := subtotal.Mul(igvRate).Round(2)

	b.WriteString("<div class=\"receipt\">\n")
	fmt.Fprintf(&b, "  <h2>Pedido %s</h2>\n", html.EscapeString(order.ID))
	fmt.Fprintf(&b, "  <p class=\"date\">%s</p>\n", order.CreatedAt.Format("02/01/2006 15:04"))
	fmt.Fprintf(&b, "  <p class=\"customer\">%s &mdash; %s %s</p>\n",
		html.EscapeString(order.Customer.FullName()),
		html.EscapeString(order.Customer.DocumentType),
		html.EscapeString(order.Customer.DocumentNumber))

	b.WriteString("  <table>\n")
	for _, it := range order.Items {
		lineTotal := it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity)).Round(2)
		fmt.Fprintf(&b, "    <tr><td>%d x %s</td><td>S/ %s</td></tr>\n",
			it.Quantity, html.EscapeString(it.Name), lineTotal.StringFixed(2))
	}
	b.WriteString("  </table>\n")

	fmt.Fprintf(&b, "  <p class=\"subtotal\">Subtotal: S/ %s</p>\n", subtotal.StringFixed(2))
	fmt.Fprintf(&b, "  <p class=\"igv\">IGV (18%%): S/ %s</p>\n", igv.StringFixed(2))
	fmt.Fprintf(&b, "  <p class=\"total\">Total: S/ %s</p>\n", order.Total.StringFixed(2))

	if result != nil && result.Accepted {
		b.WriteString("  <div class=\"sunat\">\n")
		fmt.Fprintf(&b, "    <p>%s</p>\n", html.EscapeString(result.Description))
		fmt.Fprintf(&b, "    <p class=\"code\">C&oacute;digo: %s</p>\n", html.EscapeString(result.ConfirmationCode))
		b.WriteString("  </div>\n")
	}

	b.WriteString("</div>\n")
	return b.String()
}
