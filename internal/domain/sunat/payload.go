// Package sunat construye el comprobante electrónico (factura o boleta)
// que se envía al gateway de facturación. La construcción es una función
// pura y determinista de las líneas del carrito + datos del comprador;
// nada de este paquete toca red ni persistencia.
package sunat

import "github.com/shopspring/decimal"

// Money serializa un monto como número JSON con exactamente dos decimales,
// que es el formato que espera el gateway.
type Money struct {
	decimal.Decimal
}

// NewMoney envuelve un decimal ya redondeado para el cuerpo JSON.
func NewMoney(d decimal.Decimal) Money { return Money{d} }

// MarshalJSON emite el monto sin comillas y con dos decimales fijos.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.StringFixed(2)), nil
}

// Address dirección fiscal (emisor o adquirente).
type Address struct {
	Direccion    string `json:"direccion"`
	Provincia    string `json:"provincia"`
	Departamento string `json:"departamento"`
	Distrito     string `json:"distrito"`
	Ubigeo       string `json:"ubigueo"`
}

// Client adquirente del comprobante.
type Client struct {
	TipoDoc   string  `json:"tipoDoc"` // Catálogo 06: "6" RUC, "1" DNI, ...
	NumDoc    string  `json:"numDoc"`
	RznSocial string  `json:"rznSocial"`
	Address   Address `json:"address"`
}

// Company emisor del comprobante.
type Company struct {
	RUC             string  `json:"ruc"`
	RazonSocial     string  `json:"razonSocial"`
	NombreComercial string  `json:"nombreComercial"`
	Address         Address `json:"address"`
}

// PaymentTerms forma de pago.
type PaymentTerms struct {
	Moneda string `json:"moneda"`
	Tipo   string `json:"tipo"`
}

// LineDetail línea del comprobante con su desglose de IGV.
// Cada monto viene redondeado a 2 decimales de forma independiente antes
// de entrar a los totales del documento.
type LineDetail struct {
	CodProducto       string `json:"codProducto"`
	Unidad            string `json:"unidad"`
	Descripcion       string `json:"descripcion"`
	Cantidad          int64  `json:"cantidad"`
	MtoValorUnitario  Money  `json:"mtoValorUnitario"`
	MtoValorVenta     Money  `json:"mtoValorVenta"`
	MtoBaseIGV        Money  `json:"mtoBaseIgv"`
	PorcentajeIGV     int    `json:"porcentajeIgv"`
	IGV               Money  `json:"igv"`
	TipAfeIGV         string `json:"tipAfeIgv"` // Catálogo 07, "10" gravado oneroso
	TotalImpuestos    Money  `json:"totalImpuestos"`
	MtoPrecioUnitario Money  `json:"mtoPrecioUnitario"` // unitario con IGV
}

// Legend leyenda del comprobante (código 1000 = importe en letras).
type Legend struct {
	Code  string `json:"code"`
	Value string `json:"value"`
}

// InvoicePayload es el cuerpo JSON completo que se envía al gateway.
// Los totales del documento son la suma de los valores por línea ya
// redondeados, no un re-redondeo de la suma sin redondear: el gateway
// valida con esa aritmética y un desvío de un centavo es rechazo.
type InvoicePayload struct {
	UBLVersion      string       `json:"ublVersion"`
	TipoOperacion   string       `json:"tipoOperacion"`
	TipoDoc         string       `json:"tipoDoc"`
	Serie           string       `json:"serie"`
	Correlativo     string       `json:"correlativo"`
	FechaEmision    string       `json:"fechaEmision"`
	FormaPago       PaymentTerms `json:"formaPago"`
	TipoMoneda      string       `json:"tipoMoneda"`
	Client          Client       `json:"client"`
	Company         Company      `json:"company"`
	MtoOperGravadas Money        `json:"mtoOperGravadas"`
	MtoIGV          Money        `json:"mtoIGV"`
	ValorVenta      Money        `json:"valorVenta"`
	TotalImpuestos  Money        `json:"totalImpuestos"`
	SubTotal        Money        `json:"subTotal"`
	MtoImpVenta     Money        `json:"mtoImpVenta"`
	Details         []LineDetail `json:"details"`
	Legends         []Legend     `json:"legends"`
}
