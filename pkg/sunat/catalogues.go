// Package sunat contiene catálogos y utilidades alineados a los anexos de
// Comprobantes de Pago Electrónicos SUNAT (Perú) y al flujo de emisión vía
// el gateway de APIs Perú.
package sunat

// =============================================================================
// Catálogo 01 - Tipo de Comprobante
// =============================================================================

const (
	DocTypeFactura = "01" // Factura electrónica (comprador con RUC)
	DocTypeBoleta  = "03" // Boleta de venta electrónica (consumidor final)
)

// Series fijas por tipo de comprobante.
const (
	SeriesFactura = "F001"
	SeriesBoleta  = "B001"
)

// =============================================================================
// Catálogo 06 - Tipo de Documento de Identidad del adquirente
// =============================================================================

const (
	ClientDocDNI               = "1" // Documento Nacional de Identidad
	ClientDocCarnetExtranjeria = "4" // Carné de extranjería
	ClientDocRUC               = "6" // Registro Único de Contribuyentes
	ClientDocPasaporte         = "7" // Pasaporte
)

// =============================================================================
// Catálogo 07 - Afectación del IGV
// =============================================================================

const (
	// AffectationGravadoOneroso operación gravada - onerosa (la única que
	// emite esta tienda; todo el catálogo tributa IGV pleno).
	AffectationGravadoOneroso = "10"
)

// IGV general vigente: 18 %.
const (
	IGVPercent = 18
)

// Constantes de moneda y operación.
const (
	CurrencyPEN           = "PEN"
	OperationVentaInterna = "0101"
	PaymentCash           = "Contado"
	UBLVersion            = "2.1"

	// UnitNIU unidad de medida "número de unidades" (Catálogo 03).
	UnitNIU = "NIU"

	// LegendAmountInWords código de leyenda para el importe en letras.
	LegendAmountInWords = "1000"
)

// SeriesFor devuelve el tipo de comprobante y la serie según el tipo de
// documento del comprador: RUC → factura F001, cualquier otro → boleta B001.
func SeriesFor(isRUC bool) (docType, series string) {
	if isRUC {
		return DocTypeFactura, SeriesFactura
	}
	return DocTypeBoleta, SeriesBoleta
}

// ClientDocCode mapea el tipo de documento de identidad de la tienda al
// código del Catálogo 06. Desconocidos caen a DNI (consumidor final).
func ClientDocCode(documentType string) string {
	switch documentType {
	case "RUC":
		return ClientDocRUC
	case "PASAPORTE":
		return ClientDocPasaporte
	case "CARNET_EXTRANJERIA":
		return ClientDocCarnetExtranjeria
	default:
		return ClientDocDNI
	}
}
