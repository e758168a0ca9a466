package sunat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/paisasoft/mercado-api/internal/domain"
	domainsunat "github.com/paisasoft/mercado-api/internal/domain/sunat"
)

// URL por defecto del endpoint de emisión de APIs Perú.
const DefaultSendURL = "https://facturacion.apisperu.com/api/v1/invoice/send"

// ── Puerto (interfaz) ─────────────────────────────────────────────────────────

// SubmitResult resultado de un intento de emisión ante SUNAT vía el gateway.
// Un rechazo de negocio viene con Accepted=false y la descripción propia de
// la autoridad; una falla de transporte nunca llega aquí (es un error).
type SubmitResult struct {
	Accepted    bool
	Code        string // código del CDR o código de error del gateway
	Description string // descripción del CDR o mensaje de rechazo
	Hash        string // hash del XML firmado devuelto por el gateway
}

// InvoiceSubmitter define el puerto de salida hacia el servicio de
// facturación electrónica. Para tests se inyecta un fake.
type InvoiceSubmitter interface {
	// Submit envía el comprobante en un único POST síncrono, sin reintentos.
	// Devuelve error solo ante falla de transporte o cuerpo de respuesta
	// imparseable; un rechazo de SUNAT es un SubmitResult con
	// Accepted=false, nunca un error.
	Submit(ctx context.Context, payload *domainsunat.InvoicePayload, token string) (*SubmitResult, error)
}

// ── Implementación HTTP ───────────────────────────────────────────────────────

// Client implementa InvoiceSubmitter contra el API JSON de APIs Perú.
type Client struct {
	sendURL    string
	httpClient *http.Client
}

// NewClient construye el cliente con un timeout de red generoso (60 s): el
// gateway reenvía a SUNAT de forma síncrona y puede tardar varios segundos.
// Un timeout se reporta igual que cualquier otra falla de transporte.
func NewClient(sendURL string) *Client {
	if sendURL == "" {
		sendURL = DefaultSendURL
	}
	return &Client{
		sendURL:    sendURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// ── Estructuras de respuesta del gateway ──────────────────────────────────────

type gatewayResponse struct {
	XML           string         `json:"xml"`
	Hash          string         `json:"hash"`
	SunatResponse *sunatResponse `json:"sunatResponse"`
	Message       string         `json:"message"` // presente en respuestas de error HTTP
}

type sunatResponse struct {
	Success     bool          `json:"success"`
	CDRResponse *cdrResponse  `json:"cdrResponse"`
	Error       *gatewayError `json:"error"`
}

type cdrResponse struct {
	ID          string   `json:"id"`
	Code        string   `json:"code"`
	Description string   `json:"description"`
	Notes       []string `json:"notes"`
}

type gatewayError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ── Submit ────────────────────────────────────────────────────────────────────

// Submit serializa el comprobante, hace el POST con el bearer token y
// normaliza la respuesta en un SubmitResult.
func (c *Client) Submit(ctx context.Context, payload *domainsunat.InvoicePayload, token string) (*SubmitResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("sunat: serializar comprobante: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.sendURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("sunat: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: timeout o cancelación: %v", domain.ErrGatewayUnavailable, ctx.Err())
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // max 1 MB
	if err != nil {
		return nil, fmt.Errorf("%w: leer respuesta: %v", domain.ErrGatewayUnavailable, err)
	}

	return parseResponse(resp.StatusCode, rawBody)
}

// parseResponse normaliza las tres salidas posibles: aceptado, rechazado
// con descripción de la autoridad, o error HTTP del propio gateway (que se
// trata como rechazo, no como falla de transporte: el gateway sí respondió).
func parseResponse(statusCode int, rawBody []byte) (*SubmitResult, error) {
	var gr gatewayResponse
	if err := json.Unmarshal(rawBody, &gr); err != nil {
		return nil, fmt.Errorf("%w: respuesta imparseable del gateway: %v", domain.ErrGatewayUnavailable, err)
	}

	if statusCode < 200 || statusCode >= 300 {
		msg := gr.Message
		if msg == "" {
			msg = fmt.Sprintf("error HTTP %d del gateway", statusCode)
		}
		return &SubmitResult{Accepted: false, Code: "API_ERROR", Description: msg}, nil
	}

	if gr.SunatResponse == nil {
		return nil, fmt.Errorf("%w: respuesta sin bloque sunatResponse", domain.ErrGatewayUnavailable)
	}

	sr := gr.SunatResponse
	if sr.Success && sr.CDRResponse != nil {
		return &SubmitResult{
			Accepted:    true,
			Code:        sr.CDRResponse.Code,
			Description: sr.CDRResponse.Description,
			Hash:        gr.Hash,
		}, nil
	}

	result := &SubmitResult{Accepted: false, Hash: gr.Hash}
	switch {
	case sr.Error != nil:
		result.Code = sr.Error.Code
		result.Description = sr.Error.Message
	case sr.CDRResponse != nil:
		result.Code = sr.CDRResponse.Code
		result.Description = sr.CDRResponse.Description
	default:
		result.Description = "rechazo sin descripción del gateway"
	}
	return result, nil
}
