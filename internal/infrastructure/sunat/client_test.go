package sunat_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/paisasoft/mercado-api/internal/domain"
	"github.com/paisasoft/mercado-api/internal/domain/entity"
	domainsunat "github.com/paisasoft/mercado-api/internal/domain/sunat"
	"github.com/paisasoft/mercado-api/internal/infrastructure/sunat"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPayload(t *testing.T) *domainsunat.InvoicePayload {
	t.Helper()
	p, err := domainsunat.BuildInvoicePayload(
		[]entity.CartLine{{
			ProductID: "p1", SKU: "SKU-1", Name: "Leche Entera 1L",
			UnitPrice: decimal.RequireFromString("4.50"), Quantity: 2,
		}},
		entity.CustomerDetails{
			FirstName: "Ana", LastName: "Torres",
			DocumentType: entity.DocTypeDNI, DocumentNumber: "12345678",
		},
		domainsunat.Emitter{RUC: "20123456789", RazonSocial: "PAISASOFT S.A.C."},
		"ORD-1710512345-1", time.Now(),
	)
	require.NoError(t, err)
	return p
}

// TestSubmit_Aceptado respuesta 200 con CDR de aceptación → Accepted=true
// con código y descripción del CDR.
func TestSubmit_Aceptado(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"xml": "<Invoice/>", "hash": "abc123",
			"sunatResponse": {
				"success": true,
				"cdrResponse": {"id": "R-B001-17105123", "code": "0", "description": "La Boleta numero B001-17105123, ha sido aceptada"}
			}
		}`))
	}))
	defer srv.Close()

	client := sunat.NewClient(srv.URL)
	res, err := client.Submit(context.Background(), testPayload(t), "token-123")
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.Equal(t, "0", res.Code)
	assert.Contains(t, res.Description, "aceptada")
	assert.Equal(t, "abc123", res.Hash)
}

// TestSubmit_Rechazado un 200 con rechazo de negocio no es error Go: se
// devuelve Accepted=false con la descripción de la autoridad.
func TestSubmit_Rechazado(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"sunatResponse": {
				"success": false,
				"error": {"code": "2335", "message": "Firma inválida"}
			}
		}`))
	}))
	defer srv.Close()

	client := sunat.NewClient(srv.URL)
	res, err := client.Submit(context.Background(), testPayload(t), "t")
	require.NoError(t, err, "un rechazo de SUNAT nunca debe ser un error de transporte")
	assert.False(t, res.Accepted)
	assert.Equal(t, "Firma inválida", res.Description)
}

// TestSubmit_ErrorHTTPDelGateway un error HTTP con cuerpo JSON del gateway
// se trata como rechazo (el gateway respondió), no como indisponibilidad.
func TestSubmit_ErrorHTTPDelGateway(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "token expirado"}`))
	}))
	defer srv.Close()

	client := sunat.NewClient(srv.URL)
	res, err := client.Submit(context.Background(), testPayload(t), "t")
	require.NoError(t, err)
	assert.False(t, res.Accepted)
	assert.Equal(t, "API_ERROR", res.Code)
	assert.Equal(t, "token expirado", res.Description)
}

// TestSubmit_FallaTransporte servidor inalcanzable → error envuelto en
// domain.ErrGatewayUnavailable, sin SubmitResult.
func TestSubmit_FallaTransporte(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // cerrado a propósito

	client := sunat.NewClient(srv.URL)
	res, err := client.Submit(context.Background(), testPayload(t), "t")
	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrGatewayUnavailable)
}

// TestSubmit_CuerpoImparseable cuerpo no-JSON → error (no se puede saber si
// la autoridad aceptó o no).
func TestSubmit_CuerpoImparseable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>gateway caído</html>`))
	}))
	defer srv.Close()

	client := sunat.NewClient(srv.URL)
	res, err := client.Submit(context.Background(), testPayload(t), "t")
	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrGatewayUnavailable)
}
