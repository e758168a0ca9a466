package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrValidation         = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrAccountSuspended   = errors.New("la cuenta está suspendida")

	// ErrPersistence indica que el pedido no pudo guardarse; es la única
	// ruta fatal del flujo de compra (el carrito se conserva para reintentar).
	ErrPersistence = errors.New("no se pudo guardar el pedido")

	// ErrGatewayUnavailable indica una falla de transporte hablando con el
	// servicio de facturación. No es un rechazo de SUNAT: el pedido ya
	// guardado sigue siendo válido.
	ErrGatewayUnavailable = errors.New("servicio de facturación no disponible")

	// Errores del ciclo de vida de pedidos y reportes.
	ErrInvalidTransition     = errors.New("transición de estado inválida")
	ErrInvalidState          = errors.New("estado inválido para la operación")
	ErrJustificationRequired = errors.New("se requiere una justificación")
)
