package http

import "github.com/gofiber/fiber/v2"

// La autenticación vive fuera de este módulo: el gateway upstream valida la
// identidad y la inyecta en X-User-ID. Aquí solo se consume para los campos
// de auditoría created_by/updated_by.

// GetUserID devuelve la identidad del caller inyectada por el upstream.
func GetUserID(c *fiber.Ctx) string {
	return c.Get("X-User-ID")
}
