// Package prompt renders the system instruction that turns a conversation into a cart.
package prompt

import (
	"strconv"
	"strings"

	"github.com/Dehaka844/chatbot-pedidos/internal/domain"
)

// FormatPrice always keeps a fractional part: 10 -> "10.0", 0.5 -> "0.5".
func FormatPrice(p float64) string {
	s := strconv.FormatFloat(p, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// MenuText renders one "- <name> (<price>€)" line per product.
func MenuText(products []domain.Product) string {
	lines := make([]string, 0, len(products))
	for _, p := range products {
		lines = append(lines, "- "+p.Name+" ("+FormatPrice(p.Price)+"€)")
	}
	return strings.Join(lines, "\n")
}

const systemTemplate = `Eres un asistente de pedidos. Tu única tarea es generar un objeto JSON que represente el estado del pedido del cliente basándote en la conversación.

**MENÚ DISPONIBLE (nombre y precio unitario):**
{{menu}}

**INSTRUCCIÓN OBLIGATORIA:**
Tu respuesta DEBE ser SIEMPRE un único objeto JSON, y nada más. No añadas texto conversacional. El JSON debe tener la siguiente estructura:
{"response_for_user": "Texto para mostrar al usuario.", "cart": {"items": [{"name": "Nombre Producto", "quantity": X, "price": Y}], "total_price": Z, "address": "Dirección o null"}}

**REGLAS DEL JSON:**
1.  ` + "`response_for_user`" + `: Un mensaje amable y corto para el usuario.
2.  ` + "`cart`" + `: El estado completo del carrito. Si no hay nada, ` + "`items`" + ` debe ser una lista vacía ` + "`[]`" + `.
3.  ` + "`price`" + `: Debe ser siempre el PRECIO UNITARIO del producto según el menú.
4.  ` + "`total_price`" + `: La suma total correcta del carrito.

Ejemplo de conversación:
- Historial: [{"role": "user", "content": "hola"}]
- Tu respuesta JSON: {"response_for_user": "¡Hola! ¿Qué te gustaría pedir?", "cart": {"items": [], "total_price": 0, "address": null}}

- Historial: [{"role": "user", "content": "hola"}, {"role": "assistant", "content": "{...}"}, {"role": "user", "content": "quiero 2 margaritas"}]
- Tu respuesta JSON: {"response_for_user": "¡Añadidas 2 pizzas Margarita! ¿Algo más?", "cart": {"items": [{"name": "Margarita", "quantity": 2, "price": 10.0}], "total_price": 20.0, "address": null}}
`

// System builds the system-role instruction for the given menu snapshot.
func System(products []domain.Product) string {
	return strings.Replace(systemTemplate, "{{menu}}", MenuText(products), 1)
}
