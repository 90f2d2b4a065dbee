package diagnosis

import "slices"

// plans holds the 14-day checklist per business type.
var plans = map[BusinessType][]string{
	BusinessPhysicalProduct: {
		"Elige UN producto principal y enfoca todo hacia ese producto (no 20 productos a la vez).",
		"Lleva tráfico constante a ese producto (contenido diario o anuncios pequeños).",
		"Mantén el mismo precio y la misma oferta 14 días para medir sin confusión.",
		"La meta es simple: ver si con visitas reales aparece compra.",
	},
	BusinessService: {
		"Genera conversaciones reales con personas que encajen con tu cliente ideal.",
		"Haz ofertas claras (precio + qué incluye + cómo se paga).",
		"Si hay interés pero no pagan: ajusta UNA cosa (precio, paquete o tipo de cliente) y vuelve a ofrecer.",
	},
	BusinessDigitalProduct: {
		"Enfoca todo en UNA oferta con promesa clara (qué logra la persona).",
		"Dirige tráfico a esa oferta (contenido o ads).",
		"Mide interés real: clics con intención, registros o compras (no likes).",
	},
	BusinessSaaS: {
		"Consigue usuarios reales que prueben el producto (aunque sea gratis al inicio).",
		"Mide si lo usan más de una vez (eso dice más que ‘visitas’).",
		"No agregues funciones todavía: primero valida uso constante.",
	},
}

var avoidList = []string{
	"No cambies 5 cosas a la vez (si cambias todo, nunca sabrás qué funcionó).",
	"No tomes una decisión definitiva sin una prueba reciente clara.",
}

// PlanFor returns the 14-day action plan for a business type.
// Unknown types get the SaaS plan. The returned slice is a copy.
func PlanFor(bt BusinessType) []string {
	plan, ok := plans[bt]
	if !ok {
		plan = plans[BusinessSaaS]
	}
	return slices.Clone(plan)
}

// AvoidList returns the things not to do yet. It is the same for every analysis.
func AvoidList() []string {
	return slices.Clone(avoidList)
}
